package in

import (
	"context"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
)

type AuthUseCase interface {
	// Логин через бэкенд: сессия создается только после его подтверждения
	Login(ctx context.Context, email, password string) (*domain.SessionUser, error)
	Register(ctx context.Context, req out.RegisterRequest) (*domain.SessionUser, error)
	Logout(ctx context.Context, sessionID uuid.UUID)

	// Восстановление пользователя по идентификатору сессии из cookie
	Resolve(ctx context.Context, sessionID uuid.UUID) (*domain.SessionUser, bool)
}
