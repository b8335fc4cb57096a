package out

import (
	"context"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
)

type SessionStorePort interface {
	Put(ctx context.Context, user *domain.SessionUser) uuid.UUID
	Get(ctx context.Context, sessionID uuid.UUID) (*domain.SessionUser, bool)
	Delete(ctx context.Context, sessionID uuid.UUID)
}
