package services

import (
	"context"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	pin "github.com/suchimauz/dental-clinic-gateway/internal/core/ports/in"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
	"github.com/suchimauz/dental-clinic-gateway/internal/utils"
)

type AuthService struct {
	backendPort  out.BackendPort
	sessionStore out.SessionStorePort
	directory    pin.DirectoryUseCase
	logger       out.LoggerPort
}

func NewAuthService(
	backendPort out.BackendPort,
	sessionStore out.SessionStorePort,
	directory pin.DirectoryUseCase,
	logger out.LoggerPort,
) *AuthService {
	return &AuthService{
		backendPort:  backendPort,
		sessionStore: sessionStore,
		directory:    directory,
		logger:       logger.WithModule("AuthService"),
	}
}

// Login проксирует вход на бэкенд и заводит серверную сессию.
// Для пациента сразу подтягивается его карточка из справочника: форма записи
// потом берет ее из сессии без похода по сети.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.SessionUser, error) {
	result, err := s.backendPort.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("auth.login.failed", out.LogFields{
			"email": email,
			"error": err.Error(),
		})
		return nil, err
	}

	return s.startSession(ctx, email, result)
}

// Register заводит пользователя на бэкенде и сразу открывает сессию.
func (s *AuthService) Register(ctx context.Context, req out.RegisterRequest) (*domain.SessionUser, error) {
	result, err := s.backendPort.Register(ctx, req)
	if err != nil {
		s.logger.Warn("auth.register.failed", out.LogFields{
			"email": req.Email,
			"error": err.Error(),
		})
		return nil, err
	}

	return s.startSession(ctx, req.Email, result)
}

func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) {
	s.sessionStore.Delete(ctx, sessionID)
	s.logger.Info("auth.logout", out.LogFields{
		"sessionId": sessionID,
	})
}

func (s *AuthService) Resolve(ctx context.Context, sessionID uuid.UUID) (*domain.SessionUser, bool) {
	return s.sessionStore.Get(ctx, sessionID)
}

func (s *AuthService) startSession(ctx context.Context, email string, result *out.LoginResult) (*domain.SessionUser, error) {
	user := &domain.SessionUser{
		Email:     email,
		Role:      domain.UserRole(strings.ToUpper(result.Role)),
		Token:     result.Token,
		CreatedAt: time.Now(),
	}

	// Токен выпускает и подписывает бэкенд, шлюз только читает клеймы
	applyTokenClaims(user, result.Token)

	if user.Role == domain.RolePatient && user.PatientID == 0 {
		s.resolvePatient(ctx, user)
	}

	sessionID := s.sessionStore.Put(ctx, user)
	user.SessionID = sessionID

	s.logger.Info("auth.login.success", out.LogFields{
		"email":     user.Email,
		"role":      user.Role,
		"sessionId": sessionID,
	})

	return user, nil
}

// applyTokenClaims достает из JWT роль и идентификатор пациента, если бэкенд
// их туда положил. Подпись не проверяется: доверие к токену - забота бэкенда.
func applyTokenClaims(user *domain.SessionUser, token string) {
	claims := jwt.MapClaims{}
	parser := new(jwt.Parser)
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return
	}

	if role, ok := claims["role"].(string); ok && user.Role == "" {
		user.Role = domain.UserRole(strings.ToUpper(role))
	}
	if email, ok := claims["sub"].(string); ok && user.Email == "" {
		user.Email = email
	}
	if patientID, ok := claims["patientId"].(float64); ok {
		user.PatientID = int64(patientID)
	}
}

// resolvePatient ищет карточку пациента в справочнике по email.
// Неудача не фатальна: форма записи отбракует нулевой идентификатор сама.
func (s *AuthService) resolvePatient(ctx context.Context, user *domain.SessionUser) {
	ctx = utils.WithAuthToken(ctx, user.Token)

	patients, err := s.directory.ListPatients(ctx)
	if err != nil {
		s.logger.Warn("auth.patient.resolve_failed", out.LogFields{
			"email": user.Email,
			"error": err.Error(),
		})
		return
	}

	for _, patient := range patients {
		if strings.EqualFold(patient.Email, user.Email) {
			user.PatientID = patient.ID
			user.PatientFirstName = patient.FirstName
			user.PatientLastName = patient.LastName
			return
		}
	}

	s.logger.Warn("auth.patient.not_in_directory", out.LogFields{
		"email": user.Email,
	})
}
