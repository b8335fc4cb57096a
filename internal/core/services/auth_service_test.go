package services

import (
	"context"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
)

type fakeSessionStore struct {
	sessions map[uuid.UUID]*domain.SessionUser
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*domain.SessionUser)}
}

func (s *fakeSessionStore) Put(ctx context.Context, user *domain.SessionUser) uuid.UUID {
	sessionID := uuid.New()
	user.SessionID = sessionID
	s.sessions[sessionID] = user
	return sessionID
}

func (s *fakeSessionStore) Get(ctx context.Context, sessionID uuid.UUID) (*domain.SessionUser, bool) {
	user, exists := s.sessions[sessionID]
	return user, exists
}

func (s *fakeSessionStore) Delete(ctx context.Context, sessionID uuid.UUID) {
	delete(s.sessions, sessionID)
}

type fakeDirectory struct {
	patients []domain.Patient
}

func (d *fakeDirectory) ListDentists(ctx context.Context) ([]domain.Dentist, error) {
	return nil, nil
}

func (d *fakeDirectory) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	return d.patients, nil
}

func (d *fakeDirectory) CreateDentist(ctx context.Context, dentist domain.Dentist) (*domain.Dentist, error) {
	return &dentist, nil
}

func (d *fakeDirectory) UpdateDentist(ctx context.Context, dentist domain.Dentist) (*domain.Dentist, error) {
	return &dentist, nil
}

func (d *fakeDirectory) DeleteDentist(ctx context.Context, id int64) error {
	return nil
}

func (d *fakeDirectory) CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	return &patient, nil
}

func (d *fakeDirectory) UpdatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	return &patient, nil
}

func (d *fakeDirectory) DeletePatient(ctx context.Context, id int64) error {
	return nil
}

func (d *fakeDirectory) InvalidateDirectory(ctx context.Context) {}

// signedToken собирает JWT с клеймами так же, как это делает бэкенд клиники.
func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestLoginAdminSession(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "admin@clinic.com", "role": "admin"})
	backend := &fakeBackend{}
	backend.loginResult = &out.LoginResult{Token: token, Role: "ADMIN"}

	store := newFakeSessionStore()
	service := NewAuthService(backend, store, &fakeDirectory{}, nopLogger{})

	user, err := service.Login(context.Background(), "admin@clinic.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.IsAdmin() {
		t.Errorf("role = %q, want admin", user.Role)
	}
	if user.Token != token {
		t.Error("backend token must be kept in the session")
	}
	if user.SessionID == uuid.Nil {
		t.Fatal("session id must be assigned")
	}

	resolved, exists := service.Resolve(context.Background(), user.SessionID)
	if !exists || resolved.Email != "admin@clinic.com" {
		t.Errorf("resolved = %+v, exists = %v", resolved, exists)
	}
}

func TestLoginPatientResolvesDirectoryCard(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "maria@mail.com", "role": "patient"})
	backend := &fakeBackend{}
	backend.loginResult = &out.LoginResult{Token: token, Role: "PATIENT"}

	directory := &fakeDirectory{patients: []domain.Patient{
		{ID: 7, FirstName: "John", LastName: "Doe", Email: "john@mail.com"},
		{ID: 21, FirstName: "Maria", LastName: "Lopez", Email: "MARIA@mail.com"},
	}}

	service := NewAuthService(backend, newFakeSessionStore(), directory, nopLogger{})

	user, err := service.Login(context.Background(), "maria@mail.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Карточка находится по email без учета регистра
	if user.PatientID != 21 {
		t.Errorf("PatientID = %d, want 21", user.PatientID)
	}
	if user.PatientFirstName != "Maria" || user.PatientLastName != "Lopez" {
		t.Errorf("patient name = %q %q", user.PatientFirstName, user.PatientLastName)
	}
}

func TestLoginPatientIDFromTokenClaims(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"sub":       "maria@mail.com",
		"role":      "patient",
		"patientId": float64(21),
	})
	backend := &fakeBackend{}
	backend.loginResult = &out.LoginResult{Token: token, Role: "PATIENT"}

	// Пустой справочник: идентификатор должен прийти из клейма,
	// поход за карточкой не нужен
	service := NewAuthService(backend, newFakeSessionStore(), &fakeDirectory{}, nopLogger{})

	user, err := service.Login(context.Background(), "maria@mail.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.PatientID != 21 {
		t.Errorf("PatientID = %d, want 21 from token claim", user.PatientID)
	}
}

func TestLoginRejectionIsPropagated(t *testing.T) {
	backend := &fakeBackend{}
	backend.loginErr = &out.RejectionError{StatusCode: 401, Message: "invalid credentials"}

	store := newFakeSessionStore()
	service := NewAuthService(backend, store, &fakeDirectory{}, nopLogger{})

	_, err := service.Login(context.Background(), "maria@mail.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(store.sessions) != 0 {
		t.Error("no session must be created on failed login")
	}
}

func TestLogoutDropsSession(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "maria@mail.com", "role": "patient"})
	backend := &fakeBackend{}
	backend.loginResult = &out.LoginResult{Token: token, Role: "PATIENT"}

	service := NewAuthService(backend, newFakeSessionStore(), &fakeDirectory{}, nopLogger{})

	user, err := service.Login(context.Background(), "maria@mail.com", "pw")
	if err != nil {
		t.Fatal(err)
	}

	service.Logout(context.Background(), user.SessionID)
	if _, exists := service.Resolve(context.Background(), user.SessionID); exists {
		t.Error("session must be gone after logout")
	}
}

func TestMalformedTokenDoesNotBreakLogin(t *testing.T) {
	backend := &fakeBackend{}
	backend.loginResult = &out.LoginResult{Token: "not-a-jwt", Role: "ADMIN"}

	service := NewAuthService(backend, newFakeSessionStore(), &fakeDirectory{}, nopLogger{})

	user, err := service.Login(context.Background(), "admin@clinic.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want role from login result", user.Role)
	}
}
