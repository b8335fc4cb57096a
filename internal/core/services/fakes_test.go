package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(event string, fields out.LogFields)    {}
func (nopLogger) Info(event string, fields out.LogFields)     {}
func (nopLogger) Warn(event string, fields out.LogFields)     {}
func (nopLogger) Error(event string, fields out.LogFields)    {}
func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(module string) out.LoggerPort        { return l }

// fakeBackend реализует BackendPort через подменяемые функции.
// Незаданный метод просто возвращает нулевые значения.
type fakeBackend struct {
	mu sync.Mutex

	createFn func(draft domain.AppointmentDraft, key uuid.UUID) (*domain.Appointment, error)
	updateFn func(draft domain.AppointmentDraft, key uuid.UUID) (*domain.Appointment, error)
	getFn    func(id int64) (*domain.Appointment, error)
	listFn   func() ([]domain.Appointment, error)

	loginResult *out.LoginResult
	loginErr    error

	createCalls []uuid.UUID
	updateCalls []uuid.UUID
}

func (f *fakeBackend) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.getFn != nil {
		return f.getFn(id)
	}
	return nil, out.ErrNotFound
}

func (f *fakeBackend) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	if f.listFn != nil {
		return f.listFn()
	}
	return nil, nil
}

func (f *fakeBackend) SearchAppointments(ctx context.Context, query out.AppointmentSearchQuery) (*out.AppointmentPage, error) {
	return &out.AppointmentPage{}, nil
}

func (f *fakeBackend) CreateAppointment(ctx context.Context, draft domain.AppointmentDraft, key uuid.UUID) (*domain.Appointment, error) {
	f.mu.Lock()
	f.createCalls = append(f.createCalls, key)
	f.mu.Unlock()
	if f.createFn != nil {
		return f.createFn(draft, key)
	}
	return &domain.Appointment{ID: 1}, nil
}

func (f *fakeBackend) UpdateAppointment(ctx context.Context, draft domain.AppointmentDraft, key uuid.UUID) (*domain.Appointment, error) {
	f.mu.Lock()
	f.updateCalls = append(f.updateCalls, key)
	f.mu.Unlock()
	if f.updateFn != nil {
		return f.updateFn(draft, key)
	}
	return &domain.Appointment{ID: draft.ID}, nil
}

func (f *fakeBackend) DeleteAppointment(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeBackend) UpdateAppointmentStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	return &domain.Appointment{ID: id, Status: status}, nil
}

func (f *fakeBackend) ListDentists(ctx context.Context) ([]domain.Dentist, error) {
	return nil, nil
}

func (f *fakeBackend) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	return nil, nil
}

func (f *fakeBackend) CreateDentist(ctx context.Context, dentist domain.Dentist) (*domain.Dentist, error) {
	return &dentist, nil
}

func (f *fakeBackend) UpdateDentist(ctx context.Context, dentist domain.Dentist) (*domain.Dentist, error) {
	return &dentist, nil
}

func (f *fakeBackend) DeleteDentist(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeBackend) CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	return &patient, nil
}

func (f *fakeBackend) UpdatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	return &patient, nil
}

func (f *fakeBackend) DeletePatient(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*out.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.loginResult != nil {
		return f.loginResult, nil
	}
	return &out.LoginResult{}, nil
}

func (f *fakeBackend) Register(ctx context.Context, req out.RegisterRequest) (*out.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.loginResult != nil {
		return f.loginResult, nil
	}
	return &out.LoginResult{}, nil
}

func (f *fakeBackend) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.createCalls)
}

// fakeCache - CachePort поверх обычных map, без TTL и вытеснения.
type fakeCache struct {
	appointments map[int64]*domain.Appointment
	dentists     []domain.Dentist
	patients     []domain.Patient
}

func newFakeCache() *fakeCache {
	return &fakeCache{appointments: make(map[int64]*domain.Appointment)}
}

func (c *fakeCache) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, bool) {
	appointment, exists := c.appointments[id]
	return appointment, exists
}

func (c *fakeCache) StoreAppointment(ctx context.Context, appointment domain.Appointment) {
	c.appointments[appointment.ID] = &appointment
}

func (c *fakeCache) InvalidateAppointment(ctx context.Context, id int64) {
	delete(c.appointments, id)
}

func (c *fakeCache) GetDentists(ctx context.Context) ([]domain.Dentist, bool) {
	return c.dentists, c.dentists != nil
}

func (c *fakeCache) StoreDentists(ctx context.Context, dentists []domain.Dentist) {
	c.dentists = dentists
}

func (c *fakeCache) GetPatients(ctx context.Context) ([]domain.Patient, bool) {
	return c.patients, c.patients != nil
}

func (c *fakeCache) StorePatients(ctx context.Context, patients []domain.Patient) {
	c.patients = patients
}

func (c *fakeCache) InvalidateDirectory(ctx context.Context) {
	c.dentists = nil
	c.patients = nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Booking.RedirectDelaySeconds = 0
	cfg.Booking.WorkdayStart = "08:00"
	cfg.Booking.WorkdayEnd = "18:00"
	cfg.Booking.DescriptionLimit = 500
	return cfg
}

func testBookingService(backend *fakeBackend) *BookingService {
	return NewBookingService(backend, nil, testConfig(), nopLogger{})
}
