package out

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
)

// ErrNotFound - бэкенд ответил 404 на запрошенный ресурс.
var ErrNotFound = errors.New("resource not found")

// RejectionError - бэкенд отказал в операции по бизнес-правилам (400, 409).
// Message показывается пользователю дословно.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	return e.Message
}

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type AppointmentSearchQuery struct {
	Patient  string
	Dentist  string
	Status   domain.AppointmentStatus
	FromDate time.Time
	ToDate   time.Time
	Page     int
	Size     int
}

type AppointmentPage struct {
	Content       []domain.Appointment `json:"content"`
	TotalElements int64                `json:"totalElements"`
	TotalPages    int                  `json:"totalPages"`
	Number        int                  `json:"number"`
}

type BackendPort interface {
	// Методы для работы с приемами
	GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error)
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	SearchAppointments(ctx context.Context, query AppointmentSearchQuery) (*AppointmentPage, error)
	CreateAppointment(ctx context.Context, draft domain.AppointmentDraft, submissionKey uuid.UUID) (*domain.Appointment, error)
	UpdateAppointment(ctx context.Context, draft domain.AppointmentDraft, submissionKey uuid.UUID) (*domain.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
	UpdateAppointmentStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error)

	// Справочники для выпадающих списков формы записи
	ListDentists(ctx context.Context) ([]domain.Dentist, error)
	ListPatients(ctx context.Context) ([]domain.Patient, error)

	// Ведение справочников, доступно только администратору
	CreateDentist(ctx context.Context, dentist domain.Dentist) (*domain.Dentist, error)
	UpdateDentist(ctx context.Context, dentist domain.Dentist) (*domain.Dentist, error)
	DeleteDentist(ctx context.Context, id int64) error
	CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	UpdatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	DeletePatient(ctx context.Context, id int64) error

	// Аутентификация выполняется бэкендом, шлюз только проксирует
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, req RegisterRequest) (*LoginResult, error)
}
