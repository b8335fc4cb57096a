package in

import (
	"context"

	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
)

// SubmissionListener - обратные вызовы к оболочке формы: индикатор занятости,
// сообщения пользователю и навигация после успешной записи.
type SubmissionListener interface {
	OnBusyChanged(busy bool)
	OnMessage(text string, severity domain.MessageSeverity)
	OnNavigate(path string)
}

type SubmissionOutcome string

const (
	OutcomeCreated  SubmissionOutcome = "created"
	OutcomeUpdated  SubmissionOutcome = "updated"
	OutcomeRejected SubmissionOutcome = "rejected"
	OutcomeFailed   SubmissionOutcome = "failed"
	// Повторный сабмит, пока предыдущий еще в полете - молча игнорируется
	OutcomeIgnored SubmissionOutcome = "ignored"
)

// SubmissionHandle - одна форма записи. Хэндл хранит флаг занятости,
// поэтому живет столько же, сколько и форма, а не один запрос.
type SubmissionHandle interface {
	Submit(ctx context.Context, draft domain.AppointmentDraft, isEditing bool, listener SubmissionListener) SubmissionOutcome
}

type BookingUseCase interface {
	// Сборка черновика из значений формы и сессии
	ExtractDraft(user *domain.SessionUser, form domain.FormValues) domain.AppointmentDraft

	// Локальная проверка черновика до обращения к бэкенду
	Validate(draft domain.AppointmentDraft, isEditing bool) domain.Verdict

	// Контроллер отправки для новой формы
	NewSubmission() SubmissionHandle

	// Чтение приемов для списка и формы редактирования
	GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error)
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	SearchAppointments(ctx context.Context, query out.AppointmentSearchQuery) (*out.AppointmentPage, error)

	// Операции, проксируемые на бэкенд как есть
	DeleteAppointment(ctx context.Context, id int64) error
	UpdateAppointmentStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error)
}
