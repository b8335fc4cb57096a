package out

import (
	"context"

	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
)

type CachePort interface {
	// Кэширование приемов по ID для предзаполнения формы редактирования
	GetAppointment(ctx context.Context, id int64) (*domain.Appointment, bool)
	StoreAppointment(ctx context.Context, appointment domain.Appointment)
	InvalidateAppointment(ctx context.Context, id int64)

	// Кэширование справочников дантистов и пациентов
	GetDentists(ctx context.Context) ([]domain.Dentist, bool)
	StoreDentists(ctx context.Context, dentists []domain.Dentist)
	GetPatients(ctx context.Context) ([]domain.Patient, bool)
	StorePatients(ctx context.Context, patients []domain.Patient)
	InvalidateDirectory(ctx context.Context)
}
