package in

import (
	"context"

	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
)

type DirectoryUseCase interface {
	ListDentists(ctx context.Context) ([]domain.Dentist, error)
	ListPatients(ctx context.Context) ([]domain.Patient, error)

	// Ведение справочников. Любая запись сбрасывает кэшированные снимки
	CreateDentist(ctx context.Context, dentist domain.Dentist) (*domain.Dentist, error)
	UpdateDentist(ctx context.Context, dentist domain.Dentist) (*domain.Dentist, error)
	DeleteDentist(ctx context.Context, id int64) error
	CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	UpdatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	DeletePatient(ctx context.Context, id int64) error

	// Сброс кэша справочников при изменениях на стороне бэкенда
	InvalidateDirectory(ctx context.Context)
}

type DashboardUseCase interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}
