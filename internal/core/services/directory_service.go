package services

import (
	"context"
	"fmt"

	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
)

// DirectoryService отдает справочники дантистов и пациентов для селекторов
// формы записи. Списки кэшируются: меняются они редко, а запрашиваются при
// каждом открытии формы.
type DirectoryService struct {
	backendPort out.BackendPort
	cachePort   out.CachePort
	logger      out.LoggerPort
	cfg         *config.Config
}

func NewDirectoryService(
	backendPort out.BackendPort,
	cachePort out.CachePort,
	cfg *config.Config,
	logger out.LoggerPort,
) *DirectoryService {
	return &DirectoryService{
		backendPort: backendPort,
		cachePort:   cachePort,
		cfg:         cfg,
		logger:      logger.WithModule("DirectoryService"),
	}
}

func (s *DirectoryService) ListDentists(ctx context.Context) ([]domain.Dentist, error) {
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if dentists, exists := s.cachePort.GetDentists(ctx); exists {
			s.logger.Debug("directory.dentists.cache.hit", out.LogFields{
				"count": len(dentists),
			})
			return dentists, nil
		}
	}

	s.logger.Debug("directory.dentists.cache.miss", out.LogFields{})

	dentists, err := s.backendPort.ListDentists(ctx)
	if err != nil {
		s.logger.Error("directory.dentists.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("directory.dentists.fetch_failed: %w", err)
	}

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreDentists(ctx, dentists)
	}

	return dentists, nil
}

func (s *DirectoryService) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if patients, exists := s.cachePort.GetPatients(ctx); exists {
			s.logger.Debug("directory.patients.cache.hit", out.LogFields{
				"count": len(patients),
			})
			return patients, nil
		}
	}

	s.logger.Debug("directory.patients.cache.miss", out.LogFields{})

	patients, err := s.backendPort.ListPatients(ctx)
	if err != nil {
		s.logger.Error("directory.patients.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("directory.patients.fetch_failed: %w", err)
	}

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StorePatients(ctx, patients)
	}

	return patients, nil
}

// Ведение справочников. Снимки кэша сбрасываются после каждой записи:
// проще перечитать список целиком, чем править его на месте.

func (s *DirectoryService) CreateDentist(ctx context.Context, dentist domain.Dentist) (*domain.Dentist, error) {
	saved, err := s.backendPort.CreateDentist(ctx, dentist)
	if err != nil {
		s.logger.Error("directory.dentist.create_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	s.InvalidateDirectory(ctx)
	s.logger.Info("directory.dentist.created", out.LogFields{
		"dentistId": saved.ID,
	})
	return saved, nil
}

func (s *DirectoryService) UpdateDentist(ctx context.Context, dentist domain.Dentist) (*domain.Dentist, error) {
	saved, err := s.backendPort.UpdateDentist(ctx, dentist)
	if err != nil {
		s.logger.Error("directory.dentist.update_failed", out.LogFields{
			"dentistId": dentist.ID,
			"error":     err.Error(),
		})
		return nil, err
	}

	s.InvalidateDirectory(ctx)
	return saved, nil
}

func (s *DirectoryService) DeleteDentist(ctx context.Context, id int64) error {
	if err := s.backendPort.DeleteDentist(ctx, id); err != nil {
		s.logger.Error("directory.dentist.delete_failed", out.LogFields{
			"dentistId": id,
			"error":     err.Error(),
		})
		return err
	}

	s.InvalidateDirectory(ctx)
	s.logger.Info("directory.dentist.deleted", out.LogFields{
		"dentistId": id,
	})
	return nil
}

func (s *DirectoryService) CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	saved, err := s.backendPort.CreatePatient(ctx, patient)
	if err != nil {
		s.logger.Error("directory.patient.create_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	s.InvalidateDirectory(ctx)
	s.logger.Info("directory.patient.created", out.LogFields{
		"patientId": saved.ID,
	})
	return saved, nil
}

func (s *DirectoryService) UpdatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	saved, err := s.backendPort.UpdatePatient(ctx, patient)
	if err != nil {
		s.logger.Error("directory.patient.update_failed", out.LogFields{
			"patientId": patient.ID,
			"error":     err.Error(),
		})
		return nil, err
	}

	s.InvalidateDirectory(ctx)
	return saved, nil
}

func (s *DirectoryService) DeletePatient(ctx context.Context, id int64) error {
	if err := s.backendPort.DeletePatient(ctx, id); err != nil {
		s.logger.Error("directory.patient.delete_failed", out.LogFields{
			"patientId": id,
			"error":     err.Error(),
		})
		return err
	}

	s.InvalidateDirectory(ctx)
	s.logger.Info("directory.patient.deleted", out.LogFields{
		"patientId": id,
	})
	return nil
}

func (s *DirectoryService) InvalidateDirectory(ctx context.Context) {
	if s.cachePort == nil {
		return
	}

	s.cachePort.InvalidateDirectory(ctx)
	s.logger.Info("directory.cache.invalidated", out.LogFields{})
}
