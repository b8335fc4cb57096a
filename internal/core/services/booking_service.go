package services

import (
	"context"
	"fmt"
	"time"

	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
)

type BookingService struct {
	backendPort out.BackendPort
	cachePort   out.CachePort
	logger      out.LoggerPort
	cfg         *config.Config

	// Источник текущего момента, подменяется в тестах
	now func() time.Time
}

func NewBookingService(
	backendPort out.BackendPort,
	cachePort out.CachePort,
	cfg *config.Config,
	logger out.LoggerPort,
) *BookingService {
	return &BookingService{
		backendPort: backendPort,
		cachePort:   cachePort,
		cfg:         cfg,
		logger:      logger.WithModule("BookingService"),
		now: func() time.Time {
			return time.Now().In(config.TimeZone)
		},
	}
}

func (s *BookingService) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	// Проверяем кэш только если он включен
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if appointment, exists := s.cachePort.GetAppointment(ctx, id); exists {
			s.logger.Debug("booking.appointment.cache.hit", out.LogFields{
				"appointmentId": id,
			})
			return appointment, nil
		}
	}

	appointment, err := s.backendPort.GetAppointment(ctx, id)
	if err != nil {
		s.logger.Error("booking.appointment.fetch_failed", out.LogFields{
			"appointmentId": id,
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("booking.appointment.fetch_failed: %w", err)
	}

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreAppointment(ctx, *appointment)
	}

	return appointment, nil
}

func (s *BookingService) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	appointments, err := s.backendPort.ListAppointments(ctx)
	if err != nil {
		s.logger.Error("booking.appointments.list_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("booking.appointments.list_failed: %w", err)
	}

	return appointments, nil
}

func (s *BookingService) SearchAppointments(ctx context.Context, query out.AppointmentSearchQuery) (*out.AppointmentPage, error) {
	page, err := s.backendPort.SearchAppointments(ctx, query)
	if err != nil {
		s.logger.Error("booking.appointments.search_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("booking.appointments.search_failed: %w", err)
	}

	return page, nil
}

func (s *BookingService) DeleteAppointment(ctx context.Context, id int64) error {
	if err := s.backendPort.DeleteAppointment(ctx, id); err != nil {
		s.logger.Error("booking.appointment.delete_failed", out.LogFields{
			"appointmentId": id,
			"error":         err.Error(),
		})
		return err
	}

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.InvalidateAppointment(ctx, id)
	}

	s.logger.Info("booking.appointment.deleted", out.LogFields{
		"appointmentId": id,
	})
	return nil
}

func (s *BookingService) UpdateAppointmentStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	appointment, err := s.backendPort.UpdateAppointmentStatus(ctx, id, status)
	if err != nil {
		s.logger.Error("booking.appointment.status_update_failed", out.LogFields{
			"appointmentId": id,
			"status":        status,
			"error":         err.Error(),
		})
		return nil, err
	}

	// Статус изменился - закэшированная версия больше не актуальна
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.InvalidateAppointment(ctx, id)
	}

	return appointment, nil
}
