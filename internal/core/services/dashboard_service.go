package services

import (
	"context"
	"fmt"
	"time"

	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	pin "github.com/suchimauz/dental-clinic-gateway/internal/core/ports/in"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
	"github.com/suchimauz/dental-clinic-gateway/internal/utils"
)

const monthlyStatsDepth = 6

// DashboardService собирает сводку для главной страницы из списков бэкенда.
// Отдельного эндпоинта статистики у бэкенда нет, считаем на шлюзе.
type DashboardService struct {
	backendPort out.BackendPort
	directory   pin.DirectoryUseCase
	logger      out.LoggerPort

	now func() time.Time
}

func NewDashboardService(
	backendPort out.BackendPort,
	directory pin.DirectoryUseCase,
	logger out.LoggerPort,
) *DashboardService {
	return &DashboardService{
		backendPort: backendPort,
		directory:   directory,
		logger:      logger.WithModule("DashboardService"),
		now: func() time.Time {
			return time.Now().In(config.TimeZone)
		},
	}
}

func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	appointments, err := s.backendPort.ListAppointments(ctx)
	if err != nil {
		s.logger.Error("dashboard.appointments.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("dashboard.appointments.fetch_failed: %w", err)
	}

	dentists, err := s.directory.ListDentists(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.dentists.fetch_failed: %w", err)
	}

	patients, err := s.directory.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.patients.fetch_failed: %w", err)
	}

	now := s.now()
	todayKey := now.Format("2006-01-02")

	stats := &domain.DashboardStats{
		TotalAppointments: int64(len(appointments)),
		TotalDentists:     int64(len(dentists)),
		TotalPatients:     int64(len(patients)),
		TodayList:         make([]domain.Appointment, 0),
		MonthlyStats:      make([]domain.MonthlyStats, 0, monthlyStatsDepth),
	}

	// Приемы сравниваем по календарному ключу, а не по моментам:
	// дата приема - локальная дата клиники без таймзоны
	monthlyCounts := make(map[string]int64)
	for _, appointment := range appointments {
		key := appointment.Date.String()
		if key == todayKey {
			stats.TodayAppointments++
			stats.TodayList = append(stats.TodayList, appointment)
		}
		monthlyCounts[key[:7]]++
	}

	// Сдвигаемся по месяцам от первого числа, чтобы 31-е не перескакивало месяц
	currentMonth := utils.StartCurrentMonth(now)
	for i := monthlyStatsDepth - 1; i >= 0; i-- {
		month := currentMonth.AddDate(0, -i, 0)
		key := month.Format("2006-01")
		stats.MonthlyStats = append(stats.MonthlyStats, domain.MonthlyStats{
			Month:            key,
			MonthName:        month.Format("January"),
			AppointmentCount: monthlyCounts[key],
		})
	}

	s.logger.Debug("dashboard.stats.computed", out.LogFields{
		"totalAppointments": stats.TotalAppointments,
		"todayAppointments": stats.TodayAppointments,
	})

	return stats, nil
}
