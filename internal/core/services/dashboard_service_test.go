package services

import (
	"context"
	"testing"
	"time"

	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/json_types"
)

func appointmentOn(date string) domain.Appointment {
	parsed, _ := time.Parse("2006-01-02", date)
	return domain.Appointment{Date: json_types.NewDate(parsed)}
}

func TestDashboardStats(t *testing.T) {
	backend := &fakeBackend{
		listFn: func() ([]domain.Appointment, error) {
			return []domain.Appointment{
				appointmentOn("2026-03-10"),
				appointmentOn("2026-03-10"),
				appointmentOn("2026-03-25"),
				appointmentOn("2026-02-14"),
				appointmentOn("2025-12-01"),
				// За пределами шестимесячного окна
				appointmentOn("2025-01-01"),
			}, nil
		},
	}
	directory := &fakeDirectory{patients: []domain.Patient{{ID: 7}, {ID: 21}}}

	service := NewDashboardService(backend, directory, nopLogger{})
	service.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}

	stats, err := service.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalAppointments != 6 {
		t.Errorf("TotalAppointments = %d, want 6", stats.TotalAppointments)
	}
	if stats.TotalPatients != 2 {
		t.Errorf("TotalPatients = %d, want 2", stats.TotalPatients)
	}
	if stats.TodayAppointments != 2 {
		t.Errorf("TodayAppointments = %d, want 2", stats.TodayAppointments)
	}
	if len(stats.TodayList) != 2 {
		t.Errorf("TodayList = %v", stats.TodayList)
	}

	if len(stats.MonthlyStats) != monthlyStatsDepth {
		t.Fatalf("MonthlyStats depth = %d, want %d", len(stats.MonthlyStats), monthlyStatsDepth)
	}

	// Окно идет от старого месяца к текущему
	first, last := stats.MonthlyStats[0], stats.MonthlyStats[monthlyStatsDepth-1]
	if first.Month != "2025-10" {
		t.Errorf("first month = %q, want 2025-10", first.Month)
	}
	if last.Month != "2026-03" || last.AppointmentCount != 3 {
		t.Errorf("last month = %+v, want 2026-03 with 3 appointments", last)
	}

	byMonth := make(map[string]int64)
	for _, monthly := range stats.MonthlyStats {
		byMonth[monthly.Month] = monthly.AppointmentCount
	}
	if byMonth["2025-12"] != 1 {
		t.Errorf("2025-12 = %d, want 1", byMonth["2025-12"])
	}
	if byMonth["2026-02"] != 1 {
		t.Errorf("2026-02 = %d, want 1", byMonth["2026-02"])
	}
	if byMonth["2026-01"] != 0 {
		t.Errorf("2026-01 = %d, want 0", byMonth["2026-01"])
	}
}

func TestDashboardMonthWindowOverYearBoundary(t *testing.T) {
	backend := &fakeBackend{
		listFn: func() ([]domain.Appointment, error) { return nil, nil },
	}

	service := NewDashboardService(backend, &fakeDirectory{}, nopLogger{})
	// 31 января: сдвиг на месяц назад от конца месяца не должен перескакивать
	service.now = func() time.Time {
		return time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)
	}

	stats, err := service.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"2025-08", "2025-09", "2025-10", "2025-11", "2025-12", "2026-01"}
	for i, monthly := range stats.MonthlyStats {
		if monthly.Month != want[i] {
			t.Errorf("month[%d] = %q, want %q", i, monthly.Month, want[i])
		}
	}
}
