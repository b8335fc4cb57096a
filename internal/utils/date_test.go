package utils

import (
	"testing"
	"time"
)

func TestCombineLocalDateTime(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)

	tests := []struct {
		name      string
		date      string
		timeOfDay string
		want      time.Time
		wantErr   bool
	}{
		{
			name:      "regular moment",
			date:      "2026-03-11",
			timeOfDay: "10:30",
			want:      time.Date(2026, 3, 11, 10, 30, 0, 0, loc),
		},
		{
			name:      "midnight",
			date:      "2026-03-11",
			timeOfDay: "00:00",
			want:      time.Date(2026, 3, 11, 0, 0, 0, 0, loc),
		},
		{name: "empty date", date: "", timeOfDay: "10:30", wantErr: true},
		{name: "slash format", date: "11/03/2026", timeOfDay: "10:30", wantErr: true},
		{name: "month out of range", date: "2026-13-11", timeOfDay: "10:30", wantErr: true},
		{name: "day out of range", date: "2026-03-32", timeOfDay: "10:30", wantErr: true},
		// time.Date сама по себе превратила бы 31 февраля в 3 марта
		{name: "nonexistent day of month", date: "2026-02-31", timeOfDay: "10:30", wantErr: true},
		{name: "february 29 off leap year", date: "2026-02-29", timeOfDay: "10:30", wantErr: true},
		{
			name:      "february 29 on leap year",
			date:      "2028-02-29",
			timeOfDay: "10:30",
			want:      time.Date(2028, 2, 29, 10, 30, 0, 0, loc),
		},
		{name: "thirty-first of april", date: "2026-04-31", timeOfDay: "10:30", wantErr: true},
		{name: "letters in date", date: "2026-ab-11", timeOfDay: "10:30", wantErr: true},
		{name: "bad time", date: "2026-03-11", timeOfDay: "10.30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CombineLocalDateTime(tt.date, tt.timeOfDay, loc)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got.Location() != loc {
				t.Errorf("location = %v, want %v", got.Location(), loc)
			}
		})
	}
}

// Дата в западной таймзоне не должна укатываться на сутки назад, как это
// случилось бы при разборе "2026-03-11" как момента в UTC.
func TestCombineLocalDateTimeKeepsCalendarDate(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)

	got, err := CombineLocalDateTime("2026-03-11", "00:00", loc)
	if err != nil {
		t.Fatal(err)
	}

	if got.Day() != 11 || got.Month() != time.March {
		t.Errorf("calendar date shifted: %v", got)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		raw     string
		hour    int
		minute  int
		wantErr bool
	}{
		{raw: "10:30", hour: 10, minute: 30},
		{raw: "00:00", hour: 0, minute: 0},
		{raw: "23:59", hour: 23, minute: 59},
		{raw: "10:30:45", hour: 10, minute: 30},
		{raw: "24:00", wantErr: true},
		{raw: "10:60", wantErr: true},
		{raw: "10", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			hour, minute, err := ParseTimeOfDay(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d:%d", hour, minute)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if hour != tt.hour || minute != tt.minute {
				t.Errorf("got %d:%d, want %d:%d", hour, minute, tt.hour, tt.minute)
			}
		})
	}
}

func TestDayBoundaries(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	moment := time.Date(2026, 3, 10, 15, 45, 30, 0, loc)

	if got := StartCurrentDay(moment); !got.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, loc)) {
		t.Errorf("StartCurrentDay = %v", got)
	}
	if got := StartNextDay(moment); !got.Equal(time.Date(2026, 3, 11, 0, 0, 0, 0, loc)) {
		t.Errorf("StartNextDay = %v", got)
	}
	if got := StartCurrentMonth(moment); !got.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("StartCurrentMonth = %v", got)
	}

	// Переход через конец месяца
	endOfMonth := time.Date(2026, 1, 31, 23, 0, 0, 0, loc)
	if got := StartNextDay(endOfMonth); !got.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("StartNextDay over month boundary = %v", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "rfc3339",
			raw:  "2026-03-11T10:30:00Z",
			want: time.Date(2026, 3, 11, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "datetime without zone",
			raw:  "2026-03-11T10:30:00",
			want: time.Date(2026, 3, 11, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "calendar date",
			raw:  "2026-03-11",
			want: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ParseDate("definitely not a date"); err == nil {
		t.Error("expected error for garbage input")
	}
}
