package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/suchimauz/dental-clinic-gateway/internal/config"
)

// StartCurrentDay возвращает начало суток для переданного момента, таймзона остается прежней.
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay возвращает начало следующих суток, таймзона остается прежней.
func StartNextDay(t time.Time) time.Time {
	newDate := t.AddDate(0, 0, 1)
	return time.Date(newDate.Year(), newDate.Month(), newDate.Day(), 0, 0, 0, 0, newDate.Location())
}

// StartCurrentMonth возвращает первое число месяца для переданного момента.
func StartCurrentMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// CombineLocalDateTime собирает момент из календарной даты "2006-01-02" и
// времени "15:04" покомпонентно, в таймзоне клиники. Разбор даты как момента
// целиком здесь недопустим: сдвиг таймзоны может укатить дату на сутки.
func CombineLocalDateTime(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	dateParts := strings.Split(date, "-")
	if len(dateParts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date: %q", date)
	}

	year, err := strconv.Atoi(dateParts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %q", date)
	}
	month, err := strconv.Atoi(dateParts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid date: %q", date)
	}
	day, err := strconv.Atoi(dateParts[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date: %q", date)
	}

	hour, minute, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}

	moment := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)

	// time.Date молча нормализует несуществующие дни ("2026-02-31" стал бы
	// 3 марта), поэтому сверяем день после сборки
	if moment.Day() != day {
		return time.Time{}, fmt.Errorf("invalid date: %q", date)
	}

	return moment, nil
}

// ParseTimeOfDay разбирает время "15:04" на часы и минуты.
func ParseTimeOfDay(timeOfDay string) (int, int, error) {
	timeParts := strings.Split(timeOfDay, ":")
	if len(timeParts) < 2 {
		return 0, 0, fmt.Errorf("invalid time: %q", timeOfDay)
	}

	hour, err := strconv.Atoi(timeParts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid time: %q", timeOfDay)
	}
	minute, err := strconv.Atoi(timeParts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time: %q", timeOfDay)
	}

	return hour, minute, nil
}

// ParseDate парсит дату из строки в формате RFC3339, если не удается, то
// пробует дату со временем без таймзоны и чистую календарную дату.
// По дефолту ставим таймзону клиники из конфига.
func ParseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err != nil {
		location := config.TimeZone
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, location)
		if err != nil {
			parsedDate, err = time.ParseInLocation("2006-01-02", str, location)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse time: %v", err)
			}
		}
	}

	return parsedDate, nil
}
