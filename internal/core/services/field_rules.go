package services

import (
	"fmt"
	"time"

	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	"github.com/suchimauz/dental-clinic-gateway/internal/utils"
)

// FieldRules - пофакторная проверка полей формы на лету, пока пользователь
// ее заполняет. В отправку эти правила не входят: сабмит проверяет только
// обязательность полей и момент приема, остальное решает бэкенд.
type FieldRules struct {
	workdayStartMin  int
	workdayEndMin    int
	descriptionLimit int
}

func NewFieldRules(cfg *config.Config) *FieldRules {
	start, _ := timeOfDayMinutes(cfg.Booking.WorkdayStart)
	end, err := timeOfDayMinutes(cfg.Booking.WorkdayEnd)
	if err != nil || end <= start {
		// Некорректное окно в конфиге - возвращаемся к приемным часам по умолчанию
		start, _ = timeOfDayMinutes("08:00")
		end, _ = timeOfDayMinutes("18:00")
	}

	return &FieldRules{
		workdayStartMin:  start,
		workdayEndMin:    end,
		descriptionLimit: cfg.Booking.DescriptionLimit,
	}
}

// CheckDate проверяет формат даты, что она не в прошлом и попадает на рабочий
// день. Пустая строка - пустое сообщение: обязательность решает валидатор сабмита.
func (r *FieldRules) CheckDate(date string, now time.Time) string {
	if date == "" {
		return ""
	}

	day, err := utils.CombineLocalDateTime(date, "00:00", now.Location())
	if err != nil {
		return "invalid date format"
	}

	if day.Before(utils.StartCurrentDay(now)) {
		return "date cannot be earlier than today"
	}

	weekday := day.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return "appointments are scheduled Monday to Friday only"
	}

	return ""
}

// CheckTime проверяет формат времени, приемные часы и что на сегодняшнюю дату
// время еще не прошло.
func (r *FieldRules) CheckTime(date, timeOfDay string, now time.Time) string {
	if timeOfDay == "" {
		return ""
	}

	minutes, err := timeOfDayMinutes(timeOfDay)
	if err != nil {
		return "invalid time format"
	}

	if minutes < r.workdayStartMin || minutes > r.workdayEndMin {
		return fmt.Sprintf("time must be between %s and %s",
			minutesToTimeOfDay(r.workdayStartMin), minutesToTimeOfDay(r.workdayEndMin))
	}

	if date != "" {
		if moment, err := utils.CombineLocalDateTime(date, timeOfDay, now.Location()); err == nil {
			sameDay := utils.StartCurrentDay(moment).Equal(utils.StartCurrentDay(now))
			if sameDay && moment.Before(now) {
				return "time cannot be earlier than the current moment"
			}
		}
	}

	return ""
}

func (r *FieldRules) CheckDescription(description string) string {
	if len([]rune(description)) > r.descriptionLimit {
		return fmt.Sprintf("description cannot exceed %d characters", r.descriptionLimit)
	}
	return ""
}

func timeOfDayMinutes(timeOfDay string) (int, error) {
	hour, minute, err := utils.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}

func minutesToTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
