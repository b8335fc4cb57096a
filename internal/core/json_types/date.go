package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

func parseDate(str string) (time.Time, error) {
	// Сначала пробуем чистую календарную дату
	parsedDate, err := time.Parse("2006-01-02", str)
	if err != nil {
		// Если не удалось, пробуем дату со временем без таймзоны
		parsedDate, err = time.Parse("2006-01-02T15:04:05", str)
		if err != nil {
			// Последняя попытка - полный RFC3339
			parsedDate, err = time.Parse(time.RFC3339, str)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
			}
		}
	}

	return parsedDate, nil
}

// Date - календарная дата приема в формате "2006-01-02", как ее отдает и
// принимает бэкенд клиники.
type Date struct {
	Date time.Time
}

func NewDate(t time.Time) Date {
	return Date{Date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (t *Date) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = Date{Date: parsedDate}
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format("2006-01-02"))
}

func (t Date) String() string {
	return t.Date.Format("2006-01-02")
}

func (t Date) IsZero() bool {
	return t.Date.IsZero()
}
