package domain

import (
	"github.com/suchimauz/dental-clinic-gateway/internal/core/json_types"
)

type Patient struct {
	ID            int64           `json:"id"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Email         string          `json:"email"`
	Card          string          `json:"card"`
	AdmissionDate json_types.Date `json:"admissionDate"`
}

// Label - подпись пациента в выпадающем списке формы записи.
// Формат "<имя> <фамилия> - <email>" разбирает экстрактор на стороне админа.
func (p Patient) Label() string {
	return p.FirstName + " " + p.LastName + " - " + p.Email
}
