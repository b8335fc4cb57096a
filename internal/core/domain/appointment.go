package domain

import (
	"github.com/suchimauz/dental-clinic-gateway/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusNoShow    AppointmentStatus = "NO_SHOW"
)

// Appointment - прием в том виде, в котором его хранит бэкенд клиники.
type Appointment struct {
	ID          int64             `json:"id"`
	DentistID   int64             `json:"dentist_id"`
	PatientID   int64             `json:"patient_id"`
	Date        json_types.Date   `json:"date"`
	Time        json_types.Time   `json:"time"`
	Description string            `json:"description"`
	Status      AppointmentStatus `json:"status"`
}
