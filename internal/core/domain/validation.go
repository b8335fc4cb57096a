package domain

type ValidationReason string

const (
	ReasonMissingAppointmentID ValidationReason = "missing appointment identifier"
	ReasonDentistNotSelected   ValidationReason = "dentist not selected"
	ReasonPatientNotSelected   ValidationReason = "patient not selected"
	ReasonDateRequired         ValidationReason = "date required"
	ReasonTimeRequired         ValidationReason = "time required"
	ReasonAppointmentInPast    ValidationReason = "appointment in the past"
)

// Verdict - результат проверки черновика. Причина заполняется только при
// отказе и содержит первое сработавшее правило.
type Verdict struct {
	Valid  bool
	Reason ValidationReason
}

func ValidVerdict() Verdict {
	return Verdict{Valid: true}
}

func InvalidVerdict(reason ValidationReason) Verdict {
	return Verdict{Valid: false, Reason: reason}
}
