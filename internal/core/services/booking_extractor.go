package services

import (
	"strconv"
	"strings"

	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
)

// ExtractDraft собирает черновик приема из значений формы и сессии.
// Админ выбирает пациента селектором, обычный пациент записывает сам себя -
// тогда его данные берутся из сессии, закэшированные при логине.
// Функция чистая: повторный вызов с теми же аргументами дает тот же черновик.
func (s *BookingService) ExtractDraft(user *domain.SessionUser, form domain.FormValues) domain.AppointmentDraft {
	draft := domain.AppointmentDraft{
		ID:           parseID(form.Get("appointmentId")),
		DentistID:    parseID(form.Get("dentistId")),
		Date:         form.Get("date"),
		Time:         form.Get("time"),
		Description:  form.Get("description"),
		OriginalDate: form.Get("originalDate"),
		OriginalTime: form.Get("originalTime"),
	}

	if user == nil {
		return draft
	}

	if user.IsAdmin() {
		draft.PatientID = parseID(form.Get("patientId"))

		firstName, lastName, email := splitPatientLabel(form.Get("patientLabel"))
		draft.PatientFirstName = firstName
		draft.PatientLastName = lastName
		draft.PatientEmail = email
	} else {
		draft.PatientID = user.PatientID
		draft.PatientFirstName = user.PatientFirstName
		draft.PatientLastName = user.PatientLastName
		draft.PatientEmail = user.Email
	}

	return draft
}

// parseID превращает строковый идентификатор в число.
// Мусор и пустые значения дают 0, отбраковка - дело валидатора.
func parseID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// splitPatientLabel разбирает подпись селектора "<имя> <фамилия> - <email>":
// email после " - ", имя до первого пробела, фамилия - весь остаток.
func splitPatientLabel(label string) (firstName, lastName, email string) {
	parts := strings.SplitN(label, " - ", 2)
	if len(parts) == 2 {
		email = strings.TrimSpace(parts[1])
	}

	nameParts := strings.SplitN(strings.TrimSpace(parts[0]), " ", 2)
	firstName = nameParts[0]
	if len(nameParts) == 2 {
		lastName = nameParts[1]
	}

	return firstName, lastName, email
}
