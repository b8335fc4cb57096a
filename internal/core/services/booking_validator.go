package services

import (
	"time"

	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	"github.com/suchimauz/dental-clinic-gateway/internal/utils"
)

// Validate проверяет черновик до обращения к бэкенду.
// Существование дантиста и пациента здесь не проверяется - это делает бэкенд.
func (s *BookingService) Validate(draft domain.AppointmentDraft, isEditing bool) domain.Verdict {
	return validateDraft(draft, isEditing, s.now())
}

// validateDraft применяет правила строго по порядку: причина отказа - первое
// сработавшее правило.
func validateDraft(draft domain.AppointmentDraft, isEditing bool, now time.Time) domain.Verdict {
	if isEditing && draft.ID <= 0 {
		return domain.InvalidVerdict(domain.ReasonMissingAppointmentID)
	}

	if draft.DentistID <= 0 {
		return domain.InvalidVerdict(domain.ReasonDentistNotSelected)
	}

	if draft.PatientID <= 0 {
		return domain.InvalidVerdict(domain.ReasonPatientNotSelected)
	}

	if _, err := utils.CombineLocalDateTime(draft.Date, "00:00", now.Location()); err != nil {
		return domain.InvalidVerdict(domain.ReasonDateRequired)
	}

	if _, _, err := utils.ParseTimeOfDay(draft.Time); err != nil {
		return domain.InvalidVerdict(domain.ReasonTimeRequired)
	}

	// Момент приема собирается покомпонентно в таймзоне "сейчас":
	// разбор даты как целого момента мог бы сдвинуть ее на сутки.
	moment, err := utils.CombineLocalDateTime(draft.Date, draft.Time, now.Location())
	if err != nil {
		return domain.InvalidVerdict(domain.ReasonTimeRequired)
	}

	if moment.Before(now) {
		// При редактировании нетронутые дата и время не считаются ошибкой:
		// у старого приема можно поправить описание или дантиста
		if isEditing && draft.OriginalDate != "" &&
			draft.OriginalDate == draft.Date && draft.OriginalTime == draft.Time {
			return domain.ValidVerdict()
		}
		return domain.InvalidVerdict(domain.ReasonAppointmentInPast)
	}

	return domain.ValidVerdict()
}
