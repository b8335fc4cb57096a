package domain

// AppointmentDraft - прием в процессе заполнения формы, до отправки на бэкенд.
// Идентификаторы, которые не удалось распарсить, остаются нулевыми - их
// отбрасывает валидатор, а не экстрактор.
type AppointmentDraft struct {
	ID               int64
	PatientID        int64
	PatientFirstName string
	PatientLastName  string
	PatientEmail     string
	DentistID        int64
	Date             string
	Time             string
	Description      string

	// Исходные дата и время при редактировании. Если они не менялись,
	// прием в прошлом разрешается редактировать.
	OriginalDate string
	OriginalTime string
}

// IsEditing определяет режим формы: наличие ID означает редактирование.
// Режим всегда выводится из черновика, отдельно он не передается.
func (d AppointmentDraft) IsEditing() bool {
	return d.ID > 0
}

// PatientFullName - отображаемое имя пациента для сообщений пользователю.
func (d AppointmentDraft) PatientFullName() string {
	if d.PatientLastName == "" {
		return d.PatientFirstName
	}
	return d.PatientFirstName + " " + d.PatientLastName
}
