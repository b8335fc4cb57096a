package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleDentist UserRole = "DENTIST"
	RolePatient UserRole = "PATIENT"
)

// SessionUser - пользователь, закрепленный за серверной сессией.
// Для пациентов при логине сюда кэшируется их карточка из справочника,
// чтобы форма записи не ходила за ней по сети.
type SessionUser struct {
	SessionID uuid.UUID
	Email     string
	Role      UserRole
	Token     string

	PatientID        int64
	PatientFirstName string
	PatientLastName  string

	CreatedAt time.Time
}

func (u *SessionUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
