package services

import (
	"testing"

	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
)

func TestExtractDraftAdminSelectsPatient(t *testing.T) {
	service := testBookingService(&fakeBackend{})
	admin := &domain.SessionUser{Email: "admin@clinic.com", Role: domain.RoleAdmin}

	draft := service.ExtractDraft(admin, domain.FormValues{
		"appointmentId": "15",
		"dentistId":     "3",
		"patientId":     "7",
		"patientLabel":  "John Doe - john.doe@mail.com",
		"date":          "2026-03-11",
		"time":          "10:30",
		"description":   "cleaning",
	})

	if draft.ID != 15 || draft.DentistID != 3 || draft.PatientID != 7 {
		t.Fatalf("ids = (%d, %d, %d), want (15, 3, 7)", draft.ID, draft.DentistID, draft.PatientID)
	}
	if draft.PatientFirstName != "John" || draft.PatientLastName != "Doe" {
		t.Errorf("patient name = %q %q, want John Doe", draft.PatientFirstName, draft.PatientLastName)
	}
	if draft.PatientEmail != "john.doe@mail.com" {
		t.Errorf("patient email = %q", draft.PatientEmail)
	}
	if !draft.IsEditing() {
		t.Error("draft with id must be in editing mode")
	}
}

func TestExtractDraftPatientBooksSelf(t *testing.T) {
	service := testBookingService(&fakeBackend{})
	patient := &domain.SessionUser{
		Email:            "maria@mail.com",
		Role:             domain.RolePatient,
		PatientID:        21,
		PatientFirstName: "Maria",
		PatientLastName:  "Lopez",
	}

	draft := service.ExtractDraft(patient, domain.FormValues{
		"dentistId": "3",
		// Пациент не видит селектор, но значения в форме подделать можно -
		// они должны игнорироваться
		"patientId":    "999",
		"patientLabel": "Evil Hacker - evil@mail.com",
		"date":         "2026-03-11",
		"time":         "10:30",
	})

	if draft.PatientID != 21 {
		t.Fatalf("PatientID = %d, want 21 from session", draft.PatientID)
	}
	if draft.PatientFirstName != "Maria" || draft.PatientLastName != "Lopez" {
		t.Errorf("patient name = %q %q, want session identity", draft.PatientFirstName, draft.PatientLastName)
	}
	if draft.PatientEmail != "maria@mail.com" {
		t.Errorf("patient email = %q", draft.PatientEmail)
	}
	if draft.IsEditing() {
		t.Error("draft without id must not be in editing mode")
	}
}

func TestExtractDraftGarbageIdentifiers(t *testing.T) {
	service := testBookingService(&fakeBackend{})
	admin := &domain.SessionUser{Role: domain.RoleAdmin}

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"letters", "abc"},
		{"float", "3.5"},
		{"mixed", "12abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := service.ExtractDraft(admin, domain.FormValues{
				"appointmentId": tt.raw,
				"dentistId":     tt.raw,
				"patientId":     tt.raw,
			})

			if draft.ID != 0 || draft.DentistID != 0 || draft.PatientID != 0 {
				t.Errorf("ids = (%d, %d, %d), want zeros for %q",
					draft.ID, draft.DentistID, draft.PatientID, tt.raw)
			}
		})
	}
}

func TestExtractDraftDeterministic(t *testing.T) {
	service := testBookingService(&fakeBackend{})
	admin := &domain.SessionUser{Role: domain.RoleAdmin}
	form := domain.FormValues{
		"dentistId":    "3",
		"patientId":    "7",
		"patientLabel": "John Doe - john@mail.com",
		"date":         "2026-03-11",
		"time":         "10:30",
	}

	first := service.ExtractDraft(admin, form)
	second := service.ExtractDraft(admin, form)

	if first != second {
		t.Errorf("repeated extraction differs: %+v vs %+v", first, second)
	}
}

func TestSplitPatientLabel(t *testing.T) {
	tests := []struct {
		label     string
		firstName string
		lastName  string
		email     string
	}{
		{"John Doe - john@mail.com", "John", "Doe", "john@mail.com"},
		{"Maria Del Carmen - maria@mail.com", "Maria", "Del Carmen", "maria@mail.com"},
		{"Cher - cher@mail.com", "Cher", "", "cher@mail.com"},
		{"John Doe", "John", "Doe", ""},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			firstName, lastName, email := splitPatientLabel(tt.label)
			if firstName != tt.firstName || lastName != tt.lastName || email != tt.email {
				t.Errorf("splitPatientLabel(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.label, firstName, lastName, email, tt.firstName, tt.lastName, tt.email)
			}
		})
	}
}
