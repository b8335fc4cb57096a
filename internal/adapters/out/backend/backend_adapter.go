package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
	"github.com/suchimauz/dental-clinic-gateway/internal/utils"
)

// BackendAdapter - HTTP-клиент к бэкенду клиники. Вся персистентность и
// бизнес-правила живут там, шлюз только ходит по его контракту.
type BackendAdapter struct {
	client  *http.Client
	baseURL string
	logger  out.LoggerPort
}

func NewBackendAdapter(cfg *config.Config, logger out.LoggerPort) *BackendAdapter {
	return &BackendAdapter{
		client:  &http.Client{Timeout: cfg.BackendTimeout()},
		baseURL: strings.TrimRight(cfg.Backend.URL, "/"),
		logger:  logger,
	}
}

func (a *BackendAdapter) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	a.logger.Info("backend.appointment.fetch", out.LogFields{
		"appointmentId": id,
	})

	var appointment domain.Appointment
	err := a.call(ctx, http.MethodGet, fmt.Sprintf("/appointments/%d", id), nil, nil, &appointment)
	if err != nil {
		a.logger.Error("backend.appointment.fetch_failed", out.LogFields{
			"appointmentId": id,
			"error":         err.Error(),
		})
		return nil, err
	}

	return &appointment, nil
}

func (a *BackendAdapter) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	a.logger.Info("backend.appointments.fetch", out.LogFields{})

	var appointments []domain.Appointment
	if err := a.call(ctx, http.MethodGet, "/appointments", nil, nil, &appointments); err != nil {
		a.logger.Error("backend.appointments.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("backend.appointments.fetch_success", out.LogFields{
		"count": len(appointments),
	})

	return appointments, nil
}

func (a *BackendAdapter) SearchAppointments(ctx context.Context, query out.AppointmentSearchQuery) (*out.AppointmentPage, error) {
	values := nurl.Values{}
	if query.Patient != "" {
		values.Add("patient", query.Patient)
	}
	if query.Dentist != "" {
		values.Add("dentist", query.Dentist)
	}
	if query.Status != "" {
		values.Add("status", string(query.Status))
	}
	if !query.FromDate.IsZero() {
		values.Add("fromDate", query.FromDate.Format("2006-01-02"))
	}
	if !query.ToDate.IsZero() {
		values.Add("toDate", query.ToDate.Format("2006-01-02"))
	}
	values.Add("page", fmt.Sprintf("%d", query.Page))
	if query.Size > 0 {
		values.Add("size", fmt.Sprintf("%d", query.Size))
	}

	var page out.AppointmentPage
	if err := a.call(ctx, http.MethodGet, "/appointments/search", values, nil, &page); err != nil {
		a.logger.Error("backend.appointments.search_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &page, nil
}

func (a *BackendAdapter) CreateAppointment(ctx context.Context, draft domain.AppointmentDraft, submissionKey uuid.UUID) (*domain.Appointment, error) {
	a.logger.Info("backend.appointment.create", out.LogFields{
		"submissionKey": submissionKey,
		"dentistId":     draft.DentistID,
		"patientId":     draft.PatientID,
	})

	dto := draftToDTO(draft)
	dto.Status = domain.AppointmentStatusScheduled

	var appointment domain.Appointment
	err := a.callWithKey(ctx, http.MethodPost, "/appointments", dto, &appointment, submissionKey)
	if err != nil {
		a.logger.Error("backend.appointment.create_failed", out.LogFields{
			"submissionKey": submissionKey,
			"error":         err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("backend.appointment.create_success", out.LogFields{
		"appointmentId": appointment.ID,
	})

	return &appointment, nil
}

func (a *BackendAdapter) UpdateAppointment(ctx context.Context, draft domain.AppointmentDraft, submissionKey uuid.UUID) (*domain.Appointment, error) {
	a.logger.Info("backend.appointment.update", out.LogFields{
		"submissionKey": submissionKey,
		"appointmentId": draft.ID,
	})

	var appointment domain.Appointment
	err := a.callWithKey(ctx, http.MethodPut, "/appointments", draftToDTO(draft), &appointment, submissionKey)
	if err != nil {
		a.logger.Error("backend.appointment.update_failed", out.LogFields{
			"submissionKey": submissionKey,
			"appointmentId": draft.ID,
			"error":         err.Error(),
		})
		return nil, err
	}

	return &appointment, nil
}

func (a *BackendAdapter) DeleteAppointment(ctx context.Context, id int64) error {
	a.logger.Info("backend.appointment.delete", out.LogFields{
		"appointmentId": id,
	})

	return a.call(ctx, http.MethodDelete, fmt.Sprintf("/appointments/%d", id), nil, nil, nil)
}

func (a *BackendAdapter) UpdateAppointmentStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	a.logger.Info("backend.appointment.status_update", out.LogFields{
		"appointmentId": id,
		"status":        status,
	})

	body := map[string]string{"status": string(status)}

	var appointment domain.Appointment
	path := fmt.Sprintf("/appointments/%d/status", id)
	if err := a.call(ctx, http.MethodPatch, path, nil, body, &appointment); err != nil {
		return nil, err
	}

	return &appointment, nil
}

func (a *BackendAdapter) ListDentists(ctx context.Context) ([]domain.Dentist, error) {
	a.logger.Info("backend.dentists.fetch", out.LogFields{})

	var dentists []domain.Dentist
	if err := a.call(ctx, http.MethodGet, "/dentists", nil, nil, &dentists); err != nil {
		a.logger.Error("backend.dentists.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return dentists, nil
}

func (a *BackendAdapter) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	a.logger.Info("backend.patients.fetch", out.LogFields{})

	var patients []domain.Patient
	if err := a.call(ctx, http.MethodGet, "/patients", nil, nil, &patients); err != nil {
		a.logger.Error("backend.patients.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return patients, nil
}

func (a *BackendAdapter) CreateDentist(ctx context.Context, dentist domain.Dentist) (*domain.Dentist, error) {
	a.logger.Info("backend.dentist.create", out.LogFields{
		"registration": dentist.Registration,
	})

	var saved domain.Dentist
	if err := a.call(ctx, http.MethodPost, "/dentists", nil, dentist, &saved); err != nil {
		a.logger.Error("backend.dentist.create_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &saved, nil
}

func (a *BackendAdapter) UpdateDentist(ctx context.Context, dentist domain.Dentist) (*domain.Dentist, error) {
	a.logger.Info("backend.dentist.update", out.LogFields{
		"dentistId": dentist.ID,
	})

	var saved domain.Dentist
	path := fmt.Sprintf("/dentists/%d", dentist.ID)
	if err := a.call(ctx, http.MethodPut, path, nil, dentist, &saved); err != nil {
		a.logger.Error("backend.dentist.update_failed", out.LogFields{
			"dentistId": dentist.ID,
			"error":     err.Error(),
		})
		return nil, err
	}

	return &saved, nil
}

func (a *BackendAdapter) DeleteDentist(ctx context.Context, id int64) error {
	a.logger.Info("backend.dentist.delete", out.LogFields{
		"dentistId": id,
	})

	return a.call(ctx, http.MethodDelete, fmt.Sprintf("/dentists/%d", id), nil, nil, nil)
}

func (a *BackendAdapter) CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	a.logger.Info("backend.patient.create", out.LogFields{
		"email": patient.Email,
	})

	var saved domain.Patient
	if err := a.call(ctx, http.MethodPost, "/patients", nil, patient, &saved); err != nil {
		a.logger.Error("backend.patient.create_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &saved, nil
}

func (a *BackendAdapter) UpdatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	a.logger.Info("backend.patient.update", out.LogFields{
		"patientId": patient.ID,
	})

	var saved domain.Patient
	path := fmt.Sprintf("/patients/%d", patient.ID)
	if err := a.call(ctx, http.MethodPut, path, nil, patient, &saved); err != nil {
		a.logger.Error("backend.patient.update_failed", out.LogFields{
			"patientId": patient.ID,
			"error":     err.Error(),
		})
		return nil, err
	}

	return &saved, nil
}

func (a *BackendAdapter) DeletePatient(ctx context.Context, id int64) error {
	a.logger.Info("backend.patient.delete", out.LogFields{
		"patientId": id,
	})

	return a.call(ctx, http.MethodDelete, fmt.Sprintf("/patients/%d", id), nil, nil, nil)
}

func (a *BackendAdapter) Login(ctx context.Context, email, password string) (*out.LoginResult, error) {
	a.logger.Info("backend.auth.login", out.LogFields{
		"email": email,
	})

	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var result out.LoginResult
	if err := a.call(ctx, http.MethodPost, "/auth/login", nil, body, &result); err != nil {
		a.logger.Warn("backend.auth.login_failed", out.LogFields{
			"email": email,
			"error": err.Error(),
		})
		return nil, err
	}

	return &result, nil
}

func (a *BackendAdapter) Register(ctx context.Context, req out.RegisterRequest) (*out.LoginResult, error) {
	a.logger.Info("backend.auth.register", out.LogFields{
		"email": req.Email,
	})

	var result out.LoginResult
	if err := a.call(ctx, http.MethodPost, "/auth/register", nil, req, &result); err != nil {
		a.logger.Warn("backend.auth.register_failed", out.LogFields{
			"email": req.Email,
			"error": err.Error(),
		})
		return nil, err
	}

	return &result, nil
}

func (a *BackendAdapter) call(ctx context.Context, method, path string, query nurl.Values, body, dest interface{}) error {
	return a.callWithKey(ctx, method, path, body, dest, uuid.Nil, queryOption(query))
}

type callOption func(*http.Request)

func queryOption(query nurl.Values) callOption {
	return func(req *http.Request) {
		if query != nil {
			req.URL.RawQuery = query.Encode()
		}
	}
}

func (a *BackendAdapter) callWithKey(ctx context.Context, method, path string, body, dest interface{}, submissionKey uuid.UUID, opts ...callOption) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Токен пользователя кладет в контекст сессионный middleware
	if token, ok := utils.AuthTokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if submissionKey != uuid.Nil {
		req.Header.Set("Idempotency-Key", submissionKey.String())
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}

	return nil
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// checkStatus превращает HTTP-статусы бэкенда в ошибки доменной таксономии:
// 404 - ErrNotFound, 4xx с текстом - RejectionError, остальное - транспорт.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	if resp.StatusCode == http.StatusNotFound {
		return out.ErrNotFound
	}

	message := ""
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var parsed errorResponse
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Message != "" {
			message = parsed.Message
		} else if parsed.Error != "" {
			message = parsed.Error
		}
	}

	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
		if message == "" {
			message = rejectionFallback(resp.StatusCode)
		}
		return &out.RejectionError{
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}

func rejectionFallback(statusCode int) string {
	switch statusCode {
	case http.StatusUnauthorized:
		return "invalid credentials"
	case http.StatusConflict:
		return "an appointment already exists for that date and time"
	default:
		return "the clinic backend rejected the request"
	}
}

type appointmentDTO struct {
	ID          int64                    `json:"id,omitempty"`
	DentistID   int64                    `json:"dentist_id"`
	PatientID   int64                    `json:"patient_id"`
	Date        string                   `json:"date"`
	Time        string                   `json:"time"`
	Description string                   `json:"description"`
	Status      domain.AppointmentStatus `json:"status,omitempty"`
}

func draftToDTO(draft domain.AppointmentDraft) appointmentDTO {
	return appointmentDTO{
		ID:          draft.ID,
		DentistID:   draft.DentistID,
		PatientID:   draft.PatientID,
		Date:        draft.Date,
		Time:        draft.Time,
		Description: draft.Description,
	}
}
