package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/in"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
)

// AppointmentListPath - куда уводим пользователя после успешной записи.
const AppointmentListPath = "/appointments"

// Сообщение при недоступности бэкенда. Текст ошибки транспорта пользователю
// не показываем, он уходит только в лог.
const connectivityMessage = "could not reach the clinic service, please try again"

// SubmissionController сериализует отправки одной формы: пока запрос в полете,
// повторные сабмиты молча игнорируются. Очереди нет, отмены нет - начатая
// отправка всегда доводится до ответа бэкенда.
type SubmissionController struct {
	service *BookingService
	busy    atomic.Bool
}

func (s *BookingService) NewSubmission() in.SubmissionHandle {
	return &SubmissionController{service: s}
}

func (c *SubmissionController) Submit(ctx context.Context, draft domain.AppointmentDraft, isEditing bool, listener in.SubmissionListener) in.SubmissionOutcome {
	s := c.service

	if !c.busy.CompareAndSwap(false, true) {
		s.logger.Debug("booking.submit.ignored", out.LogFields{
			"reason": "submission already in flight",
		})
		return in.OutcomeIgnored
	}

	listener.OnBusyChanged(true)

	// Флаг занятости снимается всегда, каким бы ни был исход
	defer func() {
		c.busy.Store(false)
		listener.OnBusyChanged(false)
	}()

	// Ключ идемпотентности на каждую принятую отправку: в многовкладочном
	// сценарии бэкенд отсеет дубликат даже мимо флага занятости
	submissionKey := uuid.New()

	s.logger.Info("booking.submit.started", out.LogFields{
		"submissionKey": submissionKey,
		"isEditing":     isEditing,
		"dentistId":     draft.DentistID,
		"patientId":     draft.PatientID,
		"date":          draft.Date,
		"time":          draft.Time,
	})

	var saved *domain.Appointment
	var err error
	if isEditing {
		saved, err = s.backendPort.UpdateAppointment(ctx, draft, submissionKey)
	} else {
		saved, err = s.backendPort.CreateAppointment(ctx, draft, submissionKey)
	}

	if err != nil {
		return c.reportFailure(err, submissionKey, listener)
	}

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if isEditing {
			s.cachePort.InvalidateAppointment(ctx, saved.ID)
		} else {
			s.cachePort.StoreAppointment(ctx, *saved)
		}
	}

	verb := "scheduled"
	outcome := in.OutcomeCreated
	if isEditing {
		verb = "updated"
		outcome = in.OutcomeUpdated
	}

	s.logger.Info("booking.submit.success", out.LogFields{
		"submissionKey": submissionKey,
		"appointmentId": saved.ID,
	})

	listener.OnMessage(
		fmt.Sprintf("appointment %s for %s", verb, draft.PatientFullName()),
		domain.SeveritySuccess,
	)
	c.scheduleNavigate(listener, AppointmentListPath)

	return outcome
}

// reportFailure переводит ошибку коллаборатора в сообщение пользователю.
// Отказ бэкенда показывается дословно, транспортный сбой - общим текстом.
func (c *SubmissionController) reportFailure(err error, submissionKey uuid.UUID, listener in.SubmissionListener) in.SubmissionOutcome {
	s := c.service

	var rejection *out.RejectionError
	if errors.As(err, &rejection) {
		s.logger.Warn("booking.submit.rejected", out.LogFields{
			"submissionKey": submissionKey,
			"status":        rejection.StatusCode,
			"message":       rejection.Message,
		})
		listener.OnMessage(rejection.Message, domain.SeverityDanger)
		return in.OutcomeRejected
	}

	if errors.Is(err, out.ErrNotFound) {
		s.logger.Warn("booking.submit.not_found", out.LogFields{
			"submissionKey": submissionKey,
		})
		listener.OnMessage("appointment not found", domain.SeverityDanger)
		return in.OutcomeRejected
	}

	s.logger.Error("booking.submit.failed", out.LogFields{
		"submissionKey": submissionKey,
		"error":         err.Error(),
	})
	listener.OnMessage(connectivityMessage, domain.SeverityDanger)
	return in.OutcomeFailed
}

// scheduleNavigate уводит на список приемов с задержкой, чтобы пользователь
// успел прочитать сообщение об успехе.
func (c *SubmissionController) scheduleNavigate(listener in.SubmissionListener, path string) {
	delay := c.service.cfg.RedirectDelay()
	if delay <= 0 {
		listener.OnNavigate(path)
		return
	}

	time.AfterFunc(delay, func() {
		listener.OnNavigate(path)
	})
}
