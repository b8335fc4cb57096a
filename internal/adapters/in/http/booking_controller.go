package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	pin "github.com/suchimauz/dental-clinic-gateway/internal/core/ports/in"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/services"
	"github.com/suchimauz/dental-clinic-gateway/internal/utils"
)

// Потолок числа живых контроллеров отправки. Сессии протухают в сторе,
// а их хэндлы вытесняются отсюда по LRU, иначе карта росла бы вечно.
const maxSubmissionHandles = 4096

type BookingController struct {
	useCase    pin.BookingUseCase
	fieldRules *services.FieldRules
	cfg        *config.Config
	logger     out.LoggerPort

	// Контроллер отправки на сессию: один пользователь - одна форма в полете
	submissions *lru.Cache[uuid.UUID, pin.SubmissionHandle]
}

func NewBookingController(
	useCase pin.BookingUseCase,
	fieldRules *services.FieldRules,
	cfg *config.Config,
	logger out.LoggerPort,
) *BookingController {
	submissions, _ := lru.New[uuid.UUID, pin.SubmissionHandle](maxSubmissionHandles)

	return &BookingController{
		useCase:     useCase,
		fieldRules:  fieldRules,
		cfg:         cfg,
		logger:      logger,
		submissions: submissions,
	}
}

func (c *BookingController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/appointments", c.listAppointments)
	api.GET("/appointments/search", c.searchAppointments)
	api.GET("/appointments/:id", c.getAppointment)
	api.POST("/appointments", c.submitCreate)
	api.PUT("/appointments", c.submitUpdate)
	api.DELETE("/appointments/:id", c.deleteAppointment)
	api.PATCH("/appointments/:id/status", c.updateStatus)
	api.POST("/appointments/validate-field", c.validateField)
}

// SubmitForm - тело сабмита формы записи. Все значения строковые, как их
// прислала страница: числа из них достает экстрактор, а бракует валидатор.
type SubmitForm struct {
	AppointmentID string `json:"appointmentId"`
	PatientID     string `json:"patientId"`
	PatientLabel  string `json:"patientLabel"`
	DentistID     string `json:"dentistId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Description   string `json:"description"`
	OriginalDate  string `json:"originalDate"`
	OriginalTime  string `json:"originalTime"`
}

func (f SubmitForm) values() domain.FormValues {
	return domain.FormValues{
		"appointmentId": f.AppointmentID,
		"patientId":     f.PatientID,
		"patientLabel":  f.PatientLabel,
		"dentistId":     f.DentistID,
		"date":          f.Date,
		"time":          f.Time,
		"description":   f.Description,
		"originalDate":  f.OriginalDate,
		"originalTime":  f.OriginalTime,
	}
}

// submitResponse собирает обратные вызовы контроллера отправки в JSON-ответ
// для страницы. Индикатор занятости страница рисует сама, поэтому
// OnBusyChanged здесь никуда не транслируется.
type submitResponse struct {
	Outcome         pin.SubmissionOutcome  `json:"outcome"`
	Message         string                 `json:"message,omitempty"`
	Severity        domain.MessageSeverity `json:"severity,omitempty"`
	Redirect        string                 `json:"redirect,omitempty"`
	RedirectDelayMs int64                  `json:"redirectDelayMs,omitempty"`
}

func (r *submitResponse) OnBusyChanged(busy bool) {}

// OnMessage вызывается синхронно внутри Submit, до сериализации ответа.
func (r *submitResponse) OnMessage(text string, severity domain.MessageSeverity) {
	r.Message = text
	r.Severity = severity
}

// OnNavigate намеренно пуст: переход выполняет страница по полю redirect
// из ответа, а отложенный вызов пришел бы уже после его отправки.
func (r *submitResponse) OnNavigate(path string) {}

func (c *BookingController) submitCreate(ctx *gin.Context) {
	c.handleSubmit(ctx, false)
}

func (c *BookingController) submitUpdate(ctx *gin.Context) {
	c.handleSubmit(ctx, true)
}

func (c *BookingController) handleSubmit(ctx *gin.Context, isEditing bool) {
	user := SessionUser(ctx)

	var form SubmitForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := c.useCase.ExtractDraft(user, form.values())

	verdict := c.useCase.Validate(draft, isEditing)
	if !verdict.Valid {
		c.logger.Debug("booking.http.validation_rejected", out.LogFields{
			"reason":    verdict.Reason,
			"isEditing": isEditing,
		})
		ctx.JSON(http.StatusUnprocessableEntity, &submitResponse{
			Outcome:  pin.OutcomeRejected,
			Message:  string(verdict.Reason),
			Severity: domain.SeverityDanger,
		})
		return
	}

	response := &submitResponse{}
	outcome := c.submissionFor(user).Submit(ctx.Request.Context(), draft, isEditing, response)
	response.Outcome = outcome

	switch outcome {
	case pin.OutcomeIgnored:
		// Повторный сабмит при живом предыдущем - не ошибка, просто ничего не делаем
		ctx.JSON(http.StatusAccepted, response)
	case pin.OutcomeCreated, pin.OutcomeUpdated:
		// Редирект объявляем сразу: страница сама выдержит паузу,
		// чтобы пользователь успел прочитать сообщение
		response.Redirect = services.AppointmentListPath
		response.RedirectDelayMs = c.cfg.RedirectDelay().Milliseconds()
		ctx.JSON(http.StatusOK, response)
	case pin.OutcomeRejected:
		ctx.JSON(http.StatusConflict, response)
	default:
		ctx.JSON(http.StatusBadGateway, response)
	}
}

// submissionFor возвращает контроллер отправки для сессии пользователя,
// создавая его при первом сабмите.
func (c *BookingController) submissionFor(user *domain.SessionUser) pin.SubmissionHandle {
	key := uuid.Nil
	if user != nil {
		key = user.SessionID
	}

	if handle, exists := c.submissions.Get(key); exists {
		return handle
	}

	handle := c.useCase.NewSubmission()
	if previous, exists, _ := c.submissions.PeekOrAdd(key, handle); exists {
		return previous
	}
	return handle
}

func (c *BookingController) listAppointments(ctx *gin.Context) {
	appointments, err := c.useCase.ListAppointments(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "failed to load appointments"})
		return
	}

	ctx.JSON(http.StatusOK, appointments)
}

func (c *BookingController) searchAppointments(ctx *gin.Context) {
	query := out.AppointmentSearchQuery{
		Patient: ctx.Query("patient"),
		Dentist: ctx.Query("dentist"),
		Status:  domain.AppointmentStatus(ctx.Query("status")),
	}

	if raw := ctx.Query("fromDate"); raw != "" {
		if parsed, err := utils.ParseDate(raw); err == nil {
			query.FromDate = parsed
		}
	}
	if raw := ctx.Query("toDate"); raw != "" {
		if parsed, err := utils.ParseDate(raw); err == nil {
			query.ToDate = parsed
		}
	}
	query.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "0"))
	query.Size, _ = strconv.Atoi(ctx.DefaultQuery("size", "10"))

	page, err := c.useCase.SearchAppointments(ctx.Request.Context(), query)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "failed to search appointments"})
		return
	}

	ctx.JSON(http.StatusOK, page)
}

func (c *BookingController) getAppointment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	appointment, err := c.useCase.GetAppointment(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, out.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "failed to load appointment"})
		return
	}

	ctx.JSON(http.StatusOK, appointment)
}

func (c *BookingController) deleteAppointment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	if err := c.useCase.DeleteAppointment(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, out.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete appointment"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": id})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (c *BookingController) updateStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	var req statusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	appointment, err := c.useCase.UpdateAppointmentStatus(ctx.Request.Context(), id, domain.AppointmentStatus(req.Status))
	if err != nil {
		if errors.Is(err, out.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		var rejection *out.RejectionError
		if errors.As(err, &rejection) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": rejection.Message})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "failed to update status"})
		return
	}

	ctx.JSON(http.StatusOK, appointment)
}

type validateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Value string `json:"value"`
}

// validateField - живая проверка одного поля, пока пользователь заполняет
// форму. Сабмит эти правила не повторяет.
func (c *BookingController) validateField(ctx *gin.Context) {
	var req validateFieldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().In(config.TimeZone)

	var message string
	switch req.Field {
	case "date":
		message = c.fieldRules.CheckDate(req.Value, now)
	case "time":
		message = c.fieldRules.CheckTime(req.Date, req.Value, now)
	case "description":
		message = c.fieldRules.CheckDescription(req.Value)
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown field"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"field":   req.Field,
		"valid":   message == "",
		"message": message,
	})
}
