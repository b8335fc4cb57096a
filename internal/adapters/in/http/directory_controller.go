package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	pin "github.com/suchimauz/dental-clinic-gateway/internal/core/ports/in"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
)

type DirectoryController struct {
	useCase pin.DirectoryUseCase
	logger  out.LoggerPort
}

func NewDirectoryController(useCase pin.DirectoryUseCase, logger out.LoggerPort) *DirectoryController {
	return &DirectoryController{
		useCase: useCase,
		logger:  logger,
	}
}

// RegisterRoutes вешает маршруты справочников. Список пациентов и все
// операции записи закрыты AdminOnly: пациент выбирает себя неявно, по сессии,
// и полный список с email ему видеть незачем.
func (c *DirectoryController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/dentists", c.listDentists)
	api.POST("/dentists", AdminOnly(), c.createDentist)
	api.PUT("/dentists/:id", AdminOnly(), c.updateDentist)
	api.DELETE("/dentists/:id", AdminOnly(), c.deleteDentist)

	api.GET("/patients", AdminOnly(), c.listPatients)
	api.POST("/patients", AdminOnly(), c.createPatient)
	api.PUT("/patients/:id", AdminOnly(), c.updatePatient)
	api.DELETE("/patients/:id", AdminOnly(), c.deletePatient)
}

func (c *DirectoryController) listDentists(ctx *gin.Context) {
	dentists, err := c.useCase.ListDentists(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "failed to load dentists"})
		return
	}

	ctx.JSON(http.StatusOK, dentists)
}

func (c *DirectoryController) listPatients(ctx *gin.Context) {
	patients, err := c.useCase.ListPatients(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "failed to load patients"})
		return
	}

	ctx.JSON(http.StatusOK, patients)
}

func (c *DirectoryController) createDentist(ctx *gin.Context) {
	var dentist domain.Dentist
	if err := ctx.ShouldBindJSON(&dentist); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := c.useCase.CreateDentist(ctx.Request.Context(), dentist)
	if err != nil {
		c.respondWriteError(ctx, err, "failed to create dentist")
		return
	}

	ctx.JSON(http.StatusCreated, saved)
}

func (c *DirectoryController) updateDentist(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid dentist id"})
		return
	}

	var dentist domain.Dentist
	if err := ctx.ShouldBindJSON(&dentist); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dentist.ID = id

	saved, err := c.useCase.UpdateDentist(ctx.Request.Context(), dentist)
	if err != nil {
		c.respondWriteError(ctx, err, "failed to update dentist")
		return
	}

	ctx.JSON(http.StatusOK, saved)
}

func (c *DirectoryController) deleteDentist(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid dentist id"})
		return
	}

	if err := c.useCase.DeleteDentist(ctx.Request.Context(), id); err != nil {
		c.respondWriteError(ctx, err, "failed to delete dentist")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (c *DirectoryController) createPatient(ctx *gin.Context) {
	var patient domain.Patient
	if err := ctx.ShouldBindJSON(&patient); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := c.useCase.CreatePatient(ctx.Request.Context(), patient)
	if err != nil {
		c.respondWriteError(ctx, err, "failed to create patient")
		return
	}

	ctx.JSON(http.StatusCreated, saved)
}

func (c *DirectoryController) updatePatient(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient id"})
		return
	}

	var patient domain.Patient
	if err := ctx.ShouldBindJSON(&patient); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patient.ID = id

	saved, err := c.useCase.UpdatePatient(ctx.Request.Context(), patient)
	if err != nil {
		c.respondWriteError(ctx, err, "failed to update patient")
		return
	}

	ctx.JSON(http.StatusOK, saved)
}

func (c *DirectoryController) deletePatient(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient id"})
		return
	}

	if err := c.useCase.DeletePatient(ctx.Request.Context(), id); err != nil {
		c.respondWriteError(ctx, err, "failed to delete patient")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": id})
}

// respondWriteError транслирует таксономию ошибок бэкенда в ответ:
// отказ по бизнес-правилам показывается дословно, 404 как есть,
// транспортный сбой - общим текстом.
func (c *DirectoryController) respondWriteError(ctx *gin.Context, err error, fallback string) {
	if errors.Is(err, out.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		return
	}

	var rejection *out.RejectionError
	if errors.As(err, &rejection) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": rejection.Message})
		return
	}

	c.logger.Error("directory.http.write_failed", out.LogFields{
		"error": err.Error(),
	})
	ctx.JSON(http.StatusBadGateway, gin.H{"error": fallback})
}
