package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	pin "github.com/suchimauz/dental-clinic-gateway/internal/core/ports/in"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
)

type AuthController struct {
	useCase pin.AuthUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewAuthController(useCase pin.AuthUseCase, cfg *config.Config, logger out.LoggerPort) *AuthController {
	return &AuthController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

// RegisterRoutes вешает публичные маршруты: login и register живут до сессии.
func (c *AuthController) RegisterRoutes(public *gin.RouterGroup, private *gin.RouterGroup) {
	public.POST("/auth/login", c.login)
	public.POST("/auth/register", c.register)
	private.POST("/auth/logout", c.logout)
	private.GET("/auth/me", c.me)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Email            string `json:"email"`
	Role             string `json:"role"`
	PatientID        int64  `json:"patientId,omitempty"`
	PatientFirstName string `json:"patientFirstName,omitempty"`
	PatientLastName  string `json:"patientLastName,omitempty"`
}

func (c *AuthController) login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := c.useCase.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, user.SessionID)
	ctx.JSON(http.StatusOK, c.sessionBody(user))
}

func (c *AuthController) register(ctx *gin.Context) {
	var req out.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := c.useCase.Register(ctx.Request.Context(), req)
	if err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, user.SessionID)
	ctx.JSON(http.StatusCreated, c.sessionBody(user))
}

func (c *AuthController) logout(ctx *gin.Context) {
	if user := SessionUser(ctx); user != nil {
		c.useCase.Logout(ctx.Request.Context(), user.SessionID)
	}

	// Затираем cookie: MaxAge < 0 удаляет ее на стороне браузера
	ctx.SetCookie(c.cfg.Session.CookieName, "", -1, "/", "", c.cfg.Session.CookieSecure, true)
	ctx.JSON(http.StatusOK, gin.H{"loggedOut": true})
}

func (c *AuthController) me(ctx *gin.Context) {
	user := SessionUser(ctx)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	ctx.JSON(http.StatusOK, c.sessionBody(user))
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, sessionID uuid.UUID) {
	maxAge := int(c.cfg.SessionTTL().Seconds())
	ctx.SetCookie(c.cfg.Session.CookieName, sessionID.String(), maxAge, "/", "", c.cfg.Session.CookieSecure, true)
}

func (c *AuthController) sessionBody(user *domain.SessionUser) sessionResponse {
	return sessionResponse{
		Email:            user.Email,
		Role:             string(user.Role),
		PatientID:        user.PatientID,
		PatientFirstName: user.PatientFirstName,
		PatientLastName:  user.PatientLastName,
	}
}

func (c *AuthController) respondAuthError(ctx *gin.Context, err error) {
	var rejection *out.RejectionError
	if errors.As(err, &rejection) {
		status := http.StatusUnauthorized
		if rejection.StatusCode == http.StatusConflict {
			status = http.StatusConflict
		}
		ctx.JSON(status, gin.H{"error": rejection.Message})
		return
	}

	c.logger.Error("auth.http.backend_failure", out.LogFields{
		"error": err.Error(),
	})
	ctx.JSON(http.StatusBadGateway, gin.H{"error": "could not reach the clinic service, please try again"})
}
