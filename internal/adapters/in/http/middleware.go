package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	pin "github.com/suchimauz/dental-clinic-gateway/internal/core/ports/in"
	"github.com/suchimauz/dental-clinic-gateway/internal/utils"
)

const sessionUserKey = "sessionUser"

// SessionMiddleware восстанавливает пользователя по cookie и кладет его токен
// бэкенда в контекст запроса - дальше его подхватывает backend-адаптер.
func SessionMiddleware(auth pin.AuthUseCase, cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cookie, err := ctx.Cookie(cfg.Session.CookieName)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		sessionID, err := uuid.Parse(cookie)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, exists := auth.Resolve(ctx.Request.Context(), sessionID)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		ctx.Set(sessionUserKey, user)
		ctx.Request = ctx.Request.WithContext(
			utils.WithAuthToken(ctx.Request.Context(), user.Token),
		)

		ctx.Next()
	}
}

// AdminOnly пускает дальше только администраторов.
func AdminOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user := SessionUser(ctx)
		if user == nil || !user.IsAdmin() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator role required"})
			return
		}

		ctx.Next()
	}
}

func SessionUser(ctx *gin.Context) *domain.SessionUser {
	value, exists := ctx.Get(sessionUserKey)
	if !exists {
		return nil
	}

	user, ok := value.(*domain.SessionUser)
	if !ok {
		return nil
	}

	return user
}
