package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogmaster/config"
	"blogmaster/models"
	"blogmaster/utils"
)

// ContextUserKey is the key used to store the resolved caller in Gin context.
const ContextUserKey = "current_user"

// AuthRequired verifies the bearer token and resolves the caller by the email
// claim. The lookup happens exactly once per request, before any handler runs.
func AuthRequired(db *gorm.DB, cfg config.AppConfig) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(cfg.JWTSecret, tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "invalid token")
			ctx.Abort()
			return
		}
		if claims.Email == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "token carries no identity")
			ctx.Abort()
			return
		}

		var user models.User
		if err := db.Where("email = ?", claims.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
			} else {
				utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to resolve caller: "+err.Error())
			}
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserKey, &user)
		ctx.Next()
	}
}

// AdminRequired rejects callers without the admin flag. It composes after
// AuthRequired, so the caller is already resolved.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		caller, ok := CurrentUser(ctx)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
			ctx.Abort()
			return
		}
		if !caller.IsAdmin {
			utils.Error(ctx, http.StatusForbidden, 40301, "user "+caller.Username+" is not admin")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// CurrentUser returns the caller resolved by AuthRequired.
func CurrentUser(ctx *gin.Context) (*models.User, bool) {
	value, exists := ctx.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
