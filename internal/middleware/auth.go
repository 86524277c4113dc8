package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nmaslov/taskcrew/internal/constants"
	apierrors "github.com/nmaslov/taskcrew/internal/errors"
	"github.com/nmaslov/taskcrew/internal/models"
	"github.com/nmaslov/taskcrew/internal/repository"
	"github.com/nmaslov/taskcrew/internal/services"
)

const bearerPrefix = "Bearer "

// RequireAuth validates the bearer token on the Authorization header and
// loads the authenticated user into the request context. The token subject is
// an email; a deactivated account fails the lookup and gets 401.
func RequireAuth(tokenService *services.TokenService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		email, err := tokenService.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := userRepo.FindByEmail(email)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
