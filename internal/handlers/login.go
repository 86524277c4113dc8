package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nmaslov/taskcrew/internal/constants"
	"github.com/nmaslov/taskcrew/internal/dto"
	apierrors "github.com/nmaslov/taskcrew/internal/errors"
	"github.com/nmaslov/taskcrew/internal/services"
)

// LoginHandler exchanges form credentials for bearer tokens.
type LoginHandler struct {
	authService  *services.AuthService
	tokenService *services.TokenService
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(authService *services.AuthService, tokenService *services.TokenService) *LoginHandler {
	return &LoginHandler{
		authService:  authService,
		tokenService: tokenService,
	}
}

// Token authenticates a form-encoded username/password pair and issues an
// access token. The username field carries the email.
func (h *LoginHandler) Token(c *gin.Context) {
	type TokenRequest struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}

	var req TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid form data")
		return
	}

	user, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		apierrors.Unauthorized(c, "Incorrect email or password.")
		return
	}

	token, err := h.tokenService.Issue(user.Email)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   constants.TokenType,
	})
}
