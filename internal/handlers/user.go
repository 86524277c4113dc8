package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nmaslov/taskcrew/internal/dto"
	apierrors "github.com/nmaslov/taskcrew/internal/errors"
	"github.com/nmaslov/taskcrew/internal/middleware"
	"github.com/nmaslov/taskcrew/internal/services"
)

// UserHandler coordinates user account HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser registers a new user. No authentication required.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShowUser(*user))
}

// GetUser returns an active user by the user_id query parameter.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := queryUUID(c, "user_id")
	if !ok {
		return
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShowUser(*user))
}

// UpdateUser applies a partial update to the caller's own account.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	current, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, ok := queryUUID(c, "user_id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	// Collect only the provided, non-null fields
	fields := map[string]interface{}{}
	for _, key := range []string{"username", "email"} {
		if value, ok := rawReq[key]; ok {
			if str, ok := value.(string); ok && str != "" {
				fields[key] = str
			}
		}
	}

	updatedID, err := h.userService.Update(current.ID, userID, fields)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdatedUserResponse{UpdatedUserID: updatedID})
}

// DeleteUser soft-deletes the caller's own account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	current, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, ok := queryUUID(c, "user_id")
	if !ok {
		return
	}

	deletedID, err := h.userService.Delete(current.ID, userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeletedUserResponse{DeletedUserID: deletedID})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotAccountOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNoFieldsToUpdate):
		apierrors.Unprocessable(c, "At least one parameter must be provided.")
	default:
		apierrors.InternalError(c, "")
	}
}

// queryUUID parses a UUID query parameter, answering 400 when it is missing
// or malformed.
func queryUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Query(name))
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
