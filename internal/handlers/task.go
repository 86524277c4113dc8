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
	"gorm.io/gorm"
)

// TaskHandler coordinates task HTTP handlers. All routes require an
// authenticated caller.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task authored by the caller and assigned to the given
// producers.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	current, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		ProducersIDs []uuid.UUID `json:"producers_ids" binding:"required,min=1"`
		Task         string      `json:"task" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(current.ID, req.ProducersIDs, req.Task)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShowTask(*task))
}

// GetTask returns an active task to one of its authors or producers.
func (h *TaskHandler) GetTask(c *gin.Context) {
	current, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := queryUUID(c, "task_id")
	if !ok {
		return
	}

	task, err := h.taskService.Get(taskID, current.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShowTask(*task))
}

// UpdateTask applies a partial update to a task's fields. Authors only.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	current, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := queryUUID(c, "task_id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	// Collect only the provided, non-null fields. Status moves through the
	// dedicated endpoint, never through a field update.
	fields := map[string]interface{}{}
	if value, ok := rawReq["task"]; ok {
		if str, ok := value.(string); ok && str != "" {
			fields["description"] = str
		}
	}

	updatedID, err := h.taskService.Update(taskID, current.ID, fields)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdatedTaskResponse{UpdatedTaskID: updatedID})
}

// UpdateTaskStatus advances a task one lifecycle step. Advancing to Completed
// is author-only and retires the task.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	current, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := queryUUID(c, "task_id")
	if !ok {
		return
	}

	updatedID, err := h.taskService.AdvanceStatus(taskID, current.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdatedTaskResponse{UpdatedTaskID: updatedID})
}

// DeleteTask soft-deletes a task. Authors only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	current, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := queryUUID(c, "task_id")
	if !ok {
		return
	}

	deletedID, err := h.taskService.Delete(taskID, current.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeletedTaskResponse{DeletedTaskID: deletedID})
}

// RestoreTask reactivates a soft-deleted task. Authors only.
func (h *TaskHandler) RestoreTask(c *gin.Context) {
	current, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := queryUUID(c, "task_id")
	if !ok {
		return
	}

	restoredID, err := h.taskService.Restore(taskID, current.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RestoredTaskResponse{RestoredTaskID: restoredID})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskAccessDenied),
		errors.Is(err, services.ErrNotTaskAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNoFieldsToUpdate):
		apierrors.Unprocessable(c, "At least one parameter must be provided.")
	case errors.Is(err, services.ErrAuthorInactive),
		errors.Is(err, services.ErrStatusFinal):
		apierrors.NotAcceptable(c, err.Error())
	case errors.Is(err, services.ErrProducerNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, gorm.ErrDuplicatedKey):
		apierrors.DatabaseError(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
