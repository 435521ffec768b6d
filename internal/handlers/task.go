package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FbcGa/sparkTasks-backend/internal/dto"
	apierrors "github.com/FbcGa/sparkTasks-backend/internal/errors"
	"github.com/FbcGa/sparkTasks-backend/internal/middleware"
	"github.com/FbcGa/sparkTasks-backend/internal/repository"
	"github.com/FbcGa/sparkTasks-backend/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// taskPlacementRequest references a task and the position a move
// assigns to it. Position zero is a valid rank, so no binding on it.
type taskPlacementRequest struct {
	ID       uint64 `json:"id" binding:"required"`
	Position int    `json:"position"`
}

func toPlacements(reqs []taskPlacementRequest) []repository.TaskPlacement {
	placements := make([]repository.TaskPlacement, len(reqs))
	for i, r := range reqs {
		placements[i] = repository.TaskPlacement{
			ID:       r.ID,
			Position: r.Position,
		}
	}
	return placements
}

// CreateTask appends a task to one of the caller's lists.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Text   string `json:"text" binding:"required"`
		ListID uint64 `json:"list_id" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Text and list_id are required")
		return
	}

	task, err := h.taskService.CreateTask(userID, req.ListID, req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task added successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// DeleteTask removes a task scoped by (id, list, owner).
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type DeleteTaskRequest struct {
		ID     uint64 `json:"id" binding:"required"`
		ListID uint64 `json:"listId" binding:"required"`
	}

	var req DeleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Parameters are missing")
		return
	}

	if err := h.taskService.DeleteTask(userID, req.ListID, req.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// ChangeTaskText renames a task. The response keeps the original
// "list" key existing clients read the updated task from.
func (h *TaskHandler) ChangeTaskText(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ChangeTextRequest struct {
		TaskID   uint64 `json:"taskId" binding:"required"`
		ListID   uint64 `json:"listId" binding:"required"`
		NewTitle string `json:"newTitle" binding:"required"`
	}

	var req ChangeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing arguments")
		return
	}

	task, err := h.taskService.RenameTask(userID, req.ListID, req.TaskID, req.NewTitle)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"list": dto.ToTaskDTO(*task),
	})
}

// ReorderTasks applies a caller-supplied ordering of a list's tasks.
func (h *TaskHandler) ReorderTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ReorderTasksRequest struct {
		ListID         uint64    `json:"list_id" binding:"required"`
		OrderedTaskIDs *[]uint64 `json:"ordered_task_ids" binding:"required"`
	}

	var req ReorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing parameters")
		return
	}

	if err := h.taskService.ReorderTasks(userID, req.ListID, *req.OrderedTaskIDs); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks reordered successfully",
	})
}

// MoveTask relocates tasks between two of the caller's lists and
// returns the full board afterwards.
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type MoveTaskRequest struct {
		FromListID       uint64                  `json:"fromListId" binding:"required"`
		ToListID         uint64                  `json:"toListId" binding:"required"`
		UpdatedFromTasks *[]taskPlacementRequest `json:"updatedFromTasks" binding:"required"`
		UpdatedToTasks   *[]taskPlacementRequest `json:"updatedToTasks" binding:"required"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing parameters")
		return
	}

	lists, err := h.taskService.MoveTask(services.MoveTaskInput{
		UserID:     userID,
		FromListID: req.FromListID,
		ToListID:   req.ToListID,
		FromTasks:  toPlacements(*req.UpdatedFromTasks),
		ToTasks:    toPlacements(*req.UpdatedToTasks),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updatedLists": dto.ToListDTOs(lists),
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTextRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrListNotFound):
		apierrors.NotFound(c, "List doesn't exist")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task doesn't exist")
	default:
		log.Printf("task: %v", err)
		apierrors.InternalError(c, "")
	}
}
