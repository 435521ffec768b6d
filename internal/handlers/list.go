package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FbcGa/sparkTasks-backend/internal/dto"
	apierrors "github.com/FbcGa/sparkTasks-backend/internal/errors"
	"github.com/FbcGa/sparkTasks-backend/internal/middleware"
	"github.com/FbcGa/sparkTasks-backend/internal/services"
)

// ListHandler coordinates list-related HTTP handlers.
type ListHandler struct {
	listService *services.ListService
}

// NewListHandler creates a new ListHandler.
func NewListHandler(listService *services.ListService) *ListHandler {
	return &ListHandler{
		listService: listService,
	}
}

// CreateList appends a new list to the caller's board.
func (h *ListHandler) CreateList(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateListRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Please provide a title for the list")
		return
	}

	list, err := h.listService.CreateList(userID, req.Title)
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "List created successfully",
		"list":    dto.ToListDTO(*list),
	})
}

// GetAllLists returns the caller's lists with their tasks, both sorted
// by position.
func (h *ListHandler) GetAllLists(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	lists, err := h.listService.Lists(userID)
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lists": dto.ToListDTOs(lists),
	})
}

// DeleteList removes a list and all its tasks.
func (h *ListHandler) DeleteList(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type DeleteListRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req DeleteListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "List ID not provided")
		return
	}

	if err := h.listService.DeleteList(userID, req.ID); err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "List deleted successfully",
	})
}

// ChangeListTitle renames a list.
func (h *ListHandler) ChangeListTitle(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ChangeTitleRequest struct {
		ListID uint64 `json:"list_id" binding:"required"`
		Title  string `json:"title" binding:"required"`
	}

	var req ChangeTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing arguments")
		return
	}

	list, err := h.listService.RenameList(userID, req.ListID, req.Title)
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"list": dto.ToListDTO(*list),
	})
}

// ReorderLists applies a caller-supplied permutation of the list ids.
func (h *ListHandler) ReorderLists(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ReorderRequest struct {
		NewOrder []uint64 `json:"new_order" binding:"required"`
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "No order provided")
		return
	}

	if err := h.listService.ReorderLists(userID, req.NewOrder); err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lists reordered successfully",
	})
}

func respondListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidOrder):
		apierrors.BadRequest(c, "Invalid list IDs in order")
	case errors.Is(err, services.ErrListNotFound):
		apierrors.NotFound(c, "List doesn't exist")
	default:
		log.Printf("list: %v", err)
		apierrors.InternalError(c, "")
	}
}
