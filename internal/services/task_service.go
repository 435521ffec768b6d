package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FbcGa/sparkTasks-backend/internal/models"
	"github.com/FbcGa/sparkTasks-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound = errors.New("task doesn't exist")
	ErrTextRequired = errors.New("text is required")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	listRepo repository.ListRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, listRepo repository.ListRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		listRepo: listRepo,
	}
}

// CreateTask appends a task to the end of a list the user owns
func (s *TaskService) CreateTask(userID, listID uint64, text string) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}

	task := &models.Task{
		Text:   text,
		ListID: listID,
		UserID: userID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// RenameTask changes a task's text
func (s *TaskService) RenameTask(userID, listID, taskID uint64, text string) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}

	task, err := s.taskRepo.FindOwned(taskID, listID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Text = text
	if err := s.taskRepo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to rename task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task scoped by (id, list, owner)
func (s *TaskService) DeleteTask(userID, listID, taskID uint64) error {
	if err := s.taskRepo.Delete(taskID, listID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ReorderTasks assigns position = index in orderedTaskIDs to every id
// that is a task of the list. Ids outside the list are silently
// skipped; the client sends a best-effort ordering.
func (s *TaskService) ReorderTasks(userID, listID uint64, orderedTaskIDs []uint64) error {
	if _, err := s.listRepo.FindOwned(listID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListNotFound
		}
		return fmt.Errorf("failed to find list: %w", err)
	}

	if err := s.taskRepo.ReorderPositions(listID, orderedTaskIDs); err != nil {
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}
	return nil
}

// MoveTaskInput describes a cross-list move: the new layout of the
// source list and of the destination list.
type MoveTaskInput struct {
	UserID     uint64
	FromListID uint64
	ToListID   uint64
	FromTasks  []repository.TaskPlacement
	ToTasks    []repository.TaskPlacement
}

// MoveTask applies the supplied placements atomically and returns the
// caller's full list set afterwards. Both lists and every referenced
// task must belong to the caller; one foreign id fails the whole batch.
func (s *TaskService) MoveTask(input MoveTaskInput) ([]models.List, error) {
	for _, listID := range []uint64{input.FromListID, input.ToListID} {
		if _, err := s.listRepo.FindOwned(listID, input.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrListNotFound
			}
			return nil, fmt.Errorf("failed to find list: %w", err)
		}
	}

	err := s.taskRepo.MoveTasks(input.UserID, input.FromListID, input.ToListID, input.FromTasks, input.ToTasks)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to move tasks: %w", err)
	}

	lists, err := s.listRepo.ListByOwner(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	return lists, nil
}
