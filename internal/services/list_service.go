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
	ErrListNotFound  = errors.New("list doesn't exist")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidOrder  = errors.New("invalid list ids in order")
)

// ListService handles list business logic
type ListService struct {
	listRepo repository.ListRepository
}

// NewListService creates a new ListService
func NewListService(listRepo repository.ListRepository) *ListService {
	return &ListService{
		listRepo: listRepo,
	}
}

// CreateList creates a list at the end of the owner's sequence
func (s *ListService) CreateList(userID uint64, title string) (*models.List, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	list := &models.List{
		Title:  title,
		UserID: userID,
	}

	if err := s.listRepo.Create(list); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	return list, nil
}

// Lists returns the owner's lists ordered by position, tasks included
func (s *ListService) Lists(userID uint64) ([]models.List, error) {
	lists, err := s.listRepo.ListByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	return lists, nil
}

// RenameList changes a list's title
func (s *ListService) RenameList(userID, listID uint64, title string) (*models.List, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	list, err := s.listRepo.FindOwned(listID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to find list: %w", err)
	}

	list.Title = title
	if err := s.listRepo.Save(list); err != nil {
		return nil, fmt.Errorf("failed to rename list: %w", err)
	}

	return list, nil
}

// DeleteList removes a list together with its tasks
func (s *ListService) DeleteList(userID, listID uint64) error {
	if err := s.listRepo.Delete(listID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListNotFound
		}
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}

// ReorderLists assigns position = index in newOrder to each list.
// newOrder must be exactly a permutation of the owner's list ids; a
// missing, foreign or duplicate id rejects the whole request and leaves
// every position untouched.
func (s *ListService) ReorderLists(userID uint64, newOrder []uint64) error {
	ids, err := s.listRepo.IDsByOwner(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch list ids: %w", err)
	}

	if len(newOrder) != len(ids) {
		return ErrInvalidOrder
	}

	owned := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		owned[id] = struct{}{}
	}

	seen := make(map[uint64]struct{}, len(newOrder))
	for _, id := range newOrder {
		if _, ok := owned[id]; !ok {
			return ErrInvalidOrder
		}
		if _, dup := seen[id]; dup {
			return ErrInvalidOrder
		}
		seen[id] = struct{}{}
	}

	if err := s.listRepo.ReorderPositions(userID, newOrder); err != nil {
		return fmt.Errorf("failed to reorder lists: %w", err)
	}
	return nil
}
