package repository

import (
	"github.com/FbcGa/sparkTasks-backend/internal/models"
)

// TaskPlacement pairs a task id with the position a move assigns to it.
type TaskPlacement struct {
	ID       uint64
	Position int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Delete removes a user together with all their lists and tasks
	Delete(id uint64) error
}

// ListRepository defines the interface for list data access.
// Every method that takes a userID scopes its queries by it; a row
// owned by someone else behaves exactly like a missing row.
type ListRepository interface {
	// Create inserts a list, assigning the next position in the
	// owner's sequence within the same transaction.
	Create(list *models.List) error

	// FindOwned finds a list by (id, owner)
	FindOwned(id, userID uint64) (*models.List, error)

	// ListByOwner returns the owner's lists ordered by position with tasks preloaded
	ListByOwner(userID uint64) ([]models.List, error)

	// IDsByOwner returns the ids of all lists the user owns
	IDsByOwner(userID uint64) ([]uint64, error)

	// Save persists changes to a list
	Save(list *models.List) error

	// Delete removes a list and all its tasks
	Delete(id, userID uint64) error

	// ReorderPositions assigns position = index for each id, atomically
	ReorderPositions(userID uint64, orderedIDs []uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a task, assigning the next position within its
	// list; fails if the list is not owned by task.UserID.
	Create(task *models.Task) error

	// FindOwned finds a task by (id, list, owner)
	FindOwned(id, listID, userID uint64) (*models.Task, error)

	// Save persists changes to a task
	Save(task *models.Task) error

	// Delete removes a task scoped by (id, list, owner)
	Delete(id, listID, userID uint64) error

	// ReorderPositions assigns position = index for every id that is a
	// task of the given list; ids outside the list are skipped.
	ReorderPositions(listID uint64, orderedIDs []uint64) error

	// MoveTasks applies the supplied placements, repointing each task
	// at the from/to list. Every referenced task must belong to userID
	// or the whole batch rolls back.
	MoveTasks(userID, fromListID, toListID uint64, fromTasks, toTasks []TaskPlacement) error
}
