package dto

import (
	"sort"

	"github.com/FbcGa/sparkTasks-backend/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ListID   uint64 `json:"list_id"`
	ID       uint64 `json:"id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// ListDTO represents a list with its tasks in API responses
type ListDTO struct {
	ID       uint64    `json:"id"`
	Title    string    `json:"title"`
	Position int       `json:"position"`
	Tasks    []TaskDTO `json:"tasks"`
}

// UserDTO represents a user with their lists in API responses
type UserDTO struct {
	ID    uint64    `json:"id"`
	Email string    `json:"email"`
	Lists []ListDTO `json:"lists"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ListID:   task.ListID,
		ID:       task.ID,
		Text:     task.Text,
		Position: task.Position,
	}
}

// ToListDTO converts a List model to ListDTO. Tasks are sorted by
// position at serialization time, never by storage order; id breaks
// ties so duplicate positions still serialize deterministically.
func ToListDTO(list models.List) ListDTO {
	tasks := make([]TaskDTO, len(list.Tasks))
	for i, task := range list.Tasks {
		tasks[i] = ToTaskDTO(task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].ID < tasks[j].ID
	})

	return ListDTO{
		ID:       list.ID,
		Title:    list.Title,
		Position: list.Position,
		Tasks:    tasks,
	}
}

// ToListDTOs converts a slice of lists, ordered by (position, id)
func ToListDTOs(lists []models.List) []ListDTO {
	dtos := make([]ListDTO, len(lists))
	for i, list := range lists {
		dtos[i] = ToListDTO(list)
	}
	sort.Slice(dtos, func(i, j int) bool {
		if dtos[i].Position != dtos[j].Position {
			return dtos[i].Position < dtos[j].Position
		}
		return dtos[i].ID < dtos[j].ID
	})
	return dtos
}

// ToUserDTO converts a User model and their lists to UserDTO
func ToUserDTO(user models.User, lists []models.List) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
		Lists: ToListDTOs(lists),
	}
}
