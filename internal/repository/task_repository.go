package repository

import (
	"github.com/FbcGa/sparkTasks-backend/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts the task with position = 1 + max(position) over the
// list's tasks (0 for the first one). The list row is locked, scoped by
// the creating user, which both serializes concurrent position reads
// per list and rejects lists the user does not own.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var list models.List
		err := lockForUpdate(tx).
			Where("id = ? AND user_id = ?", task.ListID, task.UserID).
			First(&list).Error
		if err != nil {
			return err
		}

		var maxPosition int
		err = tx.Model(&models.Task{}).
			Where("list_id = ?", task.ListID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&maxPosition).Error
		if err != nil {
			return err
		}

		task.Position = maxPosition + 1
		return tx.Create(task).Error
	})
}

// FindOwned finds a task by (id, list, owner)
func (r *GormTaskRepository) FindOwned(id, listID, userID uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.Where("id = ? AND list_id = ? AND user_id = ?", id, listID, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Save persists changes to a task
func (r *GormTaskRepository) Save(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task scoped by (id, list, owner). Siblings keep
// their positions; gaps are tolerated until the next reorder.
func (r *GormTaskRepository) Delete(id, listID, userID uint64) error {
	res := r.db.Where("id = ? AND list_id = ? AND user_id = ?", id, listID, userID).
		Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReorderPositions assigns position = index in orderedIDs to every id
// that is currently a task of the list. Ids belonging to other lists,
// or to nothing at all, are skipped; their index still counts, so a
// sequence with strangers in it leaves gaps.
func (r *GormTaskRepository) ReorderPositions(listID uint64, orderedIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint64
		err := tx.Model(&models.Task{}).
			Where("list_id = ?", listID).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}

		members := make(map[uint64]struct{}, len(ids))
		for _, id := range ids {
			members[id] = struct{}{}
		}

		for position, id := range orderedIDs {
			if _, ok := members[id]; !ok {
				continue
			}
			err := tx.Model(&models.Task{}).
				Where("id = ? AND list_id = ?", id, listID).
				Update("position", position).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// MoveTasks sets the supplied position on every referenced task and
// repoints it at the from/to list. Ownership of every referenced id is
// verified inside the transaction before anything is written; a single
// foreign id fails the whole batch.
func (r *GormTaskRepository) MoveTasks(userID, fromListID, toListID uint64, fromTasks, toTasks []TaskPlacement) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ids := placementIDs(fromTasks, toTasks)
		if len(ids) > 0 {
			var count int64
			err := tx.Model(&models.Task{}).
				Where("id IN ? AND user_id = ?", ids, userID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count != int64(len(ids)) {
				return gorm.ErrRecordNotFound
			}
		}

		if err := applyPlacements(tx, fromListID, fromTasks); err != nil {
			return err
		}
		return applyPlacements(tx, toListID, toTasks)
	})
}

func applyPlacements(tx *gorm.DB, listID uint64, placements []TaskPlacement) error {
	for _, p := range placements {
		err := tx.Model(&models.Task{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"position": p.Position,
				"list_id":  listID,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// placementIDs collects the distinct task ids referenced by both sides
// of a move.
func placementIDs(groups ...[]TaskPlacement) []uint64 {
	seen := make(map[uint64]struct{})
	var ids []uint64
	for _, group := range groups {
		for _, p := range group {
			if _, exists := seen[p.ID]; exists {
				continue
			}
			seen[p.ID] = struct{}{}
			ids = append(ids, p.ID)
		}
	}
	return ids
}
