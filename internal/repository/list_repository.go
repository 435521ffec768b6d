package repository

import (
	"github.com/FbcGa/sparkTasks-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormListRepository is a GORM implementation of ListRepository
type GormListRepository struct {
	db *gorm.DB
}

// NewListRepository creates a new ListRepository
func NewListRepository(db *gorm.DB) ListRepository {
	return &GormListRepository{db: db}
}

// lockForUpdate adds a FOR UPDATE clause where the dialect supports it.
// sqlite has no row locks; its single-writer model already serializes
// the read-max-then-insert sequence.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Create inserts the list with position = 1 + max(position) over the
// owner's lists (0 for the first one). The owner's user row is locked
// for the duration of the transaction so concurrent creations for the
// same owner cannot read the same max.
func (r *GormListRepository) Create(list *models.List) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := lockForUpdate(tx).First(&owner, list.UserID).Error; err != nil {
			return err
		}

		var maxPosition int
		err := tx.Model(&models.List{}).
			Where("user_id = ?", list.UserID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&maxPosition).Error
		if err != nil {
			return err
		}

		list.Position = maxPosition + 1
		return tx.Create(list).Error
	})
}

// FindOwned finds a list by (id, owner)
func (r *GormListRepository) FindOwned(id, userID uint64) (*models.List, error) {
	var list models.List
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// ListByOwner returns the owner's lists ordered by position (id as
// tiebreak) with their tasks preloaded. Task ordering is left to the
// serialization layer.
func (r *GormListRepository) ListByOwner(userID uint64) ([]models.List, error) {
	var lists []models.List
	err := r.db.Where("user_id = ?", userID).
		Order("position, id").
		Preload("Tasks").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// IDsByOwner returns the ids of all lists the user owns
func (r *GormListRepository) IDsByOwner(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.List{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Save persists changes to a list
func (r *GormListRepository) Save(list *models.List) error {
	return r.db.Save(list).Error
}

// Delete removes the list and its tasks in one transaction. Sibling
// lists are not renumbered; position gaps are tolerated until the next
// reorder.
func (r *GormListRepository) Delete(id, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var list models.List
		if err := lockForUpdate(tx).Where("id = ? AND user_id = ?", id, userID).First(&list).Error; err != nil {
			return err
		}

		if err := tx.Where("list_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&list).Error
	})
}

// ReorderPositions assigns position = index in orderedIDs to each list,
// all within one transaction. Callers validate that orderedIDs is
// exactly the owner's list set before calling.
func (r *GormListRepository) ReorderPositions(userID uint64, orderedIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for position, id := range orderedIDs {
			err := tx.Model(&models.List{}).
				Where("id = ? AND user_id = ?", id, userID).
				Update("position", position).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
