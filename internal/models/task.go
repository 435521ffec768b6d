package models

import "time"

// Task belongs to exactly one list. UserID duplicates the list owner's
// id so every query can scope by the acting user without a join.
// Position is the zero-based rank within the task's list.
type Task struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Text      string    `gorm:"type:varchar(255);not null" json:"text"`
	Position  int       `gorm:"not null" json:"position"`
	ListID    uint64    `gorm:"not null;index" json:"list_id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	List List `gorm:"foreignKey:ListID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}
