package models

import "time"

// List is an ordered collection of tasks owned by a single user.
// Position is the zero-based rank within the owner's set of lists.
type List struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Tasks []Task `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}
