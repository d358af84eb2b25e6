package domain

import (
	"time"
)

// Post is a blog entry owned by exactly one user. AuthorID is set at
// creation and never changes; there is no transfer operation.
//
// Slug is cosmetic only. It is not unique and routing is always by ID.
type Post struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text"`
	Slug      string    `json:"slug" gorm:"size:255"`
	AuthorID  int64     `json:"authorId" gorm:"not null;index"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
