package domain

import (
	"time"
)

// User is a registered account. PasswordHash is the only secret material
// stored; the plaintext password is discarded at registration time.
type User struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Username      string    `json:"username" gorm:"uniqueIndex;size:64;not null"`
	Name          string    `json:"name" gorm:"size:128;not null"`
	Email         string    `json:"email" gorm:"uniqueIndex;size:128"`
	FavoriteColor string    `json:"favoriteColor" gorm:"size:64"`
	Role          Role      `json:"role" gorm:"size:32;not null;default:regular"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Identity returns the identity this user authenticates as.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Role: u.Role}
}
