package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered reader, reporter, editor or admin.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FullName     string    `json:"full_name" gorm:"size:255;not null;index"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:50;default:'user';index"`
	Avatar       string    `json:"avatar,omitempty" gorm:"size:512"`
	CoverImage   string    `json:"cover_image,omitempty" gorm:"size:512"`
	Bio          string    `json:"bio" gorm:"size:250"`
	RefreshToken string    `json:"-" gorm:"size:512"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Weak references to articles, no cascading delete.
	Bookmarks      []Article `json:"bookmarks,omitempty" gorm:"many2many:user_bookmarks"`
	ReadingHistory []Article `json:"reading_history,omitempty" gorm:"many2many:user_reading_history"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
