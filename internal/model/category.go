package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a taxonomy node articles are filed under.
// Archived categories stay in storage but must not receive new articles.
type Category struct {
	ID         uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name       string     `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Slug       string     `json:"slug" gorm:"size:255;not null;index"`
	OwnerID    *uuid.UUID `json:"owner,omitempty" gorm:"type:char(36);index"`
	IsArchived bool       `json:"is_archived" gorm:"default:false;index"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
