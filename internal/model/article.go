package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArticleStatus is the publishing state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusPublished ArticleStatus = "PUBLISHED"
	StatusArchived  ArticleStatus = "ARCHIVED"
	// StatusBlocked is reserved for moderation. No endpoint sets it.
	StatusBlocked ArticleStatus = "BLOCKED"
)

// Tags is an ordered tag list stored as a JSON column. Duplicates allowed.
type Tags []string

// Value implements driver.Valuer.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner.
func (t *Tags) Scan(value interface{}) error {
	if value == nil {
		*t = Tags{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}
	return json.Unmarshal(raw, t)
}

// Article is a news article moving through DRAFT -> PUBLISHED -> ARCHIVED.
// IsArchived is the authoritative soft-delete gate; StatusArchived mirrors it
// and both are set together, one-way.
type Article struct {
	ID         uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	Slug       string        `json:"slug" gorm:"uniqueIndex;size:320;not null"`
	Title      string        `json:"title" gorm:"size:300;not null;index"`
	Content    string        `json:"content" gorm:"type:longtext;not null"`
	Thumbnail  string        `json:"thumbnail" gorm:"size:512;not null"`
	Status     ArticleStatus `json:"status" gorm:"size:20;default:'DRAFT';index"`
	IsArchived bool          `json:"is_archived" gorm:"default:false;index"`
	CategoryID uuid.UUID     `json:"category_id" gorm:"type:char(36);not null;index"`
	AuthorID   uuid.UUID     `json:"author_id" gorm:"type:char(36);not null;index"`
	Views      int64         `json:"views" gorm:"default:0"`
	IsFeatured bool          `json:"is_featured" gorm:"default:false"`
	Tags       Tags          `json:"tags" gorm:"type:json"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	// Relations (display fields only, loaded on reads)
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
