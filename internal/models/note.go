package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NoteVisibilityPublic = "public"
	NoteVisibilityGroup  = "group"
)

// CommunityNote keeps both the question id and the question's content
// hash. The hash is what lookups group by; the id is the compatibility
// path for notes created before fingerprinting existed.
type CommunityNote struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	QuestionID   string     `gorm:"size:36;index" json:"question_id"`
	QuestionHash string     `gorm:"size:16;index" json:"question_hash,omitempty"`
	UserID       string     `gorm:"size:36;not null;index" json:"user_id"`
	UserName     string     `gorm:"size:100;not null" json:"user_name"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	Visibility   string     `gorm:"size:10;not null;default:'public'" json:"visibility"`
	SharedWith   StringList `gorm:"type:text" json:"shared_with,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (n *CommunityNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
