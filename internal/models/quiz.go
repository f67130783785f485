package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quiz struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"size:36;not null;index" json:"user_id"`
	WorkplaceID *string    `gorm:"size:36;index" json:"workplace_id,omitempty"`
	Title       string     `gorm:"size:255;not null;index" json:"title"`
	Description string     `gorm:"size:1000" json:"description,omitempty"`
	Provider    string     `gorm:"size:100" json:"provider,omitempty"`
	FileName    string     `gorm:"size:255" json:"file_name,omitempty"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
