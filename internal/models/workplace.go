package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Workplace struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	Quizzes   []Quiz    `gorm:"foreignKey:WorkplaceID" json:"quizzes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (w *Workplace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
