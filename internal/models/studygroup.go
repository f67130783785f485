package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudyGroup struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Name      string     `gorm:"size:255;not null;index" json:"name"`
	CreatorID string     `gorm:"size:36;not null;index" json:"creator_id"`
	Members   StringList `gorm:"type:text" json:"members"`
	CreatedAt time.Time  `json:"created_at"`
}

func (g *StudyGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
