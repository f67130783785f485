package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProgress holds one row per (user, question) pair, created lazily
// on first answer and updated in place afterwards.
type UserProgress struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id"`
	UserID               string    `gorm:"size:36;not null;uniqueIndex:idx_user_question" json:"user_id"`
	QuestionID           string    `gorm:"size:36;not null;uniqueIndex:idx_user_question" json:"question_id"`
	SelectedAnswer       *string   `gorm:"size:36" json:"selected_answer,omitempty"`
	IsFlaggedDisagreeKey bool      `gorm:"not null;default:false" json:"is_flagged_disagree_key"`
	IsFlaggedDisagreeAI  bool      `gorm:"not null;default:false" json:"is_flagged_disagree_ai"`
	AIAnalysis           *string   `gorm:"type:text" json:"ai_analysis,omitempty"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (p *UserProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
