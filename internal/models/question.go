package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question stores its options as an embedded JSON list rather than a
// join table; options are ordered and addressed by label.
type Question struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	QuizID             string     `gorm:"size:36;not null;index" json:"quiz_id"`
	Text               string     `gorm:"type:text;not null" json:"text"`
	CorrectAnswerLabel string     `gorm:"size:10" json:"correct_answer_label"`
	Explanation        string     `gorm:"type:text" json:"explanation,omitempty"`
	Options            OptionList `gorm:"type:text" json:"options"`
	ContentHash        string     `gorm:"size:16;index" json:"content_hash,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
}
