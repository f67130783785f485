package services

import (
	"errors"

	"prepwise-backend/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

type ProgressUpdate struct {
	QuestionID           string  `json:"question_id" binding:"required"`
	SelectedAnswer       *string `json:"selected_answer"`
	IsFlaggedDisagreeKey *bool   `json:"is_flagged_disagree_key"`
	IsFlaggedDisagreeAI  *bool   `json:"is_flagged_disagree_ai"`
	AIAnalysis           *string `json:"ai_analysis"`
}

// Upsert keeps at most one progress row per (user, question). Fields
// left nil in the update are preserved. Concurrent writes to the same
// pair are last-write-wins.
func (s *ProgressService) Upsert(userID string, update ProgressUpdate) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := s.db.Where("question_id = ? AND user_id = ?", update.QuestionID, userID).First(&progress).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.UserProgress{
			UserID:         userID,
			QuestionID:     update.QuestionID,
			SelectedAnswer: update.SelectedAnswer,
			AIAnalysis:     update.AIAnalysis,
		}
		if update.IsFlaggedDisagreeKey != nil {
			progress.IsFlaggedDisagreeKey = *update.IsFlaggedDisagreeKey
		}
		if update.IsFlaggedDisagreeAI != nil {
			progress.IsFlaggedDisagreeAI = *update.IsFlaggedDisagreeAI
		}
		if err := s.db.Create(&progress).Error; err != nil {
			return nil, err
		}
		return &progress, nil
	} else if err != nil {
		return nil, err
	}

	if update.SelectedAnswer != nil {
		progress.SelectedAnswer = update.SelectedAnswer
	}
	if update.IsFlaggedDisagreeKey != nil {
		progress.IsFlaggedDisagreeKey = *update.IsFlaggedDisagreeKey
	}
	if update.IsFlaggedDisagreeAI != nil {
		progress.IsFlaggedDisagreeAI = *update.IsFlaggedDisagreeAI
	}
	if update.AIAnalysis != nil {
		progress.AIAnalysis = update.AIAnalysis
	}
	if err := s.db.Save(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (s *ProgressService) List(userID string) ([]models.UserProgress, error) {
	var rows []models.UserProgress
	err := s.db.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

// ResetQuiz clears the caller's progress for every question in a quiz.
func (s *ProgressService) ResetQuiz(userID, quizID string) error {
	var questions []models.Question
	if err := s.db.Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
		return err
	}
	if len(questions) == 0 {
		return nil
	}
	questionIDs := lo.Map(questions, func(q models.Question, _ int) string { return q.ID })
	return s.db.Where("question_id IN ? AND user_id = ?", questionIDs, userID).
		Delete(&models.UserProgress{}).Error
}

func (s *ProgressService) ResetAll(userID string) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.UserProgress{}).Error
}
