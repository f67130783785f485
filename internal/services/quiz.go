package services

import (
	"fmt"

	"prepwise-backend/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type QuizService struct {
	db     *gorm.DB
	limits Limits
}

func NewQuizService(db *gorm.DB, limits Limits) *QuizService {
	return &QuizService{db: db, limits: limits}
}

type QuestionInput struct {
	ID                 string           `json:"id"`
	Text               string           `json:"text" binding:"required"`
	CorrectAnswerLabel string           `json:"correct_answer_label"`
	Explanation        string           `json:"explanation"`
	Options            models.OptionList `json:"options"`
}

type QuizInput struct {
	Title       string          `json:"title" binding:"required,min=1,max=255"`
	Description string          `json:"description"`
	Provider    string          `json:"provider"`
	FileName    string          `json:"file_name"`
	WorkplaceID *string         `json:"workplace_id"`
	Questions   []QuestionInput `json:"questions"`
}

// Create stores a quiz and its imported questions in one transaction.
// Every question gets a content fingerprint at write time; note lookups
// rely on it being present from the start.
func (s *QuizService) Create(user *models.User, input QuizInput) (*models.Quiz, error) {
	var count int64
	s.db.Model(&models.Quiz{}).Where("user_id = ?", user.ID).Count(&count)
	if err := s.limits.CheckQuizCount(user.IsPremium, count); err != nil {
		return nil, err
	}
	if err := s.limits.CheckQuestionTotal(user.IsPremium, len(input.Questions)); err != nil {
		return nil, err
	}

	quiz := models.Quiz{
		UserID:      user.ID,
		WorkplaceID: input.WorkplaceID,
		Title:       input.Title,
		Description: input.Description,
		Provider:    input.Provider,
		FileName:    input.FileName,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		for _, q := range input.Questions {
			question := models.Question{
				ID:                 q.ID,
				QuizID:             quiz.ID,
				Text:               q.Text,
				CorrectAnswerLabel: q.CorrectAnswerLabel,
				Explanation:        q.Explanation,
				Options:            q.Options,
				ContentHash:        models.Fingerprint(q.Text),
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Questions").First(&quiz, "id = ?", quiz.ID)
	return &quiz, nil
}

// AppendQuestions adds questions to an existing quiz. The quota check
// runs against the resulting total, not the incoming batch.
func (s *QuizService) AppendQuestions(user *models.User, quizID string, questions []QuestionInput) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND user_id = ?", quizID, user.ID).First(&quiz).Error; err != nil {
		return nil, fmt.Errorf("quiz %w", ErrNotFound)
	}

	var current int64
	s.db.Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&current)
	if err := s.limits.CheckQuestionTotal(user.IsPremium, int(current)+len(questions)); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, q := range questions {
			question := models.Question{
				ID:                 q.ID,
				QuizID:             quizID,
				Text:               q.Text,
				CorrectAnswerLabel: q.CorrectAnswerLabel,
				Explanation:        q.Explanation,
				Options:            q.Options,
				ContentHash:        models.Fingerprint(q.Text),
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Questions").First(&quiz, "id = ?", quizID)
	return &quiz, nil
}

func (s *QuizService) List(userID string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Where("user_id = ?", userID).
		Preload("Questions").
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

func (s *QuizService) Delete(userID, quizID string) error {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND user_id = ?", quizID, userID).First(&quiz).Error; err != nil {
		return fmt.Errorf("quiz %w", ErrNotFound)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteQuizCascade(tx, quizID, userID)
	})
}

// deleteQuizCascade removes a quiz, its questions, the caller's
// progress rows for those questions and the notes attached to those
// specific question ids. Notes on other copies of the same content keep
// living under their own ids.
func deleteQuizCascade(tx *gorm.DB, quizID, userID string) error {
	var questions []models.Question
	if err := tx.Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
		return err
	}
	questionIDs := lo.Map(questions, func(q models.Question, _ int) string { return q.ID })

	if len(questionIDs) > 0 {
		if err := tx.Where("question_id IN ? AND user_id = ?", questionIDs, userID).
			Delete(&models.UserProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN ?", questionIDs).
			Delete(&models.CommunityNote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("id = ?", quizID).Delete(&models.Quiz{}).Error
}
