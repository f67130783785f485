package services

import (
	"fmt"

	"prepwise-backend/internal/models"

	"gorm.io/gorm"
)

type WorkplaceService struct {
	db     *gorm.DB
	limits Limits
}

func NewWorkplaceService(db *gorm.DB, limits Limits) *WorkplaceService {
	return &WorkplaceService{db: db, limits: limits}
}

func (s *WorkplaceService) Create(user *models.User, name string) (*models.Workplace, error) {
	var count int64
	s.db.Model(&models.Workplace{}).Where("user_id = ?", user.ID).Count(&count)
	if err := s.limits.CheckWorkplaceCount(user.IsPremium, count); err != nil {
		return nil, err
	}

	workplace := models.Workplace{
		Name:   name,
		UserID: user.ID,
	}
	if err := s.db.Create(&workplace).Error; err != nil {
		return nil, err
	}
	return &workplace, nil
}

func (s *WorkplaceService) List(userID string) ([]models.Workplace, error) {
	var workplaces []models.Workplace
	err := s.db.Where("user_id = ?", userID).
		Preload("Quizzes").
		Preload("Quizzes.Questions").
		Find(&workplaces).Error
	return workplaces, err
}

// Delete removes a workplace and cascades to every quiz attached to it,
// including each quiz's questions, the owner's progress rows and the
// notes bound to those question ids.
func (s *WorkplaceService) Delete(userID, workplaceID string) error {
	var workplace models.Workplace
	if err := s.db.Where("id = ? AND user_id = ?", workplaceID, userID).First(&workplace).Error; err != nil {
		return fmt.Errorf("workplace %w", ErrNotFound)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var quizzes []models.Quiz
		if err := tx.Where("workplace_id = ?", workplaceID).Find(&quizzes).Error; err != nil {
			return err
		}
		for _, quiz := range quizzes {
			if err := deleteQuizCascade(tx, quiz.ID, userID); err != nil {
				return err
			}
		}
		return tx.Delete(&workplace).Error
	})
}
