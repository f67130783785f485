package services

import (
	"errors"
	"fmt"

	"prepwise-backend/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// VisibleNotes resolves the notes a viewer may read for a question.
// The pool is keyed by the question's content hash, so identical
// questions imported independently by different users share one note
// pool. Questions written before fingerprinting existed fall back to
// exact question-id matching.
func (s *NoteService) VisibleNotes(viewer *models.User, questionID string) ([]models.CommunityNote, error) {
	var question models.Question
	if err := s.db.Where("id = ?", questionID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.CommunityNote{}, nil
		}
		return nil, err
	}

	var pool []models.CommunityNote
	query := s.db.Order("created_at DESC")
	if question.ContentHash != "" {
		query = query.Where("question_hash = ?", question.ContentHash)
	} else {
		query = query.Where("question_id = ?", questionID)
	}
	if err := query.Find(&pool).Error; err != nil {
		return nil, err
	}

	visible := lo.Filter(pool, func(note models.CommunityNote, _ int) bool {
		return noteVisibleTo(viewer, note)
	})
	return visible, nil
}

// noteVisibleTo is a pure function of the viewer identity and the
// note's own permissions; ownership of the target question never
// enters the decision.
func noteVisibleTo(viewer *models.User, note models.CommunityNote) bool {
	if note.Visibility == models.NoteVisibilityPublic {
		return true
	}
	if note.Visibility == models.NoteVisibilityGroup {
		if note.UserID == viewer.ID {
			return true
		}
		return note.SharedWith.Contains(viewer.Username)
	}
	return false
}

type NoteInput struct {
	QuestionID string   `json:"question_id" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	Visibility string   `json:"visibility"`
	SharedWith []string `json:"shared_with"`
}

// Create stores a note, denormalizing the target question's content
// hash onto it so future lookups never need a join back to the quiz.
// Group notes are premium-only; unknown recipient usernames are dropped
// silently rather than failing the write.
func (s *NoteService) Create(author *models.User, input NoteInput) (*models.CommunityNote, error) {
	visibility := input.Visibility
	if visibility == "" {
		visibility = models.NoteVisibilityPublic
	}
	if visibility != models.NoteVisibilityPublic && visibility != models.NoteVisibilityGroup {
		return nil, fmt.Errorf("unknown visibility %q", visibility)
	}

	var questionHash string
	var question models.Question
	if err := s.db.Where("id = ?", input.QuestionID).First(&question).Error; err == nil {
		questionHash = question.ContentHash
	}

	var sharedWith models.StringList
	if visibility == models.NoteVisibilityGroup {
		if !author.IsPremium {
			return nil, &QuotaError{Reason: "sharing notes with groups requires a premium account"}
		}
		if len(input.SharedWith) > 0 {
			var existing []string
			if err := s.db.Model(&models.User{}).
				Where("username IN ?", input.SharedWith).
				Pluck("username", &existing).Error; err != nil {
				return nil, err
			}
			valid := lo.Filter(input.SharedWith, func(u string, _ int) bool {
				return lo.Contains(existing, u)
			})
			if len(valid) > 0 {
				sharedWith = valid
			}
		}
	}

	note := models.CommunityNote{
		QuestionID:   input.QuestionID,
		QuestionHash: questionHash,
		UserID:       author.ID,
		UserName:     author.Username,
		Content:      input.Content,
		Visibility:   visibility,
		SharedWith:   sharedWith,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}
