package services

import (
	"math"
	"sort"
	"strings"

	"prepwise-backend/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type StudyGroupService struct {
	db *gorm.DB
}

func NewStudyGroupService(db *gorm.DB) *StudyGroupService {
	return &StudyGroupService{db: db}
}

func (s *StudyGroupService) Create(creator *models.User, name string, members []string) (*models.StudyGroup, error) {
	if !creator.IsPremium {
		return nil, &QuotaError{Reason: "study groups require a premium account"}
	}
	group := models.StudyGroup{
		Name:      name,
		CreatorID: creator.ID,
		Members:   members,
	}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns the groups the user created. Non-premium users get an
// empty list rather than an error.
func (s *StudyGroupService) List(user *models.User) ([]models.StudyGroup, error) {
	if !user.IsPremium {
		return []models.StudyGroup{}, nil
	}
	var groups []models.StudyGroup
	err := s.db.Where("creator_id = ?", user.ID).Find(&groups).Error
	return groups, err
}

type QuizProgress struct {
	Title             string  `json:"title"`
	Provider          string  `json:"provider"`
	TotalQuestions    int     `json:"total_questions"`
	AnsweredQuestions int     `json:"answered_questions"`
	ProgressPercent   float64 `json:"progress_percent"`
}

type MemberStats struct {
	Username string         `json:"username"`
	Exists   bool           `json:"exists"`
	Quizzes  []QuizProgress `json:"quizzes"`
}

type GroupView struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Members        []string      `json:"members"`
	NotesCount     int           `json:"notes_count"`
	QuestionsCount int           `json:"questions_count"`
	IsNamed        bool          `json:"is_named"`
	MembersStats   []MemberStats `json:"members_stats"`
}

type groupEntry struct {
	id        string
	name      string
	members   []string
	notes     int
	questions map[string]struct{}
	isNamed   bool
}

// Dashboard folds the owner's named study groups and the ad-hoc groups
// implied by their group-visibility notes into one view. Entries are
// keyed by the sorted member set, so a named group and notes shared
// with the same people collapse into a single row. Pure read; nothing
// is cached or mutated.
func (s *StudyGroupService) Dashboard(owner *models.User) ([]GroupView, error) {
	if !owner.IsPremium {
		return []GroupView{}, nil
	}

	var namedGroups []models.StudyGroup
	if err := s.db.Where("creator_id = ?", owner.ID).Find(&namedGroups).Error; err != nil {
		return nil, err
	}

	var groupNotes []models.CommunityNote
	if err := s.db.Where("user_id = ? AND visibility = ?", owner.ID, models.NoteVisibilityGroup).
		Find(&groupNotes).Error; err != nil {
		return nil, err
	}

	entries := make(map[string]*groupEntry)
	var order []string

	for _, g := range namedGroups {
		key := memberKey(g.Members)
		if _, ok := entries[key]; ok {
			continue
		}
		entries[key] = &groupEntry{
			id:        g.ID,
			name:      g.Name,
			members:   g.Members,
			questions: make(map[string]struct{}),
			isNamed:   true,
		}
		order = append(order, key)
	}

	for _, note := range groupNotes {
		if len(note.SharedWith) == 0 {
			continue
		}
		key := memberKey(note.SharedWith)
		entry, ok := entries[key]
		if !ok {
			entry = &groupEntry{
				id:        strings.Join(note.SharedWith, "-"),
				name:      "Ad-hoc Group",
				members:   note.SharedWith,
				questions: make(map[string]struct{}),
				isNamed:   false,
			}
			entries[key] = entry
			order = append(order, key)
		}
		entry.notes++
		if note.QuestionID != "" {
			entry.questions[note.QuestionID] = struct{}{}
		}
	}

	views := make([]GroupView, 0, len(order))
	for _, key := range order {
		entry := entries[key]
		stats := make([]MemberStats, 0, len(entry.members))
		for _, username := range entry.members {
			stats = append(stats, s.memberStats(username))
		}
		views = append(views, GroupView{
			ID:             entry.id,
			Name:           entry.name,
			Members:        entry.members,
			NotesCount:     entry.notes,
			QuestionsCount: len(entry.questions),
			IsNamed:        entry.isNamed,
			MembersStats:   stats,
		})
	}
	return views, nil
}

// memberKey builds an order-independent key for a member set.
func memberKey(members []string) string {
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

// memberStats computes per-quiz answered/total progress for one member.
// A username that no longer resolves to a user is reported as
// non-existent instead of failing the whole dashboard.
func (s *StudyGroupService) memberStats(username string) MemberStats {
	var member models.User
	if err := s.db.Where("username = ?", username).First(&member).Error; err != nil {
		return MemberStats{Username: username, Exists: false, Quizzes: []QuizProgress{}}
	}

	var quizzes []models.Quiz
	s.db.Where("user_id = ?", member.ID).Preload("Questions").Find(&quizzes)

	stats := MemberStats{Username: username, Exists: true, Quizzes: []QuizProgress{}}
	for _, quiz := range quizzes {
		total := len(quiz.Questions)
		answered := 0
		if total > 0 {
			questionIDs := lo.Map(quiz.Questions, func(q models.Question, _ int) string { return q.ID })
			var count int64
			s.db.Model(&models.UserProgress{}).
				Where("user_id = ? AND question_id IN ?", member.ID, questionIDs).
				Count(&count)
			answered = int(count)
		}

		percent := 0.0
		if total > 0 {
			percent = math.Round(float64(answered)/float64(total)*1000) / 10
		}
		stats.Quizzes = append(stats.Quizzes, QuizProgress{
			Title:             quiz.Title,
			Provider:          quiz.Provider,
			TotalQuestions:    total,
			AnsweredQuestions: answered,
			ProgressPercent:   percent,
		})
	}
	return stats
}
