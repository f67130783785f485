package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"prepwise-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const analyzeSystemPrompt = "You are an expert certification exam tutor. Provide concise, clear analysis."

const generateSystemPrompt = `You are a quiz generator for certification exam practice. You must respond with ONLY a valid JSON array (no markdown, no code fences, no explanations) in the following format:

[
  {
    "text": "Question text",
    "options": [
      {"label": "A", "text": "Option 1"},
      {"label": "B", "text": "Option 2"},
      {"label": "C", "text": "Option 3"},
      {"label": "D", "text": "Option 4"}
    ],
    "correct_answer_label": "A",
    "explanation": "Detailed explanation"
  }
]

Rules:
- Each question must have exactly 4 options (A, B, C, D)
- Exactly one correct_answer_label per question
- Return ONLY the JSON array, nothing else`

// AIService brokers question analysis and generation through a single
// completion provider. Calls out never hold a database transaction; the
// flow reads its inputs, performs the external call, then writes the
// result back separately.
type AIService struct {
	db       *gorm.DB
	provider CompletionProvider
	progress *ProgressService
	log      *logrus.Logger
}

func NewAIService(db *gorm.DB, provider CompletionProvider, progress *ProgressService, log *logrus.Logger) *AIService {
	return &AIService{db: db, provider: provider, progress: progress, log: log}
}

func (s *AIService) IsAvailable() bool {
	return s.provider.IsAvailable()
}

// AnalyzeQuestion asks the provider to explain a question's answer key
// and caches the analysis on the caller's progress row.
func (s *AIService) AnalyzeQuestion(ctx context.Context, user *models.User, questionID string) (string, error) {
	if !user.IsPremium {
		return "", fmt.Errorf("AI analysis requires a premium account: %w", ErrForbidden)
	}

	var question models.Question
	if err := s.db.Where("id = ?", questionID).First(&question).Error; err != nil {
		return "", fmt.Errorf("question %w", ErrNotFound)
	}

	analysis, err := s.provider.Complete(ctx, analyzeSystemPrompt, renderAnalyzePrompt(question))
	if err != nil {
		s.log.WithError(err).Warn("question analysis failed")
		return "", fmt.Errorf("analysis failed: %w", err)
	}

	// Cache in a separate write so the external call never spans a
	// transaction boundary.
	if _, err := s.progress.Upsert(user.ID, ProgressUpdate{
		QuestionID: questionID,
		AIAnalysis: &analysis,
	}); err != nil {
		return "", err
	}
	return analysis, nil
}

func renderAnalyzePrompt(question models.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this exam question. Explain the correct answer and why other options are incorrect.\n\n")
	fmt.Fprintf(&b, "Question: %s\n\nOptions:\n", question.Text)
	for _, opt := range question.Options {
		fmt.Fprintf(&b, "%s) %s\n", opt.Label, opt.Text)
	}
	fmt.Fprintf(&b, "\nCorrect Answer: %s\n", question.CorrectAnswerLabel)
	explanation := question.Explanation
	if explanation == "" {
		explanation = "None provided"
	}
	fmt.Fprintf(&b, "\nExisting Explanation: %s\n\nProvide a concise analysis.", explanation)
	return b.String()
}

type generatedQuestion struct {
	Text               string            `json:"text"`
	Options            models.OptionList `json:"options"`
	CorrectAnswerLabel string            `json:"correct_answer_label"`
	Explanation        string            `json:"explanation"`
}

// GenerateQuestions asks the provider for a batch of practice questions
// matching the import schema. Malformed JSON from the provider is a
// recoverable failure, never a crash.
func (s *AIService) GenerateQuestions(ctx context.Context, user *models.User, examName, difficulty string, count int) ([]QuestionInput, error) {
	if !user.IsPremium {
		return nil, fmt.Errorf("AI generation requires a premium account: %w", ErrForbidden)
	}
	if count <= 0 {
		count = 5
	}
	if difficulty == "" {
		difficulty = "Medium"
	}

	prompt := fmt.Sprintf("Generate %d practice questions for the %s exam at %q difficulty.", count, examName, difficulty)
	raw, err := s.provider.Complete(ctx, generateSystemPrompt, prompt)
	if err != nil {
		s.log.WithError(err).Warn("question generation failed")
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	var generated []generatedQuestion
	if err := json.Unmarshal([]byte(cleanJSONContent(raw)), &generated); err != nil {
		s.log.WithError(err).Warn("generation returned invalid JSON")
		return nil, fmt.Errorf("provider returned invalid JSON: %w", err)
	}

	questions := make([]QuestionInput, 0, len(generated))
	for _, g := range generated {
		questions = append(questions, QuestionInput{
			Text:               g.Text,
			CorrectAnswerLabel: g.CorrectAnswerLabel,
			Explanation:        g.Explanation,
			Options:            g.Options,
		})
	}
	return questions, nil
}

// cleanJSONContent strips the markdown code fences some models wrap
// around JSON output despite instructions.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
