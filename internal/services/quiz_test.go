package services

import (
	"fmt"
	"testing"

	"prepwise-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionBatch(n int, prefix string) []QuestionInput {
	batch := make([]QuestionInput, 0, n)
	for i := 0; i < n; i++ {
		batch = append(batch, QuestionInput{
			Text:               fmt.Sprintf("%s question %d?", prefix, i),
			CorrectAnswerLabel: "A",
			Options: models.OptionList{
				{ID: "o1", Label: "A", Text: "first"},
				{ID: "o2", Label: "B", Text: "second"},
			},
		})
	}
	return batch
}

func TestCreateQuizComputesFingerprints(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db, DefaultLimits())
	user := createUser(t, db, "alice", false)

	quiz, err := svc.Create(user, QuizInput{
		Title:    "CISM Block 1",
		Provider: "ISACA",
		Questions: []QuestionInput{
			{Text: "Risk ", CorrectAnswerLabel: "A", Options: models.OptionList{{ID: "o1", Label: "A", Text: "yes"}}},
		},
	})
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, models.Fingerprint("risk"), quiz.Questions[0].ContentHash)
}

func TestQuizCountQuota(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db, DefaultLimits())
	free := createUser(t, db, "free", false)
	premium := createUser(t, db, "premium", true)

	_, err := svc.Create(free, QuizInput{Title: "first"})
	require.NoError(t, err)

	_, err = svc.Create(free, QuizInput{Title: "second"})
	assert.True(t, IsQuotaError(err))

	for i := 0; i < 3; i++ {
		_, err = svc.Create(premium, QuizInput{Title: fmt.Sprintf("block %d", i)})
		require.NoError(t, err)
	}
}

func TestAppendQuestionsQuotaBoundary(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db, DefaultLimits())
	user := createUser(t, db, "alice", false)

	quiz, err := svc.Create(user, QuizInput{Title: "block", Questions: questionBatch(18, "initial")})
	require.NoError(t, err)

	// 18 + 3 = 21 exceeds the limit; nothing is persisted
	_, err = svc.AppendQuestions(user, quiz.ID, questionBatch(3, "over"))
	assert.True(t, IsQuotaError(err))
	var count int64
	db.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	assert.EqualValues(t, 18, count)

	// 18 + 2 = 20 is exactly at the limit
	updated, err := svc.AppendQuestions(user, quiz.ID, questionBatch(2, "edge"))
	require.NoError(t, err)
	assert.Len(t, updated.Questions, 20)
}

func TestAppendQuestionsUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db, DefaultLimits())
	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)

	quiz, err := svc.Create(alice, QuizInput{Title: "block"})
	require.NoError(t, err)

	_, err = svc.AppendQuestions(bob, quiz.ID, questionBatch(1, "x"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AppendQuestions(alice, "missing-id", questionBatch(1, "x"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteQuizCascade(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db, DefaultLimits())
	progressSvc := NewProgressService(db)
	noteSvc := NewNoteService(db)
	alice := createUser(t, db, "alice", true)
	bob := createUser(t, db, "bob", true)

	quiz, err := svc.Create(alice, QuizInput{Title: "block", Questions: questionBatch(2, "a")})
	require.NoError(t, err)
	questionID := quiz.Questions[0].ID

	// bob imports the same content independently
	bobQuiz, err := svc.Create(bob, QuizInput{Title: "bob block", Questions: questionBatch(2, "a")})
	require.NoError(t, err)

	answer := "o1"
	_, err = progressSvc.Upsert(alice.ID, ProgressUpdate{QuestionID: questionID, SelectedAnswer: &answer})
	require.NoError(t, err)

	_, err = noteSvc.Create(alice, NoteInput{QuestionID: questionID, Content: "note on alice's copy"})
	require.NoError(t, err)
	_, err = noteSvc.Create(bob, NoteInput{QuestionID: bobQuiz.Questions[0].ID, Content: "note on bob's copy"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(alice.ID, quiz.ID))

	var questions, progress, notes int64
	db.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questions)
	db.Model(&models.UserProgress{}).Where("user_id = ?", alice.ID).Count(&progress)
	db.Model(&models.CommunityNote{}).Count(&notes)
	assert.Zero(t, questions)
	assert.Zero(t, progress)
	// notes attached to bob's question ids survive; the pool is shared
	// by hash but deletion is by question id
	assert.EqualValues(t, 1, notes)

	assert.ErrorIs(t, svc.Delete(alice.ID, quiz.ID), ErrNotFound)
}
