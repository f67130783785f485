package services

import (
	"testing"
	"time"

	"prepwise-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createQuestion(t *testing.T, db *gorm.DB, quizID, text string, withHash bool) *models.Question {
	t.Helper()
	question := models.Question{
		QuizID: quizID,
		Text:   text,
	}
	if withHash {
		question.ContentHash = models.Fingerprint(text)
	}
	require.NoError(t, db.Create(&question).Error)
	return &question
}

func TestCrossUserNoteSharing(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)

	// identical content imported independently, different ids and owners
	aliceQ := createQuestion(t, db, "quiz-a", "What is residual risk?", true)
	bobQ := createQuestion(t, db, "quiz-b", "  what is RESIDUAL risk?  ", true)

	_, err := svc.Create(alice, NoteInput{QuestionID: aliceQ.ID, Content: "remember the formula"})
	require.NoError(t, err)

	notes, err := svc.VisibleNotes(bob, bobQ.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "remember the formula", notes[0].Content)
	assert.Equal(t, "alice", notes[0].UserName)
}

func TestGroupNoteVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := createUser(t, db, "alice", true)
	bob := createUser(t, db, "bob", false)
	carol := createUser(t, db, "carol", false)

	question := createQuestion(t, db, "quiz-a", "group visibility question", true)

	_, err := svc.Create(alice, NoteInput{
		QuestionID: question.ID,
		Content:    "for bob only",
		Visibility: models.NoteVisibilityGroup,
		SharedWith: []string{"bob"},
	})
	require.NoError(t, err)

	for _, tc := range []struct {
		viewer  *models.User
		visible bool
	}{
		{alice, true}, // author
		{bob, true},   // recipient
		{carol, false},
	} {
		notes, err := svc.VisibleNotes(tc.viewer, question.ID)
		require.NoError(t, err)
		if tc.visible {
			assert.Len(t, notes, 1, "viewer %s", tc.viewer.Username)
		} else {
			assert.Empty(t, notes, "viewer %s", tc.viewer.Username)
		}
	}
}

func TestVisibilityFallbackWithoutFingerprint(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)

	// legacy questions, no content hash
	legacyQ := createQuestion(t, db, "quiz-a", "legacy question", false)
	otherLegacyQ := createQuestion(t, db, "quiz-b", "legacy question", false)

	_, err := svc.Create(alice, NoteInput{QuestionID: legacyQ.ID, Content: "old note"})
	require.NoError(t, err)

	notes, err := svc.VisibleNotes(bob, legacyQ.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	// identical text is not enough without a fingerprint
	notes, err = svc.VisibleNotes(bob, otherLegacyQ.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestVisibleNotesOrderedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := createUser(t, db, "alice", false)

	question := createQuestion(t, db, "quiz-a", "ordering question", true)

	base := time.Now().Add(-time.Hour)
	for i, content := range []string{"oldest", "middle", "newest"} {
		note := models.CommunityNote{
			QuestionID:   question.ID,
			QuestionHash: question.ContentHash,
			UserID:       alice.ID,
			UserName:     alice.Username,
			Content:      content,
			Visibility:   models.NoteVisibilityPublic,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&note).Error)
	}

	notes, err := svc.VisibleNotes(alice, question.ID)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "newest", notes[0].Content)
	assert.Equal(t, "oldest", notes[2].Content)
}

func TestVisibleNotesUnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := createUser(t, db, "alice", false)

	notes, err := svc.VisibleNotes(alice, "does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestCreateGroupNoteRequiresPremium(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	free := createUser(t, db, "free", false)
	question := createQuestion(t, db, "quiz-a", "q", true)

	_, err := svc.Create(free, NoteInput{
		QuestionID: question.ID,
		Content:    "x",
		Visibility: models.NoteVisibilityGroup,
		SharedWith: []string{"somebody"},
	})
	assert.True(t, IsQuotaError(err))
}

func TestCreateNoteDropsUnknownRecipients(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := createUser(t, db, "alice", true)
	createUser(t, db, "bob", false)
	question := createQuestion(t, db, "quiz-a", "q", true)

	note, err := svc.Create(alice, NoteInput{
		QuestionID: question.ID,
		Content:    "shared",
		Visibility: models.NoteVisibilityGroup,
		SharedWith: []string{"bob", "ghost", "phantom"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"bob"}, note.SharedWith)

	// all recipients unknown: stored as no recipients, not a failure
	note, err = svc.Create(alice, NoteInput{
		QuestionID: question.ID,
		Content:    "author only",
		Visibility: models.NoteVisibilityGroup,
		SharedWith: []string{"ghost"},
	})
	require.NoError(t, err)
	assert.Empty(t, note.SharedWith)
}

func TestCreatePublicNoteClearsRecipients(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := createUser(t, db, "alice", false)
	createUser(t, db, "bob", false)
	question := createQuestion(t, db, "quiz-a", "q", true)

	note, err := svc.Create(alice, NoteInput{
		QuestionID: question.ID,
		Content:    "public",
		SharedWith: []string{"bob"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.NoteVisibilityPublic, note.Visibility)
	assert.Empty(t, note.SharedWith)
}

func TestCreateNoteCapturesFingerprint(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := createUser(t, db, "alice", false)
	question := createQuestion(t, db, "quiz-a", "Fingerprinted", true)

	note, err := svc.Create(alice, NoteInput{QuestionID: question.ID, Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, question.ContentHash, note.QuestionHash)

	// target question gone: note still created, hash left empty
	note, err = svc.Create(alice, NoteInput{QuestionID: "missing", Content: "y"})
	require.NoError(t, err)
	assert.Empty(t, note.QuestionHash)
}

func TestCreateNoteRejectsUnknownVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)
	alice := createUser(t, db, "alice", false)

	_, err := svc.Create(alice, NoteInput{QuestionID: "q", Content: "x", Visibility: "secret"})
	assert.Error(t, err)
}
