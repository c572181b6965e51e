package service

import (
	"testing"
	"training_platform_backend/internal/model"
	"training_platform_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuizStore struct {
	byContent map[uint]*model.Quiz
	results   []*model.QuizResult
	passed    *fakeQuizResults
}

func (f *fakeQuizStore) FindByContentID(contentID uint) (*model.Quiz, error) {
	quiz, ok := f.byContent[contentID]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	return quiz, nil
}

func (f *fakeQuizStore) SaveResult(result *model.QuizResult) error {
	f.results = append(f.results, result)
	if result.Passed && f.passed != nil {
		// mirror what the join in the gorm repository would see
		for contentID, quiz := range f.byContent {
			if quiz.ID == result.QuizID {
				f.passed.passedContent[contentID] = true
			}
		}
	}
	return nil
}

func (f *fakeQuizStore) CountResults(userID, quizID uint) (int, error) {
	n := 0
	for _, r := range f.results {
		if r.UserID == userID && r.QuizID == quizID {
			n++
		}
	}
	return n, nil
}

func (f *fakeQuizStore) HasPassed(userID, quizID uint) (bool, error) {
	for _, r := range f.results {
		if r.UserID == userID && r.QuizID == quizID && r.Passed {
			return true, nil
		}
	}
	return false, nil
}

// quizFixture wires a QuizService over the module-1 fixture, attaching the
// sample quiz to content 12 and walking the user up to it.
func quizFixture(t *testing.T, passingScore int) (*QuizService, *fakeQuizStore, *fakePoints, *fakeProgressStore) {
	t.Helper()

	progression, _, progress, quizResults, points := newFixture()

	quiz := sampleQuiz(passingScore)
	quiz.ContentID = 12
	store := &fakeQuizStore{
		byContent: map[uint]*model.Quiz{12: quiz},
		passed:    quizResults,
	}

	svc := NewQuizService(store, progress, progression, points)

	// Complete the two items before the quiz so it is reachable.
	_, err := progression.CompleteContent(7, 10, nil, false)
	require.NoError(t, err)
	_, err = progression.CompleteContent(7, 11, nil, false)
	require.NoError(t, err)
	points.total = 0 // only count what the quiz flow awards

	return svc, store, points, progress
}

func TestOpenSessionEnforcesSequencing(t *testing.T) {
	progression, _, _, quizResults, points := newFixture()
	quiz := sampleQuiz(70)
	quiz.ContentID = 12
	store := &fakeQuizStore{byContent: map[uint]*model.Quiz{12: quiz}, passed: quizResults}
	svc := NewQuizService(store, newFakeProgressStore(), progression, points)

	// Nothing in the module has been started yet.
	_, err := svc.OpenSession(7, 12)
	assert.ErrorIs(t, err, util.ErrContentLocked)
}

func TestOpenSessionCountsAttemptAndHidesAnswers(t *testing.T) {
	svc, _, _, progress := quizFixture(t, 70)

	view, err := svc.OpenSession(7, 12)
	require.NoError(t, err)

	assert.NotEmpty(t, view.SessionID)
	assert.Equal(t, SessionInProgress, view.State)
	assert.Equal(t, 1, view.Attempt)
	require.Len(t, view.Questions, 2)
	assert.Equal(t, 1, progress.rows[progressKey{7, 12}].Attempts)

	// The view carries options but never the correct answers.
	assert.Equal(t, model.StringList{"60C", "75C", "100C"}, view.Questions[0].Options)
}

func TestOpenSessionConflict(t *testing.T) {
	svc, _, _, _ := quizFixture(t, 70)

	_, err := svc.OpenSession(7, 12)
	require.NoError(t, err)

	_, err = svc.OpenSession(7, 12)
	assert.ErrorIs(t, err, util.ErrSessionConflict)
}

func TestNavigateRejectsUnknownDirection(t *testing.T) {
	svc, _, _, _ := quizFixture(t, 70)

	view, err := svc.OpenSession(7, 12)
	require.NoError(t, err)

	_, err = svc.Navigate(7, view.SessionID, "sideways")
	assert.ErrorIs(t, err, util.ErrValidation)

	moved, err := svc.Navigate(7, view.SessionID, "next")
	require.NoError(t, err)
	assert.Equal(t, 1, moved.QuestionIndex)
}

func TestSubmitPassRunsCascade(t *testing.T) {
	svc, store, points, _ := quizFixture(t, 50)

	view, err := svc.OpenSession(7, 12)
	require.NoError(t, err)

	require.NoError(t, svc.SetAnswer(7, view.SessionID, 101, "75C"))
	require.NoError(t, svc.SetAnswer(7, view.SessionID, 102, "False"))

	result, err := svc.Submit(7, view.SessionID)
	require.NoError(t, err)

	assert.True(t, result.Passed)
	assert.Equal(t, 100, result.Percentage)
	assert.Equal(t, 1, result.Attempts)
	require.Len(t, store.results, 1)
	assert.True(t, store.results[0].Passed)

	// Quiz points plus the content completion and module bonus.
	require.NotNil(t, result.Cascade)
	assert.True(t, result.Cascade.ModuleCompletedNow)
	assert.Equal(t, util.PointsForQuiz+util.PointsForContent+util.PointsForModule, result.PointsAwarded)
	assert.Equal(t, result.PointsAwarded, points.total)
	assert.Equal(t, []uint{2}, result.Cascade.UnlockedModuleIDs)
}

func TestSubmitFailThenRetry(t *testing.T) {
	svc, store, points, progress := quizFixture(t, 70)

	view, err := svc.OpenSession(7, 12)
	require.NoError(t, err)

	require.NoError(t, svc.SetAnswer(7, view.SessionID, 101, "60C"))

	result, err := svc.Submit(7, view.SessionID)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Nil(t, result.Cascade)
	assert.Zero(t, result.PointsAwarded)
	assert.Zero(t, points.total)
	require.Len(t, store.results, 1)

	// Double submit on the same session is a state conflict.
	_, err = svc.Submit(7, view.SessionID)
	assert.ErrorIs(t, err, util.ErrInvalidTransition)

	reopened, err := svc.Retry(7, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Attempt)
	assert.Equal(t, 0, reopened.QuestionIndex)
	assert.Equal(t, 2, progress.rows[progressKey{7, 12}].Attempts)

	require.NoError(t, svc.SetAnswer(7, view.SessionID, 101, "75C"))
	require.NoError(t, svc.SetAnswer(7, view.SessionID, 102, "False"))

	result, err = svc.Submit(7, view.SessionID)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Equal(t, 2, result.Attempts)
	require.Len(t, store.results, 2)
}

func TestCloseSessionAllowsReopen(t *testing.T) {
	svc, _, _, _ := quizFixture(t, 70)

	view, err := svc.OpenSession(7, 12)
	require.NoError(t, err)

	require.NoError(t, svc.CloseSession(7, view.SessionID))

	_, err = svc.GetSession(7, view.SessionID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	_, err = svc.OpenSession(7, 12)
	assert.NoError(t, err)
}

func TestOpenSessionNoQuizDefined(t *testing.T) {
	progression, _, progress, quizResults, points := newFixture()
	store := &fakeQuizStore{byContent: map[uint]*model.Quiz{}, passed: quizResults}
	svc := NewQuizService(store, progress, progression, points)

	_, err := progression.OpenContent(7, 10)
	require.NoError(t, err)

	_, err = svc.OpenSession(7, 10)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}
