package service

import (
	"testing"
	"training_platform_backend/internal/model"
	"training_platform_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuiz(passingScore int) *model.Quiz {
	quiz := &model.Quiz{
		Title:        "Kitchen Hygiene",
		PassingScore: passingScore,
		IsActive:     true,
	}
	quiz.ID = 5

	q1 := model.QuizQuestion{
		QuestionText:  "Minimum safe reheat temperature?",
		QuestionType:  model.MultipleChoice,
		Options:       model.StringList{"60C", "75C", "100C"},
		CorrectAnswer: "75C",
		Points:        1,
	}
	q1.ID = 101

	q2 := model.QuizQuestion{
		QuestionText:  "Raw chicken can share a cutting board with salad.",
		QuestionType:  model.TrueFalse,
		Options:       model.StringList{"True", "False"},
		CorrectAnswer: "False",
		Points:        1,
	}
	q2.ID = 102

	quiz.Questions = []model.QuizQuestion{q1, q2}
	return quiz
}

func TestNewQuizSessionRejectsEmptyQuiz(t *testing.T) {
	_, err := NewQuizSession(1, 10, &model.Quiz{Title: "empty"})
	assert.ErrorIs(t, err, util.ErrQuizEmpty)

	_, err = NewQuizSession(1, 10, nil)
	assert.ErrorIs(t, err, util.ErrQuizEmpty)
}

func TestNewQuizSessionRejectsMalformedQuestion(t *testing.T) {
	quiz := sampleQuiz(70)
	quiz.Questions[0].Options = model.StringList{"only one"}
	quiz.Questions[0].CorrectAnswer = "only one"

	_, err := NewQuizSession(1, 10, quiz)
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestNewQuizSessionInitialState(t *testing.T) {
	session, err := NewQuizSession(1, 10, sampleQuiz(70))
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, SessionInProgress, session.State())
	assert.Equal(t, 0, session.CurrentIndex())
	assert.Equal(t, 1, session.Attempt())
	assert.Nil(t, session.Outcome())
	assert.Equal(t, map[uint]string{101: "", 102: ""}, session.Answers())
}

func TestSetAnswerUnknownQuestion(t *testing.T) {
	session, err := NewQuizSession(1, 10, sampleQuiz(70))
	require.NoError(t, err)

	err = session.SetAnswer(999, "whatever")
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestNavigationClampsAtBothEnds(t *testing.T) {
	session, err := NewQuizSession(1, 10, sampleQuiz(70))
	require.NoError(t, err)

	require.NoError(t, session.Previous())
	assert.Equal(t, 0, session.CurrentIndex())

	require.NoError(t, session.Next())
	assert.Equal(t, 1, session.CurrentIndex())

	require.NoError(t, session.Next())
	assert.Equal(t, 1, session.CurrentIndex())

	require.NoError(t, session.Previous())
	assert.Equal(t, 0, session.CurrentIndex())
}

func TestSubmitScoresTrimmedExactMatch(t *testing.T) {
	session, err := NewQuizSession(1, 10, sampleQuiz(50))
	require.NoError(t, err)

	// Whitespace is trimmed, case is not folded.
	require.NoError(t, session.SetAnswer(101, "  75C  "))
	require.NoError(t, session.SetAnswer(102, "false"))

	outcome, err := session.Submit()
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Score)
	assert.Equal(t, 2, outcome.MaxScore)
	assert.Equal(t, 50, outcome.Percentage)
	assert.True(t, outcome.Passed, "threshold is inclusive")
	assert.Equal(t, SessionSubmitted, session.State())
}

func TestSubmitFromAnyIndexWithUnansweredQuestions(t *testing.T) {
	session, err := NewQuizSession(1, 10, sampleQuiz(70))
	require.NoError(t, err)

	// Never navigated past the first question; the second stays blank.
	require.NoError(t, session.SetAnswer(101, "75C"))

	outcome, err := session.Submit()
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Score)
	assert.Equal(t, 50, outcome.Percentage)
	assert.False(t, outcome.Passed)
}

func TestSubmitPercentageRounds(t *testing.T) {
	quiz := sampleQuiz(70)
	third := model.QuizQuestion{
		QuestionText:  "Wash hands before handling food.",
		QuestionType:  model.TrueFalse,
		Options:       model.StringList{"True", "False"},
		CorrectAnswer: "True",
		Points:        1,
	}
	third.ID = 103
	quiz.Questions = append(quiz.Questions, third)

	session, err := NewQuizSession(1, 10, quiz)
	require.NoError(t, err)
	require.NoError(t, session.SetAnswer(101, "75C"))
	require.NoError(t, session.SetAnswer(102, "False"))

	outcome, err := session.Submit()
	require.NoError(t, err)
	// 2/3 rounds to 67, not truncates to 66.
	assert.Equal(t, 67, outcome.Percentage)
}

func TestDoubleSubmitRejectedWithoutRescoring(t *testing.T) {
	session, err := NewQuizSession(1, 10, sampleQuiz(70))
	require.NoError(t, err)

	first, err := session.Submit()
	require.NoError(t, err)

	_, err = session.Submit()
	assert.ErrorIs(t, err, util.ErrInvalidTransition)
	assert.Equal(t, first, session.Outcome())
}

func TestMutationsRejectedAfterSubmit(t *testing.T) {
	session, err := NewQuizSession(1, 10, sampleQuiz(70))
	require.NoError(t, err)
	_, err = session.Submit()
	require.NoError(t, err)

	assert.ErrorIs(t, session.SetAnswer(101, "75C"), util.ErrInvalidTransition)
	assert.ErrorIs(t, session.Next(), util.ErrInvalidTransition)
	assert.ErrorIs(t, session.Previous(), util.ErrInvalidTransition)
}

func TestRetryResetsFailedSession(t *testing.T) {
	session, err := NewQuizSession(1, 10, sampleQuiz(70))
	require.NoError(t, err)

	require.NoError(t, session.SetAnswer(101, "60C"))
	require.NoError(t, session.Next())
	outcome, err := session.Submit()
	require.NoError(t, err)
	require.False(t, outcome.Passed)

	require.NoError(t, session.Retry())

	assert.Equal(t, SessionInProgress, session.State())
	assert.Equal(t, 0, session.CurrentIndex())
	assert.Equal(t, 2, session.Attempt())
	assert.Nil(t, session.Outcome())
	assert.Equal(t, map[uint]string{101: "", 102: ""}, session.Answers())
}

func TestRetryRejectedAfterPass(t *testing.T) {
	session, err := NewQuizSession(1, 10, sampleQuiz(50))
	require.NoError(t, err)
	require.NoError(t, session.SetAnswer(101, "75C"))
	require.NoError(t, session.SetAnswer(102, "False"))

	outcome, err := session.Submit()
	require.NoError(t, err)
	require.True(t, outcome.Passed)

	assert.ErrorIs(t, session.Retry(), util.ErrInvalidTransition)
}

func TestRetryRejectedWhileInProgress(t *testing.T) {
	session, err := NewQuizSession(1, 10, sampleQuiz(70))
	require.NoError(t, err)
	assert.ErrorIs(t, session.Retry(), util.ErrInvalidTransition)
}

func TestCloseIsIdempotentFromAnyState(t *testing.T) {
	session, err := NewQuizSession(1, 10, sampleQuiz(70))
	require.NoError(t, err)

	session.Close()
	session.Close()
	assert.Equal(t, SessionClosed, session.State())
}

func TestRegistryRejectsConcurrentSessions(t *testing.T) {
	registry := NewSessionRegistry()

	_, err := registry.Open(1, 10, sampleQuiz(70))
	require.NoError(t, err)

	_, err = registry.Open(1, 10, sampleQuiz(70))
	assert.ErrorIs(t, err, util.ErrSessionConflict)

	// Same content for a different user is independent.
	_, err = registry.Open(2, 10, sampleQuiz(70))
	assert.NoError(t, err)

	// Same user on different content is independent too.
	_, err = registry.Open(1, 11, sampleQuiz(70))
	assert.NoError(t, err)
}

func TestRegistryReopenAfterClose(t *testing.T) {
	registry := NewSessionRegistry()

	session, err := registry.Open(1, 10, sampleQuiz(70))
	require.NoError(t, err)

	require.NoError(t, registry.Close(1, session.ID))

	_, err = registry.Get(1, session.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	_, err = registry.Open(1, 10, sampleQuiz(70))
	assert.NoError(t, err)
}

func TestRegistryOwnershipCheck(t *testing.T) {
	registry := NewSessionRegistry()

	session, err := registry.Open(1, 10, sampleQuiz(70))
	require.NoError(t, err)

	_, err = registry.Get(2, session.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	assert.ErrorIs(t, registry.Close(2, session.ID), util.ErrSessionNotFound)
}
