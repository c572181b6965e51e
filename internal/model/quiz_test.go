package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuizQuestionValidate(t *testing.T) {
	tests := []struct {
		name     string
		question QuizQuestion
		wantErr  bool
	}{
		{
			name: "valid multiple choice",
			question: QuizQuestion{
				QuestionType:  MultipleChoice,
				Options:       StringList{"a", "b", "c"},
				CorrectAnswer: "b",
				Points:        1,
			},
		},
		{
			name: "valid short answer needs no options",
			question: QuizQuestion{
				QuestionType:  ShortAnswer,
				CorrectAnswer: "75",
				Points:        2,
			},
		},
		{
			name: "unknown type",
			question: QuizQuestion{
				QuestionType:  "essay",
				CorrectAnswer: "x",
				Points:        1,
			},
			wantErr: true,
		},
		{
			name: "non-positive points",
			question: QuizQuestion{
				QuestionType:  ShortAnswer,
				CorrectAnswer: "x",
				Points:        0,
			},
			wantErr: true,
		},
		{
			name: "choice type with one option",
			question: QuizQuestion{
				QuestionType:  TrueFalse,
				Options:       StringList{"True"},
				CorrectAnswer: "True",
				Points:        1,
			},
			wantErr: true,
		},
		{
			name: "correct answer outside the options",
			question: QuizQuestion{
				QuestionType:  MultipleChoice,
				Options:       StringList{"a", "b"},
				CorrectAnswer: "c",
				Points:        1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuizValidatePassingScoreBounds(t *testing.T) {
	quiz := Quiz{PassingScore: 101}
	assert.Error(t, quiz.Validate())

	quiz.PassingScore = -1
	assert.Error(t, quiz.Validate())

	quiz.PassingScore = 0
	assert.NoError(t, quiz.Validate())

	quiz.PassingScore = 100
	assert.NoError(t, quiz.Validate())
}

func TestUserProgressStarted(t *testing.T) {
	var nilRow *UserProgress
	assert.False(t, nilRow.Started())
	assert.False(t, (&UserProgress{Status: NotStarted}).Started())
	assert.False(t, (&UserProgress{}).Started())
	assert.True(t, (&UserProgress{Status: InProgress}).Started())
	assert.True(t, (&UserProgress{Status: Completed}).Started())
}

func TestAssignmentHasTarget(t *testing.T) {
	dept := uint(3)
	user := uint(9)

	assert.True(t, (&Assignment{Type: AssignAll}).HasTarget())
	assert.False(t, (&Assignment{Type: AssignDepartment}).HasTarget())
	assert.True(t, (&Assignment{Type: AssignDepartment, DepartmentID: &dept}).HasTarget())
	assert.False(t, (&Assignment{Type: AssignIndividual}).HasTarget())
	assert.True(t, (&Assignment{Type: AssignIndividual, IndividualID: &user}).HasTarget())
	assert.False(t, (&Assignment{Type: "team"}).HasTarget())
}

func TestAnswerMapRoundTrip(t *testing.T) {
	m := AnswerMap{1: "a", 2: ""}

	v, err := m.Value()
	assert.NoError(t, err)

	var out AnswerMap
	assert.NoError(t, out.Scan(v))
	assert.Equal(t, m, out)
}
