package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

// StringList stores a JSON array of strings in a single column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// AnswerMap stores submitted answers keyed by question id as JSON.
type AnswerMap map[uint]string

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for AnswerMap")
	}
}

// Quiz is the assessment attached to a quiz-type content item.
// PassingScore is an inclusive percentage threshold. TimeLimit is carried
// for display only and is not enforced anywhere in the engine.
// swagger:model Quiz
type Quiz struct {
	BaseModel
	ContentID    uint           `gorm:"index;not null" json:"contentId"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	PassingScore int            `gorm:"default:70" json:"passingScore"` // percentage 0-100
	TimeLimit    int            `gorm:"default:0" json:"timeLimit"`     // minutes, informational
	IsActive     bool           `gorm:"default:true" json:"isActive"`
	CreatedBy    uint           `json:"createdBy"`
	Questions    []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID        uint         `gorm:"index;not null" json:"quizId"`
	QuestionText  string       `gorm:"type:text;not null" json:"questionText"`
	QuestionType  QuestionType `gorm:"type:enum('multiple_choice','true_false','short_answer');not null" json:"questionType"`
	Options       StringList   `gorm:"type:json" json:"options"`
	CorrectAnswer string       `gorm:"type:text;not null" json:"-"`
	Points        int          `gorm:"default:1" json:"points"`
	DisplayOrder  int          `gorm:"default:0" json:"displayOrder"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// RequiresOptions reports whether the question type needs a fixed option
// list the correct answer must belong to.
func (q *QuizQuestion) RequiresOptions() bool {
	return q.QuestionType == MultipleChoice || q.QuestionType == TrueFalse
}

// Validate rejects malformed question definitions at the repository
// boundary so scoring never sees undefined fields.
func (q *QuizQuestion) Validate() error {
	switch q.QuestionType {
	case MultipleChoice, TrueFalse, ShortAnswer:
	default:
		return errors.New("unknown question type: " + string(q.QuestionType))
	}
	if q.Points <= 0 {
		return errors.New("question points must be positive")
	}
	if q.RequiresOptions() {
		if len(q.Options) < 2 {
			return errors.New("question requires at least two options")
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return errors.New("correct answer is not one of the options")
		}
	}
	return nil
}

// Validate checks the quiz definition and every question in it.
func (q *Quiz) Validate() error {
	if q.PassingScore < 0 || q.PassingScore > 100 {
		return errors.New("passing score must be between 0 and 100")
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// QuizResult is the persisted outcome of one quiz submission.
// swagger:model QuizResult
type QuizResult struct {
	BaseModel
	UserID      uint      `gorm:"index:idx_user_quiz" json:"userId"`
	QuizID      uint      `gorm:"index:idx_user_quiz" json:"quizId"`
	Score       int       `gorm:"not null" json:"score"`
	MaxScore    int       `gorm:"not null" json:"maxScore"`
	Percentage  int       `gorm:"not null" json:"percentage"`
	Passed      bool      `gorm:"default:false;index" json:"passed"`
	Answers     AnswerMap `gorm:"type:json" json:"answers"`
	CompletedAt time.Time `json:"completedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
