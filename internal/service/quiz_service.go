package service

import (
	"errors"
	"time"
	"training_platform_backend/internal/model"
	"training_platform_backend/internal/util"
	"training_platform_backend/pkg/logger"
	"training_platform_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// QuizStore is what the quiz-taking flow needs from persistence.
type QuizStore interface {
	FindByContentID(contentID uint) (*model.Quiz, error)
	SaveResult(result *model.QuizResult) error
	CountResults(userID, quizID uint) (int, error)
	HasPassed(userID, quizID uint) (bool, error)
}

// QuizService drives quiz-taking sessions: it loads definitions, owns the
// session registry, persists submission results, and hands passing
// submissions to the progression cascade.
type QuizService struct {
	Quizzes     QuizStore
	Progress    ProgressStore
	Progression *ProgressionService
	Points      PointsLedger
	Sessions    *SessionRegistry
}

func NewQuizService(quizzes QuizStore, progress ProgressStore, progression *ProgressionService, points PointsLedger) *QuizService {
	return &QuizService{
		Quizzes:     quizzes,
		Progress:    progress,
		Progression: progression,
		Points:      points,
		Sessions:    NewSessionRegistry(),
	}
}

// SessionView is the session state exposed to the caller; correct answers
// never leave the server.
type SessionView struct {
	SessionID     string            `json:"sessionId"`
	QuizID        uint              `json:"quizId"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	PassingScore  int               `json:"passingScore"`
	TimeLimit     int               `json:"timeLimit,omitempty"`
	QuestionIndex int               `json:"questionIndex"`
	Attempt       int               `json:"attempt"`
	Questions     []SessionQuestion `json:"questions"`
	Answers       map[uint]string   `json:"answers"`
	State         SessionState      `json:"state"`
	Outcome       *QuizOutcome      `json:"outcome,omitempty"`
}

type SessionQuestion struct {
	ID           uint               `json:"id"`
	QuestionText string             `json:"questionText"`
	QuestionType model.QuestionType `json:"questionType"`
	Options      model.StringList   `json:"options"`
	Points       int                `json:"points"`
}

func (s *QuizService) view(session *QuizSession) *SessionView {
	questions := make([]SessionQuestion, len(session.Quiz.Questions))
	for i := range session.Quiz.Questions {
		q := &session.Quiz.Questions[i]
		questions[i] = SessionQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Options:      q.Options,
			Points:       q.Points,
		}
	}
	return &SessionView{
		SessionID:     session.ID,
		QuizID:        session.Quiz.ID,
		Title:         session.Quiz.Title,
		Description:   session.Quiz.Description,
		PassingScore:  session.Quiz.PassingScore,
		TimeLimit:     session.Quiz.TimeLimit,
		QuestionIndex: session.CurrentIndex(),
		Attempt:       session.Attempt(),
		Questions:     questions,
		Answers:       session.Answers(),
		State:         session.State(),
		Outcome:       session.Outcome(),
	}
}

// OpenSession starts a quiz-taking session for a content item. The module
// lock and the content sequencer both apply before the quiz definition is
// even loaded, mirroring how the learner reached the item. Opening bumps
// the progress row to in_progress and counts one attempt.
func (s *QuizService) OpenSession(userID, contentID uint) (*SessionView, error) {
	if _, err := s.Progression.OpenContent(userID, contentID); err != nil {
		return nil, err
	}

	quiz, err := s.Quizzes.FindByContentID(contentID)
	if err != nil {
		return nil, err
	}

	session, err := s.Sessions.Open(userID, contentID, quiz)
	if err != nil {
		return nil, err
	}

	if err := s.Progress.IncrementAttempts(userID, contentID); err != nil {
		logger.Log.Warn("failed to count quiz attempt", zap.Uint("userId", userID), zap.Error(err))
	}

	return s.view(session), nil
}

func (s *QuizService) GetSession(userID uint, sessionID string) (*SessionView, error) {
	session, err := s.Sessions.Get(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *QuizService) SetAnswer(userID uint, sessionID string, questionID uint, value string) error {
	session, err := s.Sessions.Get(userID, sessionID)
	if err != nil {
		return err
	}
	return session.SetAnswer(questionID, value)
}

// Navigate moves the session cursor. Direction is "next" or "previous";
// anything else is a validation error.
func (s *QuizService) Navigate(userID uint, sessionID, direction string) (*SessionView, error) {
	session, err := s.Sessions.Get(userID, sessionID)
	if err != nil {
		return nil, err
	}

	switch direction {
	case "next":
		err = session.Next()
	case "previous":
		err = session.Previous()
	default:
		return nil, util.Validation(errors.New("direction must be next or previous"))
	}
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// SubmitResult is what one submission produced, including any cascade the
// pass triggered.
type SubmitResult struct {
	QuizOutcome
	QuizID        uint           `json:"quizId"`
	Attempts      int            `json:"attempts"`
	PointsAwarded int            `json:"pointsAwarded"`
	Cascade       *CascadeResult `json:"cascade,omitempty"`
}

// Submit scores the session, persists the result, and on a pass runs the
// completion cascade for the owning content item. The session machine
// already guarantees idempotence: a duplicate submit fails before any of
// this runs. A persistence failure after scoring leaves the session
// submitted and is surfaced to the caller to retry persisting, not
// rescoring.
func (s *QuizService) Submit(userID uint, sessionID string) (*SubmitResult, error) {
	session, err := s.Sessions.Get(userID, sessionID)
	if err != nil {
		return nil, err
	}

	outcome, err := session.Submit()
	if err != nil {
		return nil, err
	}

	record := &model.QuizResult{
		UserID:      userID,
		QuizID:      session.Quiz.ID,
		Score:       outcome.Score,
		MaxScore:    outcome.MaxScore,
		Percentage:  outcome.Percentage,
		Passed:      outcome.Passed,
		Answers:     session.Answers(),
		CompletedAt: time.Now(),
	}
	if err := s.Quizzes.SaveResult(record); err != nil {
		return nil, err
	}

	if outcome.Passed {
		monitoring.QuizSubmissions.WithLabelValues("passed").Inc()
	} else {
		monitoring.QuizSubmissions.WithLabelValues("failed").Inc()
	}

	result := &SubmitResult{QuizOutcome: *outcome, QuizID: session.Quiz.ID}

	if attempts, err := s.Quizzes.CountResults(userID, session.Quiz.ID); err == nil {
		result.Attempts = attempts
	}

	if outcome.Passed {
		if s.Points != nil {
			if err := s.Points.AddPoints(userID, util.PointsForQuiz, "Passed quiz"); err != nil {
				logger.Log.Warn("failed to award quiz points", zap.Uint("userId", userID), zap.Error(err))
			} else {
				result.PointsAwarded += util.PointsForQuiz
			}
		}

		score := outcome.Percentage
		cascade, err := s.Progression.CompleteContent(userID, session.ContentID, &score, true)
		if err != nil {
			// The result row is already committed; derived state catches up
			// on the next read.
			logger.Log.Warn("quiz passed but completion cascade failed",
				zap.Uint("userId", userID), zap.Uint("contentId", session.ContentID), zap.Error(err))
		} else {
			result.PointsAwarded += cascade.PointsAwarded
			result.Cascade = cascade
		}
	}

	return result, nil
}

// Retry reopens a failed session. Unlimited and unpenalized; each retry
// counts one more attempt on the progress row.
func (s *QuizService) Retry(userID uint, sessionID string) (*SessionView, error) {
	session, err := s.Sessions.Get(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Retry(); err != nil {
		return nil, err
	}

	if err := s.Progress.IncrementAttempts(userID, session.ContentID); err != nil {
		logger.Log.Warn("failed to count quiz attempt", zap.Uint("userId", userID), zap.Error(err))
	}

	return s.view(session), nil
}

// CloseSession discards the session whatever state it is in.
func (s *QuizService) CloseSession(userID uint, sessionID string) error {
	return s.Sessions.Close(userID, sessionID)
}
