package service

import (
	"errors"
	"math"
	"strings"
	"sync"
	"training_platform_backend/internal/model"
	"training_platform_backend/internal/util"
)

type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionSubmitted  SessionState = "submitted"
	SessionClosed     SessionState = "closed"
)

// QuizOutcome is the computed result of one submission.
type QuizOutcome struct {
	Score      int  `json:"score"`
	MaxScore   int  `json:"maxScore"`
	Percentage int  `json:"percentage"`
	Passed     bool `json:"passed"`
}

// QuizSession is the ephemeral state of one learner answering one quiz.
// It holds no persistence or rendering concerns: the HTTP layer maps onto
// it, and it is discarded on close whether finished or abandoned.
type QuizSession struct {
	ID        string
	UserID    uint
	ContentID uint
	Quiz      *model.Quiz

	mu      sync.Mutex
	state   SessionState
	current int
	answers map[uint]string
	outcome *QuizOutcome
	attempt int
}

// NewQuizSession validates the quiz definition and opens a session at the
// first question with an empty answer slot per question. A quiz with no
// questions is rejected with ErrQuizEmpty; a malformed question (a choice
// type with fewer than two options) is rejected as a validation error. In
// both cases no session is created.
func NewQuizSession(userID, contentID uint, quiz *model.Quiz) (*QuizSession, error) {
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, util.ErrQuizEmpty
	}
	if err := quiz.Validate(); err != nil {
		return nil, util.Validation(err)
	}

	answers := make(map[uint]string, len(quiz.Questions))
	for i := range quiz.Questions {
		answers[quiz.Questions[i].ID] = ""
	}

	return &QuizSession{
		ID:        model.GenerateUUID(),
		UserID:    userID,
		ContentID: contentID,
		Quiz:      quiz,
		state:     SessionInProgress,
		answers:   answers,
		attempt:   1,
	}, nil
}

func (s *QuizSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *QuizSession) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Attempt is the 1-based count of takes within this session, bumped on
// each retry.
func (s *QuizSession) Attempt() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// Answers returns a copy of the captured answers.
func (s *QuizSession) Answers() map[uint]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uint]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

func (s *QuizSession) Outcome() *QuizOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// SetAnswer overwrites the stored answer for a question. The value is not
// checked against the option list here; validation against the correct
// answer happens at scoring time only.
func (s *QuizSession) SetAnswer(questionID uint, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionInProgress {
		return util.ErrInvalidTransition
	}
	if _, ok := s.answers[questionID]; !ok {
		return util.Validation(errors.New("question does not belong to this quiz"))
	}
	s.answers[questionID] = value
	return nil
}

// Next advances to the following question, silently staying put on the
// last one.
func (s *QuizSession) Next() error {
	return s.move(1)
}

// Previous moves back one question, silently staying put on the first.
func (s *QuizSession) Previous() error {
	return s.move(-1)
}

func (s *QuizSession) move(delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionInProgress {
		return util.ErrInvalidTransition
	}
	next := s.current + delta
	if next < 0 {
		next = 0
	}
	if last := len(s.Quiz.Questions) - 1; next > last {
		next = last
	}
	s.current = next
	return nil
}

// Submit scores the captured answers and moves the session to submitted.
// Submission is accepted from any question index; unanswered questions
// score zero. Answers are trimmed and compared to the correct answer with
// an exact, case-sensitive match. Passing is inclusive: a percentage equal
// to the passing score passes. A second submit without an intervening
// retry is a state error and does not rescore.
func (s *QuizSession) Submit() (*QuizOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionInProgress {
		return nil, util.ErrInvalidTransition
	}

	score := 0
	maxScore := 0
	for i := range s.Quiz.Questions {
		q := &s.Quiz.Questions[i]
		maxScore += q.Points
		if strings.TrimSpace(s.answers[q.ID]) == q.CorrectAnswer {
			score += q.Points
		}
	}

	percentage := 0
	if maxScore > 0 {
		percentage = int(math.Round(float64(score) * 100 / float64(maxScore)))
	}

	s.outcome = &QuizOutcome{
		Score:      score,
		MaxScore:   maxScore,
		Percentage: percentage,
		Passed:     percentage >= s.Quiz.PassingScore,
	}
	s.state = SessionSubmitted
	return s.outcome, nil
}

// Retry reopens a failed submission at the first question with all answers
// cleared. The attempt counter goes up; prior results are untouched, and
// there is no limit or scoring penalty on retries.
func (s *QuizSession) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionSubmitted || s.outcome == nil || s.outcome.Passed {
		return util.ErrInvalidTransition
	}
	for id := range s.answers {
		s.answers[id] = ""
	}
	s.current = 0
	s.outcome = nil
	s.state = SessionInProgress
	s.attempt++
	return nil
}

// Close discards the session. Valid from any state, idempotent, and leaves
// no partial scoring side effects.
func (s *QuizSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionClosed
}

type sessionKey struct {
	userID    uint
	contentID uint
}

// SessionRegistry enforces one live quiz session per (user, content). A
// second open while one is active is rejected with ErrSessionConflict; the
// caller must close the first session explicitly before reopening.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[sessionKey]*QuizSession
	byID     map[string]*QuizSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[sessionKey]*QuizSession),
		byID:     make(map[string]*QuizSession),
	}
}

func (r *SessionRegistry) Open(userID, contentID uint, quiz *model.Quiz) (*QuizSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey{userID: userID, contentID: contentID}
	if existing, ok := r.sessions[key]; ok && existing.State() != SessionClosed {
		return nil, util.ErrSessionConflict
	}

	session, err := NewQuizSession(userID, contentID, quiz)
	if err != nil {
		return nil, err
	}

	r.sessions[key] = session
	r.byID[session.ID] = session
	return session, nil
}

// Get returns the session only to its owner.
func (r *SessionRegistry) Get(userID uint, sessionID string) (*QuizSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.byID[sessionID]
	if !ok || session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

// Close removes and closes the session. Closing an unknown session is an
// ErrSessionNotFound; closing twice is therefore reported, but Close on
// the session itself is always safe.
func (r *SessionRegistry) Close(userID uint, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.byID[sessionID]
	if !ok || session.UserID != userID {
		return util.ErrSessionNotFound
	}

	session.Close()
	delete(r.byID, sessionID)
	delete(r.sessions, sessionKey{userID: session.UserID, contentID: session.ContentID})
	return nil
}
