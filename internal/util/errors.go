package util

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailRegistered = errors.New("email already registered")
	ErrModuleNotFound  = errors.New("module not found")
	ErrContentNotFound = errors.New("content not found")
	ErrQuizNotFound    = errors.New("no quiz available for this content")

	// ErrModuleLocked: the prerequisite module is not fully completed.
	ErrModuleLocked = errors.New("module is locked")
	// ErrContentLocked: the previous content item has not been started.
	ErrContentLocked = errors.New("content is locked")

	ErrQuizEmpty         = errors.New("quiz has no questions")
	ErrQuizNotPassed     = errors.New("quiz has not been passed")
	ErrSessionConflict   = errors.New("an active quiz session already exists for this content")
	ErrSessionNotFound   = errors.New("quiz session not found")
	ErrInvalidTransition = errors.New("operation not valid in the current session state")

	ErrValidation = errors.New("validation failed")
)

// Validation wraps a definition error so callers can match ErrValidation.
func Validation(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// IsNotFound matches both our sentinel lookups and gorm's record miss.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrModuleNotFound) ||
		errors.Is(err, ErrContentNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}
