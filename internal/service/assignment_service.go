package service

import (
	"errors"
	"training_platform_backend/internal/model"
	"training_platform_backend/internal/util"

	"gorm.io/gorm"
)

// AssignmentStore is the persistence surface for assignments.
type AssignmentStore interface {
	Create(a *model.Assignment) error
	FindByID(id uint) (*model.Assignment, error)
	Delete(id uint) error
	ListAll() ([]model.Assignment, error)
	ListForUser(user *model.User) ([]model.Assignment, error)
}

// UserFinder is the slice of the user repository the assignment flow needs.
type UserFinder interface {
	FindByID(id uint) (*model.User, error)
}

// AssignmentService stores and returns module assignments. The payload is
// opaque to the progression engine: nothing here feeds the lock evaluator.
type AssignmentService struct {
	Assignments AssignmentStore
	Modules     ModuleStore
	Users       UserFinder
}

func NewAssignmentService(assignments AssignmentStore, modules ModuleStore, users UserFinder) *AssignmentService {
	return &AssignmentService{Assignments: assignments, Modules: modules, Users: users}
}

// Create validates the referenced module and the target selection, then
// persists the assignment verbatim.
func (s *AssignmentService) Create(a *model.Assignment) error {
	if _, err := s.Modules.FindByID(a.ModuleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrModuleNotFound
		}
		return err
	}

	if !a.HasTarget() {
		return util.Validation(errors.New("assignment has no target audience"))
	}

	if a.Type == model.AssignIndividual {
		if _, err := s.Users.FindByID(*a.IndividualID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrUserNotFound
			}
			return err
		}
	}

	return s.Assignments.Create(a)
}

// ListForUser returns the assignments addressed to the user, directly or
// through their department.
func (s *AssignmentService) ListForUser(userID uint) ([]model.Assignment, error) {
	user, err := s.Users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.Assignments.ListForUser(user)
}

func (s *AssignmentService) ListAll() ([]model.Assignment, error) {
	return s.Assignments.ListAll()
}

func (s *AssignmentService) Delete(id uint) error {
	if _, err := s.Assignments.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.Validation(errors.New("assignment not found"))
		}
		return err
	}
	return s.Assignments.Delete(id)
}
