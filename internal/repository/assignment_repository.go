package repository

import (
	"training_platform_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(a *model.Assignment) error {
	return r.DB.Create(a).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var a model.Assignment
	err := r.DB.First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Assignment{}, id).Error
}

// ListAll returns every assignment with its module title, newest first.
func (r *AssignmentRepository) ListAll() ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.
		Select("assignments.*, training_modules.title AS module_title").
		Joins("JOIN training_modules ON training_modules.id = assignments.module_id").
		Order("assignments.created_at desc").
		Find(&assignments).Error
	return assignments, err
}

// ListForUser returns the assignments that target the user: global ones,
// their department's, and ones addressed to them individually.
func (r *AssignmentRepository) ListForUser(user *model.User) ([]model.Assignment, error) {
	q := r.DB.
		Select("assignments.*, training_modules.title AS module_title").
		Joins("JOIN training_modules ON training_modules.id = assignments.module_id")

	if user.DepartmentID != nil {
		q = q.Where(
			"assignments.type = ? OR (assignments.type = ? AND assignments.department_id = ?) OR (assignments.type = ? AND assignments.individual_id = ?)",
			model.AssignAll, model.AssignDepartment, *user.DepartmentID, model.AssignIndividual, user.ID,
		)
	} else {
		q = q.Where(
			"assignments.type = ? OR (assignments.type = ? AND assignments.individual_id = ?)",
			model.AssignAll, model.AssignIndividual, user.ID,
		)
	}

	var assignments []model.Assignment
	err := q.Order("assignments.due_date asc").Find(&assignments).Error
	return assignments, err
}
