package model

import "time"

type AssignmentType string

const (
	AssignAll        AssignmentType = "all"
	AssignDepartment AssignmentType = "department"
	AssignIndividual AssignmentType = "individual"
)

// Assignment is the distribution payload for a module. The progression
// engine never interprets it beyond checking the target selection; it is
// stored and returned verbatim.
// swagger:model Assignment
type Assignment struct {
	BaseModel
	ModuleID     uint           `gorm:"index;not null" json:"moduleId"`
	AssignedBy   uint           `gorm:"index;not null" json:"assignedBy"`
	Type         AssignmentType `gorm:"type:enum('all','department','individual');not null" json:"assignmentType"`
	DepartmentID *uint          `gorm:"index" json:"departmentId,omitempty"`
	IndividualID *uint          `gorm:"index" json:"individualId,omitempty"`
	DueDate      *time.Time     `json:"dueDate,omitempty"`
	IsMandatory  bool           `gorm:"default:false" json:"isMandatory"`
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`
	ModuleTitle  string         `gorm:"-" json:"moduleTitle,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// HasTarget reports whether the assignment selects anyone at all.
func (a *Assignment) HasTarget() bool {
	switch a.Type {
	case AssignAll:
		return true
	case AssignDepartment:
		return a.DepartmentID != nil
	case AssignIndividual:
		return a.IndividualID != nil
	default:
		return false
	}
}
