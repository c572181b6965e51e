package model

import (
	"time"
)

type UserRole string

const (
	Learner UserRole = "learner"
	Trainer UserRole = "trainer"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	Password     string    `gorm:"size:100;not null" json:"-"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	Role         UserRole  `gorm:"type:enum('learner','trainer','admin');default:'learner'" json:"role"`
	DepartmentID *uint     `gorm:"index" json:"departmentId,omitempty"`
	Phone        string    `gorm:"size:30" json:"phone,omitempty"`
	Avatar       string    `gorm:"size:255" json:"avatar,omitempty"`
	Points       int       `gorm:"default:0" json:"points"` // leaderboard points
	Disabled     bool      `gorm:"default:false" json:"disabled"`
	LastLogin    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen     time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
