package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name           string    `gorm:"size:80;uniqueIndex;not null" json:"name"`
	Email          string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"size:120;not null" json:"-"`
	FullName       string    `gorm:"size:120;not null" json:"full_name"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Role           UserRole  `gorm:"size:20;default:'user'" json:"role"`
	EducationLevel string    `gorm:"size:120" json:"education_level"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
