package models

import (
	"gorm.io/gorm"
)

const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
)

type User struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"default:'student'" json:"role"` // student, lecturer
	Avatar   string `gorm:"default:''" json:"avatar"`
}
