package models

import (
	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Code        string `gorm:"uniqueIndex;not null" json:"code"` // stored uppercased, unique across active and inactive courses
	Description string `json:"description"`
	LecturerID  uint   `gorm:"index;not null" json:"lecturerId"`
	Lecturer    User   `gorm:"foreignKey:LecturerID" json:"lecturer"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}
