package models

import (
	"gorm.io/gorm"
)

// Enrollment links a student to a course. The composite unique index makes
// double-enrollment impossible even under concurrent requests.
type Enrollment struct {
	gorm.Model
	UserID   uint   `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"userId"`
	CourseID uint   `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"courseId"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	Course   Course `gorm:"foreignKey:CourseID" json:"course"`
	Status   string `gorm:"default:'ENROLLED'" json:"status"`
}
