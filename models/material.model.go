package models

import (
	"gorm.io/gorm"
)

const (
	CategoryLecture    = "lecture"
	CategoryAssignment = "assignment"
	CategoryReading    = "reading"
	CategoryOther      = "other"
)

// MaterialCategories lists the accepted category values.
var MaterialCategories = []string{CategoryLecture, CategoryAssignment, CategoryReading, CategoryOther}

type Material struct {
	gorm.Model
	Title        string `gorm:"not null" json:"title"`
	Description  string `json:"description"`
	FileURL      string `gorm:"not null" json:"fileUrl"`
	FileName     string `gorm:"not null" json:"fileName"` // original name as uploaded
	FileType     string `gorm:"not null" json:"fileType"`
	FileSize     int64  `gorm:"not null" json:"fileSize"`
	CourseID     uint   `gorm:"index;not null" json:"courseId"`
	Course       Course `gorm:"foreignKey:CourseID" json:"course"`
	UploadedByID uint   `gorm:"index;not null" json:"uploadedById"`
	UploadedBy   User   `gorm:"foreignKey:UploadedByID" json:"uploadedBy"`
	Category     string `gorm:"index;default:'other'" json:"category"`
	IsPublic     bool   `gorm:"default:true" json:"isPublic"`
}

// ValidCategory reports whether c is one of the accepted material categories.
func ValidCategory(c string) bool {
	for _, v := range MaterialCategories {
		if v == c {
			return true
		}
	}
	return false
}
