package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attachment is a lightweight file descriptor embedded on announcements.
type Attachment struct {
	Filename string `json:"filename"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
}

type Announcement struct {
	gorm.Model
	Title       string         `gorm:"not null" json:"title"`
	Body        string         `gorm:"not null" json:"body"`
	CourseID    uint           `gorm:"index;not null" json:"courseId"`
	Course      Course         `gorm:"foreignKey:CourseID" json:"course"`
	CreatedByID uint           `gorm:"index;not null" json:"createdById"` // course lecturer at creation time
	CreatedBy   User           `gorm:"foreignKey:CreatedByID" json:"createdBy"`
	IsImportant bool           `gorm:"default:false" json:"isImportant"`
	Attachments datatypes.JSON `json:"attachments"`
}
