package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	gorm.Model
	Content        string       `gorm:"not null" json:"content"`
	AnnouncementID uint         `gorm:"index;not null" json:"announcementId"`
	Announcement   Announcement `gorm:"foreignKey:AnnouncementID" json:"announcement"`
	UserID         uint         `gorm:"index;not null" json:"userId"`
	User           User         `gorm:"foreignKey:UserID" json:"user"`
	IsEdited       bool         `gorm:"default:false" json:"isEdited"`
	EditedAt       *time.Time   `json:"editedAt"`
}
