package utils

import (
	"log"
	"time"

	"scholaria/config"

	"github.com/go-resty/resty/v2"
)

// AnnouncementEvent is the payload posted to the configured webhook when an
// announcement is published.
type AnnouncementEvent struct {
	AnnouncementID uint   `json:"announcementId"`
	CourseID       uint   `json:"courseId"`
	CourseCode     string `json:"courseCode"`
	Title          string `json:"title"`
	IsImportant    bool   `json:"isImportant"`
}

// NotifyAnnouncementWebhook fires a best-effort POST to the configured
// webhook URL. Failures are logged, never surfaced to the caller.
func NotifyAnnouncementWebhook(event AnnouncementEvent) {
	url := config.AppConfig.WebhookURL
	if url == "" {
		return
	}

	go func() {
		client := resty.New().SetTimeout(10 * time.Second)
		resp, err := client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(event).
			Post(url)
		if err != nil {
			log.Printf("Announcement webhook failed: %v", err)
			return
		}
		if resp.IsError() {
			log.Printf("Announcement webhook returned %d", resp.StatusCode())
		}
	}()
}
