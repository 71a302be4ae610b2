package utils

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"scholaria/config"
	"scholaria/database"
	"scholaria/models"

	"github.com/robfig/cron/v3"
)

// orphanGracePeriod keeps very recent files safe: an upload may exist on
// disk briefly before its material record commits.
const orphanGracePeriod = 24 * time.Hour

// InitializeUploadReaper schedules the daily sweep of the upload directory.
func InitializeUploadReaper() *cron.Cron {
	log.Println("[UPLOAD-REAPER] Initializing upload reaper...")

	c := cron.New()

	// Run daily at 2 AM
	c.AddFunc("0 2 * * *", func() {
		log.Println("[UPLOAD-REAPER] Running daily orphan sweep...")
		ReapOrphanedUploads()
	})

	c.Start()
	log.Println("[UPLOAD-REAPER] Upload reaper started - runs daily at 2 AM")
	return c
}

// ReapOrphanedUploads removes files in the upload directory that no material
// record references. File deletion and record deletion are not atomic, so a
// crash between the two can strand a file; this sweep reconciles that.
func ReapOrphanedUploads() {
	db := database.Database.Db
	uploadDir := config.AppConfig.UploadDir

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[UPLOAD-REAPER] Error reading upload dir: %v", err)
		}
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < orphanGracePeriod {
			continue
		}

		var count int64
		if err := db.Model(&models.Material{}).
			Where("file_url = ?", GetFileURL(entry.Name())).
			Count(&count).Error; err != nil {
			log.Printf("[UPLOAD-REAPER] Error checking references for %s: %v", entry.Name(), err)
			continue
		}
		if count > 0 {
			continue
		}

		if err := os.Remove(filepath.Join(uploadDir, entry.Name())); err != nil {
			log.Printf("[UPLOAD-REAPER] Error removing %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}

	log.Printf("[UPLOAD-REAPER] Sweep complete, removed %d orphaned file(s)", removed)
}
