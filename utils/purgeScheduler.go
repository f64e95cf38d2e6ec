package utils

import (
	"elearn/config"
	"elearn/database"
	courseModels "elearn/models/course"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializePurgeScheduler sets up the daily purge of soft-deleted records
func InitializePurgeScheduler() {
	log.Println("[PURGE-SCHEDULER] Initializing purge scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[PURGE-SCHEDULER] Running daily purge...")
		cutoff := now.BeginningOfDay().AddDate(0, 0, -config.AppConfig.PurgeAfterDays)
		if err := PurgeDeletedRecords(database.Database.Db, cutoff); err != nil {
			log.Printf("[PURGE-SCHEDULER] Purge failed: %v", err)
		}
	})

	c.Start()
	log.Println("[PURGE-SCHEDULER] Purge scheduler started - runs daily at 3 AM")
}

// PurgeDeletedRecords permanently removes rows soft-deleted before the cutoff
func PurgeDeletedRecords(db *gorm.DB, cutoff time.Time) error {
	targets := []interface{}{
		&courseModels.Content{},
		&courseModels.Text{},
		&courseModels.Video{},
		&courseModels.Image{},
		&courseModels.File{},
		&courseModels.Module{},
		&courseModels.Enrollment{},
		&courseModels.Course{},
	}

	for _, target := range targets {
		result := db.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
			Delete(target)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			log.Printf("[PURGE-SCHEDULER] Purged %d rows of %T", result.RowsAffected, target)
		}
	}
	return nil
}
