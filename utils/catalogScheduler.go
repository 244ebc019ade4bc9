package utils

import (
	"log"
	"time"

	"elearn/catalog"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartCatalogScheduler warms the category cache every minute so discovery
// requests rarely pay the reload and the staleness window stays at its TTL.
func StartCatalogScheduler(db *gorm.DB, cache *catalog.CategoryCache) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@every 1m", func() {
		start := time.Now()
		if _, err := catalog.CategoryTree(db, cache); err != nil {
			log.Printf("[CATALOG-SCHEDULER] category cache warm failed: %v", err)
			return
		}
		log.Printf("[CATALOG-SCHEDULER] category cache warmed in %s", time.Since(start))
	})
	if err != nil {
		log.Printf("[CATALOG-SCHEDULER] failed to register warm job: %v", err)
		return c
	}

	c.Start()
	log.Println("[CATALOG-SCHEDULER] started")
	return c
}
