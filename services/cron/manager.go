package cron

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/studyshare-api/database"
)

// Catalog is the part of the catalog service the scheduled jobs drive
type Catalog interface {
	WarmUniversityCache(ctx context.Context) (int, error)
	Stats(ctx context.Context) (database.CatalogCounts, error)
}

// Job schedules, seconds precision
const (
	WarmCacheSchedule    = "0 */5 * * * *"
	CatalogStatsSchedule = "30 */1 * * * *"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron    *cron.Cron
	catalog Catalog
	timeout time.Duration
}

// NewCronManager creates a new cron manager
func NewCronManager(catalog Catalog) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:    c,
		catalog: catalog,
		timeout: time.Minute,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Info("Starting cron jobs...")

	// Register all jobs
	if err := m.registerJobs(); err != nil {
		return err
	}

	// Start the cron scheduler
	m.cron.Start()

	log.Info("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Info("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Info("Cron jobs stopped")
}

// Entries returns the number of registered jobs
func (m *CronManager) Entries() int {
	return len(m.cron.Entries())
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// 1. Every 5 minutes: rebuild the cached university tree
	_, err := m.cron.AddFunc(WarmCacheSchedule, func() {
		m.logJobStart("warm_university_cache")
		m.WarmUniversityCache()
	})
	if err != nil {
		return err
	}

	// 2. Every minute: publish catalog totals
	_, err = m.cron.AddFunc(CatalogStatsSchedule, func() {
		m.logJobStart("catalog_stats")
		m.CollectCatalogStats()
	})
	if err != nil {
		return err
	}

	log.Info("All cron jobs registered successfully")
	return nil
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) {
	log.Infof("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(jobName string, message string) {
	log.Infof("[CRON] Completed job: %s - %s", jobName, message)
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(jobName string, err error) {
	log.Errorf("[CRON] Error in job: %s - %v", jobName, err)
}
