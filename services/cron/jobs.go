package cron

import (
	"context"
	"fmt"
)

// WarmUniversityCache reloads the university tree into the cache so the
// first request after expiry does not pay for the nested query
func (m *CronManager) WarmUniversityCache() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	jobName := "warm_university_cache"

	count, err := m.catalog.WarmUniversityCache(ctx)
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to warm cache: %w", err))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Cached %d universities", count))
}

// CollectCatalogStats counts catalog entities and exports them as gauges
func (m *CronManager) CollectCatalogStats() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	jobName := "catalog_stats"

	counts, err := m.catalog.Stats(ctx)
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to count catalog: %w", err))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("%d universities, %d faculties, %d subjects, %d notes",
		counts.Universities, counts.Faculties, counts.Subjects, counts.Notes))
}
