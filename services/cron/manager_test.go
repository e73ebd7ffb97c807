package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/sahilchouksey/studyshare-api/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	warmCalls  int
	statsCalls int
	err        error
}

func (f *fakeCatalog) WarmUniversityCache(ctx context.Context) (int, error) {
	f.warmCalls++
	return 3, f.err
}

func (f *fakeCatalog) Stats(ctx context.Context) (database.CatalogCounts, error) {
	f.statsCalls++
	return database.CatalogCounts{Universities: 3}, f.err
}

func TestRegisterJobs(t *testing.T) {
	m := NewCronManager(&fakeCatalog{})
	require.NoError(t, m.Start())
	defer m.Stop()

	assert.Equal(t, 2, m.Entries())
}

func TestJobsCallCatalog(t *testing.T) {
	catalog := &fakeCatalog{}
	m := NewCronManager(catalog)

	m.WarmUniversityCache()
	m.CollectCatalogStats()

	assert.Equal(t, 1, catalog.warmCalls)
	assert.Equal(t, 1, catalog.statsCalls)
}

func TestJobsSurviveErrors(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("db down")}
	m := NewCronManager(catalog)

	assert.NotPanics(t, func() {
		m.WarmUniversityCache()
		m.CollectCatalogStats()
	})
}
