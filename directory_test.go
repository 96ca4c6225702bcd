package prodir

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/prodir/core"
)

func newTestDirectory(t *testing.T, opts ...DirectoryOption) *Directory {
	t.Helper()

	dir, err := NewMemoryDirectory(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { dir.Close() })

	require.NoError(t, dir.Init(context.Background()))
	return dir
}

func TestDirectorySearch(t *testing.T) {
	ctx := context.Background()
	dir := newTestDirectory(t)

	results, err := dir.Search(ctx, core.SearchRequest{Query: "welding steel"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Nordic Steel Works A/S", results[0].Company.Name)

	// The search was recorded twice, once before and once after ranking.
	searches := dir.Analytics().Snapshot().Searches
	require.Len(t, searches, 2)
	assert.Equal(t, 0, searches[0].ResultCount)
	assert.Equal(t, len(results), searches[1].ResultCount)

	// And it landed in the history.
	entries := dir.History().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "welding steel", entries[0].Query)
}

func TestDirectoryInitDiscoversFilters(t *testing.T) {
	dir := newTestDirectory(t)

	// The sample catalog carries welding, materials, and certification data,
	// so discovery runs before the first search.
	params := dir.Filters().Parameters()
	ids := make([]string, len(params))
	for i, p := range params {
		ids[i] = p.ID
	}
	assert.Contains(t, ids, "welding_thickness")
	assert.Contains(t, ids, "materials")
	assert.Contains(t, ids, "certifications")
}

func TestDirectoryPrioritizedFilters(t *testing.T) {
	ctx := context.Background()
	dir := newTestDirectory(t)

	company, err := dir.Catalog().CompanyByID("sample-001")
	require.NoError(t, err)
	require.NoError(t, dir.Analytics().RecordContact(ctx, company))

	params := dir.PrioritizedFilters()
	require.NotEmpty(t, params)
	// sample-001 has welding capability data, so welding-related parameters
	// now carry success weight. The exact order depends on capability keys,
	// but prioritization itself must not drop or duplicate parameters.
	assert.Len(t, params, len(dir.Filters().Parameters()))
}

func TestDirectoryPreferences(t *testing.T) {
	ctx := context.Background()
	dir := newTestDirectory(t)

	prefs, err := dir.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", prefs.Theme)

	prefs.Theme = "dark"
	prefs.DefaultLocation = "Odense"
	require.NoError(t, dir.SavePreferences(ctx, prefs))

	reloaded, err := dir.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", reloaded.Theme)
	assert.Equal(t, "Odense", reloaded.DefaultLocation)
}

func TestDirectoryConfigValidation(t *testing.T) {
	_, err := NewMemoryDirectory(WithConfig(&Config{MinQueryLength: -1}))
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, DefaultMinQueryLength, config.MinQueryLength)
	assert.Equal(t, DefaultMaxResults, config.MaxResults)
	assert.Equal(t, DefaultTimeout, config.Timeout)
	assert.True(t, config.AnalyticsEnabled)
	assert.True(t, config.TrackClicks)
	assert.True(t, config.TrackContacts)
	require.NoError(t, config.Validate())
}
