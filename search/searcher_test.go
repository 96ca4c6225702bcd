package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/prodir/catalog"
	"github.com/poiesic/prodir/core"
)

type stubCatalog struct {
	companies []*core.Company
}

func (s *stubCatalog) Companies() []*core.Company {
	return s.companies
}

type stubRegistry struct {
	mu         sync.Mutex
	discovered [][]*core.Company
}

func (s *stubRegistry) DiscoverFromCompanies(ctx context.Context, companies []*core.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discovered = append(s.discovered, companies)
	return nil
}

type recordedSearch struct {
	query string
	count int
}

type stubRecorder struct {
	mu       sync.Mutex
	events   []recordedSearch
	blocking chan struct{}
	started  chan struct{}
}

func (s *stubRecorder) RecordSearch(ctx context.Context, query string, filters map[string]core.FilterSelection, resultCount int) error {
	if s.started != nil {
		close(s.started)
		s.started = nil
	}
	if s.blocking != nil {
		<-s.blocking
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, recordedSearch{query: query, count: resultCount})
	return nil
}

type stubHistorian struct {
	mu      sync.Mutex
	entries []core.HistoryEntry
}

func (s *stubHistorian) Add(ctx context.Context, entry core.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func TestSearcherSearch(t *testing.T) {
	ctx := context.Background()
	cat := &stubCatalog{companies: catalog.SampleCompanies()}

	t.Run("ranks the catalog and records both events", func(t *testing.T) {
		registry := &stubRegistry{}
		recorder := &stubRecorder{}
		searcher, err := NewSearcher(cat, registry, recorder)
		require.NoError(t, err)

		results, err := searcher.Search(ctx, core.SearchRequest{Query: "welding steel"})
		require.NoError(t, err)
		require.Len(t, results, 4)
		assert.Equal(t, "Nordic Steel Works A/S", results[0].Company.Name)

		// One event before ranking with zero results, one after with the
		// final count.
		require.Len(t, recorder.events, 2)
		assert.Equal(t, recordedSearch{query: "welding steel", count: 0}, recorder.events[0])
		assert.Equal(t, recordedSearch{query: "welding steel", count: 4}, recorder.events[1])
	})

	t.Run("runs discovery over the result companies", func(t *testing.T) {
		registry := &stubRegistry{}
		searcher, err := NewSearcher(cat, registry, &stubRecorder{})
		require.NoError(t, err)

		_, err = searcher.Search(ctx, core.SearchRequest{Query: "pipes"})
		require.NoError(t, err)

		require.Len(t, registry.discovered, 1)
		require.Len(t, registry.discovered[0], 1)
		assert.Equal(t, "Copenhagen Pipe Solutions ApS", registry.discovered[0][0].Name)
	})

	t.Run("short query is rejected", func(t *testing.T) {
		searcher, err := NewSearcher(cat, &stubRegistry{}, &stubRecorder{})
		require.NoError(t, err)

		_, err = searcher.Search(ctx, core.SearchRequest{Query: "ab"})
		assert.ErrorIs(t, err, ErrQueryTooShort)
	})

	t.Run("result count honors the configured page size", func(t *testing.T) {
		searcher, err := NewSearcher(cat, &stubRegistry{}, &stubRecorder{}, WithMaxResults(2))
		require.NoError(t, err)

		results, err := searcher.Search(ctx, core.SearchRequest{Query: "welding steel"})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("history entry is added when a historian is configured", func(t *testing.T) {
		history := &stubHistorian{}
		searcher, err := NewSearcher(cat, &stubRegistry{}, &stubRecorder{}, WithHistory(history))
		require.NoError(t, err)

		_, err = searcher.Search(ctx, core.SearchRequest{Query: "welding", Location: "Odense"})
		require.NoError(t, err)

		require.Len(t, history.entries, 1)
		assert.Equal(t, "welding", history.entries[0].Query)
		assert.Equal(t, "Odense", history.entries[0].Location)
		assert.False(t, history.entries[0].Timestamp.IsZero())
	})

	t.Run("second concurrent search is rejected", func(t *testing.T) {
		recorder := &stubRecorder{
			blocking: make(chan struct{}),
			started:  make(chan struct{}),
		}
		started := recorder.started
		searcher, err := NewSearcher(cat, &stubRegistry{}, recorder)
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() {
			_, err := searcher.Search(ctx, core.SearchRequest{Query: "welding"})
			done <- err
		}()

		<-started
		assert.True(t, searcher.IsSearching())

		_, err = searcher.Search(ctx, core.SearchRequest{Query: "steel"})
		assert.ErrorIs(t, err, ErrSearchInProgress)

		close(recorder.blocking)
		require.NoError(t, <-done)
		assert.False(t, searcher.IsSearching())
	})

	t.Run("local delay respects context cancellation", func(t *testing.T) {
		searcher, err := NewSearcher(cat, &stubRegistry{}, &stubRecorder{},
			WithLocalDelay(time.Minute))
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err = searcher.Search(cancelled, core.SearchRequest{Query: "welding"})
		assert.ErrorIs(t, err, ErrSearchFailed)
	})

	t.Run("missing collaborators are rejected at construction", func(t *testing.T) {
		_, err := NewSearcher(nil, &stubRegistry{}, &stubRecorder{})
		assert.ErrorIs(t, err, ErrCatalogRequired)

		_, err = NewSearcher(cat, nil, &stubRecorder{})
		assert.ErrorIs(t, err, ErrRegistryRequired)

		_, err = NewSearcher(cat, &stubRegistry{}, nil)
		assert.ErrorIs(t, err, ErrRecorderRequired)
	})
}

type countingMonitor struct {
	starts, rankings, discoveries, finishes int
}

func (m *countingMonitor) Start(query string)                        { m.starts++ }
func (m *countingMonitor) AfterRanking(results []*core.SearchResult) { m.rankings++ }
func (m *countingMonitor) AfterDiscovery(companies []*core.Company)  { m.discoveries++ }
func (m *countingMonitor) Finish(results []*core.SearchResult)       { m.finishes++ }

func TestSearcherMonitor(t *testing.T) {
	cat := &stubCatalog{companies: catalog.SampleCompanies()}
	searcher, err := NewSearcher(cat, &stubRegistry{}, &stubRecorder{})
	require.NoError(t, err)

	monitor := &countingMonitor{}
	_, err = searcher.SearchWithMonitor(context.Background(), core.SearchRequest{Query: "welding"}, monitor)
	require.NoError(t, err)

	assert.Equal(t, 1, monitor.starts)
	assert.Equal(t, 1, monitor.rankings)
	assert.Equal(t, 1, monitor.discoveries)
	assert.Equal(t, 1, monitor.finishes)
}
