package search

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/poiesic/prodir/core"
)

// Catalog is the source of company records to rank.
type Catalog interface {
	Companies() []*core.Company
}

// Registry receives the post-search discovery pass.
type Registry interface {
	DiscoverFromCompanies(ctx context.Context, companies []*core.Company) error
}

// Recorder receives analytics events emitted by the orchestrator.
type Recorder interface {
	RecordSearch(ctx context.Context, query string, filters map[string]core.FilterSelection, resultCount int) error
}

// Historian receives search history entries.
type Historian interface {
	Add(ctx context.Context, entry core.HistoryEntry) error
}

// Searcher coordinates a single search request: it ranks the catalog (or asks
// the remote API), records analytics, and runs filter discovery over the
// returned companies. At most one search is in flight at a time; a second
// concurrent call is rejected with ErrSearchInProgress.
type Searcher struct {
	catalog        Catalog
	registry       Registry
	recorder       Recorder
	history        Historian
	remote         *RemoteClient
	minQueryLength int
	maxResults     int
	localDelay     time.Duration
	searching      atomic.Bool
	logger         *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithHistory sets the search history sink. Default is none.
func WithHistory(history Historian) Option {
	return func(s *Searcher) error {
		s.history = history
		return nil
	}
}

// WithRemoteClient routes searches to a remote API instead of ranking the
// local catalog. Default is local ranking.
func WithRemoteClient(client *RemoteClient) Option {
	return func(s *Searcher) error {
		s.remote = client
		return nil
	}
}

// WithMinQueryLength sets the minimum accepted query length. Default is 3.
func WithMinQueryLength(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			n = 1
		}
		s.minQueryLength = n
		return nil
	}
}

// WithMaxResults sets the result page size. Default is 20.
func WithMaxResults(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			n = 1
		}
		s.maxResults = n
		return nil
	}
}

// WithLocalDelay adds a latency simulation to the local ranking path.
// Default is zero.
func WithLocalDelay(d time.Duration) Option {
	return func(s *Searcher) error {
		s.localDelay = d
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(catalog Catalog, registry Registry, recorder Recorder, opts ...Option) (*Searcher, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if recorder == nil {
		return nil, ErrRecorderRequired
	}

	s := &Searcher{
		catalog:        catalog,
		registry:       registry,
		recorder:       recorder,
		minQueryLength: 3,
		maxResults:     20,
		logger:         slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search executes one search request.
// Returns up to the configured page size of results, ranked by relevance.
func (s *Searcher) Search(ctx context.Context, req core.SearchRequest) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, req, nil)
}

// SearchWithMonitor executes one search request with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, req core.SearchRequest, monitor SearchMonitor) ([]*core.SearchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if !s.searching.CompareAndSwap(false, true) {
		return nil, ErrSearchInProgress
	}
	defer s.searching.Store(false)

	if len(req.Query) < s.minQueryLength {
		return nil, ErrQueryTooShort
	}

	if req.Limit <= 0 {
		req.Limit = s.maxResults
	}

	monitor.Start(req.Query)

	if s.history != nil {
		if err := s.history.Add(ctx, core.HistoryEntry{
			Query:     req.Query,
			Filters:   req.Filters,
			Location:  req.Location,
			Distance:  req.Distance,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			s.logger.Warn("error recording search history", "err", err)
		}
	}

	// The search is recorded twice per call: once up front with no result
	// count, once after ranking with the final count. History and analytics
	// are separate concerns and downstream consumers may depend on either
	// record.
	if err := s.recorder.RecordSearch(ctx, req.Query, req.Filters, 0); err != nil {
		s.logger.Warn("error recording search event", "err", err)
	}

	results, err := s.rank(ctx, req)
	if err != nil {
		s.logger.Error("search failed", "query", req.Query, "err", err)
		return nil, ErrSearchFailed
	}
	monitor.AfterRanking(results)

	if err := s.recorder.RecordSearch(ctx, req.Query, req.Filters, len(results)); err != nil {
		s.logger.Warn("error recording search event", "err", err)
	}

	companies := make([]*core.Company, len(results))
	for i, r := range results {
		companies[i] = r.Company
	}
	if err := s.registry.DiscoverFromCompanies(ctx, companies); err != nil {
		// Discovery is best-effort; results are still valid.
		s.logger.Warn("error discovering filter parameters", "err", err)
	}
	monitor.AfterDiscovery(companies)

	monitor.Finish(results)
	return results, nil
}

// rank produces the ordered result set, either from the remote API or by
// scoring the local catalog.
func (s *Searcher) rank(ctx context.Context, req core.SearchRequest) ([]*core.SearchResult, error) {
	if s.remote != nil {
		resp, err := s.remote.Search(ctx, req)
		if err != nil {
			return nil, err
		}
		results := make([]*core.SearchResult, len(resp.Companies))
		for i, company := range resp.Companies {
			results[i] = &core.SearchResult{Company: company, Score: resp.Scores(i)}
		}
		return results, nil
	}

	if s.localDelay > 0 {
		select {
		case <-time.After(s.localDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	results := Rank(s.catalog.Companies(), req)
	if len(results) > req.Limit {
		results = results[:req.Limit]
	}
	return results, nil
}

// IsSearching reports whether a search is currently in flight.
func (s *Searcher) IsSearching() bool {
	return s.searching.Load()
}
