package analytics

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/poiesic/prodir/core"
	"github.com/poiesic/prodir/storage"
)

// Event buffer bounds. Oldest entries are evicted first.
const (
	maxSearches = 100
	maxClicks   = 200
)

// Ledger accumulates bounded search, click, and contact events plus the
// per-parameter success counters that drive filter prioritization. All
// mutations persist the full ledger to the analytics-ledger key;
// persistence failures are logged and swallowed.
type Ledger struct {
	kv     storage.KeyValue
	logger *slog.Logger

	enabled       bool
	trackClicks   bool
	trackContacts bool

	mu     sync.Mutex
	ledger *core.Ledger
}

// Option configures a Ledger.
type Option func(*Ledger) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// WithEnabled toggles all event recording. When disabled, every Record
// method is a silent no-op. Default is enabled.
func WithEnabled(enabled bool) Option {
	return func(l *Ledger) error {
		l.enabled = enabled
		return nil
	}
}

// WithClickTracking toggles click event recording. Default is enabled.
func WithClickTracking(enabled bool) Option {
	return func(l *Ledger) error {
		l.trackClicks = enabled
		return nil
	}
}

// WithContactTracking toggles contact event recording. Default is enabled.
func WithContactTracking(enabled bool) Option {
	return func(l *Ledger) error {
		l.trackContacts = enabled
		return nil
	}
}

// NewLedger creates a new analytics ledger backed by the given store.
func NewLedger(kv storage.KeyValue, opts ...Option) (*Ledger, error) {
	if kv == nil {
		return nil, ErrStoreRequired
	}

	l := &Ledger{
		kv:            kv,
		logger:        slog.Default(),
		enabled:       true,
		trackClicks:   true,
		trackContacts: true,
		ledger:        core.NewLedger(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Load initializes the ledger from the store. An absent key yields an empty
// ledger; only a storage failure is an error.
func (l *Ledger) Load(ctx context.Context) error {
	ledger := core.NewLedger()
	if _, err := storage.ReadJSON(ctx, l.kv, storage.KeyAnalyticsLedger, ledger); err != nil {
		return err
	}
	if ledger.ParameterSuccess == nil {
		ledger.ParameterSuccess = make(map[string]int)
	}

	l.mu.Lock()
	l.ledger = ledger
	l.mu.Unlock()
	return nil
}

func (l *Ledger) persist(ctx context.Context) {
	if err := storage.WriteJSON(ctx, l.kv, storage.KeyAnalyticsLedger, l.ledger); err != nil {
		l.logger.Warn("error persisting analytics ledger", "err", err)
	}
}

// RecordSearch appends a search event, evicting the oldest entry past the
// buffer bound.
func (l *Ledger) RecordSearch(ctx context.Context, query string, filters map[string]core.FilterSelection, resultCount int) error {
	if !l.enabled {
		return nil
	}

	event := core.SearchEvent{
		Query:       query,
		Filters:     activeFilters(filters),
		ResultCount: resultCount,
		Timestamp:   time.Now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.ledger.Searches = append(l.ledger.Searches, event)
	if len(l.ledger.Searches) > maxSearches {
		l.ledger.Searches = l.ledger.Searches[len(l.ledger.Searches)-maxSearches:]
	}
	l.persist(ctx)
	return nil
}

// activeFilters drops selections whose inputs carry no value, so events stay
// small and comparable.
func activeFilters(filters map[string]core.FilterSelection) map[string]core.FilterSelection {
	if len(filters) == 0 {
		return nil
	}
	active := make(map[string]core.FilterSelection, len(filters))
	for id, sel := range filters {
		if sel.Enabled || len(sel.Values) > 0 || sel.Min != nil || sel.Max != nil {
			active[id] = sel
		}
	}
	if len(active) == 0 {
		return nil
	}
	return active
}

// RecordClick appends a result click event, evicting the oldest entry past
// the buffer bound.
func (l *Ledger) RecordClick(ctx context.Context, companyID, query string) error {
	if !l.enabled || !l.trackClicks {
		return nil
	}

	event := core.ClickEvent{
		CompanyID: companyID,
		Query:     query,
		Timestamp: time.Now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.ledger.Clicks = append(l.ledger.Clicks, event)
	if len(l.ledger.Clicks) > maxClicks {
		l.ledger.Clicks = l.ledger.Clicks[len(l.ledger.Clicks)-maxClicks:]
	}
	l.persist(ctx)
	return nil
}

// RecordContact appends a contact event and credits each of the company's
// capability keys once. The event snapshots the company's capabilities at
// contact time; the per-key counters are the success scores used to
// prioritize filters. Contact events are unbounded.
func (l *Ledger) RecordContact(ctx context.Context, company *core.Company) error {
	if !l.enabled || !l.trackContacts || company == nil {
		return nil
	}

	event := core.ContactEvent{
		CompanyID:    company.ID,
		Capabilities: company.Capabilities,
		Timestamp:    time.Now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.ledger.Contacts = append(l.ledger.Contacts, event)
	if company.Capabilities != nil {
		for _, key := range company.Capabilities.Keys() {
			l.ledger.ParameterSuccess[key]++
		}
	}
	l.persist(ctx)
	return nil
}

// SuccessScoreMap returns a copy of the per-parameter success counters.
func (l *Ledger) SuccessScoreMap() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	scores := make(map[string]int, len(l.ledger.ParameterSuccess))
	for k, v := range l.ledger.ParameterSuccess {
		scores[k] = v
	}
	return scores
}

// SuccessScores returns the success counters ordered by descending score,
// ties alphabetical by parameter id.
func (l *Ledger) SuccessScores() []core.ParameterScore {
	l.mu.Lock()
	defer l.mu.Unlock()

	scores := make([]core.ParameterScore, 0, len(l.ledger.ParameterSuccess))
	for param, score := range l.ledger.ParameterSuccess {
		scores = append(scores, core.ParameterScore{Param: param, Score: score})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Param < scores[j].Param
	})
	return scores
}

// Snapshot returns a copy of the full ledger state.
func (l *Ledger) Snapshot() *core.Ledger {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := core.NewLedger()
	snap.Searches = append(snap.Searches, l.ledger.Searches...)
	snap.Clicks = append(snap.Clicks, l.ledger.Clicks...)
	snap.Contacts = append(snap.Contacts, l.ledger.Contacts...)
	for k, v := range l.ledger.ParameterSuccess {
		snap.ParameterSuccess[k] = v
	}
	return snap
}

// Reset clears the ledger in memory and in the store.
func (l *Ledger) Reset(ctx context.Context) error {
	l.mu.Lock()
	l.ledger = core.NewLedger()
	l.mu.Unlock()
	return l.kv.Remove(ctx, storage.KeyAnalyticsLedger)
}
