package filters

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/prodir/core"
	"github.com/poiesic/prodir/storage"
)

// Parameter ids produced by the built-in discovery rules.
const (
	ParamWeldingThickness = "welding_thickness"
	ParamMaterials        = "materials"
	ParamCertifications   = "certifications"
)

// SeedSource supplies an initial filter set when nothing is persisted yet.
type SeedSource interface {
	FetchFilterSeed(ctx context.Context) (*core.FilterSet, error)
}

// Registry is the evolving set of selectable filter parameters. Parameters
// are discovered from catalog data or seeded statically; every mutation is
// persisted to the filters-registry key. Mutations are immutable updates: the
// working snapshot is cloned, modified, and swapped in, so callers holding
// copies never observe partial merges.
type Registry struct {
	kv     storage.KeyValue
	seed   SeedSource
	pool   *ants.Pool
	logger *slog.Logger

	mu  sync.Mutex
	set *core.FilterSet
}

// Option configures a Registry.
type Option func(*Registry) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithSeed sets the source for the initial filter set used when the store
// holds no registry yet. Default is an empty registry.
func WithSeed(seed SeedSource) Option {
	return func(r *Registry) error {
		r.seed = seed
		return nil
	}
}

// WithPoolSize sets the worker pool size for the concurrent discovery pass.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Registry) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// NewRegistry creates a new filter registry backed by the given store.
func NewRegistry(kv storage.KeyValue, opts ...Option) (*Registry, error) {
	if kv == nil {
		return nil, ErrStoreRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		kv:     kv,
		pool:   pool,
		logger: slog.Default(),
		set:    core.NewFilterSet(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.pool.Release()
			return nil, err
		}
	}

	return r, nil
}

// Load initializes the registry from the store, falling back to the seed
// source and finally to an empty set. Only a storage read failure is an
// error; an absent key or a failed seed fetch is not.
func (r *Registry) Load(ctx context.Context) error {
	set := core.NewFilterSet()
	found, err := storage.ReadJSON(ctx, r.kv, storage.KeyFiltersRegistry, set)
	if err != nil {
		return err
	}

	if !found && r.seed != nil {
		seeded, err := r.seed.FetchFilterSeed(ctx)
		if err != nil {
			r.logger.Warn("could not fetch filter seed, starting empty", "err", err)
		} else if seeded != nil {
			set = seeded
		}
	}

	if set.Popularity == nil {
		set.Popularity = make(map[string]int)
	}

	r.mu.Lock()
	r.set = set
	r.mu.Unlock()

	if !found {
		r.persist(ctx, set)
	}
	return nil
}

// Release releases the discovery worker pool.
// The registry should not be used after calling Release.
func (r *Registry) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// persist writes the snapshot to the store. Write failures are logged and
// swallowed: the in-memory set stays authoritative for the session.
func (r *Registry) persist(ctx context.Context, set *core.FilterSet) {
	if err := storage.WriteJSON(ctx, r.kv, storage.KeyFiltersRegistry, set); err != nil {
		r.logger.Warn("error persisting filter registry", "err", err)
	}
}

// Discover adds a candidate parameter or merges it into an existing one with
// the same id. On merge, fields are overwritten, new options are appended
// (de-duplicated by normalized value), and occurrences is incremented once.
// Invalid candidates are rejected with a logged warning and leave the
// registry unchanged.
func (r *Registry) Discover(ctx context.Context, param *core.FilterParameter) error {
	if err := core.ValidateFilterParameter(param); err != nil {
		r.logger.Warn("rejecting invalid filter parameter", "err", err)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.set.Clone()
	if existing := next.Find(param.ID); existing != nil {
		mergeParameter(existing, param)
	} else {
		added := param.Clone()
		added.Occurrences = 1
		added.AddedAt = time.Now().UTC()
		next.Parameters = append(next.Parameters, added)
	}
	next.LastUpdated = time.Now().UTC()

	r.set = next
	r.persist(ctx, next)
	return nil
}

// mergeParameter merges candidate into existing in place: scalar fields are
// overwritten, options are unioned by value, occurrences is incremented.
func mergeParameter(existing, candidate *core.FilterParameter) {
	existing.Label = candidate.Label
	existing.Type = candidate.Type
	if candidate.Unit != "" {
		existing.Unit = candidate.Unit
	}
	if candidate.Min != 0 || candidate.Max != 0 {
		existing.Min = candidate.Min
		existing.Max = candidate.Max
	}
	if candidate.Step != 0 {
		existing.Step = candidate.Step
	}
	if candidate.Category != "" {
		existing.Category = candidate.Category
	}
	for _, opt := range candidate.Options {
		if !existing.HasOption(opt.Value) {
			existing.Options = append(existing.Options, opt)
		}
	}
	existing.Occurrences++
}

// TrackUsage increments the popularity counter for a filter id. Called when
// the user changes that filter's input; persisted immediately. The increment
// is applied to the stored document through a single read-modify-write
// transaction, so counters from other sessions sharing the store are never
// overwritten.
func (r *Registry) TrackUsage(ctx context.Context, filterID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()

	next := r.set.Clone()
	next.Popularity[filterID]++
	next.LastUpdated = now
	r.set = next

	err := r.kv.Update(ctx, storage.KeyFiltersRegistry, func(current []byte) ([]byte, error) {
		stored := next
		if current != nil {
			stored = core.NewFilterSet()
			if err := storage.Unmarshal(current, stored); err != nil {
				return nil, err
			}
			if stored.Popularity == nil {
				stored.Popularity = make(map[string]int)
			}
			stored.Popularity[filterID]++
			stored.LastUpdated = now
		}
		return storage.Marshal(stored)
	})
	if err != nil {
		r.logger.Warn("error persisting filter registry", "err", err)
	}
}

// Parameters returns a copy of the registered parameters in insertion order.
func (r *Registry) Parameters() []*core.FilterParameter {
	r.mu.Lock()
	defer r.mu.Unlock()

	params := make([]*core.FilterParameter, len(r.set.Parameters))
	for i, p := range r.set.Parameters {
		params[i] = p.Clone()
	}
	return params
}

// Snapshot returns a deep copy of the full registry state.
func (r *Registry) Snapshot() *core.FilterSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.set.Clone()
}

// Reset clears the registry in memory and in the store.
func (r *Registry) Reset(ctx context.Context) error {
	r.mu.Lock()
	r.set = core.NewFilterSet()
	r.mu.Unlock()
	return r.kv.Remove(ctx, storage.KeyFiltersRegistry)
}

// Prioritize orders parameters by descending historical success score, with
// ties broken by descending occurrences. The ordering governs render order
// only; it has no effect on relevance scoring.
func Prioritize(params []*core.FilterParameter, successScores map[string]int) []*core.FilterParameter {
	ordered := make([]*core.FilterParameter, len(params))
	copy(ordered, params)

	sort.SliceStable(ordered, func(i, j int) bool {
		scoreI := successScores[ordered[i].ID]
		scoreJ := successScores[ordered[j].ID]
		if scoreI != scoreJ {
			return scoreI > scoreJ
		}
		return ordered[i].Occurrences > ordered[j].Occurrences
	})
	return ordered
}

// Prioritized returns the registered parameters ordered by the given success
// scores.
func (r *Registry) Prioritized(successScores map[string]int) []*core.FilterParameter {
	return Prioritize(r.Parameters(), successScores)
}

// DiscoverFromCompany inspects one company and ensures the parameters its
// data implies exist in the registry:
//
//   - a welding max-thickness attribute implies a welding_thickness range
//   - each material implies an option on the materials multiselect
//   - each certification implies an option on the certifications multiselect
//
// Discovery is idempotent: repeating it with identical company data never
// duplicates options, though occurrences increments per call.
func (r *Registry) DiscoverFromCompany(ctx context.Context, company *core.Company) error {
	if company == nil || company.Capabilities == nil {
		return nil
	}
	caps := company.Capabilities

	if caps.Welding != nil && caps.Welding.MaxThickness > 0 {
		param := &core.FilterParameter{
			ID:       ParamWeldingThickness,
			Label:    "Welding Thickness",
			Type:     core.FilterTypeRange,
			Unit:     "mm",
			Min:      0,
			Max:      100,
			Step:     1,
			Category: "welding",
		}
		if err := r.Discover(ctx, param); err != nil {
			return err
		}
	}

	if len(caps.Materials) > 0 {
		param := &core.FilterParameter{
			ID:       ParamMaterials,
			Label:    "Materials",
			Type:     core.FilterTypeMultiSelect,
			Category: "general",
			Options:  optionsFromValues(caps.Materials),
		}
		if err := r.Discover(ctx, param); err != nil {
			return err
		}
	}

	if len(company.Certifications) > 0 {
		param := &core.FilterParameter{
			ID:       ParamCertifications,
			Label:    "Certifications",
			Type:     core.FilterTypeMultiSelect,
			Category: "quality",
			Options:  optionsFromValues(company.Certifications),
		}
		if err := r.Discover(ctx, param); err != nil {
			return err
		}
	}

	return nil
}

// optionsFromValues builds de-duplicated options from display values.
// Value is normalized, label keeps the original text.
func optionsFromValues(values []string) []core.FilterOption {
	options := make([]core.FilterOption, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		normalized := core.NormalizeValue(v)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		options = append(options, core.FilterOption{Value: normalized, Label: v})
	}
	return options
}

// DiscoverFromCompanies runs the discovery rules over every company on the
// worker pool. Merges from concurrent workers land in the same parameter
// because Discover serializes on the registry lock. Per-company failures are
// logged, not returned; the pass is best-effort.
func (r *Registry) DiscoverFromCompanies(ctx context.Context, companies []*core.Company) error {
	var wg sync.WaitGroup
	for _, company := range companies {
		wg.Add(1)
		c := company
		err := r.pool.Submit(func() {
			defer wg.Done()
			if err := r.DiscoverFromCompany(ctx, c); err != nil {
				r.logger.Warn("discovery failed for company", "companyId", c.ID, "err", err)
			}
		})
		if err != nil {
			// Pool unavailable (released or overloaded): run inline.
			if derr := r.DiscoverFromCompany(ctx, c); derr != nil {
				r.logger.Warn("discovery failed for company", "companyId", c.ID, "err", derr)
			}
			wg.Done()
		}
	}
	wg.Wait()
	return nil
}
