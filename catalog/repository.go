package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/prodir/core"
	"github.com/poiesic/prodir/storage"
)

// Source supplies company records from outside the local store.
type Source interface {
	FetchCompanies(ctx context.Context) ([]*core.Company, error)
}

// Repository holds the in-memory company catalog and keeps it in sync with
// the companies-cache key. Load order is cache, then the remote source, then
// the built-in sample set, so the catalog is never empty.
type Repository struct {
	kv     storage.KeyValue
	source Source
	logger *slog.Logger

	mu        sync.RWMutex
	companies []*core.Company
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository) error

// WithSource sets the remote dataset source used when the cache is empty.
func WithSource(source Source) RepositoryOption {
	return func(r *Repository) error {
		r.source = source
		return nil
	}
}

// WithRepositoryLogger sets a custom logger.
// Default is slog.Default().
func WithRepositoryLogger(logger *slog.Logger) RepositoryOption {
	return func(r *Repository) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRepository creates a company repository backed by the given store.
func NewRepository(kv storage.KeyValue, opts ...RepositoryOption) (*Repository, error) {
	if kv == nil {
		return nil, ErrStoreRequired
	}

	r := &Repository{
		kv:     kv,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Load populates the catalog. A populated cache wins; otherwise the remote
// source is tried and its result cached; if that also fails, the built-in
// sample set is used. Only a storage read failure is an error.
func (r *Repository) Load(ctx context.Context) error {
	var cached []*core.Company
	found, err := storage.ReadJSON(ctx, r.kv, storage.KeyCompaniesCache, &cached)
	if err != nil {
		return err
	}
	if found && len(cached) > 0 {
		r.setCompanies(cached)
		r.logger.Debug("catalog loaded from cache", "companies", len(cached))
		return nil
	}

	if r.source != nil {
		fetched, err := r.source.FetchCompanies(ctx)
		if err != nil {
			r.logger.Warn("could not fetch company dataset, using sample data", "err", err)
		} else if len(fetched) > 0 {
			r.setCompanies(fetched)
			r.cache(ctx, fetched)
			r.logger.Debug("catalog loaded from dataset", "companies", len(fetched))
			return nil
		}
	}

	r.setCompanies(SampleCompanies())
	return nil
}

// Refresh bypasses the cache: it refetches from the remote source, replaces
// the catalog, and rewrites the cache. Without a source it is an error.
func (r *Repository) Refresh(ctx context.Context) error {
	if r.source == nil {
		return ErrNoSource
	}

	fetched, err := r.source.FetchCompanies(ctx)
	if err != nil {
		return err
	}

	r.setCompanies(fetched)
	r.cache(ctx, fetched)
	r.logger.Info("catalog refreshed", "companies", len(fetched))
	return nil
}

func (r *Repository) setCompanies(companies []*core.Company) {
	r.mu.Lock()
	r.companies = companies
	r.mu.Unlock()
}

// cache writes the catalog to the store. Best-effort; a failed write leaves
// the in-memory catalog authoritative.
func (r *Repository) cache(ctx context.Context, companies []*core.Company) {
	if err := storage.WriteJSON(ctx, r.kv, storage.KeyCompaniesCache, companies); err != nil {
		r.logger.Warn("error caching company catalog", "err", err)
	}
}

// Companies returns the loaded catalog. The slice is shared; callers must
// not mutate the records.
func (r *Repository) Companies() []*core.Company {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.companies
}

// Count returns the number of loaded companies.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.companies)
}

// CompanyByID returns the company with the given id, or ErrCompanyNotFound.
func (r *Repository) CompanyByID(id string) (*core.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, company := range r.companies {
		if company.ID == id {
			return company, nil
		}
	}
	return nil, ErrCompanyNotFound
}

// ClearCache removes the cached catalog from the store. The in-memory
// catalog is untouched; the next Load will hit the source again.
func (r *Repository) ClearCache(ctx context.Context) error {
	return r.kv.Remove(ctx, storage.KeyCompaniesCache)
}
