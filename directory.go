// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prodir

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/poiesic/prodir/analytics"
	"github.com/poiesic/prodir/catalog"
	"github.com/poiesic/prodir/core"
	"github.com/poiesic/prodir/filters"
	"github.com/poiesic/prodir/search"
	"github.com/poiesic/prodir/storage"
	"github.com/poiesic/prodir/storage/badger"
)

// Directory wires the company catalog, filter registry, analytics ledger,
// and search orchestrator over a single local store.
type Directory struct {
	kv         storage.KeyValue
	repository *catalog.Repository
	registry   *filters.Registry
	ledger     *analytics.Ledger
	history    *analytics.History
	searcher   *search.Searcher
	config     *Config
	logger     *slog.Logger
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*directoryOptions)

type directoryOptions struct {
	config *Config
	logger *slog.Logger
}

// WithConfig sets the configuration. Default is DefaultConfig().
func WithConfig(config *Config) DirectoryOption {
	return func(o *directoryOptions) {
		if config != nil {
			o.config = config
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DirectoryOption {
	return func(o *directoryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewDirectory opens the store at filePath and assembles the directory
// components. Call Init before searching.
func NewDirectory(filePath string, opts ...DirectoryOption) (*Directory, error) {
	// Apply options
	options := &directoryOptions{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	config := options.config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Open backend
	kv, err := badger.NewStore(filePath)
	if err != nil {
		return nil, err
	}

	return assemble(kv, config, options.logger)
}

// NewMemoryDirectory assembles a directory over an in-memory store. State
// does not survive the process; used in tests and throwaway sessions.
func NewMemoryDirectory(opts ...DirectoryOption) (*Directory, error) {
	options := &directoryOptions{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	config := options.config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	kv, err := badger.NewMemoryStore()
	if err != nil {
		return nil, err
	}

	return assemble(kv, config, options.logger)
}

func assemble(kv storage.KeyValue, config *Config, logger *slog.Logger) (*Directory, error) {
	httpClient := &http.Client{Timeout: config.Timeout}

	// Create the dataset loader when a dataset is configured
	var loader *catalog.Loader
	if config.CompaniesURL != "" {
		var err error
		loader, err = catalog.NewLoader(config.CompaniesURL,
			catalog.WithHTTPClient(httpClient),
			catalog.WithFiltersURL(config.FilterSeedURL),
			catalog.WithLoaderLogger(logger))
		if err != nil {
			kv.Close()
			return nil, err
		}
	}

	// Create the company repository
	repoOpts := []catalog.RepositoryOption{catalog.WithRepositoryLogger(logger)}
	if loader != nil {
		repoOpts = append(repoOpts, catalog.WithSource(loader))
	}
	repository, err := catalog.NewRepository(kv, repoOpts...)
	if err != nil {
		kv.Close()
		return nil, err
	}

	// Create the filter registry
	registryOpts := []filters.Option{filters.WithLogger(logger)}
	if loader != nil {
		registryOpts = append(registryOpts, filters.WithSeed(loader))
	}
	registry, err := filters.NewRegistry(kv, registryOpts...)
	if err != nil {
		kv.Close()
		return nil, err
	}

	// Create the analytics ledger
	ledger, err := analytics.NewLedger(kv,
		analytics.WithLogger(logger),
		analytics.WithEnabled(config.AnalyticsEnabled),
		analytics.WithClickTracking(config.TrackClicks),
		analytics.WithContactTracking(config.TrackContacts))
	if err != nil {
		registry.Release()
		kv.Close()
		return nil, err
	}

	// Create the search history
	history, err := analytics.NewHistory(kv, logger)
	if err != nil {
		registry.Release()
		kv.Close()
		return nil, err
	}

	// Create the search orchestrator
	searchOpts := []search.Option{
		search.WithLogger(logger),
		search.WithHistory(history),
		search.WithMinQueryLength(config.MinQueryLength),
		search.WithMaxResults(config.MaxResults),
		search.WithLocalDelay(config.LocalDelay),
	}
	if config.SearchEndpoint != "" {
		remote, err := search.NewRemoteClient(config.SearchEndpoint,
			search.WithHTTPClient(httpClient),
			search.WithRemoteLogger(logger))
		if err != nil {
			registry.Release()
			kv.Close()
			return nil, err
		}
		searchOpts = append(searchOpts, search.WithRemoteClient(remote))
	}
	searcher, err := search.NewSearcher(repository, registry, ledger, searchOpts...)
	if err != nil {
		registry.Release()
		kv.Close()
		return nil, err
	}

	return &Directory{
		kv:         kv,
		repository: repository,
		registry:   registry,
		ledger:     ledger,
		history:    history,
		searcher:   searcher,
		config:     config,
		logger:     logger,
	}, nil
}

// Init loads every component's persisted state. The loads are independent
// and run concurrently; the first failure aborts the rest.
func (d *Directory) Init(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.repository.Load(gctx) })
	g.Go(func() error { return d.registry.Load(gctx) })
	g.Go(func() error { return d.ledger.Load(gctx) })
	g.Go(func() error { return d.history.Load(gctx) })
	if err := g.Wait(); err != nil {
		return err
	}

	// Seed discovery from whatever catalog was loaded, so filters exist
	// before the first search.
	if err := d.registry.DiscoverFromCompanies(ctx, d.repository.Companies()); err != nil {
		d.logger.Warn("error discovering filters from catalog", "err", err)
	}
	return nil
}

func (d *Directory) Close() error {
	d.registry.Release()

	if err := d.kv.Close(); err != nil {
		d.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Search executes one search request.
func (d *Directory) Search(ctx context.Context, req core.SearchRequest) ([]*core.SearchResult, error) {
	return d.searcher.Search(ctx, req)
}

// PrioritizedFilters returns the registered filter parameters ordered by
// historical success.
func (d *Directory) PrioritizedFilters() []*core.FilterParameter {
	return d.registry.Prioritized(d.ledger.SuccessScoreMap())
}

// Preferences returns the stored user preferences, or the defaults when none
// are stored.
func (d *Directory) Preferences(ctx context.Context) (*core.Preferences, error) {
	prefs := core.DefaultPreferences()
	if _, err := storage.ReadJSON(ctx, d.kv, storage.KeyUserPreferences, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// SavePreferences persists the user preferences.
func (d *Directory) SavePreferences(ctx context.Context, prefs *core.Preferences) error {
	return storage.WriteJSON(ctx, d.kv, storage.KeyUserPreferences, prefs)
}

func (d *Directory) Catalog() *catalog.Repository {
	return d.repository
}

func (d *Directory) Filters() *filters.Registry {
	return d.registry
}

func (d *Directory) Analytics() *analytics.Ledger {
	return d.ledger
}

func (d *Directory) History() *analytics.History {
	return d.history
}
