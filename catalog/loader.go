package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/prodir/core"
)

// Loader fetches the published dataset over HTTP: the company list and the
// initial filter definitions. Both endpoints serve static JSON.
type Loader struct {
	client       *http.Client
	companiesURL string
	filtersURL   string
	logger       *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader) error

// WithHTTPClient sets a custom HTTP client.
// Default is a client with a 30 second timeout.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) error {
		if client != nil {
			l.client = client
		}
		return nil
	}
}

// WithFiltersURL sets the endpoint for the initial filter definitions.
// Without it, FetchFilterSeed returns nothing.
func WithFiltersURL(url string) LoaderOption {
	return func(l *Loader) error {
		l.filtersURL = url
		return nil
	}
}

// WithLoaderLogger sets a custom logger.
// Default is slog.Default().
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a dataset loader for the given companies endpoint.
func NewLoader(companiesURL string, opts ...LoaderOption) (*Loader, error) {
	if companiesURL == "" {
		return nil, ErrDatasetURLRequired
	}

	l := &Loader{
		client:       &http.Client{Timeout: 30 * time.Second},
		companiesURL: companiesURL,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// companiesDocument is the wire shape of the published company dataset.
type companiesDocument struct {
	Companies []*core.Company `json:"companies"`
}

// FetchCompanies downloads and validates the company dataset. Records that
// fail validation are skipped with a warning rather than failing the fetch,
// and records without an id are assigned one derived from their content.
func (l *Loader) FetchCompanies(ctx context.Context) ([]*core.Company, error) {
	var doc companiesDocument
	if err := l.fetchJSON(ctx, l.companiesURL, &doc); err != nil {
		return nil, err
	}

	companies := make([]*core.Company, 0, len(doc.Companies))
	for _, company := range doc.Companies {
		if company == nil {
			continue
		}
		if err := core.ValidateCompany(company); err != nil {
			l.logger.Warn("skipping invalid company record", "name", company.Name, "err", err)
			continue
		}
		if company.ID == "" {
			company.ID = core.IDFromContent(company.Name + company.CVR)
		}
		companies = append(companies, company)
	}
	return companies, nil
}

// FetchFilterSeed downloads the initial filter definitions, or returns
// (nil, nil) when no filters endpoint is configured.
func (l *Loader) FetchFilterSeed(ctx context.Context) (*core.FilterSet, error) {
	if l.filtersURL == "" {
		return nil, nil
	}

	set := core.NewFilterSet()
	if err := l.fetchJSON(ctx, l.filtersURL, set); err != nil {
		return nil, err
	}
	if set.Popularity == nil {
		set.Popularity = make(map[string]int)
	}
	return set, nil
}

func (l *Loader) fetchJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned %d", ErrDatasetUnavailable, url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}
