package storage

// Logical key names. These are stable across versions; renaming one orphans
// previously persisted state.
const (
	// KeyCompaniesCache holds the cached company catalog.
	KeyCompaniesCache = "companies-cache"

	// KeyFiltersRegistry holds the evolving filter parameter registry.
	KeyFiltersRegistry = "filters-registry"

	// KeySearchHistory holds the bounded user-visible search history.
	KeySearchHistory = "search-history"

	// KeyAnalyticsLedger holds the analytics event logs and success scores.
	KeyAnalyticsLedger = "analytics-ledger"

	// KeyUserPreferences holds per-user settings.
	KeyUserPreferences = "user-preferences"
)
