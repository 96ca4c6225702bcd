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
	"errors"
	"time"
)

// Config carries the directory-wide settings. Zero values fall back to the
// defaults below, so a partially filled Config is valid.
type Config struct {
	// MinQueryLength is the minimum accepted search query length.
	MinQueryLength int

	// MaxResults is the result page size.
	MaxResults int

	// Timeout bounds outbound HTTP calls.
	Timeout time.Duration

	// SearchEndpoint, when set, routes searches to a remote API instead of
	// ranking the local catalog.
	SearchEndpoint string

	// CompaniesURL is the published company dataset. Without it the
	// catalog falls back to the built-in sample set.
	CompaniesURL string

	// FilterSeedURL is the optional initial filter definitions document.
	FilterSeedURL string

	// AnalyticsEnabled toggles all analytics recording.
	AnalyticsEnabled bool

	// TrackClicks and TrackContacts toggle those event streams
	// individually.
	TrackClicks   bool
	TrackContacts bool

	// LocalDelay adds simulated latency to local ranking, for UI work
	// against the sample catalog.
	LocalDelay time.Duration
}

// Default configuration values.
const (
	DefaultMinQueryLength = 3
	DefaultMaxResults     = 20
	DefaultTimeout        = 30 * time.Second
)

// DefaultConfig returns a Config with all defaults: local ranking over the
// built-in catalog, analytics fully enabled.
func DefaultConfig() *Config {
	return &Config{
		MinQueryLength:   DefaultMinQueryLength,
		MaxResults:       DefaultMaxResults,
		Timeout:          DefaultTimeout,
		AnalyticsEnabled: true,
		TrackClicks:      true,
		TrackContacts:    true,
	}
}

// Validate checks the configuration for values that cannot be defaulted
// away.
func (c *Config) Validate() error {
	if c.MinQueryLength < 0 {
		return errors.New("prodir: MinQueryLength must not be negative")
	}
	if c.MaxResults < 0 {
		return errors.New("prodir: MaxResults must not be negative")
	}
	if c.Timeout < 0 {
		return errors.New("prodir: Timeout must not be negative")
	}
	return nil
}

// withDefaults fills zero values in from DefaultConfig.
func (c *Config) withDefaults() *Config {
	out := *c
	if out.MinQueryLength == 0 {
		out.MinQueryLength = DefaultMinQueryLength
	}
	if out.MaxResults == 0 {
		out.MaxResults = DefaultMaxResults
	}
	if out.Timeout == 0 {
		out.Timeout = DefaultTimeout
	}
	return &out
}
