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


package search

import "errors"

var (
	// ErrCatalogRequired is returned when a catalog is not provided.
	ErrCatalogRequired = errors.New("catalog required")

	// ErrRegistryRequired is returned when a filter registry is not provided.
	ErrRegistryRequired = errors.New("filter registry required")

	// ErrRecorderRequired is returned when an analytics recorder is not provided.
	ErrRecorderRequired = errors.New("analytics recorder required")

	// ErrSearchInProgress is returned when a search is already in flight.
	// The call is a no-op; the running search is unaffected.
	ErrSearchInProgress = errors.New("search already in progress")

	// ErrQueryTooShort is returned when the query is below the configured
	// minimum length. The message is suitable for direct display.
	ErrQueryTooShort = errors.New("please enter a longer search query")

	// ErrSearchFailed wraps unclassified failures surfaced at the orchestrator
	// boundary. The directory remains interactive after it.
	ErrSearchFailed = errors.New("search failed, please try again")

	// ErrEndpointRequired is returned when a remote client is created without
	// an endpoint URL.
	ErrEndpointRequired = errors.New("search endpoint required")

	// ErrRemoteStatus indicates a non-2xx response from the remote search API.
	ErrRemoteStatus = errors.New("remote search returned non-success status")
)
