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


package catalog

import "errors"

var (
	// ErrStoreRequired is returned when a repository is created without a
	// backing store.
	ErrStoreRequired = errors.New("catalog: storage backend is required")

	// ErrDatasetURLRequired is returned when a loader is created without a
	// companies endpoint.
	ErrDatasetURLRequired = errors.New("catalog: dataset URL is required")

	// ErrDatasetUnavailable is returned when a dataset endpoint answers
	// with a non-success status.
	ErrDatasetUnavailable = errors.New("catalog: dataset unavailable")

	// ErrNoSource is returned by Refresh when the repository has no remote
	// source configured.
	ErrNoSource = errors.New("catalog: no dataset source configured")

	// ErrCompanyNotFound is returned when no company matches the given id.
	ErrCompanyNotFound = errors.New("catalog: company not found")
)
