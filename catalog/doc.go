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


// Package catalog loads and serves the company directory.
//
// The Repository owns the in-memory catalog for the session and backs it
// with the companies-cache key in the local store. On Load it prefers the
// cache, falls back to the HTTP Loader when the cache is empty, and falls
// back again to the built-in sample companies when the dataset cannot be
// fetched, so search always has something to work with. Refresh bypasses the
// cache to pull a fresh dataset.
//
// The Loader fetches static JSON: the published company list and,
// optionally, the initial filter definitions that seed the filter registry.
// Invalid records are skipped rather than failing the whole fetch, and
// records that arrive without an id get one derived from their content.
package catalog
