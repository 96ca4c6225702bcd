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


// Package search provides relevance scoring and search orchestration for the
// producer directory.
//
// The scoring functions are pure: Score combines substring token matching
// over a company's searchable text with structured filter evaluation, and
// clamps the result to [0,100]. Substring matching (rather than exact token
// equality) absorbs morphological variants of compound technical terms
// without a stemmer, and a failed materials or processes filter penalizes a
// company instead of excluding it, so over-narrow filters never produce an
// empty result list. SimpleScore is the reduced variant used when structured
// filters are not being evaluated.
//
// The Searcher type coordinates a full search request: query validation, the
// analytics and history records, ranking (local catalog or remote API), and
// the post-search filter discovery pass. A flag guarantees at most one search
// in flight.
package search
