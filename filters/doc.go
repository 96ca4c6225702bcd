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


// Package filters maintains the adaptive filter registry: the evolving set
// of parameters users can filter searches by.
//
// Parameters are not hard-coded. They are discovered from the catalog
// itself: when a company's capability data implies a filterable dimension (a
// welding thickness attribute, a list of materials, a list of
// certifications), the corresponding parameter is created or merged into the
// registry. Discovery is idempotent, so re-ingesting the same catalog never
// duplicates options.
//
// The registry also tracks two usage signals. Popularity counts how often
// each filter's input was changed, and is persisted with the parameters
// themselves. Success scores, supplied by the analytics ledger, order
// parameters via Prioritize so that filters which historically led to
// contact events render first. Neither signal affects relevance scoring.
//
// All state lives under a single logical key in the backing store and is
// persisted on every mutation. Persistence is best-effort: a failed write is
// logged and the in-memory registry remains authoritative for the session.
package filters
