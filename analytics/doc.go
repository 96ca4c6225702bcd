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


// Package analytics records local usage events and the derived success
// signal.
//
// The Ledger keeps three event streams. Searches and clicks are capped (100
// and 200 entries) with oldest-first eviction, so the ledger never grows
// without bound no matter how long the tool is used. Contact events
// additionally credit each capability key the contacted company exposes;
// those per-key counters are the success scores that decide which filters
// render first.
//
// History is the user-visible list of recent searches, newest first, capped
// at 50 entries. It is stored under its own key so clearing the history does
// not touch the ledger.
//
// Everything stays in the local store. Nothing is sent anywhere.
package analytics
