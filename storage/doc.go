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


// Package storage provides the storage abstraction layer for prodir.
//
// The directory persists all of its evolving state (cached catalog, filter
// registry, analytics ledger, search history, user preferences) as JSON
// documents in an opaque key-value store. This package defines the KeyValue
// interface that decouples that store from business logic, the logical key
// names, and JSON serialization helpers.
//
// # Constructor Return Type Pattern
//
// This package follows a "return interface" pattern for public constructors to
// enforce abstraction and enable multiple storage backend implementations:
//
//	store, err := badger.NewStore(path)  // returns storage.KeyValue interface
//
// # Usage
//
// Create a store instance:
//
//	store, err := badger.NewStore("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// Use in tests with in-memory storage:
//
//	store, err := badger.NewMemoryStore()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// # Failure Discipline
//
// Absence of a key is never an error: consumers fall back to an empty or
// default value. Write failures are surfaced to callers but treated as
// best-effort by the services above this layer; in-memory state remains
// authoritative for the session.
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access from
// multiple goroutines. Update runs its read-modify-write inside one
// transaction so concurrent mutations of the same key cannot interleave.
package storage
