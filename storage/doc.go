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


// Package storage provides the vector store abstraction layer for sollex.
//
// This package defines the repository interface that decouples storage
// implementation from the ingestion and retrieval logic, so different
// backends (BadgerDB, in-memory, etc.) can be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the interface, not the
// concrete type:
//
//	repo, err := badger.NewEntryRepository(backend, "corpus")  // returns storage.EntryRepository
//
// This keeps consumers decoupled from BadgerDB specifics and lets tests
// substitute implementations without modification.
//
// # Usage
//
// Open a backend and a collection-scoped repository:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewEntryRepository(backend, "corpus")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Use badger.NewMemoryRepository() in tests for a disposable in-memory
// collection.
package storage
