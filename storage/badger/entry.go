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


package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sollex/core"
	"github.com/poiesic/sollex/storage"
)

// EntryRepository implements storage.EntryRepository on a BadgerDB backend.
// Each repository is scoped to one collection; multiple collections share a
// backend without seeing each other's entries.
type EntryRepository struct {
	backend    *Backend
	collection string
	seq        *badger.Sequence
}

var _ storage.EntryRepository = (*EntryRepository)(nil)

// NewEntryRepository creates a repository for the named collection.
func NewEntryRepository(backend *Backend, collection string) (storage.EntryRepository, error) {
	seq, err := backend.GetSequence(makeSequenceName(collection))
	if err != nil {
		return nil, err
	}
	return &EntryRepository{
		backend:    backend,
		collection: collection,
		seq:        seq,
	}, nil
}

// Close releases the sequence. The shared backend stays open.
func (r *EntryRepository) Close() error {
	return r.seq.Release()
}

// Upsert stores the entries, deriving content-based IDs where unset.
// An entry whose ID already exists is overwritten but keeps its original
// Seq and InsertedAt, so re-ingesting unchanged content does not disturb
// insertion-order tie-breaks.
func (r *EntryRepository) Upsert(ctx context.Context, entries ...*core.Entry) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if entry != nil && entry.Id == 0 {
				entry.Id = entry.Chunk.ContentID()
			}
			if err := core.ValidateEntry(entry); err != nil {
				return err
			}

			key := makeEntryKey(r.collection, entry.Id)
			old, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				entry.Seq = old.Seq
				entry.InsertedAt = old.InsertedAt
			} else {
				seq, err := r.seq.Next()
				if err != nil {
					return err
				}
				entry.Seq = seq
				entry.InsertedAt = time.Now().UTC()
			}

			value, err := storage.MarshalEntry(entry)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// FindNearest scans the collection and returns the k entries with the
// highest cosine similarity to the query vector. Ties are broken by Seq
// ascending so results are stable across runs.
func (r *EntryRepository) FindNearest(ctx context.Context, vector []float32, k int) ([]*core.ScoredEntry, error) {
	if len(vector) == 0 {
		return nil, storage.ErrInvalidQuery
	}
	if k <= 0 {
		return nil, nil
	}

	var results []*core.ScoredEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(r.collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.Entry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry == nil || len(entry.Vector) == 0 {
				continue
			}

			results = append(results, &core.ScoredEntry{
				Entry: entry,
				Score: cosineSimilarity(vector, entry.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.ScoredEntry) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if a.Entry.Seq < b.Entry.Seq {
			return -1
		}
		if a.Entry.Seq > b.Entry.Seq {
			return 1
		}
		return 0
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of entries in the collection.
func (r *EntryRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(r.collection)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// readEntry reads an entry from the transaction.
// Returns (nil, nil) when the key does not exist.
func readEntry(tx *badger.Txn, key []byte) (*core.Entry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.Entry
	err = item.Value(func(val []byte) error {
		var err error
		entry, err = storage.UnmarshalEntry(val)
		return err
	})
	return entry, err
}
