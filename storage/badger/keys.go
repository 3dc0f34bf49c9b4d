package badger

import (
	"fmt"

	"github.com/poiesic/sollex/core"
)

// Key prefixes for different data types
const (
	entryRecordPrefix = "vec"
	entrySeqPrefix    = "vecseq"
)

// makeEntryKey generates a key for an entry within a collection.
// Format: vec:<collection>:<id>
func makeEntryKey(collection string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", entryRecordPrefix, collection, id))
}

// makeCollectionPrefix generates the iteration prefix for a collection.
func makeCollectionPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", entryRecordPrefix, collection))
}

// makeSequenceName generates the per-collection sequence key.
func makeSequenceName(collection string) string {
	return fmt.Sprintf("%s:%s", entrySeqPrefix, collection)
}
