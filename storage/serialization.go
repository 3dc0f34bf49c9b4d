package storage

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/sollex/core"
)

// MarshalEntry serializes an entry for storage.
func MarshalEntry(entry *core.Entry) ([]byte, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalEntry deserializes an entry from storage.
func UnmarshalEntry(data []byte) (*core.Entry, error) {
	var entry core.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &entry, nil
}
