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


package core

import "fmt"

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - Text must not exceed maxLength when maxLength > 0
//   - Source must not be empty
//   - Page must be positive
//
// NOT validated:
//   - Metadata (optional, empty strings are valid)
//   - Index (0 is a valid first chunk)
func ValidateChunk(chunk *Chunk, maxLength int) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}

	if maxLength > 0 && len(chunk.Text) > maxLength {
		return fmt.Errorf("%w: %w (%d > %d)", ErrInvalidChunk, ErrTextTooLong, len(chunk.Text), maxLength)
	}

	if chunk.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptySource)
	}

	if chunk.Page < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrInvalidPage)
	}

	return nil
}

// ValidateEntry validates an Entry according to domain rules.
//
// Validation rules:
//   - Chunk must be valid (unbounded text; the chunker enforces the bound)
//   - Vector must not be empty
func ValidateEntry(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if err := ValidateChunk(&entry.Chunk, 0); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	if len(entry.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyVector)
	}

	return nil
}
