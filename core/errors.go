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

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidEntry indicates an Entry failed validation.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrEmptyText indicates the chunk text is empty.
	ErrEmptyText = errors.New("chunk text cannot be empty")

	// ErrTextTooLong indicates the chunk text exceeds the configured bound.
	ErrTextTooLong = errors.New("chunk text exceeds maximum length")

	// ErrEmptySource indicates the chunk has no source document identifier.
	ErrEmptySource = errors.New("chunk source cannot be empty")

	// ErrInvalidPage indicates a non-positive page number.
	ErrInvalidPage = errors.New("page number must be positive")

	// ErrEmptyVector indicates an entry has no embedding vector.
	ErrEmptyVector = errors.New("entry vector cannot be empty")
)
