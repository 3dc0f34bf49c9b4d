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


package chunk

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize bounds a chunk to fit comfortably inside an
	// embedding request.
	DefaultChunkSize = 30000

	// DefaultOverlap is carried from the end of each chunk into the next so
	// retrieval does not lose context at chunk boundaries.
	DefaultOverlap = 3000
)

// separators is the split-point preference order: paragraph breaks first,
// then lines, sentence ends, clauses, words, and finally a hard byte cut.
var separators = []string{"\n\n", "\n", ".", "!", "?", ",", " ", ""}

// Splitter cuts cleaned text into overlapping chunks of at most ChunkSize
// bytes. Splitting is pure string work with no I/O, so the same input always
// produces the same chunks.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

// NewSplitter creates a splitter, substituting defaults for out-of-range
// parameters. Overlap is clamped below ChunkSize so every chunk makes
// forward progress.
func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 10
	}
	return &Splitter{ChunkSize: chunkSize, Overlap: overlap}
}

// Split cuts text into chunks of at most ChunkSize bytes. Each chunk after
// the first repeats up to Overlap trailing bytes of its predecessor, trimmed
// forward to a rune boundary, and every byte of the input appears in at
// least one chunk.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(text) {
		if len(text)-start <= s.ChunkSize {
			chunks = append(chunks, text[start:])
			break
		}

		cut := cutPoint(text[start : start+s.ChunkSize])
		chunks = append(chunks, text[start:start+cut])

		next := start + cut - s.Overlap
		if next <= start {
			next = start + cut
		}
		// the rewind is byte arithmetic; step forward off any partial rune
		for next < len(text) && !utf8.RuneStart(text[next]) {
			next++
		}
		start = next
	}
	return chunks
}

// cutPoint returns the length of the prefix of window to emit as a chunk.
// It picks the last occurrence of the highest-preference separator present;
// when none occurs the whole window is cut, backed up to a rune boundary.
func cutPoint(window string) int {
	for _, sep := range separators {
		if sep == "" {
			break
		}
		if i := strings.LastIndex(window, sep); i > 0 {
			return i + len(sep)
		}
	}

	cut := len(window)
	tail := cut - 1
	for tail > 0 && !utf8.RuneStart(window[tail]) {
		tail--
	}
	if r, size := utf8.DecodeRuneInString(window[tail:]); tail > 0 && r == utf8.RuneError && size == 1 {
		// the window ends mid-rune; cut before the partial sequence
		cut = tail
	}
	return cut
}
