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
	"regexp"
	"strings"

	"github.com/poiesic/sollex/core"
)

var (
	hyphenBreak = regexp.MustCompile(`(\w)-\n(\w)`)
	newlineRuns = regexp.MustCompile(`\n+`)
	blankRuns   = regexp.MustCompile(`\n{2,}`)
)

// MergeHyphenatedWords rejoins words that a line break split across a
// hyphen, e.g. "land-\nlord" becomes "landlord".
func MergeHyphenatedWords(text string) string {
	return hyphenBreak.ReplaceAllString(text, "$1$2")
}

// FixNewlines replaces single newlines with spaces so wrapped lines flow
// into one sentence. Blank-line runs (paragraph breaks) are left intact.
func FixNewlines(text string) string {
	return newlineRuns.ReplaceAllStringFunc(text, func(run string) string {
		if len(run) == 1 {
			return " "
		}
		return run
	})
}

// CollapseBlankLines reduces every run of blank lines to a single newline,
// keeping one paragraph boundary per run.
func CollapseBlankLines(text string) string {
	return blankRuns.ReplaceAllString(text, "\n")
}

// Clean normalizes extracted text. The three passes run in a fixed order:
// de-hyphenation must see the original line breaks, and blank-line
// collapsing must run after single newlines became spaces.
func Clean(text string) string {
	text = MergeHyphenatedWords(text)
	text = FixNewlines(text)
	text = CollapseBlankLines(text)
	return text
}

// CleanPages returns the pages with normalized text. Pages that clean down
// to whitespace are dropped; page numbers are preserved.
func CleanPages(pages []core.Page) []core.Page {
	cleaned := make([]core.Page, 0, len(pages))
	for _, page := range pages {
		text := Clean(page.Text)
		if strings.TrimSpace(text) == "" {
			continue
		}
		cleaned = append(cleaned, core.Page{Number: page.Number, Text: text})
	}
	return cleaned
}
