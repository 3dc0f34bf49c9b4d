package retrieval

import "errors"

var (
	// ErrEmptyQuestion indicates a blank or whitespace-only question.
	ErrEmptyQuestion = errors.New("question is empty")
)
