package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/poiesic/sollex/ai"
)

// classify maps raw client errors onto the ai error taxonomy so callers can
// distinguish quota exhaustion from transient failures. Context errors pass
// through unchanged so errors.Is(err, context.DeadlineExceeded) keeps working.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if ai.IsQuotaError(err) {
		return fmt.Errorf("%w: %w", ai.ErrRateLimited, err)
	}
	msg := strings.ToLower(err.Error())
	// googleapi renders status codes as "Error 400:"; a bare "400" would also
	// match unrelated digits like byte counts.
	if strings.Contains(msg, "invalid") || strings.Contains(msg, "error 400") {
		return fmt.Errorf("%w: %w", ai.ErrInvalidInput, err)
	}
	return fmt.Errorf("%w: %w", ai.ErrUnavailable, err)
}
