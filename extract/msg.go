package extract

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/poiesic/sollex/core"
)

// MSG extracts Outlook .msg files by converting them to RFC 822 with
// msgconvert and handing the result to the EML extractor. When the tool is
// missing or the file is corrupt, the error stays local to the file: the
// ingestion batch logs a skip and moves on.
type MSG struct {
	runner CommandRunner
	eml    *EML
}

var _ Extractor = (*MSG)(nil)

// NewMSG creates an Outlook message extractor.
func NewMSG(runner CommandRunner, eml *EML) *MSG {
	return &MSG{runner: runner, eml: eml}
}

// Extract converts and parses the message at path.
func (m *MSG) Extract(ctx context.Context, path string) (*core.SourceDocument, error) {
	out, err := m.runner.Run(ctx, "msgconvert", "--outfile", "-", path)
	if err != nil {
		return nil, fmt.Errorf("%w: msgconvert on %s: %w", ErrToolFailed, filepath.Base(path), err)
	}

	doc, err := m.eml.extractBytes(out, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return doc, nil
}
