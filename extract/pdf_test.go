package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner is a test double for CommandRunner. Outputs are keyed by
// command name so one runner can serve pdftotext and pdfinfo.
type mockRunner struct {
	outputs map[string][]byte
	errs    map[string]error
	calls   []string
}

func (m *mockRunner) Run(_ context.Context, name string, _ ...string) ([]byte, error) {
	m.calls = append(m.calls, name)
	if err := m.errs[name]; err != nil {
		return nil, err
	}
	return m.outputs[name], nil
}

func TestPDF_Extract(t *testing.T) {
	runner := &mockRunner{
		outputs: map[string][]byte{
			"pdftotext": []byte("First page text.\fSecond page text.\f   \f"),
			"pdfinfo":   []byte("Title:          Utah Landlord Guide\nAuthor:         A. Chang\nPages:          3\n"),
		},
	}

	doc, err := NewPDF(runner).Extract(context.Background(), "/corpus/guide.pdf")
	require.NoError(t, err)

	assert.Equal(t, "guide.pdf", doc.Filename)
	require.Len(t, doc.Pages, 2, "whitespace-only pages are dropped")
	assert.Equal(t, 1, doc.Pages[0].Number)
	assert.Equal(t, "First page text.", doc.Pages[0].Text)
	assert.Equal(t, 2, doc.Pages[1].Number)
	assert.Equal(t, "Utah Landlord Guide", doc.Metadata.Title)
	assert.Equal(t, "A. Chang", doc.Metadata.Author)
}

func TestPDF_Extract_ToolFailure(t *testing.T) {
	runner := &mockRunner{
		errs: map[string]error{"pdftotext": errors.New("exit status 1")},
	}

	doc, err := NewPDF(runner).Extract(context.Background(), "/corpus/broken.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolFailed)
	assert.Nil(t, doc)
}

func TestPDF_Extract_MetadataFailureIsNotFatal(t *testing.T) {
	runner := &mockRunner{
		outputs: map[string][]byte{"pdftotext": []byte("Body text.")},
		errs:    map[string]error{"pdfinfo": errors.New("exit status 1")},
	}

	doc, err := NewPDF(runner).Extract(context.Background(), "/corpus/no-meta.pdf")
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Empty(t, doc.Metadata.Title)
	assert.Empty(t, doc.Metadata.Author)
}

func TestParsePDFInfo(t *testing.T) {
	tests := []struct {
		name       string
		out        string
		wantTitle  string
		wantAuthor string
	}{
		{
			name:       "both fields",
			out:        "Title:  Asset Protection Trusts\nAuthor: Alexander Chang\n",
			wantTitle:  "Asset Protection Trusts",
			wantAuthor: "Alexander Chang",
		},
		{
			name: "missing fields",
			out:  "Pages: 12\nEncrypted: no\n",
		},
		{
			name:      "value containing colon",
			out:       "Title: Bankruptcy: Chapter 7 vs 13\n",
			wantTitle: "Bankruptcy: Chapter 7 vs 13",
		},
		{
			name: "empty output",
			out:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := parsePDFInfo(tt.out)
			assert.Equal(t, tt.wantTitle, meta.Title)
			assert.Equal(t, tt.wantAuthor, meta.Author)
		})
	}
}
