package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/poiesic/sollex/core"
)

// Docx extracts word-processor documents. A docx file is a ZIP archive; the
// text lives in word/document.xml and the metadata in docProps/core.xml.
type Docx struct{}

var _ Extractor = (*Docx)(nil)

// NewDocx creates a docx extractor.
func NewDocx() *Docx {
	return &Docx{}
}

// Extract reads paragraphs and core properties from the docx at path.
// Word-processor documents carry no page boundaries, so the whole body is
// page 1.
func (d *Docx) Extract(ctx context.Context, path string) (*core.SourceDocument, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, filepath.Base(path), err)
	}
	defer reader.Close()

	content, err := readArchiveFile(&reader.Reader, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, filepath.Base(path), err)
	}

	text := parseDocumentXML(content)
	meta := parseCoreProperties(&reader.Reader)

	return &core.SourceDocument{
		Filename: filepath.Base(path),
		Pages:    pagesFromText(text),
		Metadata: meta,
	}, nil
}

// documentXML mirrors the parts of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML joins paragraph runs with newlines between paragraphs.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, t := range r.Text {
				result.WriteString(t.Content)
			}
		}
	}
	return strings.TrimSpace(result.String())
}

// corePropertiesXML mirrors the parts of docProps/core.xml we read.
type corePropertiesXML struct {
	Title   string `xml:"title"`
	Creator string `xml:"creator"`
}

func parseCoreProperties(reader *zip.Reader) core.DocumentMetadata {
	content, err := readArchiveFile(reader, "docProps/core.xml")
	if err != nil {
		return core.DocumentMetadata{}
	}

	var props corePropertiesXML
	if err := xml.Unmarshal(content, &props); err != nil {
		return core.DocumentMetadata{}
	}
	return core.DocumentMetadata{
		Title:  strings.TrimSpace(props.Title),
		Author: strings.TrimSpace(props.Creator),
	}
}

func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}
