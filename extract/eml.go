package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/sollex/core"
)

// EML extracts RFC 822 email messages. Multipart messages contribute their
// text/plain parts; the subject becomes the document title and the sender
// the author.
type EML struct{}

var _ Extractor = (*EML)(nil)

// NewEML creates an email extractor.
func NewEML() *EML {
	return &EML{}
}

// Extract parses the message at path.
func (e *EML) Extract(ctx context.Context, path string) (*core.SourceDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, filepath.Base(path), err)
	}
	return e.extractBytes(content, filepath.Base(path))
}

// extractBytes parses an already-read message. The msg extractor reuses this
// after converting Outlook files to RFC 822.
func (e *EML) extractBytes(content []byte, filename string) (*core.SourceDocument, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, filename, err)
	}

	body, err := messageBody(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, filename, err)
	}

	return &core.SourceDocument{
		Filename: filename,
		Pages:    pagesFromText(body),
		Metadata: core.DocumentMetadata{
			Title:  decodeHeader(msg.Header.Get("Subject")),
			Author: decodeHeader(msg.Header.Get("From")),
		},
	}, nil
}

// decodeHeader decodes RFC 2047 encoded headers.
func decodeHeader(header string) string {
	if header == "" {
		return ""
	}
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(header)
	if err != nil {
		return header
	}
	return decoded
}

// messageBody extracts the text content of an email message, preferring
// text/plain parts of multipart messages.
func messageBody(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Unparseable content type: fall back to reading as plain text.
		body, readErr := io.ReadAll(msg.Body)
		if readErr != nil {
			return "", readErr
		}
		return string(body), nil
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return multipartBody(msg.Body, params["boundary"])
	}

	body, err := io.ReadAll(decodeTransfer(msg.Body, msg.Header.Get("Content-Transfer-Encoding")))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// multipartBody collects the text/plain parts of a multipart message,
// recursing into nested multiparts.
func multipartBody(r io.Reader, boundary string) (string, error) {
	if boundary == "" {
		return "", nil
	}

	mr := multipart.NewReader(r, boundary)
	var parts []string

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		mediaType, params, parseErr := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if parseErr != nil {
			part.Close()
			continue
		}

		switch {
		case mediaType == "text/plain":
			content, readErr := io.ReadAll(decodeTransfer(part, part.Header.Get("Content-Transfer-Encoding")))
			part.Close()
			if readErr != nil {
				continue
			}
			parts = append(parts, string(content))
		case strings.HasPrefix(mediaType, "multipart/"):
			content, readErr := io.ReadAll(part)
			part.Close()
			if readErr != nil {
				continue
			}
			nested, nestedErr := multipartBody(bytes.NewReader(content), params["boundary"])
			if nestedErr == nil && nested != "" {
				parts = append(parts, nested)
			}
		default:
			part.Close()
		}
	}

	return strings.Join(parts, "\n"), nil
}

// decodeTransfer wraps r with a decoder for the given transfer encoding.
func decodeTransfer(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	default:
		return r
	}
}
