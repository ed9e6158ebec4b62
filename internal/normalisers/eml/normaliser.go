package eml

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
	"path/filepath"
	"strings"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/logger"
	"github.com/custodia-labs/compass/internal/normalisers/html"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// departmentHeader carries an optional department label set by the sender's mail gateway.
const departmentHeader = "X-Department"

// Normaliser handles EML (email) documents.
type Normaliser struct{}

// New creates a new EML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"message/rfc822",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// Normalise converts an EML message to a document draft.
// The subject becomes the name and the first line of the content, so
// keywords in the subject take part in classification.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	subject := decodeHeader(msg.Header.Get("Subject"))

	body, err := extractBody(msg)
	if err != nil {
		return nil, err
	}

	var content strings.Builder
	if subject != "" {
		content.WriteString(subject)
		content.WriteString("\n\n")
	}
	content.WriteString(body)

	title := subject
	if title == "" {
		title = extractTitleFromURI(raw.URI)
	}

	return &driven.NormaliseResult{
		Document: domain.IngestedDocument{
			Name:       title,
			Content:    strings.TrimSpace(content.String()),
			Source:     domain.SourceEmail,
			Department: strings.TrimSpace(decodeHeader(msg.Header.Get(departmentHeader))),
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
		return header // Return original if decoding fails
	}
	return decoded
}

// extractBody returns the readable text of msg. Plain text parts win over
// HTML parts; attachments are skipped.
func extractBody(msg *mail.Message) (string, error) {
	var parts bodyParts
	if err := parts.collect(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), msg.Body); err != nil {
		return "", err
	}
	return parts.text(), nil
}

// bodyParts accumulates the text found while walking a MIME tree.
type bodyParts struct {
	plain []string
	html  []string
}

func (b *bodyParts) text() string {
	if len(b.plain) > 0 {
		return strings.Join(b.plain, "\n")
	}
	return strings.Join(b.html, "\n")
}

// collect reads one entity. An unparseable Content-Type is read as plain
// text, as mail clients do.
func (b *bodyParts) collect(contentType, encoding string, r io.Reader) error {
	if contentType == "" {
		contentType = "text/plain"
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return b.collectMultipart(r, params["boundary"])
	}

	data, err := io.ReadAll(decodeTransfer(r, encoding))
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", domain.ErrInvalidInput, err)
	}

	switch mediaType {
	case "text/html":
		b.html = append(b.html, html.StripTags(string(data)))
	case "text/plain":
		b.plain = append(b.plain, string(data))
	}
	return nil
}

// collectMultipart walks the parts under boundary. A broken part ends the
// walk without failing the message.
func (b *bodyParts) collectMultipart(r io.Reader, boundary string) error {
	if boundary == "" {
		return nil
	}

	mr := multipart.NewReader(r, boundary)
	for {
		part, err := mr.NextPart()
		if err != nil {
			return nil
		}

		if disposition, _, _ := mime.ParseMediaType(part.Header.Get("Content-Disposition")); disposition == "attachment" {
			part.Close() //nolint:errcheck,gosec
			continue
		}

		// multipart.Reader already undoes quoted-printable.
		encoding := part.Header.Get("Content-Transfer-Encoding")
		if strings.EqualFold(encoding, "quoted-printable") {
			encoding = ""
		}
		err = b.collect(part.Header.Get("Content-Type"), encoding, part)
		part.Close() //nolint:errcheck,gosec
		if err != nil {
			logger.Debug("Skipping unreadable email part: %v", err)
		}
	}
}

// decodeTransfer wraps r with a decoder for the Content-Transfer-Encoding.
func decodeTransfer(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, newlineStripper{r})
	default:
		return r
	}
}

// newlineStripper drops CR and LF so base64 line wrapping does not break decoding.
type newlineStripper struct {
	r io.Reader
}

func (s newlineStripper) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	out := p[:0]
	for _, b := range p[:n] {
		if b != '\r' && b != '\n' {
			out = append(out, b)
		}
	}
	return len(out), err
}

// extractTitleFromURI extracts a title from the file URI.
func extractTitleFromURI(uri string) string {
	if uri == "" {
		return ""
	}
	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
