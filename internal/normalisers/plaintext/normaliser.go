package plaintext

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text, markdown and delimited text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/markdown",
		"text/csv",
		"text/tab-separated-values",
		"application/json",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise converts raw bytes to a document draft.
// Invalid UTF-8 sequences are replaced so the content is always valid text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := string(raw.Content)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "�")
	}
	content = strings.TrimPrefix(content, "\uFEFF")

	doc := domain.IngestedDocument{
		Name:   extractTitleFromMetadataOrURI(raw),
		Source: domain.SourceKindForPath(raw.URI),
	}

	meta, body, ok := splitFrontMatter(content)
	if ok {
		content = body
		if meta.Title != "" {
			doc.Name = meta.Title
		}
		doc.Department = meta.Department
		if d, err := domain.ParseDomain(meta.Domain); err == nil {
			doc.Domain = d
		}
	}
	doc.Content = content

	return &driven.NormaliseResult{Document: doc}, nil
}

// frontMatter is the optional YAML header of a markdown note:
//
//	---
//	title: Vendor review
//	department: Procurement
//	domain: Operations
//	---
type frontMatter struct {
	Title      string `yaml:"title"`
	Department string `yaml:"department"`
	Domain     string `yaml:"domain"`
}

// splitFrontMatter separates a leading YAML block from the body. Content
// without a well-formed block is returned unchanged with ok false.
func splitFrontMatter(content string) (frontMatter, string, bool) {
	var meta frontMatter

	normalised := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalised, "---\n") {
		return meta, content, false
	}
	rest := normalised[len("---\n"):]

	end := strings.Index(rest, "\n---")
	if end < 0 {
		return meta, content, false
	}
	header := rest[:end]
	body := rest[end+len("\n---"):]
	if body != "" && body[0] != '\n' {
		return meta, content, false
	}

	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return frontMatter{}, content, false
	}
	return meta, strings.TrimLeft(body, "\n"), true
}

// extractTitleFromMetadataOrURI checks metadata for a title first, then falls back to the URI.
func extractTitleFromMetadataOrURI(raw *domain.RawDocument) string {
	if raw.Metadata != nil {
		if title, ok := raw.Metadata["title"].(string); ok && title != "" {
			return title
		}
	}
	return extractTitle(raw.URI)
}

// extractTitle extracts a human-readable title from a URI.
func extractTitle(uri string) string {
	filename := filepath.Base(uri)
	if uri == "" || filename == "." || filename == string(filepath.Separator) {
		return ""
	}

	if ext := filepath.Ext(filename); ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}

	// Replace underscores and dashes with spaces
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")

	return strings.TrimSpace(filename)
}
