package domain

import (
	"path/filepath"
	"strings"
)

// RawDocument represents opaque bytes picked up from a file or request
// before normalisation into an IngestedDocument.
type RawDocument struct {
	// URI is the original location (file path, URL, etc).
	URI string

	// MIMEType is the content type (e.g., "message/rfc822").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains origin-specific key-value pairs.
	Metadata map[string]any
}

// ChangeType represents the type of file change.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed file.
	ChangeDeleted
)

// String returns the string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// RawDocumentChange represents a change event from the inbox watcher.
type RawDocumentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Document is the affected file.
	Document RawDocument
}

// mimeTypes maps lowercase file extensions to MIME types.
var mimeTypes = map[string]string{
	".txt":      "text/plain",
	".text":     "text/plain",
	".log":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".csv":      "text/csv",
	".tsv":      "text/tab-separated-values",
	".json":     "application/json",
	".eml":      "message/rfc822",
	".html":     "text/html",
	".htm":      "text/html",
	".pdf":      "application/pdf",
	".xlsx":     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// DetectMIMEType returns the MIME type for a file path by extension.
// Unknown extensions return application/octet-stream.
func DetectMIMEType(path string) string {
	if mt, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	return "application/octet-stream"
}

// SourceKindForPath derives the document source kind from a file extension.
func SourceKindForPath(path string) SourceKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return SourcePDF
	case ".eml":
		return SourceEmail
	case ".csv", ".tsv", ".xlsx", ".xls":
		return SourceSpreadsheet
	default:
		return SourceOther
	}
}
