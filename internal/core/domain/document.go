package domain

import "time"

// IngestedDocument is one submitted unit of content.
// Documents are immutable once ingested and only removed by a full reset.
type IngestedDocument struct {
	// ID is the unique, stable identifier for the document.
	ID string `json:"id"`

	// Source is the kind of file the content came from.
	Source SourceKind `json:"source"`

	// Name is the display name.
	Name string `json:"name"`

	// Content is the raw text content.
	Content string `json:"content"`

	// Department is an optional free-text department label.
	Department string `json:"department,omitempty"`

	// Domain is the resolved organisational domain, if any.
	Domain Domain `json:"domain,omitempty"`

	// UploadedAt is when the document was ingested.
	UploadedAt time.Time `json:"uploadedAt"`

	// IsDemoData marks documents produced by the seed generator.
	IsDemoData bool `json:"isDemoData,omitempty"`
}

// EffectiveDomain returns the domain label used for role relevance:
// the resolved domain, else the department, else empty.
func (d *IngestedDocument) EffectiveDomain() string {
	if d.Domain != "" {
		return string(d.Domain)
	}
	return d.Department
}
