package domain

import "time"

// Alert is a derived notification requiring explicit acknowledgement.
// Acknowledgement is the only mutation permitted after creation.
type Alert struct {
	// ID is the unique identifier for the alert.
	ID string `json:"id"`

	// InsightID links to the ProcessedInsight that raised the alert.
	InsightID string `json:"insightId"`

	// Title is "Alert: " followed by the document name.
	Title string `json:"title"`

	// Message is the first 200 characters of content.
	Message string `json:"message"`

	// Severity always equals the parent insight's AlertSeverity.
	Severity AlertSeverity `json:"severity"`

	// Acknowledged is set once a user has seen the alert.
	Acknowledged bool `json:"acknowledged"`

	// CreatedAt is when the alert was raised.
	CreatedAt time.Time `json:"createdAt"`

	// RelevantRoles is copied from the parent insight.
	RelevantRoles []Role `json:"relevantRoles"`

	// Domain is copied from the source document by the write path.
	Domain Domain `json:"domain,omitempty"`

	// IsDemoData marks alerts produced by the seed generator.
	IsDemoData bool `json:"isDemoData,omitempty"`
}
