package domain

// ProcessedInsight is the classifier's verdict on one document.
type ProcessedInsight struct {
	// ID is derived from the source document ID and the generation time.
	ID string `json:"id"`

	// DocumentID links to the IngestedDocument this insight describes.
	DocumentID string `json:"documentId"`

	// Priority is the urgency tier.
	Priority Priority `json:"priority"`

	// RelevanceRoles lists the roles the insight is relevant to.
	RelevanceRoles []Role `json:"relevanceRoles"`

	// Title is copied from the document name.
	Title string `json:"title"`

	// Summary is the first 150 characters of content.
	Summary string `json:"summary"`

	// AlertFlag is true when an alert was also raised.
	AlertFlag bool `json:"alertFlag,omitempty"`

	// AlertSeverity mirrors the raised alert's severity.
	AlertSeverity AlertSeverity `json:"alertSeverity,omitempty"`

	// Type categorises the insight.
	Type InsightType `json:"type"`

	// Domain is copied from the source document by the write path.
	Domain Domain `json:"domain,omitempty"`

	// IsDemoData marks insights produced by the seed generator.
	IsDemoData bool `json:"isDemoData,omitempty"`
}

// HasRole reports whether the insight is relevant to the role.
func (i *ProcessedInsight) HasRole(role Role) bool {
	for _, r := range i.RelevanceRoles {
		if r == role {
			return true
		}
	}
	return false
}
