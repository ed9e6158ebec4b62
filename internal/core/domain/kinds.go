package domain

// Role is an organisational level used for relevance tagging only.
// Roles never grant or restrict access.
type Role string

// Organisational roles.
const (
	RoleCEO      Role = "CEO"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// Priority is the urgency assigned to an insight.
type Priority string

// Insight priorities.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank orders priorities for sorting, High first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// AlertSeverity grades an alert.
type AlertSeverity string

// Alert severities.
const (
	SeverityHigh   AlertSeverity = "High"
	SeverityMedium AlertSeverity = "Medium"
	SeverityInfo   AlertSeverity = "Info"
)

// SourceKind identifies where a document came from.
type SourceKind string

// Document source kinds.
const (
	SourcePDF         SourceKind = "pdf"
	SourceEmail       SourceKind = "email"
	SourceSpreadsheet SourceKind = "spreadsheet"
	SourceOther       SourceKind = "other"
)

// IsValid returns true if the source kind is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourcePDF, SourceEmail, SourceSpreadsheet, SourceOther:
		return true
	default:
		return false
	}
}

// InsightType categorises an insight.
type InsightType string

// Insight types produced by the classifier.
const (
	InsightStrategic InsightType = "strategic"
	InsightAction    InsightType = "action"
	InsightTask      InsightType = "task"
	InsightUpdate    InsightType = "update"
)

// Insight types accepted from stored data but never produced by the classifier.
const (
	InsightRisk       InsightType = "risk"
	InsightApproval   InsightType = "approval"
	InsightDependency InsightType = "dependency"
)

// IsValid returns true if the insight type is recognised,
// including the types only found in stored data.
func (t InsightType) IsValid() bool {
	switch t {
	case InsightStrategic, InsightAction, InsightTask, InsightUpdate,
		InsightRisk, InsightApproval, InsightDependency:
		return true
	default:
		return false
	}
}

// IsClassifierOutput returns true for the four types the classifier emits.
func (t InsightType) IsClassifierOutput() bool {
	switch t {
	case InsightStrategic, InsightAction, InsightTask, InsightUpdate:
		return true
	default:
		return false
	}
}
