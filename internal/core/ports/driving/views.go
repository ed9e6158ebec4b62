package driving

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// ViewService provides read models for dashboards.
type ViewService interface {
	// Overview summarises the whole organisation.
	Overview(ctx context.Context) (*Overview, error)

	// DomainDashboard summarises one domain.
	DomainDashboard(ctx context.Context, d domain.Domain) (*DomainDashboard, error)

	// Insights lists insights for a domain, or all insights when d is empty.
	Insights(ctx context.Context, d domain.Domain) ([]domain.ProcessedInsight, error)

	// Alerts lists alerts for a domain, or all alerts when d is empty.
	Alerts(ctx context.Context, d domain.Domain) (*AlertList, error)

	// Graph returns the knowledge graph.
	Graph(ctx context.Context) domain.KnowledgeGraph

	// Learning returns onboarding guidance for a domain.
	Learning(ctx context.Context, d domain.Domain) []domain.LearningSection
}

// DomainCount is the number of documents in one domain.
type DomainCount struct {
	Domain    domain.Domain `json:"domain"`
	Documents int           `json:"documents"`
}

// Overview is the organisation-wide summary.
type Overview struct {
	TotalDocuments    int                       `json:"totalDocuments"`
	TotalInsights     int                       `json:"totalInsights"`
	ActiveAlerts      int                       `json:"activeAlerts"`
	DocumentsByDomain []DomainCount             `json:"documentsByDomain"`
	TopInsights       []domain.ProcessedInsight `json:"topInsights"`
	TopAlerts         []domain.Alert            `json:"topAlerts"`
}

// DomainDashboard is the summary for one domain.
type DomainDashboard struct {
	Domain       domain.Domain             `json:"domain"`
	Documents    int                       `json:"documents"`
	Insights     []domain.ProcessedInsight `json:"insights"`
	ActiveAlerts []domain.Alert            `json:"activeAlerts"`

	// CrossDomain holds document counts for every other domain.
	CrossDomain []DomainCount `json:"crossDomain"`
}

// AlertList is a filtered alert listing.
type AlertList struct {
	Alerts       []domain.Alert `json:"alerts"`
	Active       int            `json:"active"`
	Acknowledged int            `json:"acknowledged"`
}
