package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// Ensure ViewService implements the interface.
var _ driving.ViewService = (*ViewService)(nil)

// topN is how many insights and alerts the overview shows.
const topN = 5

// ViewService builds read models from dashboard snapshots.
type ViewService struct {
	dashboard driving.DashboardService
	graph     domain.KnowledgeGraph
}

// NewViewService creates a view service reading through dashboard.
func NewViewService(dashboard driving.DashboardService) *ViewService {
	return &ViewService{
		dashboard: dashboard,
		graph:     domain.DefaultKnowledgeGraph(),
	}
}

// Overview summarises the whole organisation.
func (s *ViewService) Overview(ctx context.Context) (*driving.Overview, error) {
	snapshot, err := s.dashboard.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	active := snapshot.ActiveAlerts()
	return &driving.Overview{
		TotalDocuments:    len(snapshot.Documents),
		TotalInsights:     len(snapshot.Insights),
		ActiveAlerts:      len(active),
		DocumentsByDomain: countByDomain(snapshot.Documents),
		TopInsights:       firstN(highFirst(snapshot.Insights), topN),
		TopAlerts:         firstN(active, topN),
	}, nil
}

// DomainDashboard summarises one domain.
func (s *ViewService) DomainDashboard(ctx context.Context, d domain.Domain) (*driving.DomainDashboard, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, d)
	}

	snapshot, err := s.dashboard.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	docs := 0
	for i := range snapshot.Documents {
		if snapshot.Documents[i].Domain == d {
			docs++
		}
	}

	return &driving.DomainDashboard{
		Domain:       d,
		Documents:    docs,
		Insights:     insightsIn(snapshot.Insights, d),
		ActiveAlerts: alertsIn(snapshot.ActiveAlerts(), d),
		CrossDomain:  countByDomain(snapshot.Documents),
	}, nil
}

// Insights lists insights for d, or every insight when d is empty.
func (s *ViewService) Insights(ctx context.Context, d domain.Domain) ([]domain.ProcessedInsight, error) {
	if d != "" && !d.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, d)
	}

	snapshot, err := s.dashboard.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if d == "" {
		return snapshot.Insights, nil
	}
	return insightsIn(snapshot.Insights, d), nil
}

// Alerts lists alerts for d, or every alert when d is empty.
func (s *ViewService) Alerts(ctx context.Context, d domain.Domain) (*driving.AlertList, error) {
	if d != "" && !d.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, d)
	}

	snapshot, err := s.dashboard.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	alerts := snapshot.Alerts
	if d != "" {
		alerts = alertsIn(alerts, d)
	}

	list := &driving.AlertList{Alerts: alerts}
	for i := range alerts {
		if alerts[i].Acknowledged {
			list.Acknowledged++
		} else {
			list.Active++
		}
	}
	return list, nil
}

// Graph returns the knowledge graph.
func (s *ViewService) Graph(_ context.Context) domain.KnowledgeGraph {
	return s.graph
}

// Learning returns onboarding guidance for d.
func (s *ViewService) Learning(_ context.Context, d domain.Domain) []domain.LearningSection {
	return domain.LearningFor(d)
}

// countByDomain counts documents per domain in display order.
// Documents without a domain are not counted.
func countByDomain(docs []domain.IngestedDocument) []driving.DomainCount {
	counts := make(map[domain.Domain]int, len(docs))
	for i := range docs {
		if docs[i].Domain != "" {
			counts[docs[i].Domain]++
		}
	}

	all := domain.AllDomains()
	out := make([]driving.DomainCount, 0, len(all))
	for _, d := range all {
		out = append(out, driving.DomainCount{Domain: d, Documents: counts[d]})
	}
	return out
}

// highFirst moves High priority insights to the front, keeping the
// relative order of both groups. Medium and Low are not reordered.
func highFirst(insights []domain.ProcessedInsight) []domain.ProcessedInsight {
	out := make([]domain.ProcessedInsight, 0, len(insights))
	for i := range insights {
		if insights[i].Priority == domain.PriorityHigh {
			out = append(out, insights[i])
		}
	}
	for i := range insights {
		if insights[i].Priority != domain.PriorityHigh {
			out = append(out, insights[i])
		}
	}
	return out
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func insightsIn(insights []domain.ProcessedInsight, d domain.Domain) []domain.ProcessedInsight {
	out := make([]domain.ProcessedInsight, 0)
	for i := range insights {
		if insights[i].Domain == d {
			out = append(out, insights[i])
		}
	}
	return out
}

func alertsIn(alerts []domain.Alert, d domain.Domain) []domain.Alert {
	out := make([]domain.Alert, 0)
	for i := range alerts {
		if alerts[i].Domain == d {
			out = append(out, alerts[i])
		}
	}
	return out
}
