package mcp

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// mockDashboardService is a mock implementation of driving.DashboardService.
type mockDashboardService struct {
	snapshot     domain.DataStore
	result       *driving.IngestResult
	acknowledged bool
	err          error

	ingested []domain.IngestedDocument
	ackID    string
}

func (m *mockDashboardService) Snapshot(_ context.Context) (domain.DataStore, error) {
	return m.snapshot, m.err
}

func (m *mockDashboardService) Ingest(_ context.Context, docs []domain.IngestedDocument) (*driving.IngestResult, error) {
	m.ingested = docs
	return m.result, m.err
}

func (m *mockDashboardService) Acknowledge(_ context.Context, alertID string) (bool, error) {
	m.ackID = alertID
	return m.acknowledged, m.err
}

func (m *mockDashboardService) Reset(_ context.Context) (domain.DataStore, error) {
	return m.snapshot, m.err
}

// mockViewService is a mock implementation of driving.ViewService.
type mockViewService struct {
	overview  *driving.Overview
	dashboard *driving.DomainDashboard
	insights  []domain.ProcessedInsight
	alerts    *driving.AlertList
	err       error

	requested domain.Domain
}

func (m *mockViewService) Overview(_ context.Context) (*driving.Overview, error) {
	return m.overview, m.err
}

func (m *mockViewService) DomainDashboard(_ context.Context, d domain.Domain) (*driving.DomainDashboard, error) {
	m.requested = d
	return m.dashboard, m.err
}

func (m *mockViewService) Insights(_ context.Context, d domain.Domain) ([]domain.ProcessedInsight, error) {
	m.requested = d
	return m.insights, m.err
}

func (m *mockViewService) Alerts(_ context.Context, d domain.Domain) (*driving.AlertList, error) {
	m.requested = d
	return m.alerts, m.err
}

func (m *mockViewService) Graph(_ context.Context) domain.KnowledgeGraph {
	return domain.DefaultKnowledgeGraph()
}

func (m *mockViewService) Learning(_ context.Context, d domain.Domain) []domain.LearningSection {
	return domain.LearningFor(d)
}

func newTestServer(dashboard *mockDashboardService, views *mockViewService) (*Server, error) {
	if dashboard == nil {
		dashboard = &mockDashboardService{}
	}
	if views == nil {
		views = &mockViewService{}
	}
	return NewServer(&Ports{Dashboard: dashboard, Views: views})
}
