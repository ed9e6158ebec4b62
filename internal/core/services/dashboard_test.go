package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/core/domain"
)

func TestDashboardService_Snapshot_SeedsEmptyStore(t *testing.T) {
	svc, store := newTestDashboard(t)

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, snapshot.Documents, 18)
	assert.Len(t, snapshot.Insights, 18)
	assert.Len(t, snapshot.Alerts, 17)
	assert.Equal(t, 1, store.SaveCount())

	for _, doc := range snapshot.Documents {
		assert.True(t, doc.IsDemoData)
		assert.Equal(t, fixedTime, doc.UploadedAt)
	}

	// A populated store is returned as is.
	again, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshot, again)
	assert.Equal(t, 1, store.SaveCount())
}

func TestDashboardService_Snapshot_LoadError(t *testing.T) {
	svc := NewDashboardService(&failingStore{loadErr: errLoad}, nil, nil)

	_, err := svc.Snapshot(context.Background())
	assert.ErrorIs(t, err, errLoad)
}

func TestDashboardService_Snapshot_SeedSaveError(t *testing.T) {
	svc := NewDashboardService(&failingStore{saveErr: errSave}, nil, nil)

	_, err := svc.Snapshot(context.Background())
	assert.ErrorIs(t, err, errSave)
}

func TestDashboardService_Ingest(t *testing.T) {
	svc, store := newTestDashboard(t)
	ctx := context.Background()

	result, err := svc.Ingest(ctx, []domain.IngestedDocument{
		{
			Source:  domain.SourceEmail,
			Name:    "Budget Escalation",
			Content: "Budget approval is pending and the vendor payment is at risk.",
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	doc := result.Documents[0]
	assert.Equal(t, "doc-test-1", doc.ID)
	assert.Equal(t, fixedTime, doc.UploadedAt)
	assert.Equal(t, domain.DomainFinance, doc.Domain)
	assert.False(t, doc.IsDemoData)

	require.Len(t, result.Insights, 1)
	insight := result.Insights[0]
	assert.Equal(t, doc.ID, insight.DocumentID)
	assert.Equal(t, domain.PriorityHigh, insight.Priority)
	assert.Equal(t, domain.DomainFinance, insight.Domain)
	assert.Equal(t, []domain.Role{domain.RoleCEO, domain.RoleManager}, insight.RelevanceRoles)

	require.Len(t, result.Alerts, 1)
	assert.Equal(t, insight.ID, result.Alerts[0].InsightID)
	assert.Equal(t, domain.DomainFinance, result.Alerts[0].Domain)
	assert.Empty(t, result.Skipped)

	// Seed save plus ingest save.
	assert.Equal(t, 2, store.SaveCount())

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Documents, 19)
	assert.Len(t, snapshot.Insights, 19)
	assert.Len(t, snapshot.Alerts, 18)
	assert.Equal(t, doc.ID, snapshot.Documents[18].ID)

	orphanInsights, orphanAlerts := snapshot.CheckIntegrity()
	assert.Empty(t, orphanInsights)
	assert.Empty(t, orphanAlerts)
}

func TestDashboardService_Ingest_KeepsClientFields(t *testing.T) {
	svc, _ := newTestDashboard(t)
	uploaded := fixedTime.Add(-48 * time.Hour)

	result, err := svc.Ingest(context.Background(), []domain.IngestedDocument{
		{
			ID:         "doc-client-7",
			Source:     domain.SourcePDF,
			Name:       "Contract Renewal",
			Content:    "Renewal terms attached.",
			Domain:     "legal",
			UploadedAt: uploaded,
		},
	})
	require.NoError(t, err)

	doc := result.Documents[0]
	assert.Equal(t, "doc-client-7", doc.ID)
	assert.Equal(t, uploaded, doc.UploadedAt)
	assert.Equal(t, domain.DomainLegal, doc.Domain, "domain names are case-insensitive")
}

func TestDashboardService_Ingest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		docs    []domain.IngestedDocument
		wantErr error
	}{
		{"empty batch", nil, domain.ErrNoDocuments},
		{"unknown domain", []domain.IngestedDocument{{Name: "n", Content: "c", Domain: "Marketing"}}, domain.ErrUnknownDomain},
		{"unknown source", []domain.IngestedDocument{{Name: "n", Content: "c", Source: "fax"}}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestDashboard(t)

			result, err := svc.Ingest(context.Background(), tt.docs)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
			assert.Zero(t, store.SaveCount(), "a rejected batch writes nothing")
		})
	}
}

func TestDashboardService_Ingest_DefaultsSource(t *testing.T) {
	svc, _ := newTestDashboard(t)

	result, err := svc.Ingest(context.Background(), []domain.IngestedDocument{{Name: "n", Content: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceOther, result.Documents[0].Source)
}

func TestDashboardService_Ingest_SkipsMalformedButKeepsDocument(t *testing.T) {
	svc, _ := newTestDashboard(t)
	ctx := context.Background()

	result, err := svc.Ingest(ctx, []domain.IngestedDocument{
		{Name: "Empty", Content: ""},
		{Name: "Hiring Plan", Content: "Important hiring plan for the quarter.", Domain: domain.DomainHR},
	})
	require.NoError(t, err)

	assert.Len(t, result.Documents, 2)
	assert.Len(t, result.Insights, 1)
	assert.Equal(t, []string{"doc-test-1"}, result.Skipped)
	assert.Equal(t, "doc-test-2", result.Insights[0].DocumentID)
	assert.Equal(t, domain.PriorityMedium, result.Insights[0].Priority)
	assert.Empty(t, result.Alerts)

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Documents, 20)
	assert.Len(t, snapshot.Insights, 19)
}

func TestDashboardService_Ingest_WhitespaceContentGetsInsight(t *testing.T) {
	svc, _ := newTestDashboard(t)

	result, err := svc.Ingest(context.Background(), []domain.IngestedDocument{{Name: "Blank", Content: "   "}})
	require.NoError(t, err)

	require.Len(t, result.Insights, 1)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, result.Documents[0].ID, result.Insights[0].DocumentID)
}

func TestDashboardService_Ingest_NoDomainDetected(t *testing.T) {
	svc, _ := newTestDashboard(t)

	result, err := svc.Ingest(context.Background(), []domain.IngestedDocument{{Name: "Note", Content: "Lunch on Friday."}})
	require.NoError(t, err)
	assert.Empty(t, result.Documents[0].Domain)
	assert.Empty(t, result.Insights[0].Domain)
}

func TestDashboardService_Ingest_SaveError(t *testing.T) {
	store := &failingStore{snapshot: seeded(t)}
	svc := NewDashboardService(store, nil, nil)
	store.saveErr = errSave

	_, err := svc.Ingest(context.Background(), []domain.IngestedDocument{{Name: "n", Content: "c"}})
	assert.ErrorIs(t, err, errSave)
	assert.Len(t, store.snapshot.Documents, 18)
}

func TestDashboardService_Ingest_Concurrent(t *testing.T) {
	svc, _ := newTestDashboard(t)
	ctx := context.Background()

	_, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Ingest(ctx, []domain.IngestedDocument{{Name: "n", Content: "incident report"}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Documents, 18+writers, "no update is lost")
}

func TestDashboardService_Acknowledge(t *testing.T) {
	svc, store := newTestDashboard(t)
	ctx := context.Background()

	before, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	target := before.Alerts[3]
	require.False(t, target.Acknowledged)

	ok, err := svc.Acknowledge(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, store.SaveCount())

	after, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	// Only the one flag changes.
	expected := before.Clone()
	expected.Alerts[3].Acknowledged = true
	wantJSON, err := json.Marshal(expected)
	require.NoError(t, err)
	gotJSON, err := json.Marshal(after)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))

	// Acknowledging twice is harmless.
	ok, err = svc.Acknowledge(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDashboardService_Acknowledge_UnknownID(t *testing.T) {
	svc, store := newTestDashboard(t)
	ctx := context.Background()

	_, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	ok, err := svc.Acknowledge(ctx, "alert-does-not-exist")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, store.SaveCount(), "unknown id does not write")
}

func TestDashboardService_Acknowledge_EmptyID(t *testing.T) {
	svc, _ := newTestDashboard(t)

	_, err := svc.Acknowledge(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDashboardService_Reset(t *testing.T) {
	svc, _ := newTestDashboard(t)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, []domain.IngestedDocument{{Name: "n", Content: "c"}})
	require.NoError(t, err)

	snapshot, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Documents, 18)
	assert.Len(t, snapshot.Alerts, 17)

	for _, a := range snapshot.Alerts {
		assert.False(t, a.Acknowledged)
	}

	stored, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, stored.Documents, 18)
}

func TestAssignDomains(t *testing.T) {
	docs := []domain.IngestedDocument{
		{ID: "d1", Domain: domain.DomainIT},
		{ID: "d2"},
	}
	insights := []domain.ProcessedInsight{
		{ID: "i1", DocumentID: "d1"},
		{ID: "i2", DocumentID: "d2"},
	}
	alerts := []domain.Alert{
		{ID: "a1", InsightID: "i1"},
	}

	assignDomains(docs, insights, alerts)

	assert.Equal(t, domain.DomainIT, insights[0].Domain)
	assert.Empty(t, insights[1].Domain)
	assert.Equal(t, domain.DomainIT, alerts[0].Domain)
}
