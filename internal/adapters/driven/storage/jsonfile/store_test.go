package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/core/domain"
)

func sampleSnapshot() domain.DataStore {
	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	return domain.DataStore{
		Documents: []domain.IngestedDocument{{
			ID: "doc-1", Source: domain.SourcePDF, Name: "Budget", Content: "risk",
			Domain: domain.DomainFinance, UploadedAt: at,
		}},
		Insights: []domain.ProcessedInsight{{
			ID: "insight-doc-1-x", DocumentID: "doc-1", Priority: domain.PriorityHigh,
			RelevanceRoles: []domain.Role{domain.RoleCEO, domain.RoleManager},
			Title: "Budget", Summary: "risk", Type: domain.InsightStrategic,
			AlertFlag: true, AlertSeverity: domain.SeverityHigh, Domain: domain.DomainFinance,
		}},
		Alerts: []domain.Alert{{
			ID: "alert-doc-1-x", InsightID: "insight-doc-1-x", Title: "Alert: Budget",
			Message: "risk", Severity: domain.SeverityHigh, CreatedAt: at,
			RelevantRoles: []domain.Role{domain.RoleCEO, domain.RoleManager}, Domain: domain.DomainFinance,
		}},
	}
}

func TestNew_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "mockData.json"), New("").Path())
	assert.Equal(t, filepath.Join("/tmp/x", "mockData.json"), New("/tmp/x").Path())
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := New(t.TempDir())

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
	assert.NotNil(t, snap.Documents)
}

func TestStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store := New(dir)

	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))

	_, err := os.Stat(filepath.Join(dir, DefaultFileName))
	assert.NoError(t, err)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())
	in := sampleSnapshot()

	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStore_PrettyPrintedCamelCase(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	text := string(raw)
	assert.Contains(t, text, "\n  \"documents\": [")
	assert.Contains(t, text, `"documentId": "doc-1"`)
	assert.Contains(t, text, `"relevanceRoles": [`)
	assert.Contains(t, text, `"insightId": "insight-doc-1-x"`)
	assert.Contains(t, text, `"uploadedAt": "2025-02-03T04:05:06Z"`)
}

func TestStore_LoadsFileWrittenByBrowserApp(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "documents": [{"id":"doc-fin-1","source":"pdf","name":"Q4 Budget Report","content":"delay","department":"Finance","domain":"Finance","uploadedAt":"2025-01-15T10:20:30.123Z","isDemoData":true}],
  "insights": [{"domain":"Finance","id":"insight-doc-fin-1-1736936430123","documentId":"doc-fin-1","priority":"High","relevanceRoles":["CEO","Manager"],"title":"Q4 Budget Report","summary":"delay","type":"strategic","alertFlag":true,"alertSeverity":"Medium","isDemoData":true}],
  "alerts": [{"domain":"Finance","id":"alert-doc-fin-1-1736936430123","insightId":"insight-doc-fin-1-1736936430123","title":"Alert: Q4 Budget Report","message":"delay","severity":"Medium","acknowledged":false,"createdAt":"2025-01-15T10:20:30.123Z","relevantRoles":["CEO","Manager"],"isDemoData":true}]
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(content), 0644))

	snap, err := New(dir).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Documents, 1)
	require.Len(t, snap.Insights, 1)
	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, domain.DomainFinance, snap.Documents[0].Domain)
	assert.True(t, snap.Documents[0].IsDemoData)
	assert.Equal(t, 123*time.Millisecond, time.Duration(snap.Documents[0].UploadedAt.Nanosecond()))
	assert.Equal(t, domain.SeverityMedium, snap.Alerts[0].Severity)
	assert.Equal(t, []domain.Role{domain.RoleCEO, domain.RoleManager}, snap.Insights[0].RelevanceRoles)
}

func TestStore_LoadCorruptFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("{not json"), 0644))

	snap, err := New(dir).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
}

func TestStore_LoadNullCollections(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(`{"documents":null}`), 0644))

	snap, err := New(dir).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
	assert.NotNil(t, snap.Alerts)
}

func TestStore_SaveEmptyWritesArrays(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Save(context.Background(), domain.DataStore{}))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.JSONEq(t, `[]`, string(decoded["documents"]))
	assert.JSONEq(t, `[]`, string(decoded["alerts"]))
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))
	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultFileName, entries[0].Name())
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := New(t.TempDir())
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, sampleSnapshot()), context.Canceled)
}
