package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
	"github.com/custodia-labs/compass/internal/normalisers"
)

func newTestIntake(t *testing.T) (*IntakeService, *DashboardService) {
	t.Helper()
	dashboard, _ := newTestDashboard(t)
	return NewIntakeService(normalisers.Default(), dashboard), dashboard
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntakeService_IngestFile_PlainText(t *testing.T) {
	intake, _ := newTestIntake(t)
	path := writeFile(t, t.TempDir(), "vendor_contract.txt", "The vendor contract renewal needs legal approval.")

	result, err := intake.IngestFile(context.Background(), path, driving.IntakeOptions{})
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	doc := result.Documents[0]
	assert.Equal(t, "vendor contract", doc.Name)
	assert.Equal(t, domain.SourceOther, doc.Source)
	assert.Equal(t, domain.DomainLegal, doc.Domain)
	require.Len(t, result.Insights, 1)
	assert.Equal(t, domain.PriorityHigh, result.Insights[0].Priority)
	assert.Len(t, result.Alerts, 1)
}

func TestIntakeService_IngestFile_Email(t *testing.T) {
	intake, _ := newTestIntake(t)
	path := writeFile(t, t.TempDir(), "msg.eml", "Subject: Attrition update\nX-Department: HR\nContent-Type: text/plain\n\nAttrition is stable.\n")

	result, err := intake.IngestFile(context.Background(), path, driving.IntakeOptions{})
	require.NoError(t, err)

	doc := result.Documents[0]
	assert.Equal(t, "Attrition update", doc.Name)
	assert.Equal(t, domain.SourceEmail, doc.Source)
	assert.Equal(t, "HR", doc.Department)
	assert.Equal(t, domain.DomainHR, doc.Domain)
}

func TestIntakeService_IngestFile_Spreadsheet(t *testing.T) {
	intake, _ := newTestIntake(t)
	path := writeFile(t, t.TempDir(), "pipeline.csv", "deal,stage\nAcme,closing\n")

	result, err := intake.IngestFile(context.Background(), path, driving.IntakeOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceSpreadsheet, result.Documents[0].Source)
	assert.Equal(t, domain.DomainSales, result.Documents[0].Domain)
}

func TestIntakeService_IngestFile_OptionsOverride(t *testing.T) {
	intake, _ := newTestIntake(t)
	path := writeFile(t, t.TempDir(), "notes.md", "Budget notes.")

	result, err := intake.IngestFile(context.Background(), path, driving.IntakeOptions{
		Department: "Platform",
		Domain:     domain.DomainIT,
	})
	require.NoError(t, err)

	doc := result.Documents[0]
	assert.Equal(t, "Platform", doc.Department)
	assert.Equal(t, domain.DomainIT, doc.Domain)
	assert.Equal(t, domain.DomainIT, result.Insights[0].Domain)
}

func TestIntakeService_IngestFile_Errors(t *testing.T) {
	intake, dashboard := newTestIntake(t)
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := intake.IngestFile(ctx, filepath.Join(dir, "missing.txt"), driving.IntakeOptions{})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := intake.IngestFile(ctx, dir, driving.IntakeOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unsupported type", func(t *testing.T) {
		path := writeFile(t, dir, "report.pdf", "%PDF-1.4")
		_, err := intake.IngestFile(ctx, path, driving.IntakeOptions{})
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("too large", func(t *testing.T) {
		path := filepath.Join(dir, "huge.txt")
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, f.Truncate(maxFileSize+1))
		require.NoError(t, f.Close())

		_, err = intake.IngestFile(ctx, path, driving.IntakeOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown domain option", func(t *testing.T) {
		path := writeFile(t, dir, "ok.txt", "hello")
		_, err := intake.IngestFile(ctx, path, driving.IntakeOptions{Domain: "Marketing"})
		assert.ErrorIs(t, err, domain.ErrUnknownDomain)
	})

	snapshot, err := dashboard.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Documents, 18, "failed intakes add nothing")
}

func TestIntakeService_IngestRaw(t *testing.T) {
	intake, _ := newTestIntake(t)
	ctx := context.Background()

	t.Run("nil", func(t *testing.T) {
		_, err := intake.IngestRaw(ctx, nil, driving.IntakeOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("detects MIME type from URI", func(t *testing.T) {
		result, err := intake.IngestRaw(ctx, &domain.RawDocument{
			URI:     "/upload/release-notes.html",
			Content: []byte("<title>Release</title><p>Deployment finished.</p>"),
		}, driving.IntakeOptions{})
		require.NoError(t, err)
		assert.Equal(t, "Release", result.Documents[0].Name)
		assert.Equal(t, "Deployment finished.", result.Documents[0].Content)
	})

	t.Run("empty content is kept but skipped", func(t *testing.T) {
		result, err := intake.IngestRaw(ctx, &domain.RawDocument{
			URI:      "/upload/empty.txt",
			MIMEType: "text/plain",
		}, driving.IntakeOptions{})
		require.NoError(t, err)
		assert.Len(t, result.Documents, 1)
		assert.Empty(t, result.Insights)
		assert.Len(t, result.Skipped, 1)
	})
}

func TestIntakeService_Consume(t *testing.T) {
	intake, dashboard := newTestIntake(t)
	ctx := context.Background()

	changes := make(chan domain.RawDocumentChange, 4)
	changes <- domain.RawDocumentChange{
		Type:     domain.ChangeCreated,
		Document: domain.RawDocument{URI: "/inbox/a.txt", MIMEType: "text/plain", Content: []byte("Hiring plan approved.")},
	}
	changes <- domain.RawDocumentChange{
		Type:     domain.ChangeDeleted,
		Document: domain.RawDocument{URI: "/inbox/old.txt"},
	}
	changes <- domain.RawDocumentChange{
		Type:     domain.ChangeCreated,
		Document: domain.RawDocument{URI: "/inbox/scan.pdf", MIMEType: "application/pdf", Content: []byte("%PDF")},
	}
	changes <- domain.RawDocumentChange{
		Type:     domain.ChangeUpdated,
		Document: domain.RawDocument{URI: "/inbox/b.md", MIMEType: "text/markdown", Content: []byte("Sales pipeline review.")},
	}
	close(changes)

	var mu sync.Mutex
	var failed []string
	err := intake.Consume(ctx, changes, driving.IntakeOptions{}, func(uri string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, uri)
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/inbox/scan.pdf"}, failed)

	snapshot, err := dashboard.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Documents, 20)
	assert.Equal(t, "a", snapshot.Documents[18].Name)
	assert.Equal(t, "b", snapshot.Documents[19].Name)
}

func TestIntakeService_Consume_StopsOnCancel(t *testing.T) {
	intake, _ := newTestIntake(t)
	ctx, cancel := context.WithCancel(context.Background())

	changes := make(chan domain.RawDocumentChange)
	done := make(chan error, 1)
	go func() {
		done <- intake.Consume(ctx, changes, driving.IntakeOptions{}, nil)
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Consume did not return after cancel")
	}
}
