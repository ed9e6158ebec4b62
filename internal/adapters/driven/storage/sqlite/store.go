package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/compass/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.DataStore = (*Store)(nil)

// DefaultFileName is the database file name inside the data directory.
const DefaultFileName = "compass.db"

// Store is a SQLite-backed driven.DataStore.
type Store struct {
	db   *sqlx.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ./data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "data"
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DefaultFileName)

	// Open database with WAL mode for better concurrency
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Debug("Opened SQLite store at %s", dbPath)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations and records each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	if err := s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations"); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	pending, err := migrations.Up(fsys)
	if err != nil {
		return err
	}

	for _, m := range pending {
		if m.Version <= currentVersion {
			continue
		}

		tx, err := s.db.Beginx()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", m.Name, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", m.Name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", m.Name, err)
		}
		logger.Debug("Applied migration %s", m.Name)
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.GetContext(ctx, &v, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	return v, err
}

// ==================== Rows ====================

type documentRow struct {
	ID         string `db:"id"`
	Source     string `db:"source"`
	Name       string `db:"name"`
	Content    string `db:"content"`
	Department string `db:"department"`
	Domain     string `db:"domain"`
	UploadedAt string `db:"uploaded_at"`
	IsDemo     bool   `db:"is_demo"`
}

type insightRow struct {
	ID             string `db:"id"`
	DocumentID     string `db:"document_id"`
	Priority       string `db:"priority"`
	RelevanceRoles string `db:"relevance_roles"`
	Title          string `db:"title"`
	Summary        string `db:"summary"`
	AlertFlag      bool   `db:"alert_flag"`
	AlertSeverity  string `db:"alert_severity"`
	Type           string `db:"type"`
	Domain         string `db:"domain"`
	IsDemo         bool   `db:"is_demo"`
}

type alertRow struct {
	ID            string `db:"id"`
	InsightID     string `db:"insight_id"`
	Title         string `db:"title"`
	Message       string `db:"message"`
	Severity      string `db:"severity"`
	Acknowledged  bool   `db:"acknowledged"`
	CreatedAt     string `db:"created_at"`
	RelevantRoles string `db:"relevant_roles"`
	Domain        string `db:"domain"`
	IsDemo        bool   `db:"is_demo"`
}

// ==================== DataStore ====================

// Load reads every row of every table in insertion order.
func (s *Store) Load(ctx context.Context) (domain.DataStore, error) {
	var (
		docs     []documentRow
		insights []insightRow
		alerts   []alertRow
	)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.DataStore{}, fmt.Errorf("beginning read: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // nothing to undo

	if err := tx.SelectContext(ctx, &docs, `
		SELECT id, source, name, content, department, domain, uploaded_at, is_demo
		FROM documents ORDER BY seq`); err != nil {
		return domain.DataStore{}, fmt.Errorf("loading documents: %w", err)
	}
	if err := tx.SelectContext(ctx, &insights, `
		SELECT id, document_id, priority, relevance_roles, title, summary,
			alert_flag, alert_severity, type, domain, is_demo
		FROM insights ORDER BY seq`); err != nil {
		return domain.DataStore{}, fmt.Errorf("loading insights: %w", err)
	}
	if err := tx.SelectContext(ctx, &alerts, `
		SELECT id, insight_id, title, message, severity, acknowledged,
			created_at, relevant_roles, domain, is_demo
		FROM alerts ORDER BY seq`); err != nil {
		return domain.DataStore{}, fmt.Errorf("loading alerts: %w", err)
	}

	out := domain.DataStore{
		Documents: make([]domain.IngestedDocument, 0, len(docs)),
		Insights:  make([]domain.ProcessedInsight, 0, len(insights)),
		Alerts:    make([]domain.Alert, 0, len(alerts)),
	}
	for _, r := range docs {
		doc, err := r.toDomain()
		if err != nil {
			return domain.DataStore{}, err
		}
		out.Documents = append(out.Documents, doc)
	}
	for _, r := range insights {
		ins, err := r.toDomain()
		if err != nil {
			return domain.DataStore{}, err
		}
		out.Insights = append(out.Insights, ins)
	}
	for _, r := range alerts {
		a, err := r.toDomain()
		if err != nil {
			return domain.DataStore{}, err
		}
		out.Alerts = append(out.Alerts, a)
	}
	return out, nil
}

// Save replaces all rows with the snapshot in a single transaction.
func (s *Store) Save(ctx context.Context, store domain.DataStore) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, table := range []string{"alerts", "insights", "documents"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	docStmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO documents (id, source, name, content, department, domain, uploaded_at, is_demo)
		VALUES (:id, :source, :name, :content, :department, :domain, :uploaded_at, :is_demo)`)
	if err != nil {
		return fmt.Errorf("preparing document insert: %w", err)
	}
	defer docStmt.Close()
	for i := range store.Documents {
		if _, err := docStmt.ExecContext(ctx, newDocumentRow(&store.Documents[i])); err != nil {
			return fmt.Errorf("inserting document %s: %w", store.Documents[i].ID, err)
		}
	}

	insStmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO insights (id, document_id, priority, relevance_roles, title, summary,
			alert_flag, alert_severity, type, domain, is_demo)
		VALUES (:id, :document_id, :priority, :relevance_roles, :title, :summary,
			:alert_flag, :alert_severity, :type, :domain, :is_demo)`)
	if err != nil {
		return fmt.Errorf("preparing insight insert: %w", err)
	}
	defer insStmt.Close()
	for i := range store.Insights {
		row, err := newInsightRow(&store.Insights[i])
		if err != nil {
			return err
		}
		if _, err := insStmt.ExecContext(ctx, row); err != nil {
			return fmt.Errorf("inserting insight %s: %w", store.Insights[i].ID, err)
		}
	}

	alertStmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO alerts (id, insight_id, title, message, severity, acknowledged,
			created_at, relevant_roles, domain, is_demo)
		VALUES (:id, :insight_id, :title, :message, :severity, :acknowledged,
			:created_at, :relevant_roles, :domain, :is_demo)`)
	if err != nil {
		return fmt.Errorf("preparing alert insert: %w", err)
	}
	defer alertStmt.Close()
	for i := range store.Alerts {
		row, err := newAlertRow(&store.Alerts[i])
		if err != nil {
			return err
		}
		if _, err := alertStmt.ExecContext(ctx, row); err != nil {
			return fmt.Errorf("inserting alert %s: %w", store.Alerts[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// ==================== Conversion ====================

func newDocumentRow(d *domain.IngestedDocument) documentRow {
	return documentRow{
		ID:         d.ID,
		Source:     string(d.Source),
		Name:       d.Name,
		Content:    d.Content,
		Department: d.Department,
		Domain:     string(d.Domain),
		UploadedAt: formatTime(d.UploadedAt),
		IsDemo:     d.IsDemoData,
	}
}

func (r *documentRow) toDomain() (domain.IngestedDocument, error) {
	at, err := parseTime(r.UploadedAt)
	if err != nil {
		return domain.IngestedDocument{}, fmt.Errorf("document %s uploaded_at: %w", r.ID, err)
	}
	return domain.IngestedDocument{
		ID:         r.ID,
		Source:     domain.SourceKind(r.Source),
		Name:       r.Name,
		Content:    r.Content,
		Department: r.Department,
		Domain:     domain.Domain(r.Domain),
		UploadedAt: at,
		IsDemoData: r.IsDemo,
	}, nil
}

func newInsightRow(i *domain.ProcessedInsight) (insightRow, error) {
	roles, err := encodeRoles(i.RelevanceRoles)
	if err != nil {
		return insightRow{}, fmt.Errorf("insight %s roles: %w", i.ID, err)
	}
	return insightRow{
		ID:             i.ID,
		DocumentID:     i.DocumentID,
		Priority:       string(i.Priority),
		RelevanceRoles: roles,
		Title:          i.Title,
		Summary:        i.Summary,
		AlertFlag:      i.AlertFlag,
		AlertSeverity:  string(i.AlertSeverity),
		Type:           string(i.Type),
		Domain:         string(i.Domain),
		IsDemo:         i.IsDemoData,
	}, nil
}

func (r *insightRow) toDomain() (domain.ProcessedInsight, error) {
	roles, err := decodeRoles(r.RelevanceRoles)
	if err != nil {
		return domain.ProcessedInsight{}, fmt.Errorf("insight %s roles: %w", r.ID, err)
	}
	return domain.ProcessedInsight{
		ID:             r.ID,
		DocumentID:     r.DocumentID,
		Priority:       domain.Priority(r.Priority),
		RelevanceRoles: roles,
		Title:          r.Title,
		Summary:        r.Summary,
		AlertFlag:      r.AlertFlag,
		AlertSeverity:  domain.AlertSeverity(r.AlertSeverity),
		Type:           domain.InsightType(r.Type),
		Domain:         domain.Domain(r.Domain),
		IsDemoData:     r.IsDemo,
	}, nil
}

func newAlertRow(a *domain.Alert) (alertRow, error) {
	roles, err := encodeRoles(a.RelevantRoles)
	if err != nil {
		return alertRow{}, fmt.Errorf("alert %s roles: %w", a.ID, err)
	}
	return alertRow{
		ID:            a.ID,
		InsightID:     a.InsightID,
		Title:         a.Title,
		Message:       a.Message,
		Severity:      string(a.Severity),
		Acknowledged:  a.Acknowledged,
		CreatedAt:     formatTime(a.CreatedAt),
		RelevantRoles: roles,
		Domain:        string(a.Domain),
		IsDemo:        a.IsDemoData,
	}, nil
}

func (r *alertRow) toDomain() (domain.Alert, error) {
	roles, err := decodeRoles(r.RelevantRoles)
	if err != nil {
		return domain.Alert{}, fmt.Errorf("alert %s roles: %w", r.ID, err)
	}
	at, err := parseTime(r.CreatedAt)
	if err != nil {
		return domain.Alert{}, fmt.Errorf("alert %s created_at: %w", r.ID, err)
	}
	return domain.Alert{
		ID:            r.ID,
		InsightID:     r.InsightID,
		Title:         r.Title,
		Message:       r.Message,
		Severity:      domain.AlertSeverity(r.Severity),
		Acknowledged:  r.Acknowledged,
		CreatedAt:     at,
		RelevantRoles: roles,
		Domain:        domain.Domain(r.Domain),
		IsDemoData:    r.IsDemo,
	}, nil
}

func encodeRoles(roles []domain.Role) (string, error) {
	if roles == nil {
		return "null", nil
	}
	data, err := json.Marshal(roles)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeRoles(s string) ([]domain.Role, error) {
	var roles []domain.Role
	if s == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(s), &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
