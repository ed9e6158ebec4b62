package intelligence

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/logger"
)

const (
	summaryLength = 150
	messageLength = 200
	ellipsis      = "..."
	alertPrefix   = "Alert: "
)

// Result is the outcome of processing one document.
// Alert is nil when the insight is not alert-worthy.
type Result struct {
	Insight domain.ProcessedInsight
	Alert   *domain.Alert
}

// Batch is the outcome of processing many documents.
type Batch struct {
	Insights []domain.ProcessedInsight
	Alerts   []domain.Alert

	// Skipped lists the IDs of documents that failed processing.
	Skipped []string
}

// Processor applies the keyword classifier to documents.
// A Processor is safe for concurrent use.
type Processor struct {
	now func() time.Time
	ids IDSource
}

// Option configures a Processor.
type Option func(*Processor)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

// WithIDSource overrides the ID generator.
func WithIDSource(ids IDSource) Option {
	return func(p *Processor) {
		if ids != nil {
			p.ids = ids
		}
	}
}

// NewProcessor creates a processor using the wall clock and ULID IDs.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		now: time.Now,
		ids: NewULIDSource(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process classifies one document. It returns an insight always and an
// alert only when the insight is alert-worthy. Domain is not set on
// either record; callers copy it from the source document.
func (p *Processor) Process(doc *domain.IngestedDocument) (Result, error) {
	if doc == nil {
		return Result{}, fmt.Errorf("%w: nil document", domain.ErrMalformedDocument)
	}
	if doc.Content == "" {
		return Result{}, fmt.Errorf("%w: document %q has no content", domain.ErrMalformedDocument, doc.ID)
	}
	if doc.Name == "" {
		return Result{}, fmt.Errorf("%w: document %q has no name", domain.ErrMalformedDocument, doc.ID)
	}

	now := p.now()
	priority := ExtractPriority(doc.Content)
	roles := RelevanceRoles(doc, priority)

	insight := domain.ProcessedInsight{
		ID:             "insight-" + doc.ID + "-" + p.ids.NewID(now),
		DocumentID:     doc.ID,
		Priority:       priority,
		RelevanceRoles: roles,
		Title:          doc.Name,
		Summary:        summarise(doc.Content),
		Type:           DetermineInsightType(doc.Content, roles),
	}

	if !ShouldCreateAlert(priority, doc.Content) {
		return Result{Insight: insight}, nil
	}

	insight.AlertFlag = true
	insight.AlertSeverity = AlertSeverityFor(doc.Content)

	alert := &domain.Alert{
		ID:            "alert-" + doc.ID + "-" + p.ids.NewID(now),
		InsightID:     insight.ID,
		Title:         alertPrefix + doc.Name,
		Message:       truncate(doc.Content, messageLength),
		Severity:      insight.AlertSeverity,
		CreatedAt:     now.UTC(),
		RelevantRoles: append([]domain.Role(nil), roles...),
	}
	return Result{Insight: insight, Alert: alert}, nil
}

// ProcessBatch classifies documents in order. A document that fails is
// skipped and logged; the rest of the batch still completes.
func (p *Processor) ProcessBatch(docs []domain.IngestedDocument) Batch {
	batch := Batch{
		Insights: make([]domain.ProcessedInsight, 0, len(docs)),
		Alerts:   make([]domain.Alert, 0),
	}

	for i := range docs {
		res, err := p.processSafely(&docs[i])
		if err != nil {
			logger.Debug("Skipping document %q: %v", docs[i].ID, err)
			batch.Skipped = append(batch.Skipped, docs[i].ID)
			continue
		}
		batch.Insights = append(batch.Insights, res.Insight)
		if res.Alert != nil {
			batch.Alerts = append(batch.Alerts, *res.Alert)
		}
	}

	return batch
}

// processSafely converts a panic during processing into an error.
func (p *Processor) processSafely(doc *domain.IngestedDocument) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", domain.ErrMalformedDocument, r)
		}
	}()
	return p.Process(doc)
}

func summarise(content string) string {
	if utf8.RuneCountInString(content) <= summaryLength {
		return content
	}
	return truncate(content, summaryLength) + ellipsis
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
