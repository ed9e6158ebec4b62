// Package seed builds the demo dataset used on first run and on reset.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/intelligence"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogEntry struct {
	ID      string            `yaml:"id"`
	Source  domain.SourceKind `yaml:"source"`
	Name    string            `yaml:"name"`
	Content string            `yaml:"content"`
	Domain  domain.Domain     `yaml:"domain"`
}

type catalogFile struct {
	Documents []catalogEntry `yaml:"documents"`
}

// Catalog returns the demo documents without timestamps or demo flags.
func Catalog() ([]domain.IngestedDocument, error) {
	var file catalogFile
	if err := yaml.Unmarshal(catalogYAML, &file); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}

	docs := make([]domain.IngestedDocument, 0, len(file.Documents))
	for _, e := range file.Documents {
		if !e.Domain.IsValid() {
			return nil, fmt.Errorf("seed document %s: %w: %q", e.ID, domain.ErrUnknownDomain, e.Domain)
		}
		if !e.Source.IsValid() {
			return nil, fmt.Errorf("seed document %s: %w: %q", e.ID, domain.ErrInvalidInput, e.Source)
		}
		docs = append(docs, domain.IngestedDocument{
			ID:         e.ID,
			Source:     e.Source,
			Name:       e.Name,
			Content:    e.Content,
			Department: string(e.Domain),
			Domain:     e.Domain,
		})
	}
	return docs, nil
}

// Generator produces fresh demo stores.
type Generator struct {
	processor *intelligence.Processor
	now       func() time.Time
}

// NewGenerator creates a generator that classifies with processor.
// A nil processor gets the default one.
func NewGenerator(processor *intelligence.Processor) *Generator {
	if processor == nil {
		processor = intelligence.NewProcessor()
	}
	return &Generator{processor: processor, now: time.Now}
}

// WithClock returns the generator with a fixed time source for uploadedAt.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	if now != nil {
		g.now = now
	}
	return g
}

// Generate classifies the catalog and returns a store in which every
// record is marked as demo data. Insights take the domain of their
// document and alerts take the domain of their insight.
func (g *Generator) Generate() (domain.DataStore, error) {
	docs, err := Catalog()
	if err != nil {
		return domain.DataStore{}, err
	}

	uploadedAt := g.now().UTC()
	byID := make(map[string]domain.Domain, len(docs))
	for i := range docs {
		docs[i].UploadedAt = uploadedAt
		docs[i].IsDemoData = true
		byID[docs[i].ID] = docs[i].Domain
	}

	batch := g.processor.ProcessBatch(docs)

	insightDomains := make(map[string]domain.Domain, len(batch.Insights))
	for i := range batch.Insights {
		batch.Insights[i].Domain = byID[batch.Insights[i].DocumentID]
		batch.Insights[i].IsDemoData = true
		insightDomains[batch.Insights[i].ID] = batch.Insights[i].Domain
	}
	for i := range batch.Alerts {
		batch.Alerts[i].Domain = insightDomains[batch.Alerts[i].InsightID]
		batch.Alerts[i].IsDemoData = true
	}

	return domain.DataStore{
		Documents: docs,
		Insights:  batch.Insights,
		Alerts:    batch.Alerts,
	}, nil
}
