package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "text/plain")
	assert.Contains(t, mimeTypes, "text/markdown")
	assert.Contains(t, mimeTypes, "text/csv")
	assert.Contains(t, mimeTypes, "application/json")
	assert.NotContains(t, mimeTypes, "text/html")
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 5, New().Priority())
}

func TestNormalise_Success(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/inbox/q3_budget-review.txt",
		MIMEType: "text/plain",
		Content:  []byte("Budget overrun on Q3 marketing spend."),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	doc := result.Document
	assert.Equal(t, "q3 budget review", doc.Name)
	assert.Equal(t, "Budget overrun on Q3 marketing spend.", doc.Content)
	assert.Equal(t, domain.SourceOther, doc.Source)
	assert.Empty(t, doc.ID)
	assert.Empty(t, doc.Domain)
	assert.True(t, doc.UploadedAt.IsZero())
}

func TestNormalise_SourceFromExtension(t *testing.T) {
	tests := []struct {
		uri  string
		want domain.SourceKind
	}{
		{"/inbox/pipeline.csv", domain.SourceSpreadsheet},
		{"/inbox/pipeline.tsv", domain.SourceSpreadsheet},
		{"/inbox/notes.md", domain.SourceOther},
		{"/inbox/export.json", domain.SourceOther},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			result, err := New().Normalise(context.Background(), &domain.RawDocument{
				URI:     tt.uri,
				Content: []byte("a,b,c"),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Document.Source)
		})
	}
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_EmptyContent(t *testing.T) {
	result, err := New().Normalise(context.Background(), &domain.RawDocument{URI: "/inbox/empty.txt"})
	require.NoError(t, err)
	assert.Empty(t, result.Document.Content)
	assert.Equal(t, "empty", result.Document.Name)
}

func TestNormalise_TitleFromMetadata(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/tmp/upload-1234",
		Content:  []byte("hello"),
		Metadata: map[string]any{"title": "Vendor Contract"},
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "Vendor Contract", result.Document.Name)
}

func TestNormalise_InvalidUTF8(t *testing.T) {
	raw := &domain.RawDocument{
		URI:     "/inbox/bad.txt",
		Content: []byte{'o', 'k', 0xff, '!'},
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "ok�!", result.Document.Content)
}

func TestNormalise_StripsBOM(t *testing.T) {
	raw := &domain.RawDocument{
		URI:     "/inbox/bom.txt",
		Content: []byte("\ufeffurgent payroll issue"),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "urgent payroll issue", result.Document.Content)
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"simple", "/path/file.txt", "file"},
		{"underscores", "/path/my_notes.md", "my notes"},
		{"dashes", "/path/q3-report.csv", "q3 report"},
		{"no extension", "/path/README", "README"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTitle(tt.uri))
		})
	}
}

func TestNormalise_FrontMatter(t *testing.T) {
	content := "---\ntitle: Vendor contract review\ndepartment: Procurement\ndomain: legal\n---\n\nCompliance sign-off pending.\n"

	result, err := New().Normalise(context.Background(), &domain.RawDocument{
		URI:      "/notes/review.md",
		MIMEType: "text/markdown",
		Content:  []byte(content),
	})
	require.NoError(t, err)

	doc := result.Document
	assert.Equal(t, "Vendor contract review", doc.Name)
	assert.Equal(t, "Procurement", doc.Department)
	assert.Equal(t, domain.DomainLegal, doc.Domain)
	assert.Equal(t, "Compliance sign-off pending.\n", doc.Content)
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantOK   bool
		wantBody string
		wantMeta frontMatter
	}{
		{
			name:     "no front matter",
			content:  "Plain note",
			wantBody: "Plain note",
		},
		{
			name:     "unterminated block",
			content:  "---\ntitle: x\nbody",
			wantBody: "---\ntitle: x\nbody",
		},
		{
			name:     "invalid yaml",
			content:  "---\ntitle: [unclosed\n---\nbody",
			wantBody: "---\ntitle: [unclosed\n---\nbody",
		},
		{
			name:     "unknown domain is kept as text only",
			content:  "---\ndomain: Marketing\n---\nbody",
			wantOK:   true,
			wantBody: "body",
			wantMeta: frontMatter{Domain: "Marketing"},
		},
		{
			name:     "windows line endings",
			content:  "---\r\ntitle: Budget\r\n---\r\nbody",
			wantOK:   true,
			wantBody: "body",
			wantMeta: frontMatter{Title: "Budget"},
		},
		{
			name:     "dashes inside text are not a closing fence",
			content:  "---\ntitle: x\n---not a fence\n",
			wantBody: "---\ntitle: x\n---not a fence\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, ok := splitFrontMatter(tt.content)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantBody, body)
			assert.Equal(t, tt.wantMeta, meta)
		})
	}
}

func TestNormalise_FrontMatterUnknownDomain(t *testing.T) {
	result, err := New().Normalise(context.Background(), &domain.RawDocument{
		URI:     "/notes/plan.md",
		Content: []byte("---\ndomain: Marketing\n---\nLaunch plan"),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Document.Domain)
	assert.Equal(t, "plan", result.Document.Name)
}
