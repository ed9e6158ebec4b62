package html

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts an HTML document to a document draft.
// The page title becomes the name, falling back to the file name.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	title, text, err := Extract(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if title == "" {
		title = titleFromURI(raw.URI)
	}

	return &driven.NormaliseResult{
		Document: domain.IngestedDocument{
			Name:    title,
			Content: text,
			Source:  domain.SourceKindForPath(raw.URI),
		},
	}, nil
}

// Extract parses HTML and returns the <title> text and the readable body text.
// Block-level elements end a line; runs of whitespace collapse to one space.
func Extract(r io.Reader) (title, text string, err error) {
	root, err := xhtml.Parse(r)
	if err != nil {
		return "", "", err
	}

	w := &textWriter{}
	var walk func(*xhtml.Node)
	walk = func(node *xhtml.Node) {
		switch node.Type {
		case xhtml.ElementNode:
			switch node.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			case atom.Title:
				if title == "" {
					title = collapse(nodeText(node))
				}
				return
			case atom.Br:
				w.newline()
				return
			}
		case xhtml.TextNode:
			w.write(node.Data)
			return
		}

		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if node.Type == xhtml.ElementNode && isBlock(node.DataAtom) {
			w.newline()
		}
	}
	walk(root)

	return title, w.String(), nil
}

// StripTags returns the readable text of an HTML fragment.
// Unparseable input is returned unchanged.
func StripTags(content string) string {
	_, text, err := Extract(strings.NewReader(content))
	if err != nil {
		return content
	}
	return text
}

// textWriter accumulates text lines, collapsing whitespace within a line.
type textWriter struct {
	lines   []string
	current strings.Builder
}

func (w *textWriter) write(s string) {
	for _, field := range strings.Fields(s) {
		if w.current.Len() > 0 {
			w.current.WriteByte(' ')
		}
		w.current.WriteString(field)
	}
}

func (w *textWriter) newline() {
	if w.current.Len() > 0 {
		w.lines = append(w.lines, w.current.String())
		w.current.Reset()
	}
}

func (w *textWriter) String() string {
	w.newline()
	return strings.Join(w.lines, "\n")
}

// nodeText concatenates all text below a node.
func nodeText(node *xhtml.Node) string {
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xhtml.TextNode {
			b.WriteString(child.Data)
		} else {
			b.WriteString(nodeText(child))
		}
	}
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Header, atom.Footer,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Li, atom.Ul, atom.Ol, atom.Tr, atom.Table, atom.Blockquote,
		atom.Pre, atom.Hr, atom.Main, atom.Nav, atom.Aside:
		return true
	default:
		return false
	}
}

// titleFromURI extracts a title from the file name.
func titleFromURI(uri string) string {
	if uri == "" {
		return ""
	}
	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return strings.TrimSpace(filename)
}
