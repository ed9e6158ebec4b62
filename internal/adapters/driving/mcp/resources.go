package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/compass/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Compass resources.
	uriScheme = "compass://"

	jsonMIMEType = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "store",
		Name:        "store",
		Description: "Every document, insight and alert in the data store",
		MIMEType:    jsonMIMEType,
	}, s.handleStoreResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "graph",
		Name:        "knowledge-graph",
		Description: "Knowledge graph linking the organisation to its domains",
		MIMEType:    jsonMIMEType,
	}, s.handleGraphResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "domains/{domain}",
		Name:        "domain-dashboard",
		Description: "Dashboard for one domain: documents, insights, active alerts and cross-domain counts",
		MIMEType:    jsonMIMEType,
	}, s.handleDomainResource)
}

// handleStoreResource returns the whole data store.
func (s *Server) handleStoreResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snapshot, err := s.ports.Dashboard.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading store: %w", err)
	}
	snapshot.Normalise()
	return jsonResult(req.Params.URI, snapshot)
}

// handleGraphResource returns the knowledge graph.
func (s *Server) handleGraphResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResult(req.Params.URI, s.ports.Views.Graph(ctx))
}

// handleDomainResource returns the dashboard for the domain in the URI.
func (s *Server) handleDomainResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// compass://domains/{domain}
	d, err := domain.ParseDomain(extractDomain(req.Params.URI))
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	view, err := s.ports.Views.DomainDashboard(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("building %s dashboard: %w", d, err)
	}
	return jsonResult(req.Params.URI, view)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIMEType,
			Text:     string(data),
		}},
	}, nil
}

// extractDomain extracts the domain name from a URI like compass://domains/{domain}.
func extractDomain(uri string) string {
	const prefix = uriScheme + "domains/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
