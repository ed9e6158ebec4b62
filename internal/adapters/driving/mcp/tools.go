package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// defaultLimit caps list_insights results when no limit is given.
const defaultLimit = 20

// IngestDocumentInput is the input schema for the ingest_document tool.
type IngestDocumentInput struct {
	Name       string `json:"name" jsonschema:"display name of the document"`
	Content    string `json:"content" jsonschema:"full text content to classify"`
	Source     string `json:"source,omitempty" jsonschema:"one of pdf, email, spreadsheet, other (default other)"`
	Department string `json:"department,omitempty" jsonschema:"free-text department label"`
	Domain     string `json:"domain,omitempty" jsonschema:"Finance, Operations, HR, Sales, Legal or IT; detected from content when omitted"`
}

// IngestDocumentOutput is the output schema for the ingest_document tool.
type IngestDocumentOutput struct {
	DocumentID string         `json:"document_id"`
	Domain     string         `json:"domain,omitempty"`
	Skipped    bool           `json:"skipped"`
	Insight    *InsightOutput `json:"insight,omitempty"`
	Alert      *AlertOutput   `json:"alert,omitempty"`
}

// AcknowledgeAlertInput is the input schema for the acknowledge_alert tool.
type AcknowledgeAlertInput struct {
	AlertID string `json:"alert_id" jsonschema:"ID of the alert to acknowledge"`
}

// AcknowledgeAlertOutput is the output schema for the acknowledge_alert tool.
type AcknowledgeAlertOutput struct {
	Acknowledged bool `json:"acknowledged"`
}

// ListInsightsInput is the input schema for the list_insights tool.
type ListInsightsInput struct {
	Domain   string `json:"domain,omitempty" jsonschema:"restrict to one domain; all domains when omitted"`
	Role     string `json:"role,omitempty" jsonschema:"only insights relevant to CEO, Manager or Employee"`
	HighOnly bool   `json:"high_only,omitempty" jsonschema:"only High priority insights"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of insights to return (default 20)"`
}

// ListInsightsOutput is the output schema for the list_insights tool.
type ListInsightsOutput struct {
	Insights []InsightOutput `json:"insights"`
	Count    int             `json:"count"`
}

// ListAlertsInput is the input schema for the list_alerts tool.
type ListAlertsInput struct {
	Domain              string `json:"domain,omitempty" jsonschema:"restrict to one domain; all domains when omitted"`
	IncludeAcknowledged bool   `json:"include_acknowledged,omitempty" jsonschema:"also return acknowledged alerts"`
}

// ListAlertsOutput is the output schema for the list_alerts tool.
type ListAlertsOutput struct {
	Alerts       []AlertOutput `json:"alerts"`
	Active       int           `json:"active"`
	Acknowledged int           `json:"acknowledged"`
}

// OverviewInput is the input schema for the overview tool. It takes no arguments.
type OverviewInput struct{}

// OverviewOutput is the output schema for the overview tool.
type OverviewOutput struct {
	TotalDocuments    int             `json:"total_documents"`
	TotalInsights     int             `json:"total_insights"`
	ActiveAlerts      int             `json:"active_alerts"`
	DocumentsByDomain map[string]int  `json:"documents_by_domain"`
	TopInsights       []InsightOutput `json:"top_insights"`
	TopAlerts         []AlertOutput   `json:"top_alerts"`
}

// InsightOutput represents a single insight.
type InsightOutput struct {
	ID            string   `json:"id"`
	DocumentID    string   `json:"document_id"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Priority      string   `json:"priority"`
	Type          string   `json:"type"`
	Domain        string   `json:"domain,omitempty"`
	Roles         []string `json:"roles"`
	AlertSeverity string   `json:"alert_severity,omitempty"`
}

// AlertOutput represents a single alert.
type AlertOutput struct {
	ID           string `json:"id"`
	InsightID    string `json:"insight_id"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	Severity     string `json:"severity"`
	Domain       string `json:"domain,omitempty"`
	Acknowledged bool   `json:"acknowledged"`
	CreatedAt    string `json:"created_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_document",
		Description: "Classify a document and add it with its insight and any alert to the dashboard",
	}, s.handleIngestDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "acknowledge_alert",
		Description: "Mark an alert as acknowledged",
	}, s.handleAcknowledgeAlert)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_insights",
		Description: "List classified insights, optionally filtered by domain, role or priority",
	}, s.handleListInsights)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_alerts",
		Description: "List alerts, optionally filtered by domain",
	}, s.handleListAlerts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "overview",
		Description: "Organisation-wide totals with the top insights and active alerts",
	}, s.handleOverview)
}

// handleIngestDocument handles the ingest_document tool invocation.
func (s *Server) handleIngestDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestDocumentInput,
) (*mcp.CallToolResult, IngestDocumentOutput, error) {
	doc := domain.IngestedDocument{
		Name:       input.Name,
		Content:    input.Content,
		Source:     domain.SourceKind(input.Source),
		Department: input.Department,
		Domain:     domain.Domain(input.Domain),
	}

	result, err := s.ports.Dashboard.Ingest(ctx, []domain.IngestedDocument{doc})
	if err != nil {
		return nil, IngestDocumentOutput{}, err
	}

	ingested := result.Documents[0]
	output := IngestDocumentOutput{
		DocumentID: ingested.ID,
		Domain:     string(ingested.Domain),
		Skipped:    len(result.Skipped) > 0,
	}
	if len(result.Insights) > 0 {
		insight := toInsightOutput(&result.Insights[0])
		output.Insight = &insight
	}
	if len(result.Alerts) > 0 {
		alert := toAlertOutput(&result.Alerts[0])
		output.Alert = &alert
	}

	return nil, output, nil
}

// handleAcknowledgeAlert handles the acknowledge_alert tool invocation.
func (s *Server) handleAcknowledgeAlert(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AcknowledgeAlertInput,
) (*mcp.CallToolResult, AcknowledgeAlertOutput, error) {
	ok, err := s.ports.Dashboard.Acknowledge(ctx, input.AlertID)
	if err != nil {
		return nil, AcknowledgeAlertOutput{}, err
	}
	return nil, AcknowledgeAlertOutput{Acknowledged: ok}, nil
}

// handleListInsights handles the list_insights tool invocation.
func (s *Server) handleListInsights(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInsightsInput,
) (*mcp.CallToolResult, ListInsightsOutput, error) {
	d, err := parseDomainFilter(input.Domain)
	if err != nil {
		return nil, ListInsightsOutput{}, err
	}

	role, err := parseRoleFilter(input.Role)
	if err != nil {
		return nil, ListInsightsOutput{}, err
	}

	insights, err := s.ports.Views.Insights(ctx, d)
	if err != nil {
		return nil, ListInsightsOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	output := ListInsightsOutput{Insights: make([]InsightOutput, 0)}
	for i := range insights {
		if role != "" && !insights[i].HasRole(role) {
			continue
		}
		if input.HighOnly && insights[i].Priority != domain.PriorityHigh {
			continue
		}
		output.Insights = append(output.Insights, toInsightOutput(&insights[i]))
		if len(output.Insights) == limit {
			break
		}
	}
	output.Count = len(output.Insights)

	return nil, output, nil
}

// handleListAlerts handles the list_alerts tool invocation.
func (s *Server) handleListAlerts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListAlertsInput,
) (*mcp.CallToolResult, ListAlertsOutput, error) {
	d, err := parseDomainFilter(input.Domain)
	if err != nil {
		return nil, ListAlertsOutput{}, err
	}

	list, err := s.ports.Views.Alerts(ctx, d)
	if err != nil {
		return nil, ListAlertsOutput{}, err
	}

	output := ListAlertsOutput{
		Alerts:       make([]AlertOutput, 0, len(list.Alerts)),
		Active:       list.Active,
		Acknowledged: list.Acknowledged,
	}
	for i := range list.Alerts {
		if list.Alerts[i].Acknowledged && !input.IncludeAcknowledged {
			continue
		}
		output.Alerts = append(output.Alerts, toAlertOutput(&list.Alerts[i]))
	}

	return nil, output, nil
}

// handleOverview handles the overview tool invocation.
func (s *Server) handleOverview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ OverviewInput,
) (*mcp.CallToolResult, OverviewOutput, error) {
	overview, err := s.ports.Views.Overview(ctx)
	if err != nil {
		return nil, OverviewOutput{}, err
	}
	return nil, toOverviewOutput(overview), nil
}

func toOverviewOutput(overview *driving.Overview) OverviewOutput {
	output := OverviewOutput{
		TotalDocuments:    overview.TotalDocuments,
		TotalInsights:     overview.TotalInsights,
		ActiveAlerts:      overview.ActiveAlerts,
		DocumentsByDomain: make(map[string]int, len(overview.DocumentsByDomain)),
		TopInsights:       make([]InsightOutput, len(overview.TopInsights)),
		TopAlerts:         make([]AlertOutput, len(overview.TopAlerts)),
	}
	for _, c := range overview.DocumentsByDomain {
		output.DocumentsByDomain[string(c.Domain)] = c.Documents
	}
	for i := range overview.TopInsights {
		output.TopInsights[i] = toInsightOutput(&overview.TopInsights[i])
	}
	for i := range overview.TopAlerts {
		output.TopAlerts[i] = toAlertOutput(&overview.TopAlerts[i])
	}
	return output
}

func toInsightOutput(insight *domain.ProcessedInsight) InsightOutput {
	roles := make([]string, len(insight.RelevanceRoles))
	for i, r := range insight.RelevanceRoles {
		roles[i] = string(r)
	}
	return InsightOutput{
		ID:            insight.ID,
		DocumentID:    insight.DocumentID,
		Title:         insight.Title,
		Summary:       insight.Summary,
		Priority:      string(insight.Priority),
		Type:          string(insight.Type),
		Domain:        string(insight.Domain),
		Roles:         roles,
		AlertSeverity: string(insight.AlertSeverity),
	}
}

func toAlertOutput(alert *domain.Alert) AlertOutput {
	return AlertOutput{
		ID:           alert.ID,
		InsightID:    alert.InsightID,
		Title:        alert.Title,
		Message:      alert.Message,
		Severity:     string(alert.Severity),
		Domain:       string(alert.Domain),
		Acknowledged: alert.Acknowledged,
		CreatedAt:    alert.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// parseDomainFilter resolves an optional domain argument.
func parseDomainFilter(s string) (domain.Domain, error) {
	if s == "" {
		return "", nil
	}
	d, err := domain.ParseDomain(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, s)
	}
	return d, nil
}

// parseRoleFilter resolves an optional organisational role argument.
func parseRoleFilter(s string) (domain.Role, error) {
	if s == "" {
		return "", nil
	}
	for _, r := range []domain.Role{domain.RoleCEO, domain.RoleManager, domain.RoleEmployee} {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, s)
}
