package intelligence

import (
	"strings"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// containsAny reports whether lower contains any keyword.
// lower must already be lowercased.
func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractPriority assigns a priority tier from content keywords.
func ExtractPriority(text string) domain.Priority {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, highPriorityKeywords):
		return domain.PriorityHigh
	case containsAny(lower, mediumPriorityKeywords):
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// RelevanceRoles decides which roles an insight is relevant to.
//
// Rules are checked in order:
//  1. Finance or Legal effective domain with High priority: CEO, Manager.
//  2. Content mentions "task update": Manager, Employee when the content
//     also mentions "manager" or "action", otherwise Employee alone.
//  3. By priority: High gives CEO, Manager; Medium gives Manager,
//     Employee; Low gives Employee.
func RelevanceRoles(doc *domain.IngestedDocument, priority domain.Priority) []domain.Role {
	lower := strings.ToLower(doc.Content)
	area := strings.ToLower(doc.EffectiveDomain())

	if priority == domain.PriorityHigh && containsAny(area, executiveDomains) {
		return []domain.Role{domain.RoleCEO, domain.RoleManager}
	}

	if containsAny(lower, taskUpdateKeywords) {
		if containsAny(lower, managerKeywords) {
			return []domain.Role{domain.RoleManager, domain.RoleEmployee}
		}
		return []domain.Role{domain.RoleEmployee}
	}

	switch priority {
	case domain.PriorityHigh:
		return []domain.Role{domain.RoleCEO, domain.RoleManager}
	case domain.PriorityMedium:
		return []domain.Role{domain.RoleManager, domain.RoleEmployee}
	default:
		return []domain.Role{domain.RoleEmployee}
	}
}

func hasRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// DetermineInsightType categorises an insight. Only the four classifier
// types are ever returned.
func DetermineInsightType(content string, roles []domain.Role) domain.InsightType {
	lower := strings.ToLower(content)
	switch {
	case hasRole(roles, domain.RoleCEO):
		return domain.InsightStrategic
	case hasRole(roles, domain.RoleManager) && containsAny(lower, actionKeywords):
		return domain.InsightAction
	case strings.Contains(lower, "task"):
		return domain.InsightTask
	default:
		return domain.InsightUpdate
	}
}

// ShouldCreateAlert reports whether an insight warrants an alert.
func ShouldCreateAlert(priority domain.Priority, content string) bool {
	if priority != domain.PriorityHigh {
		return false
	}
	return containsAny(strings.ToLower(content), alertKeywords)
}

// AlertSeverityFor grades an alert from content keywords.
// Both risk branches yield High.
func AlertSeverityFor(content string) domain.AlertSeverity {
	lower := strings.ToLower(content)
	hasRisk := strings.Contains(lower, "risk")
	hasDelay := strings.Contains(lower, "delay")

	if hasRisk && hasDelay {
		return domain.SeverityHigh
	}
	if hasRisk || strings.Contains(lower, "approval") {
		return domain.SeverityHigh
	}
	if hasDelay {
		return domain.SeverityMedium
	}
	return domain.SeverityInfo
}
