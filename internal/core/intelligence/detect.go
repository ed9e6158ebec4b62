package intelligence

import (
	"strings"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// DetectDomain guesses a domain from content and department text.
// The first matching rule wins. Matching is naive substring, so short
// keywords such as "it" and "hr" match inside other words.
func DetectDomain(content, department string) (domain.Domain, bool) {
	lower := strings.ToLower(content + " " + department)
	for _, rule := range domainRules {
		if containsAny(lower, rule.keywords) {
			return domain.Domain(rule.domain), true
		}
	}
	return "", false
}

// PreviewPriority is the lightweight priority shown before upload.
// It can disagree with ExtractPriority, which checks more keywords.
func PreviewPriority(content string) domain.Priority {
	lower := strings.ToLower(content)
	switch {
	case containsAny(lower, previewHighKeywords):
		return domain.PriorityHigh
	case containsAny(lower, mediumPriorityKeywords):
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}
