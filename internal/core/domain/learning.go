package domain

// LearningSection is one block of onboarding guidance for a domain.
type LearningSection struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
}

var learningContent = map[Domain][]LearningSection{
	DomainFinance: {{
		Title:       "Budget & Revenue",
		Description: "Monitor variance, approvals, and cash flow",
		Items:       []string{"Review KPI cards regularly", "Act on high-priority alerts", "Track cross-domain impact"},
	}},
	DomainOperations: {{
		Title:       "Process & Delivery",
		Description: "Manage delays and vendor dependencies",
		Items:       []string{"Check process delay reports", "Review delivery risk notices", "Use the Knowledge Graph for dependencies"},
	}},
	DomainHR: {{
		Title:       "Hiring & Attrition",
		Description: "Stay on top of talent and policy",
		Items:       []string{"Monitor hiring status", "Review attrition signals", "Act on policy updates"},
	}},
	DomainSales: {{
		Title:       "Pipeline & Deals",
		Description: "Track targets and deal risks",
		Items:       []string{"Review pipeline status", "Address target gaps", "Act on deal risk alerts"},
	}},
	DomainLegal: {{
		Title:       "Contracts & Compliance",
		Description: "Manage approvals and compliance",
		Items:       []string{"Review contract approvals", "Act on compliance alerts", "Resolve review bottlenecks"},
	}},
	DomainIT: {{
		Title:       "Systems & Security",
		Description: "Monitor deployments and incidents",
		Items:       []string{"Track deployment updates", "Review incident reports", "Act on security notices"},
	}},
}

// LearningFor returns onboarding guidance for the domain.
// Unknown domains fall back to the Finance guidance.
func LearningFor(d Domain) []LearningSection {
	if sections, ok := learningContent[d]; ok {
		return sections
	}
	return learningContent[DomainFinance]
}
