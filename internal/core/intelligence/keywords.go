package intelligence

// Keyword sets. All entries are lowercase.
var (
	highPriorityKeywords   = []string{"delay", "risk", "approval", "pending approval", "compliance", "incident", "critical"}
	mediumPriorityKeywords = []string{"urgent", "important"}
	taskUpdateKeywords     = []string{"task update"}
	executiveDomains       = []string{"finance", "legal"}
	alertKeywords          = []string{"risk", "delay", "approval", "compliance", "incident"}
	actionKeywords         = []string{"approval", "dependency"}
	managerKeywords        = []string{"manager", "action"}
)

// previewHighKeywords drive the upload page priority preview, which
// checks fewer keywords than ExtractPriority.
var previewHighKeywords = []string{"risk", "delay", "approval"}

// domainRule maps any of its keywords to a domain.
type domainRule struct {
	keywords []string
	domain   string
}

// domainRules are evaluated in order; the first match wins.
var domainRules = []domainRule{
	{keywords: []string{"finance", "budget", "revenue"}, domain: "Finance"},
	{keywords: []string{"operations", "process", "delivery"}, domain: "Operations"},
	{keywords: []string{"hr", "hiring", "attrition"}, domain: "HR"},
	{keywords: []string{"sales", "pipeline", "deal"}, domain: "Sales"},
	{keywords: []string{"legal", "contract", "compliance"}, domain: "Legal"},
	{keywords: []string{"it", "deployment", "incident"}, domain: "IT"},
}
