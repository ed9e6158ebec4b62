package domain

// CoreNodeID identifies the central knowledge core node.
const CoreNodeID = "core"

// NodeType classifies a knowledge graph node.
type NodeType string

// Knowledge graph node types.
const (
	NodeCore   NodeType = "core"
	NodeDomain NodeType = "domain"
)

// Relation labels a knowledge graph edge.
type Relation string

// Knowledge graph relations.
const (
	RelationCore           Relation = "core"
	RelationRiskDependency Relation = "Risk dependency"
	RelationApprovalFlow   Relation = "Approval flow"
	RelationCrossDomain    Relation = "Cross-domain"
)

// KnowledgeNode is a vertex in the knowledge graph.
type KnowledgeNode struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Type        NodeType `json:"type"`
	Domain      Domain   `json:"domain,omitempty"`
	Description string   `json:"description"`
}

// KnowledgeEdge connects two nodes.
type KnowledgeEdge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Relation Relation `json:"relation"`
}

// KnowledgeGraph is the static map of how domains influence each other.
type KnowledgeGraph struct {
	Nodes []KnowledgeNode `json:"nodes"`
	Edges []KnowledgeEdge `json:"edges"`
}

var nodeDescriptions = map[string]string{
	"core":       "AI Knowledge Core: Central intelligence layer that processes, prioritizes, and routes insights across all organizational domains.",
	"Finance":    "Finance: Budget reports, approval delays, revenue risks. Connects to Operations (risk dependency) and Legal (approval flow).",
	"Operations": "Operations: Process delays, vendor dependencies, delivery risks. Receives influence from Finance, Sales, IT.",
	"HR":         "HR: Hiring status, attrition signals, policy updates. Connects to Legal for approval flow.",
	"Sales":      "Sales: Pipeline status, target gaps, deal risks. Cross-domain influence on Operations.",
	"Legal":      "Legal: Contract approvals, compliance alerts, review bottlenecks. Approval flow to Finance and HR.",
	"IT":         "IT: Deployment updates, incident reports, security notices. Risk dependency with Operations.",
}

// DefaultKnowledgeGraph returns the core node, one node per domain linked
// to the core, and the fixed cross-domain edges.
func DefaultKnowledgeGraph() KnowledgeGraph {
	g := KnowledgeGraph{
		Nodes: []KnowledgeNode{{
			ID:          CoreNodeID,
			Label:       "Knowledge Core",
			Type:        NodeCore,
			Description: nodeDescriptions[CoreNodeID],
		}},
	}
	for _, d := range AllDomains() {
		g.Nodes = append(g.Nodes, KnowledgeNode{
			ID:          string(d),
			Label:       string(d),
			Type:        NodeDomain,
			Domain:      d,
			Description: nodeDescriptions[string(d)],
		})
		g.Edges = append(g.Edges, KnowledgeEdge{Source: CoreNodeID, Target: string(d), Relation: RelationCore})
	}
	g.Edges = append(g.Edges,
		KnowledgeEdge{Source: string(DomainFinance), Target: string(DomainOperations), Relation: RelationRiskDependency},
		KnowledgeEdge{Source: string(DomainLegal), Target: string(DomainFinance), Relation: RelationApprovalFlow},
		KnowledgeEdge{Source: string(DomainSales), Target: string(DomainOperations), Relation: RelationCrossDomain},
		KnowledgeEdge{Source: string(DomainHR), Target: string(DomainLegal), Relation: RelationApprovalFlow},
		KnowledgeEdge{Source: string(DomainIT), Target: string(DomainOperations), Relation: RelationRiskDependency},
	)
	return g
}

// Node returns the node with the given ID.
func (g *KnowledgeGraph) Node(id string) (*KnowledgeNode, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Neighbours returns the node itself followed by every node joined to it
// by a cross-domain edge. Core links are not followed.
func (g *KnowledgeGraph) Neighbours(id string) []string {
	if _, ok := g.Node(id); !ok {
		return nil
	}
	out := []string{id}
	seen := map[string]bool{id: true}
	for _, e := range g.Edges {
		if e.Relation == RelationCore {
			continue
		}
		var other string
		switch id {
		case e.Source:
			other = e.Target
		case e.Target:
			other = e.Source
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
	}
	return out
}

// EdgesFor returns every cross-domain edge touching the node.
func (g *KnowledgeGraph) EdgesFor(id string) []KnowledgeEdge {
	var out []KnowledgeEdge
	for _, e := range g.Edges {
		if e.Relation == RelationCore {
			continue
		}
		if e.Source == id || e.Target == id {
			out = append(out, e)
		}
	}
	return out
}
