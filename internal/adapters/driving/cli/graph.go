package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/domain"
)

var graphCmd = &cobra.Command{
	Use:   "graph [node]",
	Short: "Show the knowledge graph",
	Long: `Shows how the knowledge core links the six domains and how domains
influence each other. Pass a node ("core" or a domain) to see its
description and the nodes connected to it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

var learnCmd = &cobra.Command{
	Use:   "learn [domain]",
	Short: "Show onboarding guidance for a domain",
	Long: `Shows key concepts and common processes for a domain.
Without an argument the selected role is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLearn,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(learnCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	if viewService == nil {
		return errNotConfigured("view")
	}

	graph := viewService.Graph(cmd.Context())

	if len(args) == 0 {
		header(cmd, "Knowledge Graph")
		cmd.Println("[Nodes]")
		for _, n := range graph.Nodes {
			cmd.Printf("  %-12s %s\n", n.ID, n.Label)
		}
		cmd.Println()
		cmd.Println("[Edges]")
		for _, e := range graph.Edges {
			cmd.Printf("  %s -> %s (%s)\n", e.Source, e.Target, e.Relation)
		}
		return nil
	}

	id := args[0]
	if d, err := domain.ParseDomain(id); err == nil {
		id = string(d)
	}
	node, ok := graph.Node(id)
	if !ok {
		return fmt.Errorf("%w: node %q", domain.ErrNotFound, args[0])
	}

	header(cmd, node.Label)
	cmd.Println(node.Description)
	cmd.Println()
	cmd.Printf("Highlights: %s\n", strings.Join(graph.Neighbours(node.ID), ", "))
	cmd.Println()
	cmd.Println("[Connected]")
	for _, e := range graph.EdgesFor(node.ID) {
		cmd.Printf("  %s -> %s (%s)\n", e.Source, e.Target, e.Relation)
	}
	return nil
}

func runLearn(cmd *cobra.Command, args []string) error {
	if viewService == nil {
		return errNotConfigured("view")
	}

	d, err := resolveDomainArg(args)
	if err != nil {
		return err
	}

	header(cmd, fmt.Sprintf("Learning: %s", d))
	for _, section := range viewService.Learning(cmd.Context(), d) {
		cmd.Println()
		cmd.Printf("[%s]\n", section.Title)
		cmd.Printf("  %s\n", section.Description)
		for _, item := range section.Items {
			cmd.Printf("  - %s\n", item)
		}
	}
	return nil
}
