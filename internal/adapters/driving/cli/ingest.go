package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

var (
	ingestDepartment string
	ingestDomain     string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file...>",
	Short: "Classify files and add them to the dashboard",
	Long: `Reads each file, extracts its text and classifies it into an insight.
High priority documents that mention a risk, delay, approval, compliance
issue or incident also raise an alert.

Supported formats: plain text, markdown, CSV, TSV, JSON, HTML and email (.eml).
The domain is detected from the content unless --domain is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestDepartment, "department", "d", "", "department label for the documents")
	ingestCmd.Flags().StringVar(&ingestDomain, "domain", "", "domain for the documents, skipping detection")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if intakeService == nil {
		return errNotConfigured("intake")
	}

	d, err := parseDomainFlag(ingestDomain)
	if err != nil {
		return err
	}
	opts := driving.IntakeOptions{Department: ingestDepartment, Domain: d}

	failed := 0
	for _, path := range args {
		result, err := intakeService.IngestFile(cmd.Context(), path, opts)
		if err != nil {
			failed++
			cmd.PrintErrf("  %s: %v\n", path, err)
			continue
		}
		printIngestResult(cmd, result)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func printIngestResult(cmd *cobra.Command, result *driving.IngestResult) {
	skipped := make(map[string]bool, len(result.Skipped))
	for _, id := range result.Skipped {
		skipped[id] = true
	}

	for i := range result.Documents {
		doc := &result.Documents[i]
		target := string(doc.Domain)
		if target == "" {
			target = "no domain"
		}
		if skipped[doc.ID] {
			cmd.Printf("Stored %s (%s), not classified: empty content\n", doc.Name, target)
			continue
		}
		cmd.Printf("Ingested %s -> %s\n", doc.Name, target)
	}
	for i := range result.Insights {
		cmd.Printf("  Insight: %s [%s] for %s\n",
			result.Insights[i].Title, priorityLabel(result.Insights[i].Priority), joinRoles(result.Insights[i].RelevanceRoles))
	}
	for i := range result.Alerts {
		cmd.Printf("  Alert raised: %s [%s]\n", result.Alerts[i].ID, severityLabel(result.Alerts[i].Severity))
	}
}
