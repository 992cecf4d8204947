package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nao1215/iconaudit/internal/config"
	"github.com/nao1215/iconaudit/internal/database"
	"github.com/nao1215/iconaudit/internal/model"
	"github.com/spf13/cobra"
)

// Constants for outcome direction and summary messages.
const (
	directionWorsened  = "worsened"
	directionImproved  = "improved"
	directionUnchanged = "unchanged"
	noIssuesMessage    = "No issues"
)

// NewCompareCmd creates the compare command.
// This command compares audit results with historical data stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [base-url]",
		Short: "Compare audit results with historical data",
		Long: `Compare displays differences between the current and previous audit results.

This command retrieves historical audit data from the database and shows:
- New issues that appeared since the last audit
- Resolved issues that are no longer present
- Changes in error and warning counts

The comparison requires at least two audits in the database for the specified
site. Use 'iconaudit audit' to perform audits and save results.

Examples:
  # Compare latest two audits for a site
  iconaudit compare https://example.com

  # List all audit history for a site
  iconaudit compare --list https://example.com

  # Output comparison in JSON format
  iconaudit compare --json https://example.com

  # List all audited sites in the database
  iconaudit compare --list-sites`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List audit history for the specified site")
	cmd.Flags().BoolP("list-sites", "L", false,
		"List all audited sites in the database")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-sites flag first (requires database but no URL)
	listSites, err := cmd.Flags().GetBool("list-sites")
	if err != nil {
		return err
	}

	// Validate arguments before opening database (unless --list-sites)
	var baseURL string
	if !listSites {
		if len(args) == 0 {
			return errors.New("base URL is required (use --list-sites to see available sites)")
		}
		baseURL = args[0]
	}

	// Use XDG data directory for database
	dbDir := config.XDGDataDir()

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listSites {
		return listAuditedSites(ctx, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listAuditHistory(ctx, db, baseURL)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, baseURL, jsonOutput)
}

// listAuditedSites lists all sites that have audit records in the database.
func listAuditedSites(ctx context.Context, db *database.AuditDB) error {
	sites, err := db.ListAuditedSites(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}

	if len(sites) == 0 {
		fmt.Println("No audited sites found in the database.")
		fmt.Println("\nUse 'iconaudit audit <base-url>' to audit a site.")
		return nil
	}

	fmt.Printf("Audited sites (%d):\n\n", len(sites))
	for _, site := range sites {
		fmt.Printf("  • %s\n", site)
	}
	fmt.Println("\nUse 'iconaudit compare --list <base-url>' to see audit history for a site.")

	return nil
}

// listAuditHistory lists all audit records for a specific site.
func listAuditHistory(ctx context.Context, db *database.AuditDB, baseURL string) error {
	runs, err := db.GetHistoryMetadata(ctx, baseURL)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Printf("No audit history found for %s\n", baseURL)
		fmt.Println("\nUse 'iconaudit audit' to audit this site.")
		return nil
	}

	fmt.Printf("Audit history for %s (%d audits):\n\n", baseURL, len(runs))
	fmt.Printf("  %-36s  %-20s  %s\n", "Run ID", "Date", "Summary")
	fmt.Println("  " + strings.Repeat("-", 70))

	for _, run := range runs {
		fmt.Printf("  %-36s  %-20s  %s\n",
			run.RunID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			formatOutcomeSummary(run.ErrorCount, run.WarningCount),
		)
	}

	fmt.Println("\nUse 'iconaudit compare <base-url>' to compare the latest two audits.")

	return nil
}

// formatOutcomeSummary formats outcome counts into a human-readable string.
func formatOutcomeSummary(errorCount, warningCount int) string {
	var parts []string
	if errorCount > 0 {
		parts = append(parts, fmt.Sprintf("E:%d", errorCount))
	}
	if warningCount > 0 {
		parts = append(parts, fmt.Sprintf("W:%d", warningCount))
	}
	if len(parts) == 0 {
		return noIssuesMessage
	}
	return strings.Join(parts, " ")
}

// runComparison performs the actual comparison between audit reports.
func runComparison(ctx context.Context, db *database.AuditDB, baseURL string, jsonOutput bool) error {
	reports, err := db.GetAuditHistory(ctx, baseURL)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no audit history found for %s", baseURL)
	}
	if len(reports) < 2 {
		return fmt.Errorf("at least 2 audits are required for comparison (found %d)", len(reports))
	}

	// Reports are ordered newest first.
	comparison := compareReports(reports[1], reports[0])

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two audit reports.
type ComparisonResult struct {
	// BaseURL is the audited site.
	BaseURL string `json:"base_url"`

	// PreviousAudit contains metadata about the previous audit.
	PreviousAudit AuditMetadata `json:"previous_audit"`

	// CurrentAudit contains metadata about the current audit.
	CurrentAudit AuditMetadata `json:"current_audit"`

	// NewIssues contains issues that are new in the current audit.
	NewIssues []IssueEntry `json:"new_issues,omitempty"`

	// ResolvedIssues contains issues from the previous audit that are no
	// longer present.
	ResolvedIssues []IssueEntry `json:"resolved_issues,omitempty"`

	// UnchangedCount is the number of issues that remain unchanged.
	UnchangedCount int `json:"unchanged_count"`

	// OutcomeChange describes the overall change between the two audits.
	OutcomeChange OutcomeChange `json:"outcome_change"`
}

// AuditMetadata contains metadata about an audit for comparison display.
type AuditMetadata struct {
	// AuditedAt is when the audit was performed.
	AuditedAt string `json:"audited_at"`

	// ErrorCount is the number of error outcomes.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warning outcomes.
	WarningCount int `json:"warning_count"`
}

// IssueEntry is one error or warning outcome attributed to its check.
type IssueEntry struct {
	// Check names the check section the issue came from.
	Check string `json:"check"`

	// Status is the outcome status.
	Status model.Status `json:"status"`

	// ID identifies the outcome kind.
	ID model.MessageID `json:"id"`

	// Text is the human-readable message.
	Text string `json:"text"`
}

// OutcomeChange describes the change in outcomes between audits.
type OutcomeChange struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// ErrorDelta is the change in error count.
	ErrorDelta int `json:"error_delta"`

	// WarningDelta is the change in warning count.
	WarningDelta int `json:"warning_delta"`
}

// compareReports compares two audit reports and generates a comparison result.
func compareReports(previous, current *model.FaviconReport) *ComparisonResult {
	result := &ComparisonResult{
		BaseURL:       current.BaseURL,
		PreviousAudit: auditMetadata(previous),
		CurrentAudit:  auditMetadata(current),
	}

	previousIssues := issueMap(previous)
	currentIssues := issueMap(current)

	// New issues (in current but not in previous)
	for key, issue := range currentIssues {
		if _, exists := previousIssues[key]; !exists {
			result.NewIssues = append(result.NewIssues, issue)
		}
	}

	// Resolved issues (in previous but not in current)
	for key, issue := range previousIssues {
		if _, exists := currentIssues[key]; !exists {
			result.ResolvedIssues = append(result.ResolvedIssues, issue)
		} else {
			result.UnchangedCount++
		}
	}

	result.OutcomeChange = calculateOutcomeChange(result.PreviousAudit, result.CurrentAudit)

	return result
}

// auditMetadata extracts comparison metadata from a report.
func auditMetadata(report *model.FaviconReport) AuditMetadata {
	return AuditMetadata{
		AuditedAt:    report.AuditedAt.Format("2006-01-02 15:04:05"),
		ErrorCount:   report.CountByStatus(model.StatusError),
		WarningCount: report.CountByStatus(model.StatusWarning),
	}
}

// issueMap indexes a report's error and warning outcomes by check and id.
// OK outcomes are excluded: their appearance and disappearance tracks the
// issues themselves, so listing them separately only adds noise.
func issueMap(report *model.FaviconReport) map[string]IssueEntry {
	issues := make(map[string]IssueEntry)
	add := func(check string, messages []model.CheckerMessage) {
		for _, msg := range messages {
			if msg.Status == model.StatusOk {
				continue
			}
			entry := IssueEntry{
				Check:  check,
				Status: msg.Status,
				ID:     msg.ID,
				Text:   msg.Text,
			}
			issues[check+"|"+string(msg.ID)] = entry
		}
	}
	add("desktop-favicon", report.Desktop.Messages)
	add("touch-icon", report.Touch.Messages)
	add("manifest-icons", report.Manifest.Messages)
	return issues
}

// calculateOutcomeChange calculates the change in outcomes between two audits.
func calculateOutcomeChange(previous, current AuditMetadata) OutcomeChange {
	change := OutcomeChange{
		ErrorDelta:   current.ErrorCount - previous.ErrorCount,
		WarningDelta: current.WarningCount - previous.WarningCount,
	}

	// Errors weigh more than warnings when deciding the direction.
	previousScore := previous.ErrorCount*10 + previous.WarningCount
	currentScore := current.ErrorCount*10 + current.WarningCount

	if currentScore < previousScore {
		change.Direction = directionImproved
	} else if currentScore > previousScore {
		change.Direction = directionWorsened
	} else {
		change.Direction = directionUnchanged
	}

	return change
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in plain text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Audit comparison for %s\n\n", result.BaseURL)

	fmt.Printf("  Previous: %s  (%s)\n",
		result.PreviousAudit.AuditedAt,
		formatOutcomeSummary(result.PreviousAudit.ErrorCount, result.PreviousAudit.WarningCount))
	fmt.Printf("  Current:  %s  (%s)\n\n",
		result.CurrentAudit.AuditedAt,
		formatOutcomeSummary(result.CurrentAudit.ErrorCount, result.CurrentAudit.WarningCount))

	fmt.Printf("  Status: %s (errors %s, warnings %s)\n",
		result.OutcomeChange.Direction,
		formatDelta(result.OutcomeChange.ErrorDelta),
		formatDelta(result.OutcomeChange.WarningDelta))

	if len(result.NewIssues) > 0 {
		fmt.Printf("\nNew issues (%d):\n", len(result.NewIssues))
		for _, issue := range result.NewIssues {
			fmt.Printf("  + [%s] %s: %s\n", issue.Status, issue.Check, issue.Text)
		}
	}

	if len(result.ResolvedIssues) > 0 {
		fmt.Printf("\nResolved issues (%d):\n", len(result.ResolvedIssues))
		for _, issue := range result.ResolvedIssues {
			fmt.Printf("  - [%s] %s: %s\n", issue.Status, issue.Check, issue.Text)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged issues: %d\n", result.UnchangedCount)
	}

	return nil
}

// formatDelta formats a count delta with an explicit sign.
func formatDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}
