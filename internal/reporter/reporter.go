package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"catalog-reconciliation-service/internal/engine"
)

// OutputFormat represents the supported report output formats
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatXLSX    OutputFormat = "xlsx"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV, FormatXLSX:
		return true
	default:
		return false
	}
}

// String returns the format name
func (f OutputFormat) String() string {
	return string(f)
}

// ReportConfig holds configuration options for report generation
type ReportConfig struct {
	Format OutputFormat `json:"format"`

	// Detail level options
	IncludeRows        bool `json:"include_rows"`
	IncludeAudit       bool `json:"include_audit"`
	IncludeDiagnostics bool `json:"include_diagnostics"`

	// Console formatting options
	MaxConsoleRows int `json:"max_console_rows"`

	// CSV options
	CSVDelimiter rune `json:"csv_delimiter"`
	CSVHeaders   bool `json:"csv_headers"`
}

// DefaultReportConfig returns a default report configuration
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:             FormatConsole,
		IncludeRows:        true,
		IncludeAudit:       true,
		IncludeDiagnostics: true,
		MaxConsoleRows:     20,
		CSVDelimiter:       ',',
		CSVHeaders:         true,
	}
}

// Validate validates the report configuration
func (c *ReportConfig) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	if c.MaxConsoleRows < 1 {
		return fmt.Errorf("max console rows must be at least 1, got %d", c.MaxConsoleRows)
	}
	return nil
}

// ReportGenerator generates analysis reports in various formats
type ReportGenerator struct {
	config *ReportConfig
}

// NewReportGenerator creates a report generator with the specified configuration
func NewReportGenerator(config *ReportConfig) (*ReportGenerator, error) {
	if config == nil {
		config = DefaultReportConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report configuration: %w", err)
	}

	return &ReportGenerator{config: config}, nil
}

// GenerateReport assembles the unified table from the result and writes the
// report to the provided writer in the configured format
func (rg *ReportGenerator) GenerateReport(result *engine.Result, writer io.Writer) error {
	if result == nil {
		return fmt.Errorf("analysis result cannot be nil")
	}

	report := Assemble(result.Rows, OptionsFromResult(result))

	switch rg.config.Format {
	case FormatConsole:
		return rg.generateConsoleReport(result, report, writer)
	case FormatJSON:
		return rg.generateJSONReport(result, report, writer)
	case FormatCSV:
		return rg.generateCSVReport(report, writer)
	case FormatXLSX:
		return rg.generateWorkbookReport(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", rg.config.Format)
	}
}

// generateConsoleReport generates a human-readable console report
func (rg *ReportGenerator) generateConsoleReport(result *engine.Result, report *UnifiedReport, writer io.Writer) error {
	fmt.Fprintf(writer, "PRICE ANALYSIS REPORT\n")
	fmt.Fprintf(writer, "Generated: %s\n\n", result.ProcessedAt.Format(time.RFC3339))

	fmt.Fprintf(writer, "=== SUMMARY ===\n")
	rg.printSummary(result, writer)
	fmt.Fprintf(writer, "\n")

	if rg.config.IncludeRows && len(report.Rows) > 0 {
		fmt.Fprintf(writer, "=== MATCHED RECORDS ===\n")
		rg.printRows(report, writer)
		fmt.Fprintf(writer, "\n")
	}

	if rg.config.IncludeAudit {
		fmt.Fprintf(writer, "=== UNMATCHED CODES ===\n")
		rg.printAudit(result, writer)
		fmt.Fprintf(writer, "\n")
	}

	if rg.config.IncludeDiagnostics && len(result.Diagnostics) > 0 {
		fmt.Fprintf(writer, "=== CLEANING DIAGNOSTICS ===\n")
		for _, d := range result.Diagnostics {
			fmt.Fprintf(writer, "  - %s\n", d.String())
		}
	}

	return nil
}

func (rg *ReportGenerator) printSummary(result *engine.Result, writer io.Writer) {
	summary := result.Summary

	fmt.Fprintf(writer, "Input records:\n")
	fmt.Fprintf(writer, "  Catalog:          %d\n", result.Counts.ERP)
	fmt.Fprintf(writer, "  Supplier public:  %d\n", result.Counts.Public)
	if result.HasCost {
		fmt.Fprintf(writer, "  Supplier cost:    %d\n", result.Counts.Cost)
	}

	fmt.Fprintf(writer, "\nPublic price comparison:\n")
	fmt.Fprintf(writer, "  Matched:       %d\n", summary.MatchedRows)
	fmt.Fprintf(writer, "  Discrepancies: %d (%.1f%%)\n",
		summary.Discrepancies, percentage(summary.Discrepancies, summary.MatchedRows))
	fmt.Fprintf(writer, "  Increased:     %d\n", summary.Increased)
	fmt.Fprintf(writer, "  Decreased:     %d\n", summary.Decreased)
	fmt.Fprintf(writer, "  Unchanged:     %d\n", summary.Unchanged)

	if result.HasCost {
		fmt.Fprintf(writer, "\nCost price comparison:\n")
		fmt.Fprintf(writer, "  With cost data:    %d\n", summary.CostMatched)
		fmt.Fprintf(writer, "  Without cost data: %d\n", summary.CostMissing)
	}
}

func (rg *ReportGenerator) printRows(report *UnifiedReport, writer io.Writer) {
	fmt.Fprintf(writer, "%s\n", strings.Join(report.Columns, " | "))

	for i, row := range report.Rows {
		if i >= rg.config.MaxConsoleRows && len(report.Rows) > rg.config.MaxConsoleRows {
			fmt.Fprintf(writer, "... and %d more\n", len(report.Rows)-rg.config.MaxConsoleRows)
			break
		}
		fmt.Fprintf(writer, "%s\n", strings.Join(row, " | "))
	}
}

func (rg *ReportGenerator) printAudit(result *engine.Result, writer io.Writer) {
	audit := result.Audit

	fmt.Fprintf(writer, "Supplier codes not in catalog (public): %d\n", len(audit.PublicNotInERP))
	for _, r := range audit.PublicNotInERP {
		fmt.Fprintf(writer, "  - %s (%s)\n", r.Code, r.Description)
	}

	fmt.Fprintf(writer, "Catalog codes not in supplier list (public): %d\n", len(audit.ERPNotInPublic))
	for _, r := range audit.ERPNotInPublic {
		fmt.Fprintf(writer, "  - %s\n", r.Code)
	}

	if !audit.HasCostAudit() {
		return
	}

	fmt.Fprintf(writer, "Supplier codes not in catalog (cost): %d\n", len(audit.CostNotInERP))
	for _, r := range audit.CostNotInERP {
		fmt.Fprintf(writer, "  - %s\n", r.Code)
	}

	fmt.Fprintf(writer, "Catalog codes not in supplier list (cost): %d\n", len(audit.ERPNotInCost))
	for _, r := range audit.ERPNotInCost {
		fmt.Fprintf(writer, "  - %s\n", r.Code)
	}
}

// generateJSONReport generates a structured JSON report
func (rg *ReportGenerator) generateJSONReport(result *engine.Result, report *UnifiedReport, writer io.Writer) error {
	output := map[string]interface{}{
		"summary":      result.Summary,
		"counts":       result.Counts,
		"processed_at": result.ProcessedAt,
	}

	if rg.config.IncludeRows {
		output["report"] = report
	}
	if rg.config.IncludeAudit && result.Audit != nil {
		output["audit"] = result.Audit
	}
	if rg.config.IncludeDiagnostics && len(result.Diagnostics) > 0 {
		output["diagnostics"] = result.Diagnostics
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// generateCSVReport writes the unified table as CSV
func (rg *ReportGenerator) generateCSVReport(report *UnifiedReport, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	csvWriter.Comma = rg.config.CSVDelimiter
	defer csvWriter.Flush()

	if rg.config.CSVHeaders {
		if err := csvWriter.Write(report.Columns); err != nil {
			return fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}

	for _, row := range report.Rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(part) / float64(total) * 100.0
}
