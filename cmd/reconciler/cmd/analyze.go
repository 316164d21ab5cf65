package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"catalog-reconciliation-service/cmd/reconciler/config"
	"catalog-reconciliation-service/internal/engine"
	"catalog-reconciliation-service/internal/reporter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the analyze command
var (
	erpFile    string
	publicFile string
	costFile   string

	outputFormat string
	outputFile   string
	auditFile    string

	showProgress  bool
	noSimilarity  bool
	minimalLayout bool

	columnOverrides = map[string]*int{
		"erp-code":           new(int),
		"erp-public-price":   new(int),
		"erp-cost-price":     new(int),
		"public-code":        new(int),
		"public-description": new(int),
		"public-price":       new(int),
		"cost-code":          new(int),
		"cost-price":         new(int),
	}
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compare catalog prices against supplier price lists",
	Long: `Analyze matches supplier price list records against the internal
catalog export by product code, computes amount and percentage differences
for public and cost prices, and reports unmatched codes in both directions.

This command requires:
- A catalog export file (CSV or XLSX)
- A supplier public price list (CSV or XLSX)
A supplier cost price list is optional.

Examples:
  # Basic analysis
  reconciler analyze --erp-file catalog.xlsx --public-file prices.csv

  # Include the cost price comparison
  reconciler analyze --erp-file catalog.xlsx --public-file prices.csv --cost-file costs.csv

  # JSON output to a file
  reconciler analyze --erp-file catalog.xlsx --public-file prices.csv \
    --output-format json --output-file report.json

  # Spreadsheet report plus the unmatched-code audit workbook
  reconciler analyze --erp-file catalog.xlsx --public-file prices.csv \
    --output-format xlsx --output-file report.xlsx --audit-file audit.xlsx

  # Catalog export without the badge columns
  reconciler analyze --erp-file minimal.csv --public-file prices.csv --minimal-layout`,

	PreRunE: validateAnalyzeFlags,
	RunE:    runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVarP(&erpFile, "erp-file", "e", "", "path to the catalog export file (required)")
	analyzeCmd.Flags().StringVarP(&publicFile, "public-file", "p", "", "path to the supplier public price list (required)")
	analyzeCmd.Flags().StringVarP(&costFile, "cost-file", "c", "", "path to the supplier cost price list (optional)")

	// Output flags
	analyzeCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json, csv, xlsx")
	analyzeCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&auditFile, "audit-file", "", "write the unmatched-code audit workbook to this path")

	// Behavior flags
	analyzeCmd.Flags().BoolVar(&showProgress, "progress", false, "show progress indicators")
	analyzeCmd.Flags().BoolVar(&noSimilarity, "no-similarity", false, "skip description similarity scoring")
	analyzeCmd.Flags().BoolVar(&minimalLayout, "minimal-layout", false, "catalog export has no badge columns")

	// Column position overrides, 0-based; -1 keeps the default layout
	for name, target := range columnOverrides {
		flagName := name + "-col"
		analyzeCmd.Flags().IntVar(target, flagName, -1, "override the 0-based column position for "+name)
		viper.BindPFlag(flagName, analyzeCmd.Flags().Lookup(flagName))
	}

	// Mark required flags
	analyzeCmd.MarkFlagRequired("erp-file")
	analyzeCmd.MarkFlagRequired("public-file")

	// Bind flags to viper
	viper.BindPFlag("erp-file", analyzeCmd.Flags().Lookup("erp-file"))
	viper.BindPFlag("public-file", analyzeCmd.Flags().Lookup("public-file"))
	viper.BindPFlag("cost-file", analyzeCmd.Flags().Lookup("cost-file"))
	viper.BindPFlag("output-format", analyzeCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", analyzeCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("audit-file", analyzeCmd.Flags().Lookup("audit-file"))
	viper.BindPFlag("progress", analyzeCmd.Flags().Lookup("progress"))
	viper.BindPFlag("no-similarity", analyzeCmd.Flags().Lookup("no-similarity"))
	viper.BindPFlag("minimal-layout", analyzeCmd.Flags().Lookup("minimal-layout"))
}

func validateAnalyzeFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	erpFile = viper.GetString("erp-file")
	publicFile = viper.GetString("public-file")
	costFile = viper.GetString("cost-file")
	outputFormat = viper.GetString("output-format")
	outputFile = viper.GetString("output-file")
	auditFile = viper.GetString("audit-file")
	showProgress = viper.GetBool("progress")
	noSimilarity = viper.GetBool("no-similarity")
	minimalLayout = viper.GetBool("minimal-layout")

	// Validate required flags
	if erpFile == "" {
		return fmt.Errorf("erp-file is required")
	}
	if publicFile == "" {
		return fmt.Errorf("public-file is required")
	}

	// Validate file existence
	if err := validateFileExists(erpFile, "catalog export file"); err != nil {
		return err
	}
	if err := validateFileExists(publicFile, "supplier public price file"); err != nil {
		return err
	}
	if costFile != "" {
		if err := validateFileExists(costFile, "supplier cost price file"); err != nil {
			return err
		}
	}

	// Validate output format
	if !reporter.OutputFormat(outputFormat).IsValid() {
		return fmt.Errorf("invalid output format '%s'. Valid formats: console, json, csv, xlsx", outputFormat)
	}

	// Validate output directories exist if specified
	for _, path := range []string{outputFile, auditFile} {
		if path == "" {
			continue
		}
		dir := filepath.Dir(path)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	// Check if file is readable
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	file.Close()

	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting analysis...\n")
		fmt.Fprintf(os.Stderr, "Catalog file: %s\n", erpFile)
		fmt.Fprintf(os.Stderr, "Public price file: %s\n", publicFile)
		if costFile != "" {
			fmt.Fprintf(os.Stderr, "Cost price file: %s\n", costFile)
		}
		fmt.Fprintf(os.Stderr, "Output format: %s\n", outputFormat)
		if outputFile != "" {
			fmt.Fprintf(os.Stderr, "Output file: %s\n", outputFile)
		}
	}

	// Create the engine configuration from CLI flags
	overrides := make(map[string]int, len(columnOverrides))
	for name := range columnOverrides {
		overrides[name] = viper.GetInt(name + "-col")
	}

	engineConfig := config.CreateEngineConfig(config.EngineOptions{
		MinimalLayout:     minimalLayout,
		IncludeSimilarity: !noSimilarity,
		ShowProgress:      showProgress,
		MappingOverrides:  overrides,
	})
	if showProgress {
		engineConfig.OnProgress = func(stage string, percent float64) {
			fmt.Fprintf(os.Stderr, "\r[%3.0f%%] %-14s", percent, stage)
		}
	}

	service, err := engine.NewService(engineConfig)
	if err != nil {
		return fmt.Errorf("failed to create analysis service: %w", err)
	}

	result, err := service.Run(ctx, &engine.Request{
		ERPPath:    erpFile,
		PublicPath: publicFile,
		CostPath:   costFile,
	})
	if showProgress {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	// Generate report
	reportConfig := config.CreateReportConfig(outputFormat)
	reportGenerator, err := reporter.NewReportGenerator(reportConfig)
	if err != nil {
		return fmt.Errorf("failed to create report generator: %w", err)
	}

	// Determine output destination
	var output *os.File
	if outputFile != "" {
		output, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer output.Close()
	} else {
		output = os.Stdout
	}

	if err := reportGenerator.GenerateReport(result, output); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	// Write the audit workbook if requested
	if auditFile != "" {
		auditOut, err := os.Create(auditFile)
		if err != nil {
			return fmt.Errorf("failed to create audit file: %w", err)
		}
		defer auditOut.Close()

		if err := reporter.WriteAuditWorkbook(result.Audit, auditOut); err != nil {
			return fmt.Errorf("failed to write audit workbook: %w", err)
		}
	}

	// Show completion message
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "\nAnalysis completed successfully.\n")
		fmt.Fprintf(os.Stderr, "Processed %d catalog, %d public, %d cost records.\n",
			result.Counts.ERP, result.Counts.Public, result.Counts.Cost)
		fmt.Fprintf(os.Stderr, "Matched %d rows: %d increased, %d decreased, %d unchanged.\n",
			result.Summary.MatchedRows, result.Summary.Increased,
			result.Summary.Decreased, result.Summary.Unchanged)
		fmt.Fprintf(os.Stderr, "Unmatched codes: %d supplier-only, %d catalog-only.\n",
			len(result.Audit.PublicNotInERP), len(result.Audit.ERPNotInPublic))
		if len(result.Diagnostics) > 0 {
			fmt.Fprintf(os.Stderr, "Recovered %d unparsable cells to zero.\n", len(result.Diagnostics))
		}
	}

	return nil
}
