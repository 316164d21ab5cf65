package cmd

import (
	"fmt"
	"os"
	"strings"

	"catalog-reconciliation-service/pkg/errors"
	"catalog-reconciliation-service/pkg/logger"

	"github.com/spf13/viper"
)

// CLIErrorHandler provides user-friendly error handling for CLI operations
type CLIErrorHandler struct {
	logger  logger.Logger
	verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler() *CLIErrorHandler {
	return &CLIErrorHandler{
		logger:  logger.GetGlobalLogger().WithComponent("cli"),
		verbose: viper.GetBool("verbose"),
	}
}

// HandleError handles errors and returns the process exit code
func (h *CLIErrorHandler) HandleError(err error) int {
	if err == nil {
		return 0
	}

	h.logger.WithError(err).Error("Command failed")

	if analysisErr, ok := errors.AsAnalysisError(err); ok {
		return h.handleAnalysisError(analysisErr)
	}

	return h.handleGenericError(err)
}

// handleAnalysisError handles AnalysisError with detailed context
func (h *CLIErrorHandler) handleAnalysisError(err *errors.AnalysisError) int {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Message)

	if len(err.Context) > 0 {
		fmt.Fprintf(os.Stderr, "\nContext:\n")
		for key, value := range err.Context {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", key, value)
		}
	}

	if err.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "\nSuggestion: %s\n", err.Suggestion)
	}

	fmt.Fprintf(os.Stderr, "\n%s\n", h.getCategoryHelp(err.Category))

	if h.verbose && err.Cause != nil {
		fmt.Fprintf(os.Stderr, "\nUnderlying error: %v\n", err.Cause)
	}

	return err.GetExitCode()
}

// handleGenericError handles non-AnalysisError types
func (h *CLIErrorHandler) handleGenericError(err error) int {
	if h.isFileNotFoundError(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found\n")
		fmt.Fprintf(os.Stderr, "Suggestion: Check if the file path is correct and the file exists\n")
		return 2
	}

	if h.isPermissionError(err) {
		fmt.Fprintf(os.Stderr, "Error: Permission denied\n")
		fmt.Fprintf(os.Stderr, "Suggestion: Check file permissions and ensure you have read access\n")
		return 2
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	if !h.verbose {
		fmt.Fprintf(os.Stderr, "\nRun with --verbose for more detailed error information\n")
	}

	return 1
}

// getCategoryHelp returns category-specific help text
func (h *CLIErrorHandler) getCategoryHelp(category errors.ErrorCategory) string {
	switch category {
	case errors.CategoryInput:
		return `Input error help:
• Provide both the catalog export and the supplier public price list
• Use --erp-file and --public-file to name the required inputs
• Use 'reconciler analyze --help' to see all available options`

	case errors.CategoryLoad:
		return `Load error help:
• Check if the file exists and is readable
• Verify the file is a valid CSV or XLSX file
• Ensure the file is not empty, open in another program, or corrupted
• Ensure the file uses UTF-8 encoding for CSV input`

	case errors.CategorySchema:
		return `Schema error help:
• The file has fewer columns than the expected layout requires
• Verify you exported the complete table, not a filtered view
• Use --minimal-layout if the catalog export lacks the badge columns
• Check that the column positions match the expected export format`

	case errors.CategoryConfiguration:
		return `Configuration error help:
• Check your command-line flags and arguments
• Verify configuration file syntax if using --config
• Use 'reconciler analyze --help' to see all available options
• Try running with default settings first`

	case errors.CategoryComputation:
		return `Computation error help:
• Check data quality in your input files
• Look for rows with unexpected content in price columns
• Run with --verbose to see where the analysis failed`

	default:
		return `For more help:
• Use 'reconciler --help' for general help
• Use 'reconciler analyze --help' for command-specific help
• Check the documentation for detailed examples`
	}
}

// Error detection helpers

func (h *CLIErrorHandler) isFileNotFoundError(err error) bool {
	return os.IsNotExist(err) || strings.Contains(err.Error(), "no such file or directory")
}

func (h *CLIErrorHandler) isPermissionError(err error) bool {
	return os.IsPermission(err) ||
		strings.Contains(err.Error(), "permission denied") ||
		strings.Contains(err.Error(), "access denied")
}
