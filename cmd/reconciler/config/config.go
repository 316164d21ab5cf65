// Package config builds engine and reporter configurations from CLI input.
package config

import (
	"catalog-reconciliation-service/internal/engine"
	"catalog-reconciliation-service/internal/loader"
	"catalog-reconciliation-service/internal/reporter"
)

// EngineOptions carries the CLI flags that shape the engine configuration
type EngineOptions struct {
	MinimalLayout     bool
	IncludeSimilarity bool
	ShowProgress      bool

	// MappingOverrides holds per-field column position overrides keyed by
	// flag name; negative values keep the defaults.
	MappingOverrides map[string]int
}

// CreateEngineConfig creates an engine configuration with CLI overrides applied
func CreateEngineConfig(options EngineOptions) *engine.Config {
	config := engine.DefaultConfig()

	config.Mappings = CreateMappings(options.MinimalLayout, options.MappingOverrides)
	config.IncludeSimilarity = options.IncludeSimilarity
	config.ProgressReporting = options.ShowProgress

	return config
}

// CreateMappings creates column mappings with optional position overrides.
// A negative override keeps the default position.
func CreateMappings(minimal bool, overrides map[string]int) *loader.Mappings {
	mappings := loader.DefaultMappings()
	if minimal {
		mappings.ERP = loader.MinimalERPMapping()
	}

	apply := func(target *int, key string) {
		if v, ok := overrides[key]; ok && v >= 0 {
			*target = v
		}
	}

	apply(&mappings.ERP.Code, "erp-code")
	apply(&mappings.ERP.PublicPrice, "erp-public-price")
	apply(&mappings.ERP.CostPrice, "erp-cost-price")
	apply(&mappings.Public.Code, "public-code")
	apply(&mappings.Public.Description, "public-description")
	apply(&mappings.Public.PublicPrice, "public-price")
	apply(&mappings.Cost.Code, "cost-code")
	apply(&mappings.Cost.CostPrice, "cost-price")

	return mappings
}

// CreateReportConfig creates a report configuration for the specified output format
func CreateReportConfig(format string) *reporter.ReportConfig {
	config := reporter.DefaultReportConfig()

	switch format {
	case "console":
		config.Format = reporter.FormatConsole
		config.IncludeRows = true
		config.IncludeAudit = true
		config.IncludeDiagnostics = true
	case "json":
		config.Format = reporter.FormatJSON
		config.IncludeRows = true
		config.IncludeAudit = true
		config.IncludeDiagnostics = true
	case "csv":
		config.Format = reporter.FormatCSV
		config.CSVHeaders = true
		config.CSVDelimiter = ','
		// CSV carries the unified table only.
		config.IncludeAudit = false
		config.IncludeDiagnostics = false
	case "xlsx":
		config.Format = reporter.FormatXLSX
		config.IncludeAudit = false
		config.IncludeDiagnostics = false
	}

	return config
}
