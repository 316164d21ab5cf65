// Package reporter renders analysis results for people and machines.
//
// The package has two halves: the assembler projects matched rows into the
// unified fixed-column table, and the generators serialize that table (plus
// summary and audit data) as console text, JSON, CSV, or a spreadsheet.
//
// Supported output formats:
//   - Console: human-readable summary and table for terminal display
//   - JSON: structured data for programmatic consumption
//   - CSV: the unified table for spreadsheet applications
//   - XLSX: workbook output matching the legacy download files
package reporter

import (
	"fmt"

	"catalog-reconciliation-service/internal/engine"
	"catalog-reconciliation-service/internal/models"
)

// Unified report column names, in their fixed output order.
const (
	ColBadgeCode           = "BadgeCode"
	ColBadgeDescription    = "BadgeDescription"
	ColSupplierDescription = "SupplierDescription"
	ColSimilarityPercent   = "SimilarityPercent"
	ColSupplierCode        = "SupplierCode"
	ColPublicPriceERP      = "PublicPriceERP"
	ColPublicPriceSupplier = "PublicPriceSupplier"
	ColDiffAmountPublic    = "DiffAmountPublic"
	ColDiffPercentPublic   = "DiffPercentPublic"
	ColStatusPublic        = "StatusPublic"
	ColCostPriceERP        = "CostPriceERP"
	ColCostPriceSupplier   = "CostPriceSupplier"
	ColDiffAmountCost      = "DiffAmountCost"
	ColDiffPercentCost     = "DiffPercentCost"
	ColStatusCost          = "StatusCost"
)

// statusLabels maps the internal classification to the report vocabulary.
// One vocabulary for both price sides; the enum stays presentation-free.
var statusLabels = map[models.Status]string{
	models.StatusUnchanged: "sin cambios",
	models.StatusIncreased: "subió",
	models.StatusDecreased: "bajó",
	models.StatusNoInfo:    "sin información",
}

// StatusLabel returns the report label for a classification
func StatusLabel(s models.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[models.StatusNoInfo]
}

// AssembleOptions selects which optional column groups the unified table
// carries. Column order is fixed; options only include or omit groups.
type AssembleOptions struct {
	IncludeCost        bool
	IncludeSimilarity  bool
	IncludeBadgeFields bool
}

// OptionsFromResult derives the options matching what a run produced
func OptionsFromResult(result *engine.Result) *AssembleOptions {
	return &AssembleOptions{
		IncludeCost:        result.HasCost,
		IncludeSimilarity:  result.HasSimilarity,
		IncludeBadgeFields: result.HasBadgeFields,
	}
}

// UnifiedReport is the final fixed-column table. Rows align with Columns
// position by position; every cell is already rendered as display text.
type UnifiedReport struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NumRows returns the number of data rows in the report
func (r *UnifiedReport) NumRows() int {
	return len(r.Rows)
}

// Assemble projects matched rows into the unified table. Inputs are not
// mutated; the result is a fresh table. Rows keep the matched-row order.
func Assemble(rows []*engine.MatchedRow, options *AssembleOptions) *UnifiedReport {
	if options == nil {
		options = &AssembleOptions{IncludeCost: true, IncludeSimilarity: true, IncludeBadgeFields: true}
	}

	report := &UnifiedReport{
		Columns: buildColumns(options),
		Rows:    make([][]string, 0, len(rows)),
	}

	for _, row := range rows {
		report.Rows = append(report.Rows, buildRow(row, options))
	}

	return report
}

func buildColumns(options *AssembleOptions) []string {
	columns := make([]string, 0, 15)

	if options.IncludeBadgeFields {
		columns = append(columns, ColBadgeCode, ColBadgeDescription)
	}
	columns = append(columns, ColSupplierDescription)
	if options.IncludeSimilarity {
		columns = append(columns, ColSimilarityPercent)
	}
	columns = append(columns,
		ColSupplierCode,
		ColPublicPriceERP,
		ColPublicPriceSupplier,
		ColDiffAmountPublic,
		ColDiffPercentPublic,
		ColStatusPublic,
	)
	if options.IncludeCost {
		columns = append(columns,
			ColCostPriceERP,
			ColCostPriceSupplier,
			ColDiffAmountCost,
			ColDiffPercentCost,
			ColStatusCost,
		)
	}

	return columns
}

func buildRow(row *engine.MatchedRow, options *AssembleOptions) []string {
	cells := make([]string, 0, 15)

	if options.IncludeBadgeFields {
		cells = append(cells, row.ERP.BadgeCode, row.ERP.BadgeDescription)
	}
	cells = append(cells, row.Supplier.Description)
	if options.IncludeSimilarity {
		cells = append(cells, fmt.Sprintf("%.2f", row.SimilarityPercent))
	}
	cells = append(cells,
		row.Supplier.Code,
		row.ERP.PublicPrice.StringFixed(2),
		row.Supplier.PublicPrice.StringFixed(2),
		row.DiffAmount.StringFixed(2),
		row.DiffPercent.StringFixed(2),
		StatusLabel(row.Status),
	)

	if options.IncludeCost {
		if row.Cost != nil {
			cells = append(cells,
				row.ERP.CostPrice.StringFixed(2),
				row.Cost.SupplierCost.StringFixed(2),
				row.Cost.DiffAmount.StringFixed(2),
				row.Cost.DiffPercent.StringFixed(2),
				StatusLabel(row.Cost.Status),
			)
		} else {
			// Codes absent from the cost list keep empty price cells and
			// a NoInfo status.
			cells = append(cells,
				row.ERP.CostPrice.StringFixed(2),
				"", "", "",
				StatusLabel(models.StatusNoInfo),
			)
		}
	}

	return cells
}
