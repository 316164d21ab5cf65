package reporter

import (
	"fmt"
	"io"

	"catalog-reconciliation-service/internal/engine"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names follow the legacy download files.
const (
	SheetUnified        = "Analisis_Unificado"
	SheetPublicNotInERP = "En_Prov_No_ERP_Pub"
	SheetERPNotInPublic = "En_ERP_No_Prov_Pub"
	SheetCostNotInERP   = "En_Prov_No_ERP_Cost"
	SheetERPNotInCost   = "En_ERP_No_Prov_Cost"
)

// generateWorkbookReport writes the unified table as a single-sheet workbook
func (rg *ReportGenerator) generateWorkbookReport(report *UnifiedReport, writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetUnified); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	if err := writeSheet(f, SheetUnified, report.Columns, report.Rows); err != nil {
		return err
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteAuditWorkbook writes the unmatched-code audit as a workbook with one
// sheet per direction. Only the directions the run produced get a sheet:
// runs without a cost file omit the cost sheets entirely.
func WriteAuditWorkbook(audit *engine.AuditSets, writer io.Writer) error {
	if audit == nil {
		return fmt.Errorf("audit sets cannot be nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPublicNotInERP); err != nil {
		return fmt.Errorf("failed to name audit sheet: %w", err)
	}

	publicRows := make([][]string, 0, len(audit.PublicNotInERP))
	for _, r := range audit.PublicNotInERP {
		publicRows = append(publicRows, []string{r.Code, r.Description, r.PublicPrice.StringFixed(2)})
	}
	if err := writeSheet(f, SheetPublicNotInERP,
		[]string{ColSupplierCode, ColSupplierDescription, ColPublicPriceSupplier}, publicRows); err != nil {
		return err
	}

	erpPublicRows := make([][]string, 0, len(audit.ERPNotInPublic))
	for _, r := range audit.ERPNotInPublic {
		erpPublicRows = append(erpPublicRows, []string{r.Code, r.PublicPrice.StringFixed(2)})
	}
	if err := addSheet(f, SheetERPNotInPublic,
		[]string{ColSupplierCode, ColPublicPriceERP}, erpPublicRows); err != nil {
		return err
	}

	if audit.HasCostAudit() {
		costRows := make([][]string, 0, len(audit.CostNotInERP))
		for _, r := range audit.CostNotInERP {
			costRows = append(costRows, []string{r.Code, r.CostPrice.StringFixed(2)})
		}
		if err := addSheet(f, SheetCostNotInERP,
			[]string{ColSupplierCode, ColCostPriceSupplier}, costRows); err != nil {
			return err
		}

		erpCostRows := make([][]string, 0, len(audit.ERPNotInCost))
		for _, r := range audit.ERPNotInCost {
			erpCostRows = append(erpCostRows, []string{r.Code, r.CostPrice.StringFixed(2)})
		}
		if err := addSheet(f, SheetERPNotInCost,
			[]string{ColSupplierCode, ColCostPriceERP}, erpCostRows); err != nil {
			return err
		}
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write audit workbook: %w", err)
	}
	return nil
}

func addSheet(f *excelize.File, name string, headers []string, rows [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	return writeSheet(f, name, headers, rows)
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write sheet %s row %d: %w", sheet, row, err)
	}
	return nil
}
