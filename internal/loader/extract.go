package loader

import (
	"catalog-reconciliation-service/internal/models"
	"catalog-reconciliation-service/pkg/errors"
	"catalog-reconciliation-service/pkg/logger"
)

// cellAt returns the raw cell at index, tolerating ragged rows.
// Short rows read as empty cells; width enforcement happens once per
// table in checkWidth, against the widest row.
func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

// checkWidth verifies that the table is wide enough for the mapping
func checkWidth(table *RawTable, source models.SourceKind, maxIndex int) error {
	if cols := table.NumCols(); maxIndex >= cols {
		return errors.SchemaError(source.String(), maxIndex, cols)
	}
	return nil
}

// ExtractERP projects a raw catalog table into cleaned ERP records
func ExtractERP(table *RawTable, mapping *ERPMapping) ([]*models.ERPRecord, Diagnostics, error) {
	if mapping == nil {
		mapping = DefaultERPMapping()
	}
	if err := mapping.Validate(); err != nil {
		return nil, nil, errors.ConfigurationError("erp_mapping", mapping, err)
	}
	if err := checkWidth(table, models.SourceERP, mapping.MaxIndex()); err != nil {
		return nil, nil, err
	}

	log := logger.WithComponent("loader").WithField("source", models.SourceERP)

	var records []*models.ERPRecord
	var diags Diagnostics

	for i, row := range table.DataRows(mapping.HasHeader) {
		record := &models.ERPRecord{
			Code: models.NormalizeIdentifier(cellAt(row, mapping.Code)),
		}

		publicPrice, ok := models.CleanCurrency(cellAt(row, mapping.PublicPrice))
		if !ok {
			diags.Add(models.SourceERP, i, mapping.PublicPrice, "public_price",
				cellAt(row, mapping.PublicPrice), "unparsable currency value, defaulted to 0.00")
		}
		record.PublicPrice = publicPrice

		costPrice, ok := models.CleanCurrency(cellAt(row, mapping.CostPrice))
		if !ok {
			diags.Add(models.SourceERP, i, mapping.CostPrice, "cost_price",
				cellAt(row, mapping.CostPrice), "unparsable currency value, defaulted to 0.00")
		}
		record.CostPrice = costPrice

		if mapping.HasBadgeFields() {
			record.BadgeCode = models.NormalizeIdentifier(cellAt(row, mapping.BadgeCode))
			record.BadgeDescription = models.NormalizeDescription(cellAt(row, mapping.BadgeDescription))
		}

		records = append(records, record)
	}

	log.WithFields(logger.Fields{
		"records":     len(records),
		"diagnostics": len(diags),
	}).Debug("Extracted ERP records")

	return records, diags, nil
}

// ExtractPublic projects a raw supplier public-price table into cleaned records
func ExtractPublic(table *RawTable, mapping *PublicMapping) ([]*models.PublicRecord, Diagnostics, error) {
	if mapping == nil {
		mapping = DefaultPublicMapping()
	}
	if err := mapping.Validate(); err != nil {
		return nil, nil, errors.ConfigurationError("public_mapping", mapping, err)
	}
	if err := checkWidth(table, models.SourcePublic, mapping.MaxIndex()); err != nil {
		return nil, nil, err
	}

	log := logger.WithComponent("loader").WithField("source", models.SourcePublic)

	var records []*models.PublicRecord
	var diags Diagnostics

	for i, row := range table.DataRows(mapping.HasHeader) {
		price, ok := models.CleanCurrency(cellAt(row, mapping.PublicPrice))
		if !ok {
			diags.Add(models.SourcePublic, i, mapping.PublicPrice, "public_price",
				cellAt(row, mapping.PublicPrice), "unparsable currency value, defaulted to 0.00")
		}

		records = append(records, &models.PublicRecord{
			Code:        models.NormalizeIdentifier(cellAt(row, mapping.Code)),
			Description: models.NormalizeDescription(cellAt(row, mapping.Description)),
			PublicPrice: price,
		})
	}

	log.WithFields(logger.Fields{
		"records":     len(records),
		"diagnostics": len(diags),
	}).Debug("Extracted public supplier records")

	return records, diags, nil
}

// ExtractCost projects a raw supplier cost-price table into cleaned records
func ExtractCost(table *RawTable, mapping *CostMapping) ([]*models.CostRecord, Diagnostics, error) {
	if mapping == nil {
		mapping = DefaultCostMapping()
	}
	if err := mapping.Validate(); err != nil {
		return nil, nil, errors.ConfigurationError("cost_mapping", mapping, err)
	}
	if err := checkWidth(table, models.SourceCost, mapping.MaxIndex()); err != nil {
		return nil, nil, err
	}

	log := logger.WithComponent("loader").WithField("source", models.SourceCost)

	var records []*models.CostRecord
	var diags Diagnostics

	for i, row := range table.DataRows(mapping.HasHeader) {
		cost, ok := models.CleanCurrency(cellAt(row, mapping.CostPrice))
		if !ok {
			diags.Add(models.SourceCost, i, mapping.CostPrice, "cost_price",
				cellAt(row, mapping.CostPrice), "unparsable currency value, defaulted to 0.00")
		}

		records = append(records, &models.CostRecord{
			Code:      models.NormalizeIdentifier(cellAt(row, mapping.Code)),
			CostPrice: cost,
		})
	}

	log.WithFields(logger.Fields{
		"records":     len(records),
		"diagnostics": len(diags),
	}).Debug("Extracted cost supplier records")

	return records, diags, nil
}
