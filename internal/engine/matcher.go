package engine

import (
	"catalog-reconciliation-service/internal/models"
	"catalog-reconciliation-service/internal/similarity"

	"github.com/shopspring/decimal"
)

// MatchedRow is one supplier record joined to an ERP record by identifier
// equality, with the derived difference fields
type MatchedRow struct {
	Supplier *models.PublicRecord `json:"supplier"`
	ERP      *models.ERPRecord    `json:"erp"`

	DiffAmount  decimal.Decimal `json:"diff_amount"`
	DiffPercent decimal.Decimal `json:"diff_percent"`
	Status      models.Status   `json:"status"`

	// SimilarityPercent is the description closeness score; only
	// meaningful when HasSimilarity is set.
	SimilarityPercent float64 `json:"similarity_percent,omitempty"`
	HasSimilarity     bool    `json:"-"`

	// Cost is nil when no cost file was supplied or the identifier has
	// no cost-side counterpart; its rendered status is then NoInfo.
	Cost *CostMatch `json:"cost,omitempty"`
}

// CostMatch carries the cost-side difference block of a matched row
type CostMatch struct {
	SupplierCost decimal.Decimal `json:"supplier_cost"`
	DiffAmount   decimal.Decimal `json:"diff_amount"`
	DiffPercent  decimal.Decimal `json:"diff_percent"`
	Status       models.Status   `json:"status"`
}

// CostStatus returns the cost-side classification, NoInfo when the row has
// no cost block
func (r *MatchedRow) CostStatus() models.Status {
	if r.Cost == nil {
		return models.StatusNoInfo
	}
	return r.Cost.Status
}

// erpIndex maps identifier values to catalog records. Duplicate
// identifiers keep every record; the join expands them Cartesian-style,
// matching standard join semantics.
type erpIndex struct {
	byCode map[string][]*models.ERPRecord
}

func newERPIndex(records []*models.ERPRecord) *erpIndex {
	index := &erpIndex{byCode: make(map[string][]*models.ERPRecord, len(records))}
	for _, r := range records {
		index.byCode[r.Code] = append(index.byCode[r.Code], r)
	}
	return index
}

func (ix *erpIndex) get(code string) []*models.ERPRecord {
	return ix.byCode[code]
}

// MatchPublic inner-joins supplier public records to ERP records on
// identifier equality and derives the difference fields for each pair.
// Result order follows the supplier record order; duplicate identifiers
// on either side produce one row per pairing.
func MatchPublic(public []*models.PublicRecord, erp []*models.ERPRecord) []*MatchedRow {
	index := newERPIndex(erp)

	var rows []*MatchedRow
	for _, sup := range public {
		for _, cat := range index.get(sup.Code) {
			diff := sup.PublicPrice.Sub(cat.PublicPrice).Round(2)
			rows = append(rows, &MatchedRow{
				Supplier:    sup,
				ERP:         cat,
				DiffAmount:  diff,
				DiffPercent: models.PercentDiff(diff, cat.PublicPrice),
				Status:      models.ClassifyDiff(diff),
			})
		}
	}

	return rows
}

// AttachSimilarity annotates every matched row that carries both a badge
// description and a supplier description with their closeness score
func AttachSimilarity(rows []*MatchedRow) {
	for _, row := range rows {
		row.SimilarityPercent = similarity.Score(row.ERP.BadgeDescription, row.Supplier.Description)
		row.HasSimilarity = true
	}
}

// JoinCost left-joins cost supplier records onto the matched rows by
// identifier. Every row is preserved: identifiers without a cost-side
// counterpart keep a nil cost block. When the same identifier repeats in
// the cost list the first occurrence wins, keeping row count stable.
func JoinCost(rows []*MatchedRow, cost []*models.CostRecord) {
	byCode := make(map[string]*models.CostRecord, len(cost))
	for _, c := range cost {
		if _, ok := byCode[c.Code]; !ok {
			byCode[c.Code] = c
		}
	}

	for _, row := range rows {
		c, ok := byCode[row.Supplier.Code]
		if !ok {
			continue
		}

		diff := c.CostPrice.Sub(row.ERP.CostPrice).Round(2)
		row.Cost = &CostMatch{
			SupplierCost: c.CostPrice,
			DiffAmount:   diff,
			DiffPercent:  models.PercentDiff(diff, row.ERP.CostPrice),
			Status:       models.ClassifyDiff(diff),
		}
	}
}
