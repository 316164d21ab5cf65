package engine

import (
	"catalog-reconciliation-service/internal/models"
)

// AuditSets holds the records present in one source but absent from the
// other, per ordered source pair. Cost directions are nil when no cost
// file was supplied. Each slice preserves the originating source order.
type AuditSets struct {
	PublicNotInERP []*models.PublicRecord `json:"public_not_in_erp"`
	ERPNotInPublic []*models.ERPRecord    `json:"erp_not_in_public"`
	CostNotInERP   []*models.CostRecord   `json:"cost_not_in_erp,omitempty"`
	ERPNotInCost   []*models.ERPRecord    `json:"erp_not_in_cost,omitempty"`
}

// HasCostAudit reports whether the cost-side audit directions were built
func (a *AuditSets) HasCostAudit() bool {
	return a.CostNotInERP != nil || a.ERPNotInCost != nil
}

// BuildAuditSets computes both set differences for the public pair and,
// when cost records are supplied (non-nil, possibly empty), for the cost
// pair as well
func BuildAuditSets(erp []*models.ERPRecord, public []*models.PublicRecord, cost []*models.CostRecord) *AuditSets {
	erpCodes := make(map[string]bool, len(erp))
	for _, r := range erp {
		erpCodes[r.Code] = true
	}

	audit := &AuditSets{
		PublicNotInERP: []*models.PublicRecord{},
		ERPNotInPublic: []*models.ERPRecord{},
	}

	publicCodes := make(map[string]bool, len(public))
	for _, r := range public {
		publicCodes[r.Code] = true
		if !erpCodes[r.Code] {
			audit.PublicNotInERP = append(audit.PublicNotInERP, r)
		}
	}
	for _, r := range erp {
		if !publicCodes[r.Code] {
			audit.ERPNotInPublic = append(audit.ERPNotInPublic, r)
		}
	}

	if cost == nil {
		return audit
	}

	audit.CostNotInERP = []*models.CostRecord{}
	audit.ERPNotInCost = []*models.ERPRecord{}

	costCodes := make(map[string]bool, len(cost))
	for _, r := range cost {
		costCodes[r.Code] = true
		if !erpCodes[r.Code] {
			audit.CostNotInERP = append(audit.CostNotInERP, r)
		}
	}
	for _, r := range erp {
		if !costCodes[r.Code] {
			audit.ERPNotInCost = append(audit.ERPNotInCost, r)
		}
	}

	return audit
}
