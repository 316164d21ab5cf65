package engine

import (
	"testing"

	"catalog-reconciliation-service/internal/models"
)

func TestBuildAuditSetsPublicPair(t *testing.T) {
	erp := []*models.ERPRecord{
		erpRecord("100", "10.00"),
		erpRecord("200", "20.00"),
	}
	public := []*models.PublicRecord{
		publicRecord("100", "10.00"),
		publicRecord("300", "30.00"),
	}

	audit := BuildAuditSets(erp, public, nil)

	if len(audit.PublicNotInERP) != 1 || audit.PublicNotInERP[0].Code != "300" {
		t.Errorf("Expected supplier code 300 in PublicNotInERP, got %v", audit.PublicNotInERP)
	}
	if len(audit.ERPNotInPublic) != 1 || audit.ERPNotInPublic[0].Code != "200" {
		t.Errorf("Expected catalog code 200 in ERPNotInPublic, got %v", audit.ERPNotInPublic)
	}
	if audit.HasCostAudit() {
		t.Error("Expected no cost audit when no cost records supplied")
	}
}

func TestBuildAuditSetsCostPair(t *testing.T) {
	erp := []*models.ERPRecord{
		erpRecord("100", "10.00"),
		erpRecord("200", "20.00"),
	}
	public := []*models.PublicRecord{publicRecord("100", "10.00")}
	cost := []*models.CostRecord{
		costRecord("100", "8.00"),
		costRecord("900", "1.00"),
	}

	audit := BuildAuditSets(erp, public, cost)

	if !audit.HasCostAudit() {
		t.Fatal("Expected cost audit directions to be built")
	}
	if len(audit.CostNotInERP) != 1 || audit.CostNotInERP[0].Code != "900" {
		t.Errorf("Expected cost code 900 in CostNotInERP, got %v", audit.CostNotInERP)
	}
	if len(audit.ERPNotInCost) != 1 || audit.ERPNotInCost[0].Code != "200" {
		t.Errorf("Expected catalog code 200 in ERPNotInCost, got %v", audit.ERPNotInCost)
	}
}

func TestBuildAuditSetsEmptyCostStillBuilds(t *testing.T) {
	erp := []*models.ERPRecord{erpRecord("100", "10.00")}
	public := []*models.PublicRecord{publicRecord("100", "10.00")}

	audit := BuildAuditSets(erp, public, []*models.CostRecord{})

	if !audit.HasCostAudit() {
		t.Fatal("Supplied but empty cost list must still build the cost directions")
	}
	if len(audit.ERPNotInCost) != 1 {
		t.Errorf("Expected every catalog record in ERPNotInCost, got %d", len(audit.ERPNotInCost))
	}
}

func TestBuildAuditSetsPreservesSourceOrder(t *testing.T) {
	erp := []*models.ERPRecord{
		erpRecord("300", "1.00"),
		erpRecord("100", "1.00"),
		erpRecord("200", "1.00"),
	}
	public := []*models.PublicRecord{
		publicRecord("500", "1.00"),
		publicRecord("400", "1.00"),
	}

	audit := BuildAuditSets(erp, public, nil)

	wantPublic := []string{"500", "400"}
	for i, code := range wantPublic {
		if audit.PublicNotInERP[i].Code != code {
			t.Errorf("PublicNotInERP[%d] = %s, expected %s", i, audit.PublicNotInERP[i].Code, code)
		}
	}

	wantERP := []string{"300", "100", "200"}
	for i, code := range wantERP {
		if audit.ERPNotInPublic[i].Code != code {
			t.Errorf("ERPNotInPublic[%d] = %s, expected %s", i, audit.ERPNotInPublic[i].Code, code)
		}
	}
}

func TestBuildAuditSetsAllMatched(t *testing.T) {
	erp := []*models.ERPRecord{erpRecord("100", "10.00")}
	public := []*models.PublicRecord{publicRecord("100", "10.00")}

	audit := BuildAuditSets(erp, public, nil)

	if audit.PublicNotInERP == nil || audit.ERPNotInPublic == nil {
		t.Fatal("Public directions must be non-nil even when empty")
	}
	if len(audit.PublicNotInERP) != 0 || len(audit.ERPNotInPublic) != 0 {
		t.Error("Expected empty audit sets when every identifier matches")
	}
}
