package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"catalog-reconciliation-service/internal/loader"
	"catalog-reconciliation-service/internal/models"
	"catalog-reconciliation-service/pkg/errors"
)

// compactMappings is a test layout with adjacent columns so fixtures stay
// readable instead of carrying the legacy wide export.
func compactMappings() *loader.Mappings {
	return &loader.Mappings{
		ERP: &loader.ERPMapping{
			BadgeCode:        0,
			BadgeDescription: 1,
			Code:             2,
			PublicPrice:      3,
			CostPrice:        4,
			HasHeader:        true,
		},
		Public: &loader.PublicMapping{Code: 0, Description: 1, PublicPrice: 2, HasHeader: true},
		Cost:   &loader.CostMapping{Code: 0, CostPrice: 1, HasHeader: true},
	}
}

func writeTestCSV(t *testing.T, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file %s: %v", name, err)
	}
	return path
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(&Config{
		Mappings:          compactMappings(),
		IncludeSimilarity: true,
	})
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	return svc
}

func TestServiceRunFullAnalysis(t *testing.T) {
	erpPath := writeTestCSV(t, "erp.csv", []string{
		"badge,badge_desc,code,public,cost",
		"B1,filtro de aceite,100,10.00,8.00",
		"B2,bujia,200,20.00,16.00",
	})
	publicPath := writeTestCSV(t, "public.csv", []string{
		"code,desc,price",
		"100,filtro de aceite,10.50",
		"300,correa,5.00",
	})
	costPath := writeTestCSV(t, "cost.csv", []string{
		"code,cost",
		"100,$9.00",
	})

	svc := newTestService(t)
	result, err := svc.Run(context.Background(), &Request{
		ERPPath:    erpPath,
		PublicPath: publicPath,
		CostPath:   costPath,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Counts.ERP != 2 || result.Counts.Public != 2 || result.Counts.Cost != 1 {
		t.Errorf("Unexpected input counts: %+v", result.Counts)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("Expected 1 matched row, got %d", len(result.Rows))
	}

	row := result.Rows[0]
	if row.Status != models.StatusIncreased {
		t.Errorf("Expected public status %s, got %s", models.StatusIncreased, row.Status)
	}
	if row.Cost == nil {
		t.Fatal("Expected cost block for code 100")
	}
	if row.Cost.Status != models.StatusIncreased {
		t.Errorf("Expected cost status %s, got %s", models.StatusIncreased, row.Cost.Status)
	}
	if !row.HasSimilarity || row.SimilarityPercent != 100.0 {
		t.Errorf("Expected similarity 100 for identical descriptions, got %v", row.SimilarityPercent)
	}

	if !result.HasCost || !result.HasBadgeFields || !result.HasSimilarity {
		t.Errorf("Expected all feature flags set, got %+v", result)
	}

	if len(result.Audit.PublicNotInERP) != 1 || result.Audit.PublicNotInERP[0].Code != "300" {
		t.Errorf("Expected supplier code 300 unmatched, got %v", result.Audit.PublicNotInERP)
	}
	if len(result.Audit.ERPNotInPublic) != 1 || result.Audit.ERPNotInPublic[0].Code != "200" {
		t.Errorf("Expected catalog code 200 unmatched, got %v", result.Audit.ERPNotInPublic)
	}
	if !result.Audit.HasCostAudit() {
		t.Error("Expected cost audit directions to be built")
	}

	summary := result.Summary
	if summary.MatchedRows != 1 || summary.Increased != 1 || summary.Discrepancies != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if summary.CostMatched != 1 || summary.CostMissing != 0 {
		t.Errorf("Unexpected cost summary: %+v", summary)
	}
}

func TestServiceRunWithoutCost(t *testing.T) {
	erpPath := writeTestCSV(t, "erp.csv", []string{
		"badge,badge_desc,code,public,cost",
		"B1,filtro,100,10.00,8.00",
	})
	publicPath := writeTestCSV(t, "public.csv", []string{
		"code,desc,price",
		"100,filtro,10.00",
	})

	svc := newTestService(t)
	result, err := svc.Run(context.Background(), &Request{
		ERPPath:    erpPath,
		PublicPath: publicPath,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.HasCost {
		t.Error("Expected HasCost false when no cost file supplied")
	}
	if result.Rows[0].Cost != nil {
		t.Error("Expected no cost block without a cost file")
	}
	if result.Audit.HasCostAudit() {
		t.Error("Expected no cost audit without a cost file")
	}
	if result.Summary.Unchanged != 1 {
		t.Errorf("Expected 1 unchanged row, got %+v", result.Summary)
	}
}

func TestServiceRunMissingRequiredInputs(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name string
		req  *Request
	}{
		{"nil request", nil},
		{"missing erp", &Request{PublicPath: "public.csv"}},
		{"missing public", &Request{ERPPath: "erp.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Run(context.Background(), tt.req)
			if err == nil {
				t.Fatal("Expected error for incomplete request")
			}
			if !errors.HasCategory(err, errors.CategoryInput) {
				t.Errorf("Expected input category error, got %v", err)
			}
		})
	}
}

func TestServiceRunLoadFailureAbortsRun(t *testing.T) {
	publicPath := writeTestCSV(t, "public.csv", []string{
		"code,desc,price",
		"100,filtro,10.00",
	})

	svc := newTestService(t)
	result, err := svc.Run(context.Background(), &Request{
		ERPPath:    filepath.Join(t.TempDir(), "missing.csv"),
		PublicPath: publicPath,
	})
	if err == nil {
		t.Fatal("Expected error for missing catalog file")
	}
	if result != nil {
		t.Error("Failed run must not return a partial result")
	}
	if !errors.HasCategory(err, errors.CategoryLoad) {
		t.Errorf("Expected load category error, got %v", err)
	}
}

func TestServiceRunRecordsDiagnostics(t *testing.T) {
	erpPath := writeTestCSV(t, "erp.csv", []string{
		"badge,badge_desc,code,public,cost",
		"B1,filtro,100,not-a-price,8.00",
	})
	publicPath := writeTestCSV(t, "public.csv", []string{
		"code,desc,price",
		"100,filtro,10.00",
	})

	svc := newTestService(t)
	result, err := svc.Run(context.Background(), &Request{
		ERPPath:    erpPath,
		PublicPath: publicPath,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic for the unparsable price, got %d", len(result.Diagnostics))
	}
	if result.Diagnostics[0].Source != models.SourceERP {
		t.Errorf("Expected diagnostic from the catalog source, got %s", result.Diagnostics[0].Source)
	}
	// Fallback value is zero, so the supplier price reads as an increase.
	if result.Rows[0].Status != models.StatusIncreased {
		t.Errorf("Expected fallback zero base to classify as %s, got %s", models.StatusIncreased, result.Rows[0].Status)
	}
}

func TestServiceRunCancelledContext(t *testing.T) {
	erpPath := writeTestCSV(t, "erp.csv", []string{
		"badge,badge_desc,code,public,cost",
		"B1,filtro,100,10.00,8.00",
	})
	publicPath := writeTestCSV(t, "public.csv", []string{
		"code,desc,price",
		"100,filtro,10.00",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(t)
	_, err := svc.Run(ctx, &Request{ERPPath: erpPath, PublicPath: publicPath})
	if err == nil {
		t.Fatal("Expected error from cancelled context")
	}
	if !errors.HasCategory(err, errors.CategoryComputation) {
		t.Errorf("Expected cancellation to surface as a computation error, got %v", err)
	}
}

func TestServiceRunReportsProgress(t *testing.T) {
	erpPath := writeTestCSV(t, "erp.csv", []string{
		"badge,badge_desc,code,public,cost",
		"B1,filtro,100,10.00,8.00",
	})
	publicPath := writeTestCSV(t, "public.csv", []string{
		"code,desc,price",
		"100,filtro,10.00",
	})

	var stages []string
	var lastPercent float64
	svc, err := NewService(&Config{
		Mappings:          compactMappings(),
		IncludeSimilarity: true,
		ProgressReporting: true,
		OnProgress: func(stage string, percent float64) {
			stages = append(stages, stage)
			lastPercent = percent
		},
	})
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	if _, err := svc.Run(context.Background(), &Request{ERPPath: erpPath, PublicPath: publicPath}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(stages) != len(runStages) {
		t.Fatalf("Expected %d progress updates, got %d (%v)", len(runStages), len(stages), stages)
	}
	for i, stage := range runStages {
		if stages[i] != stage {
			t.Errorf("Expected stage %q at position %d, got %q", stage, i, stages[i])
		}
	}
	if lastPercent != 100.0 {
		t.Errorf("Expected final progress of 100%%, got %.0f", lastPercent)
	}
}

func TestNewServiceInvalidConfig(t *testing.T) {
	_, err := NewService(&Config{Mappings: nil})
	if err == nil {
		t.Fatal("Expected error for missing mappings")
	}
	if !errors.HasCategory(err, errors.CategoryConfiguration) {
		t.Errorf("Expected configuration category error, got %v", err)
	}
}

func TestNewServiceNilConfigDefaults(t *testing.T) {
	svc, err := NewService(nil)
	if err != nil {
		t.Fatalf("Expected nil config to fall back to defaults, got %v", err)
	}
	if svc.config.Mappings.ERP.Code != loader.DefaultERPMapping().Code {
		t.Error("Expected default mappings")
	}
}
