// Package engine implements the reconciliation run: matching supplier
// price lists against the internal catalog, differencing, classification,
// and the unmatched-code audit.
//
// The engine is a pure function of its inputs. One call to Service.Run
// loads the configured files, cleans them, and produces a single immutable
// Result; nothing is retained between runs and a failed run returns only
// an error, never a partial result.
package engine

import (
	"context"
	"time"

	"catalog-reconciliation-service/internal/loader"
	"catalog-reconciliation-service/internal/models"
	"catalog-reconciliation-service/pkg/errors"
	"catalog-reconciliation-service/pkg/logger"
)

// Config holds the engine configuration for a service instance.
// OnProgress, when set together with ProgressReporting, is invoked after
// every completed stage with the stage name and overall percentage.
type Config struct {
	Mappings          *loader.Mappings
	IncludeSimilarity bool
	ProgressReporting bool
	OnProgress        func(stage string, percent float64)
}

// DefaultConfig returns the engine defaults: legacy column positions,
// similarity scoring on, progress reporting off
func DefaultConfig() *Config {
	return &Config{
		Mappings:          loader.DefaultMappings(),
		IncludeSimilarity: true,
		ProgressReporting: false,
	}
}

// Validate validates the engine configuration
func (c *Config) Validate() error {
	if c.Mappings == nil {
		return errors.ConfigurationError("mappings", nil, nil)
	}
	if err := c.Mappings.Validate(); err != nil {
		return errors.ConfigurationError("mappings", c.Mappings, err)
	}
	return nil
}

// Request names the input files of one analysis run. ERPPath and
// PublicPath are mandatory; CostPath is optional.
type Request struct {
	ERPPath    string
	PublicPath string
	CostPath   string
}

// InputCounts reports the raw record count per supplied source
type InputCounts struct {
	ERP    int `json:"erp"`
	Public int `json:"public"`
	Cost   int `json:"cost"`
}

// Summary aggregates the run outcome: how many rows matched and how the
// differences classify
type Summary struct {
	MatchedRows   int `json:"matched_rows"`
	Discrepancies int `json:"discrepancies"`
	Increased     int `json:"increased"`
	Decreased     int `json:"decreased"`
	Unchanged     int `json:"unchanged"`
	CostMatched   int `json:"cost_matched"`
	CostMissing   int `json:"cost_missing"`
}

// Result is the immutable outcome of one analysis run
type Result struct {
	Rows        []*MatchedRow      `json:"rows"`
	Audit       *AuditSets         `json:"audit"`
	Counts      InputCounts        `json:"counts"`
	Summary     Summary            `json:"summary"`
	Diagnostics loader.Diagnostics `json:"diagnostics,omitempty"`

	HasCost        bool      `json:"has_cost"`
	HasBadgeFields bool      `json:"has_badge_fields"`
	HasSimilarity  bool      `json:"has_similarity"`
	ProcessedAt    time.Time `json:"processed_at"`
}

// Service runs analyses. It carries configuration only; all run state
// lives in the Result.
type Service struct {
	config *Config
	logger logger.Logger
}

// NewService creates an analysis service with the given configuration
func NewService(config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Service{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("engine"),
	}, nil
}

// runStages are the progress checkpoints of one analysis run
var runStages = []string{"load_erp", "load_public", "load_cost", "match", "audit"}

// Run executes one complete analysis: load, extract, match, join, audit.
// All-or-nothing: any failure aborts the run and no partial result is
// returned.
func (s *Service) Run(ctx context.Context, req *Request) (*Result, error) {
	if req == nil || req.ERPPath == "" {
		return nil, errors.MissingRequiredInput(models.SourceERP.String())
	}
	if req.PublicPath == "" {
		return nil, errors.MissingRequiredInput(models.SourcePublic.String())
	}

	tracker := s.newTracker()

	result, err := s.run(ctx, req, tracker)
	if err != nil {
		if tracker != nil {
			tracker.CompleteWithError(err)
		}
		if analysisErr, ok := errors.AsAnalysisError(err); ok {
			return nil, analysisErr
		}
		return nil, errors.ComputationError("analysis run", err)
	}

	if tracker != nil {
		tracker.Complete()
	}
	return result, nil
}

func (s *Service) newTracker() *logger.StageTracker {
	if !s.config.ProgressReporting {
		return nil
	}
	tracker := logger.NewStageTracker("analysis", runStages, s.logger)
	if s.config.OnProgress != nil {
		tracker.OnAdvance(s.config.OnProgress)
	}
	return tracker
}

func (s *Service) run(ctx context.Context, req *Request, tracker *logger.StageTracker) (*Result, error) {
	advance := func() {
		if tracker != nil {
			tracker.Advance()
		}
	}

	erpTable, err := loader.Load(req.ERPPath)
	if err != nil {
		return nil, err
	}
	erp, erpDiags, err := loader.ExtractERP(erpTable, s.config.Mappings.ERP)
	if err != nil {
		return nil, err
	}
	advance()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	publicTable, err := loader.Load(req.PublicPath)
	if err != nil {
		return nil, err
	}
	public, publicDiags, err := loader.ExtractPublic(publicTable, s.config.Mappings.Public)
	if err != nil {
		return nil, err
	}
	advance()

	var cost []*models.CostRecord
	var costDiags loader.Diagnostics
	if req.CostPath != "" {
		costTable, err := loader.Load(req.CostPath)
		if err != nil {
			return nil, err
		}
		cost, costDiags, err = loader.ExtractCost(costTable, s.config.Mappings.Cost)
		if err != nil {
			return nil, err
		}
		if cost == nil {
			cost = []*models.CostRecord{}
		}
	}
	advance()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := Analyze(erp, public, cost, s.config)
	advance()
	advance()

	result.Diagnostics = append(append(erpDiags, publicDiags...), costDiags...)

	s.logger.WithFields(logger.Fields{
		"erp_records":    result.Counts.ERP,
		"public_records": result.Counts.Public,
		"cost_records":   result.Counts.Cost,
		"matched_rows":   result.Summary.MatchedRows,
		"discrepancies":  result.Summary.Discrepancies,
	}).Info("Analysis run completed")

	return result, nil
}

// Analyze is the pure core of the engine: given cleaned record sets it
// produces the matched rows, audit sets and summary. A nil cost slice
// means no cost file was supplied; an empty non-nil slice is a supplied
// but empty file.
func Analyze(erp []*models.ERPRecord, public []*models.PublicRecord, cost []*models.CostRecord, config *Config) *Result {
	if config == nil {
		config = DefaultConfig()
	}

	rows := MatchPublic(public, erp)

	hasBadge := config.Mappings.ERP.HasBadgeFields()
	if config.IncludeSimilarity && hasBadge {
		AttachSimilarity(rows)
	}

	hasCost := cost != nil
	if hasCost {
		JoinCost(rows, cost)
	}

	result := &Result{
		Rows:  rows,
		Audit: BuildAuditSets(erp, public, cost),
		Counts: InputCounts{
			ERP:    len(erp),
			Public: len(public),
			Cost:   len(cost),
		},
		HasCost:        hasCost,
		HasBadgeFields: hasBadge,
		HasSimilarity:  config.IncludeSimilarity && hasBadge,
		ProcessedAt:    time.Now(),
	}
	result.Summary = summarize(rows, hasCost)

	return result
}

func summarize(rows []*MatchedRow, hasCost bool) Summary {
	summary := Summary{MatchedRows: len(rows)}

	for _, row := range rows {
		switch row.Status {
		case models.StatusIncreased:
			summary.Increased++
		case models.StatusDecreased:
			summary.Decreased++
		default:
			summary.Unchanged++
		}

		if hasCost {
			if row.Cost != nil {
				summary.CostMatched++
			} else {
				summary.CostMissing++
			}
		}
	}

	summary.Discrepancies = summary.Increased + summary.Decreased
	return summary
}
