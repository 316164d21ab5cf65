package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SourceKind identifies one of the three tabular inputs of an analysis run
type SourceKind string

const (
	// SourceERP is the authoritative internal catalog export
	SourceERP SourceKind = "erp"
	// SourcePublic is the supplier public-price list (B1)
	SourcePublic SourceKind = "public"
	// SourceCost is the supplier cost-price list (B2)
	SourceCost SourceKind = "cost"
)

// String returns the string representation of SourceKind
func (k SourceKind) String() string {
	return string(k)
}

// IsValid checks if the source kind is known
func (k SourceKind) IsValid() bool {
	return k == SourceERP || k == SourcePublic || k == SourceCost
}

// MissingIdentifier is the literal stand-in for an empty or absent
// identifier cell. Records carrying it still participate in joins.
const MissingIdentifier = "nan"

// Status classifies the direction of a price difference
type Status string

const (
	// StatusUnchanged means the difference is within the rounding tolerance
	StatusUnchanged Status = "UNCHANGED"
	// StatusIncreased means the supplier price is above the ERP price
	StatusIncreased Status = "INCREASED"
	// StatusDecreased means the supplier price is below the ERP price
	StatusDecreased Status = "DECREASED"
	// StatusNoInfo means the compared value was missing, so no
	// classification was possible
	StatusNoInfo Status = "NO_INFO"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the status is one of the defined values
func (s Status) IsValid() bool {
	switch s {
	case StatusUnchanged, StatusIncreased, StatusDecreased, StatusNoInfo:
		return true
	default:
		return false
	}
}

// statusTolerance absorbs 2-decimal rounding noise: differences below half
// a cent classify as unchanged.
var statusTolerance = decimal.NewFromFloat(0.005)

// ClassifyDiff classifies a signed difference into a Status.
// |d| < 0.005 is Unchanged; otherwise the sign decides.
func ClassifyDiff(d decimal.Decimal) Status {
	if d.Abs().LessThan(statusTolerance) {
		return StatusUnchanged
	}
	if d.IsPositive() {
		return StatusIncreased
	}
	return StatusDecreased
}

// ERPRecord is one cleaned row of the internal catalog.
// Badge fields are optional; sources extracted with the minimal column
// mapping leave them empty.
type ERPRecord struct {
	BadgeCode        string          `json:"badge_code,omitempty"`
	BadgeDescription string          `json:"badge_description,omitempty"`
	Code             string          `json:"code"`
	PublicPrice      decimal.Decimal `json:"public_price"`
	CostPrice        decimal.Decimal `json:"cost_price"`
}

// String returns a string representation of the ERPRecord
func (r *ERPRecord) String() string {
	return fmt.Sprintf("ERPRecord{Code: %s, Public: %s, Cost: %s}",
		r.Code, r.PublicPrice.StringFixed(2), r.CostPrice.StringFixed(2))
}

// PublicRecord is one cleaned row of the supplier public-price list
type PublicRecord struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	PublicPrice decimal.Decimal `json:"public_price"`
}

// String returns a string representation of the PublicRecord
func (r *PublicRecord) String() string {
	return fmt.Sprintf("PublicRecord{Code: %s, Price: %s}", r.Code, r.PublicPrice.StringFixed(2))
}

// CostRecord is one cleaned row of the supplier cost-price list
type CostRecord struct {
	Code      string          `json:"code"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// String returns a string representation of the CostRecord
func (r *CostRecord) String() string {
	return fmt.Sprintf("CostRecord{Code: %s, Cost: %s}", r.Code, r.CostPrice.StringFixed(2))
}

// CleanCurrency converts a raw currency-like cell into a canonical amount
// rounded to 2 decimal places. Currency symbols, thousands separators and
// surrounding whitespace are stripped before parsing. The returned bool is
// false when the cell could not be parsed and the zero default was used;
// the function itself never fails.
func CleanCurrency(value string) (decimal.Decimal, bool) {
	clean := strings.ReplaceAll(value, "$", "")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}

	return d.Round(2), true
}

// NormalizeIdentifier trims an identifier cell. Empty or missing values
// become the literal MissingIdentifier string, never an empty string.
func NormalizeIdentifier(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return MissingIdentifier
	}
	return trimmed
}

// NormalizeDescription trims a description cell, preserving its case.
// Missing descriptions normalize the same way identifiers do so the
// similarity scorer can recognize them.
func NormalizeDescription(value string) string {
	return NormalizeIdentifier(value)
}

// PercentDiff computes diff / base * 100 rounded to 2 decimals.
// A zero base yields 0.00 by convention rather than a division error;
// the sentinel keeps zero-priced catalog rows from poisoning the report.
func PercentDiff(diff, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero.Round(2)
	}
	return diff.Div(base).Mul(decimal.NewFromInt(100)).Round(2)
}
