// Package similarity scores textual closeness between product descriptions.
package similarity

import (
	"math"
	"strings"

	"catalog-reconciliation-service/internal/models"

	"github.com/pmezard/go-difflib/difflib"
)

// Score computes a normalized closeness percentage between two description
// strings. Both sides are lower-cased and trimmed before comparison; an
// empty or missing description on either side scores 0. The measure is the
// Ratcliff/Obershelp sequence ratio over characters, scaled to 0-100 and
// rounded to 2 decimals. Pure function, symmetric within rounding.
func Score(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == "" || b == "" || a == models.MissingIdentifier || b == models.MissingIdentifier {
		return 0.0
	}

	matcher := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return round2(matcher.Ratio() * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
