package similarity

import (
	"math"
	"testing"
)

func TestScoreIdentical(t *testing.T) {
	if got := Score("abc", "abc"); got != 100.0 {
		t.Errorf("Score(abc, abc) = %v, expected 100.0", got)
	}
}

func TestScoreCaseAndWhitespaceInsensitive(t *testing.T) {
	if got := Score("  Filtro de Aceite ", "filtro de aceite"); got != 100.0 {
		t.Errorf("Expected normalized identical strings to score 100.0, got %v", got)
	}
}

func TestScoreEmptyAndMissing(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"", "x"},
		{"x", ""},
		{"", ""},
		{"nan", "filtro"},
		{"filtro", "NaN"},
		{"   ", "filtro"},
	}

	for _, tt := range tests {
		if got := Score(tt.a, tt.b); got != 0.0 {
			t.Errorf("Score(%q, %q) = %v, expected 0.0", tt.a, tt.b, got)
		}
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"filtro de aceite", "filtro aceite motor"},
		{"abcd", "bcde"},
		{"amortiguador delantero", "amortiguador trasero"},
	}

	for _, p := range pairs {
		ab := Score(p[0], p[1])
		ba := Score(p[1], p[0])
		if math.Abs(ab-ba) > 0.01 {
			t.Errorf("Score not symmetric for (%q, %q): %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestScoreRange(t *testing.T) {
	pairs := [][2]string{
		{"abc", "xyz"},
		{"producto", "articulo"},
		{"a", "aaaa"},
	}

	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0.0 || got > 100.0 {
			t.Errorf("Score(%q, %q) = %v out of [0,100]", p[0], p[1], got)
		}
	}
}

func TestScoreKnownRatio(t *testing.T) {
	// "abcd" vs "bcde": 3 matching characters out of 8 total, ratio 2*3/8.
	got := Score("abcd", "bcde")
	if got != 75.0 {
		t.Errorf("Score(abcd, bcde) = %v, expected 75.0", got)
	}
}

func TestScoreDisjoint(t *testing.T) {
	if got := Score("aaa", "bbb"); got != 0.0 {
		t.Errorf("Score(aaa, bbb) = %v, expected 0.0", got)
	}
}
