package normalize

import (
	"strconv"
	"strings"
)

// magnitudes lists the recognized amount suffixes, longest spelling
// first so that "crore" is consumed before "cr" and "cr" before "c".
// Cr and Lakh are rupee scales; their presence marks the amount as INR.
var magnitudes = []struct {
	suffix string
	factor float64
	rupee  bool
}{
	{"crores", 1e7, true},
	{"crore", 1e7, true},
	{"cr", 1e7, true},
	{"lakhs", 1e5, true},
	{"lakh", 1e5, true},
	{"billions", 1e9, false},
	{"billion", 1e9, false},
	{"bn", 1e9, false},
	{"b", 1e9, false},
	{"millions", 1e6, false},
	{"million", 1e6, false},
	{"mn", 1e6, false},
	{"m", 1e6, false},
	{"thousands", 1e3, false},
	{"thousand", 1e3, false},
	{"k", 1e3, false},
	{"l", 1e5, true},
}

// ParseAmount converts a free-form funding amount into USD. It strips
// currency symbols (₹, $, textual Rs) and thousands separators, applies
// any magnitude suffix, and converts rupee-denominated amounts with the
// configured exchange rate. The suffix must immediately follow the
// numeric mantissa. The second return is false when the string cannot
// be parsed; callers treat that as amount 0 plus a diagnostic count.
func ParseAmount(raw string, exchangeRate float64) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	rupee := strings.Contains(s, "₹")
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ToLower(strings.TrimSpace(s))

	if rest, ok := strings.CutPrefix(s, "rs"); ok {
		rupee = true
		s = strings.TrimLeft(rest, ". ")
	}

	factor := 1.0
	for _, m := range magnitudes {
		if strings.HasSuffix(s, m.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, m.suffix))
			factor = m.factor
			if m.rupee {
				rupee = true
			}
			break
		}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0, false
	}

	value *= factor
	if rupee {
		value *= exchangeRate
	}
	return value, true
}
