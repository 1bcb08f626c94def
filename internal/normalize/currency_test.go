package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	const rate = 0.012

	tests := []struct {
		name    string
		raw     string
		want    float64
		wantOK  bool
	}{
		{
			name:   "plain dollar amount",
			raw:    "$2500000",
			want:   2500000,
			wantOK: true,
		},
		{
			name:   "dollar with M suffix",
			raw:    "$2.5M",
			want:   2500000,
			wantOK: true,
		},
		{
			name:   "rupee crore converts with exchange rate",
			raw:    "₹50 Cr",
			want:   50 * 1e7 * rate,
			wantOK: true,
		},
		{
			name:   "textual Rs prefix",
			raw:    "Rs. 100",
			want:   100 * rate,
			wantOK: true,
		},
		{
			name:   "bare number",
			raw:    "750000",
			want:   750000,
			wantOK: true,
		},
		{
			name:   "thousands separators",
			raw:    "$1,250,000",
			want:   1250000,
			wantOK: true,
		},
		{
			name:   "K suffix",
			raw:    "500K",
			want:   500000,
			wantOK: true,
		},
		{
			name:   "B suffix",
			raw:    "$1.2B",
			want:   1200000000,
			wantOK: true,
		},
		{
			name:   "lowercase crore with space",
			raw:    "₹2 crore",
			want:   2 * 1e7 * rate,
			wantOK: true,
		},
		{
			name:   "plural crores",
			raw:    "₹75 Crores",
			want:   75 * 1e7 * rate,
			wantOK: true,
		},
		{
			name:   "lakh converts as rupee scale",
			raw:    "50 Lakh",
			want:   50 * 1e5 * rate,
			wantOK: true,
		},
		{
			name:   "spelled million",
			raw:    "$3 Million",
			want:   3000000,
			wantOK: true,
		},
		{
			name:   "bare crore implies rupees",
			raw:    "10 Cr",
			want:   10 * 1e7 * rate,
			wantOK: true,
		},
		{
			name:   "empty string fails",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "whitespace only fails",
			raw:    "   ",
			wantOK: false,
		},
		{
			name:   "undisclosed fails",
			raw:    "Undisclosed",
			wantOK: false,
		},
		{
			name:   "garbage fails",
			raw:    "N/A",
			wantOK: false,
		},
		{
			name:   "suffix without mantissa fails",
			raw:    "Cr",
			wantOK: false,
		},
		{
			name:   "negative amount fails",
			raw:    "-5M",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw, rate)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			} else {
				assert.Zero(t, got)
			}
		})
	}
}

func TestParseAmount_ExchangeRateIsExact(t *testing.T) {
	// The conversion must be the literal product, not an approximation.
	got, ok := ParseAmount("₹50 Cr", 0.012)
	assert.True(t, ok)
	assert.Equal(t, 50*1e7*0.012, got)
}
