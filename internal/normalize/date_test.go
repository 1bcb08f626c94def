package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedscope/seedscope/internal/config"
)

func TestParseDate(t *testing.T) {
	layouts := config.Default().DateLayouts

	tests := []struct {
		name   string
		raw    string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "ISO format",
			raw:    "2021-03-15",
			want:   time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "slash separated year first",
			raw:    "2021/03/15",
			want:   time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "day first",
			raw:    "15/03/2021",
			want:   time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "month name",
			raw:    "Mar 15, 2021",
			want:   time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "surrounding whitespace",
			raw:    "  2021-03-15  ",
			want:   time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "empty is null",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "unparseable is null",
			raw:    "sometime in 2021",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.raw, layouts)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, got)
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestParseDate_LayoutOrderWins(t *testing.T) {
	// 04/03/2021 is ambiguous; the configured layout order resolves it
	// day-first.
	layouts := config.Default().DateLayouts
	got, ok := ParseDate("04/03/2021", layouts)
	require.True(t, ok)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 4, got.Day())
}
