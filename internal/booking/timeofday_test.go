package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Run("parses HH:MM", func(t *testing.T) {
		got, err := ParseTimeOfDay("09:30")
		require.NoError(t, err)
		assert.Equal(t, TimeOfDay(9*60+30), got)
	})

	t.Run("parses HH:MM:SS and truncates seconds", func(t *testing.T) {
		got, err := ParseTimeOfDay("14:05:59")
		require.NoError(t, err)
		assert.Equal(t, TimeOfDay(14*60+5), got)
	})

	t.Run("parses midnight and end of day", func(t *testing.T) {
		start, err := ParseTimeOfDay("00:00")
		require.NoError(t, err)
		assert.Equal(t, TimeOfDay(0), start)

		end, err := ParseTimeOfDay("23:59")
		require.NoError(t, err)
		assert.Equal(t, TimeOfDay(23*60+59), end)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, input := range []string{"", "9:30", "0930", "24:00", "12:60", "ab:cd", "12:30:61", "12-30"} {
			_, err := ParseTimeOfDay(input)
			assert.ErrorIs(t, err, ErrInvalidTime, "input %q", input)
		}
	})

	t.Run("rejects inputs that only start like a time", func(t *testing.T) {
		// Right length, wrong content: nothing after a valid prefix may be
		// reinterpreted or dropped.
		for _, input := range []string{"12:3a", " 2:30", "12:34:5a", "1:304", "12:34 ", "12 34", "12:34:  "} {
			_, err := ParseTimeOfDay(input)
			assert.ErrorIs(t, err, ErrInvalidTime, "input %q", input)
		}
	})
}

func TestTimeOfDayFormatting(t *testing.T) {
	tod, err := ParseTimeOfDay("08:05")
	require.NoError(t, err)

	assert.Equal(t, "08:05:00", tod.String())
	assert.Equal(t, "08:05", tod.Short())
}

func TestOverlaps(t *testing.T) {
	at := func(s string) TimeOfDay {
		tod, err := ParseTimeOfDay(s)
		require.NoError(t, err)
		return tod
	}

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"partial overlap", "10:00", "12:00", "09:00", "11:00", true},
		{"contained range", "09:00", "17:00", "10:00", "11:00", true},
		{"identical range", "09:00", "11:00", "09:00", "11:00", true},
		{"one minute overlap", "10:59", "12:00", "09:00", "11:00", true},
		{"disjoint", "13:00", "14:00", "09:00", "11:00", false},
		{"boundary touch after", "11:00", "12:00", "09:00", "11:00", false},
		{"boundary touch before", "08:00", "09:00", "09:00", "11:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(tt.aStart), at(tt.aEnd), at(tt.bStart), at(tt.bEnd))
			assert.Equal(t, tt.want, got)

			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(at(tt.bStart), at(tt.bEnd), at(tt.aStart), at(tt.aEnd)))
		})
	}
}
