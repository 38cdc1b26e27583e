package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern_WrapsValueAsSubstringMatch(t *testing.T) {
	assert.Equal(t, "%lee%", containsPattern("lee"))
	assert.Equal(t, "%Lee Chan%", containsPattern("Lee Chan"))
}

func TestContainsPattern_EscapesLikeWildcards(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "bare percent matches nothing extra", value: "%", want: `%\%%`},
		{name: "underscore is literal", value: "a_b", want: `%a\_b%`},
		{name: "backslash is literal", value: `a\b`, want: `%a\\b%`},
		{name: "mixed wildcards", value: `100%_done`, want: `%100\%\_done%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.value))
		})
	}
}

func TestDayStart_TruncatesToUTCMidnight(t *testing.T) {
	offset := time.FixedZone("UTC+3", 3*60*60)
	in := time.Date(2023, 6, 15, 17, 45, 30, 0, offset)

	got := dayStart(in)

	assert.Equal(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestDayStart_ResolvesTheDayInUTC(t *testing.T) {
	// 2023-06-15T20:00-05:00 is already the 16th in UTC.
	offset := time.FixedZone("UTC-5", -5*60*60)
	in := time.Date(2023, 6, 15, 20, 0, 0, 0, offset)

	assert.Equal(t, time.Date(2023, 6, 16, 0, 0, 0, 0, time.UTC), dayStart(in))
}

func TestDayAfter_CoversTheWholeToDay(t *testing.T) {
	to := time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC)

	bound := dayAfter(to)

	assert.Equal(t, time.Date(2023, 6, 16, 0, 0, 0, 0, time.UTC), bound)

	lastMoment := time.Date(2023, 6, 15, 23, 59, 59, 999999999, time.UTC)
	nextDay := time.Date(2023, 6, 16, 0, 0, 0, 0, time.UTC)
	assert.True(t, lastMoment.Before(bound))
	assert.False(t, nextDay.Before(bound))
}
