package weekday

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Format_OneBased(t *testing.T) {
	f := Formatter{Base: One, Locale: Russian}
	assert.Equal(t, "Пн, Ср, Пт", f.Format([]int{1, 3, 5}))
}

func TestFormatter_Format_ZeroBasedMatchesOneBased(t *testing.T) {
	zero := Formatter{Base: Zero, Locale: Russian}
	one := Formatter{Base: One, Locale: Russian}
	assert.Equal(t, one.Format([]int{1, 3, 5}), zero.Format([]int{0, 2, 4}))
}

func TestFormatter_Format_MondayFirstAndDeduplicated(t *testing.T) {
	f := Formatter{Locale: English}
	assert.Equal(t, "Mon, Wed, Sun", f.Format([]int{6, 2, 0, 2}))
}

func TestFormatter_Format_UnknownDayKeepsNumber(t *testing.T) {
	f := Formatter{Locale: English}
	assert.Equal(t, "Mon, 9", f.Format([]int{9, 0}))
}

func TestFormatter_Format_Empty(t *testing.T) {
	assert.Equal(t, "", Formatter{}.Format(nil))
}

func TestBase_WireRoundTrip(t *testing.T) {
	wire := One.ToWire([]int{0, 6})
	assert.Equal(t, []int{1, 7}, wire)
	assert.Equal(t, []int{0, 6}, One.FromWire(wire))
}

func TestBase_ToWire_NeverNil(t *testing.T) {
	assert.NotNil(t, Zero.ToWire(nil))
	assert.Nil(t, Zero.FromWire(nil))
}

func TestParseBase(t *testing.T) {
	b, err := ParseBase(1)
	require.NoError(t, err)
	assert.Equal(t, One, b)

	_, err = ParseBase(2)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		base Base
		want []int
	}{
		{"english names", "mon, wed,FRI", Zero, []int{0, 2, 4}},
		{"russian names", "пн,вс", Zero, []int{0, 6}},
		{"zero based numbers", "0,6", Zero, []int{0, 6}},
		{"one based numbers", "1,7", One, []int{0, 6}},
		{"alias", "weekend", Zero, []int{5, 6}},
		{"alias plus day", "weekdays,sat", Zero, []int{0, 1, 2, 3, 4, 5}},
		{"empty", "", Zero, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in, tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("funday", Zero)
	assert.Error(t, err)

	_, err = Parse("0", One)
	assert.Error(t, err, "0 is not a valid day when Monday is 1")

	_, err = Parse("7", Zero)
	assert.Error(t, err)
}

func TestParseLocale(t *testing.T) {
	l, err := ParseLocale("")
	require.NoError(t, err)
	assert.Equal(t, Russian, l)

	l, err = ParseLocale("EN")
	require.NoError(t, err)
	assert.Equal(t, English, l)

	_, err = ParseLocale("de")
	assert.Error(t, err)
}

func TestInactiveMarker(t *testing.T) {
	assert.Equal(t, "(выкл)", InactiveMarker(Russian))
	assert.Equal(t, "(off)", InactiveMarker(English))
}
