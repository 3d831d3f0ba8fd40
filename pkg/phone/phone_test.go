package phone

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUSNumber(t *testing.T) {
	n, err := Parse("+14155552671")
	require.NoError(t, err)
	assert.Equal(t, "+1", n.CountryCode)
	assert.Equal(t, "US", n.ISOCode)
	assert.Contains(t, n.InternationalNumber, "415")
	assert.True(t, strings.HasPrefix(n.InternationalNumber, "+1 "))
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "+", "+12", "hello", "+999999999999999"} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, ErrInvalid, raw)
	}
}

func TestResolvePicksFirstZone(t *testing.T) {
	n, tz, err := Resolver{}.Resolve("+14155552671")
	require.NoError(t, err)
	assert.Equal(t, "US", n.ISOCode)
	assert.True(t, strings.HasPrefix(tz, "America/"), tz)

	zones := Timezones(n)
	require.NotEmpty(t, zones)
	assert.Equal(t, zones[0], tz)
}

func TestResolveInvalid(t *testing.T) {
	_, _, err := Resolver{}.Resolve("+12")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTimezonesZeroNumber(t *testing.T) {
	assert.Empty(t, Timezones(Number{}))
}

func TestResolveUsesCountryZone(t *testing.T) {
	_, west, err := Resolver{}.Resolve("+14155552671")
	require.NoError(t, err)
	_, east, err := Resolver{}.Resolve("+12125552671")
	require.NoError(t, err)

	assert.Equal(t, west, east)
	zones := CountryTimezones("US")
	require.NotEmpty(t, zones)
	assert.Equal(t, zones[0], west)
}

func TestCountryTimezones(t *testing.T) {
	assert.Equal(t, "Europe/Berlin", CountryTimezones("de")[0])
	assert.Contains(t, CountryTimezones("AU"), "Australia/Sydney")
	assert.Empty(t, CountryTimezones("XX"))
	assert.Empty(t, CountryTimezones(""))
}
