// Package phone normalizes raw phone numbers and resolves them to IANA timezones.
package phone

import (
	"errors"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalid covers every reason a number cannot be used: unparsable input,
// a number that is not valid for its region, or one without a known timezone.
var ErrInvalid = errors.New("invalid phone number")

const unknownTimezone = "Etc/Unknown"

// Number is the structured form of a parsed phone number.
type Number struct {
	CountryCode         string // "+1"
	ISOCode             string // "US"
	InternationalNumber string // "+1 415-555-2671"

	parsed *phonenumbers.PhoneNumber
}

// Parse parses an E.164-like number. The leading "+" is expected to be present.
func Parse(raw string) (Number, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Number{}, ErrInvalid
	}
	num, err := phonenumbers.Parse(raw, "")
	if err != nil {
		return Number{}, ErrInvalid
	}
	if !phonenumbers.IsValidNumber(num) {
		return Number{}, ErrInvalid
	}
	iso := phonenumbers.GetRegionCodeForNumber(num)
	if iso == "" || iso == "ZZ" {
		return Number{}, ErrInvalid
	}
	return Number{
		CountryCode:         "+" + strconv.Itoa(int(num.GetCountryCode())),
		ISOCode:             iso,
		InternationalNumber: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
		parsed:              num,
	}, nil
}

// Timezones returns the IANA zones of the number's country.
func Timezones(n Number) []string {
	if n.parsed == nil {
		return nil
	}
	return CountryTimezones(n.ISOCode)
}

// CountryTimezones lists the IANA zones for an ISO 3166 region code. The zones
// of the region's example fixed-line and mobile numbers come first; when the
// calling code is used by this region alone the rest of the calling code's
// zones follow. The result depends on the region only, never on a subscriber
// prefix. An empty slice means the region is unknown.
func CountryTimezones(isoCode string) []string {
	isoCode = strings.ToUpper(strings.TrimSpace(isoCode))
	cc := phonenumbers.GetCountryCodeForRegion(isoCode)
	if cc == 0 {
		return nil
	}

	var out []string
	seen := map[string]bool{}
	add := func(zones []string) {
		for _, z := range zones {
			if z == "" || z == unknownTimezone || seen[z] {
				continue
			}
			seen[z] = true
			out = append(out, z)
		}
	}

	for _, typ := range []phonenumbers.PhoneNumberType{phonenumbers.FIXED_LINE, phonenumbers.MOBILE} {
		ex := phonenumbers.GetExampleNumberForType(isoCode, typ)
		if ex == nil {
			continue
		}
		if zones, err := phonenumbers.GetTimezonesForNumber(ex); err == nil {
			add(zones)
		}
	}
	if len(phonenumbers.GetRegionCodesForCountryCode(cc)) == 1 {
		if zones, err := phonenumbers.GetTimezonesForPrefix(strconv.Itoa(cc)); err == nil {
			add(zones)
		}
	}
	return out
}

// Resolver parses a number and picks its timezone.
type Resolver struct{}

// Resolve returns the normalized number and the FIRST zone of its country.
// Countries spanning several zones therefore resolve to one zone for every
// subscriber; this is a known approximation kept on purpose.
func (Resolver) Resolve(raw string) (Number, string, error) {
	n, err := Parse(raw)
	if err != nil {
		return Number{}, "", err
	}
	zones := CountryTimezones(n.ISOCode)
	if len(zones) == 0 {
		return Number{}, "", ErrInvalid
	}
	return n, zones[0], nil
}
