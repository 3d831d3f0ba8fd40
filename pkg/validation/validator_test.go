package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" validate:"required,min=2"`
	Consent  bool   `json:"consent" validate:"accepted"`
	Phone    string `json:"phoneNumber" validate:"required,phonedigits"`
	Email    string `json:"emailAddress" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpwd"`
}

func TestAliasesAndJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Struct(signup{Name: "A", Consent: false, Phone: "+1415", Email: "nope", Password: "weakpass"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be at least 2 characters long", details["name"])
	assert.Equal(t, "must be accepted", details["consent"])
	assert.Equal(t, "must be a phone number with country code, digits only", details["phoneNumber"])
	assert.Equal(t, "must be a valid email", details["emailAddress"])
	assert.Contains(t, details["password"], "uppercase")
}

func TestValidInputPasses(t *testing.T) {
	v := New()
	err := v.Struct(signup{Name: "Ada", Consent: true, Phone: "14155552671", Email: "ada@example.com", Password: "Str0ngP@ss"})
	assert.NoError(t, err)
}

func TestToDetailsJSONErrors(t *testing.T) {
	var s signup
	err := json.Unmarshal([]byte(`{"consent":"yes"}`), &s)
	assert.Equal(t, map[string]string{"consent": "must be of type bool"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"name":`), &s)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Nil(t, ToDetails(nil))
}

func TestStrongPasswordCountsBytes(t *testing.T) {
	v := New()

	ascii := "Aa1!" + strings.Repeat("x", 68)
	assert.NoError(t, v.Struct(signup{Name: "Ada", Consent: true, Phone: "14155552671", Email: "ada@example.com", Password: ascii}))

	// 72 runes, 140 bytes
	wide := "Aa1!" + strings.Repeat("é", 68)
	err := v.Struct(signup{Name: "Ada", Consent: true, Phone: "14155552671", Email: "ada@example.com", Password: wide})
	require.Error(t, err)
	assert.Contains(t, ToDetails(err)["password"], "72 bytes")
}
