package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserConfirmIsTerminal(t *testing.T) {
	u := &User{AccountConfirmation: AccountConfirmation{Token: "t", Code: "123456"}}
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))

	require.True(t, u.Confirm(first))
	assert.True(t, u.IsConfirmed())
	require.NotNil(t, u.AccountConfirmation.Timestamp)
	assert.Equal(t, time.UTC, u.AccountConfirmation.Timestamp.Location())

	assert.False(t, u.Confirm(first.Add(time.Hour)))
	assert.True(t, u.AccountConfirmation.Timestamp.Equal(first))
}
