package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserID_RoundTrip(t *testing.T) {
	id := NewUserID()

	got, err := ParseUserID(id.String())
	require.NoError(t, err)
	assert.True(t, got.Equal(id))
	assert.False(t, got.IsZero())
}

func TestParseUserID_Invalid(t *testing.T) {
	_, err := ParseUserID("not-a-uuid")
	require.Error(t, err)
}

func TestUserID_JSON(t *testing.T) {
	id, err := ParseUserID("6f1c1e0a-9d0a-4c55-8a46-3f4f1b6a2d10")
	require.NoError(t, err)

	b, err := json.Marshal([]UserID{id})
	require.NoError(t, err)
	assert.JSONEq(t, `["6f1c1e0a-9d0a-4c55-8a46-3f4f1b6a2d10"]`, string(b))

	var back []UserID
	require.NoError(t, json.Unmarshal(b, &back))
	require.Len(t, back, 1)
	assert.True(t, back[0].Equal(id))
}

func TestUserID_ScanValue(t *testing.T) {
	id := NewUserID()

	v, err := id.Value()
	require.NoError(t, err)

	var scanned UserID
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, id, scanned)

	require.NoError(t, scanned.Scan([]byte(id.String())))
	assert.Equal(t, id, scanned)
}

func TestContainsUserID(t *testing.T) {
	a, b := NewUserID(), NewUserID()

	assert.True(t, ContainsUserID([]UserID{a, b}, b))
	assert.False(t, ContainsUserID([]UserID{a}, b))
	assert.False(t, ContainsUserID(nil, a))
}
