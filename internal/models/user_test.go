package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Response(t *testing.T) {
	u := User{
		ID:        7,
		Name:      "Lucas Garcia",
		Birthdate: time.Date(1991, time.October, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}

	resp := u.Response()

	assert.Equal(t, 7, resp.ID)
	assert.Equal(t, "Lucas Garcia", resp.Name)
	assert.Equal(t, "1991-10-01", resp.Birthdate)
	assert.True(t, resp.Active)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"name":"Lucas Garcia","birthdate":"1991-10-01","active":true}`, string(body))
}

func TestDummyState_DistinguishesMissingFromFalse(t *testing.T) {
	var missing DummyState
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.Nil(t, missing.Active)

	var off DummyState
	require.NoError(t, json.Unmarshal([]byte(`{"active":false}`), &off))
	require.NotNil(t, off.Active)
	assert.False(t, *off.Active)
}

func TestUser_TableName(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
}
