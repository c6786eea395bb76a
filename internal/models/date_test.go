package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var payload struct {
		Due  Date  `json:"due"`
		Paid *Date `json:"paid"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2024-01-10","paid":null}`), &payload))
	assert.Equal(t, "2024-01-10", payload.Due.String())
	assert.Nil(t, payload.Paid)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-01-10","paid":null}`, string(out))
}

func TestDateAcceptsTimestamps(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-05T18:30:00Z"`), &d))
	assert.Equal(t, "2024-03-05", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"05/03/2024"`), &d))
}

func TestDateScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-10", d.String())

	require.NoError(t, d.Scan([]byte("2024-02-01T00:00:00Z")))
	assert.Equal(t, "2024-02-01", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", v)

	require.NoError(t, d.Scan(nil))
	v, err = d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
