package storelevel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatabaseStoreLevel(t *testing.T) {
	cases := map[string]DatabaseStoreLevel{
		"":       Errors,
		"Errors": Errors,
		"None":   None,
		"All":    All,
	}
	for input, want := range cases {
		got, err := ParseDatabaseStoreLevel(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseDatabaseStoreLevel("Bogus")
	assert.Error(t, err)
}

func TestDatabaseStoreLevelJSONRoundTrip(t *testing.T) {
	var level DatabaseStoreLevel
	require.NoError(t, json.Unmarshal([]byte(`"All"`), &level))
	assert.Equal(t, All, level)

	data, err := json.Marshal(level)
	require.NoError(t, err)
	assert.JSONEq(t, `"All"`, string(data))
}

func TestThresholdLevelJSONRoundTrip(t *testing.T) {
	var level ThresholdLevel
	require.NoError(t, json.Unmarshal([]byte(`"Error"`), &level))
	assert.Equal(t, ThresholdError, level)

	data, err := json.Marshal(ThresholdWarn)
	require.NoError(t, err)
	assert.JSONEq(t, `"Warn"`, string(data))
}
