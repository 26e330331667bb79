package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochMillis(t *testing.T) {
	cases := map[string]int64{
		`1700000000000`:   1700000000000,
		`"1700000000000"`: 1700000000000,
		`null`:            0,
		`"soon"`:          0,
		`-5`:              0,
		`true`:            0,
	}
	for raw, want := range cases {
		var m epochMillis
		require.NoError(t, json.Unmarshal([]byte(raw), &m), raw)
		assert.Equal(t, want, int64(m), raw)
	}
}

func TestStringList(t *testing.T) {
	var l stringList
	require.NoError(t, json.Unmarshal([]byte(`["a"," b ",""]`), &l))
	assert.Equal(t, stringList{"a", "b"}, l)

	require.NoError(t, json.Unmarshal([]byte(`"a, b,,c"`), &l))
	assert.Equal(t, stringList{"a", "b", "c"}, l)

	require.NoError(t, json.Unmarshal([]byte(`null`), &l))
	assert.Nil(t, l)

	assert.Error(t, json.Unmarshal([]byte(`5`), &l))
}

func TestFlexInt(t *testing.T) {
	var n flexInt
	require.NoError(t, json.Unmarshal([]byte(`"12"`), &n))
	assert.Equal(t, flexInt(12), n)
	require.NoError(t, json.Unmarshal([]byte(`7`), &n))
	assert.Equal(t, flexInt(7), n)
	assert.Error(t, json.Unmarshal([]byte(`"far"`), &n))
}

func TestFormList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, formList([]string{"a,b", " c "}))
	assert.Equal(t, []string{}, formList(nil))
}
