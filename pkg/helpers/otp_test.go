package helpers

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenCode_Range(t *testing.T) {
	for i := 0; i < 500; i++ {
		c, err := GenCode()
		require.NoError(t, err)
		require.Len(t, c, 4)
		n, err := strconv.Atoi(c)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}

func TestValidPhone(t *testing.T) {
	cases := map[string]bool{
		"0501234567":  true,
		"0529999999":  true,
		"050123456":   false,
		"05012345678": false,
		"0601234567":  false,
		"05o1234567":  false,
		"":            false,
		"+972501234":  false,
	}
	for phone, want := range cases {
		assert.Equal(t, want, ValidPhone(phone), phone)
	}
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "050*****67", MaskPhone("0501234567"))
	assert.Equal(t, "***", MaskPhone("05"))
}
