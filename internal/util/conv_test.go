package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:30:00", 1800},
		{"01:00:00", 3600},
		{"00:00:45", 45},
		{"02:15:30", 8130},
	}
	for _, c := range cases {
		got, err := ParseClockSeconds(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseClockSecondsInvalid(t *testing.T) {
	for _, in := range []string{"", "30:00", "00:60:00", "00:00:60", "aa:bb:cc", "-1:00:00"} {
		_, err := ParseClockSeconds(in)
		assert.Error(t, err, in)
	}
}

func TestMustParseUint(t *testing.T) {
	assert.EqualValues(t, 42, MustParseUint("42"))
	assert.EqualValues(t, 0, MustParseUint("not-a-number"))
	assert.EqualValues(t, 0, MustParseUint(""))
}
