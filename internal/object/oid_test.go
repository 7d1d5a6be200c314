package object

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOid(t *testing.T) {
	hex := strings.Repeat("ab", 20)

	oid, err := ParseOid(hex, HashSHA1)
	require.NoError(t, err)
	assert.Len(t, []byte(oid), 20)
	assert.Equal(t, hex, oid.String())
}

func TestParseOid_SHA256Width(t *testing.T) {
	hex := strings.Repeat("cd", 32)

	oid, err := ParseOid(hex, HashSHA256)
	require.NoError(t, err)
	assert.Len(t, []byte(oid), 32)

	_, err = ParseOid(hex, HashSHA1)
	require.Error(t, err)
}

func TestParseOid_Invalid(t *testing.T) {
	cases := map[string]struct {
		in   string
		algo HashAlgorithm
	}{
		"non-hex":      {strings.Repeat("zz", 20), HashSHA1},
		"too short":    {strings.Repeat("ab", 19), HashSHA1},
		"too long":     {strings.Repeat("ab", 21), HashSHA1},
		"odd length":   {strings.Repeat("ab", 19) + "a", HashSHA1},
		"unknown algo": {strings.Repeat("ab", 20), HashAlgorithm("md5")},
		"empty":        {"", HashSHA1},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOid(tc.in, tc.algo)
			require.Error(t, err)
		})
	}
}

func TestOid_Equal(t *testing.T) {
	a, err := ParseOid(strings.Repeat("01", 20), HashSHA1)
	require.NoError(t, err)
	b, err := ParseOid(strings.Repeat("01", 20), HashSHA1)
	require.NoError(t, err)
	c, err := ParseOid(strings.Repeat("02", 20), HashSHA1)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
