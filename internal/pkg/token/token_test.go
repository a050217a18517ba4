package token

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode_SixDigits(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 200; i++ {
		c, err := NewCode()
		require.NoError(t, err)
		assert.Regexp(t, re, c)
	}
}

func TestNewChallenge_Format(t *testing.T) {
	c, err := NewChallenge("CF-VERIFY")
	require.NoError(t, err)
	assert.Regexp(t, `^CF-VERIFY-[0-9a-f]{12}$`, c)

	other, err := NewChallenge("CF-VERIFY")
	require.NoError(t, err)
	assert.NotEqual(t, c, other)
	assert.True(t, strings.HasPrefix(other, "CF-VERIFY-"))
}
