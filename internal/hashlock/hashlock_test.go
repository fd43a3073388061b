package hashlock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest(t *testing.T) {
	got := Digest("alpha")
	assert.Equal(t, "8ed3f6ad685b959ead7022518e1af76cd816f8e8ec7ccdda1ed4018e8f2223f8", got)
	assert.Len(t, got, HexLen)
	assert.Equal(t, strings.ToLower(got), got)

	// deterministic
	assert.Equal(t, got, Digest("alpha"))

	// empty secret is still total
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Digest(""))
}

func TestMatches(t *testing.T) {
	hl := Digest("swap-secret")
	assert.True(t, Matches(hl, "swap-secret"))
	assert.False(t, Matches(hl, "wrong"))
	assert.False(t, Matches(strings.ToUpper(hl), "swap-secret"))
}
