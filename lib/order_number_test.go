package lib

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for range 100 {
		num, err := GenerateOrderNumber()
		require.NoError(t, err)
		assert.Regexp(t, pattern, num)
		seen[num] = true
	}

	// 100 draws from a 32-bit space should not collide
	assert.Greater(t, len(seen), 95)
}
