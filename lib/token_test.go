package lib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomToken(t *testing.T) {
	a, err := GenerateRandomToken()
	require.NoError(t, err)
	b, err := GenerateRandomToken()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestGenerateSKU(t *testing.T) {
	sku, err := GenerateSKU("Waxed Jacket", 6)
	require.NoError(t, err)

	parts := strings.SplitN(sku, "-", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "WAX", parts[0])
	assert.Len(t, parts[1], 6)

	// Short names keep what they have
	sku, err = GenerateSKU("Ax", 4)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sku, "AX-"))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Waxed Jacket", "waxed-jacket"},
		{"  Classic  Tee  ", "classic-tee"},
		{"Rain & Mud Boots", "rain-mud-boots"},
		{"UPPERCASE", "uppercase"},
		{"already-a-slug", "already-a-slug"},
		{"trailing!!!", "trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}
