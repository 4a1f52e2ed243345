package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{100, "$1.00"},
		{2499, "$24.99"},
		{150000, "$1500.00"},
		{-1250, "-$12.50"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, formatCents(tc.cents))
	}
}
