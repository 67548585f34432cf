package boundary_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nwidger/go-mail/boundary"
)

func TestGenerateIsBodySafe(t *testing.T) {
	for i := 0; i < 100; i++ {
		b := boundary.Generate()
		assert.Len(t, b, 44)
		assert.NotContains(t, b, "\r")
		assert.NotContains(t, b, "\n")
		assert.NotContains(t, b, " ")
		assert.False(t, strings.HasPrefix(b, "-"))
	}
}

func TestGenerateSafeAvoidsCollision(t *testing.T) {
	first := boundary.Generate()
	b := boundary.GenerateSafe(first)
	assert.NotEqual(t, first, b)
	assert.False(t, strings.Contains(first, b))
}
