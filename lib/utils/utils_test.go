package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMax(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Min(3, 1, 2))
	assert.Equal(t, 3, Max(3, 1, 2))
	assert.Equal(t, "a", Min("b", "a"))
}

func TestCoalesce(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

func TestIsTrue(t *testing.T) {
	t.Parallel()

	assert.True(t, IsTrue("yes"))
	assert.True(t, IsTrue(" TRUE "))
	assert.False(t, IsTrue("no"))
	assert.False(t, IsTrue("0"))
	assert.False(t, IsTrue(""))
}

func TestNormalizeNewLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\nb\nc\r", NormalizeNewLines("a\r\nb\nc\r"))
}
