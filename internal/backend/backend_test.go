package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"desktop", "glwindow", "terminal", "headless"} {
		run, err := Lookup(name)
		require.NoError(t, err, name)
		assert.NotNil(t, run)
	}

	_, err := Lookup("vulkan")
	assert.ErrorContains(t, err, `unknown backend "vulkan"`)
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"desktop", "glwindow", "headless", "terminal"}, Names())
}

func TestConsoleSafe(t *testing.T) {
	assert.False(t, ConsoleSafe("terminal"))
	assert.True(t, ConsoleSafe("headless"))
}
