package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Formula(t *testing.T) {
	data := Generate(8, 7, 13)
	require.Len(t, data, 8)
	for i, got := range data {
		want := byte((i*7 + 13) % 256)
		assert.Equal(t, want, got, "index %d", i)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	first := Generate(4096, 11, 23)
	second := Generate(4096, 11, 23)
	assert.Equal(t, first, second)
}

func TestGenerate_SeedsDiffer(t *testing.T) {
	assert.NotEqual(t, Generate(64, 7, 13), Generate(64, 7, 14))
}

func TestGenerate_ZeroLength(t *testing.T) {
	assert.Empty(t, Generate(0, 1, 1))
}

func TestGenerate_LargeIndexNoOverflow(t *testing.T) {
	// With byte intermediates i*a would wrap long before this index.
	data := Generate(1<<20, 255, 255)
	i := 1<<20 - 1
	want := byte((uint64(i)*255 + 255) % 256)
	assert.Equal(t, want, data[i])
}
