package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownPreset(t *testing.T) {
	blocks, err := Lookup("3.5in-1.44m")
	require.NoError(t, err)
	assert.Equal(t, uint32(360), blocks)
}

func TestLookupUnknownPreset(t *testing.T) {
	_, err := Lookup("does-not-exist")
	assert.Error(t, err)
}

func TestNamesIncludesEveryPreset(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "3.5in-1.44m")
	assert.Contains(t, names, "zip-100m")
	assert.Len(t, names, 6)
}
