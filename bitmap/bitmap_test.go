package bitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAllBitsClear(t *testing.T) {
	b := New(16)
	require.Equal(t, 16, b.Len())
	for i := 0; i < 16; i++ {
		assert.False(t, b.Test(i))
	}
}

func TestSetAndTest(t *testing.T) {
	b := New(8)
	b.Set(3, true)
	assert.True(t, b.Test(3))
	assert.False(t, b.Test(2))

	b.Set(3, false)
	assert.False(t, b.Test(3))
}

func TestFindFirstFindsLowestIndex(t *testing.T) {
	b := New(8)
	b.Set(5, true)
	b.Set(2, true)
	b.Set(6, true)

	idx, ok := b.FindFirst(true, 0, 8)
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestFindFirstRespectsRange(t *testing.T) {
	b := New(8)
	b.Set(1, true)
	b.Set(5, true)

	idx, ok := b.FindFirst(true, 2, 8)
	require.True(t, ok)
	assert.Equal(t, 5, idx)
}

func TestFindFirstNoneFound(t *testing.T) {
	b := New(4)
	_, ok := b.FindFirst(true, 0, 4)
	assert.False(t, ok)
}

func TestDumpRendersBits(t *testing.T) {
	b := New(4)
	b.Set(1, true)
	b.Set(3, true)
	assert.Equal(t, "0101", b.Dump())
}
