package world

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/hex-world/internal/hex"
)

func TestChunkKey_Formula(t *testing.T) {
	assert.Equal(t, int64(0), ChunkKey(hex.Axial{Q: 0, R: 0}))
	assert.Equal(t, int64(10_000_000), ChunkKey(hex.Axial{Q: 1, R: 0}))
	assert.Equal(t, int64(1), ChunkKey(hex.Axial{Q: 0, R: 1}))
	assert.Equal(t, int64(-9_999_999), ChunkKey(hex.Axial{Q: -1, R: 1}))
	assert.Equal(t, int64(30_000_005), ChunkKey(hex.Axial{Q: 3, R: 5}))
}

func TestChunkKey_UniqueWithinBound(t *testing.T) {
	// Ключи инъективны на сетке координат
	seen := make(map[int64]hex.Axial)
	for q := -100; q <= 100; q++ {
		for r := -100; r <= 100; r++ {
			coord := hex.Axial{Q: q, R: r}
			key := ChunkKey(coord)
			if prev, dup := seen[key]; dup {
				t.Fatalf("ключ %d выдан и для %v, и для %v", key, prev, coord)
			}
			seen[key] = coord
		}
	}
}

func TestChunkKey_BoundaryAccepted(t *testing.T) {
	// Граница включительно входит в допустимый диапазон
	assert.NotPanics(t, func() {
		ChunkKey(hex.Axial{Q: MaxChunkCoord, R: -MaxChunkCoord})
	})
}

func TestChunkKey_OutOfBoundPanics(t *testing.T) {
	// Выход за границу — нарушение инварианта, а не тихое наложение
	assert.Panics(t, func() {
		ChunkKey(hex.Axial{Q: MaxChunkCoord + 1, R: 0})
	}, "координата за границей должна вызывать панику")

	assert.Panics(t, func() {
		ChunkKey(hex.Axial{Q: 0, R: -MaxChunkCoord - 1})
	})
}
