package hex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTilesPerChunk(t *testing.T) {
	assert.Equal(t, 1, TilesPerChunk(0))
	assert.Equal(t, 7, TilesPerChunk(1))
	assert.Equal(t, 19, TilesPerChunk(2))
	assert.Equal(t, 91, TilesPerChunk(5), "чанк с длиной грани 6 содержит 91 тайл")
}

func TestChunkOf_InvertsChunkCenter(t *testing.T) {
	// ChunkOf(ChunkCenter(c)) == c для всех чанков и радиусов
	for _, radius := range []int{1, 2, 3, 5} {
		for q := -8; q <= 8; q++ {
			for r := -8; r <= 8; r++ {
				chunk := Axial{Q: q, R: r}
				center := ChunkCenter(chunk, radius)
				back := ChunkOf(center, radius)
				if back != chunk {
					t.Fatalf("радиус %d: центр чанка %v принадлежит чанку %v", radius, chunk, back)
				}
			}
		}
	}
}

func TestChunkOf_AllTilesOfChunk(t *testing.T) {
	// Каждый тайл чанка должен возвращаться к своему чанку
	for _, radius := range []int{1, 2, 5} {
		for q := -3; q <= 3; q++ {
			for r := -3; r <= 3; r++ {
				chunk := Axial{Q: q, R: r}
				center := ChunkCenter(chunk, radius)
				for _, tile := range Range(center, radius) {
					owner := ChunkOf(tile, radius)
					if owner != chunk {
						t.Fatalf("радиус %d: тайл %v чанка %v определён как принадлежащий %v",
							radius, tile, chunk, owner)
					}
				}
			}
		}
	}
}

func TestChunkOf_Tessellation(t *testing.T) {
	// Каждый тайл плоскости принадлежит ровно одному чанку,
	// и этот чанк содержит его в своём радиусе
	const radius = 2
	for q := -40; q <= 40; q++ {
		for r := -40; r <= 40; r++ {
			tile := Axial{Q: q, R: r}
			chunk := ChunkOf(tile, radius)
			center := ChunkCenter(chunk, radius)
			d := Distance(center, tile)
			if d > radius {
				t.Fatalf("тайл %v отнесён к чанку %v, но расстояние до центра %v равно %d > %d",
					tile, chunk, center, d, radius)
			}
		}
	}
}

func TestChunkCenter_Origin(t *testing.T) {
	assert.Equal(t, Axial{}, ChunkCenter(Axial{}, 5), "центр чанка (0,0) — тайл (0,0)")
}

func TestChunkCenter_Basis(t *testing.T) {
	// Базисные векторы решётки для радиуса R: (2R+1, -R) и (R, R+1)
	const radius = 5
	assert.Equal(t, Axial{Q: 11, R: -5}, ChunkCenter(Axial{Q: 1, R: 0}, radius))
	assert.Equal(t, Axial{Q: 5, R: 6}, ChunkCenter(Axial{Q: 0, R: 1}, radius))
	assert.Equal(t, Axial{Q: 16, R: 1}, ChunkCenter(Axial{Q: 1, R: 1}, radius))
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{7, 3, 2},
		{-7, 3, -3},
		{7, -3, -3},
		{-7, -3, 2},
		{6, 3, 2},
		{-6, 3, -2},
		{0, 5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, floorDiv(tt.a, tt.b), "floorDiv(%d, %d)", tt.a, tt.b)
	}
}

func BenchmarkChunkOf(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ChunkOf(Axial{Q: 123, R: -456}, 5)
	}
}
