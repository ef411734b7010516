package world

import (
	"fmt"

	"github.com/annel0/hex-world/internal/hex"
)

const (
	// chunkKeyMultiplier разводит q и r по непересекающимся десятичным разрядам
	chunkKeyMultiplier int64 = 10_000_000

	// MaxChunkCoord — граница игровой области: внутри |q|,|r| <= MaxChunkCoord
	// ключи чанков инъективны. Поведение за границей не определено,
	// поэтому выход за неё — нарушение инварианта, а не рабочий режим.
	MaxChunkCoord = 1_000_000
)

// ChunkKey отображает координату чанка в плотный целочисленный ключ:
// key = q * 10^7 + r. Координаты за пределами MaxChunkCoord вызывают панику —
// тихое наложение двух чанков на один ключ недопустимо.
func ChunkKey(c hex.Axial) int64 {
	if c.Q < -MaxChunkCoord || c.Q > MaxChunkCoord || c.R < -MaxChunkCoord || c.R > MaxChunkCoord {
		panic(fmt.Sprintf("координата чанка (%d, %d) вне границы ±%d", c.Q, c.R, MaxChunkCoord))
	}
	return int64(c.Q)*chunkKeyMultiplier + int64(c.R)
}
