package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewState_OffsetsDeterministic(t *testing.T) {
	// Смещения полей шума — чистая функция сида
	a := NewState(12345)
	b := NewState(12345)

	assert.Equal(t, a.Offset1, b.Offset1, "Offset1 должен совпадать при одном сиде")
	assert.Equal(t, a.Offset2, b.Offset2, "Offset2 должен совпадать при одном сиде")

	c := NewState(54321)
	assert.NotEqual(t, a.Offset1, c.Offset1, "разные сиды дают разные смещения")
}

func TestNewState_OffsetRanges(t *testing.T) {
	for _, seed := range []int64{0, 1, -7, 12345, 1 << 40} {
		s := NewState(seed)
		assert.GreaterOrEqual(t, s.Offset1, 0.0)
		assert.Less(t, s.Offset1, 1000.0, "Offset1 выбирается из [0, 1000)")
		assert.GreaterOrEqual(t, s.Offset2, 0.0)
		assert.Less(t, s.Offset2, 2000.0, "Offset2 выбирается из [0, 2000)")
	}
}

func TestState_ClaimSpawnGeneration(t *testing.T) {
	s := NewState(1)
	assert.Equal(t, SpawnPending, s.Spawn())

	// Переход одноразовый: true только первому вызвавшему
	assert.True(t, s.ClaimSpawnGeneration())
	assert.Equal(t, SpawnDone, s.Spawn())

	assert.False(t, s.ClaimSpawnGeneration())
	assert.False(t, s.ClaimSpawnGeneration())
	assert.Equal(t, SpawnDone, s.Spawn())
}

func TestSpawnState_String(t *testing.T) {
	assert.Equal(t, "pending", SpawnPending.String())
	assert.Equal(t, "done", SpawnDone.String())
	assert.Equal(t, "unknown", SpawnState(99).String())
}
