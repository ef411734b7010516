package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/hex-world/internal/hex"
)

func TestObserverSet_AddAssignsUniqueIDs(t *testing.T) {
	set := NewObserverSet()

	a := set.Add(hex.Point{X: 1, Y: 2})
	b := set.Add(hex.Point{X: 3, Y: 4})

	assert.NotEqual(t, a.ID, b.ID, "идентификаторы наблюдателей уникальны")
	assert.Equal(t, 2, set.Len())
}

func TestObserverSet_RemoveAndMove(t *testing.T) {
	set := NewObserverSet()
	obs := set.Add(hex.Point{})

	assert.True(t, set.Move(obs.ID, hex.Point{X: 10, Y: -5}))
	got, ok := set.Get(obs.ID)
	require.True(t, ok)
	assert.Equal(t, hex.Point{X: 10, Y: -5}, got.Position)

	assert.True(t, set.Remove(obs.ID))
	assert.Equal(t, 0, set.Len())

	// Повторные операции над удалённым наблюдателем
	assert.False(t, set.Remove(obs.ID))
	assert.False(t, set.Move(obs.ID, hex.Point{}))
	_, ok = set.Get(obs.ID)
	assert.False(t, ok)
}

func TestObserverSet_GetReturnsCopy(t *testing.T) {
	// Мутация копии не должна трогать реестр
	set := NewObserverSet()
	obs := set.Add(hex.Point{X: 1, Y: 1})

	got, ok := set.Get(obs.ID)
	require.True(t, ok)
	got.Position = hex.Point{X: 99, Y: 99}

	again, _ := set.Get(obs.ID)
	assert.Equal(t, hex.Point{X: 1, Y: 1}, again.Position)
}

func TestObserverSet_Positions(t *testing.T) {
	set := NewObserverSet()
	set.Add(hex.Point{X: 1, Y: 0})
	set.Add(hex.Point{X: 0, Y: 1})

	positions := set.Positions()
	assert.Len(t, positions, 2)
	assert.Contains(t, positions, hex.Point{X: 1, Y: 0})
	assert.Contains(t, positions, hex.Point{X: 0, Y: 1})

	all := set.All()
	assert.Len(t, all, 2)
}

func TestObserverSet_EmptyPositions(t *testing.T) {
	set := NewObserverSet()
	assert.Empty(t, set.Positions())
	assert.Empty(t, set.All())
	assert.Equal(t, 0, set.Len())
}
