package world

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/hex-world/internal/hex"
)

func newTestLoop(t *testing.T) (*Loop, *recordSink) {
	t.Helper()
	streamer, sink := newTestStreamer(t, 12345, 2)
	loop, err := NewLoop(streamer, NewObserverSet(), 60)
	require.NoError(t, err)
	return loop, sink
}

func TestNewLoop_Validation(t *testing.T) {
	streamer, _ := newTestStreamer(t, 1, 2)
	observers := NewObserverSet()

	_, err := NewLoop(nil, observers, 60)
	assert.Error(t, err, "цикл без стримера недопустим")

	_, err = NewLoop(streamer, nil, 60)
	assert.Error(t, err, "цикл без реестра наблюдателей недопустим")

	_, err = NewLoop(streamer, observers, 0)
	assert.Error(t, err, "нулевая частота тиков недопустима")

	_, err = NewLoop(streamer, observers, -5)
	assert.Error(t, err, "отрицательная частота тиков недопустима")
}

func TestLoop_TickAdvances(t *testing.T) {
	// Без запущенного Run StepNow вызывается напрямую
	loop, _ := newTestLoop(t)

	assert.Equal(t, uint64(0), loop.Tick())
	loop.StepNow()
	assert.Equal(t, uint64(1), loop.Tick())
	loop.StepNow()
	assert.Equal(t, uint64(2), loop.Tick())
}

func TestLoop_SyncRunsOnLoopGoroutine(t *testing.T) {
	loop, _ := newTestLoop(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	// Добавление наблюдателя и тик выполняются как одна команда
	var obs *Observer
	loop.Sync(func() {
		obs = loop.Observers().Add(hex.Point{X: 0, Y: 0})
		loop.StepNow()
	})
	require.NotNil(t, obs)

	var resident int
	loop.Sync(func() {
		resident = loop.Streamer().State().ResidentCount()
	})
	assert.Equal(t, 19, resident, "после тика с одним наблюдателем резидентно 19 чанков")
}

func TestLoop_ObserverMoveStreamsOnNextTick(t *testing.T) {
	loop, sink := newTestLoop(t)
	layout := loop.Streamer().Layout()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	var obs *Observer
	loop.Sync(func() {
		obs = loop.Observers().Add(hex.Point{X: 0, Y: 0})
		loop.StepNow()
	})

	// Телепортация через команду цикла: следующий тик выгружает старую местность
	farPos := layout.Center(hex.ChunkCenter(hex.Axial{Q: 20, R: 0}, 5))
	var moved bool
	loop.Sync(func() {
		moved = loop.Observers().Move(obs.ID, farPos)
		loop.StepNow()
	})
	require.True(t, moved)

	var hasOrigin, hasFar bool
	loop.Sync(func() {
		state := loop.Streamer().State()
		hasOrigin = state.HasChunk(hex.Axial{})
		hasFar = state.HasChunk(hex.Axial{Q: 20, R: 0})
	})

	assert.False(t, hasOrigin, "старая местность выгружена сразу после перемещения")
	assert.True(t, hasFar, "новая местность загружена на том же тике")
	assert.NotEmpty(t, sink.destroyed)
}

func TestLoop_RunStopsOnCancel(t *testing.T) {
	loop, _ := newTestLoop(t)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(stopped)
	}()

	// Убеждаемся, что цикл жив, затем останавливаем
	loop.Sync(func() {})
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("цикл не остановился после отмены контекста")
	}
}

func TestLoop_SyncAfterStop(t *testing.T) {
	loop, _ := newTestLoop(t)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(stopped)
	}()

	assert.True(t, loop.Sync(func() {}), "на живом цикле Sync возвращает true")

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("цикл не остановился после отмены контекста")
	}

	// После выхода Run команды больше не выполняются:
	// Sync обязан вернуть false, а не ждать вечно
	result := make(chan bool, 1)
	go func() {
		result <- loop.Sync(func() {})
	}()

	select {
	case ok := <-result:
		assert.False(t, ok, "Sync после остановки цикла возвращает false")
	case <-time.After(time.Second):
		t.Fatal("Sync не вернулся после остановки цикла")
	}
}

func TestLoop_TickRate(t *testing.T) {
	loop, _ := newTestLoop(t)
	assert.Equal(t, 60, loop.TickRate())
}
