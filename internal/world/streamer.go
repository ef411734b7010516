package world

import (
	"fmt"
	"time"

	"github.com/annel0/hex-world/internal/hex"
	"github.com/annel0/hex-world/internal/logging"
)

// Streamer поддерживает резидентное множество чанков вокруг наблюдателей.
// Единственный владелец State: резидентная карта подменяется целиком на
// границе тика и никогда не мутируется инкрементально, поэтому снаружи
// не видно частично обновлённого множества.
type Streamer struct {
	state      *State
	generator  *Generator
	sink       TileSink
	layout     hex.Layout
	radius     int // Радиус чанка в тайлах
	visibility int // Радиус видимости в чанках
	metrics    *StreamMetrics
}

// NewStreamer создаёт стример мира.
// Все зависимости обязательны: отсутствие приёмника или генератора —
// фатальная ошибка инициализации, деградированного режима нет.
func NewStreamer(state *State, generator *Generator, sink TileSink, layout hex.Layout, visibility int, metrics *StreamMetrics) (*Streamer, error) {
	if state == nil {
		return nil, fmt.Errorf("состояние мира обязательно")
	}
	if generator == nil {
		return nil, fmt.Errorf("генератор чанков обязателен")
	}
	if sink == nil {
		return nil, fmt.Errorf("приёмник размещения обязателен")
	}
	if visibility < 0 {
		return nil, fmt.Errorf("радиус видимости не может быть отрицательным")
	}
	return &Streamer{
		state:      state,
		generator:  generator,
		sink:       sink,
		layout:     layout,
		radius:     generator.Radius(),
		visibility: visibility,
		metrics:    metrics,
	}, nil
}

// Step выполняет один тик стриминга для снимка позиций наблюдателей:
// собирает желаемое множество чанков, переносит выжившие, генерирует
// новые, немедленно уничтожает вышедшие из видимости и подменяет
// резидентную карту целиком.
func (s *Streamer) Step(observers []hex.Point) {
	start := time.Now()

	desired := s.DesiredSet(observers)

	// Новая резидентная карта собирается полностью до подмены
	next := make(map[hex.Axial]*Chunk, len(desired))
	generated := 0
	for coord := range desired {
		if chunk, ok := s.state.ChunkAt(coord); ok {
			// Чанк уже резидентен и всё ещё нужен — переносим без изменений
			next[coord] = chunk
			continue
		}

		chunk := s.generator.GenerateChunk(coord)
		s.placeChunk(chunk)
		next[coord] = chunk
		generated++
	}

	// Чанки, вышедшие из видимости, уничтожаются сразу — без отсрочки
	unloaded := 0
	for _, coord := range s.state.ResidentCoords() {
		if _, keep := next[coord]; !keep {
			s.sink.DestroyChunk(coord)
			unloaded++
		}
	}

	// Старая карта отбрасывается целиком
	s.state.replaceResident(next)

	if generated > 0 || unloaded > 0 {
		logging.Debug("🌍 Stream: +%d чанков, -%d чанков, резидентно %d",
			generated, unloaded, len(next))
	}

	if s.metrics != nil {
		s.metrics.ResidentChunks.Set(float64(len(next)))
		s.metrics.ChunksGenerated.Add(float64(generated))
		s.metrics.ChunksUnloaded.Add(float64(unloaded))
		s.metrics.TickDuration.Observe(time.Since(start).Seconds())
	}
}

// DesiredSet возвращает множество чанков, которые должны быть резидентны
// для указанных позиций наблюдателей: объединение радиусов видимости
// вокруг чанка каждого наблюдателя.
func (s *Streamer) DesiredSet(observers []hex.Point) map[hex.Axial]struct{} {
	desired := make(map[hex.Axial]struct{})
	for _, pos := range observers {
		chunkCoord := s.ChunkAtPosition(pos)
		for _, coord := range hex.Range(chunkCoord, s.visibility) {
			desired[coord] = struct{}{}
		}
	}
	return desired
}

// ChunkAtPosition возвращает координату чанка, содержащего мировую позицию:
// позиция округляется до ближайшего тайла, затем применяется замкнутая
// обратная форма преобразования размещения чанков. Никаких запросов
// к размещённым объектам.
func (s *Streamer) ChunkAtPosition(p hex.Point) hex.Axial {
	tile := s.layout.AxialAt(p)
	return hex.ChunkOf(tile, s.radius)
}

// Contains сообщает, лежит ли мировая позиция внутри загруженной местности.
// Чистая проверка принадлежности по резидентной карте.
func (s *Streamer) Contains(p hex.Point) bool {
	return s.state.HasChunk(s.ChunkAtPosition(p))
}

// State возвращает состояние мира (для чтения из команд цикла)
func (s *Streamer) State() *State {
	return s.state
}

// Visibility возвращает радиус видимости в чанках
func (s *Streamer) Visibility() int {
	return s.visibility
}

// Radius возвращает радиус чанка в тайлах
func (s *Streamer) Radius() int {
	return s.radius
}

// Layout возвращает layout мира
func (s *Streamer) Layout() hex.Layout {
	return s.layout
}

// placeChunk передаёт все тайлы чанка приёмнику размещения
func (s *Streamer) placeChunk(chunk *Chunk) {
	color := chunk.Biome.Color()
	for i := range chunk.Tiles {
		tile := &chunk.Tiles[i]
		s.sink.PlaceTile(chunk.Coords, tile.Coord, tile.Type, color)

		if s.metrics != nil && tile.Entity != EntityNone {
			s.metrics.EntitiesSpawned.WithLabelValues(tile.Entity.String()).Inc()
		}
	}
}
