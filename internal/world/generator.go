package world

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/annel0/hex-world/internal/hex"
)

// Вероятности стен по биомам
const (
	redCenterWallProb = 0.5   // Красный: центральный тайл чанка
	redAxisWallProb   = 0.68  // Красный: тайлы на локальных осях q=0, r=0, q+r=0
	redOtherWallProb  = 0.05  // Красный: остальные тайлы
	orangeWallProb    = 0.125 // Оранжевый: все тайлы
	greenCoinProb     = 0.5   // Зелёный: монета особой ветки
	greenFlatWallProb = 0.1   // Зелёный: обычная ветка
	greenDenseCutoff  = 3.0   // Зелёный: порог значения особой ветки
)

// Generator детерминированно генерирует чанки мира.
// Каждый чанк — чистая функция (координаты чанка, сид мира);
// единственное исключение — одноразовая принудительно открытая
// генерация спавн-чанка.
type Generator struct {
	state      *State
	classifier *Classifier
	layout     hex.Layout
	radius     int // Радиус чанка в тайлах (длина грани - 1)
}

// NewGenerator создаёт генератор чанков.
// Все зависимости обязательны: деградированного режима нет.
func NewGenerator(state *State, classifier *Classifier, layout hex.Layout, chunkEdge int) (*Generator, error) {
	if state == nil {
		return nil, fmt.Errorf("состояние мира обязательно")
	}
	if classifier == nil {
		return nil, fmt.Errorf("классификатор биомов обязателен")
	}
	if chunkEdge < 2 {
		return nil, fmt.Errorf("длина грани чанка должна быть не меньше 2, получено %d", chunkEdge)
	}
	return &Generator{
		state:      state,
		classifier: classifier,
		layout:     layout,
		radius:     chunkEdge - 1,
	}, nil
}

// Radius возвращает радиус чанка в тайлах
func (g *Generator) Radius() int {
	return g.radius
}

// GenerateChunk генерирует чанк по его координатам.
// Повторная генерация с теми же координатами и сидом (после того как
// состояние спавна установилось) воспроизводит идентичный набор тайлов.
func (g *Generator) GenerateChunk(coords hex.Axial) *Chunk {
	// Локальный генератор случайных чисел: уникальный сид чанка из его
	// ключа и сида мира. Поток не разделяется между чанками и не
	// переносит состояние между генерациями.
	chunkSeed := ChunkKey(coords) + g.state.Seed
	rng := rand.New(rand.NewSource(chunkSeed))

	center := hex.ChunkCenter(coords, g.radius)

	// Биом определяется один раз по мировой позиции центрального тайла
	biome := g.classifier.Classify(g.layout.Center(center))

	chunk := &Chunk{
		Coords: coords,
		Biome:  biome,
		Tiles:  make([]Tile, 0, hex.TilesPerChunk(g.radius)),
	}

	// Первая генерация начального чанка: полностью открытая площадка
	// без сущностей. Переход одноразовый; последующие генерации (0,0)
	// идут по обычным правилам биома.
	if coords == (hex.Axial{}) && g.state.ClaimSpawnGeneration() {
		for _, tileCoord := range hex.Range(center, g.radius) {
			chunk.Tiles = append(chunk.Tiles, Tile{
				Coord:  tileCoord,
				Type:   TileBasic,
				Entity: EntityNone,
				Chunk:  chunk,
			})
		}
		return chunk
	}

	// Порядок обхода hex.Range фиксирован — он задаёт детерминированную
	// последовательность розыгрышей из потока чанка
	for _, tileCoord := range hex.Range(center, g.radius) {
		dq := tileCoord.Q - center.Q
		dr := tileCoord.R - center.R

		typ := TileBasic
		if g.rollWall(rng, coords, biome, dq, dr) {
			typ = TileWall
		}

		entity := EntityNone
		if typ == TileBasic {
			entity = RollSpawn(rng, SpawnTable)
		}

		chunk.Tiles = append(chunk.Tiles, Tile{
			Coord:  tileCoord,
			Type:   typ,
			Entity: entity,
			Chunk:  chunk,
		})
	}

	return chunk
}

// rollWall применяет правило стен активного биома к тайлу
// с локальным смещением (dq, dr) от центра чанка
func (g *Generator) rollWall(rng *rand.Rand, chunkCoords hex.Axial, biome Biome, dq, dr int) bool {
	switch biome {
	case BiomeRed:
		switch {
		case dq == 0 && dr == 0:
			return rng.Float64() < redCenterWallProb
		case dq == 0 || dr == 0 || dq+dr == 0:
			return rng.Float64() < redAxisWallProb
		default:
			return rng.Float64() < redOtherWallProb
		}

	case BiomeOrange:
		return rng.Float64() < orangeWallProb

	default: // BiomeGreen
		// Особая ветка: только в чанках с чётной суммой координат
		// и при успехе независимой монеты
		if (chunkCoords.Q+chunkCoords.R)%2 == 0 && rng.Float64() < greenCoinProb {
			v := rng.Float64() +
				math.Abs(float64(g.radius-dq))/3.0 +
				math.Abs(float64(g.radius-dr))/3.0
			return v > greenDenseCutoff
		}
		return rng.Float64() < greenFlatWallProb
	}
}
