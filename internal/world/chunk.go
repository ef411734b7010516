package world

import (
	"github.com/annel0/hex-world/internal/hex"
)

// TileType представляет тип тайла
type TileType int

const (
	TileBasic TileType = iota // Открытый проходимый тайл
	TileWall                  // Стена
)

// String возвращает строковое имя типа тайла
func (t TileType) String() string {
	switch t {
	case TileBasic:
		return "basic"
	case TileWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Tile представляет один гекс мира.
// Каждый тайл принадлежит ровно одному чанку; Chunk — не владеющая
// обратная ссылка, устанавливаемая при генерации. Владелец тайла
// определяется по ссылке напрямую, без поиска по размещённым объектам.
type Tile struct {
	Coord  hex.Axial  // Глобальная тайловая координата
	Type   TileType   // Тип тайла
	Entity EntityKind // Сущность на тайле (EntityNone, если пусто)
	Chunk  *Chunk     // Чанк-владелец
}

// Chunk представляет гексагональный кластер тайлов — единицу загрузки мира.
// После генерации чанк не изменяется и нигде не сохраняется: повторная
// генерация с теми же координатами и сидом воспроизводит его заново.
type Chunk struct {
	Coords hex.Axial // Координаты чанка в решётке чанков
	Biome  Biome     // Биом, классифицированный по центру чанка
	Tiles  []Tile    // Тайлы в фиксированном порядке генерации
}

// TileAt возвращает тайл по глобальной координате, если он принадлежит чанку
func (c *Chunk) TileAt(coord hex.Axial) (*Tile, bool) {
	for i := range c.Tiles {
		if c.Tiles[i].Coord == coord {
			return &c.Tiles[i], true
		}
	}
	return nil, false
}

// WallCount возвращает число стен в чанке
func (c *Chunk) WallCount() int {
	count := 0
	for i := range c.Tiles {
		if c.Tiles[i].Type == TileWall {
			count++
		}
	}
	return count
}

// EntityCount возвращает число сущностей в чанке
func (c *Chunk) EntityCount() int {
	count := 0
	for i := range c.Tiles {
		if c.Tiles[i].Entity != EntityNone {
			count++
		}
	}
	return count
}
