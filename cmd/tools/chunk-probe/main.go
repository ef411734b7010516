package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/annel0/hex-world/internal/hex"
	"github.com/annel0/hex-world/internal/noise"
	"github.com/annel0/hex-world/internal/world"
)

const (
	defaultSeed   = 12345
	defaultEdge   = 6
	defaultRadius = 5
)

func main() {
	var (
		seed      = flag.Int64("seed", defaultSeed, "Сид мира")
		command   = flag.String("cmd", "render", "Команда: render, stats, locate")
		q         = flag.Int("q", 0, "Координата чанка q (render)")
		r         = flag.Int("r", 0, "Координата чанка r (render)")
		radius    = flag.Int("radius", defaultRadius, "Радиус переписи в чанках (stats)")
		x         = flag.Float64("x", 0, "Мировая координата x (locate)")
		y         = flag.Float64("y", 0, "Мировая координата y (locate)")
		edge      = flag.Int("edge", defaultEdge, "Длина грани чанка в тайлах")
		size      = flag.Float64("size", 1.0, "Радиус гекса в мировых единицах")
		postSpawn = flag.Bool("post-spawn", false, "Генерировать (0,0) по обычным правилам, как при повторной загрузке")
	)
	flag.Parse()

	// Собираем генератор в точности как сервер, но без цикла и стримера:
	// все команды работают на чистой функции (сид, координата) -> чанк
	state := world.NewState(*seed)
	if *postSpawn {
		state.ClaimSpawnGeneration()
	}

	classifier, err := world.NewClassifier(noise.NewGenerator(*seed), state.Offset1, state.Offset2)
	if err != nil {
		log.Fatalf("❌ Не удалось создать классификатор: %v", err)
	}

	layout := hex.NewLayout(hex.FlatTop, *size)
	generator, err := world.NewGenerator(state, classifier, layout, *edge)
	if err != nil {
		log.Fatalf("❌ Не удалось создать генератор: %v", err)
	}

	switch *command {
	case "render":
		coords := hex.Axial{Q: *q, R: *r}
		if absInt(coords.Q) > world.MaxChunkCoord || absInt(coords.R) > world.MaxChunkCoord {
			log.Fatalf("❌ Координата чанка (%d, %d) вне границы ±%d", coords.Q, coords.R, world.MaxChunkCoord)
		}
		renderChunk(generator, coords)

	case "stats":
		if *radius < 0 {
			log.Fatalf("❌ Радиус переписи должен быть неотрицательным, получен %d", *radius)
		}
		showStats(generator, *seed, *radius)

	case "locate":
		locatePosition(generator, layout, hex.Point{X: *x, Y: *y})

	default:
		fmt.Printf("❌ Неизвестная команда: %s\n", *command)
		fmt.Println("Доступные команды: render, stats, locate")
		os.Exit(1)
	}
}

// renderChunk генерирует один чанк и печатает его тайловую карту
func renderChunk(generator *world.Generator, coords hex.Axial) {
	chunk := generator.GenerateChunk(coords)
	radius := generator.Radius()
	center := hex.ChunkCenter(coords, radius)

	fmt.Printf("🗺  Чанк (%d, %d): биом=%s, тайлов=%d, стен=%d, сущностей=%d\n",
		coords.Q, coords.R, chunk.Biome, len(chunk.Tiles), chunk.WallCount(), chunk.EntityCount())
	fmt.Printf("Центральный тайл: (%d, %d), ключ чанка: %d\n\n", center.Q, center.R, world.ChunkKey(coords))

	// Индексируем тайлы по локальному смещению от центра
	byOffset := make(map[hex.Axial]*world.Tile, len(chunk.Tiles))
	for i := range chunk.Tiles {
		tile := &chunk.Tiles[i]
		byOffset[tile.Coord.Sub(center)] = tile
	}

	// Ряды постоянного dr; позиция клетки в ряду — 2*dq+dr,
	// поэтому соседние ряды сдвинуты на полклетки и блок выходит гексагональным
	for dr := -radius; dr <= radius; dr++ {
		lo := -radius
		if -dr-radius > lo {
			lo = -dr - radius
		}
		hi := radius
		if -dr+radius < hi {
			hi = -dr + radius
		}

		var row strings.Builder
		row.WriteString(strings.Repeat(" ", 2*lo+dr+2*radius))
		for dq := lo; dq <= hi; dq++ {
			if dq > lo {
				row.WriteByte(' ')
			}
			row.WriteByte(tileGlyph(byOffset[hex.Axial{Q: dq, R: dr}], dq == 0 && dr == 0))
		}
		fmt.Println(row.String())
	}

	fmt.Println("\nЛегенда: '.' открытый, '#' стена, '+' центр, a/m/n — animal/monster/npc")
}

// tileGlyph выбирает символ тайла для текстовой карты
func tileGlyph(tile *world.Tile, isCenter bool) byte {
	switch {
	case tile == nil:
		return '?'
	case tile.Type == world.TileWall:
		return '#'
	case tile.Entity != world.EntityNone:
		return tile.Entity.String()[0]
	case isCenter:
		return '+'
	default:
		return '.'
	}
}

// showStats генерирует все чанки в радиусе вокруг начала координат
// и печатает перепись биомов, стен и сущностей
func showStats(generator *world.Generator, seed int64, radius int) {
	fmt.Printf("📊 Перепись местности: сид=%d, радиус=%d чанков\n\n", seed, radius)

	biomes := make(map[world.Biome]int)
	entities := make(map[world.EntityKind]int)
	walls := 0
	tiles := 0

	coords := hex.Range(hex.Axial{}, radius)
	for _, coord := range coords {
		chunk := generator.GenerateChunk(coord)
		biomes[chunk.Biome]++
		walls += chunk.WallCount()
		tiles += len(chunk.Tiles)
		for i := range chunk.Tiles {
			if kind := chunk.Tiles[i].Entity; kind != world.EntityNone {
				entities[kind]++
			}
		}
	}

	fmt.Printf("Чанков: %d, тайлов: %d\n", len(coords), tiles)
	fmt.Printf("Биомы: red=%d, orange=%d, green=%d\n",
		biomes[world.BiomeRed], biomes[world.BiomeOrange], biomes[world.BiomeGreen])
	fmt.Printf("Стен: %d (%.1f%% тайлов)\n", walls, percent(walls, tiles))
	fmt.Printf("Сущности: animal=%d, monster=%d, npc=%d (всего %.2f%% тайлов)\n",
		entities[world.EntityAnimal], entities[world.EntityMonster], entities[world.EntityNPC],
		percent(entities[world.EntityAnimal]+entities[world.EntityMonster]+entities[world.EntityNPC], tiles))
}

// locatePosition печатает цепочку отображений позиция -> тайл -> чанк
func locatePosition(generator *world.Generator, layout hex.Layout, pos hex.Point) {
	tile := layout.AxialAt(pos)
	radius := generator.Radius()
	chunkCoord := hex.ChunkOf(tile, radius)
	if absInt(chunkCoord.Q) > world.MaxChunkCoord || absInt(chunkCoord.R) > world.MaxChunkCoord {
		log.Fatalf("❌ Позиция (%.3f, %.3f) лежит за границей игровой области", pos.X, pos.Y)
	}
	center := hex.ChunkCenter(chunkCoord, radius)
	tileCenter := layout.Center(tile)

	fmt.Printf("📍 Позиция (%.3f, %.3f)\n", pos.X, pos.Y)
	fmt.Printf("  Тайл: (%d, %d), центр в (%.3f, %.3f)\n", tile.Q, tile.R, tileCenter.X, tileCenter.Y)
	fmt.Printf("  Чанк: (%d, %d), ключ %d\n", chunkCoord.Q, chunkCoord.R, world.ChunkKey(chunkCoord))
	fmt.Printf("  Центральный тайл чанка: (%d, %d), смещение от него: %d\n",
		center.Q, center.R, hex.Distance(center, tile))
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
