package console

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/annel0/hex-world/internal/hex"
	"github.com/annel0/hex-world/internal/logging"
	"github.com/annel0/hex-world/internal/world"
)

// Console — консоль разработчика: разбирает текстовые команды и выполняет
// их через команды цикла симуляции. Сама консоль не хранит состояния мира
// и не трогает стример напрямую.
type Console struct {
	loop   *world.Loop
	logger *logging.Logger
}

// New создаёт консоль поверх цикла симуляции
func New(loop *world.Loop) (*Console, error) {
	if loop == nil {
		return nil, fmt.Errorf("цикл симуляции обязателен")
	}
	return &Console{
		loop:   loop,
		logger: logging.GetConsoleLogger(),
	}, nil
}

// sync выполняет fn на горутине цикла симуляции.
// Возвращает ошибку, если цикл уже остановлен.
func (c *Console) sync(fn func()) error {
	if !c.loop.Sync(fn) {
		return fmt.Errorf("цикл симуляции остановлен")
	}
	return nil
}

const helpText = `Доступные команды:
  help              — список команд
  info              — сводка по миру: сид, спавн, тик, чанки, наблюдатели
  tick [n]          — выполнить n тиков немедленно (по умолчанию 1)
  chunks            — список резидентных чанков
  chunk <q> <r>     — детали резидентного чанка
  where <x> <y>     — тайл и чанк для мировой позиции
  observers         — список наблюдателей
  spawn <x> <y>     — создать наблюдателя в позиции
  tp <id> <x> <y>   — переместить наблюдателя
  rm <id>           — удалить наблюдателя
  loglevel <c> <l>  — порог консольного вывода компонента (trace..error)`

// Execute разбирает строку команды и выполняет её.
// Возвращает текст ответа для отображения пользователю.
func (c *Console) Execute(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", fmt.Errorf("пустая команда; введите help")
	}

	c.logger.Debug("выполняется команда: %s", line)

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		return helpText, nil
	case "info":
		return c.info()
	case "tick":
		return c.tick(args)
	case "chunks":
		return c.chunks()
	case "chunk":
		return c.chunk(args)
	case "where":
		return c.where(args)
	case "observers":
		return c.observers()
	case "spawn":
		return c.spawn(args)
	case "tp":
		return c.teleport(args)
	case "rm":
		return c.remove(args)
	case "loglevel":
		return c.loglevel(args)
	default:
		return "", fmt.Errorf("неизвестная команда %q; введите help", cmd)
	}
}

func (c *Console) info() (string, error) {
	var out string
	err := c.sync(func() {
		state := c.loop.Streamer().State()
		out = fmt.Sprintf(
			"Мир: сид=%d, спавн-чанк=%s, тик=%d (%d тик/с), видимость=%d, резидентных чанков=%d, наблюдателей=%d",
			state.Seed, state.Spawn(), c.loop.Tick(), c.loop.TickRate(),
			c.loop.Streamer().Visibility(), state.ResidentCount(), c.loop.Observers().Len())
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *Console) tick(args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("tick: ожидается не более одного аргумента, получено %d", len(args))
	}
	n := 1
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("tick: неверное число тиков %q", args[0])
		}
		if parsed < 1 {
			return "", fmt.Errorf("tick: число тиков должно быть положительным, получено %d", parsed)
		}
		n = parsed
	}

	var current uint64
	err := c.sync(func() {
		for i := 0; i < n; i++ {
			c.loop.StepNow()
		}
		current = c.loop.Tick()
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Выполнено тиков: %d, текущий тик %d", n, current), nil
}

func (c *Console) chunks() (string, error) {
	var lines []string
	err := c.sync(func() {
		state := c.loop.Streamer().State()
		coords := state.ResidentCoords()
		sort.Slice(coords, func(i, j int) bool {
			if coords[i].Q != coords[j].Q {
				return coords[i].Q < coords[j].Q
			}
			return coords[i].R < coords[j].R
		})
		for _, coord := range coords {
			chunk, _ := state.ChunkAt(coord)
			lines = append(lines, fmt.Sprintf("(%d, %d): биом=%s, стен=%d, сущностей=%d",
				coord.Q, coord.R, chunk.Biome, chunk.WallCount(), chunk.EntityCount()))
		}
	})
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "Резидентных чанков нет", nil
	}
	return strings.Join(lines, "\n"), nil
}

func (c *Console) chunk(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("chunk: ожидается 2 аргумента, получено %d", len(args))
	}
	q, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("chunk: неверная координата q: %w", err)
	}
	r, err := strconv.Atoi(args[1])
	if err != nil {
		return "", fmt.Errorf("chunk: неверная координата r: %w", err)
	}

	var (
		out   string
		found bool
	)
	err = c.sync(func() {
		chunk, ok := c.loop.Streamer().State().ChunkAt(hex.Axial{Q: q, R: r})
		if !ok {
			return
		}
		found = true
		center := hex.ChunkCenter(chunk.Coords, c.loop.Streamer().Radius())
		out = fmt.Sprintf(
			"Чанк (%d, %d): биом=%s, тайлов=%d, стен=%d, сущностей=%d, центральный тайл=(%d, %d)",
			chunk.Coords.Q, chunk.Coords.R, chunk.Biome, len(chunk.Tiles),
			chunk.WallCount(), chunk.EntityCount(), center.Q, center.R)
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("чанк (%d, %d) не резидентен", q, r)
	}
	return out, nil
}

func (c *Console) where(args []string) (string, error) {
	pos, err := parsePoint("where", args)
	if err != nil {
		return "", err
	}

	var out string
	err = c.sync(func() {
		streamer := c.loop.Streamer()
		tileCoord := streamer.Layout().AxialAt(pos)
		chunkCoord := streamer.ChunkAtPosition(pos)
		out = fmt.Sprintf("Позиция (%.2f, %.2f): тайл (%d, %d), чанк (%d, %d)",
			pos.X, pos.Y, tileCoord.Q, tileCoord.R, chunkCoord.Q, chunkCoord.R)

		if !streamer.Contains(pos) {
			out += ", местность не загружена"
			return
		}
		chunk, ok := streamer.State().ChunkAt(chunkCoord)
		if !ok {
			return
		}
		out += fmt.Sprintf(", биом %s", chunk.Biome)
		if tile, ok := chunk.TileAt(tileCoord); ok {
			out += fmt.Sprintf(", тип %s", tile.Type)
			if tile.Entity != world.EntityNone {
				out += fmt.Sprintf(", сущность %s", tile.Entity)
			}
		}
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *Console) observers() (string, error) {
	var lines []string
	err := c.sync(func() {
		all := c.loop.Observers().All()
		sort.Slice(all, func(i, j int) bool {
			return all[i].ID.String() < all[j].ID.String()
		})
		for _, obs := range all {
			lines = append(lines, fmt.Sprintf("%s: позиция (%.2f, %.2f)",
				obs.ID, obs.Position.X, obs.Position.Y))
		}
	})
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "Наблюдателей нет", nil
	}
	return strings.Join(lines, "\n"), nil
}

func (c *Console) spawn(args []string) (string, error) {
	pos, err := parsePoint("spawn", args)
	if err != nil {
		return "", err
	}

	// Указатель наблюдателя остаётся у горутины цикла,
	// наружу выносим только идентификатор.
	var id uuid.UUID
	err = c.sync(func() {
		id = c.loop.Observers().Add(pos).ID
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Наблюдатель %s создан в (%.2f, %.2f)", id, pos.X, pos.Y), nil
}

func (c *Console) teleport(args []string) (string, error) {
	if len(args) != 3 {
		return "", fmt.Errorf("tp: ожидается 3 аргумента, получено %d", len(args))
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return "", fmt.Errorf("tp: неверный идентификатор наблюдателя: %w", err)
	}
	pos, err := parsePoint("tp", args[1:])
	if err != nil {
		return "", err
	}

	var moved bool
	err = c.sync(func() {
		moved = c.loop.Observers().Move(id, pos)
	})
	if err != nil {
		return "", err
	}
	if !moved {
		return "", fmt.Errorf("наблюдатель %s не найден", id)
	}
	return fmt.Sprintf("Наблюдатель %s перемещён в (%.2f, %.2f)", id, pos.X, pos.Y), nil
}

func (c *Console) remove(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("rm: ожидается 1 аргумент, получено %d", len(args))
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return "", fmt.Errorf("rm: неверный идентификатор наблюдателя: %w", err)
	}

	var removed bool
	err = c.sync(func() {
		removed = c.loop.Observers().Remove(id)
	})
	if err != nil {
		return "", err
	}
	if !removed {
		return "", fmt.Errorf("наблюдатель %s не найден", id)
	}
	return fmt.Sprintf("Наблюдатель %s удалён", id), nil
}

func (c *Console) loglevel(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("loglevel: ожидается 2 аргумента, получено %d", len(args))
	}
	level, err := logging.ParseLevel(args[1])
	if err != nil {
		return "", fmt.Errorf("loglevel: %w", err)
	}
	if err := logging.GetLoggerManager().SetLevel(args[0], level); err != nil {
		return "", fmt.Errorf("loglevel: %w", err)
	}
	return fmt.Sprintf("Компонент %s: порог консольного вывода %s", args[0], level), nil
}

// parsePoint разбирает пару мировых координат x y
func parsePoint(cmd string, args []string) (hex.Point, error) {
	if len(args) != 2 {
		return hex.Point{}, fmt.Errorf("%s: ожидается 2 координаты, получено %d", cmd, len(args))
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return hex.Point{}, fmt.Errorf("%s: неверная координата x: %w", cmd, err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return hex.Point{}, fmt.Errorf("%s: неверная координата y: %w", cmd, err)
	}
	return hex.Point{X: x, Y: y}, nil
}
