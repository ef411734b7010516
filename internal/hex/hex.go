package hex

import "math"

// Axial представляет гексагональную координату в аксиальном базисе (q, r)
type Axial struct {
	Q, R int
}

// Cube представляет гексагональную координату в кубическом базисе.
// Инвариант: X + Y + Z == 0 всегда.
type Cube struct {
	X, Y, Z int
}

// Point представляет позицию на плоскости мира
type Point struct {
	X, Y float64
}

// Cube преобразует аксиальную координату в кубическую (точная целочисленная арифметика)
func (a Axial) Cube() Cube {
	return Cube{X: a.Q, Y: a.R, Z: -a.Q - a.R}
}

// Axial преобразует кубическую координату обратно в аксиальную
func (c Cube) Axial() Axial {
	return Axial{Q: c.X, R: c.Y}
}

// S возвращает неявную третью координату (-q - r)
func (a Axial) S() int {
	return -a.Q - a.R
}

// Add складывает две гексагональные координаты
func (a Axial) Add(other Axial) Axial {
	return Axial{Q: a.Q + other.Q, R: a.R + other.R}
}

// Sub вычитает гексагональную координату
func (a Axial) Sub(other Axial) Axial {
	return Axial{Q: a.Q - other.Q, R: a.R - other.R}
}

// Directions содержит шесть соседних направлений в фиксированном порядке (против часовой, начиная с +q)
var Directions = [6]Axial{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbor возвращает соседа в направлении i (0..5)
func (a Axial) Neighbor(i int) Axial {
	return a.Add(Directions[i])
}

// Neighbors возвращает все шесть соседних координат
func (a Axial) Neighbors() [6]Axial {
	var result [6]Axial
	for i, d := range Directions {
		result[i] = a.Add(d)
	}
	return result
}

// Distance возвращает гексагональное расстояние между двумя координатами:
// (|Δx| + |Δy| + |Δz|) / 2 в кубическом базисе
func Distance(a, b Axial) int {
	ac := a.Cube()
	bc := b.Cube()
	return (absInt(ac.X-bc.X) + absInt(ac.Y-bc.Y) + absInt(ac.Z-bc.Z)) / 2
}

// RoundCube округляет дробную кубическую координату до ближайшей целой,
// сохраняя инвариант нулевой суммы: округляем все три компоненты независимо,
// затем пересчитываем компоненту с наибольшей ошибкой округления из двух других.
func RoundCube(x, y, z float64) Cube {
	rx := math.Round(x)
	ry := math.Round(y)
	rz := math.Round(z)

	dx := math.Abs(rx - x)
	dy := math.Abs(ry - y)
	dz := math.Abs(rz - z)

	if dx > dy && dx > dz {
		rx = -ry - rz
	} else if dy > dz {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}

	return Cube{X: int(rx), Y: int(ry), Z: int(rz)}
}

// Range возвращает все координаты на расстоянии не более d от центра.
// Результат содержит ровно 3d²+3d+1 координат без дубликатов; порядок
// обхода фиксирован (dq от -d до d, dr по возрастанию) — генерация чанков
// полагается на этот порядок.
func Range(center Axial, d int) []Axial {
	result := make([]Axial, 0, 3*d*d+3*d+1)
	for dq := -d; dq <= d; dq++ {
		lo := maxInt(-d, -dq-d)
		hi := minInt(d, -dq+d)
		for dr := lo; dr <= hi; dr++ {
			result = append(result, Axial{Q: center.Q + dq, R: center.R + dr})
		}
	}
	return result
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
