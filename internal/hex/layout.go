package hex

import "math"

// Orientation задаёт ориентацию гексов на плоскости
type Orientation int

const (
	// FlatTop — гексы плоской стороной вверх (основной, проверенный режим)
	FlatTop Orientation = iota
	// PointyTop — гексы вершиной вверх.
	// ВНИМАНИЕ: этот режим НЕ проверен. Формулы взяты из стандартной матрицы
	// преобразования, но корректность на реальных данных не подтверждена —
	// не использовать без собственной проверки туда-обратно.
	PointyTop
)

// String возвращает строковое имя ориентации
func (o Orientation) String() string {
	switch o {
	case FlatTop:
		return "flat"
	case PointyTop:
		return "pointy"
	default:
		return "unknown"
	}
}

// Layout преобразует гексагональные координаты в позиции на плоскости мира и обратно
type Layout struct {
	Orientation Orientation
	Size        float64 // Радиус гекса (от центра до вершины) в мировых единицах
	Origin      Point   // Мировая позиция гекса (0, 0)
}

// NewLayout создаёт layout с указанной ориентацией и размером гекса
func NewLayout(orientation Orientation, size float64) Layout {
	return Layout{
		Orientation: orientation,
		Size:        size,
		Origin:      Point{X: 0, Y: 0},
	}
}

// Center возвращает мировую позицию центра гекса
func (l Layout) Center(a Axial) Point {
	q := float64(a.Q)
	r := float64(a.R)

	switch l.Orientation {
	case PointyTop:
		// Непроверенный режим, см. комментарий к PointyTop
		return Point{
			X: l.Origin.X + l.Size*(math.Sqrt(3)*q+math.Sqrt(3)/2*r),
			Y: l.Origin.Y + l.Size*(3.0/2.0*r),
		}
	default:
		return Point{
			X: l.Origin.X + l.Size*(3.0/2.0*q),
			Y: l.Origin.Y + l.Size*(math.Sqrt(3)/2*q+math.Sqrt(3)*r),
		}
	}
}

// AxialAt возвращает гекс, содержащий указанную мировую позицию
// (обратное преобразование с кубическим округлением)
func (l Layout) AxialAt(p Point) Axial {
	px := (p.X - l.Origin.X) / l.Size
	py := (p.Y - l.Origin.Y) / l.Size

	var q, r float64
	switch l.Orientation {
	case PointyTop:
		// Непроверенный режим, см. комментарий к PointyTop
		q = math.Sqrt(3)/3*px - 1.0/3.0*py
		r = 2.0 / 3.0 * py
	default:
		q = 2.0 / 3.0 * px
		r = -1.0/3.0*px + math.Sqrt(3)/3*py
	}

	return RoundCube(q, r, -q-r).Axial()
}
