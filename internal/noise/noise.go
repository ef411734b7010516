package noise

import (
	"github.com/aquilax/go-perlin"
)

// Параметры генератора шума Перлина
const (
	alpha = 2.0 // Сглаживание шума
	beta  = 2.0 // Частота шума
	n     = 3   // Количество октав
)

// Generator — детерминированный источник когерентного 2D-шума.
// Один и тот же сид всегда даёт одну и ту же функцию шума.
type Generator struct {
	perlin *perlin.Perlin
}

// NewGenerator создаёт генератор шума Перлина с указанным сидом
func NewGenerator(seed int64) *Generator {
	return &Generator{
		perlin: perlin.NewPerlin(alpha, beta, int32(n), seed),
	}
}

// At возвращает значение шума для указанных координат в диапазоне от 0 до 1
func (g *Generator) At(x, y float64) float64 {
	// Noise2D возвращает значение от -1 до 1, приводим к диапазону от 0 до 1
	return (g.perlin.Noise2D(x, y) + 1.0) / 2.0
}
