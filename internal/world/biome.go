package world

import (
	"fmt"

	"github.com/annel0/hex-world/internal/hex"
)

// Biome представляет тип биома
type Biome int

const (
	BiomeRed Biome = iota
	BiomeOrange
	BiomeGreen
)

// String возвращает строковое имя биома
func (b Biome) String() string {
	switch b {
	case BiomeRed:
		return "red"
	case BiomeOrange:
		return "orange"
	case BiomeGreen:
		return "green"
	default:
		return "unknown"
	}
}

// Color — цвет отображения тайлов биома
type Color struct {
	R, G, B uint8
}

// Color возвращает цвет отображения биома
func (b Biome) Color() Color {
	switch b {
	case BiomeRed:
		return Color{R: 196, G: 60, B: 54}
	case BiomeOrange:
		return Color{R: 214, G: 138, B: 49}
	default:
		return Color{R: 96, G: 160, B: 66}
	}
}

// Пороговые значения классификации биомов
const (
	redBandLow   = 0.35 // Нижняя граница полосы первого поля для красного биома
	redBandHigh  = 0.6  // Верхняя граница полосы первого поля
	redField2Max = 0.5  // Второе поле ниже этого значения — красный
)

// Масштабы выборки полей шума (мировые единицы на единицу шума)
const (
	field1Scale = 110.0
	field2Scale = 60.0
)

// NoiseSource — детерминированная функция когерентного 2D-шума
// со значениями в диапазоне [0, 1]
type NoiseSource interface {
	At(x, y float64) float64
}

// Classifier — чистая функция от мировой позиции к биому.
// Два независимых поля получаются выборкой одного источника шума
// с разными масштабами и смещениями.
type Classifier struct {
	noise   NoiseSource
	offset1 float64
	offset2 float64
}

// NewClassifier создаёт классификатор с заданными смещениями полей.
// Смещения выбираются один раз при инициализации мира (см. NewState).
func NewClassifier(noise NoiseSource, offset1, offset2 float64) (*Classifier, error) {
	if noise == nil {
		return nil, fmt.Errorf("источник шума обязателен")
	}
	return &Classifier{
		noise:   noise,
		offset1: offset1,
		offset2: offset2,
	}, nil
}

// Classify возвращает биом для мировой позиции
func (c *Classifier) Classify(p hex.Point) Biome {
	field1 := c.noise.At(p.X/field1Scale-c.offset2, p.Y/field1Scale-c.offset2)
	field2 := c.noise.At(-p.X/field2Scale+c.offset1, -p.Y/field2Scale+c.offset1)

	if field1 > redBandLow && field1 < redBandHigh && field2 < redField2Max {
		return BiomeRed
	}
	if field1 > field2 {
		return BiomeOrange
	}
	return BiomeGreen
}
