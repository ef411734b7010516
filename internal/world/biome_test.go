package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/hex-world/internal/hex"
	"github.com/annel0/hex-world/internal/noise"
)

// noiseStub подменяет источник шума в тестах классификатора
type noiseStub struct {
	fn func(x, y float64) float64
}

func (s noiseStub) At(x, y float64) float64 {
	return s.fn(x, y)
}

// stubFields возвращает стаб, который отдаёт field1 для выборок первого поля
// и field2 для второго. При нулевых смещениях и положительной позиции
// первое поле сэмплируется при x > 0, второе — при x < 0.
func stubFields(field1, field2 float64) noiseStub {
	return noiseStub{fn: func(x, y float64) float64 {
		if x > 0 {
			return field1
		}
		return field2
	}}
}

func TestClassifier_RedInsideBand(t *testing.T) {
	// Первое поле в полосе (0.35, 0.6), второе ниже 0.5 — красный
	c, err := NewClassifier(stubFields(0.5, 0.2), 0, 0)
	require.NoError(t, err)

	biome := c.Classify(hex.Point{X: 110, Y: 110})
	assert.Equal(t, BiomeRed, biome, "поле 0.5 в полосе и 0.2 < 0.5 должны давать красный биом")
}

func TestClassifier_GreenOutsideBand(t *testing.T) {
	// Первое поле вне полосы и меньше второго — зелёный
	c, err := NewClassifier(stubFields(0.2, 0.8), 0, 0)
	require.NoError(t, err)

	biome := c.Classify(hex.Point{X: 110, Y: 110})
	assert.Equal(t, BiomeGreen, biome, "поле 0.2 < 0.8 вне полосы должно давать зелёный биом")
}

func TestClassifier_OrangeWhenFirstFieldDominates(t *testing.T) {
	// Первое поле вне полосы, но больше второго — оранжевый
	c, err := NewClassifier(stubFields(0.7, 0.3), 0, 0)
	require.NoError(t, err)

	biome := c.Classify(hex.Point{X: 110, Y: 110})
	assert.Equal(t, BiomeOrange, biome)
}

func TestClassifier_BandNeedsSecondFieldLow(t *testing.T) {
	// Первое поле в полосе, но второе не ниже 0.5 — красный не присваивается
	c, err := NewClassifier(stubFields(0.5, 0.6), 0, 0)
	require.NoError(t, err)

	biome := c.Classify(hex.Point{X: 110, Y: 110})
	assert.Equal(t, BiomeGreen, biome, "при втором поле 0.6 красная полоса не срабатывает")
}

func TestClassifier_NilNoise(t *testing.T) {
	_, err := NewClassifier(nil, 0, 0)
	assert.Error(t, err, "классификатор без источника шума недопустим")
}

func TestClassifier_PureFunction(t *testing.T) {
	// Классификация не хранит состояния: один вход — один выход
	gen := noise.NewGenerator(42)
	c, err := NewClassifier(gen, 123.4, 567.8)
	require.NoError(t, err)

	p := hex.Point{X: 31.5, Y: -17.25}
	first := c.Classify(p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(p), "повторная классификация той же позиции должна совпадать")
	}
}

func TestBiomeColor(t *testing.T) {
	assert.Equal(t, Color{R: 196, G: 60, B: 54}, BiomeRed.Color())
	assert.Equal(t, Color{R: 214, G: 138, B: 49}, BiomeOrange.Color())
	assert.Equal(t, Color{R: 96, G: 160, B: 66}, BiomeGreen.Color())
}

func TestBiomeString(t *testing.T) {
	assert.Equal(t, "red", BiomeRed.String())
	assert.Equal(t, "orange", BiomeOrange.String())
	assert.Equal(t, "green", BiomeGreen.String())
}
