package world

import "math/rand"

// EntityKind представляет вид сущности, появляющейся на открытых тайлах
type EntityKind int

const (
	EntityNone EntityKind = iota
	EntityAnimal
	EntityMonster
	EntityNPC
)

// String возвращает строковое имя вида сущности
func (k EntityKind) String() string {
	switch k {
	case EntityAnimal:
		return "animal"
	case EntityMonster:
		return "monster"
	case EntityNPC:
		return "npc"
	case EntityNone:
		return "none"
	default:
		return "unknown"
	}
}

// SpawnEntry — кандидат таблицы спавна: вид и вероятность его появления
type SpawnEntry struct {
	Kind        EntityKind
	Probability float64
}

// SpawnTable — фиксированный упорядоченный список кандидатов спавна.
// Порядок значим: розыгрыш идёт по списку и останавливается
// на первом успехе, поэтому на тайле появляется не более одной сущности.
var SpawnTable = []SpawnEntry{
	{Kind: EntityAnimal, Probability: 0.01},
	{Kind: EntityMonster, Probability: 0.005},
	{Kind: EntityNPC, Probability: 0.002},
}

// RollSpawn выполняет один взвешенный розыгрыш по таблице: кандидаты
// проверяются по порядку до первого успеха. Если ни одна проверка
// не прошла, тайл остаётся пустым (с табличными весами это ~98.3%).
func RollSpawn(rng *rand.Rand, table []SpawnEntry) EntityKind {
	for _, entry := range table {
		if rng.Float64() < entry.Probability {
			return entry.Kind
		}
	}
	return EntityNone
}
