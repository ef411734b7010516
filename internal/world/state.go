package world

import (
	"math/rand"

	"github.com/annel0/hex-world/internal/hex"
)

// SpawnState — машина состояний одноразовой генерации спавн-чанка
type SpawnState int

const (
	// SpawnPending — спавн-чанк ещё ни разу не генерировался
	SpawnPending SpawnState = iota
	// SpawnDone — спавн-чанк сгенерирован; переход необратим
	SpawnDone
)

// String возвращает строковое имя состояния спавна
func (s SpawnState) String() string {
	switch s {
	case SpawnPending:
		return "pending"
	case SpawnDone:
		return "done"
	default:
		return "unknown"
	}
}

// State — явный контекст мира: сид, смещения полей шума, резидентная
// карта чанков и машина состояний спавн-чанка. Единственный владелец —
// стример; все остальные компоненты получают State как аргумент.
type State struct {
	Seed    int64   // Сид мира
	Offset1 float64 // Смещение второго поля шума классификатора
	Offset2 float64 // Смещение первого поля шума классификатора

	spawn    SpawnState
	resident map[hex.Axial]*Chunk
}

// NewState создаёт состояние мира. Смещения полей шума выбираются один раз
// из источника, засеянного сидом мира, поэтому весь мир — чистая функция сида.
func NewState(seed int64) *State {
	rng := rand.New(rand.NewSource(seed))
	return &State{
		Seed:     seed,
		Offset1:  rng.Float64() * 1000,
		Offset2:  rng.Float64() * 2000,
		spawn:    SpawnPending,
		resident: make(map[hex.Axial]*Chunk),
	}
}

// ClaimSpawnGeneration выполняет одноразовый переход SpawnPending -> SpawnDone.
// Возвращает true только первому вызвавшему; все последующие вызовы видят
// уже совершённый переход.
func (s *State) ClaimSpawnGeneration() bool {
	if s.spawn != SpawnPending {
		return false
	}
	s.spawn = SpawnDone
	return true
}

// Spawn возвращает текущее состояние генерации спавн-чанка
func (s *State) Spawn() SpawnState {
	return s.spawn
}

// ChunkAt возвращает резидентный чанк по координате
func (s *State) ChunkAt(coord hex.Axial) (*Chunk, bool) {
	chunk, ok := s.resident[coord]
	return chunk, ok
}

// HasChunk сообщает, резидентен ли чанк с указанной координатой
func (s *State) HasChunk(coord hex.Axial) bool {
	_, ok := s.resident[coord]
	return ok
}

// ResidentCount возвращает число резидентных чанков
func (s *State) ResidentCount() int {
	return len(s.resident)
}

// ResidentCoords возвращает координаты всех резидентных чанков
func (s *State) ResidentCoords() []hex.Axial {
	coords := make([]hex.Axial, 0, len(s.resident))
	for coord := range s.resident {
		coords = append(coords, coord)
	}
	return coords
}

// replaceResident целиком подменяет резидентную карту на границе тика.
// Карта никогда не мутируется инкрементально.
func (s *State) replaceResident(next map[hex.Axial]*Chunk) {
	s.resident = next
}
