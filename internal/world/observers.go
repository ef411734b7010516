package world

import (
	"github.com/google/uuid"

	"github.com/annel0/hex-world/internal/hex"
)

// Observer — наблюдатель, вокруг которого поддерживается загруженная местность
type Observer struct {
	ID       uuid.UUID
	Position hex.Point
}

// ObserverSet — реестр активных наблюдателей. Принадлежит циклу симуляции;
// внешние компоненты работают с ним только через команды цикла, поэтому
// мьютекс не нужен.
type ObserverSet struct {
	observers map[uuid.UUID]*Observer
}

// NewObserverSet создаёт пустой реестр наблюдателей
func NewObserverSet() *ObserverSet {
	return &ObserverSet{
		observers: make(map[uuid.UUID]*Observer),
	}
}

// Add регистрирует нового наблюдателя в указанной позиции
func (s *ObserverSet) Add(pos hex.Point) *Observer {
	obs := &Observer{
		ID:       uuid.New(),
		Position: pos,
	}
	s.observers[obs.ID] = obs
	return obs
}

// Remove удаляет наблюдателя; возвращает false, если его не было
func (s *ObserverSet) Remove(id uuid.UUID) bool {
	if _, ok := s.observers[id]; !ok {
		return false
	}
	delete(s.observers, id)
	return true
}

// Move перемещает наблюдателя; возвращает false, если его нет
func (s *ObserverSet) Move(id uuid.UUID, pos hex.Point) bool {
	obs, ok := s.observers[id]
	if !ok {
		return false
	}
	obs.Position = pos
	return true
}

// Get возвращает наблюдателя по идентификатору
func (s *ObserverSet) Get(id uuid.UUID) (Observer, bool) {
	obs, ok := s.observers[id]
	if !ok {
		return Observer{}, false
	}
	return *obs, true
}

// Positions возвращает снимок позиций всех наблюдателей (один раз за тик)
func (s *ObserverSet) Positions() []hex.Point {
	positions := make([]hex.Point, 0, len(s.observers))
	for _, obs := range s.observers {
		positions = append(positions, obs.Position)
	}
	return positions
}

// All возвращает копии всех наблюдателей
func (s *ObserverSet) All() []Observer {
	all := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		all = append(all, *obs)
	}
	return all
}

// Len возвращает число активных наблюдателей
func (s *ObserverSet) Len() int {
	return len(s.observers)
}
