package world

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/hex-world/internal/logging"
)

// Command — замыкание, выполняемое на горутине цикла между тиками
type Command func()

// Loop шагает симуляцию с фиксированным тиком. Стример и реестр
// наблюдателей принадлежат горутине цикла: внешние компоненты
// (REST API, консоль) выполняют свои обращения через Sync,
// поэтому внутри тика никакой синхронизации не требуется.
type Loop struct {
	streamer  *Streamer
	observers *ObserverSet
	commands  chan Command
	stopped   chan struct{}
	tickRate  int
	tick      uint64
}

// NewLoop создаёт цикл симуляции
func NewLoop(streamer *Streamer, observers *ObserverSet, tickRate int) (*Loop, error) {
	if streamer == nil {
		return nil, fmt.Errorf("стример обязателен")
	}
	if observers == nil {
		return nil, fmt.Errorf("реестр наблюдателей обязателен")
	}
	if tickRate <= 0 {
		return nil, fmt.Errorf("частота тиков должна быть положительной, получено %d", tickRate)
	}
	return &Loop{
		streamer:  streamer,
		observers: observers,
		commands:  make(chan Command, 64),
		stopped:   make(chan struct{}),
		tickRate:  tickRate,
	}, nil
}

// Run запускает цикл до отмены контекста. Вызывается ровно один раз;
// после выхода Sync перестаёт принимать команды.
func (l *Loop) Run(ctx context.Context) {
	logger := logging.GetWorldLogger()
	logger.Info("Цикл симуляции запущен: %d тик/с", l.tickRate)

	defer close(l.stopped)
	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Цикл симуляции остановлен на тике %d", l.tick)
			return
		case cmd := <-l.commands:
			cmd()
		case <-ticker.C:
			l.step()
		}
	}
}

// step выполняет один тик: снимок позиций наблюдателей и шаг стримера
func (l *Loop) step() {
	l.tick++
	l.streamer.Step(l.observers.Positions())
}

// Sync выполняет fn на горутине цикла и дожидается завершения.
// Возвращает false, если цикл уже остановлен и fn не был выполнен.
// Вызывать только снаружи цикла: вызов из команды приведёт к дедлоку.
func (l *Loop) Sync(fn func()) bool {
	done := make(chan struct{})
	cmd := func() {
		fn()
		close(done)
	}
	select {
	case l.commands <- cmd:
	case <-l.stopped:
		return false
	}
	select {
	case <-done:
		return true
	case <-l.stopped:
		// Run выполняет взятую команду до конца, поэтому после
		// закрытия stopped канал done закрыт тогда и только тогда,
		// когда fn успел выполниться.
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
}

// StepNow выполняет один тик немедленно (для тестов и консоли)
func (l *Loop) StepNow() {
	l.step()
}

// Streamer возвращает стример; обращаться только из команд цикла
func (l *Loop) Streamer() *Streamer {
	return l.streamer
}

// Observers возвращает реестр наблюдателей; обращаться только из команд цикла
func (l *Loop) Observers() *ObserverSet {
	return l.observers
}

// Tick возвращает номер текущего тика; обращаться только из команд цикла
func (l *Loop) Tick() uint64 {
	return l.tick
}

// TickRate возвращает частоту тиков
func (l *Loop) TickRate() int {
	return l.tickRate
}
