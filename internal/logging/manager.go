package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// LoggerManager выдаёт по одному логгеру на компонент (world, api, console),
// чтобы каждый компонент писал в собственный файл в logs/
type LoggerManager struct {
	mu      sync.Mutex
	loggers map[string]*Logger
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = &LoggerManager{loggers: make(map[string]*Logger)}
	})
	return globalManager
}

// GetLogger возвращает логгер компонента, создавая его при первом обращении
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if logger, ok := lm.loggers[component]; ok {
		return logger, nil
	}

	logger, err := NewLogger(component)
	if err != nil {
		return nil, fmt.Errorf("создание логгера компонента %s: %w", component, err)
	}
	lm.loggers[component] = logger
	return logger, nil
}

// MustGetLogger возвращает логгер компонента. Если файл логов создать не
// удалось, возвращает запасной логгер, пишущий только в stdout.
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	logger, err := lm.GetLogger(component)
	if err != nil {
		return &Logger{
			consoleLogger:   log.New(os.Stdout, "", log.LstdFlags),
			minConsoleLevel: INFO,
			minFileLevel:    ERROR,
		}
	}
	return logger
}

// SetLevel устанавливает порог консольного вывода для компонента
func (lm *LoggerManager) SetLevel(component string, level LogLevel) error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	logger, ok := lm.loggers[component]
	if !ok {
		return fmt.Errorf("логгер компонента %s не найден", component)
	}
	logger.SetConsoleLevel(level)
	return nil
}

// CloseAll закрывает файлы всех логгеров компонентов
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var lastErr error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			lastErr = fmt.Errorf("закрытие логгера %s: %w", component, err)
		}
	}
	lm.loggers = make(map[string]*Logger)
	return lastErr
}

// ParseLevel разбирает имя уровня логирования без учёта регистра
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(name) {
	case "trace":
		return TRACE, nil
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn":
		return WARN, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("неизвестный уровень логирования %q", name)
	}
}

// GetWorldLogger возвращает логгер симуляции мира
func GetWorldLogger() *Logger {
	return GetLoggerManager().MustGetLogger("world")
}

// GetAPILogger возвращает логгер REST API
func GetAPILogger() *Logger {
	return GetLoggerManager().MustGetLogger("api")
}

// GetConsoleLogger возвращает логгер консоли разработчика
func GetConsoleLogger() *Logger {
	return GetLoggerManager().MustGetLogger("console")
}
