package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.

type Config struct {
	World  WorldConfig  `yaml:"world"`
	Stream StreamConfig `yaml:"stream"`
	Server ServerConfig `yaml:"server"`
}

type WorldConfig struct {
	Seed        int64   `yaml:"seed"`
	ChunkEdge   int     `yaml:"chunk_edge"`  // Длина грани чанка (радиус = грань - 1)
	HexSize     float64 `yaml:"hex_size"`    // Радиус гекса в мировых единицах
	Orientation string  `yaml:"orientation"` // flat | pointy
}

type StreamConfig struct {
	TickRate         int `yaml:"tick_rate"`         // Тиков симуляции в секунду
	VisibilityRadius int `yaml:"visibility_radius"` // Радиус видимости в чанках
}

type ServerConfig struct {
	RESTPort      int  `yaml:"rest_port"`
	EnableTracing bool `yaml:"enable_tracing"`
}

// GetSeed возвращает сид мира с поддержкой fallback значений
func (w *WorldConfig) GetSeed() int64 {
	if w.Seed != 0 {
		return w.Seed
	}

	if envVal := os.Getenv("HEXWORLD_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil && seed != 0 {
			return seed
		}
	}

	return 12345
}

// GetChunkEdge возвращает длину грани чанка
func (w *WorldConfig) GetChunkEdge() int {
	if w.ChunkEdge > 0 {
		return w.ChunkEdge
	}
	return 6
}

// GetHexSize возвращает размер гекса в мировых единицах
func (w *WorldConfig) GetHexSize() float64 {
	if w.HexSize > 0 {
		return w.HexSize
	}
	return 1.0
}

// GetOrientation возвращает ориентацию гексов ("flat" или "pointy")
func (w *WorldConfig) GetOrientation() string {
	if w.Orientation != "" {
		return w.Orientation
	}
	return "flat"
}

// GetTickRate возвращает частоту тиков симуляции
func (s *StreamConfig) GetTickRate() int {
	if s.TickRate > 0 {
		return s.TickRate
	}
	return 60
}

// GetVisibilityRadius возвращает радиус видимости в чанках
func (s *StreamConfig) GetVisibilityRadius() int {
	if s.VisibilityRadius > 0 {
		return s.VisibilityRadius
	}
	return 2
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "HEXWORLD_REST_PORT", 8088)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if edge := c.World.GetChunkEdge(); edge < 2 {
		return fmt.Errorf("chunk_edge должен быть не меньше 2, получено %d", edge)
	}
	switch o := c.World.GetOrientation(); o {
	case "flat", "pointy":
	default:
		return fmt.Errorf("неизвестная ориентация гексов: %q", o)
	}
	if c.Stream.GetTickRate() <= 0 {
		return fmt.Errorf("tick_rate должен быть положительным")
	}
	if c.Stream.GetVisibilityRadius() < 0 {
		return fmt.Errorf("visibility_radius не может быть отрицательным")
	}
	return nil
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV HEXWORLD_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("HEXWORLD_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
