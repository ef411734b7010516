package world

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/hex-world/internal/logging"
)

// StreamMetrics содержит метрики работы стримера мира
type StreamMetrics struct {
	ResidentChunks  prometheus.Gauge
	ChunksGenerated prometheus.Counter
	ChunksUnloaded  prometheus.Counter
	TickDuration    prometheus.Histogram
	EntitiesSpawned *prometheus.CounterVec
}

// NewStreamMetrics создаёт метрики стримера и регистрирует их в реестре.
// При registry == nil используется реестр по умолчанию.
func NewStreamMetrics(registry prometheus.Registerer) *StreamMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	m := &StreamMetrics{
		ResidentChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hexworld_resident_chunks",
			Help: "Текущее количество резидентных чанков",
		}),
		ChunksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hexworld_chunks_generated_total",
			Help: "Общее количество сгенерированных чанков",
		}),
		ChunksUnloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hexworld_chunks_unloaded_total",
			Help: "Общее количество выгруженных чанков",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hexworld_tick_duration_seconds",
			Help:    "Длительность тика стриминга",
			Buckets: prometheus.DefBuckets,
		}),
		EntitiesSpawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hexworld_entities_spawned_total",
			Help: "Общее количество сущностей по видам",
		}, []string{"kind"}),
	}

	collectors := []prometheus.Collector{
		m.ResidentChunks,
		m.ChunksGenerated,
		m.ChunksUnloaded,
		m.TickDuration,
		m.EntitiesSpawned,
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			// Игнорируем ошибки дублирования метрик
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				logging.Warn("Не удалось зарегистрировать метрику: %v", err)
			}
		}
	}

	return m
}
