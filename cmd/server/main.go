package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/annel0/hex-world/internal/api"
	"github.com/annel0/hex-world/internal/config"
	"github.com/annel0/hex-world/internal/hex"
	"github.com/annel0/hex-world/internal/logging"
	"github.com/annel0/hex-world/internal/noise"
	"github.com/annel0/hex-world/internal/observability"
	"github.com/annel0/hex-world/internal/world"
)

func main() {
	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🎮 Запуск Hex World — бесконечный процедурный гексагональный мир...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load("")
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
		logging.Info("Конфигурация не задана, используются значения по умолчанию")
	}
	if err := cfg.Validate(); err != nil {
		logging.Error("❌ Некорректная конфигурация: %v", err)
		log.Fatalf("❌ Некорректная конфигурация: %v", err)
	}

	seed := cfg.World.GetSeed()
	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())

	logging.Info("📡 Конфигурация: сид=%d, грань чанка=%d, тик=%d/с, видимость=%d, REST API=%s",
		seed, cfg.World.GetChunkEdge(), cfg.Stream.GetTickRate(),
		cfg.Stream.GetVisibilityRadius(), restPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === ТЕЛЕМЕТРИЯ ===
	if cfg.Server.EnableTracing {
		shutdown, err := observability.InitTelemetry(ctx, "hex-world")
		if err != nil {
			logging.Warn("Не удалось инициализировать телеметрию: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logging.Error("Ошибка остановки телеметрии: %v", err)
				}
			}()
		}
	}

	// === ИНИЦИАЛИЗАЦИЯ ДВИЖКА ===
	logging.Debug("Создание состояния мира...")
	state := world.NewState(seed)

	classifier, err := world.NewClassifier(noise.NewGenerator(seed), state.Offset1, state.Offset2)
	if err != nil {
		logging.Error("❌ Ошибка создания классификатора биомов: %v", err)
		log.Fatalf("❌ Ошибка создания классификатора биомов: %v", err)
	}

	orientation := hex.FlatTop
	if cfg.World.GetOrientation() == "pointy" {
		orientation = hex.PointyTop
		logging.Warn("⚠️ Ориентация pointy-top не проверена на реальных данных, формулы могут давать искажённую картину")
	}
	layout := hex.NewLayout(orientation, cfg.World.GetHexSize())

	logging.Debug("Создание генератора чанков...")
	generator, err := world.NewGenerator(state, classifier, layout, cfg.World.GetChunkEdge())
	if err != nil {
		logging.Error("❌ Ошибка создания генератора: %v", err)
		log.Fatalf("❌ Ошибка создания генератора: %v", err)
	}

	sink := &logSink{}
	metrics := world.NewStreamMetrics(nil)

	logging.Debug("Создание стримера мира...")
	streamer, err := world.NewStreamer(state, generator, sink, layout, cfg.Stream.GetVisibilityRadius(), metrics)
	if err != nil {
		logging.Error("❌ Ошибка создания стримера: %v", err)
		log.Fatalf("❌ Ошибка создания стримера: %v", err)
	}

	loop, err := world.NewLoop(streamer, world.NewObserverSet(), cfg.Stream.GetTickRate())
	if err != nil {
		logging.Error("❌ Ошибка создания цикла симуляции: %v", err)
		log.Fatalf("❌ Ошибка создания цикла симуляции: %v", err)
	}

	go loop.Run(ctx)
	logging.Info("✅ Цикл симуляции запущен (%d тик/с)", cfg.Stream.GetTickRate())

	// === REST API ===
	logging.Debug("Создание REST API сервера...")
	restServer, err := api.NewRestServer(api.Config{
		Port: restPort,
		Loop: loop,
	})
	if err != nil {
		logging.Error("❌ Ошибка создания REST API: %v", err)
		log.Fatalf("❌ Ошибка создания REST API: %v", err)
	}
	go func() {
		if err := restServer.Start(); err != nil {
			logging.Error("❌ Ошибка REST API: %v", err)
		}
	}()

	// === ДЕМО-НАБЛЮДАТЕЛИ ===
	wanderers := wandererCount()
	if wanderers > 0 {
		go runWanderers(ctx, loop, wanderers, cfg.World.GetHexSize())
		logging.Info("🚶 Запущено блуждающих наблюдателей: %d", wanderers)
	}

	logging.Info("✅ Все сервисы запущены")
	logging.Info("   🌐 REST API: http://localhost%s", restPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)
	logging.Info("   📊 Метрики: http://localhost%s/metrics", restPort)
	logging.Info("💡 Примеры использования REST API:")
	logging.Info("   curl http://localhost%s/api/world", restPort)
	logging.Info("   curl -X POST http://localhost%s/api/console -H 'Content-Type: application/json' -d '{\"command\":\"info\"}'", restPort)

	// Канал для получения сигналов ОС
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Ждем сигнала для завершения
	sig := <-sigCh
	logging.Info("📡 Получен сигнал %v, завершение работы...", sig)

	// === GRACEFUL SHUTDOWN ===
	// Сначала дожидаемся активных HTTP-запросов: их обработчикам нужен
	// живой цикл симуляции. Сам цикл останавливаем после.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := restServer.Stop(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}

	cancel() // останавливает цикл симуляции и наблюдателей

	logging.Info("🌍 За время работы размещено тайлов: %d, уничтожено чанков: %d",
		atomic.LoadUint64(&sink.placed), atomic.LoadUint64(&sink.destroyed))
	logging.Info("👋 Сервер успешно остановлен")
}

// logSink пишет размещения и уничтожения в лог вместо рендера.
// Представления адресуются координатой чанка, поэтому уничтожение
// логируется одной строкой на чанк.
type logSink struct {
	placed    uint64
	destroyed uint64
}

func (s *logSink) PlaceTile(chunk hex.Axial, tile hex.Axial, typ world.TileType, color world.Color) {
	atomic.AddUint64(&s.placed, 1)
	logging.Trace("Размещение: чанк (%d, %d), тайл (%d, %d), тип %s",
		chunk.Q, chunk.R, tile.Q, tile.R, typ)
}

func (s *logSink) DestroyChunk(chunk hex.Axial) {
	atomic.AddUint64(&s.destroyed, 1)
	logging.Debug("Уничтожение представлений чанка (%d, %d)", chunk.Q, chunk.R)
}

// wandererCount возвращает число демо-наблюдателей
// (HEXWORLD_WANDERERS, по умолчанию 1; 0 отключает)
func wandererCount() int {
	if envVal := os.Getenv("HEXWORLD_WANDERERS"); envVal != "" {
		if n, err := strconv.Atoi(envVal); err == nil && n >= 0 {
			return n
		}
	}
	return 1
}

// runWanderers создаёт наблюдателей и случайно двигает их, создавая
// постоянный поток загрузок и выгрузок чанков
func runWanderers(ctx context.Context, loop *world.Loop, count int, hexSize float64) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	ids := make([]uuid.UUID, 0, count)
	ok := loop.Sync(func() {
		for i := 0; i < count; i++ {
			obs := loop.Observers().Add(hex.Point{})
			ids = append(ids, obs.ID)
		}
	})
	if !ok {
		return
	}

	step := hexSize * 2 // шаг порядка пары тайлов за раз
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			alive := loop.Sync(func() {
				for _, id := range ids {
					obs, ok := loop.Observers().Get(id)
					if !ok {
						continue // наблюдатель удалён через API или консоль
					}
					next := hex.Point{
						X: obs.Position.X + (rng.Float64()*2-1)*step,
						Y: obs.Position.Y + (rng.Float64()*2-1)*step,
					}
					loop.Observers().Move(id, next)
				}
			})
			if !alive {
				return
			}
		}
	}
}
