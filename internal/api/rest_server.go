package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/hex-world/internal/console"
	"github.com/annel0/hex-world/internal/hex"
	"github.com/annel0/hex-world/internal/logging"
	"github.com/annel0/hex-world/internal/middleware"
	"github.com/annel0/hex-world/internal/world"
)

// RestServer — отладочный REST API движка мира. Все обращения к состоянию
// идут через команды цикла симуляции, сервер ничего не кеширует.
type RestServer struct {
	router     *gin.Engine
	httpServer *http.Server
	loop       *world.Loop
	console    *console.Console
	port       string
	metrics    *ServerMetrics
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port string      // порт для запуска сервера, например ":8088"
	Loop *world.Loop // цикл симуляции
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) (*RestServer, error) {
	if config.Loop == nil {
		return nil, fmt.Errorf("цикл симуляции обязателен")
	}
	if config.Port == "" {
		config.Port = ":8088"
	}

	cons, err := console.New(config.Loop)
	if err != nil {
		return nil, fmt.Errorf("создание консоли: %w", err)
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	router.Use(otelgin.Middleware("hexworld_api"))

	promMw := middleware.NewPrometheusMiddleware("hexworld")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router:  router,
		loop:    config.Loop,
		console: cons,
		port:    config.Port,
		metrics: NewServerMetrics(),
	}
	server.httpServer = &http.Server{
		Addr:    config.Port,
		Handler: router,
	}

	// Настраиваем маршруты
	server.setupRoutes()

	return server, nil
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	// Middleware для CORS
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Группа API
	api := rs.router.Group("/api")
	{
		api.GET("/world", rs.handleWorldInfo)
		api.GET("/stats", rs.handleStats)

		api.GET("/chunks", rs.handleChunks)
		api.GET("/chunks/:q/:r", rs.handleChunkDetail)

		api.GET("/observers", rs.handleGetObservers)
		api.POST("/observers", rs.handleCreateObserver)
		api.PUT("/observers/:id", rs.handleMoveObserver)
		api.DELETE("/observers/:id", rs.handleRemoveObserver)

		api.POST("/console", rs.handleConsole)
	}

	// Health check
	rs.router.GET("/health", rs.handleHealth)
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ObserverRequest — позиция наблюдателя для создания/перемещения.
// Нулевые координаты допустимы, поэтому поля без binding:"required".
type ObserverRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ConsoleRequest — команда консоли разработчика
type ConsoleRequest struct {
	Command string `json:"command" binding:"required"`
}

// syncLoop выполняет fn на горутине цикла симуляции. Если цикл уже
// остановлен, отвечает 503 и возвращает false — обработчик в этом
// случае должен сразу выйти.
func (rs *RestServer) syncLoop(c *gin.Context, fn func()) bool {
	if !rs.loop.Sync(fn) {
		c.JSON(http.StatusServiceUnavailable, GenericResponse{
			Success: false,
			Message: "Цикл симуляции остановлен",
		})
		return false
	}
	return true
}

// handleWorldInfo возвращает сводку по миру
func (rs *RestServer) handleWorldInfo(c *gin.Context) {
	var info map[string]interface{}
	ok := rs.syncLoop(c, func() {
		streamer := rs.loop.Streamer()
		state := streamer.State()
		info = map[string]interface{}{
			"seed":            state.Seed,
			"spawn_state":     state.Spawn().String(),
			"tick":            rs.loop.Tick(),
			"tick_rate":       rs.loop.TickRate(),
			"visibility":      streamer.Visibility(),
			"chunk_radius":    streamer.Radius(),
			"tiles_per_chunk": hex.TilesPerChunk(streamer.Radius()),
			"resident_chunks": state.ResidentCount(),
			"observers":       rs.loop.Observers().Len(),
		}
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Информация о мире",
		Data:    info,
	})
}

// handleStats возвращает статистику сервера и движка
func (rs *RestServer) handleStats(c *gin.Context) {
	stats := make(map[string]interface{})

	var engine map[string]interface{}
	ok := rs.syncLoop(c, func() {
		state := rs.loop.Streamer().State()
		engine = map[string]interface{}{
			"tick":            rs.loop.Tick(),
			"resident_chunks": state.ResidentCount(),
			"observers":       rs.loop.Observers().Len(),
		}
	})
	if !ok {
		return
	}
	stats["engine"] = engine

	// Метрики процесса
	memoryMB, _ := rs.metrics.GetMemoryUsage()
	rssMB, _ := rs.metrics.GetRSS()
	cpuPercent, _ := rs.metrics.GetCPUUsage()

	stats["server"] = map[string]interface{}{
		"uptime":      rs.metrics.GetUptime(),
		"memory_mb":   fmt.Sprintf("%.2f", memoryMB),
		"rss_mb":      fmt.Sprintf("%.2f", rssMB),
		"cpu_percent": fmt.Sprintf("%.2f", cpuPercent),
		"server_time": time.Now().Unix(),
	}

	// Детальная статистика памяти
	stats["memory_details"] = rs.metrics.GetDetailedMemoryStats()

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data:    stats,
	})
}

// handleChunks возвращает список резидентных чанков
func (rs *RestServer) handleChunks(c *gin.Context) {
	var chunks []map[string]interface{}
	ok := rs.syncLoop(c, func() {
		state := rs.loop.Streamer().State()
		for _, coord := range state.ResidentCoords() {
			chunk, _ := state.ChunkAt(coord)
			chunks = append(chunks, map[string]interface{}{
				"q":        coord.Q,
				"r":        coord.R,
				"biome":    chunk.Biome.String(),
				"walls":    chunk.WallCount(),
				"entities": chunk.EntityCount(),
			})
		}
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Список резидентных чанков",
		Data: map[string]interface{}{
			"chunks": chunks,
			"total":  len(chunks),
		},
	})
}

// handleChunkDetail возвращает детали резидентного чанка.
// С параметром ?tiles=true в ответ включается полный список тайлов.
func (rs *RestServer) handleChunkDetail(c *gin.Context) {
	q, err := strconv.Atoi(c.Param("q"))
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверная координата q",
		})
		return
	}
	r, err := strconv.Atoi(c.Param("r"))
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверная координата r",
		})
		return
	}
	includeTiles := c.Query("tiles") == "true"

	var (
		detail map[string]interface{}
		found  bool
	)
	alive := rs.syncLoop(c, func() {
		chunk, ok := rs.loop.Streamer().State().ChunkAt(hex.Axial{Q: q, R: r})
		if !ok {
			return
		}
		found = true

		detail = map[string]interface{}{
			"q":        chunk.Coords.Q,
			"r":        chunk.Coords.R,
			"biome":    chunk.Biome.String(),
			"tiles":    len(chunk.Tiles),
			"walls":    chunk.WallCount(),
			"entities": chunk.EntityCount(),
		}
		if includeTiles {
			tiles := make([]map[string]interface{}, 0, len(chunk.Tiles))
			for i := range chunk.Tiles {
				tile := &chunk.Tiles[i]
				entry := map[string]interface{}{
					"q":    tile.Coord.Q,
					"r":    tile.Coord.R,
					"type": tile.Type.String(),
				}
				if tile.Entity != world.EntityNone {
					entry["entity"] = tile.Entity.String()
				}
				tiles = append(tiles, entry)
			}
			detail["tile_list"] = tiles
		}
	})
	if !alive {
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: fmt.Sprintf("Чанк (%d, %d) не резидентен", q, r),
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Чанк найден",
		Data:    detail,
	})
}

// handleGetObservers возвращает список наблюдателей
func (rs *RestServer) handleGetObservers(c *gin.Context) {
	var observers []map[string]interface{}
	ok := rs.syncLoop(c, func() {
		for _, obs := range rs.loop.Observers().All() {
			observers = append(observers, map[string]interface{}{
				"id": obs.ID.String(),
				"x":  obs.Position.X,
				"y":  obs.Position.Y,
			})
		}
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Список наблюдателей",
		Data: map[string]interface{}{
			"observers": observers,
			"total":     len(observers),
		},
	})
}

// handleCreateObserver создает наблюдателя в указанной позиции
func (rs *RestServer) handleCreateObserver(c *gin.Context) {
	var req ObserverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса: " + err.Error(),
		})
		return
	}

	// Указатель наблюдателя принадлежит горутине цикла, поэтому
	// всё нужное для ответа снимаем внутри команды.
	var id string
	ok := rs.syncLoop(c, func() {
		id = rs.loop.Observers().Add(hex.Point{X: req.X, Y: req.Y}).ID.String()
	})
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, GenericResponse{
		Success: true,
		Message: "Наблюдатель создан",
		Data: map[string]interface{}{
			"id": id,
			"x":  req.X,
			"y":  req.Y,
		},
	})
}

// handleMoveObserver перемещает наблюдателя
func (rs *RestServer) handleMoveObserver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный идентификатор наблюдателя",
		})
		return
	}

	var req ObserverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса: " + err.Error(),
		})
		return
	}

	var moved bool
	ok := rs.syncLoop(c, func() {
		moved = rs.loop.Observers().Move(id, hex.Point{X: req.X, Y: req.Y})
	})
	if !ok {
		return
	}
	if !moved {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Наблюдатель не найден",
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Наблюдатель перемещён",
	})
}

// handleRemoveObserver удаляет наблюдателя
func (rs *RestServer) handleRemoveObserver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный идентификатор наблюдателя",
		})
		return
	}

	var removed bool
	ok := rs.syncLoop(c, func() {
		removed = rs.loop.Observers().Remove(id)
	})
	if !ok {
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Наблюдатель не найден",
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Наблюдатель удалён",
	})
}

// handleConsole выполняет команду консоли разработчика
func (rs *RestServer) handleConsole(c *gin.Context) {
	var req ConsoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса: " + err.Error(),
		})
		return
	}

	output, err := rs.console.Execute(req.Command)
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Команда выполнена",
		Data: map[string]interface{}{
			"output": output,
		},
	})
}

// handleHealth проверка состояния сервера
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// Start запускает REST сервер (блокирующий вызов)
func (rs *RestServer) Start() error {
	logger := logging.GetAPILogger()
	logger.Info("REST API слушает на %s", rs.port)

	if err := rs.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop останавливает REST сервер, дожидаясь активных запросов
func (rs *RestServer) Stop(ctx context.Context) error {
	return rs.httpServer.Shutdown(ctx)
}
