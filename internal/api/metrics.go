package api

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/annel0/hex-world/internal/logging"
)

// ServerMetrics отдаёт метрики процесса для отладочного API
type ServerMetrics struct {
	startTime time.Time
	proc      *process.Process
}

// NewServerMetrics создает новый экземпляр метрик
func NewServerMetrics() *ServerMetrics {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logging.Warn("Не удалось получить дескриптор процесса: %v", err)
		proc = nil
	}
	return &ServerMetrics{
		startTime: time.Now(),
		proc:      proc,
	}
}

// GetUptime возвращает время работы сервера
func (sm *ServerMetrics) GetUptime() string {
	uptime := time.Since(sm.startTime)

	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	} else if hours > 0 {
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	}
	return fmt.Sprintf("%dс", seconds)
}

// GetMemoryUsage возвращает объём выделенной кучи Go в мегабайтах
func (sm *ServerMetrics) GetMemoryUsage() (float64, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Alloc) / 1024 / 1024, nil
}

// GetRSS возвращает резидентную память процесса в мегабайтах
func (sm *ServerMetrics) GetRSS() (float64, error) {
	if sm.proc == nil {
		return 0, fmt.Errorf("дескриптор процесса недоступен")
	}
	memInfo, err := sm.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return float64(memInfo.RSS) / 1024 / 1024, nil
}

// GetCPUUsage возвращает использование CPU процессом в процентах
func (sm *ServerMetrics) GetCPUUsage() (float64, error) {
	if sm.proc != nil {
		if cpuPercent, err := sm.proc.CPUPercent(); err == nil {
			return cpuPercent, nil
		}
	}

	// Если метрика процесса недоступна, берём системную
	cpuPercents, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil || len(cpuPercents) == 0 {
		return 0, err
	}
	return cpuPercents[0], nil
}

// GetDetailedMemoryStats возвращает детальную статистику памяти
func (sm *ServerMetrics) GetDetailedMemoryStats() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]interface{}{
		"alloc_mb":       float64(m.Alloc) / 1024 / 1024,
		"total_alloc_mb": float64(m.TotalAlloc) / 1024 / 1024,
		"sys_mb":         float64(m.Sys) / 1024 / 1024,
		"heap_alloc_mb":  float64(m.HeapAlloc) / 1024 / 1024,
		"heap_sys_mb":    float64(m.HeapSys) / 1024 / 1024,
		"num_gc":         m.NumGC,
		"goroutines":     runtime.NumGoroutine(),
	}
}
