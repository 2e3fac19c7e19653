package metrics

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

var (
	HostCPUUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "host_cpu_usage_percent",
			Help: "Host CPU usage since the previous sample",
		},
	)

	HostMemoryUsed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "host_memory_used_bytes",
			Help: "Host memory in use",
		},
	)

	ProcessResidentMemory = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bidding_process_resident_memory_bytes",
			Help: "Resident set size of the service process",
		},
	)

	ProcessOpenFDs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bidding_process_open_fds",
			Help: "Open file descriptors, each SSE subscriber holds one",
		},
	)

	GoHeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bidding_go_heap_alloc_bytes",
			Help: "Bytes of allocated heap objects",
		},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bidding_goroutines",
			Help: "Number of goroutines, SSE subscribers included",
		},
	)
)

// SystemCollector снимает метрики хоста и собственного процесса.
type SystemCollector struct {
	proc *process.Process
}

func NewSystemCollector() *SystemCollector {
	c := &SystemCollector{}
	// без процесса собираются только метрики хоста и рантайма
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil { //nolint:gosec // pid помещается в int32
		c.proc = proc
	}

	return c
}

// StartSystemMetricsCollector снимает системные метрики раз в interval до отмены ctx.
func StartSystemMetricsCollector(ctx context.Context, interval time.Duration) {
	c := NewSystemCollector()
	// первый вызов cpu.Percent(0) лишь запоминает точку отсчета
	c.Collect(ctx)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Collect(ctx)
			}
		}
	}()
}

// Collect обновляет gauge-и. Ошибки отдельных источников пропускаются, gauge сохраняет прошлое значение.
func (c *SystemCollector) Collect(ctx context.Context) {
	if percent, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percent) > 0 {
		HostCPUUsage.Set(percent[0])
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		HostMemoryUsed.Set(float64(vm.Used))
	}

	if c.proc != nil {
		if info, err := c.proc.MemoryInfoWithContext(ctx); err == nil {
			ProcessResidentMemory.Set(float64(info.RSS))
		}
		if fds, err := c.proc.NumFDsWithContext(ctx); err == nil {
			ProcessOpenFDs.Set(float64(fds))
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	GoHeapAlloc.Set(float64(m.HeapAlloc))
	Goroutines.Set(float64(runtime.NumGoroutine()))
}
