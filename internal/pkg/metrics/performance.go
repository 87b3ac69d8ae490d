package metrics

import (
	"runtime"
	"time"
)

type PerformanceMetrics struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	AllocBytes uint64
	GCCycles   uint32
}

// CapturePerformance runs fn and reports its wall time, bytes allocated and
// GC cycles. Allocation figures are process wide.
func CapturePerformance(fn func()) *PerformanceMetrics {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	startAlloc := stats.TotalAlloc
	startGC := stats.NumGC

	metrics := &PerformanceMetrics{
		StartTime: time.Now(),
	}

	fn()

	runtime.ReadMemStats(&stats)
	metrics.EndTime = time.Now()
	metrics.Duration = metrics.EndTime.Sub(metrics.StartTime)
	metrics.AllocBytes = stats.TotalAlloc - startAlloc
	metrics.GCCycles = stats.NumGC - startGC

	return metrics
}
