package metrics

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"passwordAuditBackend/internal/core/domain"
)

// Collector counts analyses and advisory calls and keeps a periodically
// refreshed snapshot of process resources.
type Collector struct {
	mu               sync.RWMutex
	analyses         int64
	byStrength       map[domain.StrengthLevel]int64
	advisoryCalls    int64
	advisoryFailures int64
	resources        domain.ResourceMetrics
	updateInterval   time.Duration
	stop             chan struct{}
	stopOnce         sync.Once
}

func NewCollector(interval time.Duration) *Collector {
	if interval <= 0 {
		interval = time.Second
	}
	return &Collector{
		byStrength:     make(map[domain.StrengthLevel]int64, len(domain.StrengthLevels)),
		updateInterval: interval,
		stop:           make(chan struct{}),
	}
}

// Start takes a first sample synchronously and refreshes it in the
// background until ctx is done or Stop is called.
func (c *Collector) Start(ctx context.Context) {
	c.sample()
	go c.collect(ctx)
}

func (c *Collector) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Collector) RecordAnalysis(level domain.StrengthLevel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.analyses++
	c.byStrength[level]++
}

func (c *Collector) RecordAdvisory(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advisoryCalls++
	if err != nil {
		c.advisoryFailures++
	}
}

func (c *Collector) Snapshot() domain.ServiceStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byStrength := make(map[domain.StrengthLevel]int64, len(domain.StrengthLevels))
	for _, level := range domain.StrengthLevels {
		byStrength[level] = c.byStrength[level]
	}

	return domain.ServiceStats{
		Analyses:         c.analyses,
		ByStrength:       byStrength,
		AdvisoryCalls:    c.advisoryCalls,
		AdvisoryFailures: c.advisoryFailures,
		Resources:        c.resources,
	}
}

func (c *Collector) collect(ctx context.Context) {
	ticker := time.NewTicker(c.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case <-ticker.C:
			c.sample()
		}
	}
}

func (c *Collector) sample() {
	snapshot := domain.ResourceMetrics{
		Goroutines:  runtime.NumGoroutine(),
		LastUpdated: time.Now(),
	}

	// Zero interval compares against the previous call instead of blocking.
	if usage, err := cpu.Percent(0, false); err != nil {
		log.Debug().Err(err).Msg("CPU sampling failed")
	} else if len(usage) > 0 {
		snapshot.CPUUsage = usage[0]
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		log.Debug().Err(err).Msg("Memory sampling failed")
	} else {
		snapshot.SystemMemPct = vm.UsedPercent
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	snapshot.MemoryUsageMB = int64(m.Alloc / 1024 / 1024)

	c.mu.Lock()
	c.resources = snapshot
	c.mu.Unlock()
}
