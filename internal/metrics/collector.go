package metrics

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// StatusCounter nguồn đếm công việc theo trạng thái
type StatusCounter func() (map[string]int64, error)

// Collector thu thập chỉ số định kỳ
type Collector struct {
	db       *gorm.DB
	statuses StatusCounter
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewCollector tạo bộ thu thập chỉ số
func NewCollector(db *gorm.DB, statuses StatusCounter, interval time.Duration) *Collector {
	ctx, cancel := context.WithCancel(context.Background())
	return &Collector{
		db:       db,
		statuses: statuses,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start chạy bộ thu thập
func (c *Collector) Start() {
	go c.collect()
}

// Stop dừng bộ thu thập
func (c *Collector) Stop() {
	c.cancel()
	<-c.done
}

// collect thu thập chỉ số theo chu kỳ
func (c *Collector) collect() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			_ = UpdateDatabaseConnections(c.db)
			if c.statuses != nil {
				if counts, err := c.statuses(); err == nil {
					for status, count := range counts {
						UpdateTasksByStatus(status, float64(count))
					}
				}
			}
		}
	}
}
