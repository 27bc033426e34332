package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/internal/infrastructure/buffer"
)

const probeTimeout = 3 * time.Second

// Monitor probes Postgres, Redis and the local buffer on an interval and
// caches the combined result. The buffer processor consults it before
// replaying queued writes; the health endpoint reports it verbatim.
type Monitor struct {
	pg     *pgxpool.Pool
	redis  *redislib.Client
	buffer *buffer.Store

	interval time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	current Status

	stopOnce sync.Once
	stopCh   chan struct{}
}

func New(pg *pgxpool.Pool, redis *redislib.Client, buf *buffer.Store, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		pg:       pg,
		redis:    redis,
		buffer:   buf,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the probe loop until Stop is called. The first probe happens
// immediately so callers never observe the zero Status for a full interval.
func (m *Monitor) Start() {
	go func() {
		m.probe()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.probe()
			case <-m.stopCh:
				return
			}
		}
	}()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// IsOnline reports whether both primary stores answered the last probe.
func (m *Monitor) IsOnline() bool {
	return m.GetStatus().Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// probe checks all dependencies in parallel and swaps in the new snapshot.
func (m *Monitor) probe() {
	status := Status{LastCheck: time.Now()}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		status.PostgreSQL = m.pingPostgres()
	}()
	go func() {
		defer wg.Done()
		status.Redis = m.pingRedis()
	}()
	go func() {
		defer wg.Done()
		status.Buffer, status.BufferSize = m.inspectBuffer()
	}()
	wg.Wait()

	m.mu.Lock()
	previous := m.current
	m.current = status
	m.mu.Unlock()

	if previous.Healthy() && !status.Healthy() {
		m.logger.Warn("datastore connectivity lost",
			zap.Bool("postgresql", status.PostgreSQL),
			zap.Bool("redis", status.Redis))
	}
	if !previous.Healthy() && status.Healthy() && !previous.LastCheck.IsZero() {
		m.logger.Info("datastore connectivity restored", zap.Int("buffered_items", status.BufferSize))
	}
}

func (m *Monitor) pingPostgres() bool {
	if m.pg == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return m.pg.Ping(ctx) == nil
}

func (m *Monitor) pingRedis() bool {
	if m.redis == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return m.redis.Ping(ctx).Err() == nil
}

func (m *Monitor) inspectBuffer() (bool, int) {
	if m.buffer == nil {
		return false, 0
	}
	size, err := m.buffer.Size()
	if err != nil {
		m.logger.Warn("buffer inspection failed", zap.Error(err))
		return false, size
	}
	return true, size
}
