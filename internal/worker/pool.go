// Package worker implements the buffered worker pool behind the stat event
// stream. Committed stat and rank writes are queued here and, off the request
// path, batched into the ClickHouse audit table and fanned out over Redis.
// A full queue sheds events instead of blocking the writer.
package worker

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/g5stats/stats-api/internal/models"
)

// Prometheus metrics
var (
	eventsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "g5stats_events_ingested_total",
		Help: "Total number of stat events queued",
	})

	eventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "g5stats_events_processed_total",
		Help: "Total number of stat events written by workers",
	})

	eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "g5stats_events_failed_total",
		Help: "Total number of stat events that failed processing",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "g5stats_worker_queue_depth",
		Help: "Current depth of the worker queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "g5stats_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	eventsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "g5stats_events_load_shed_total",
		Help: "Total number of stat events dropped due to load shedding",
	})
)

const insertStatEvents = `
	INSERT INTO stat_events (
		event_id, kind, match_id, map_id, steam_id, season_id,
		rows, payload, request_id, timestamp
	)`

// Job represents a unit of work for the worker pool
type Job struct {
	Event     *models.StatEvent
	Timestamp time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Live          LiveStore
	Channel       string
	Logger        *zap.Logger
}

// Pool manages a pool of workers for async event processing
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	stopped  atomic.Bool
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.Channel == "" {
		cfg.Channel = "g5stats:events"
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
		"clickhouse", p.config.ClickHouse != nil,
		"redis", p.config.Live != nil,
	)
}

// Stop drains the queue, flushes every worker's batch and waits for them.
func (p *Pool) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	p.logger.Info("Stopping worker pool...")

	close(p.jobQueue)
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds an event to the queue without blocking. It returns false when
// the event was shed because the queue is full or the pool is stopping.
func (p *Pool) Enqueue(event *models.StatEvent) bool {
	if p.stopped.Load() || (p.ctx != nil && p.ctx.Err() != nil) {
		eventsLoadShed.Inc()
		return false
	}

	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue event (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- Job{Event: event, Timestamp: time.Now()}:
		eventsIngested.Inc()
		return true
	default:
		eventsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}

// worker processes jobs from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			eventsFailed.Add(float64(len(batch)))
		} else {
			eventsProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}

			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			// Parent context gone: take what is already queued and stop.
			for {
				select {
				case job, ok := <-p.jobQueue:
					if ok {
						batch = append(batch, job)
						continue
					}
				default:
				}
				break
			}
			flush()
			return
		}
	}
}

// processBatch writes a batch to ClickHouse and publishes it live. The two
// sinks are independent: a ClickHouse failure does not hold back the
// live updates.
func (p *Pool) processBatch(batch []Job) error {
	if len(batch) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p.processBatchSideEffects(ctx, batch)

	if p.config.ClickHouse == nil {
		return nil
	}

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, insertStatEvents)
	if err != nil {
		return err
	}

	for _, job := range batch {
		row := convertToClickHouseEvent(job)
		err := chBatch.Append(
			row.EventID,
			row.Kind,
			row.MatchID,
			row.MapID,
			row.SteamID,
			row.SeasonID,
			row.Rows,
			row.Payload,
			row.RequestID,
			row.Timestamp,
		)
		if err != nil {
			p.logger.Warnw("Failed to append event to batch", "error", err, "kind", job.Event.Kind)
			continue
		}
	}

	if err := chBatch.Send(); err != nil {
		p.logger.Errorw("Failed to send batch to ClickHouse", "error", err, "batchSize", len(batch))
		return err
	}
	return nil
}

// processBatchSideEffects publishes each event on the live channel and bumps
// the per-kind counters.
func (p *Pool) processBatchSideEffects(ctx context.Context, batch []Job) {
	if p.config.Live == nil {
		return
	}

	for _, job := range batch {
		msg, err := json.Marshal(job.Event)
		if err != nil {
			p.logger.Warnw("Failed to encode event", "error", err, "kind", job.Event.Kind)
			continue
		}
		if err := p.config.Live.Publish(ctx, p.config.Channel, msg); err != nil {
			p.logger.Warnw("Failed to publish event", "error", err, "kind", job.Event.Kind)
		}
		if _, err := p.config.Live.Incr(ctx, counterKey(job.Event)); err != nil {
			p.logger.Warnw("Failed to bump event counter", "error", err, "kind", job.Event.Kind)
		}
	}
}

func counterKey(ev *models.StatEvent) string {
	return "g5stats:events:" + string(ev.Kind)
}

// convertToClickHouseEvent flattens an event into an audit row. The receipt
// time stands in for a missing event timestamp.
func convertToClickHouseEvent(job Job) models.ClickHouseStatEvent {
	ev := job.Event

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = job.Timestamp
	}

	var payload string
	if ev.Payload != nil {
		if b, err := json.Marshal(ev.Payload); err == nil {
			payload = string(b)
		}
	}

	return models.ClickHouseStatEvent{
		EventID:   ev.ID,
		Kind:      string(ev.Kind),
		MatchID:   ev.MatchID,
		MapID:     ev.MapID,
		SteamID:   ev.SteamID,
		SeasonID:  ev.SeasonID,
		Rows:      ev.Rows,
		Payload:   payload,
		RequestID: ev.RequestID,
		Timestamp: ts,
	}
}
