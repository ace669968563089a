package processing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insighthub/meeting-insights/internal/domain/repositories"
)

// Scheduler runs the batch pipeline on a fixed interval.
type Scheduler struct {
	orchestrator *Orchestrator
	interval     time.Duration
	runOnBoot    bool
	logger       *zap.Logger

	stopChan  chan struct{}
	wg        sync.WaitGroup
	isRunning bool
	mutex     sync.Mutex
}

// NewScheduler constructs a batch scheduler
func NewScheduler(orchestrator *Orchestrator, interval time.Duration, runOnBoot bool, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		orchestrator: orchestrator,
		interval:     interval,
		runOnBoot:    runOnBoot,
		logger:       logger,
	}
}

// Start launches the scheduler goroutine
func (s *Scheduler) Start(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.isRunning {
		return
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})

	s.logger.Info("🚀 Starting batch scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_boot", s.runOnBoot),
	)

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop signals the scheduler to stop and waits for the current run to finish
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isRunning {
		return
	}

	s.logger.Info("🛑 Stopping batch scheduler...")
	close(s.stopChan)
	s.wg.Wait()
	s.isRunning = false
	s.logger.Info("✅ Batch scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	if s.runOnBoot {
		if err := s.orchestrator.RunBatch(ctx); err != nil {
			s.logger.Error("❌ Boot batch run failed", zap.Error(err))
		}
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.orchestrator.RunBatch(ctx); err != nil {
				s.logger.Error("❌ Scheduled batch run failed", zap.Error(err))
			}
		}
	}
}

// Consumer pulls single-item triggers off the processing queue and hands
// them to the orchestrator.
type Consumer struct {
	orchestrator *Orchestrator
	queue        repositories.ProcessingQueue
	workerCount  int
	logger       *zap.Logger

	stopChan  chan struct{}
	wg        sync.WaitGroup
	isRunning bool
	mutex     sync.Mutex
}

// NewConsumer constructs a queue consumer pool
func NewConsumer(orchestrator *Orchestrator, queue repositories.ProcessingQueue, workerCount int, logger *zap.Logger) *Consumer {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Consumer{
		orchestrator: orchestrator,
		queue:        queue,
		workerCount:  workerCount,
		logger:       logger,
	}
}

// Start launches the worker goroutines
func (c *Consumer) Start(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.isRunning {
		return
	}
	c.isRunning = true
	c.stopChan = make(chan struct{})

	c.logger.Info("🚀 Starting queue consumers",
		zap.Int("worker_count", c.workerCount),
	)

	for i := 0; i < c.workerCount; i++ {
		c.wg.Add(1)
		go c.worker(ctx, i)
	}
}

// Stop signals the workers to stop and waits for in-flight items
func (c *Consumer) Stop() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.isRunning {
		return
	}

	c.logger.Info("🛑 Stopping queue consumers...")
	close(c.stopChan)
	c.wg.Wait()
	c.isRunning = false
	c.logger.Info("✅ Queue consumers stopped")
}

func (c *Consumer) worker(ctx context.Context, workerID int) {
	defer c.wg.Done()

	c.logger.Info("👷 Queue worker started", zap.Int("worker_id", workerID))

	for {
		select {
		case <-c.stopChan:
			c.logger.Info("👷 Queue worker stopping", zap.Int("worker_id", workerID))
			return
		case <-ctx.Done():
			return
		default:
		}

		id, err := c.queue.Dequeue(ctx)
		if err != nil {
			c.logger.Error("❌ Failed to dequeue trigger",
				zap.Int("worker_id", workerID),
				zap.Error(err),
			)
			select {
			case <-c.stopChan:
				return
			case <-time.After(2 * time.Second):
			}
			continue
		}
		if id == uuid.Nil {
			// Poll timeout, nothing queued
			continue
		}

		c.logger.Info("👷 Worker picked up transcript",
			zap.Int("worker_id", workerID),
			zap.String("transcript_id", id.String()),
		)

		if err := c.orchestrator.RunOne(ctx, id); err != nil {
			c.logger.Error("❌ Queued transcript processing failed",
				zap.Int("worker_id", workerID),
				zap.String("transcript_id", id.String()),
				zap.Error(err),
			)
		}
	}
}
