package workers

import (
	"context"
	"fmt"

	"gym_backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Job - фоновая задача с cron-расписанием
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler запускает задачи по расписанию (robfig/cron)
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler() *Scheduler {
	log := cronLogger{}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(log),
			cron.SkipIfStillRunning(log),
		), cron.WithLogger(log)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add регистрирует задачу; spec - стандартное cron-выражение из 5 полей
func (s *Scheduler) Add(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.runJob(job)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for %s: %w", spec, job.Name(), err)
	}
	logger.Info("Job scheduled", "job", job.Name(), "spec", spec)
	return nil
}

// RunNow выполняет задачу вне расписания (например, при старте)
func (s *Scheduler) RunNow(job Job) {
	go s.runJob(job)
}

func (s *Scheduler) runJob(job Job) {
	if s.ctx.Err() != nil {
		return
	}
	err := job.Run(s.ctx)
	logger.WorkerLog(job.Name(), "run", err)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает расписание и ждет завершения текущих задач
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		logger.Warn("Scheduler stop timed out")
	}
}

// cronLogger направляет сообщения cron в slog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
