package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"fitzone/internal/pkg/logger"
	"fitzone/internal/pkg/metrics"
)

// JobFunc does one pass of background work and reports how many records it touched.
type JobFunc func(ctx context.Context) (int, error)

type Scheduler struct {
	cron *cron.Cron
	log  logrus.FieldLogger

	mu  sync.Mutex
	ctx context.Context
}

func New(log logrus.FieldLogger) *Scheduler {
	log = logger.OrDiscard(log)
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)), cron.WithLogger(cl)),
		log:  log,
		ctx:  context.Background(),
	}
}

// Add registers fn under a standard cron spec or a "@every 1h" descriptor.
func (s *Scheduler) Add(name, spec string, fn JobFunc) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()
		Run(ctx, s.log, name, fn)
	})
	return err
}

// Start runs jobs until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
	go func() {
		<-ctx.Done()
		s.cron.Stop()
	}()
}

// Stop prevents new runs and waits for running jobs up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stopped before running jobs finished")
	}
}

// Run executes fn once with logging and job metrics.
func Run(ctx context.Context, log logrus.FieldLogger, name string, fn JobFunc) (int, error) {
	log = logger.OrDiscard(log)
	start := time.Now()
	n, err := fn(ctx)
	d := time.Since(start)
	metrics.RecordJobRun(name, err == nil, d)

	entry := log.WithFields(logrus.Fields{"job": name, "affected": n, "duration": d.String()})
	if err != nil {
		entry.WithError(err).Error("job failed")
		return n, err
	}
	if n > 0 {
		entry.Info("job finished")
	} else {
		entry.Debug("job finished")
	}
	return n, nil
}

type cronLogger struct {
	log logrus.FieldLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.WithFields(fields(keysAndValues)).Debug("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.WithFields(fields(keysAndValues)).WithError(err).Error("cron: " + msg)
}

func fields(kv []any) logrus.Fields {
	f := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			f[k] = kv[i+1]
		}
	}
	return f
}
