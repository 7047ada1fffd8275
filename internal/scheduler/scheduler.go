// Package scheduler wires up the cron jobs that keep the marketplace
// document safe: periodic snapshots of the whole document and a store
// readability check that drives the gRPC health status.
package scheduler

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"jobmate/marketplace-service/internal/store"
)

const checkSpec = "@every 30s"

// Scheduler wraps robfig/cron and manages the snapshot and store check jobs.
type Scheduler struct {
	cron   *cron.Cron
	store  *store.Store
	fs     afero.Fs
	dir    string
	spec   string // cron spec, e.g. "@every 24h"; empty disables snapshots
	log    *zap.Logger
	health func(serving bool)
	now    func() time.Time
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithHealth registers a callback receiving the result of every store check.
func WithHealth(fn func(serving bool)) Option {
	return func(s *Scheduler) { s.health = fn }
}

// WithClock overrides the clock used to name snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a Scheduler that snapshots st into dir every intervalHours
// hours. intervalHours <= 0 disables snapshots; the store check always runs.
func New(st *store.Store, fs afero.Fs, dir string, intervalHours int, log *zap.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		cron:   cron.New(cron.WithLogger(cronLogger{log.Sugar()})),
		store:  st,
		fs:     fs,
		dir:    dir,
		log:    log,
		health: func(bool) {},
		now:    time.Now,
	}
	if intervalHours > 0 {
		s.spec = fmt.Sprintf("@every %dh", intervalHours)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers the jobs and starts the scheduler. Both jobs also run once
// immediately so health is accurate and a snapshot exists before the first
// tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.spec != "" {
		if _, err := s.cron.AddFunc(s.spec, func() { s.runSnapshot(ctx) }); err != nil {
			return fmt.Errorf("cron.AddFunc snapshot: %w", err)
		}
	}
	if _, err := s.cron.AddFunc(checkSpec, func() { s.CheckStore(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc check: %w", err)
	}

	s.cron.Start()
	s.log.Info("scheduler started", zap.String("snapshot", s.spec), zap.String("check", checkSpec))

	go s.CheckStore(ctx)
	if s.spec != "" {
		go s.runSnapshot(ctx)
	}
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// Snapshot writes the current document to a timestamped file in the
// snapshot directory and returns its path.
func (s *Scheduler) Snapshot(ctx context.Context) (string, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	data, err := store.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: create %s: %w", s.dir, err)
	}
	name := path.Join(s.dir, "marketplace-"+s.now().UTC().Format("20060102T150405Z")+".json")
	if err := afero.WriteFile(s.fs, name, data, 0o644); err != nil {
		return "", fmt.Errorf("snapshot: write %s: %w", name, err)
	}
	return name, nil
}

// CheckStore reads the store and reports the outcome to the health callback.
func (s *Scheduler) CheckStore(ctx context.Context) bool {
	_, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("store check failed", zap.String("store", s.store.Location()), zap.Error(err))
	}
	s.health(err == nil)
	return err == nil
}

func (s *Scheduler) runSnapshot(ctx context.Context) {
	name, err := s.Snapshot(ctx)
	if err != nil {
		s.log.Error("snapshot failed", zap.Error(err))
		return
	}
	s.log.Info("snapshot written", zap.String("path", name))
}

// cronLogger routes cron's own logging through zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
