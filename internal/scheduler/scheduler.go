// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single job run.
const jobTimeout = 5 * time.Minute

// JobFunc is the work of a scheduled job.
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	schedule string
	entryID  cron.EntryID
	fn       JobFunc
	lastRun  time.Time
	lastErr  error
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name     string
	Schedule string
	LastRun  time.Time
	NextRun  time.Time
	LastErr  error
}

// Scheduler wraps a cron instance with named jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	mu   sync.Mutex
	jobs map[string]*job
}

// New creates a new scheduler. Jobs added before Start run once it starts.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
		jobs:   make(map[string]*job),
	}
}

// Add registers fn under name on a standard cron schedule or a descriptor
// such as "@daily".
func (s *Scheduler) Add(name, schedule string, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	j := &job{name: name, schedule: schedule, fn: fn}
	id, err := s.cron.AddFunc(schedule, func() { _ = s.run(j) })
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %q: %w", schedule, name, err)
	}
	j.entryID = id
	s.jobs[name] = j
	return nil
}

// Start begins running jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs and stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// Trigger runs the named job immediately and returns its error.
func (s *Scheduler) Trigger(name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %q not found", name)
	}
	return s.run(j)
}

// Jobs lists registered jobs by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, JobInfo{
			Name:     j.name,
			Schedule: j.schedule,
			LastRun:  j.lastRun,
			NextRun:  s.cron.Entry(j.entryID).Next,
			LastErr:  j.lastErr,
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

func (s *Scheduler) run(j *job) error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	err := j.fn(ctx)

	s.mu.Lock()
	j.lastRun = start
	j.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("scheduled job failed", "job", j.name, "error", err)
		return err
	}
	s.logger.Debug("scheduled job finished", "job", j.name, "duration", time.Since(start))
	return nil
}
