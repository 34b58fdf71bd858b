package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionPurger removes sessions that have been idle longer than ttl.
type SessionPurger interface {
	PurgeIdle(ctx context.Context, ttl time.Duration) (int, error)
}

// SessionJanitor periodically purges idle sessions so memory stays bounded.
type SessionJanitor struct {
	cron   *cron.Cron
	purger SessionPurger
	ttl    time.Duration
}

func NewSessionJanitor(purger SessionPurger, ttl time.Duration) (*SessionJanitor, error) {
	j := &SessionJanitor{
		cron:   cron.New(),
		purger: purger,
		ttl:    ttl,
	}
	if _, err := j.cron.AddFunc(purgeSchedule(ttl), j.runOnce); err != nil {
		return nil, fmt.Errorf("failed to schedule session purge: %w", err)
	}
	return j, nil
}

func (j *SessionJanitor) Start() {
	slog.Info("Session janitor started", "ttl", j.ttl, "schedule", purgeSchedule(j.ttl))
	j.cron.Start()
}

// Stop waits for a running purge to finish.
func (j *SessionJanitor) Stop() {
	<-j.cron.Stop().Done()
}

func (j *SessionJanitor) runOnce() {
	if _, err := j.purger.PurgeIdle(context.Background(), j.ttl); err != nil {
		slog.Error("Failed to purge sessions", "error", err)
	}
}

// 最短1分間隔
func purgeSchedule(ttl time.Duration) string {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return "@every " + interval.String()
}
