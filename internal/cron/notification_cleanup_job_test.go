package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopdesk/shopdesk-backend/pkg/logger"
)

type fakePruner struct {
	cutoff  time.Time
	deleted int64
	err     error
}

func (f *fakePruner) PruneRead(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, f.err
}

func TestNotificationCleanupJobUsesRetentionCutoff(t *testing.T) {
	pruner := &fakePruner{deleted: 4}
	job, err := NewNotificationCleanupJob(NotificationCleanupJobParams{
		Logger:        logger.New(logger.Options{ServiceName: "cron-test"}),
		Notifications: pruner,
		Retention:     30 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	before := time.Now().UTC()
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	wantAround := before.Add(-30 * 24 * time.Hour)
	if pruner.cutoff.Before(wantAround.Add(-time.Minute)) || pruner.cutoff.After(wantAround.Add(time.Minute)) {
		t.Fatalf("cutoff %v not near %v", pruner.cutoff, wantAround)
	}
}

func TestNotificationCleanupJobPropagatesErrors(t *testing.T) {
	job, err := NewNotificationCleanupJob(NotificationCleanupJobParams{
		Logger:        logger.New(logger.Options{ServiceName: "cron-test"}),
		Notifications: &fakePruner{err: errors.New("db down")},
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected prune error to propagate")
	}
}
