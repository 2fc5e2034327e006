package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/shopcart/pkg/logger"
)

type fakePurger struct {
	cutoff  time.Time
	deleted int64
	err     error
	calls   int
}

func (f *fakePurger) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.calls++
	f.cutoff = cutoff
	return f.deleted, f.err
}

type purgeCounter map[string]int64

func (p purgeCounter) AddPurged(job string, n int64) { p[job] += n }

func newSlotRetentionJob(t *testing.T, purger *fakePurger, retention time.Duration, rec PurgeRecorder) *slotRetentionJob {
	t.Helper()
	jobIface, err := NewSlotRetentionJob(SlotRetentionJobParams{
		Logger:    logger.Nop(),
		Slots:     purger,
		Retention: retention,
		Metrics:   rec,
	})
	if err != nil {
		t.Fatalf("NewSlotRetentionJob: %v", err)
	}
	job, ok := jobIface.(*slotRetentionJob)
	if !ok {
		t.Fatalf("expected slotRetentionJob, got %T", jobIface)
	}
	return job
}

func TestSlotRetentionJobPurgesBeforeCutoff(t *testing.T) {
	now := time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)
	purger := &fakePurger{deleted: 12}
	counter := purgeCounter{}
	job := newSlotRetentionJob(t, purger, 48*time.Hour, counter)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := now.Add(-48 * time.Hour); !purger.cutoff.Equal(want) {
		t.Fatalf("expected cutoff %s, got %s", want, purger.cutoff)
	}
	if counter["slot-retention"] != 12 {
		t.Fatalf("expected 12 purged slots recorded, got %d", counter["slot-retention"])
	}
	if job.Name() != "slot-retention" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
}

func TestSlotRetentionJobDefaultsAndErrors(t *testing.T) {
	purger := &fakePurger{err: errors.New("db down")}
	job := newSlotRetentionJob(t, purger, 0, nil)
	if job.retention != defaultSlotRetention {
		t.Fatalf("expected default retention, got %s", job.retention)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if _, err := NewSlotRetentionJob(SlotRetentionJobParams{Logger: logger.Nop()}); err == nil {
		t.Fatal("expected error without purger")
	}
}
