package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/shopcart/pkg/logger"
)

const (
	slotRetentionJobName = "slot-retention"
	defaultSlotRetention = 30 * 24 * time.Hour
)

// SlotPurger deletes cart slots not written since cutoff.
type SlotPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// PurgeRecorder counts purged slots.
type PurgeRecorder interface {
	AddPurged(job string, n int64)
}

type SlotRetentionJobParams struct {
	Logger    *logger.Logger
	Slots     SlotPurger
	Retention time.Duration
	Metrics   PurgeRecorder
}

// NewSlotRetentionJob removes carts abandoned for longer than the retention.
func NewSlotRetentionJob(params SlotRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Slots == nil {
		return nil, fmt.Errorf("slot purger required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultSlotRetention
	}
	return &slotRetentionJob{
		logg:      params.Logger,
		slots:     params.Slots,
		retention: retention,
		metrics:   params.Metrics,
		now:       time.Now,
	}, nil
}

type slotRetentionJob struct {
	logg      *logger.Logger
	slots     SlotPurger
	retention time.Duration
	metrics   PurgeRecorder
	now       func() time.Time
}

func (j *slotRetentionJob) Name() string { return slotRetentionJobName }

func (j *slotRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.retention)
	deleted, err := j.slots.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("slot retention: %w", err)
	}
	if j.metrics != nil {
		j.metrics.AddPurged(slotRetentionJobName, deleted)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":        cutoff,
		"retention":     j.retention.String(),
		"slots_deleted": deleted,
	})
	j.logg.Info(logCtx, "janitor.slots_purged")
	return nil
}
