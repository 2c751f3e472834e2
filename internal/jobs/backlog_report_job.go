package jobs

import (
	"context"
	"log/slog"
	"time"

	"bibdelivery/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// BacklogReportJob periodically reports orders waiting for assignment.
// Created orders are invisible to couriers until an admin assigns them, so a
// growing backlog is the first sign assignments have stalled.
type BacklogReportJob struct {
	db     *gorm.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// NewBacklogReportJob creates a job that reports the unassigned backlog
// every minute.
func NewBacklogReportJob(db *gorm.DB, logger *slog.Logger) *BacklogReportJob {
	return &BacklogReportJob{
		db:     db,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "backlog_report_job"),
	}
}

// Start begins the backlog report job.
func (j *BacklogReportJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.report(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Backlog report job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backlog report job started (running every minute)")
	return nil
}

// Stop stops the backlog report job.
func (j *BacklogReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Backlog report job stopped")
}

func (j *BacklogReportJob) report(ctx context.Context) error {
	var (
		count  int64
		oldest *time.Time
	)

	err := j.db.WithContext(ctx).Table("orders").
		Where("status = ?", int(order.Created)).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		j.logger.DebugContext(ctx, "No orders waiting for assignment")
		return nil
	}

	err = j.db.WithContext(ctx).Table("orders").
		Where("status = ?", int(order.Created)).
		Select("MIN(created_at)").
		Scan(&oldest).Error
	if err != nil {
		return err
	}

	attrs := []any{"pending_orders", count}
	if oldest != nil {
		attrs = append(attrs, "oldest_waiting", time.Since(*oldest).Round(time.Second).String())
	}
	j.logger.InfoContext(ctx, "Orders waiting for courier assignment", attrs...)
	return nil
}
