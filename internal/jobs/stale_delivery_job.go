package jobs

import (
	"context"
	"log/slog"
	"time"

	"bibdelivery/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// staleDeliveryThreshold is how long an order may stay out for delivery
// before it is flagged. Race-day deliveries within the serviceable zone
// should never take longer than this.
const staleDeliveryThreshold = 2 * time.Hour

// StaleDeliveryJob flags orders that have been out for delivery for too long.
// It does not change order state; couriers or admins resolve flagged orders
// through the regular action endpoints.
type StaleDeliveryJob struct {
	db     *gorm.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// NewStaleDeliveryJob creates a job that scans for stale deliveries
// every five minutes.
func NewStaleDeliveryJob(db *gorm.DB, logger *slog.Logger) *StaleDeliveryJob {
	return &StaleDeliveryJob{
		db:     db,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "stale_delivery_job"),
	}
}

// Start begins the stale delivery job.
func (j *StaleDeliveryJob) Start() error {
	_, err := j.cron.AddFunc("0 */5 * * * *", func() {
		ctx := context.Background()
		if err := j.scan(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale delivery scan failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale delivery job started (running every five minutes)")
	return nil
}

// Stop stops the stale delivery job.
func (j *StaleDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale delivery job stopped")
}

type staleOrderRow struct {
	ID        string
	CourierID *string
	UpdatedAt time.Time
}

func (j *StaleDeliveryJob) scan(ctx context.Context) error {
	cutoff := time.Now().Add(-staleDeliveryThreshold)

	var rows []staleOrderRow
	err := j.db.WithContext(ctx).Table("orders").
		Select("id, courier_id, updated_at").
		Where("status = ? AND updated_at < ?", int(order.OutForDelivery), cutoff).
		Scan(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		attrs := []any{
			"order_id", row.ID,
			"out_for", time.Since(row.UpdatedAt).Round(time.Second).String(),
		}
		if row.CourierID != nil {
			attrs = append(attrs, "courier_id", *row.CourierID)
		}
		j.logger.WarnContext(ctx, "Order out for delivery past threshold", attrs...)
	}

	return nil
}
