package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// reconciliationSchedule runs the detector every five minutes.
const reconciliationSchedule = "0 */5 * * * *"

// minEntryAge keeps freshly written log rows out of the report: a booking
// whose save is still in flight is not yet a problem.
const minEntryAge = 2 * time.Minute

// BookingReconciliationJob detects orders stuck in the booking partial-failure
// window: the courier API log shows a successful booking but the order row
// carries no tracking number, meaning the local save failed after the external
// call succeeded.
//
// The job is a detector only. It never mutates orders: the correct fix
// (re-attach the tracking number or void the booking with the partner) needs
// a human decision, so the job just logs each affected order loudly.
type BookingReconciliationJob struct {
	db     *gorm.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// NewBookingReconciliationJob creates the detector job.
func NewBookingReconciliationJob(db *gorm.DB, logger *slog.Logger) *BookingReconciliationJob {
	return &BookingReconciliationJob{
		db:     db,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "booking_reconciliation_job"),
	}
}

// Start begins the detection job on its five-minute schedule.
func (j *BookingReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(reconciliationSchedule, func() {
		ctx := context.Background()
		if err := j.detect(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Booking reconciliation scan failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Booking reconciliation job started (running every 5 minutes)")
	return nil
}

// Stop stops the detection job.
func (j *BookingReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Booking reconciliation job stopped")
}

// detect scans for successful booking log entries whose order still has no
// tracking number and logs each one.
func (j *BookingReconciliationJob) detect(ctx context.Context) error {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT
			l.order_id,
			l.courier_type,
			l.created_at
		FROM courier_api_logs l
		JOIN orders o ON o.id = l.order_id
		WHERE l.endpoint = 'book'
		  AND l.success = true
		  AND l.created_at < ?
		  AND o.tracking_number IS NULL
		ORDER BY l.created_at
	`, time.Now().UTC().Add(-minEntryAge)).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		var orderID uuid.UUID
		var courierType string
		var bookedAt time.Time

		if err = rows.Scan(&orderID, &courierType, &bookedAt); err != nil {
			return err
		}

		found++
		j.logger.WarnContext(ctx, "Order has a successful courier booking but no saved tracking number, manual reconciliation needed",
			"order_id", orderID.String(),
			"courier", courierType,
			"booked_at", bookedAt,
		)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	if found > 0 {
		j.logger.WarnContext(ctx, "Booking reconciliation scan finished", "orders_needing_attention", found)
	}
	return nil
}
