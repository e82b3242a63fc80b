package jobs

import (
	"context"
	"time"

	"bhara-backend/internal/logger"
)

// StartDueRentals moves accepted rentals whose start time has passed to
// in_progress
func (jr *JobRunner) StartDueRentals() {
	jr.runWithRecovery("StartDueRentals", func() {
		ctx := context.Background()

		started, err := jr.rentals.StartDueRentals(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to start due rentals", "error", err)
			return
		}
		logger.Info("Started due rentals", "count", started)
	})
}

// CompleteDueRentals moves in_progress rentals whose end time has passed to
// completed
func (jr *JobRunner) CompleteDueRentals() {
	jr.runWithRecovery("CompleteDueRentals", func() {
		ctx := context.Background()

		completed, err := jr.rentals.CompleteDueRentals(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to complete due rentals", "error", err)
			return
		}
		logger.Info("Completed due rentals", "count", completed)
	})
}
