package jobs

import (
	"context"
	"time"

	"toolshare-backend/internal/logger"
)

// SendStartReminders notifies renters and owners of rentals starting
// tomorrow. Delivery bookkeeping lives in the reminder service; the job
// only supplies the clock and reports the batch result.
func (jr *JobRunner) SendStartReminders() {
	jr.runWithRecovery("SendStartReminders", func() {
		ctx := context.Background()

		sent, err := jr.services.Reminder.RunDueReminders(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to run start reminders", "error", err)
			return
		}

		logger.Info("Start reminders sent", "count", sent)
	})
}
