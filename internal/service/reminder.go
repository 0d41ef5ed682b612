package service

import (
	"context"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
)

type reminderService struct {
	rentalRepo repository.RentalRequestRepository
	logRepo    repository.ReminderLogRepository
	emailSvc   EmailService
}

func NewReminderService(
	rentalRepo repository.RentalRequestRepository,
	logRepo repository.ReminderLogRepository,
	emailSvc EmailService,
) ReminderService {
	return &reminderService{
		rentalRepo: rentalRepo,
		logRepo:    logRepo,
		emailSvc:   emailSvc,
	}
}

// RunDueReminders is a single-pass batch over every approved rental
// starting tomorrow. Each (request, kind, start date) tuple is sent at
// most once across all runs: the reminder log is checked before delivery
// and written only after delivery succeeds, so a failed send is retried by
// the next run while a duplicate run finds the log entry and skips.
func (s *reminderService) RunDueReminders(ctx context.Context, today time.Time) (int, error) {
	target := today.AddDate(0, 0, 1).Format(domain.DateLayout)

	due, err := s.rentalRepo.ListApprovedStartingOn(ctx, target)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, d := range due {
		sent += s.remind(ctx, d, domain.ReminderKindRenterStart, d.RenterEmail, d.RenterName, "renter")
		sent += s.remind(ctx, d, domain.ReminderKindOwnerStart, d.OwnerEmail, d.OwnerName, "owner")
	}

	logger.Info("Start reminders dispatched", "date", target, "due_rentals", len(due), "sent", sent)
	return sent, nil
}

// remind handles one recipient and reports 1 if a message went out. Every
// failure is isolated to this recipient; the batch continues regardless.
func (s *reminderService) remind(ctx context.Context, d domain.DueReminder, kind domain.ReminderKind, email, name, role string) int {
	if email == "" {
		// No address on file for this party; the other party's reminder is
		// still attempted by the caller.
		return 0
	}

	exists, err := s.logRepo.Exists(ctx, d.RequestID, kind, d.StartDate)
	if err != nil {
		logger.Error("Failed to check reminder log", "request_id", d.RequestID, "kind", kind, "error", err)
		return 0
	}
	if exists {
		return 0
	}

	if err := s.emailSvc.SendStartReminder(ctx, email, name, d.ToolName, d.StartDate, role); err != nil {
		// Not logged, so the next run retries this recipient.
		logger.Error("Failed to send start reminder",
			"request_id", d.RequestID, "kind", kind, "email", email, "error", err)
		return 0
	}

	if _, err := s.logRepo.InsertIfAbsent(ctx, d.RequestID, kind, d.StartDate); err != nil {
		// The message went out but the log write failed; worst case the
		// next run re-sends once. Better a duplicate than a silent miss.
		logger.Error("Failed to record sent reminder",
			"request_id", d.RequestID, "kind", kind, "error", err)
	}
	return 1
}
