package postgres

import (
	"context"
	"database/sql"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
)

type reminderLogRepository struct {
	db *sql.DB
}

func NewReminderLogRepository(db *sql.DB) repository.ReminderLogRepository {
	return &reminderLogRepository{db: db}
}

func (r *reminderLogRepository) Exists(ctx context.Context, requestID int32, kind domain.ReminderKind, date string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reminder_log
	          WHERE rental_request_id = $1 AND kind = $2 AND scheduled_for = $3)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, requestID, kind, date).Scan(&exists)
	return exists, err
}

// InsertIfAbsent relies on the (rental_request_id, kind, scheduled_for)
// unique constraint: a concurrent or repeated insert hits ON CONFLICT and
// affects zero rows instead of failing.
func (r *reminderLogRepository) InsertIfAbsent(ctx context.Context, requestID int32, kind domain.ReminderKind, date string) (bool, error) {
	query := `INSERT INTO reminder_log (rental_request_id, kind, scheduled_for, sent_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (rental_request_id, kind, scheduled_for) DO NOTHING`
	logger.DatabaseCall("INSERT", "reminder_log", "request_id", requestID, "kind", kind, "date", date)
	res, err := r.db.ExecContext(ctx, query, requestID, kind, date, time.Now())
	if err != nil {
		logger.DatabaseResult("INSERT", 0, err)
		return false, err
	}
	rows, err := res.RowsAffected()
	logger.DatabaseResult("INSERT", rows, err)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
