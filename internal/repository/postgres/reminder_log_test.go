package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"toolshare-backend/internal/domain"
)

func TestReminderLogRepository_Exists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReminderLogRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(7), domain.ReminderKindRenterStart, "2026-03-11").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(ctx, 7, domain.ReminderKindRenterStart, "2026-03-11")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderLogRepository_InsertIfAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReminderLogRepository(db)
	ctx := context.Background()

	t.Run("Inserted", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO reminder_log").
			WithArgs(int32(7), domain.ReminderKindOwnerStart, "2026-03-11", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		inserted, err := repo.InsertIfAbsent(ctx, 7, domain.ReminderKindOwnerStart, "2026-03-11")
		assert.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("ConflictIsNotAnError", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO reminder_log").
			WithArgs(int32(7), domain.ReminderKindOwnerStart, "2026-03-11", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		inserted, err := repo.InsertIfAbsent(ctx, 7, domain.ReminderKindOwnerStart, "2026-03-11")
		assert.NoError(t, err)
		assert.False(t, inserted)
	})
}
