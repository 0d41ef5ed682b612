package postgres

import (
	"context"
	"database/sql"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, first_name, last_name, phone,
	address_line1, city, state, zip_code, password_hash, created_on`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, first_name, last_name, phone,
	          address_line1, city, state, zip_code, password_hash, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		user.Email, user.FirstName, user.LastName, user.Phone,
		user.AddressLine1, user.City, user.State, user.ZipCode, user.PasswordHash,
		time.Now().UTC(),
	).Scan(&user.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email=$1, first_name=$2, last_name=$3, phone=$4,
	          address_line1=$5, city=$6, state=$7, zip_code=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query,
		user.Email, user.FirstName, user.LastName, user.Phone,
		user.AddressLine1, user.City, user.State, user.ZipCode, user.ID)
	return err
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.Phone,
		&user.AddressLine1, &user.City, &user.State, &user.ZipCode, &user.PasswordHash, &user.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
