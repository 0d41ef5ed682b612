package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type toolRepository struct {
	db *sql.DB
}

func NewToolRepository(db *sql.DB) repository.ToolRepository {
	return &toolRepository{db: db}
}

const toolColumns = `id, owner_id, name, description, category, metro,
	daily_price_cents, deposit_cents, is_available, created_on`

func (r *toolRepository) Create(ctx context.Context, tool *domain.Tool) error {
	query := `INSERT INTO tools (owner_id, name, description, category, metro,
	          daily_price_cents, deposit_cents, is_available, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		tool.OwnerID, tool.Name, tool.Description, tool.Category, tool.Metro,
		tool.DailyPriceCents, tool.DepositCents, tool.IsAvailable,
		time.Now().UTC(),
	).Scan(&tool.ID)
}

func (r *toolRepository) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1`
	return scanTool(r.db.QueryRowContext(ctx, query, id))
}

func (r *toolRepository) GetOwnerID(ctx context.Context, toolID int32) (int32, error) {
	var ownerID int32
	err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM tools WHERE id = $1`, toolID).Scan(&ownerID)
	return ownerID, err
}

func (r *toolRepository) Update(ctx context.Context, tool *domain.Tool) error {
	query := `UPDATE tools SET name=$1, description=$2, category=$3, metro=$4,
	          daily_price_cents=$5, deposit_cents=$6, is_available=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query,
		tool.Name, tool.Description, tool.Category, tool.Metro,
		tool.DailyPriceCents, tool.DepositCents, tool.IsAvailable, tool.ID)
	return err
}

func (r *toolRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE owner_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, ownerID)
}

func (r *toolRepository) Search(ctx context.Context, query, category, metro string) ([]domain.Tool, error) {
	sqlQuery := `SELECT ` + toolColumns + ` FROM tools WHERE is_available = TRUE`
	args := []any{}
	idx := 1
	if query != "" {
		sqlQuery += ` AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')`
		args = append(args, query)
		idx++
	}
	if category != "" {
		sqlQuery += fmt.Sprintf(" AND category = $%d", idx)
		args = append(args, category)
		idx++
	}
	if metro != "" {
		sqlQuery += fmt.Sprintf(" AND metro = $%d", idx)
		args = append(args, metro)
	}
	sqlQuery += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTools(rows)
}

func (r *toolRepository) ListAvailability(ctx context.Context, toolID int32) ([]domain.ToolAvailability, error) {
	query := `SELECT tool_id, date, is_available FROM tool_availability WHERE tool_id = $1 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, toolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []domain.ToolAvailability
	for rows.Next() {
		var a domain.ToolAvailability
		var day time.Time
		if err := rows.Scan(&a.ToolID, &day, &a.IsAvailable); err != nil {
			return nil, err
		}
		a.Date = day.Format(domain.DateLayout)
		dates = append(dates, a)
	}
	return dates, rows.Err()
}

func (r *toolRepository) list(ctx context.Context, query string, arg int32) ([]domain.Tool, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTools(rows)
}

func collectTools(rows *sql.Rows) ([]domain.Tool, error) {
	var tools []domain.Tool
	for rows.Next() {
		tool, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		tools = append(tools, *tool)
	}
	return tools, rows.Err()
}

func scanTool(row rowScanner) (*domain.Tool, error) {
	tool := &domain.Tool{}
	err := row.Scan(
		&tool.ID, &tool.OwnerID, &tool.Name, &tool.Description, &tool.Category, &tool.Metro,
		&tool.DailyPriceCents, &tool.DepositCents, &tool.IsAvailable, &tool.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return tool, nil
}
