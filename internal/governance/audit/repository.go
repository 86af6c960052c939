package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists and lists audit logs in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an audit Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores one audit log entry.
func (r *Repository) Insert(ctx context.Context, log *Log) error {
	query := `
		INSERT INTO audit_logs (id, client_id, event_type, severity, issues, reason, remaining, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		log.ID, log.ClientID, log.EventType, log.Severity, log.Issues, log.Reason, log.Remaining, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting audit log: %w", err)
	}
	return nil
}

// ListByClient returns the client's audit trail, newest first, with the total
// count across all pages.
func (r *Repository) ListByClient(ctx context.Context, clientID string, params ListParams) ([]Log, int, error) {
	conditions := []string{"client_id = $1"}
	args := []any{clientID}

	if params.EventType != "" {
		args = append(args, params.EventType)
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", len(args)))
	}
	if params.Severity != "" {
		args = append(args, params.Severity)
		conditions = append(conditions, fmt.Sprintf("severity = $%d", len(args)))
	}
	if params.From != nil {
		args = append(args, *params.From)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if params.To != nil {
		args = append(args, *params.To)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM audit_logs WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting audit logs: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	args = append(args, params.PageSize, offset)
	listQuery := fmt.Sprintf(`
		SELECT id, client_id, event_type, severity, issues, reason, remaining, created_at
		FROM audit_logs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing audit logs: %w", err)
	}
	defer rows.Close()

	logs := make([]Log, 0, params.PageSize)
	for rows.Next() {
		var l Log
		if err := rows.Scan(&l.ID, &l.ClientID, &l.EventType, &l.Severity, &l.Issues, &l.Reason, &l.Remaining, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning audit log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating audit logs: %w", err)
	}

	return logs, total, nil
}
