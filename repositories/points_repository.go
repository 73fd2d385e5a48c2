package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

var ErrPointsRowInvalid = errors.New("points row conflict or invalid")

// PointsTableRepository stores the per-tenant position to points table.
type PointsTableRepository interface {
	ListByTenant(ctx context.Context, exec SQLExecutor, tenantID string) ([]models.PointsRow, error)
	ReplaceForTenant(ctx context.Context, exec SQLExecutor, tenantID string, rows []models.PointsRow) error
}

type sqlPointsTableRepository struct {
	baseRepository
}

func NewPointsTableRepository(db *sql.DB) PointsTableRepository {
	return &sqlPointsTableRepository{baseRepository{db: db}}
}

func (r *sqlPointsTableRepository) ListByTenant(ctx context.Context, exec SQLExecutor, tenantID string) ([]models.PointsRow, error) {
	query := `
		SELECT tenant_id, min_participants, max_participants, position, points
		FROM position_points
		WHERE tenant_id = $1
		ORDER BY min_participants ASC, position ASC`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query points table for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	table := make([]models.PointsRow, 0)
	for rows.Next() {
		var row models.PointsRow
		if scanErr := rows.Scan(&row.TenantID, &row.MinParticipants, &row.MaxParticipants, &row.Position, &row.Points); scanErr != nil {
			return nil, fmt.Errorf("failed to scan points row: %w", scanErr)
		}
		table = append(table, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during points rows iteration: %w", err)
	}
	return table, nil
}

func (r *sqlPointsTableRepository) ReplaceForTenant(ctx context.Context, exec SQLExecutor, tenantID string, rows []models.PointsRow) error {
	executor := r.getExecutor(exec)

	if _, err := executor.ExecContext(ctx, `DELETE FROM position_points WHERE tenant_id = $1`, tenantID); err != nil {
		return fmt.Errorf("failed to clear points table for tenant %s: %w", tenantID, err)
	}

	query := `
		INSERT INTO position_points (tenant_id, min_participants, max_participants, position, points)
		VALUES ($1, $2, $3, $4, $5)`

	for _, row := range rows {
		_, err := executor.ExecContext(ctx, query, tenantID, row.MinParticipants, row.MaxParticipants, row.Position, row.Points)
		if err != nil {
			if isUniqueViolation(err) || isCheckViolation(err) {
				return fmt.Errorf("%w: position %d for %d-%d participants", ErrPointsRowInvalid, row.Position, row.MinParticipants, row.MaxParticipants)
			}
			return fmt.Errorf("failed to insert points row: %w", err)
		}
	}
	return nil
}
