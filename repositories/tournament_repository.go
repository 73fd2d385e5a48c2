package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*models.Tournament, error)
}

type sqlTournamentRepository struct {
	baseRepository
}

func NewTournamentRepository(db *sql.DB) TournamentRepository {
	return &sqlTournamentRepository{baseRepository{db: db}}
}

func (r *sqlTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	if t.Format == "" {
		t.Format = models.FormatPouleKnockout
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO tournaments (tenant_id, name, format, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, t.TenantID, t.Name, t.Format, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to create tournament %q: %w", t.Name, err)
	}
	return nil
}

func (r *sqlTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	query := `SELECT id, tenant_id, name, format, created_at FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	err := r.getExecutor(exec).QueryRowContext(ctx, query, id).Scan(&t.ID, &t.TenantID, &t.Name, &t.Format, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament by id %d: %w", id, err)
	}
	return t, nil
}

func (r *sqlTournamentRepository) ListByTenant(ctx context.Context, tenantID string) ([]*models.Tournament, error) {
	query := `
		SELECT id, tenant_id, name, format, created_at
		FROM tournaments
		WHERE tenant_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t := &models.Tournament{}
		if err := rows.Scan(&t.ID, &t.TenantID, &t.Name, &t.Format, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}
