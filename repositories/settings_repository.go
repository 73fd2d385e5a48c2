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
	ErrSettingsNotFound = errors.New("tenant settings not found")
	ErrSettingsInvalid  = errors.New("tenant settings violate a constraint")
)

type TenantSettingsRepository interface {
	GetByTenant(ctx context.Context, exec SQLExecutor, tenantID string) (*models.TenantSettings, error)
	Save(ctx context.Context, settings *models.TenantSettings) error
}

type sqlTenantSettingsRepository struct {
	baseRepository
}

func NewTenantSettingsRepository(db *sql.DB) TenantSettingsRepository {
	return &sqlTenantSettingsRepository{baseRepository{db: db}}
}

func (r *sqlTenantSettingsRepository) GetByTenant(ctx context.Context, exec SQLExecutor, tenantID string) (*models.TenantSettings, error) {
	query := `
		SELECT tenant_id, bracket_size, single_poule_threshold, allow_poule_of_two, enable_classification_round2, updated_at
		FROM tenant_settings
		WHERE tenant_id = $1`

	s := &models.TenantSettings{}
	err := r.getExecutor(exec).QueryRowContext(ctx, query, tenantID).Scan(
		&s.TenantID,
		&s.BracketSize,
		&s.SinglePouleThreshold,
		&s.AllowPouleOfTwo,
		&s.EnableClassificationRound2,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get settings for tenant %s: %w", tenantID, err)
	}
	return s, nil
}

func (r *sqlTenantSettingsRepository) Save(ctx context.Context, s *models.TenantSettings) error {
	s.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO tenant_settings
			(tenant_id, bracket_size, single_poule_threshold, allow_poule_of_two, enable_classification_round2, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id) DO UPDATE SET
			bracket_size = excluded.bracket_size,
			single_poule_threshold = excluded.single_poule_threshold,
			allow_poule_of_two = excluded.allow_poule_of_two,
			enable_classification_round2 = excluded.enable_classification_round2,
			updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		s.TenantID,
		s.BracketSize,
		s.SinglePouleThreshold,
		s.AllowPouleOfTwo,
		s.EnableClassificationRound2,
		s.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", ErrSettingsInvalid, err)
		}
		return fmt.Errorf("failed to save settings for tenant %s: %w", s.TenantID, err)
	}
	return nil
}
