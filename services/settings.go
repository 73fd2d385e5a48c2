package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/repositories"
)

// SettingsProvider returns the progression configuration a tenant generates with.
type SettingsProvider interface {
	ProgressionConfig(ctx context.Context, tenantID string) (models.ProgressionConfig, error)
}

// PointsTable returns the position to points rows a tenant finalizes with.
type PointsTable interface {
	PointsRows(ctx context.Context, tenantID string) ([]models.PointsRow, error)
}

type tenantSettingsProvider struct {
	repo     repositories.TenantSettingsRepository
	defaults models.ProgressionConfig
}

// NewSettingsProvider reads stored tenant settings, falling back to defaults
// for tenants that have none.
func NewSettingsProvider(repo repositories.TenantSettingsRepository, defaults models.ProgressionConfig) SettingsProvider {
	return &tenantSettingsProvider{repo: repo, defaults: defaults}
}

func (p *tenantSettingsProvider) ProgressionConfig(ctx context.Context, tenantID string) (models.ProgressionConfig, error) {
	cfg := p.defaults
	settings, err := p.repo.GetByTenant(ctx, nil, tenantID)
	switch {
	case err == nil:
		cfg = settings.ProgressionConfig
	case !errors.Is(err, repositories.ErrSettingsNotFound):
		return models.ProgressionConfig{}, fmt.Errorf("failed to load settings for tenant %q: %w", tenantID, err)
	}

	if err := cfg.Validate(); err != nil {
		return models.ProgressionConfig{}, fmt.Errorf("%w: %v", ErrConfigurationIncompatible, err)
	}
	return cfg, nil
}

type repositoryPointsTable struct {
	repo repositories.PointsTableRepository
}

func NewPointsTable(repo repositories.PointsTableRepository) PointsTable {
	return &repositoryPointsTable{repo: repo}
}

func (t *repositoryPointsTable) PointsRows(ctx context.Context, tenantID string) ([]models.PointsRow, error) {
	rows, err := t.repo.ListByTenant(ctx, nil, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load points table for tenant %q: %w", tenantID, err)
	}
	return rows, nil
}
