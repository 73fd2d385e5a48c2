package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/repositories"
)

type CreateTournamentInput struct {
	Name   string `json:"name"`
	Format string `json:"format,omitempty"`
}

type TournamentService struct {
	repo repositories.TournamentRepository
}

func NewTournamentService(repo repositories.TournamentRepository) *TournamentService {
	return &TournamentService{repo: repo}
}

// CreateTournament registers a tournament for tenantID. The format defaults to
// poule_knockout.
func (s *TournamentService) CreateTournament(ctx context.Context, tenantID string, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidTournament)
	}
	if strings.TrimSpace(tenantID) == "" {
		return nil, fmt.Errorf("%w: tenant is required", ErrInvalidTournament)
	}
	format := input.Format
	if format == "" {
		format = models.FormatPouleKnockout
	}

	tournament := &models.Tournament{TenantID: tenantID, Name: name, Format: format}
	if err := s.repo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament %q: %w", name, err)
	}
	return tournament, nil
}

func (s *TournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrTournamentNotFound, id)
		}
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) ListTournaments(ctx context.Context, tenantID string) ([]*models.Tournament, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}
