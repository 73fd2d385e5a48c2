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
	ErrPositionConflict          = errors.New("final position already taken in this tournament")
	ErrPositionTournamentInvalid = errors.New("final position tournament conflict or invalid")
)

type FinalPositionRepository interface {
	ReplaceForTournament(ctx context.Context, exec SQLExecutor, tournamentID int, positions []*models.FinalPosition) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.FinalPosition, error)
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type sqlFinalPositionRepository struct {
	baseRepository
}

func NewFinalPositionRepository(db *sql.DB) FinalPositionRepository {
	return &sqlFinalPositionRepository{baseRepository{db: db}}
}

func (r *sqlFinalPositionRepository) ReplaceForTournament(ctx context.Context, exec SQLExecutor, tournamentID int, positions []*models.FinalPosition) error {
	if err := r.DeleteByTournament(ctx, exec, tournamentID); err != nil {
		return err
	}

	query := `
		INSERT INTO final_positions (tournament_id, participant_id, participant_name, position, points, finalized_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now().UTC()
	executor := r.getExecutor(exec)
	for _, p := range positions {
		p.TournamentID = tournamentID
		if p.FinalizedAt.IsZero() {
			p.FinalizedAt = now
		}
		_, err := executor.ExecContext(ctx, query, tournamentID, p.ParticipantID, p.Name, p.Position, p.Points, p.FinalizedAt)
		if err != nil {
			switch {
			case isUniqueViolation(err):
				return fmt.Errorf("%w: participant %d position %d", ErrPositionConflict, p.ParticipantID, p.Position)
			case isForeignKeyViolation(err):
				return ErrPositionTournamentInvalid
			}
			return fmt.Errorf("failed to insert final position for participant %d: %w", p.ParticipantID, err)
		}
	}
	return nil
}

func (r *sqlFinalPositionRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.FinalPosition, error) {
	query := `
		SELECT tournament_id, participant_id, participant_name, position, points, finalized_at
		FROM final_positions
		WHERE tournament_id = $1
		ORDER BY position ASC`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query final positions for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	positions := make([]*models.FinalPosition, 0)
	for rows.Next() {
		p := &models.FinalPosition{}
		if scanErr := rows.Scan(&p.TournamentID, &p.ParticipantID, &p.Name, &p.Position, &p.Points, &p.FinalizedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan final position row: %w", scanErr)
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during final position rows iteration: %w", err)
	}
	return positions, nil
}

func (r *sqlFinalPositionRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM final_positions WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete final positions for tournament %d: %w", tournamentID, err)
	}
	return nil
}
