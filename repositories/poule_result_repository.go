package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

var (
	ErrPouleResultInvalid           = errors.New("poule result row violates a constraint")
	ErrPouleResultTournamentInvalid = errors.New("poule result tournament conflict or invalid")
)

// PouleResultRepository stores the round-robin input rows. Rows are replaced
// wholesale by the round-robin component and read in insertion order.
type PouleResultRepository interface {
	ReplaceForTournament(ctx context.Context, exec SQLExecutor, tournamentID int, rows []models.PouleResult) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.PouleResult, error)
}

type sqlPouleResultRepository struct {
	baseRepository
}

func NewPouleResultRepository(db *sql.DB) PouleResultRepository {
	return &sqlPouleResultRepository{baseRepository{db: db}}
}

func (r *sqlPouleResultRepository) ReplaceForTournament(ctx context.Context, exec SQLExecutor, tournamentID int, rows []models.PouleResult) error {
	executor := r.getExecutor(exec)

	if _, err := executor.ExecContext(ctx, `DELETE FROM poule_results WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to clear poule results for tournament %d: %w", tournamentID, err)
	}

	query := `
		INSERT INTO poule_results
			(tournament_id, poule_number, participant_id, participant_name, match_points, points, turns, best_run)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i, row := range rows {
		_, err := executor.ExecContext(ctx, query,
			tournamentID,
			row.PouleNumber,
			row.ParticipantID,
			row.ParticipantName,
			row.MatchPoints,
			row.Points,
			row.Turns,
			row.BestRun,
		)
		if err != nil {
			return r.handlePouleResultError(err, i)
		}
	}
	return nil
}

func (r *sqlPouleResultRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.PouleResult, error) {
	query := `
		SELECT id, tournament_id, poule_number, participant_id, participant_name, match_points, points, turns, best_run
		FROM poule_results
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query poule results for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	results := make([]models.PouleResult, 0)
	for rows.Next() {
		var pr models.PouleResult
		if scanErr := rows.Scan(
			&pr.ID,
			&pr.TournamentID,
			&pr.PouleNumber,
			&pr.ParticipantID,
			&pr.ParticipantName,
			&pr.MatchPoints,
			&pr.Points,
			&pr.Turns,
			&pr.BestRun,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan poule result row: %w", scanErr)
		}
		results = append(results, pr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during poule result rows iteration: %w", err)
	}
	return results, nil
}

func (r *sqlPouleResultRepository) handlePouleResultError(err error, index int) error {
	switch {
	case isForeignKeyViolation(err):
		return ErrPouleResultTournamentInvalid
	case isCheckViolation(err):
		return fmt.Errorf("%w: row %d", ErrPouleResultInvalid, index)
	}
	return fmt.Errorf("failed to insert poule result row %d: %w", index, err)
}
