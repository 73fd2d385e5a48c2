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
	ErrRunNotFound          = errors.New("progression run not found")
	ErrRunTournamentInvalid = errors.New("progression run tournament conflict or invalid")
)

// ProgressionRunRepository keeps one row per tournament describing its latest
// generation.
type ProgressionRunRepository interface {
	Save(ctx context.Context, exec SQLExecutor, run *models.ProgressionRun) error
	GetByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (*models.ProgressionRun, error)
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type sqlProgressionRunRepository struct {
	baseRepository
}

func NewProgressionRunRepository(db *sql.DB) ProgressionRunRepository {
	return &sqlProgressionRunRepository{baseRepository{db: db}}
}

func (r *sqlProgressionRunRepository) Save(ctx context.Context, exec SQLExecutor, run *models.ProgressionRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO progression_runs
			(tournament_id, generation_id, mode, qualification_rule, bracket_size, enable_classification_round2,
			 total_participants, bye_participant_id, bye_position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tournament_id) DO UPDATE SET
			generation_id = excluded.generation_id,
			mode = excluded.mode,
			qualification_rule = excluded.qualification_rule,
			bracket_size = excluded.bracket_size,
			enable_classification_round2 = excluded.enable_classification_round2,
			total_participants = excluded.total_participants,
			bye_participant_id = excluded.bye_participant_id,
			bye_position = excluded.bye_position,
			created_at = excluded.created_at`

	_, err := r.getExecutor(exec).ExecContext(ctx, query,
		run.TournamentID,
		run.GenerationID,
		run.Mode,
		run.Rule,
		run.BracketSize,
		run.EnableClassificationRound2,
		run.TotalParticipants,
		run.ByeParticipantID,
		run.ByePosition,
		run.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrRunTournamentInvalid
		}
		return fmt.Errorf("failed to save progression run for tournament %d: %w", run.TournamentID, err)
	}
	return nil
}

func (r *sqlProgressionRunRepository) GetByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (*models.ProgressionRun, error) {
	query := `
		SELECT tournament_id, generation_id, mode, qualification_rule, bracket_size, enable_classification_round2,
		       total_participants, bye_participant_id, bye_position, created_at
		FROM progression_runs
		WHERE tournament_id = $1`

	run := &models.ProgressionRun{}
	err := r.getExecutor(exec).QueryRowContext(ctx, query, tournamentID).Scan(
		&run.TournamentID,
		&run.GenerationID,
		&run.Mode,
		&run.Rule,
		&run.BracketSize,
		&run.EnableClassificationRound2,
		&run.TotalParticipants,
		&run.ByeParticipantID,
		&run.ByePosition,
		&run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get progression run for tournament %d: %w", tournamentID, err)
	}
	return run, nil
}

func (r *sqlProgressionRunRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM progression_runs WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete progression run for tournament %d: %w", tournamentID, err)
	}
	return nil
}
