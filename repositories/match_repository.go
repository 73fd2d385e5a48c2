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
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchConflict          = errors.New("match with this phase and order already exists")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchInvalid           = errors.New("match row violates a constraint")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, id int, score1, score2, winnerID *int) error
	UpdatePlayers(ctx context.Context, exec SQLExecutor, id int, player1ID, player2ID *int) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type sqlMatchRepository struct {
	baseRepository
}

func NewMatchRepository(db *sql.DB) MatchRepository {
	return &sqlMatchRepository{baseRepository{db: db}}
}

const matchColumns = `id, tournament_id, generation_id, phase, match_order, player1_id, player2_id,
		       score1, score2, winner_id, place_high, place_low, created_at, updated_at`

func (r *sqlMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	now := time.Now().UTC()
	match.CreatedAt, match.UpdatedAt = now, now

	query := `
		INSERT INTO matches
			(tournament_id, generation_id, phase, match_order, player1_id, player2_id,
			 score1, score2, winner_id, place_high, place_low, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		match.TournamentID,
		match.GenerationID,
		match.Phase,
		match.Order,
		match.Player1ID,
		match.Player2ID,
		match.Score1,
		match.Score2,
		match.WinnerID,
		match.PlaceHigh,
		match.PlaceLow,
		match.CreatedAt,
		match.UpdatedAt,
	).Scan(&match.ID)

	return r.handleMatchError(err)
}

func (r *sqlMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.getExecutor(exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *sqlMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *sqlMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id int, score1, score2, winnerID *int) error {
	query := `
		UPDATE matches
		SET score1 = $1, score2 = $2, winner_id = $3, updated_at = $4
		WHERE id = $5`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, score1, score2, winnerID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("UpdateResult: failed to execute query for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *sqlMatchRepository) UpdatePlayers(ctx context.Context, exec SQLExecutor, id int, player1ID, player2ID *int) error {
	query := `UPDATE matches SET player1_id = $1, player2_id = $2, updated_at = $3 WHERE id = $4`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, player1ID, player2ID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("UpdatePlayers: failed to execute query for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *sqlMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete matches for tournament %d: %w", tournamentID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	match := &models.Match{}
	err := row.Scan(
		&match.ID,
		&match.TournamentID,
		&match.GenerationID,
		&match.Phase,
		&match.Order,
		&match.Player1ID,
		&match.Player2ID,
		&match.Score1,
		&match.Score2,
		&match.WinnerID,
		&match.PlaceHigh,
		&match.PlaceLow,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (r *sqlMatchRepository) handleMatchError(err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return ErrMatchConflict
	case isForeignKeyViolation(err):
		return ErrMatchTournamentInvalid
	case isCheckViolation(err):
		return fmt.Errorf("%w: %v", ErrMatchInvalid, err)
	}
	return err
}
