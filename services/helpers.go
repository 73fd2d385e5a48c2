package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/brackets"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/repositories"
)

// withTx runs fn in a transaction that is committed when fn returns nil and
// rolled back otherwise.
func withTx(ctx context.Context, db *sql.DB, logger *slog.Logger, fn func(tx *sql.Tx) error) (txErr error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorContext(ctx, "Error during rollback", slog.Any("error", rbErr), slog.Any("original_error", txErr))
				txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(tx)
}

// tournamentLocks serializes writers per tournament within the process.
type tournamentLocks struct {
	mu    sync.Mutex
	locks map[int]*tournamentLock
}

type tournamentLock struct {
	sync.Mutex
	refs int
}

// acquire blocks until the caller holds the lock for tournamentID and returns
// the function that releases it.
func (l *tournamentLocks) acquire(tournamentID int) (release func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[int]*tournamentLock)
	}
	tl, ok := l.locks[tournamentID]
	if !ok {
		tl = &tournamentLock{}
		l.locks[tournamentID] = tl
	}
	tl.refs++
	l.mu.Unlock()

	tl.Lock()
	return func() {
		tl.Unlock()
		l.mu.Lock()
		tl.refs--
		if tl.refs == 0 {
			delete(l.locks, tournamentID)
		}
		l.mu.Unlock()
	}
}

func (l *tournamentLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// mapRepositoryError translates repository sentinels into service errors.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrRunNotFound):
		return ErrNotGenerated
	case errors.Is(err, repositories.ErrPouleResultInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidResults, err)
	}
	return err
}

// mapBracketError translates algorithm errors into service errors.
func mapBracketError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, brackets.ErrNoResults):
		return ErrNoResults
	case errors.Is(err, brackets.ErrParticipantInMultiplePoules), errors.Is(err, brackets.ErrInvalidResultRow):
		return fmt.Errorf("%w: %v", ErrInvalidResults, err)
	case errors.Is(err, brackets.ErrNotEnoughParticipants):
		return fmt.Errorf("%w: %v", ErrNotEnoughParticipants, err)
	case errors.Is(err, models.ErrInvalidProgressionConfig), errors.Is(err, brackets.ErrQualifierCount), errors.Is(err, brackets.ErrNoBracketForSinglePoule):
		return fmt.Errorf("%w: %v", ErrConfigurationIncompatible, err)
	case errors.Is(err, brackets.ErrPositionsNotBijective):
		return fmt.Errorf("%w: %v", ErrPositionsInconsistent, err)
	}
	return err
}

func totalParticipants(poules []models.Poule) int {
	total := 0
	for _, p := range poules {
		total += len(p.Standings)
	}
	return total
}

func pouleSizes(poules []models.Poule) []int {
	sizes := make([]int, len(poules))
	for i, p := range poules {
		sizes[i] = len(p.Standings)
	}
	return sizes
}

// deriveMode decides how a tournament progresses after its poules.
func deriveMode(cfg models.ProgressionConfig, poules []models.Poule) models.Mode {
	if len(poules) <= 1 || totalParticipants(poules) <= cfg.SinglePouleThreshold {
		return models.ModeSinglePoule
	}
	return models.ModeBracket
}

func findMatch(matches []*models.Match, key string) *models.Match {
	for _, m := range matches {
		if m.Key() == key {
			return m
		}
	}
	return nil
}

func sameSlot(a *int, b int) bool {
	return a != nil && *a == b
}

func intPtr(v int) *int {
	return &v
}
