package repositories

import (
	"context"
	"fmt"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/db"
)

// TournamentLocker takes a transaction-scoped lock on a tournament so that
// writers on other processes are serialized.
type TournamentLocker interface {
	LockTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

// advisoryLockNamespace keeps tournament locks apart from other advisory lock users.
const advisoryLockNamespace int64 = 0x43415200 << 32

type advisoryLocker struct {
	dialect db.Dialect
}

func NewTournamentLocker(dialect db.Dialect) TournamentLocker {
	return &advisoryLocker{dialect: dialect}
}

func (l *advisoryLocker) LockTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	if l.dialect != db.DialectPostgres {
		// sqlite runs on a single connection, so transactions are already serialized.
		return nil
	}
	if _, err := exec.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockNamespace|int64(tournamentID)); err != nil {
		return fmt.Errorf("failed to lock tournament %d: %w", tournamentID, err)
	}
	return nil
}
