package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error classes. Every error returned by the progression service wraps exactly
// one of them; callers classify with errors.Is.
var (
	ErrInput        = errors.New("invalid input")
	ErrPrecondition = errors.New("precondition not met")
	ErrValidation   = errors.New("validation failed")
	ErrConsistency  = errors.New("consistency violation")
)

var (
	ErrTournamentNotFound        = fmt.Errorf("%w: tournament not found", ErrInput)
	ErrMatchNotFound             = fmt.Errorf("%w: match not found", ErrInput)
	ErrNoResults                 = fmt.Errorf("%w: no round-robin results available", ErrInput)
	ErrInvalidResults            = fmt.Errorf("%w: malformed round-robin results", ErrInput)
	ErrConfigurationIncompatible = fmt.Errorf("%w: configuration incompatible", ErrInput)
	ErrNotEnoughParticipants     = fmt.Errorf("%w: not enough participants", ErrInput)
	ErrInvalidTournament         = fmt.Errorf("%w: invalid tournament", ErrInput)

	ErrNotGenerated          = fmt.Errorf("%w: tournament has not been generated", ErrPrecondition)
	ErrSlotsUnresolved       = fmt.Errorf("%w: match players are not resolved yet", ErrPrecondition)
	ErrDependentMatchDecided = fmt.Errorf("%w: dependent match already decided", ErrPrecondition)
	ErrStaleGeneration       = fmt.Errorf("%w: round-robin results changed since generation", ErrPrecondition)

	ErrWinnerNotInMatch = fmt.Errorf("%w: winner is not one of the match players", ErrValidation)
	ErrInvalidScore     = fmt.Errorf("%w: scores must not be negative", ErrValidation)

	ErrPositionsInconsistent = fmt.Errorf("%w: final positions are not a bijection", ErrConsistency)
)

// UnfinishedMatchesError lists the matches that still need a winner before the
// tournament can be finalized.
type UnfinishedMatchesError struct {
	MatchIDs []int
}

func (e *UnfinishedMatchesError) Error() string {
	ids := make([]string, len(e.MatchIDs))
	for i, id := range e.MatchIDs {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%s: matches without a winner: %s", ErrPrecondition, strings.Join(ids, ", "))
}

func (e *UnfinishedMatchesError) Unwrap() error {
	return ErrPrecondition
}
