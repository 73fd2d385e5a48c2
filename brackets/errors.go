package brackets

import "errors"

var (
	ErrNoResults                   = errors.New("no round-robin results available")
	ErrParticipantInMultiplePoules = errors.New("participant appears in more than one poule")
	ErrInvalidResultRow            = errors.New("invalid round-robin result row")
	ErrNotEnoughParticipants       = errors.New("not enough participants to fill the bracket")
	ErrNoBracketForSinglePoule     = errors.New("a single poule does not feed a bracket")
	ErrQualifierCount              = errors.New("qualifier count does not match bracket size")
	ErrPositionsNotBijective       = errors.New("final positions are not a bijection onto 1..N")
)
