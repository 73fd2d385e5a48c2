package models

import "time"

// Phase identifies the stage a match belongs to.
type Phase string

const (
	PhaseSemifinal        Phase = "SF"
	PhaseFinal            Phase = "F"
	PhasePetiteFinale     Phase = "PF"
	PhaseClassificationR1 Phase = "CL_R1"
	PhaseClassificationR2 Phase = "CL_R2"
)

// IsBracket reports whether the phase is part of the elimination bracket.
func (p Phase) IsBracket() bool {
	return p == PhaseSemifinal || p == PhaseFinal || p == PhasePetiteFinale
}

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseSemifinal, PhaseFinal, PhasePetiteFinale, PhaseClassificationR1, PhaseClassificationR2:
		return true
	}
	return false
}

// Match is a single bracket or classification encounter.
// Player slots stay nil until the prerequisite matches are decided.
type Match struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	GenerationID string    `json:"generation_id" db:"generation_id"`
	Phase        Phase     `json:"phase" db:"phase"`
	Order        int       `json:"order" db:"match_order"`
	Player1ID    *int      `json:"player1_id,omitempty" db:"player1_id"`
	Player2ID    *int      `json:"player2_id,omitempty" db:"player2_id"`
	Score1       *int      `json:"score1,omitempty" db:"score1"`
	Score2       *int      `json:"score2,omitempty" db:"score2"`
	WinnerID     *int      `json:"winner_id,omitempty" db:"winner_id"`
	PlaceHigh    *int      `json:"place_high,omitempty" db:"place_high"` // position for the winner
	PlaceLow     *int      `json:"place_low,omitempty" db:"place_low"`   // position for the loser
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Resolved reports whether both player slots are assigned.
func (m *Match) Resolved() bool {
	return m.Player1ID != nil && m.Player2ID != nil
}

// Decided reports whether a winner has been recorded.
func (m *Match) Decided() bool {
	return m.WinnerID != nil
}

// HasPlayer reports whether id occupies one of the two slots.
func (m *Match) HasPlayer(id int) bool {
	return (m.Player1ID != nil && *m.Player1ID == id) || (m.Player2ID != nil && *m.Player2ID == id)
}

// LoserID returns the participant that did not win. ok is false while undecided.
func (m *Match) LoserID() (id int, ok bool) {
	if !m.Decided() || !m.Resolved() {
		return 0, false
	}
	if *m.Player1ID == *m.WinnerID {
		return *m.Player2ID, true
	}
	return *m.Player1ID, true
}

// Key is the stable (phase, order) identity of a match within its tournament.
func (m *Match) Key() string {
	return MatchKey(m.Phase, m.Order)
}
