package models

import "time"

// FinalPosition is a participant's finishing place once a tournament is finalized.
type FinalPosition struct {
	TournamentID  int       `json:"tournament_id" db:"tournament_id"`
	ParticipantID int       `json:"participant_id" db:"participant_id"`
	Name          string    `json:"name" db:"participant_name"`
	Position      int       `json:"position" db:"position"`
	Points        int       `json:"points" db:"points"`
	FinalizedAt   time.Time `json:"finalized_at" db:"finalized_at"`
}

// PointsRow maps a finishing position to a point value for tournaments whose
// participant count falls in [MinParticipants, MaxParticipants].
type PointsRow struct {
	TenantID        string `json:"tenant_id" db:"tenant_id"`
	MinParticipants int    `json:"min_participants" db:"min_participants"`
	MaxParticipants int    `json:"max_participants" db:"max_participants"`
	Position        int    `json:"position" db:"position"`
	Points          int    `json:"points" db:"points"`
}
