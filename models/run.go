package models

import "time"

// ProgressionRun records the latest generation of a tournament together with the
// configuration snapshot later stages must honour.
type ProgressionRun struct {
	TournamentID               int               `json:"tournament_id" db:"tournament_id"`
	GenerationID               string            `json:"generation_id" db:"generation_id"`
	Mode                       Mode              `json:"mode" db:"mode"`
	Rule                       QualificationRule `json:"rule" db:"qualification_rule"`
	BracketSize                int               `json:"bracket_size" db:"bracket_size"`
	EnableClassificationRound2 bool              `json:"enable_classification_round2" db:"enable_classification_round2"`
	TotalParticipants          int               `json:"total_participants" db:"total_participants"`
	ByeParticipantID           *int              `json:"bye_participant_id,omitempty" db:"bye_participant_id"`
	ByePosition                *int              `json:"bye_position,omitempty" db:"bye_position"`
	CreatedAt                  time.Time         `json:"created_at" db:"created_at"`
}
