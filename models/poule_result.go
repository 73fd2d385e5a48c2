package models

// PouleResult is one participant's line for a single played round-robin match.
// Rows are produced by the round-robin component and are read-only here.
type PouleResult struct {
	ID              int    `json:"id,omitempty" db:"id"`
	TournamentID    int    `json:"tournament_id" db:"tournament_id"`
	PouleNumber     int    `json:"poule_number" db:"poule_number"`
	ParticipantID   int    `json:"participant_id" db:"participant_id"`
	ParticipantName string `json:"participant_name" db:"participant_name"`
	MatchPoints     int    `json:"match_points" db:"match_points"`
	Points          int    `json:"points" db:"points"`
	Turns           int    `json:"turns" db:"turns"`
	BestRun         int    `json:"best_run" db:"best_run"`
}
