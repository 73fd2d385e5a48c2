package models

// Standing is a participant's aggregated round-robin result within a poule.
// It is recomputed wholesale whenever the underlying result rows change.
type Standing struct {
	ParticipantID int     `json:"participant_id"`
	Name          string  `json:"name"`
	PouleNumber   int     `json:"poule_number"`
	Place         int     `json:"place"` // 1-based rank inside the poule, 0 until ranked
	MatchPoints   int     `json:"match_points"`
	Points        int     `json:"points"`
	Turns         int     `json:"turns"`
	BestRun       int     `json:"best_run"`
	MatchesPlayed int     `json:"matches_played"`
	Average       float64 `json:"average"`
}

// ComputeAverage returns points per turn, 0 when no turn was played.
func ComputeAverage(points, turns int) float64 {
	if turns <= 0 {
		return 0
	}
	return float64(points) / float64(turns)
}

// Poule is an ordered round-robin group.
type Poule struct {
	Number    int        `json:"number"`
	Standings []Standing `json:"standings"`
}

// Qualifier is a standing admitted to the elimination bracket.
type Qualifier struct {
	Standing
	Seed int `json:"seed"`
}
