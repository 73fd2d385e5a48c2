package brackets

import (
	"context"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

// GenerateBracketParams carries the seeded qualifiers and the rest of the field.
type GenerateBracketParams struct {
	TournamentID int
	Config       models.ProgressionConfig
	Qualifiers   []models.Qualifier
	NonQualified []models.Standing
}

// BracketGenerator turns a qualification outcome into match blueprints.
type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error)

	GetName() string
}

// BracketMatch is a match blueprint produced at generation time.
// Placeholder matches reference the matches whose results fill their slots.
type BracketMatch struct {
	Phase models.Phase
	Order int

	Participant1ID *int
	Participant2ID *int

	SourceMatch1Key *string
	SourceMatch2Key *string

	IsPlaceholder bool

	IsBye            bool
	ByeParticipantID *int

	PlaceHigh *int
	PlaceLow  *int
}

// Key returns the natural key of the blueprint.
func (bm *BracketMatch) Key() string {
	return models.MatchKey(bm.Phase, bm.Order)
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
