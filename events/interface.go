package events

import (
	"context"
	"time"
)

// RankingsHook notifies the downstream ranking aggregation that a
// tournament's final positions changed.
type RankingsHook interface {
	PublishRankingsRecompute(ctx context.Context, event RankingsRecompute) error
}

// RankingsRecompute is the payload sent after a finalization commits.
type RankingsRecompute struct {
	TournamentID      int                `msgpack:"tournament_id"`
	TenantID          string             `msgpack:"tenant_id"`
	GenerationID      string             `msgpack:"generation_id"`
	TotalParticipants int                `msgpack:"total_participants"`
	FinalizedAt       time.Time          `msgpack:"finalized_at"`
	Positions         []PositionSnapshot `msgpack:"positions"`
}

type PositionSnapshot struct {
	ParticipantID int    `msgpack:"participant_id"`
	Name          string `msgpack:"name"`
	Position      int    `msgpack:"position"`
	Points        int    `msgpack:"points"`
}

// EventType names the message kind carried in the "event" attribute.
type EventType string

const (
	EventRankingsRecompute EventType = "rankings-recompute"
)
