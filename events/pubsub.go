package events

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"cloud.google.com/go/pubsub"
	"github.com/vmihailenco/msgpack/v5"
)

type pubSubHook struct {
	client *pubsub.Client
	topic  *pubsub.Topic
	logger *slog.Logger
}

// NewPubSubHook publishes msgpack-encoded events on topicID.
func NewPubSubHook(client *pubsub.Client, topicID string, logger *slog.Logger) RankingsHook {
	return &pubSubHook{
		client: client,
		topic:  client.Topic(topicID),
		logger: logger,
	}
}

func (h *pubSubHook) PublishRankingsRecompute(ctx context.Context, event RankingsRecompute) error {
	data, err := msgpack.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode rankings event for tournament %d: %w", event.TournamentID, err)
	}

	message := &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event":         string(EventRankingsRecompute),
			"tenant_id":     event.TenantID,
			"tournament_id": strconv.Itoa(event.TournamentID),
		},
	}

	result := h.topic.Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to publish rankings event for tournament %d: %w", event.TournamentID, err)
	}
	h.logger.Info("published rankings event", "tournament_id", event.TournamentID, "server_id", serverID)
	return nil
}

// DecodeRankingsRecompute reads a payload produced by the Pub/Sub hook.
func DecodeRankingsRecompute(data []byte) (*RankingsRecompute, error) {
	var event RankingsRecompute
	if err := msgpack.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to decode rankings event: %w", err)
	}
	return &event, nil
}
