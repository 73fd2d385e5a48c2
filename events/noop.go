package events

import "context"

type noopHook struct{}

// NewNoopHook returns a hook that drops every event. Used when no topic is configured.
func NewNoopHook() RankingsHook {
	return noopHook{}
}

func (noopHook) PublishRankingsRecompute(context.Context, RankingsRecompute) error {
	return nil
}
