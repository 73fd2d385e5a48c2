package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

const jsonContentType = "application/json"

// StandingsKey is the object key of a tournament's final standings snapshot.
func StandingsKey(tournamentID int) string {
	return fmt.Sprintf("tournaments/%d/final-standings.json", tournamentID)
}

// UploadJSON encodes v and stores it under key.
func UploadJSON(ctx context.Context, uploader FileUploader, key string, v any) (*UploadResult, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return uploader.Upload(ctx, key, jsonContentType, bytes.NewReader(payload))
}
