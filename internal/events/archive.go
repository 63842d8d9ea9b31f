package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dtroode/blog-auth-server/internal/model"
)

// ArchiveSink stores each event as a JSON object under
// events/YYYY/MM/DD/<event id>.json. An event already archived is not
// written again.
type ArchiveSink struct {
	storage model.Storage
}

func NewArchiveSink(storage model.Storage) *ArchiveSink {
	return &ArchiveSink{storage: storage}
}

func (s *ArchiveSink) Emit(ctx context.Context, event model.TokenEvent) error {
	key := ArchiveKey(event)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check archived event %s: %w", event.ID, err)
	}
	if exists {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := s.storage.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), "application/json"); err != nil {
		return fmt.Errorf("failed to archive event %s: %w", event.ID, err)
	}
	return nil
}

func ArchiveKey(event model.TokenEvent) string {
	return fmt.Sprintf("events/%s/%s.json", event.OccurredAt.UTC().Format("2006/01/02"), event.ID)
}
