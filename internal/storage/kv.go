// Package storage persists relay state between polling cycles: the previous
// alert snapshot, text-product markers, and per-guild subscriber settings.
// Three backends share one interface so deployments can pick local files,
// Redis, or a Cloud Storage bucket without touching the pipeline.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has never been written. Callers treat it
// as a cold start, never as a failure.
var ErrNotFound = errors.New("storage: key not found")

// Global keys used by the pipeline.
const (
	KeyPrevSnapshot = "prev_alerts_snapshot"
	KeyPrevFeedA    = "prev_feed_a"
	KeyPrevFeedB    = "prev_feed_b"
)

// KeyGuildSettings is the per-guild key holding subscriber settings.
const KeyGuildSettings = "settings"

// KV is the relay's persistence surface. Values are opaque JSON blobs; the
// subscriber and pipeline packages own the schemas.
type KV interface {
	// Get returns the value for a global key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores a global key. Writes must be durable before returning so a
	// crash between cycles never replays already-announced alerts.
	Put(ctx context.Context, key string, value []byte) error

	// GetGuild returns a per-guild value, or ErrNotFound.
	GetGuild(ctx context.Context, guildID, key string) ([]byte, error)

	// PutGuild stores a per-guild value.
	PutGuild(ctx context.Context, guildID, key string, value []byte) error

	// DeleteGuild removes all state for a guild. Deleting an unknown guild
	// is not an error.
	DeleteGuild(ctx context.Context, guildID string) error

	// ListGuilds returns the ids of all guilds with stored state.
	ListGuilds(ctx context.Context) ([]string, error)
}

// IsNotFound reports whether err means the key was absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
