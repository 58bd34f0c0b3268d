package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/nws-alert-relay/internal/storage"
)

// Settings loads and saves per-guild configs through the relay's KV store.
type Settings struct {
	kv     storage.KV
	logger *slog.Logger
}

// NewSettings wraps kv.
func NewSettings(kv storage.KV, logger *slog.Logger) *Settings {
	return &Settings{kv: kv, logger: logger}
}

// Load returns the guild's config. A guild with no stored state, or with
// state that no longer decodes, gets a fresh zero config; losing preferences
// is recoverable, refusing to notify is not.
func (s *Settings) Load(ctx context.Context, guildID string) (*Config, error) {
	data, err := s.kv.GetGuild(ctx, guildID, storage.KeyGuildSettings)
	if storage.IsNotFound(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings for guild %s: %w", guildID, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.logger.Warn("Guild settings are corrupt, resetting", "guild", guildID, "error", err)
		return &Config{}, nil
	}
	return &cfg, nil
}

// Save persists the guild's config.
func (s *Settings) Save(ctx context.Context, guildID string, cfg *Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings for guild %s: %w", guildID, err)
	}
	if err := s.kv.PutGuild(ctx, guildID, storage.KeyGuildSettings, data); err != nil {
		return fmt.Errorf("save settings for guild %s: %w", guildID, err)
	}
	return nil
}

// Delete removes all stored state for a guild. Called when the bot leaves.
func (s *Settings) Delete(ctx context.Context, guildID string) error {
	if err := s.kv.DeleteGuild(ctx, guildID); err != nil {
		return fmt.Errorf("delete settings for guild %s: %w", guildID, err)
	}
	return nil
}

// All returns every guild's config keyed by guild id.
func (s *Settings) All(ctx context.Context) (map[string]*Config, error) {
	ids, err := s.kv.ListGuilds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guilds: %w", err)
	}

	configs := make(map[string]*Config, len(ids))
	for _, id := range ids {
		cfg, err := s.Load(ctx, id)
		if err != nil {
			s.logger.Warn("Failed to load guild settings, skipping", "guild", id, "error", err)
			continue
		}
		configs[id] = cfg
	}
	return configs, nil
}
