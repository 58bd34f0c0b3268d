package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const (
	globalsFile = "globals.json"
	guildsFile  = "guilds.json"
)

// FileStore keeps relay state in two JSON files under a directory. It is the
// default backend for single-node deployments and for tests.
//
// A corrupt or unreadable file is treated as empty. Losing the snapshot only
// costs one baseline announcement, which beats refusing to start.
type FileStore struct {
	logger *slog.Logger
	dir    string

	mu      sync.Mutex
	globals map[string]json.RawMessage
	guilds  map[string]map[string]json.RawMessage
}

// NewFileStore opens (or initializes) a file-backed store rooted at dir.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	s := &FileStore{
		logger:  logger,
		dir:     dir,
		globals: make(map[string]json.RawMessage),
		guilds:  make(map[string]map[string]json.RawMessage),
	}

	s.loadFile(globalsFile, &s.globals)
	s.loadFile(guildsFile, &s.guilds)

	return s, nil
}

func (s *FileStore) loadFile(name string, dst any) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read state file, starting empty", "path", path, "error", err)
		}
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("State file is corrupt, starting empty", "path", path, "error", err)
	}
}

// flushLocked writes one state file. Write-then-rename keeps a crash mid-write
// from corrupting the previous state.
func (s *FileStore) flushLocked(name string, src any) error {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Get returns the value for a global key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.globals[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

// Put stores a global key.
func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.globals[key] = json.RawMessage(value)
	return s.flushLocked(globalsFile, s.globals)
}

// GetGuild returns a per-guild value.
func (s *FileStore) GetGuild(_ context.Context, guildID, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild, ok := s.guilds[guildID]
	if !ok {
		return nil, ErrNotFound
	}
	value, ok := guild[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

// PutGuild stores a per-guild value.
func (s *FileStore) PutGuild(_ context.Context, guildID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild, ok := s.guilds[guildID]
	if !ok {
		guild = make(map[string]json.RawMessage)
		s.guilds[guildID] = guild
	}
	guild[key] = json.RawMessage(value)
	return s.flushLocked(guildsFile, s.guilds)
}

// DeleteGuild removes all state for a guild.
func (s *FileStore) DeleteGuild(_ context.Context, guildID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.guilds[guildID]; !ok {
		return nil
	}
	delete(s.guilds, guildID)
	return s.flushLocked(guildsFile, s.guilds)
}

// ListGuilds returns the ids of guilds with stored state, sorted for stable
// iteration order.
func (s *FileStore) ListGuilds(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.guilds))
	for id := range s.guilds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
