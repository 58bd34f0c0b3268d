package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/codeGROOVE-dev/retry"
	"google.golang.org/api/iterator"
)

const (
	gcsGlobalPrefix = "global/"
	gcsGuildPrefix  = "guild/"
)

// GCSStore keeps relay state as JSON objects in a Cloud Storage bucket.
// Global keys live under global/, guild state under guild/{id}/.
type GCSStore struct {
	client *storage.Client
	logger *slog.Logger
	bucket string
}

// NewGCSStore wraps an existing Cloud Storage client.
func NewGCSStore(client *storage.Client, bucket string, logger *slog.Logger) *GCSStore {
	return &GCSStore{
		client: client,
		logger: logger,
		bucket: bucket,
	}
}

// objectName builds a bucket object path. Guild ids are Discord snowflakes;
// anything with a path separator is rejected before it reaches the bucket.
func gcsObjectName(guildID, key string) (string, error) {
	if strings.ContainsAny(key, "/\\") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	if guildID == "" {
		return gcsGlobalPrefix + key + ".json", nil
	}
	if strings.ContainsAny(guildID, "/\\") {
		return "", fmt.Errorf("invalid guild id %q", guildID)
	}
	return gcsGuildPrefix + guildID + "/" + key + ".json", nil
}

func (s *GCSStore) retryOpts(ctx context.Context, op, name string) []retry.Option {
	return []retry.Option{
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(30 * time.Second),
		retry.MaxJitter(5 * time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, retryErr error) {
			s.logger.Info("Retrying bucket operation", "op", op, "attempt", n, "object", name, "error", retryErr)
		}),
	}
}

func (s *GCSStore) read(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := retry.Do(
		func() error {
			r, openErr := s.client.Bucket(s.bucket).Object(name).NewReader(ctx)
			if openErr != nil {
				if errors.Is(openErr, storage.ErrObjectNotExist) {
					return retry.Unrecoverable(ErrNotFound)
				}
				return fmt.Errorf("open bucket reader: %w", openErr)
			}
			defer func() {
				if closeErr := r.Close(); closeErr != nil {
					s.logger.Warn("Failed to close bucket reader", "error", closeErr)
				}
			}()

			var readErr error
			data, readErr = io.ReadAll(r)
			if readErr != nil {
				return fmt.Errorf("read bucket object: %w", readErr)
			}
			return nil
		},
		s.retryOpts(ctx, "read", name)...,
	)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s after retries: %w", name, err)
	}
	return data, nil
}

func (s *GCSStore) write(ctx context.Context, name string, data []byte) error {
	err := retry.Do(
		func() error {
			w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
			if _, writeErr := w.Write(data); writeErr != nil {
				if closeErr := w.Close(); closeErr != nil {
					s.logger.Warn("Failed to close writer after error", "error", closeErr)
				}
				return fmt.Errorf("write bucket object: %w", writeErr)
			}
			if closeErr := w.Close(); closeErr != nil {
				return fmt.Errorf("close bucket writer: %w", closeErr)
			}
			return nil
		},
		s.retryOpts(ctx, "write", name)...,
	)
	if err != nil {
		return fmt.Errorf("write %s after retries: %w", name, err)
	}
	return nil
}

// Get returns the value for a global key.
func (s *GCSStore) Get(ctx context.Context, key string) ([]byte, error) {
	name, err := gcsObjectName("", key)
	if err != nil {
		return nil, err
	}
	return s.read(ctx, name)
}

// Put stores a global key.
func (s *GCSStore) Put(ctx context.Context, key string, value []byte) error {
	name, err := gcsObjectName("", key)
	if err != nil {
		return err
	}
	return s.write(ctx, name, value)
}

// GetGuild returns a per-guild value.
func (s *GCSStore) GetGuild(ctx context.Context, guildID, key string) ([]byte, error) {
	name, err := gcsObjectName(guildID, key)
	if err != nil {
		return nil, err
	}
	return s.read(ctx, name)
}

// PutGuild stores a per-guild value.
func (s *GCSStore) PutGuild(ctx context.Context, guildID, key string, value []byte) error {
	name, err := gcsObjectName(guildID, key)
	if err != nil {
		return err
	}
	return s.write(ctx, name, value)
}

// DeleteGuild removes every object under the guild's prefix. Deletion is
// idempotent; already-gone objects are skipped.
func (s *GCSStore) DeleteGuild(ctx context.Context, guildID string) error {
	if strings.ContainsAny(guildID, "/\\") || guildID == "" {
		return fmt.Errorf("invalid guild id %q", guildID)
	}

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{
		Prefix: gcsGuildPrefix + guildID + "/",
	})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("iterate guild objects: %w", err)
		}

		if err := s.client.Bucket(s.bucket).Object(attrs.Name).Delete(ctx); err != nil {
			if errors.Is(err, storage.ErrObjectNotExist) {
				continue
			}
			return fmt.Errorf("delete %s: %w", attrs.Name, err)
		}
	}
	return nil
}

// ListGuilds returns the distinct guild ids present under guild/.
func (s *GCSStore) ListGuilds(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{
		Prefix: gcsGuildPrefix,
	})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate guild objects: %w", err)
		}

		rest := strings.TrimPrefix(attrs.Name, gcsGuildPrefix)
		id, _, found := strings.Cut(rest, "/")
		if !found || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
