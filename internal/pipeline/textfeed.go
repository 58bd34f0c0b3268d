package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/nws-alert-relay/internal/adapter/textfeed"
	"github.com/couchcryptid/nws-alert-relay/internal/dispatch"
	"github.com/couchcryptid/nws-alert-relay/internal/observability"
	"github.com/couchcryptid/nws-alert-relay/internal/storage"
	"github.com/couchcryptid/nws-alert-relay/internal/subscriber"
)

// maxBulletinsPerTick bounds how many bulletins one tick announces per feed,
// so a lost marker cannot flood every channel with the feed's full history.
const maxBulletinsPerTick = 5

// BulletinSource polls one free-text bulletin feed.
type BulletinSource interface {
	Name() string
	Latest(ctx context.Context) ([]textfeed.Bulletin, error)
}

type feedBinding struct {
	source   BulletinSource
	stateKey string
}

// TextPipeline relays SPC and WPC chat bulletins, which never appear on the
// alert API, into subscriber notify channels.
type TextPipeline struct {
	feeds    []feedBinding
	kv       storage.KV
	settings *subscriber.Settings
	sender   dispatch.Sender
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTextPipeline binds the SPC and WPC feeds to their persisted markers.
func NewTextPipeline(kv storage.KV, settings *subscriber.Settings, sender dispatch.Sender, logger *slog.Logger, metrics *observability.Metrics, spc, wpc BulletinSource) *TextPipeline {
	return &TextPipeline{
		feeds: []feedBinding{
			{source: spc, stateKey: storage.KeyPrevFeedA},
			{source: wpc, stateKey: storage.KeyPrevFeedB},
		},
		kv:       kv,
		settings: settings,
		sender:   sender,
		logger:   logger,
		metrics:  metrics,
	}
}

// Tick polls each feed once. Feed failures are independent; one feed being
// down never blocks the other.
func (t *TextPipeline) Tick(ctx context.Context) error {
	for _, binding := range t.feeds {
		if err := t.tickFeed(ctx, binding); err != nil {
			t.logger.Error("Bulletin feed tick failed", "feed", binding.source.Name(), "error", err)
		}
	}
	return nil
}

func (t *TextPipeline) tickFeed(ctx context.Context, binding feedBinding) error {
	start := time.Now()
	items, err := binding.source.Latest(ctx)
	t.metrics.FetchDuration.WithLabelValues("text").Observe(time.Since(start).Seconds())
	if err != nil {
		t.metrics.FetchRequests.WithLabelValues("text", "error").Inc()
		return err
	}
	t.metrics.FetchRequests.WithLabelValues("text", "success").Inc()
	if len(items) == 0 {
		return nil
	}

	marker, err := t.kv.Get(ctx, binding.stateKey)
	if err != nil && !storage.IsNotFound(err) {
		return fmt.Errorf("reading feed marker: %w", err)
	}

	// First sighting of a feed only records where it stands. Announcing the
	// whole backlog would replay hours of old discussion.
	if storage.IsNotFound(err) {
		return t.saveMarker(ctx, binding.stateKey, items[0])
	}

	fresh := bulletinsSince(items, string(marker))
	if len(fresh) == 0 {
		return nil
	}

	t.announce(ctx, binding.source.Name(), fresh)

	return t.saveMarker(ctx, binding.stateKey, items[0])
}

// bulletinsSince returns the items newer than the marker, oldest first, capped
// at maxBulletinsPerTick. Items arrive newest first.
func bulletinsSince(items []textfeed.Bulletin, marker string) []textfeed.Bulletin {
	var fresh []textfeed.Bulletin
	for _, item := range items {
		if item.Key() == marker || len(fresh) == maxBulletinsPerTick {
			break
		}
		fresh = append(fresh, item)
	}
	for i, j := 0, len(fresh)-1; i < j; i, j = i+1, j-1 {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	}
	return fresh
}

// announce delivers bulletins to every subscriber with a notify channel.
// Delivery failures are logged per destination and never abort the tick.
func (t *TextPipeline) announce(ctx context.Context, feedName string, fresh []textfeed.Bulletin) {
	configs, err := t.settings.All(ctx)
	if err != nil {
		t.logger.Error("Failed to load subscriber settings for bulletins", "error", err)
		return
	}

	for guildID, cfg := range configs {
		if cfg.NotifyChannel == "" {
			continue
		}
		for _, b := range fresh {
			text := fmt.Sprintf("**[%s]** %s\n%s", feedName, b.Title, b.Link)
			if err := t.sender.Send(ctx, cfg.NotifyChannel, text, nil); err != nil {
				t.metrics.DeliveryErrors.Inc()
				t.logger.Error("Bulletin delivery failed", "guild", guildID, "feed", feedName, "error", err)
				continue
			}
			t.metrics.Dispatches.WithLabelValues("bulletin").Inc()
		}
	}
}

func (t *TextPipeline) saveMarker(ctx context.Context, key string, newest textfeed.Bulletin) error {
	if err := t.kv.Put(ctx, key, []byte(newest.Key())); err != nil {
		return fmt.Errorf("persisting feed marker: %w", err)
	}
	return nil
}
