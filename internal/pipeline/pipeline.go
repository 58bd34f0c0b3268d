// Package pipeline orchestrates one polling cycle: fetch, normalize, diff,
// filter per subscriber, classify, dispatch, persist. A cycle owns the
// previous snapshot exclusively; there is exactly one writer.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/nws-alert-relay/internal/diff"
	"github.com/couchcryptid/nws-alert-relay/internal/dispatch"
	"github.com/couchcryptid/nws-alert-relay/internal/domain"
	"github.com/couchcryptid/nws-alert-relay/internal/observability"
	"github.com/couchcryptid/nws-alert-relay/internal/storage"
	"github.com/couchcryptid/nws-alert-relay/internal/subscriber"
)

// AlertSource fetches raw alerts from upstream.
type AlertSource interface {
	ActiveAlerts(ctx context.Context) ([]domain.RawAlert, error)
	CancelledAlerts(ctx context.Context, since time.Time) ([]domain.RawAlert, error)
}

// Pipeline runs the relay's alert cycle.
type Pipeline struct {
	source   AlertSource
	kv       storage.KV
	settings *subscriber.Settings
	batcher  *dispatch.Batcher
	logger   *slog.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock
	ready    atomic.Bool
}

// New creates a Pipeline.
func New(source AlertSource, kv storage.KV, settings *subscriber.Settings, batcher *dispatch.Batcher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:   source,
		kv:       kv,
		settings: settings,
		batcher:  batcher,
		logger:   logger,
		metrics:  metrics,
		clock:    clockwork.NewRealClock(),
	}
}

// SetClock swaps the pipeline clock. Tests only.
func (p *Pipeline) SetClock(c clockwork.Clock) {
	p.clock = c
}

// CheckReadiness returns nil once at least one cycle has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no polling cycle has completed yet")
	}
	return nil
}

// Tick runs one complete cycle. A fetch failure aborts the cycle with the
// previous snapshot untouched; everything after a successful fetch degrades
// per record or per subscriber instead of aborting.
func (p *Pipeline) Tick(ctx context.Context) error {
	start := p.clock.Now()

	previous := p.loadSnapshot(ctx)

	raws, err := p.fetch(ctx, "alerts", p.source.ActiveAlerts)
	if err != nil {
		p.metrics.CycleFailures.Inc()
		return err
	}

	// Cancellations vanish from the active endpoint immediately; fetch them
	// separately since the last snapshot. On a cold start the baseline digest
	// already covers everything in effect.
	if previous != nil {
		cancels, err := p.fetch(ctx, "cancel", func(ctx context.Context) ([]domain.RawAlert, error) {
			return p.source.CancelledAlerts(ctx, previous.TakenAt)
		})
		if err != nil {
			p.metrics.CycleFailures.Inc()
			return err
		}
		raws = append(raws, cancels...)
	}

	records := p.normalize(raws)
	p.metrics.AlertsSeen.Add(float64(len(records)))

	result := diff.Compute(previous, records)
	p.metrics.AlertsNew.Add(float64(len(result.New)))

	p.dispatchCycle(ctx, result)

	// Persist regardless of dispatch outcome: a delivery failure must not
	// replay the same alerts next cycle.
	p.saveSnapshot(ctx, result.Snapshot)

	p.metrics.CyclesCompleted.Inc()
	p.metrics.CycleDuration.Observe(p.clock.Since(start).Seconds())
	p.ready.Store(true)
	return nil
}

// fetch runs one upstream query with per-feed request metrics.
func (p *Pipeline) fetch(ctx context.Context, feed string, fn func(context.Context) ([]domain.RawAlert, error)) ([]domain.RawAlert, error) {
	start := p.clock.Now()
	raws, err := fn(ctx)
	p.metrics.FetchDuration.WithLabelValues(feed).Observe(p.clock.Since(start).Seconds())
	if err != nil {
		p.metrics.FetchRequests.WithLabelValues(feed, "error").Inc()
		return nil, err
	}
	p.metrics.FetchRequests.WithLabelValues(feed, "success").Inc()
	return raws, nil
}

// normalize converts raw records, dropping malformed ones and logging
// unknown issuers. Neither aborts the cycle.
func (p *Pipeline) normalize(raws []domain.RawAlert) []domain.AlertRecord {
	records := make([]domain.AlertRecord, 0, len(raws))
	for _, raw := range raws {
		rec, err := domain.NormalizeAlert(raw)
		if err != nil {
			p.logger.Warn("Dropping malformed record", "error", err)
			p.metrics.MalformedAlerts.Inc()
			continue
		}
		if rec.UnknownIssuer {
			p.logger.Warn("Alert from unknown issuer retained", "id", rec.ID, "sender", rec.SenderID, "event", rec.Event)
			p.metrics.UnknownIssuers.Inc()
		}
		records = append(records, rec)
	}
	return records
}

// dispatchCycle fans the diff result out to every subscriber. No subscriber's
// failure may prevent another's processing.
func (p *Pipeline) dispatchCycle(ctx context.Context, result diff.Result) {
	configs, err := p.settings.All(ctx)
	if err != nil {
		p.logger.Error("Failed to load subscriber settings, skipping dispatch", "error", err)
		return
	}

	ledger := diff.NewEmergencyLedger()

	for guildID, cfg := range configs {
		if result.Baseline {
			if cfg.NotifyChannel != "" {
				if err := p.batcher.DispatchBaseline(ctx, cfg.NotifyChannel, result.Snapshot); err != nil {
					p.logger.Error("Baseline dispatch failed", "guild", guildID, "error", err)
				}
			}
			continue
		}

		p.dispatchToSubscriber(ctx, guildID, cfg, cfg.Admits, result.New, ledger)
	}
}

// dispatchToSubscriber filters, classifies, and delivers one subscriber's
// share of the cycle. The admit predicate is cfg.Admits for feed cycles and
// cfg.AdmitsDrill for operator resends. Emergencies short-circuit out of the
// standard stream and fire at most once per alert per destination per cycle.
func (p *Pipeline) dispatchToSubscriber(ctx context.Context, guildID string, cfg *subscriber.Config, admit func(domain.AlertRecord) bool, fresh []domain.AlertRecord, ledger diff.EmergencyLedger) {
	var standard []domain.AlertRecord
	for _, rec := range fresh {
		if !admit(rec) {
			continue
		}

		if domain.IsEmergency(rec) {
			dest := cfg.EmergencyDestination()
			if dest != "" && ledger.FirstDispatch(guildID+"|"+rec.ID) {
				if err := p.batcher.DispatchEmergency(ctx, dest, rec); err != nil {
					p.logger.Error("Emergency dispatch failed", "guild", guildID, "id", rec.ID, "error", err)
				}
			}
			continue
		}

		standard = append(standard, rec)
	}

	if cfg.NotifyChannel == "" {
		return
	}
	if err := p.batcher.DispatchStandard(ctx, cfg.NotifyChannel, standard); err != nil {
		p.logger.Error("Standard dispatch incomplete", "guild", guildID, "error", err)
	}
}

// loadSnapshot reads the persisted previous snapshot. Absent and corrupt
// both read as a cold start.
func (p *Pipeline) loadSnapshot(ctx context.Context) *domain.Snapshot {
	data, err := p.kv.Get(ctx, storage.KeyPrevSnapshot)
	if storage.IsNotFound(err) {
		return nil
	}
	if err != nil {
		p.logger.Warn("Failed to read previous snapshot, treating as cold start", "error", err)
		return nil
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		p.logger.Warn("Previous snapshot is corrupt, treating as cold start", "error", err)
		return nil
	}
	snap.Reindex()
	return &snap
}

// saveSnapshot persists the cycle's snapshot. A write failure leaves the next
// cycle diffing against a stale previous, a bounded and accepted window.
func (p *Pipeline) saveSnapshot(ctx context.Context, snap domain.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		p.logger.Error("Failed to marshal snapshot", "error", err)
		return
	}
	if err := p.kv.Put(ctx, storage.KeyPrevSnapshot, data); err != nil {
		p.logger.Error("Failed to persist snapshot, next cycle diffs against stale state", "error", err)
	}
}
