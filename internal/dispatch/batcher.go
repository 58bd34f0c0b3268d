package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/nws-alert-relay/internal/domain"
	"github.com/couchcryptid/nws-alert-relay/internal/observability"
)

// DigestThreshold is the per-cycle record count above which a subscriber gets
// one digest message instead of individual notifications. Chat platforms rate
// limit hard during alert storms.
const DigestThreshold = 5

// Batcher decides, per subscriber and cycle, between individual messages and
// a single digest, and renders the priority broadcasts.
type Batcher struct {
	sender  Sender
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewBatcher wires a batcher to its delivery client.
func NewBatcher(sender Sender, logger *slog.Logger, metrics *observability.Metrics) *Batcher {
	return &Batcher{sender: sender, logger: logger, metrics: metrics}
}

func (b *Batcher) send(ctx context.Context, kind, destination, text string, att *Attachment) error {
	if err := b.sender.Send(ctx, destination, text, att); err != nil {
		b.metrics.DeliveryErrors.Inc()
		derr := &DeliveryError{Destination: destination, Err: err}
		b.logger.Error("Delivery failed", "kind", kind, "destination", destination, "error", err)
		return derr
	}
	b.metrics.Dispatches.WithLabelValues(kind).Inc()
	return nil
}

// DispatchStandard delivers a cycle's new alerts to one subscriber's notify
// channel: k records send k messages for 0 < k <= DigestThreshold, exactly
// one digest for k > DigestThreshold, nothing for k == 0. A failed record
// delivery does not stop the remaining records.
func (b *Batcher) DispatchStandard(ctx context.Context, destination string, records []domain.AlertRecord) error {
	if len(records) == 0 {
		return nil
	}

	if len(records) > DigestThreshold {
		text := fmt.Sprintf("%d alerts were issued or updated.", len(records))
		att := &Attachment{Name: "alerts.txt", Body: DigestBody(records)}
		return b.send(ctx, "digest", destination, text, att)
	}

	var errs []error
	for _, rec := range records {
		text, att := RenderRecord(rec)
		if err := b.send(ctx, "record", destination, text, att); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DispatchBaseline announces a cold start: one digest summarizing everything
// currently in effect, never per-record messages. Test records count here;
// they are only dropped from warm-cycle deltas.
func (b *Batcher) DispatchBaseline(ctx context.Context, destination string, snap domain.Snapshot) error {
	text := fmt.Sprintf("Now monitoring the alert feed. %d alert(s) are currently in effect.", snap.Len())
	att := &Attachment{Name: "alerts.txt", Body: DigestBody(snap.Records)}
	return b.send(ctx, "baseline", destination, text, att)
}

// DispatchEmergency delivers one priority broadcast. The caller enforces the
// once-per-id-per-cycle guarantee.
func (b *Batcher) DispatchEmergency(ctx context.Context, destination string, rec domain.AlertRecord) error {
	text := RenderEmergency(rec)
	var att *Attachment
	if long := LongText(rec); long != "" {
		att = &Attachment{Name: attachmentName(rec), Body: []byte(long)}
	}
	return b.send(ctx, "emergency", destination, text, att)
}
