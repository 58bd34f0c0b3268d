// Package dispatch turns classified alerts into delivered messages: one per
// record under normal load, a single digest under alert storms, and a
// separate priority broadcast for emergencies.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
)

// Attachment is a document delivered alongside a message. The delivery client
// performs no chunking; callers split long content into an attachment before
// sending.
type Attachment struct {
	Name string
	Body []byte
}

// Sender delivers one message to one destination. Text must fit the
// platform's inline limit; see MaxInlineLen.
type Sender interface {
	Send(ctx context.Context, destination, text string, att *Attachment) error
}

// DeliveryError wraps a failed send to one destination. Deliveries to other
// destinations continue; the cycle is never aborted by one failure.
type DeliveryError struct {
	Destination string
	Err         error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Destination, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Tee fans deliveries out to a primary sender plus best-effort mirrors.
// Mirror failures are logged and dropped; only the primary's error surfaces.
type Tee struct {
	primary Sender
	mirrors []Sender
	logger  *slog.Logger
}

// NewTee wraps primary with zero or more mirrors.
func NewTee(logger *slog.Logger, primary Sender, mirrors ...Sender) *Tee {
	return &Tee{primary: primary, mirrors: mirrors, logger: logger}
}

// Send delivers to the primary, then mirrors.
func (t *Tee) Send(ctx context.Context, destination, text string, att *Attachment) error {
	err := t.primary.Send(ctx, destination, text, att)

	for _, m := range t.mirrors {
		if merr := m.Send(ctx, destination, text, att); merr != nil {
			t.logger.Warn("Mirror delivery failed", "destination", destination, "error", merr)
		}
	}

	return err
}
