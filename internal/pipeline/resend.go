package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/couchcryptid/nws-alert-relay/internal/diff"
	"github.com/couchcryptid/nws-alert-relay/internal/domain"
	"github.com/couchcryptid/nws-alert-relay/internal/fixtures"
)

// ErrUnknownFixture reports a resend request naming no known fixture.
var ErrUnknownFixture = errors.New("unknown fixture")

// Resend pushes a named fixture alert through the normal per-subscriber
// filter, classification, and dispatch path. Because the injection is an
// explicit operator action, test messages are deliverable here even though
// the feed cycle always drops them. The persisted snapshot is left
// untouched, so the injection never suppresses a later real alert.
func (p *Pipeline) Resend(ctx context.Context, name string) error {
	rec, ok := fixtures.Get(name)
	if !ok {
		return fmt.Errorf("%w %q, known: %v", ErrUnknownFixture, name, fixtures.Names())
	}

	configs, err := p.settings.All(ctx)
	if err != nil {
		return fmt.Errorf("loading subscriber settings: %w", err)
	}

	ledger := diff.NewEmergencyLedger()
	for guildID, cfg := range configs {
		p.dispatchToSubscriber(ctx, guildID, cfg, cfg.AdmitsDrill, []domain.AlertRecord{rec}, ledger)
	}
	return nil
}
