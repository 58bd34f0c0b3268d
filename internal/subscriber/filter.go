package subscriber

import "github.com/couchcryptid/nws-alert-relay/internal/domain"

// Admits reports whether this guild should be notified about rec. Test
// messages never pass here; a drill reaches subscribers only through
// AdmitsDrill.
func (c *Config) Admits(rec domain.AlertRecord) bool {
	if rec.Event == domain.EventTestMessage {
		return false
	}
	return c.admits(rec)
}

// AdmitsDrill is Admits for operator-initiated resends. A manually injected
// test message is deliverable, but the guild's sender and event filters
// still apply.
func (c *Config) AdmitsDrill(rec domain.AlertRecord) bool {
	return c.admits(rec)
}

// The order of checks is not significant; every rejection is independent.
func (c *Config) admits(rec domain.AlertRecord) bool {
	if c.ExcludedSenders[rec.SenderID] {
		return false
	}
	if c.ExcludedEvents[rec.Event] {
		return false
	}
	if len(c.AllowedSenders) > 0 && !c.AllowedSenders[rec.SenderID] {
		return false
	}
	// Unknown issuers pass only when the message is civil-originated. The
	// feed occasionally carries legitimate non-NWS civil alerts; everything
	// else from an unrecognized office is dropped here.
	if rec.UnknownIssuer && !domain.CivilOriginated(rec) {
		return false
	}
	return true
}
