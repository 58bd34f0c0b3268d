// Package subscriber holds per-guild notification preferences and the
// predicate that decides which alerts each guild receives.
package subscriber

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/nws-alert-relay/internal/domain"
)

// ErrRequiredEvent is returned when a mutator tries to exclude an event type
// that subscribers must always receive.
var ErrRequiredEvent = errors.New("subscriber: event type cannot be excluded")

// ErrUnknownEvent is returned when a mutator names an event type outside the
// known catalog.
var ErrUnknownEvent = errors.New("subscriber: unknown event type")

// Config is one guild's mutable notification state. Created lazily on the
// first operator command; deleted when the bot leaves the guild.
type Config struct {
	// NotifyChannel receives routine alert notifications. Empty means the
	// guild has not opted in to routine traffic.
	NotifyChannel string `json:"notify_channel,omitempty"`

	// EmergencyChannel receives priority broadcasts. Empty falls back to
	// NotifyChannel.
	EmergencyChannel string `json:"emergency_channel,omitempty"`

	ExcludedEvents  map[string]bool `json:"excluded_events,omitempty"`
	ExcludedSenders map[string]bool `json:"excluded_senders,omitempty"`

	// AllowedSenders, when non-empty, is the only set of senders this guild
	// accepts.
	AllowedSenders map[string]bool `json:"allowed_senders,omitempty"`

	// SevereMode replaces ExcludedEvents with the complement of the severe
	// weather allowlist; the operator's own exclusions are stashed so
	// toggling the mode off restores them exactly.
	SevereMode        bool            `json:"severe_mode,omitempty"`
	StashedExclusions map[string]bool `json:"stashed_exclusions,omitempty"`
}

// ExcludeEvent adds event to the exclusion set. Required event types and
// names outside the catalog are rejected.
func (c *Config) ExcludeEvent(event string) error {
	if !domain.KnownEvent(event) {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	if domain.RequiredEvent(event) {
		return fmt.Errorf("%w: %q", ErrRequiredEvent, event)
	}
	if c.ExcludedEvents == nil {
		c.ExcludedEvents = make(map[string]bool)
	}
	c.ExcludedEvents[event] = true
	return nil
}

// IncludeEvent removes event from the exclusion set.
func (c *Config) IncludeEvent(event string) {
	delete(c.ExcludedEvents, event)
}

// ExcludeMarineEvents adds every marine product in the catalog to the
// exclusion set. Inland guilds use this instead of excluding two dozen
// advisories one at a time. No marine product is a required event, so the
// bulk exclusion cannot fail.
func (c *Config) ExcludeMarineEvents() {
	if c.ExcludedEvents == nil {
		c.ExcludedEvents = make(map[string]bool)
	}
	for _, event := range domain.EventCatalog() {
		if domain.MarineEvent(event) {
			c.ExcludedEvents[event] = true
		}
	}
}

// IncludeMarineEvents removes every marine product from the exclusion set.
func (c *Config) IncludeMarineEvents() {
	for _, event := range domain.EventCatalog() {
		if domain.MarineEvent(event) {
			delete(c.ExcludedEvents, event)
		}
	}
}

// ExcludeSender adds sender to the sender exclusion set.
func (c *Config) ExcludeSender(sender string) {
	if c.ExcludedSenders == nil {
		c.ExcludedSenders = make(map[string]bool)
	}
	c.ExcludedSenders[sender] = true
}

// IncludeSender removes sender from the sender exclusion set.
func (c *Config) IncludeSender(sender string) {
	delete(c.ExcludedSenders, sender)
}

// AllowSender adds sender to the allow-list, switching the guild to
// allow-list mode on the first call.
func (c *Config) AllowSender(sender string) {
	if c.AllowedSenders == nil {
		c.AllowedSenders = make(map[string]bool)
	}
	c.AllowedSenders[sender] = true
}

// UnallowSender removes sender from the allow-list. An emptied allow-list
// reverts the guild to exclusion-based filtering.
func (c *Config) UnallowSender(sender string) {
	delete(c.AllowedSenders, sender)
	if len(c.AllowedSenders) == 0 {
		c.AllowedSenders = nil
	}
}

// SetSevereMode toggles severe weather mode. Activating stashes the current
// exclusion set and excludes everything outside the severe weather allowlist;
// deactivating restores the stash verbatim. Re-asserting the current state is
// a no-op so a repeated command cannot clobber the stash.
func (c *Config) SetSevereMode(active bool) {
	if active == c.SevereMode {
		return
	}

	if active {
		c.StashedExclusions = c.ExcludedEvents
		excluded := make(map[string]bool)
		for _, event := range domain.EventCatalog() {
			if !domain.SevereWeatherEvent(event) {
				excluded[event] = true
			}
		}
		c.ExcludedEvents = excluded
		c.SevereMode = true
		return
	}

	c.ExcludedEvents = c.StashedExclusions
	c.StashedExclusions = nil
	c.SevereMode = false
}

// EmergencyDestination returns the channel for priority broadcasts, falling
// back to the routine channel.
func (c *Config) EmergencyDestination() string {
	if c.EmergencyChannel != "" {
		return c.EmergencyChannel
	}
	return c.NotifyChannel
}
