package subscriber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/nws-alert-relay/internal/domain"
)

func TestConfig_ExcludeEvent(t *testing.T) {
	t.Run("excludes a known optional event", func(t *testing.T) {
		var cfg Config
		require.NoError(t, cfg.ExcludeEvent("Frost Advisory"))
		assert.True(t, cfg.ExcludedEvents["Frost Advisory"])
	})

	t.Run("rejects required events", func(t *testing.T) {
		var cfg Config
		err := cfg.ExcludeEvent(domain.EventTornadoWarning)
		assert.ErrorIs(t, err, ErrRequiredEvent)
		assert.Empty(t, cfg.ExcludedEvents)
	})

	t.Run("rejects unknown event names", func(t *testing.T) {
		var cfg Config
		err := cfg.ExcludeEvent("Sharknado Warning")
		assert.ErrorIs(t, err, ErrUnknownEvent)
	})

	t.Run("include undoes exclude", func(t *testing.T) {
		var cfg Config
		require.NoError(t, cfg.ExcludeEvent("Frost Advisory"))
		cfg.IncludeEvent("Frost Advisory")
		assert.False(t, cfg.ExcludedEvents["Frost Advisory"])
	})
}

func TestConfig_MarineEvents(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.ExcludeEvent("Frost Advisory"))

	cfg.ExcludeMarineEvents()
	assert.True(t, cfg.ExcludedEvents["Gale Warning"])
	assert.True(t, cfg.ExcludedEvents["Special Marine Warning"])
	assert.True(t, cfg.ExcludedEvents["Frost Advisory"])
	assert.False(t, cfg.ExcludedEvents[domain.EventTornadoWarning])

	cfg.IncludeMarineEvents()
	assert.False(t, cfg.ExcludedEvents["Gale Warning"])
	assert.False(t, cfg.ExcludedEvents["Special Marine Warning"])
	// Non-marine exclusions survive the bulk include.
	assert.True(t, cfg.ExcludedEvents["Frost Advisory"])
}

func TestConfig_SevereModeRoundTrip(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.ExcludeEvent("Frost Advisory"))
	require.NoError(t, cfg.ExcludeEvent("Gale Warning"))
	before := map[string]bool{"Frost Advisory": true, "Gale Warning": true}

	cfg.SetSevereMode(true)
	assert.True(t, cfg.SevereMode)
	assert.True(t, cfg.ExcludedEvents["Frost Advisory"])
	assert.True(t, cfg.ExcludedEvents["Dense Fog Advisory"])
	assert.False(t, cfg.ExcludedEvents[domain.EventTornadoWarning])
	assert.False(t, cfg.ExcludedEvents[domain.EventFlashFloodWatch])

	// Re-asserting the active state must not clobber the stash.
	cfg.SetSevereMode(true)

	cfg.SetSevereMode(false)
	assert.False(t, cfg.SevereMode)
	assert.Equal(t, before, cfg.ExcludedEvents)
	assert.Nil(t, cfg.StashedExclusions)
}

func TestConfig_EmergencyDestination(t *testing.T) {
	cfg := Config{NotifyChannel: "general"}
	assert.Equal(t, "general", cfg.EmergencyDestination())

	cfg.EmergencyChannel = "sirens"
	assert.Equal(t, "sirens", cfg.EmergencyDestination())
}

func TestConfig_SenderMutators(t *testing.T) {
	var cfg Config

	cfg.ExcludeSender("NWS Norman OK")
	assert.True(t, cfg.ExcludedSenders["NWS Norman OK"])
	cfg.IncludeSender("NWS Norman OK")
	assert.False(t, cfg.ExcludedSenders["NWS Norman OK"])

	cfg.AllowSender("NWS Tulsa OK")
	assert.True(t, cfg.AllowedSenders["NWS Tulsa OK"])
	cfg.UnallowSender("NWS Tulsa OK")
	assert.Nil(t, cfg.AllowedSenders)
}
