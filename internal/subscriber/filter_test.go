package subscriber

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/nws-alert-relay/internal/domain"
	"github.com/couchcryptid/nws-alert-relay/internal/storage"
)

func record(event, sender string) domain.AlertRecord {
	return domain.AlertRecord{
		ID:          "urn:oid:test",
		Event:       event,
		SenderID:    sender,
		MessageType: domain.MessageAlert,
		Status:      domain.StatusActual,
	}
}

func TestAdmits(t *testing.T) {
	tornado := record(domain.EventTornadoWarning, "NWS Norman OK")

	t.Run("zero config admits actual alerts", func(t *testing.T) {
		var cfg Config
		assert.True(t, cfg.Admits(tornado))
	})

	t.Run("excluded sender", func(t *testing.T) {
		cfg := Config{ExcludedSenders: map[string]bool{"NWS Norman OK": true}}
		assert.False(t, cfg.Admits(tornado))
	})

	t.Run("excluded event", func(t *testing.T) {
		cfg := Config{ExcludedEvents: map[string]bool{domain.EventTornadoWarning: true}}
		assert.False(t, cfg.Admits(tornado))
	})

	t.Run("test messages never admitted", func(t *testing.T) {
		var cfg Config
		assert.False(t, cfg.Admits(record(domain.EventTestMessage, "NWS Norman OK")))
	})

	t.Run("allow-list admits only listed senders", func(t *testing.T) {
		cfg := Config{AllowedSenders: map[string]bool{"NWS Tulsa OK": true}}
		assert.False(t, cfg.Admits(tornado))
		assert.True(t, cfg.Admits(record(domain.EventTornadoWarning, "NWS Tulsa OK")))
	})

	t.Run("drill admits test messages", func(t *testing.T) {
		var cfg Config
		assert.True(t, cfg.AdmitsDrill(record(domain.EventTestMessage, "NWS Norman OK")))
	})

	t.Run("drill still applies guild filters", func(t *testing.T) {
		test := record(domain.EventTestMessage, "NWS Norman OK")

		cfg := Config{ExcludedSenders: map[string]bool{"NWS Norman OK": true}}
		assert.False(t, cfg.AdmitsDrill(test))

		cfg = Config{ExcludedEvents: map[string]bool{domain.EventTestMessage: true}}
		assert.False(t, cfg.AdmitsDrill(test))
	})

	t.Run("unknown issuer rejected unless civil", func(t *testing.T) {
		var cfg Config

		unknown := record(domain.EventCivilDangerWarning, "Totally Real Weather Inc")
		unknown.UnknownIssuer = true
		assert.False(t, cfg.Admits(unknown))

		civil := unknown
		civil.Parameters = domain.Parameters{domain.ParamEASOrg: {"CIV"}}
		assert.True(t, cfg.Admits(civil))
	})
}

func TestSettings_RoundTrip(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	kv, err := storage.NewFileStore(t.TempDir(), logger)
	require.NoError(t, err)
	settings := NewSettings(kv, logger)

	// Unknown guild gets a zero config.
	cfg, err := settings.Load(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)

	cfg.NotifyChannel = "weather"
	require.NoError(t, cfg.ExcludeEvent("Frost Advisory"))
	cfg.SetSevereMode(true)
	require.NoError(t, settings.Save(ctx, "123", cfg))

	loaded, err := settings.Load(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	// Deactivating after a reload still restores the pre-activation set.
	loaded.SetSevereMode(false)
	assert.Equal(t, map[string]bool{"Frost Advisory": true}, loaded.ExcludedEvents)

	all, err := settings.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, settings.Delete(ctx, "123"))
	cfg, err = settings.Load(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestSettings_CorruptStateResets(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	kv, err := storage.NewFileStore(t.TempDir(), logger)
	require.NoError(t, err)
	require.NoError(t, kv.PutGuild(ctx, "123", storage.KeyGuildSettings, []byte(`[1,2,3]`)))

	settings := NewSettings(kv, logger)
	cfg, err := settings.Load(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}
