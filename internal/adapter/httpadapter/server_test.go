package httpadapter_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/nws-alert-relay/internal/adapter/httpadapter"
	"github.com/couchcryptid/nws-alert-relay/internal/adapter/nws"
	"github.com/couchcryptid/nws-alert-relay/internal/pipeline"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockResender struct {
	names []string
	err   error
}

func (m *mockResender) Resend(_ context.Context, name string) error {
	m.names = append(m.names, name)
	return m.err
}

type mockWeather struct {
	count    int
	countErr error
	gp       nws.GridPoint
	periods  []nws.ForecastPeriod
	terms    []nws.GlossaryTerm
}

func (m *mockWeather) ActiveAlertCount(_ context.Context) (int, error) { return m.count, m.countErr }

func (m *mockWeather) Point(_ context.Context, _, _ float64) (nws.GridPoint, error) {
	return m.gp, nil
}

func (m *mockWeather) Forecast(_ context.Context, _ nws.GridPoint) ([]nws.ForecastPeriod, error) {
	return m.periods, nil
}

func (m *mockWeather) Glossary(_ context.Context) ([]nws.GlossaryTerm, error) {
	return m.terms, nil
}

type mockSettings struct {
	deleted []string
}

func (m *mockSettings) Delete(_ context.Context, guildID string) error {
	m.deleted = append(m.deleted, guildID)
	return nil
}

func newTestServer(readyErr error, admin httpadapter.Admin) *httpadapter.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if admin.Resender == nil {
		admin.Resender = &mockResender{}
	}
	if admin.StartedAt.IsZero() {
		admin.StartedAt = time.Now()
	}
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, admin, logger)
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil, httpadapter.Admin{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReflectsPipelineState(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(nil, httpadapter.Admin{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(fmt.Errorf("no polling cycle has completed yet"), httpadapter.Admin{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil, httpadapter.Admin{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestAdminResend(t *testing.T) {
	t.Run("dispatches a known fixture", func(t *testing.T) {
		resender := &mockResender{}
		srv := newTestServer(nil, httpadapter.Admin{Resender: resender})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/resend/tornado-warning", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, []string{"tornado-warning"}, resender.names)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "dispatched", body["status"])
		assert.Equal(t, "tornado-warning", body["fixture"])
	})

	t.Run("unknown fixture is 404", func(t *testing.T) {
		resender := &mockResender{err: fmt.Errorf("%w %q", pipeline.ErrUnknownFixture, "bogus")}
		srv := newTestServer(nil, httpadapter.Admin{Resender: resender})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/resend/bogus", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("dispatch failure is 500", func(t *testing.T) {
		resender := &mockResender{err: fmt.Errorf("settings unavailable")}
		srv := newTestServer(nil, httpadapter.Admin{Resender: resender})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/resend/tornado-warning", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("GET is not routed", func(t *testing.T) {
		srv := newTestServer(nil, httpadapter.Admin{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/resend/tornado-warning", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestAdminStatus(t *testing.T) {
	weather := &mockWeather{count: 42}
	srv := newTestServer(nil, httpadapter.Admin{
		Stats:     weather,
		StartedAt: time.Now().Add(-90 * time.Minute),
	})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["active_alerts"])
	assert.Contains(t, body["uptime"], "1 hour, 30 minutes")
}

func TestAdminStatusUpstreamFailure(t *testing.T) {
	weather := &mockWeather{countErr: fmt.Errorf("status 503")}
	srv := newTestServer(nil, httpadapter.Admin{Stats: weather})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/status", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAdminForecast(t *testing.T) {
	weather := &mockWeather{
		gp: nws.GridPoint{TimeZone: "America/Chicago", RadarStation: "KTLX"},
		periods: []nws.ForecastPeriod{
			{Name: "Tonight", Temperature: 58, TemperatureUnit: "F", ShortForecast: "Partly Cloudy"},
		},
	}

	t.Run("returns the resolved forecast", func(t *testing.T) {
		srv := newTestServer(nil, httpadapter.Admin{Forecaster: weather})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/forecast?lat=35.2226&lon=-97.4395", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Partly Cloudy")
		assert.Contains(t, rec.Body.String(), "KTLX")
	})

	t.Run("missing coordinates are 400", func(t *testing.T) {
		srv := newTestServer(nil, httpadapter.Admin{Forecaster: weather})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/forecast?lat=35.2", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminGlossary(t *testing.T) {
	weather := &mockWeather{terms: []nws.GlossaryTerm{
		{Term: "Mesoscale", Definition: "On the order of tens to hundreds of kilometers."},
	}}
	srv := newTestServer(nil, httpadapter.Admin{Stats: weather})

	t.Run("case-insensitive lookup", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/glossary/mesoscale", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "tens to hundreds")
	})

	t.Run("unknown term is 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/glossary/derecho", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminDeleteGuild(t *testing.T) {
	settings := &mockSettings{}
	srv := newTestServer(nil, httpadapter.Admin{Settings: settings})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/guilds/guild-1", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"guild-1"}, settings.deleted)
}
