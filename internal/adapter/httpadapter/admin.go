package httpadapter

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/nws-alert-relay/internal/adapter/nws"
	"github.com/couchcryptid/nws-alert-relay/internal/observability"
)

// Forecaster resolves a coordinate to its forecast.
type Forecaster interface {
	Point(ctx context.Context, lat, lon float64) (nws.GridPoint, error)
	Forecast(ctx context.Context, gp nws.GridPoint) ([]nws.ForecastPeriod, error)
}

// AlertStats exposes the upstream feed's aggregate queries.
type AlertStats interface {
	ActiveAlertCount(ctx context.Context) (int, error)
	Glossary(ctx context.Context) ([]nws.GlossaryTerm, error)
}

// SettingsStore removes a subscriber's persisted configuration.
type SettingsStore interface {
	Delete(ctx context.Context, guildID string) error
}

// Admin bundles the dependencies of the operator endpoints. Nil fields
// disable their routes.
type Admin struct {
	Resender   Resender
	Forecaster Forecaster
	Stats      AlertStats
	Settings   SettingsStore
	StartedAt  time.Time
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.admin.Stats.ActiveAlertCount(r.Context())
	if err != nil {
		s.logger.Error("Active alert count fetch failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream count unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"uptime":        observability.FormatUptime(time.Since(s.admin.StartedAt)),
		"active_alerts": count,
	})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lon query parameters are required"})
		return
	}

	gp, err := s.admin.Forecaster.Point(r.Context(), lat, lon)
	if err != nil {
		s.logger.Error("Gridpoint resolution failed", "lat", lat, "lon", lon, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "gridpoint resolution failed"})
		return
	}

	periods, err := s.admin.Forecaster.Forecast(r.Context(), gp)
	if err != nil {
		s.logger.Error("Forecast fetch failed", "lat", lat, "lon", lon, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "forecast unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"time_zone":     gp.TimeZone,
		"radar_station": gp.RadarStation,
		"periods":       periods,
	})
}

func (s *Server) handleGlossary(w http.ResponseWriter, r *http.Request) {
	want := r.PathValue("term")

	terms, err := s.admin.Stats.Glossary(r.Context())
	if err != nil {
		s.logger.Error("Glossary fetch failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "glossary unavailable"})
		return
	}

	for _, t := range terms {
		if strings.EqualFold(t.Term, want) {
			writeJSON(w, http.StatusOK, map[string]string{"term": t.Term, "definition": t.Definition})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "term not found"})
}

// handleDeleteGuild removes a departed subscriber's settings so stale
// channels are never dispatched to again.
func (s *Server) handleDeleteGuild(w http.ResponseWriter, r *http.Request) {
	guildID := r.PathValue("guild")
	if err := s.admin.Settings.Delete(r.Context(), guildID); err != nil {
		s.logger.Error("Guild settings removal failed", "guild", guildID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "removal failed"})
		return
	}
	s.logger.Info("Guild settings removed", "guild", guildID)
	w.WriteHeader(http.StatusNoContent)
}
