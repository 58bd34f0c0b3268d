package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/nws-alert-relay/internal/domain"
	"github.com/couchcryptid/nws-alert-relay/internal/observability"
)

type sentMessage struct {
	destination string
	text        string
	att         *Attachment
}

type fakeSender struct {
	sent []sentMessage
	fail map[int]error // call index -> error
}

func (f *fakeSender) Send(_ context.Context, destination, text string, att *Attachment) error {
	call := len(f.sent)
	f.sent = append(f.sent, sentMessage{destination: destination, text: text, att: att})
	if err, ok := f.fail[call]; ok {
		return err
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func record(id, event string) domain.AlertRecord {
	return domain.AlertRecord{
		ID:              id,
		Event:           event,
		SenderID:        "NWS Norman OK",
		AreaDescription: "Cleveland, OK",
		MessageType:     domain.MessageAlert,
		Status:          domain.StatusActual,
	}
}

func records(n int) []domain.AlertRecord {
	out := make([]domain.AlertRecord, n)
	for i := range out {
		out[i] = record(fmt.Sprintf("urn:oid:%d", i), domain.EventTornadoWarning)
	}
	return out
}

func TestDispatchStandard_MonotonicCounts(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		wantSends int
		wantKind  string
	}{
		{name: "zero records send nothing", count: 0, wantSends: 0},
		{name: "one record one message", count: 1, wantSends: 1, wantKind: "record"},
		{name: "five records five messages", count: 5, wantSends: 5, wantKind: "record"},
		{name: "six records one digest", count: 6, wantSends: 1, wantKind: "digest"},
		{name: "storm collapses to one digest", count: 40, wantSends: 1, wantKind: "digest"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender := &fakeSender{}
			b := NewBatcher(sender, testLogger(), observability.NewMetricsForTesting())

			err := b.DispatchStandard(context.Background(), "chan-1", records(tc.count))
			require.NoError(t, err)
			assert.Len(t, sender.sent, tc.wantSends)

			if tc.wantKind == "digest" {
				assert.Equal(t, fmt.Sprintf("%d alerts were issued or updated.", tc.count), sender.sent[0].text)
				require.NotNil(t, sender.sent[0].att)
				assert.Equal(t, tc.count, strings.Count(string(sender.sent[0].att.Body), "\n"))
			}
		})
	}
}

func TestDispatchStandard_DeliveryErrorContinues(t *testing.T) {
	sender := &fakeSender{fail: map[int]error{0: errors.New("rate limited")}}
	b := NewBatcher(sender, testLogger(), observability.NewMetricsForTesting())

	err := b.DispatchStandard(context.Background(), "chan-1", records(3))

	var derr *DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "chan-1", derr.Destination)
	// The failed first record did not stop the other two.
	assert.Len(t, sender.sent, 3)
}

func TestDispatchBaseline(t *testing.T) {
	sender := &fakeSender{}
	b := NewBatcher(sender, testLogger(), observability.NewMetricsForTesting())

	recs := records(2)
	recs = append(recs, record("urn:oid:test", domain.EventTestMessage))
	snap := domain.NewSnapshot(recs)

	require.NoError(t, b.DispatchBaseline(context.Background(), "chan-1", snap))

	require.Len(t, sender.sent, 1)
	// The baseline digest counts test records too.
	assert.Contains(t, sender.sent[0].text, "3 alert(s)")
	require.NotNil(t, sender.sent[0].att)
}

func TestDispatchEmergency(t *testing.T) {
	sender := &fakeSender{}
	b := NewBatcher(sender, testLogger(), observability.NewMetricsForTesting())

	rec := record("urn:oid:1", domain.EventTornadoWarning)
	rec.Parameters = domain.Parameters{domain.ParamTornadoDamageThreat: {"CATASTROPHIC"}}
	rec.Description = "A confirmed large and destructive tornado was observed."

	require.NoError(t, b.DispatchEmergency(context.Background(), "sirens", rec))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "sirens", msg.destination)
	assert.Contains(t, msg.text, "(automated message)")
	assert.Contains(t, msg.text, "**TORNADO EMERGENCY**")
	assert.Contains(t, msg.text, "Cleveland, OK")
	require.NotNil(t, msg.att)
	assert.Contains(t, string(msg.att.Body), "destructive tornado")
}

func TestTee_MirrorFailureDoesNotSurface(t *testing.T) {
	primary := &fakeSender{}
	mirror := &fakeSender{fail: map[int]error{0: errors.New("broker down")}}
	tee := NewTee(testLogger(), primary, mirror)

	err := tee.Send(context.Background(), "chan-1", "hello", nil)
	require.NoError(t, err)
	assert.Len(t, primary.sent, 1)
	assert.Len(t, mirror.sent, 1)
}

func TestTee_PrimaryFailureSurfaces(t *testing.T) {
	primary := &fakeSender{fail: map[int]error{0: errors.New("http 500")}}
	mirror := &fakeSender{}
	tee := NewTee(testLogger(), primary, mirror)

	err := tee.Send(context.Background(), "chan-1", "hello", nil)
	require.Error(t, err)
	// Mirrors still receive the message.
	assert.Len(t, mirror.sent, 1)
}

func TestSummary(t *testing.T) {
	ends := time.Date(2024, 6, 1, 20, 0, 0, 0, time.FixedZone("CDT", -5*3600))

	rec := record("urn:oid:1", domain.EventTornadoWarning)
	rec.Ends = &ends
	rec.Parameters = domain.Parameters{
		domain.ParamVTEC:             {"/O.NEW.KOUN.TO.W.0042.000000T0000Z-000000T0000Z/"},
		domain.ParamTornadoDetection: {"OBSERVED"},
		domain.ParamMaxHailSize:      {"1.75"},
	}

	got := Summary(rec)
	assert.Contains(t, got, "NWS Norman OK issues Tornado Warning")
	assert.Contains(t, got, "tornado: OBSERVED")
	assert.Contains(t, got, "hail up to 1.75\"")
	assert.Contains(t, got, "for Cleveland, OK")
	assert.Contains(t, got, "until Jun 1, 8:00 PM CDT")
}

func TestSummary_CancelHasNoWindow(t *testing.T) {
	ends := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
	rec := record("urn:oid:1", domain.EventTornadoWarning)
	rec.MessageType = domain.MessageCancel
	rec.Ends = &ends

	got := Summary(rec)
	assert.Contains(t, got, "cancels")
	assert.NotContains(t, got, "until")
}

func TestSummary_NotInEffectHasNoEmoji(t *testing.T) {
	t.Run("cancellation", func(t *testing.T) {
		rec := record("urn:oid:1", domain.EventTornadoWarning)
		rec.MessageType = domain.MessageCancel

		got := Summary(rec)
		assert.True(t, strings.HasPrefix(got, "NWS Norman OK cancels"), got)
		assert.NotContains(t, got, ":")
	})

	t.Run("expiration via VTEC", func(t *testing.T) {
		rec := record("urn:oid:1", domain.EventTornadoWarning)
		rec.Parameters = domain.Parameters{
			domain.ParamVTEC: {"/O.EXP.KOUN.TO.W.0042.000000T0000Z-000000T0000Z/"},
		}

		got := Summary(rec)
		assert.True(t, strings.HasPrefix(got, "NWS Norman OK expires"), got)
	})

	t.Run("active product keeps its emoji", func(t *testing.T) {
		got := Summary(record("urn:oid:1", domain.EventTornadoWarning))
		assert.False(t, strings.HasPrefix(got, "NWS Norman OK"), got)
	})
}

func TestRenderRecord(t *testing.T) {
	t.Run("long text becomes an attachment", func(t *testing.T) {
		rec := record("urn:oid:1", domain.EventTornadoWarning)
		rec.Headline = "Tornado Warning issued June 1"
		rec.Description = "At 700 PM CDT, a severe thunderstorm capable of producing a tornado was located."
		rec.Instruction = "TAKE COVER NOW!"

		text, att := RenderRecord(rec)
		assert.LessOrEqual(t, len(text), MaxInlineLen)
		require.NotNil(t, att)
		assert.Equal(t, "tornado-warning.txt", att.Name)
		body := string(att.Body)
		assert.Contains(t, body, "Tornado Warning issued June 1")
		assert.Contains(t, body, "TAKE COVER NOW!")
	})

	t.Run("oversized summary becomes a pointer plus attachment", func(t *testing.T) {
		rec := record("urn:oid:1", domain.EventTornadoWarning)
		rec.AreaDescription = strings.Repeat("Very Long County Name; ", 200)

		text, att := RenderRecord(rec)
		assert.LessOrEqual(t, len(text), MaxInlineLen)
		assert.Contains(t, text, "full text attached")
		require.NotNil(t, att)
		// Nothing is truncated; the whole summary lives in the attachment.
		assert.Contains(t, string(att.Body), rec.AreaDescription)
	})

	t.Run("test records are wrapped with markers", func(t *testing.T) {
		rec := record("urn:oid:1", domain.EventTornadoWarning)
		rec.Status = domain.StatusExercise

		text, _ := RenderRecord(rec)
		assert.True(t, strings.HasPrefix(text, testMarker))
		assert.True(t, strings.HasSuffix(text, testMarker))
	})
}

func TestRenderEmergency_TestPrefix(t *testing.T) {
	rec := record("urn:oid:1", domain.EventExtremeWindWarning)
	rec.Parameters = domain.Parameters{domain.ParamIsTest: {true}}

	got := RenderEmergency(rec)
	assert.Contains(t, got, "THIS IS A TEST")
	assert.Contains(t, got, "**EXTREME WIND WARNING**")
	assert.NotContains(t, got, "(automated message)")
}
