package dispatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/nws-alert-relay/internal/domain"
)

// MaxInlineLen is the delivery platform's inline message limit. Text beyond
// it is never truncated; the full content moves into an attachment and a
// short pointer message is sent instead.
const MaxInlineLen = 2000

const testMarker = "THIS IS ONLY A TEST"

// Summary renders the one-line inline notification for a record.
func Summary(rec domain.AlertRecord) string {
	cat := domain.Classify(rec)
	verb := domain.ActionVerb(rec)

	var b strings.Builder
	// A cancelled, upgraded, or expired product gets neither a severity
	// emoji nor an end-time window.
	if !domain.NotInEffect(verb) {
		b.WriteString(domain.Emoji(cat))
		b.WriteString(" ")
	}
	b.WriteString(rec.SenderID)
	b.WriteString(" ")
	b.WriteString(verb)
	b.WriteString(" ")
	b.WriteString(rec.Event)

	if cat.IsSpecialEmergency() {
		b.WriteString(" ")
		b.WriteString(cat.Special.Headline())
	}

	if mags := magnitudes(rec); mags != "" {
		b.WriteString(" (")
		b.WriteString(mags)
		b.WriteString(")")
	}

	if rec.AreaDescription != "" {
		b.WriteString(" for ")
		b.WriteString(rec.AreaDescription)
	}

	if end := endTime(rec); end != nil && !domain.NotInEffect(verb) && !domain.HasNoEndTime(rec.Event) {
		b.WriteString(" until ")
		b.WriteString(formatTime(*end))
	}

	b.WriteString(".")
	return b.String()
}

// magnitudes collects the detection and damage-threat parameters present on
// the record into a comma-joined fragment.
func magnitudes(rec domain.AlertRecord) string {
	var parts []string

	if v, ok := rec.Parameters.FirstString(domain.ParamTornadoDetection); ok {
		parts = append(parts, "tornado: "+v)
	}
	if v, ok := rec.Parameters.FirstString(domain.ParamTornadoDamageThreat); ok {
		parts = append(parts, "damage threat: "+v)
	}
	if v, ok := rec.Parameters.FirstString(domain.ParamThunderstormThreat); ok {
		parts = append(parts, "damage threat: "+v)
	}
	if v, ok := rec.Parameters.FirstString(domain.ParamFlashFloodDetection); ok {
		parts = append(parts, "flash flood: "+v)
	}
	if v, ok := rec.Parameters.FirstString(domain.ParamFlashFloodDamageThreat); ok {
		parts = append(parts, "flood damage threat: "+v)
	}
	if v, ok := rec.Parameters.FirstString(domain.ParamMaxWindGust); ok {
		parts = append(parts, "wind gusts up to "+v)
	}
	if v, ok := rec.Parameters.FirstString(domain.ParamMaxHailSize); ok {
		parts = append(parts, "hail up to "+v+"\"")
	}

	return strings.Join(parts, ", ")
}

// endTime prefers the product's ends timestamp, falling back to expires.
func endTime(rec domain.AlertRecord) *time.Time {
	if rec.Ends != nil {
		return rec.Ends
	}
	return rec.Expires
}

func formatTime(t time.Time) string {
	return t.Format("Jan 2, 3:04 PM MST")
}

// LongText assembles the long-form product text: headline, description,
// instruction. Empty when the record carries none of them.
func LongText(rec domain.AlertRecord) string {
	var parts []string
	for _, s := range []string{rec.Headline, rec.Description, rec.Instruction} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// attachmentName derives a filename from the record's event type.
func attachmentName(rec domain.AlertRecord) string {
	name := strings.ToLower(rec.Event)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, name)
	return name + ".txt"
}

// wrapTest brackets a drill product's message with test markers.
func wrapTest(text string) string {
	return testMarker + "\n\n" + text + "\n\n" + testMarker
}

// RenderRecord produces the message and optional attachment for one record.
// When the inline text would exceed MaxInlineLen, a short pointer message is
// sent and the full summary joins the long-form text in the attachment.
func RenderRecord(rec domain.AlertRecord) (string, *Attachment) {
	text := Summary(rec)
	if domain.IsTest(rec) {
		text = wrapTest(text)
	}

	var att *Attachment
	if long := LongText(rec); long != "" {
		att = &Attachment{Name: attachmentName(rec), Body: []byte(long)}
	}

	if len(text) > MaxInlineLen {
		full := text
		if att != nil {
			full = text + "\n\n" + string(att.Body)
		}
		pointer := fmt.Sprintf("New alert from %s; full text attached.", rec.SenderID)
		if domain.IsTest(rec) {
			pointer = wrapTest(pointer)
		}
		return pointer, &Attachment{Name: attachmentName(rec), Body: []byte(full)}
	}

	return text, att
}

// DigestBody renders the digest document: one summary line per record.
func DigestBody(records []domain.AlertRecord) []byte {
	var b strings.Builder
	for _, rec := range records {
		b.WriteString(Summary(rec))
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// emergencyBoilerplate is the fixed call-to-action text per escalation kind.
func emergencyBoilerplate(rec domain.AlertRecord) string {
	cat := domain.Classify(rec)
	switch cat.Special {
	case domain.TornadoEmergency:
		return "A violent and potentially deadly tornado is on the ground. Seek shelter in a basement or an interior room on the lowest floor of a sturdy building NOW."
	case domain.PDSTornado:
		return "This is a PARTICULARLY DANGEROUS SITUATION. A strong tornado capable of considerable damage is likely. Take cover immediately."
	case domain.FlashFloodEmergency:
		return "This is an extremely dangerous and life-threatening situation. Do not attempt to travel unless you are fleeing an area subject to flooding or under an evacuation order."
	case domain.PDSThunderstorm:
		return "This is a PARTICULARLY DANGEROUS SITUATION. Destructive winds and large hail are expected. Treat this storm like a tornado and shelter in an interior room."
	case domain.TsunamiWarningActive:
		return "A tsunami capable of widespread inundation is expected or occurring. Move immediately to higher ground or inland."
	}
	if rec.Event == domain.EventExtremeWindWarning {
		return "Extreme winds in excess of 100 mph are imminent. Move to an interior room or shelter NOW. Flying debris is deadly to anyone caught outside."
	}
	return ""
}

// emergencyHeadline labels the broadcast. Special sub-kinds carry their own
// headline; other qualifying events fall back to the event name.
func emergencyHeadline(rec domain.AlertRecord) string {
	if cat := domain.Classify(rec); cat.IsSpecialEmergency() {
		return cat.Special.Headline()
	}
	return "**" + strings.ToUpper(rec.Event) + "**"
}

// RenderEmergency produces the priority broadcast message for a qualifying
// record. Test products are prefixed as drills instead of automated messages.
func RenderEmergency(rec domain.AlertRecord) string {
	prefix := "(automated message)"
	if domain.IsTest(rec) {
		prefix = "THIS IS A TEST"
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(" ")
	b.WriteString(emergencyHeadline(rec))
	if rec.AreaDescription != "" {
		b.WriteString(" for ")
		b.WriteString(rec.AreaDescription)
	}
	b.WriteString("!")

	if bp := emergencyBoilerplate(rec); bp != "" {
		b.WriteString("\n")
		b.WriteString(bp)
	}

	text := b.String()
	if domain.IsTest(rec) {
		text = wrapTest(text)
	}
	return text
}
