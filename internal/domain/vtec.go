package domain

import (
	"fmt"
	"strings"
)

// Display verbs for alert bulletins, derived from the VTEC action code.
const (
	VerbIssues  = "issues"
	VerbUpdates = "updates"
	VerbCancels = "cancels"
	VerbExpires = "expires"
)

// VTEC is the parsed Valid Time Event Code of an alert.
type VTEC struct {
	Class        string // product class, e.g. "O" (operational), "T" (test)
	Action       string // NEW, CON, CAN, EXT, ...
	OfficeID     string // 4-letter office, e.g. "KFWD"
	Phenomenon   string // e.g. "TO"
	Significance string // e.g. "W"
	EventNumber  string
}

var actionVerbs = map[string]string{
	"NEW": VerbIssues,
	"UPG": "upgrades",
	"CON": "continues",
	"CAN": VerbCancels,
	"EXA": "expands area of",
	"EXB": "extends time and expands area of",
	"EXT": "extends time of",
	"EXP": VerbExpires,
	"COR": "corrects",
}

// ParseVTEC parses a raw VTEC string such as
// "/O.CON.KFWD.TO.W.0015.000000T0000Z-240426T2130Z/". Delimiting slashes are
// stripped before splitting on dots.
func ParseVTEC(raw string) (VTEC, error) {
	trimmed := strings.Trim(strings.TrimSpace(raw), "/")
	fields := strings.Split(trimmed, ".")
	if len(fields) < 6 {
		return VTEC{}, fmt.Errorf("parse vtec %q: want at least 6 fields, got %d", raw, len(fields))
	}
	return VTEC{
		Class:        fields[0],
		Action:       fields[1],
		OfficeID:     fields[2],
		Phenomenon:   fields[3],
		Significance: fields[4],
		EventNumber:  fields[5],
	}, nil
}

// Verb maps the VTEC action to its display verb; unknown actions read as
// "updates", matching how upstream treats unrecognized codes.
func (v VTEC) Verb() string {
	if verb, ok := actionVerbs[v.Action]; ok {
		return verb
	}
	return VerbUpdates
}

// ActionVerb derives the display verb for a record from parameters.VTEC[0],
// falling back to the CAP messageType when the VTEC is absent or unparseable.
func ActionVerb(rec AlertRecord) string {
	if raw, ok := rec.Parameters.FirstString(ParamVTEC); ok {
		if v, err := ParseVTEC(raw); err == nil {
			return v.Verb()
		}
	}
	switch rec.MessageType {
	case MessageAlert:
		return VerbIssues
	case MessageCancel:
		return VerbCancels
	default:
		return VerbUpdates
	}
}

// NotInEffect reports whether a verb describes an alert that is no longer
// active, which suppresses the end-time window and severity emoji in
// bulletins.
func NotInEffect(verb string) bool {
	switch verb {
	case VerbCancels, "upgrades", VerbExpires:
		return true
	default:
		return false
	}
}
