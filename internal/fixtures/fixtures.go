// Package fixtures holds the pre-seeded catalog of named test alerts for the
// manual resend path. An operator can force one of these through the full
// diff-classify-dispatch pipeline to verify channel wiring without waiting
// for live weather. Every fixture carries the vendor isTest flag, so rendered
// messages are always wrapped as drills.
package fixtures

import (
	"sort"
	"time"

	"github.com/couchcryptid/nws-alert-relay/internal/domain"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic("fixtures: bad timestamp: " + s)
	}
	return &t
}

var catalog = map[string]domain.AlertRecord{
	"tornado-warning": {
		ID:              "urn:oid:2.49.0.1.840.fixture.1",
		AreaDescription: "Cleveland, OK; McClain, OK",
		Sent:            ts("2024-06-01T19:30:00-05:00"),
		Ends:            ts("2024-06-01T20:00:00-05:00"),
		MessageType:     domain.MessageAlert,
		Event:           domain.EventTornadoWarning,
		SenderID:        "NWS Norman OK",
		Headline:        "Tornado Warning issued June 1 at 7:30PM CDT until June 1 at 8:00PM CDT by NWS Norman OK",
		Description:     "At 730 PM CDT, a severe thunderstorm capable of producing a tornado was located near Blanchard, moving northeast at 35 mph.",
		Instruction:     "TAKE COVER NOW! Move to a basement or an interior room on the lowest floor of a sturdy building.",
		Status:          domain.StatusActual,
		Parameters: domain.Parameters{
			domain.ParamIsTest:           {"true"},
			domain.ParamVTEC:             {"/O.NEW.KOUN.TO.W.0042.240602T0030Z-240602T0100Z/"},
			domain.ParamTornadoDetection: {"RADAR INDICATED"},
		},
	},
	"tornado-emergency": {
		ID:              "urn:oid:2.49.0.1.840.fixture.2",
		AreaDescription: "Moore, OK; Oklahoma City, OK",
		Sent:            ts("2024-06-01T19:45:00-05:00"),
		Ends:            ts("2024-06-01T20:15:00-05:00"),
		MessageType:     domain.MessageUpdate,
		Event:           domain.EventTornadoWarning,
		SenderID:        "NWS Norman OK",
		Headline:        "Tornado Warning issued June 1 at 7:45PM CDT until June 1 at 8:15PM CDT by NWS Norman OK",
		Description:     "A confirmed large and extremely dangerous tornado was located over Moore, moving northeast at 30 mph.",
		Instruction:     "To protect your life, TAKE COVER NOW!",
		Status:          domain.StatusActual,
		Parameters: domain.Parameters{
			domain.ParamIsTest:              {"true"},
			domain.ParamVTEC:                {"/O.CON.KOUN.TO.W.0042.000000T0000Z-240602T0115Z/"},
			domain.ParamTornadoDetection:    {"OBSERVED"},
			domain.ParamTornadoDamageThreat: {"CATASTROPHIC"},
		},
	},
	"pds-tornado": {
		ID:              "urn:oid:2.49.0.1.840.fixture.3",
		AreaDescription: "Norman, OK",
		Sent:            ts("2024-06-01T19:40:00-05:00"),
		Ends:            ts("2024-06-01T20:10:00-05:00"),
		MessageType:     domain.MessageAlert,
		Event:           domain.EventTornadoWarning,
		SenderID:        "NWS Norman OK",
		Description:     "A confirmed tornado was located near Norman. This is a PARTICULARLY DANGEROUS SITUATION.",
		Status:          domain.StatusActual,
		Parameters: domain.Parameters{
			domain.ParamIsTest:              {"true"},
			domain.ParamTornadoDetection:    {"OBSERVED"},
			domain.ParamTornadoDamageThreat: {"CONSIDERABLE"},
		},
	},
	"flash-flood-emergency": {
		ID:              "urn:oid:2.49.0.1.840.fixture.4",
		AreaDescription: "Harris, TX",
		Sent:            ts("2024-06-01T21:00:00-05:00"),
		Ends:            ts("2024-06-02T03:00:00-05:00"),
		MessageType:     domain.MessageAlert,
		Event:           domain.EventFlashFloodWarning,
		SenderID:        "NWS Houston/Galveston TX",
		Description:     "This is a FLASH FLOOD EMERGENCY for the Houston metro. Widespread life-threatening flash flooding is ongoing.",
		Instruction:     "Move to higher ground now!",
		Status:          domain.StatusActual,
		Parameters: domain.Parameters{
			domain.ParamIsTest:                 {"true"},
			domain.ParamFlashFloodDetection:    {"OBSERVED"},
			domain.ParamFlashFloodDamageThreat: {"CATASTROPHIC"},
		},
	},
	"pds-thunderstorm": {
		ID:              "urn:oid:2.49.0.1.840.fixture.5",
		AreaDescription: "Polk, IA",
		Sent:            ts("2024-06-01T17:00:00-05:00"),
		Ends:            ts("2024-06-01T18:00:00-05:00"),
		MessageType:     domain.MessageAlert,
		Event:           domain.EventSevereThunderstormWarning,
		SenderID:        "NWS Des Moines IA",
		Description:     "Destructive 90 mph winds and baseball size hail with a severe thunderstorm near Des Moines.",
		Status:          domain.StatusActual,
		Parameters: domain.Parameters{
			domain.ParamIsTest:             {"true"},
			domain.ParamThunderstormThreat: {"DESTRUCTIVE"},
			domain.ParamMaxWindGust:        {"90 MPH"},
			domain.ParamMaxHailSize:        {"2.75"},
		},
	},
	"extreme-wind-warning": {
		ID:              "urn:oid:2.49.0.1.840.fixture.6",
		AreaDescription: "Lee, FL",
		Sent:            ts("2024-09-28T14:00:00-04:00"),
		Ends:            ts("2024-09-28T16:00:00-04:00"),
		MessageType:     domain.MessageAlert,
		Event:           domain.EventExtremeWindWarning,
		SenderID:        "NWS Tampa Bay Ruskin FL",
		Description:     "Extreme winds in excess of 115 mph are imminent near the eyewall.",
		Instruction:     "Treat this warning like a tornado warning and shelter in an interior room now.",
		Status:          domain.StatusActual,
		Parameters: domain.Parameters{
			domain.ParamIsTest:      {"true"},
			domain.ParamMaxWindGust: {"115 MPH"},
		},
	},
	"tsunami-warning": {
		ID:              "urn:oid:2.49.0.1.840.fixture.7",
		AreaDescription: "Coastal Del Norte, CA",
		Sent:            ts("2024-06-01T10:00:00-07:00"),
		MessageType:     domain.MessageAlert,
		Event:           domain.EventTsunamiWarning,
		SenderID:        "NWS National Tsunami Warning Center",
		Description:     "A tsunami warning is in effect for the coast of northern California.",
		Instruction:     "Move immediately to higher ground or inland.",
		Status:          domain.StatusActual,
		Parameters: domain.Parameters{
			domain.ParamIsTest: {"true"},
		},
	},
	"test-message": {
		ID:              "urn:oid:2.49.0.1.840.fixture.8",
		AreaDescription: "Statewide",
		Sent:            ts("2024-06-01T12:00:00-05:00"),
		MessageType:     domain.MessageAlert,
		Event:           domain.EventTestMessage,
		SenderID:        "NWS Norman OK",
		Description:     "Monthly test of the alert relay. No action required.",
		Status:          domain.StatusTest,
		Parameters: domain.Parameters{
			domain.ParamIsTest: {"true"},
		},
	},
}

// Get returns the fixture registered under name.
func Get(name string) (domain.AlertRecord, bool) {
	rec, ok := catalog[name]
	return rec, ok
}

// Names lists the catalog, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
