package domain

// SpecialKind labels the escalated sub-classification of a warning.
type SpecialKind string

const (
	TornadoEmergency     SpecialKind = "tornado-emergency"
	FlashFloodEmergency  SpecialKind = "flash-flood-emergency"
	TsunamiWarningActive SpecialKind = "tsunami-warning"
	PDSTornado           SpecialKind = "pds-tornado"
	PDSThunderstorm      SpecialKind = "pds-thunderstorm"
)

// Headline returns the escalated display headline for the sub-kind.
func (k SpecialKind) Headline() string {
	switch k {
	case TornadoEmergency:
		return "**TORNADO EMERGENCY**"
	case FlashFloodEmergency:
		return "**FLASH FLOOD EMERGENCY**"
	case TsunamiWarningActive:
		return "**TSUNAMI WARNING**"
	case PDSTornado:
		return "**Tornado Warning (PDS)**"
	case PDSThunderstorm:
		return "**Severe Thunderstorm Warning (PDS)**"
	default:
		return ""
	}
}

// AlertCategory is the derived classification of a record. It is never
// persisted. Special is empty for standard alerts; Event always carries the
// record's event type, recognized or not.
type AlertCategory struct {
	Event   string
	Special SpecialKind
}

// IsSpecialEmergency reports whether the category carries an escalated
// sub-kind.
func (c AlertCategory) IsSpecialEmergency() bool {
	return c.Special != ""
}

// Classify derives the category of a record from its event type and damage
// threat parameters. It is a pure function of the record.
func Classify(rec AlertRecord) AlertCategory {
	cat := AlertCategory{Event: rec.Event}

	switch rec.Event {
	case EventTornadoWarning:
		switch threat, _ := rec.Parameters.FirstString(ParamTornadoDamageThreat); threat {
		case "CATASTROPHIC":
			cat.Special = TornadoEmergency
		case "CONSIDERABLE":
			cat.Special = PDSTornado
		}
	case EventFlashFloodWarning:
		if threat, _ := rec.Parameters.FirstString(ParamFlashFloodDamageThreat); threat == "CATASTROPHIC" {
			cat.Special = FlashFloodEmergency
		}
	case EventSevereThunderstormWarning:
		if threat, _ := rec.Parameters.FirstString(ParamThunderstormThreat); threat == "DESTRUCTIVE" {
			cat.Special = PDSThunderstorm
		}
	case EventTsunamiWarning:
		if ActionVerb(rec) != VerbCancels {
			cat.Special = TsunamiWarningActive
		}
	}

	return cat
}

// IsEmergency reports whether a record qualifies for the priority broadcast
// path. This is deliberately a separate check from the sub-kind label:
// Extreme Wind Warnings and active Tsunami Warnings escalate regardless of
// their specific classification.
func IsEmergency(rec AlertRecord) bool {
	if Classify(rec).IsSpecialEmergency() {
		return true
	}
	switch rec.Event {
	case EventExtremeWindWarning:
		return true
	case EventTsunamiWarning:
		return ActionVerb(rec) != VerbCancels
	default:
		return false
	}
}

// IsTest reports whether a record is a test/drill product: the vendor isTest
// flag or any non-Actual CAP status.
func IsTest(rec AlertRecord) bool {
	return rec.Parameters.FirstBool(ParamIsTest) || rec.Status != StatusActual
}
