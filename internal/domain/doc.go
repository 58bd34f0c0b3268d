// Package domain models National Weather Service (NWS) watch/warning/advisory
// products and the classification vocabulary built on top of them.
//
// # Data Source
//
// Alerts originate from the NWS API (https://api.weather.gov) in CAP-derived
// JSON-LD form: a collection under a "@graph" key whose entries carry id,
// areaDesc, sent/onset/ends/expires timestamps, messageType, event, senderName,
// headline, description, instruction, status, and an open "parameters" mapping
// of string to list-of-values. The feed is refetched on a fixed cadence and is
// not assumed to be clean: duplicate ids, missing fields, and inconsistent
// status flags all occur in practice.
//
// # NWS Conventions
//
// Event types:
//
//	Free-text strings such as "Tornado Warning" or "Small Craft Advisory For
//	Rough Bar". The closed catalog of known types lives in [KnownEvent]; not
//	all observed values are official, and upstream can emit strings outside
//	the catalog, which are carried through as-is rather than dropped.
//
// Sender identification:
//
//	senderName identifies the issuing Weather Forecast Office (WFO), e.g.
//	"NWS Fort Worth TX". Non-NWS senders appear legitimately for civil
//	authority relays when parameters carry EAS-ORG=CIV; anything else from an
//	unknown sender is retained but flagged via [AlertRecord.UnknownIssuer].
//
// VTEC:
//
//	The Valid Time Event Code is embedded as parameters.VTEC[0], e.g.
//	"/O.CON.KFWD.TO.W.0015.000000T0000Z-240426T2130Z/". The second dot-field
//	is the product action code (NEW, CON, CAN, ...) which maps to a display
//	verb via [ActionVerb]. See [ParseVTEC].
//
// Damage threat parameters:
//
//	tornadoDamageThreat, thunderstormDamageThreat, and flashFloodDamageThreat
//	escalate base warnings into tornado/flash-flood emergencies and PDS
//	(Particularly Dangerous Situation) variants. See [Classify].
//
// Test detection:
//
//	A record is a test when status != Actual or when the non-standard
//	parameters.isTest flag is true. Both checks live in [IsTest]; older feed
//	revisions only carried status, newer ones also set isTest, and the
//	combined rule is authoritative here.
package domain
