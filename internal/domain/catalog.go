package domain

import "sort"

// Event type strings referenced by name elsewhere in the relay. The full
// known-type catalog lives in knownEvents below; not all listed products are
// official NWS event codes, but all have been observed on the feed.
const (
	EventTornadoWarning            = "Tornado Warning"
	EventTornadoWatch              = "Tornado Watch"
	EventSevereThunderstormWarning = "Severe Thunderstorm Warning"
	EventSevereThunderstormWatch   = "Severe Thunderstorm Watch"
	EventFlashFloodWarning         = "Flash Flood Warning"
	EventFlashFloodWatch           = "Flash Flood Watch"
	EventExtremeWindWarning        = "Extreme Wind Warning"
	EventTsunamiWarning            = "Tsunami Warning"
	EventCivilDangerWarning        = "Civil Danger Warning"
	EventCivilEmergencyMessage     = "Civil Emergency Message"
	EventWinterStormWarning        = "Winter Storm Warning"
	EventIceStormWarning           = "Ice Storm Warning"
	EventBlizzardWarning           = "Blizzard Warning"
	EventLawEnforcementWarning     = "Law Enforcement Warning"
	EventLocalAreaEmergency        = "Local Area Emergency"
	EventTestMessage               = "Test Message"
)

var knownEvents = map[string]struct{}{
	"911 Telephone Outage":                      {},
	"Administrative Message":                    {},
	"Air Quality Alert":                         {},
	"Air Stagnation Advisory":                   {},
	"Arroyo And Small Stream Flood Advisory":    {},
	"Ashfall Advisory":                          {},
	"Ashfall Warning":                           {},
	"Avalanche Advisory":                        {},
	"Avalanche Warning":                         {},
	"Avalanche Watch":                           {},
	"Beach Hazards Statement":                   {},
	"Blue Alert":                                {},
	"Blizzard Warning":                          {},
	"Blizzard Watch":                            {},
	"Blowing Dust Advisory":                     {},
	"Blowing Dust Warning":                      {},
	"Brisk Wind Advisory":                       {},
	"Child Abduction Emergency":                 {},
	"Civil Danger Warning":                      {},
	"Civil Emergency Message":                   {},
	"Coastal Flood Advisory":                    {},
	"Coastal Flood Statement":                   {},
	"Coastal Flood Warning":                     {},
	"Coastal Flood Watch":                       {},
	"Cold Weather Advisory":                     {},
	"Dense Fog Advisory":                        {},
	"Dense Smoke Advisory":                      {},
	"Dust Advisory":                             {},
	"Dust Storm Warning":                        {},
	"Earthquake Warning":                        {},
	"Evacuation Immediate":                      {},
	"Excessive Heat Warning":                    {},
	"Excessive Heat Watch":                      {},
	"Extreme Cold Warning":                      {},
	"Extreme Cold Watch":                        {},
	"Extreme Fire Danger":                       {},
	"Extreme Wind Warning":                      {},
	"Fire Warning":                              {},
	"Fire Weather Watch":                        {},
	"Flash Flood Statement":                     {},
	"Flash Flood Warning":                       {},
	"Flash Flood Watch":                         {},
	"Flood Advisory":                            {},
	"Flood Statement":                           {},
	"Flood Warning":                             {},
	"Flood Watch":                               {},
	"Freeze Warning":                            {},
	"Freeze Watch":                              {},
	"Freezing Fog Advisory":                     {},
	"Freezing Rain Advisory":                    {},
	"Freezing Spray Advisory":                   {},
	"Frost Advisory":                            {},
	"Gale Warning":                              {},
	"Gale Watch":                                {},
	"Hard Freeze Warning":                       {},
	"Hard Freeze Watch":                         {},
	"Hazardous Materials Warning":               {},
	"Hazardous Seas Warning":                    {},
	"Hazardous Seas Watch":                      {},
	"Hazardous Weather Outlook":                 {},
	"Heat Advisory":                             {},
	"Heavy Freezing Spray Warning":              {},
	"Heavy Freezing Spray Watch":                {},
	"High Surf Advisory":                        {},
	"High Surf Warning":                         {},
	"High Wind Warning":                         {},
	"High Wind Watch":                           {},
	"Hurricane Force Wind Warning":              {},
	"Hurricane Force Wind Watch":                {},
	"Hurricane Warning":                         {},
	"Hurricane Watch":                           {},
	"Hydrologic Advisory":                       {},
	"Hydrologic Outlook":                        {},
	"Ice Storm Warning":                         {},
	"Lake Effect Snow Advisory":                 {},
	"Lake Effect Snow Warning":                  {},
	"Lake Effect Snow Watch":                    {},
	"Lake Wind Advisory":                        {},
	"Lakeshore Flood Advisory":                  {},
	"Lakeshore Flood Statement":                 {},
	"Lakeshore Flood Warning":                   {},
	"Lakeshore Flood Watch":                     {},
	"Law Enforcement Warning":                   {},
	"Local Area Emergency":                      {},
	"Low Water Advisory":                        {},
	"Marine Weather Statement":                  {},
	"Nuclear Power Plant Warning":               {},
	"Radiological Hazard Warning":               {},
	"Red Flag Warning":                          {},
	"Rip Current Statement":                     {},
	"Severe Thunderstorm Warning":               {},
	"Severe Thunderstorm Watch":                 {},
	"Severe Weather Statement":                  {},
	"Shelter In Place Warning":                  {},
	"Short Term Forecast":                       {},
	"Small Craft Advisory":                      {},
	"Small Craft Advisory For Hazardous Seas":   {},
	"Small Craft Advisory For Rough Bar":        {},
	"Small Craft Advisory For Winds":            {},
	"Small Stream Flood Advisory":               {},
	"Snow Squall Warning":                       {},
	"Special Marine Warning":                    {},
	"Special Weather Statement":                 {},
	"Storm Surge Warning":                       {},
	"Storm Surge Watch":                         {},
	"Storm Warning":                             {},
	"Storm Watch":                               {},
	"Test Message":                              {},
	"Tornado Warning":                           {},
	"Tornado Watch":                             {},
	"Tropical Cyclone Statement":                {},
	"Tropical Storm Warning":                    {},
	"Tropical Storm Watch":                      {},
	"Tsunami Advisory":                          {},
	"Tsunami Warning":                           {},
	"Tsunami Watch":                             {},
	"Typhoon Local Statement":                   {},
	"Typhoon Warning":                           {},
	"Typhoon Watch":                             {},
	"Urban And Small Stream Flood Advisory":     {},
	"Volcano Warning":                           {},
	"Wind Advisory":                             {},
	"Wind Chill Advisory":                       {},
	"Wind Chill Warning":                        {},
	"Wind Chill Watch":                          {},
	"Winter Storm Warning":                      {},
	"Winter Storm Watch":                        {},
	"Winter Weather Advisory":                   {},
}

// KnownEvent reports whether event is in the closed catalog of recognized
// alert types. Unrecognized values are relayed anyway; this only drives
// logging and emoji fallback.
func KnownEvent(event string) bool {
	_, ok := knownEvents[event]
	return ok
}

// RequiredEvents can never be excluded by subscriber configuration. The
// configuration layer rejects attempts; the filter itself does not bypass
// exclusions for them either way.
var RequiredEvents = map[string]struct{}{
	EventTornadoWarning:            {},
	EventSevereThunderstormWarning: {},
	EventFlashFloodWarning:         {},
	EventCivilDangerWarning:        {},
	EventCivilEmergencyMessage:     {},
	EventWinterStormWarning:        {},
	EventIceStormWarning:           {},
	EventBlizzardWarning:           {},
	EventLawEnforcementWarning:     {},
	EventLocalAreaEmergency:        {},
	EventExtremeWindWarning:        {},
}

// SevereWeatherEvents is the allowlist that "severe weather mode" reduces a
// subscriber to: the convective/flash-flood families plus RequiredEvents.
var SevereWeatherEvents = map[string]struct{}{
	EventTornadoWarning:            {},
	EventTornadoWatch:              {},
	EventSevereThunderstormWarning: {},
	EventSevereThunderstormWatch:   {},
	EventFlashFloodWarning:         {},
	EventFlashFloodWatch:           {},
	EventCivilDangerWarning:        {},
	EventCivilEmergencyMessage:     {},
	EventWinterStormWarning:        {},
	EventIceStormWarning:           {},
	EventBlizzardWarning:           {},
	EventLawEnforcementWarning:     {},
	EventLocalAreaEmergency:        {},
	EventExtremeWindWarning:        {},
}

// RequiredEvent reports whether event is in RequiredEvents.
func RequiredEvent(event string) bool {
	_, ok := RequiredEvents[event]
	return ok
}

// SevereWeatherEvent reports whether event survives severe weather mode.
func SevereWeatherEvent(event string) bool {
	_, ok := SevereWeatherEvents[event]
	return ok
}

// EventCatalog returns every known event type, sorted.
func EventCatalog() []string {
	events := make([]string, 0, len(knownEvents))
	for event := range knownEvents {
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}

// MarineEvent reports whether event is a marine product.
func MarineEvent(event string) bool {
	_, ok := marineEvents[event]
	return ok
}

var marineEvents = map[string]struct{}{
	"Brisk Wind Advisory":                     {},
	"Freezing Spray Advisory":                 {},
	"Gale Warning":                            {},
	"Gale Watch":                              {},
	"Hazardous Seas Warning":                  {},
	"Hazardous Seas Watch":                    {},
	"Heavy Freezing Spray Warning":            {},
	"Heavy Freezing Spray Watch":              {},
	"Hurricane Force Wind Warning":            {},
	"Hurricane Force Wind Watch":              {},
	"Marine Weather Statement":                {},
	"Small Craft Advisory":                    {},
	"Small Craft Advisory For Hazardous Seas": {},
	"Small Craft Advisory For Rough Bar":      {},
	"Small Craft Advisory For Winds":          {},
	"Special Marine Warning":                  {},
}

// noEndTimeEvents lists products whose bulletins never render an "until"
// time, either because the product is open-ended (tropical, hydrologic
// outlooks) or because an end time is operationally meaningless (civil
// emergencies).
var noEndTimeEvents = map[string]struct{}{
	"Tropical Storm Watch":         {},
	"Tropical Storm Warning":       {},
	"Storm Surge Watch":            {},
	"Storm Surge Warning":          {},
	"Hurricane Watch":              {},
	"Hurricane Warning":            {},
	"Tropical Cyclone Statement":   {},
	"Hazardous Weather Outlook":    {},
	"Hydrologic Outlook":           {},
	"Civil Emergency Message":      {},
	"Child Abduction Emergency":    {},
	"Civil Danger Warning":         {},
	"Law Enforcement Warning":      {},
	"Local Area Emergency":         {},
	"Evacuation Immediate":         {},
	"Hazardous Materials Warning":  {},
	"Nuclear Power Plant Warning":  {},
	"Radiological Hazard Warning":  {},
	"Shelter In Place Warning":     {},
	"Fire Warning":                 {},
	"911 Telephone Outage":         {},
	"Short Term Forecast":          {},
}

// HasNoEndTime reports whether bulletins for event omit the end-time window.
func HasNoEndTime(event string) bool {
	_, ok := noEndTimeEvents[event]
	return ok
}
