package domain

// GenericEmoji is rendered for any event without a catalog entry.
const GenericEmoji = ":warning:"

// defaultEmoji maps event types to their bulletin emoji shortcodes. Events
// absent here fall back to GenericEmoji. Special-emergency variants carry
// their own entries keyed by SpecialKind in Emoji.
var defaultEmoji = map[string]string{
	"Administrative Message":       ":newspaper:",
	"Avalanche Advisory":           ":mountain_snow:",
	"Avalanche Watch":              ":mountain_snow:",
	"Avalanche Warning":            ":mountain_snow:",
	"Beach Hazards Statement":      ":beach:",
	"Blue Alert":                   ":blue_square:",
	"Blizzard Warning":             ":bangbang: :cloud_snow:",
	"Blizzard Watch":               ":exclamation: :cloud_snow:",
	"Child Abduction Emergency":    ":orange_square:",
	"Dense Fog Advisory":           ":fog:",
	"Dense Smoke Advisory":         ":fog:",
	"Excessive Heat Warning":       ":hot_face:",
	"Excessive Heat Watch":         ":sunny:",
	"Extreme Wind Warning":         ":bangbang: :wind_face:",
	"Fire Warning":                 ":fire:",
	"Fire Weather Watch":           ":triangular_flag_on_post:",
	"Flash Flood Warning":          ":cloud_rain:",
	"Heat Advisory":                ":sunny:",
	"High Wind Warning":            ":exclamation: :wind_face:",
	"High Wind Watch":              ":wind_face:",
	"Tropical Cyclone Statement":   ":cyclone:",
	"Hurricane Warning":            ":cyclone:",
	"Hurricane Watch":              ":cyclone:",
	"Hydrologic Outlook":           ":bar_chart:",
	"Ice Storm Warning":            ":exclamation: :ice_cube:",
	"Lake Wind Advisory":           ":wind_face:",
	"Law Enforcement Warning":      ":rotating_light:",
	"Radiological Hazard Warning":  ":biohazard:",
	"Red Flag Warning":             ":triangular_flag_on_post:",
	"Severe Thunderstorm Warning":  ":cloud_lightning:",
	"Severe Thunderstorm Watch":    ":cloud:",
	"Short Term Forecast":          ":bar_chart:",
	"Snow Squall Warning":          ":wind_face: :cloud_snow:",
	"Tornado Warning":              ":cloud_tornado:",
	"Tropical Storm Warning":       ":cyclone:",
	"Tropical Storm Watch":         ":cyclone:",
	"Tsunami Advisory":             ":exclamation: :ocean:",
	"Tsunami Watch":                ":ocean:",
	"Tsunami Warning":              ":bangbang: :ocean:",
	"Typhoon Local Statement":      ":cyclone:",
	"Typhoon Warning":              ":cyclone:",
	"Typhoon Watch":                ":cyclone:",
	"Volcano Warning":              ":volcano:",
	"Wind Advisory":                ":wind_face:",
	"Wind Chill Advisory":          ":cold_face:",
	"Wind Chill Watch":             ":exclamation: :cold_face:",
	"Wind Chill Warning":           ":bangbang: :cold_face:",
	"Cold Weather Advisory":        ":cold_face:",
	"Extreme Cold Watch":           ":exclamation: :cold_face:",
	"Extreme Cold Warning":         ":bangbang: :cold_face:",
	"Winter Storm Warning":         ":cloud_snow:",
	"Winter Storm Watch":           ":exclamation: :snowflake:",
	"Winter Weather Advisory":      ":snowflake:",
	"High Surf Advisory":           ":surfer:",
	"High Surf Warning":            ":exclamation: :surfer:",
}

var specialEmoji = map[SpecialKind]string{
	TornadoEmergency:     ":bangbang: :cloud_tornado:",
	FlashFloodEmergency:  ":bangbang: :cloud_rain:",
	TsunamiWarningActive: ":bangbang: :ocean:",
	PDSTornado:           ":exclamation: :cloud_tornado:",
	PDSThunderstorm:      ":exclamation: :cloud_lightning:",
}

// Emoji returns the bulletin emoji for a classified record: the
// special-emergency emoji when applicable, the catalog default otherwise, and
// GenericEmoji for anything unrecognized.
func Emoji(cat AlertCategory) string {
	if cat.Special != "" {
		return specialEmoji[cat.Special]
	}
	if e, ok := defaultEmoji[cat.Event]; ok {
		return e
	}
	return GenericEmoji
}
