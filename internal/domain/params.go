package domain

import "strconv"

// Parameter keys consumed by the relay. The parameters mapping is open-ended;
// everything else is carried through untouched.
const (
	ParamVTEC                   = "VTEC"
	ParamEASOrg                 = "EAS-ORG"
	ParamIsTest                 = "isTest"
	ParamTornadoDetection       = "tornadoDetection"
	ParamTornadoDamageThreat    = "tornadoDamageThreat"
	ParamThunderstormThreat     = "thunderstormDamageThreat"
	ParamFlashFloodDetection    = "flashFloodDetection"
	ParamFlashFloodDamageThreat = "flashFloodDamageThreat"
	ParamMaxWindGust            = "maxWindGust"
	ParamMaxHailSize            = "maxHailSize"
)

// Parameters is the open string→list-of-values mapping attached to an alert.
// Upstream is inconsistent about shapes (single-element lists, bare scalars,
// absent keys), so all access goes through the First* accessors rather than
// scattering index checks around the codebase.
type Parameters map[string][]any

// First returns the first value for key, if any.
func (p Parameters) First(key string) (any, bool) {
	vs, ok := p[key]
	if !ok || len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}

// FirstString returns the first value for key rendered as a string. Numeric
// values are formatted; absent keys and non-scalar values report false.
func (p Parameters) FirstString(key string) (string, bool) {
	v, ok := p.First(key)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// FirstBool returns the first value for key interpreted as a boolean. The
// vendor flag isTest has been observed as both a JSON bool and the strings
// "true"/"True".
func (p Parameters) FirstBool(key string) bool {
	v, ok := p.First(key)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(t)
		return err == nil && b
	default:
		return false
	}
}

// Strings returns every value for key that is a string.
func (p Parameters) Strings(key string) []string {
	vs, ok := p[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if s, isStr := v.(string); isStr {
			out = append(out, s)
		}
	}
	return out
}
