package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// MalformedRecordError reports a raw record the relay cannot normalize. The
// record is dropped; the cycle continues.
type MalformedRecordError struct {
	ID     string
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("malformed alert record: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed alert record %s: %s: %s", e.ID, e.Field, e.Reason)
}

// NormalizeAlert converts one raw upstream record into an AlertRecord or
// rejects it with a MalformedRecordError. It is a pure transform; logging of
// anomalies (unknown issuers in particular) is the caller's responsibility.
func NormalizeAlert(raw RawAlert) (AlertRecord, error) {
	if raw.ID == "" {
		return AlertRecord{}, &MalformedRecordError{Field: "id", Reason: "missing"}
	}
	if raw.Event == "" {
		return AlertRecord{}, &MalformedRecordError{ID: raw.ID, Field: "event", Reason: "missing"}
	}
	if raw.SenderName == "" {
		return AlertRecord{}, &MalformedRecordError{ID: raw.ID, Field: "senderName", Reason: "missing"}
	}

	params, err := decodeParameters(raw.ID, raw.Parameters)
	if err != nil {
		return AlertRecord{}, err
	}

	rec := AlertRecord{
		ID:              raw.ID,
		AreaDescription: raw.AreaDesc,
		Sent:            parseTimestamp(raw.Sent),
		Onset:           parseTimestamp(raw.Onset),
		Ends:            parseTimestamp(raw.Ends),
		Expires:         parseTimestamp(raw.Expires),
		MessageType:     MessageType(raw.MessageType),
		Event:           raw.Event,
		SenderID:        raw.SenderName,
		Headline:        raw.Headline,
		Description:     raw.Description,
		Instruction:     raw.Instruction,
		Parameters:      params,
		Status:          Status(raw.Status),
	}

	if !KnownIssuer(rec.SenderID) && !CivilOriginated(rec) {
		// Upstream legitimately relays non-NWS civil alerts; keep the record
		// but mark it so callers can log and filters can decide.
		rec.UnknownIssuer = true
	}

	return rec, nil
}

// CivilOriginated reports whether the record came through the Emergency Alert
// System from a civil authority (EAS-ORG=CIV).
func CivilOriginated(rec AlertRecord) bool {
	org, _ := rec.Parameters.FirstString(ParamEASOrg)
	return org == "CIV"
}

// decodeParameters accepts the open parameters mapping, wrapping bare scalar
// values into one-element lists. A present but non-object parameters field is
// a malformed record.
func decodeParameters(id string, raw json.RawMessage) (Parameters, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var loose map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, &MalformedRecordError{ID: id, Field: "parameters", Reason: "not a mapping"}
	}

	params := make(Parameters, len(loose))
	for key, v := range loose {
		switch t := v.(type) {
		case []any:
			params[key] = t
		default:
			params[key] = []any{v}
		}
	}
	return params, nil
}

// parseTimestamp parses an RFC 3339 timestamp, which always carries an
// explicit offset. Empty and unparseable values read as absent.
func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
