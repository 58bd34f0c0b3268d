package domain

import (
	"encoding/json"
	"time"
)

// MessageType is the CAP message type of an alert issuance.
type MessageType string

const (
	MessageAlert  MessageType = "Alert"
	MessageUpdate MessageType = "Update"
	MessageCancel MessageType = "Cancel"
)

// Status is the CAP status of an alert.
type Status string

const (
	StatusActual   Status = "Actual"
	StatusExercise Status = "Exercise"
	StatusSystem   Status = "System"
	StatusTest     Status = "Test"
	StatusDraft    Status = "Draft"
)

// RawAlert is one entry of the upstream "@graph" collection, exactly as the
// NWS API serves it. Only the fields the relay consumes are declared.
type RawAlert struct {
	ID          string          `json:"id"`
	AreaDesc    string          `json:"areaDesc"`
	Sent        string          `json:"sent"`
	Onset       string          `json:"onset"`
	Ends        string          `json:"ends"`
	Expires     string          `json:"expires"`
	MessageType string          `json:"messageType"`
	Event       string          `json:"event"`
	SenderName  string          `json:"senderName"`
	Headline    string          `json:"headline"`
	Description string          `json:"description"`
	Instruction string          `json:"instruction"`
	Status      string          `json:"status"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// AlertRecord is the normalized, immutable representation of one alert
// issuance. Timestamps are nil when upstream omitted them and always carry an
// explicit zone when present.
type AlertRecord struct {
	ID              string      `json:"id"`
	AreaDescription string      `json:"area_description,omitempty"`
	Sent            *time.Time  `json:"sent,omitempty"`
	Onset           *time.Time  `json:"onset,omitempty"`
	Ends            *time.Time  `json:"ends,omitempty"`
	Expires         *time.Time  `json:"expires,omitempty"`
	MessageType     MessageType `json:"message_type"`
	Event           string      `json:"event"`
	SenderID        string      `json:"sender_id"`
	Headline        string      `json:"headline,omitempty"`
	Description     string      `json:"description,omitempty"`
	Instruction     string      `json:"instruction,omitempty"`
	Parameters      Parameters  `json:"parameters,omitempty"`
	Status          Status      `json:"status"`

	// UnknownIssuer marks a sender outside the WFO roster that is not a
	// civil-authority relay. Such records are still relayed but logged.
	UnknownIssuer bool `json:"unknown_issuer,omitempty"`
}

// Snapshot is the result of one poll cycle: an ordered collection of alert
// records plus the set of ids it contains. Snapshots are never mutated after
// creation; the diff engine only reads the previous one and produces the next.
type Snapshot struct {
	Records []AlertRecord `json:"records"`
	TakenAt time.Time     `json:"taken_at"`

	ids map[string]struct{}
}

// NewSnapshot builds a snapshot from records in upstream order, collapsing
// duplicate ids. The first occurrence keeps its position; its content is
// overwritten by the last occurrence, matching last-write-wins semantics for
// re-sent issuances within one poll.
func NewSnapshot(records []AlertRecord) Snapshot {
	ordered := make([]AlertRecord, 0, len(records))
	position := make(map[string]int, len(records))
	for _, rec := range records {
		if i, seen := position[rec.ID]; seen {
			ordered[i] = rec
			continue
		}
		position[rec.ID] = len(ordered)
		ordered = append(ordered, rec)
	}

	ids := make(map[string]struct{}, len(ordered))
	for _, rec := range ordered {
		ids[rec.ID] = struct{}{}
	}

	return Snapshot{Records: ordered, TakenAt: clock.Now(), ids: ids}
}

// Contains reports whether the snapshot holds an alert with the given id.
func (s Snapshot) Contains(id string) bool {
	if s.ids == nil {
		// Snapshot came from persistence; fall back to a scan.
		for _, rec := range s.Records {
			if rec.ID == id {
				return true
			}
		}
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of distinct alerts in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Records)
}

// Reindex rebuilds the id set after JSON decoding, which bypasses
// NewSnapshot. It collapses nothing: persisted snapshots are already deduped.
func (s *Snapshot) Reindex() {
	s.ids = make(map[string]struct{}, len(s.Records))
	for _, rec := range s.Records {
		s.ids[rec.ID] = struct{}{}
	}
}
