// Package diff turns successive alert-feed snapshots into the minimal set of
// new-or-changed alerts. The engine is a pure function of the previous and
// current snapshots; the pipeline owns fetching, persistence, and dispatch.
package diff

import "github.com/couchcryptid/nws-alert-relay/internal/domain"

// Result is the outcome of diffing one poll cycle.
type Result struct {
	// Baseline is true on a cold start: there was no previous snapshot, so
	// the whole current snapshot is the initial baseline and New is empty.
	// Baselines are announced as a single digest, never per-record.
	Baseline bool

	// New holds the alerts whose ids were absent from the previous snapshot,
	// in upstream order. Test Message products never appear here; they are
	// only reachable through the manual resend path.
	New []domain.AlertRecord

	// Snapshot is the deduplicated current snapshot to persist as the next
	// cycle's previous, regardless of dispatch outcome.
	Snapshot domain.Snapshot
}

// Compute diffs the current poll against the previous snapshot. The caller
// merges explicitly-cancelled alerts into records before calling, since
// cancellations do not always appear on the active-alerts endpoint; duplicate
// ids collapse last-wins inside domain.NewSnapshot.
//
// A nil previous snapshot signals a cold start.
func Compute(previous *domain.Snapshot, records []domain.AlertRecord) Result {
	current := domain.NewSnapshot(records)

	if previous == nil {
		return Result{Baseline: true, Snapshot: current}
	}

	var fresh []domain.AlertRecord
	for _, rec := range current.Records {
		if previous.Contains(rec.ID) {
			continue
		}
		if rec.Event == domain.EventTestMessage {
			continue
		}
		fresh = append(fresh, rec)
	}

	return Result{New: fresh, Snapshot: current}
}

// EmergencyLedger tracks which alert ids have already been routed to the
// priority broadcast path within one cycle. The same record is evaluated once
// per subscriber; the ledger keeps the broadcast itself to one firing per id.
type EmergencyLedger map[string]struct{}

// NewEmergencyLedger returns an empty per-cycle ledger.
func NewEmergencyLedger() EmergencyLedger {
	return make(EmergencyLedger)
}

// FirstDispatch records id and reports whether this was its first dispatch
// this cycle.
func (l EmergencyLedger) FirstDispatch(id string) bool {
	if _, seen := l[id]; seen {
		return false
	}
	l[id] = struct{}{}
	return true
}
