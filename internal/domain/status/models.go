// status holds the models for status notifications delivered out-of-band by
// the push transport while an export/upload runs, and the Store that buffers
// them for the interface layer.
package status

import (
	"time"

	"github.com/openrds/depositsync/internal/domain/research"
)

// Type classifies an Event. The wire set is open; only the three values
// below have a presentation Icon.
type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Warning Type = "warning"
)

// Icon is the presentation token the interface layer renders for an Event
// Type.
type Icon string

// An Event is a single status notification for a research index. Id and
// ReceivedAt are stamped by the Store on Append; everything else comes off
// the wire.
type Event struct {
	Id            string
	ResearchIndex research.Index
	Type          Type
	Message       string
	Extra         map[string]interface{}
	ReceivedAt    time.Time
}

// A Store that buffers Events per research Index for later synchronous
// consumption. Implementations must serialise concurrent Appends against
// each other and against EventsFor reads.
type Store interface {
	// Append adds the given Event to the sequence for its ResearchIndex,
	// creating the sequence if absent. Insertion order is preserved and
	// nothing is deduplicated. Never fails.
	Append(event Event)

	// EventsFor returns a snapshot of the Events accumulated for the given
	// research Index, in insertion order. Unknown indices yield an empty
	// slice, never an error.
	EventsFor(researchIndex research.Index) []Event
}

var iconsByType = map[Type]Icon{
	Success: "check circle",
	Error:   "times circle",
	Warning: "exclamation triangle",
}

// IconFor maps the closed set of known Types to their presentation Icons.
// The second return value is false for anything outside that set.
func IconFor(t Type) (Icon, bool) {
	icon, ok := iconsByType[t]
	return icon, ok
}
