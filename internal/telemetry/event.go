package telemetry

type EventType string

const (
	EventTypeRolled       EventType = "type_rolled"
	EventTemplateSelected EventType = "template_selected"
	EventNoncombatPicked  EventType = "noncombat_picked"
	EventEmptyFallback    EventType = "empty_fallback"
	EventParcelRolled     EventType = "parcel_rolled"
)

// Event is one generation decision, recorded for traceability. Events carry
// no timestamps: generation is pure and replayable, so the sequence alone
// identifies a run.
type Event struct {
	Type EventType `json:"type"`
	Slot string    `json:"slot,omitempty"`
	ID   string    `json:"id,omitempty"`
}
