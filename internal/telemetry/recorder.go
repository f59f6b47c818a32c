package telemetry

// Recorder accumulates events for one generation call. A nil Recorder is
// valid and records nothing, so the composers never need to branch on it
// being wired.
type Recorder struct {
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{events: make([]Event, 0)}
}

func (r *Recorder) Record(t EventType, slot, id string) {
	if r == nil {
		return
	}
	r.events = append(r.events, Event{Type: t, Slot: slot, ID: id})
}

func (r *Recorder) Events() []Event {
	if r == nil {
		return nil
	}
	return r.events
}

// Stats summarizes a run for debug logging.
type Stats struct {
	EventCounts    map[EventType]int `json:"event_counts"`
	EmptyFallbacks int               `json:"empty_fallbacks"`
	ParcelsRolled  int               `json:"parcels_rolled"`
}

func (r *Recorder) Stats() Stats {
	stats := Stats{EventCounts: make(map[EventType]int)}
	if r == nil {
		return stats
	}
	for _, e := range r.events {
		stats.EventCounts[e.Type]++
		switch e.Type {
		case EventEmptyFallback:
			stats.EmptyFallbacks++
		case EventParcelRolled:
			stats.ParcelsRolled++
		}
	}
	return stats
}
