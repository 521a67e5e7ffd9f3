package combat

// EventKind classifies one thing that happened during a turn.
type EventKind int

const (
	EventHit EventKind = iota
	EventItemUsed
	EventFleeFailed
	EventFled
	EventMonsterDefeated
	EventPlayerDefeated
)

// Event is one narrated step of a turn.
type Event struct {
	Kind EventKind
	// Hit is set for EventHit.
	Hit Hit
	// Narrative is a human-readable description suitable for display and logging.
	Narrative string
}

// Turn is the outcome of one Step: the ordered events and the resulting state.
type Turn struct {
	Events []Event
	State  State
}

// Narratives returns the narrative of each event in order.
func (t Turn) Narratives() []string {
	out := make([]string, len(t.Events))
	for i, e := range t.Events {
		out[i] = e.Narrative
	}
	return out
}

func hitEvents(r AttackResult) []Event {
	events := make([]Event, 0, len(r.Hits))
	for _, h := range r.Hits {
		events = append(events, Event{Kind: EventHit, Hit: h, Narrative: h.Narrative()})
	}
	return events
}
