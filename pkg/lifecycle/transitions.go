package lifecycle

import "slices"

// Event names an input to the state machine.
type Event string

const (
	EventGenerate Event = "generate"
	EventTick     Event = "tick"
	EventDestroy  Event = "destroy"
)

// transitions lists, per status and event, the statuses that may follow.
var transitions = map[Status]map[Event][]Status{
	StatusIdle: {
		EventGenerate: {StatusValid},
		EventDestroy:  {StatusExpired},
	},
	StatusValid: {
		EventTick:    {StatusValid, StatusExpiring, StatusExpired},
		EventDestroy: {StatusExpired},
	},
	StatusExpiring: {
		EventTick:    {StatusExpiring, StatusExpired},
		EventDestroy: {StatusExpired},
	},
	StatusExpired: {
		EventGenerate: {StatusValid},
		EventDestroy:  {StatusExpired},
	},
}

// can reports whether event is accepted in from.
func can(from Status, event Event) bool {
	_, ok := transitions[from][event]
	return ok
}

// allowed reports whether event may move from into to.
func allowed(from Status, event Event, to Status) bool {
	return slices.Contains(transitions[from][event], to)
}
