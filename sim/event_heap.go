package sim

import "container/heap"

// eventBefore is the total order of the event queue:
// timestamp → type priority → event ID.
// Event IDs are unique per run, so no two events compare equal.
func eventBefore(a, b Event) bool {
	if a.Timestamp() != b.Timestamp() {
		return a.Timestamp() < b.Timestamp()
	}
	if pa, pb := EventTypePriority[a.Type()], EventTypePriority[b.Type()]; pa != pb {
		return pa < pb
	}
	return a.EventID() < b.EventID()
}

// eventSlice implements heap.Interface over eventBefore.
type eventSlice []Event

func (es eventSlice) Len() int           { return len(es) }
func (es eventSlice) Less(i, j int) bool { return eventBefore(es[i], es[j]) }
func (es eventSlice) Swap(i, j int)      { es[i], es[j] = es[j], es[i] }

func (es *eventSlice) Push(x any) { *es = append(*es, x.(Event)) }

func (es *eventSlice) Pop() any {
	old := *es
	ev := old[len(old)-1]
	old[len(old)-1] = nil
	*es = old[:len(old)-1]
	return ev
}

// EventHeap is the pending-event queue of one run.
type EventHeap struct {
	events eventSlice
}

// NewEventHeap creates an empty event queue.
func NewEventHeap() *EventHeap {
	return &EventHeap{events: make(eventSlice, 0)}
}

// Len returns the number of pending events.
func (h *EventHeap) Len() int {
	return h.events.Len()
}

// Schedule adds an event.
func (h *EventHeap) Schedule(e Event) {
	heap.Push(&h.events, e)
}

// PopNext removes and returns the earliest event, or nil.
func (h *EventHeap) PopNext() Event {
	if h.events.Len() == 0 {
		return nil
	}
	return heap.Pop(&h.events).(Event)
}

// Peek returns the earliest event without removing it, or nil.
func (h *EventHeap) Peek() Event {
	if h.events.Len() == 0 {
		return nil
	}
	return h.events[0]
}
