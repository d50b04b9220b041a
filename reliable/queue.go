// Package reliable implements ReliableEventQueue: a per-recipient retry channel layered over the
// unreliable snapshot stream for events that must be delivered at least
// once (deaths, structure destructions, first blood, level-ups, item
// purchases, persistent-state ability casts — engine.EventType.IsReliable).
package reliable

import (
	"golang.org/x/exp/slices"

	"github.com/stormline/arena/engine"
)

type entry struct {
	event          engine.Event
	firstSentTick  engine.Tick
	nextResendTick engine.Tick
	attempts       int
}

// Queue assigns match-monotonic event IDs and tracks per-recipient resend
// state with geometric backoff.
type Queue struct {
	nextID uint64

	initialResend engine.Tick
	factor        float32
	maxResend     engine.Tick
	maxAttempts   int

	perRecipient map[engine.PlayerID]map[uint64]*entry

	onDropped func(recipient engine.PlayerID, eventID uint64, reason string)
}

// NewQueue creates a Queue with the configured backoff schedule.
func NewQueue(initialResend engine.Tick, factor float32, maxResend engine.Tick, maxAttempts int) *Queue {
	return &Queue{
		initialResend: initialResend,
		factor:        factor,
		maxResend:     maxResend,
		maxAttempts:   maxAttempts,
		perRecipient:  make(map[engine.PlayerID]map[uint64]*entry),
	}
}

// OnDropped registers a hook invoked when an event is given up on after
// maxAttempts.
func (q *Queue) OnDropped(fn func(recipient engine.PlayerID, eventID uint64, reason string)) {
	q.onDropped = fn
}

// Enqueue assigns ev a match-monotonic eventId and schedules it for each
// recipient, returning the stamped event so the caller's first broadcast
// can include it immediately.
func (q *Queue) Enqueue(ev engine.Event, recipients []engine.PlayerID, tick engine.Tick) engine.Event {
	q.nextID++
	ev.ID = q.nextID
	ev.Reliable = true

	for _, r := range recipients {
		m := q.perRecipient[r]
		if m == nil {
			m = make(map[uint64]*entry)
			q.perRecipient[r] = m
		}
		m[ev.ID] = &entry{event: ev, firstSentTick: tick, nextResendTick: tick}
	}
	return ev
}

func (q *Queue) resendInterval(attempts int) engine.Tick {
	interval := float32(q.initialResend)
	for i := 0; i < attempts; i++ {
		interval *= q.factor
	}
	if engine.Tick(interval) > q.maxResend {
		return q.maxResend
	}
	return engine.Tick(interval)
}

// Due returns every event queued for recipient whose nextResendTick <= T,
// advances each one's resend schedule by the geometric backoff, and drops
// any that have exhausted maxAttempts. Events are returned in ascending
// eventId order: map iteration order is randomized, and callers append
// this slice straight into a StateUpdate, so an unsorted result would
// make the wire event order vary run-to-run for the same match history.
func (q *Queue) Due(recipient engine.PlayerID, tick engine.Tick) []engine.Event {
	m := q.perRecipient[recipient]
	if len(m) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(m))
	for id, e := range m {
		if e.nextResendTick <= tick {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	slices.Sort(ids)

	due := make([]engine.Event, 0, len(ids))
	for _, id := range ids {
		e := m[id]
		due = append(due, e.event)
		interval := q.resendInterval(e.attempts)
		e.attempts++
		if q.maxAttempts > 0 && e.attempts >= q.maxAttempts {
			delete(m, id)
			if q.onDropped != nil {
				q.onDropped(recipient, id, "attempt-cap-exceeded")
			}
			continue
		}
		e.nextResendTick = tick + interval
	}
	return due
}

// Ack drops every event for recipient with eventId <= lastEventID.
func (q *Queue) Ack(recipient engine.PlayerID, lastEventID uint64) {
	m := q.perRecipient[recipient]
	for id := range m {
		if id <= lastEventID {
			delete(m, id)
		}
	}
}

// Disconnect clears recipient's reliable-delivery state.
func (q *Queue) Disconnect(recipient engine.PlayerID) {
	delete(q.perRecipient, recipient)
}

// Pending reports how many events remain queued for recipient, for tests
// and metrics.
func (q *Queue) Pending(recipient engine.PlayerID) int {
	return len(q.perRecipient[recipient])
}
