// Package broadcast pushes committed bids to the connections watching a lot.
//
// Publishers call Publish after releasing the per-lot admission lock, so two events for
// the same lot can arrive out of order. Each lot keeps a sequencer keyed by the lot
// revision that parks early events until the missing revision shows up, which keeps the
// per-subscriber order identical to commit order.
package broadcast

import (
	"slices"
	"sync"
	"sync/atomic"

	model "auction-house/internal/models"
	"auction-house/internal/subscription"
	"auction-house/utils"
)

// DefaultMaxPending bounds how many out-of-order events a lot may park
const DefaultMaxPending = 1024

// SubscriberSource resolves the connections currently watching a lot
type SubscriberSource interface {
	SubscribersOf(lotID string) []subscription.Subscriber
}

// Stats reports delivery counters
type Stats struct {
	Published uint64 `json:"published"`
	Delivered uint64 `json:"delivered"`
	Failed    uint64 `json:"failed"`
}

type sequencer struct {
	mu      sync.Mutex
	next    uint64
	pending map[uint64]model.BidEvent
}

// Dispatcher fans committed bid events out to subscribers
type Dispatcher struct {
	source     SubscriberSource
	maxPending int

	mu   sync.Mutex
	lots map[string]*sequencer

	published atomic.Uint64
	delivered atomic.Uint64
	failed    atomic.Uint64
}

// NewDispatcher creates a dispatcher reading subscribers from source
func NewDispatcher(source SubscriberSource) *Dispatcher {
	return &Dispatcher{
		source:     source,
		maxPending: DefaultMaxPending,
		lots:       make(map[string]*sequencer),
	}
}

func (d *Dispatcher) sequencerFor(lotID string) *sequencer {
	d.mu.Lock()
	defer d.mu.Unlock()

	seq, ok := d.lots[lotID]
	if !ok {
		seq = &sequencer{next: 1, pending: make(map[uint64]model.BidEvent)}
		d.lots[lotID] = seq
	}
	return seq
}

// Publish delivers event to every subscriber of its lot once all earlier revisions of
// that lot have been delivered. Delivery failures are logged and never returned.
func (d *Dispatcher) Publish(event model.BidEvent) {
	d.published.Add(1)

	if event.Revision == 0 {
		d.deliver(event)
		return
	}

	seq := d.sequencerFor(event.LotID)
	seq.mu.Lock()
	defer seq.mu.Unlock()

	if event.Revision < seq.next {
		utils.Warn("dispatcher: dropping stale event", map[string]any{
			"lot_id":   event.LotID,
			"revision": event.Revision,
			"next":     seq.next,
		})
		return
	}

	seq.pending[event.Revision] = event
	if len(seq.pending) > d.maxPending {
		// a revision went missing; resume from the oldest parked event
		revs := make([]uint64, 0, len(seq.pending))
		for rev := range seq.pending {
			revs = append(revs, rev)
		}
		utils.Error("dispatcher: revision gap, skipping ahead", map[string]any{
			"lot_id":  event.LotID,
			"missing": seq.next,
			"resume":  slices.Min(revs),
		})
		seq.next = slices.Min(revs)
	}

	for {
		ev, ok := seq.pending[seq.next]
		if !ok {
			return
		}
		delete(seq.pending, seq.next)
		seq.next++
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(event model.BidEvent) {
	for _, sub := range d.source.SubscribersOf(event.LotID) {
		if err := sub.Deliver(event); err != nil {
			d.failed.Add(1)
			utils.Warn("dispatcher: delivery failed", map[string]any{
				"lot_id":   event.LotID,
				"conn_id":  sub.ID(),
				"revision": event.Revision,
				"error":    err.Error(),
			})
			continue
		}
		d.delivered.Add(1)
	}
}

// Stats returns a snapshot of the delivery counters
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Published: d.published.Load(),
		Delivered: d.delivered.Load(),
		Failed:    d.failed.Load(),
	}
}
