package subscription

import (
	"sync"

	model "auction-house/internal/models"
)

// Subscriber is an opaque handle for a live connection.
// Deliver must not block; a slow or closed connection returns an error instead.
type Subscriber interface {
	ID() string
	Deliver(event model.BidEvent) error
}

// Registry tracks which single lot, if any, each connection is watching
type Registry struct {
	mu    sync.RWMutex
	conns map[string]entry                 // key: connection ID
	byLot map[string]map[string]Subscriber // key: lotID -> connection ID
}

type entry struct {
	sub   Subscriber
	lotID string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]entry),
		byLot: make(map[string]map[string]Subscriber),
	}
}

// Subscribe points the connection at lotID, replacing any earlier subscription
func (r *Registry) Subscribe(sub Subscriber, lotID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(sub.ID())

	r.conns[sub.ID()] = entry{sub: sub, lotID: lotID}
	subs, ok := r.byLot[lotID]
	if !ok {
		subs = make(map[string]Subscriber)
		r.byLot[lotID] = subs
	}
	subs[sub.ID()] = sub
}

// Unsubscribe removes every association for the connection. Safe to call more than once.
func (r *Registry) Unsubscribe(sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(sub.ID())
}

func (r *Registry) removeLocked(connID string) {
	prev, ok := r.conns[connID]
	if !ok {
		return
	}
	delete(r.conns, connID)
	if subs, ok := r.byLot[prev.lotID]; ok {
		delete(subs, connID)
		if len(subs) == 0 {
			delete(r.byLot, prev.lotID)
		}
	}
}

// SubscribersOf returns a copy of the connections watching lotID, in no particular order
func (r *Registry) SubscribersOf(lotID string) []Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := r.byLot[lotID]
	out := make([]Subscriber, 0, len(subs))
	for _, s := range subs {
		out = append(out, s)
	}
	return out
}

// LotOf reports the lot the connection is watching
func (r *Registry) LotOf(sub Subscriber) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[sub.ID()]
	return e.lotID, ok
}

// Count returns the number of subscribed connections
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
