package event

import (
	"context"
	"sync"
)

// Published is an event captured by a Recorder.
type Published struct {
	Type    string
	Payload any
}

// Recorder keeps published events in memory. Err, when set, is returned
// from every Publish and nothing is recorded.
type Recorder struct {
	mu     sync.Mutex
	events []Published
	Err    error
}

func (r *Recorder) Publish(_ context.Context, eventType string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, Published{Type: eventType, Payload: payload})
	return nil
}

func (r *Recorder) Close() {}

func (r *Recorder) Events() []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Published, len(r.events))
	copy(out, r.events)
	return out
}
