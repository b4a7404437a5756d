// Package health exposes the HTTP endpoints an external orchestrator uses
// to supervise the bot process. It shares only a small in-memory status
// with the bot loop, never the record store.
package health

import (
	"sync/atomic"
	"time"
)

// Status is the in-memory state shared between the bot loop and the
// health server: a liveness flag plus a couple of counters.
type Status struct {
	alive     atomic.Bool
	startedAt time.Time
	updates   atomic.Int64
	lookups   atomic.Int64
}

// NewStatus returns a Status that starts alive.
func NewStatus() *Status {
	s := &Status{startedAt: time.Now()}
	s.alive.Store(true)
	return s
}

func (s *Status) SetAlive(v bool) { s.alive.Store(v) }
func (s *Status) Alive() bool     { return s.alive.Load() }

func (s *Status) IncUpdates() { s.updates.Add(1) }
func (s *Status) IncLookups() { s.lookups.Add(1) }

func (s *Status) Updates() int64 { return s.updates.Load() }
func (s *Status) Lookups() int64 { return s.lookups.Load() }

func (s *Status) StartedAt() time.Time { return s.startedAt }
