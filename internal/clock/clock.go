// Package clock abstracts delayed callbacks so timer-driven behaviour (typing
// delays, loading fallbacks) can be driven deterministically in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs f once after d, on its own goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// Real schedules with time.AfterFunc.
type Real struct{}

func (Real) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Fake is a manual scheduler. Callbacks run synchronously inside Advance.
type Fake struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []fakeTimer
}

type fakeTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

func NewFake() *Fake { return &Fake{} }

func (f *Fake) AfterFunc(d time.Duration, fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.pending = append(f.pending, fakeTimer{at: f.now + d, seq: f.seq, fn: fn})
}

// Advance moves the fake clock forward, firing due callbacks in deadline
// order. Callbacks scheduled while advancing fire too if they fall due.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	for {
		sort.Slice(f.pending, func(i, j int) bool {
			if f.pending[i].at != f.pending[j].at {
				return f.pending[i].at < f.pending[j].at
			}
			return f.pending[i].seq < f.pending[j].seq
		})
		if len(f.pending) == 0 || f.pending[0].at > target {
			break
		}
		t := f.pending[0]
		f.pending = f.pending[1:]
		f.now = t.at
		f.mu.Unlock()
		t.fn()
		f.mu.Lock()
	}
	f.now = target
	f.mu.Unlock()
}

// Pending reports how many callbacks have not fired yet.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}
