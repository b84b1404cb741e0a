package session

import (
	"sync"

	"github.com/lojasmm/sonora/internal/browser"
	"github.com/lojasmm/sonora/internal/chat"
	"github.com/lojasmm/sonora/internal/metrics"
)

const subscriberBuffer = 32

type EventType string

const (
	EventMessage EventType = "message"
	EventTyping  EventType = "typing"
	EventFrame   EventType = "frame"
)

// Frame is what the page shows in the browser pane. Nav increments on every
// page load request so a reload of the same URL is still visible.
type Frame struct {
	URL     string `json:"url"`
	Loading bool   `json:"loading"`
	Nav     int    `json:"nav"`
}

type Event struct {
	Type    EventType     `json:"type"`
	Message *chat.Message `json:"message,omitempty"`
	Typing  *bool         `json:"typing,omitempty"`
	Frame   *Frame        `json:"frame,omitempty"`
}

// Feed is the display surface of one session. It implements browser.View
// and chat.Sink and fans events out to subscribers (the page's event
// stream). Slow subscribers miss events instead of blocking the session.
type Feed struct {
	mu      sync.Mutex
	frame   Frame
	subs    map[chan Event]struct{}
	closed  bool
	metrics *metrics.Metrics
}

func NewFeed(m *metrics.Metrics) *Feed {
	return &Feed{subs: make(map[chan Event]struct{}), metrics: m}
}

func (f *Feed) ShowPage(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frame.URL = url
	f.frame.Nav++
	f.publishFrameLocked()
}

func (f *Feed) SetLoading(loading bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frame.Loading = loading
	f.publishFrameLocked()
}

func (f *Feed) MessageAdded(m chat.Message) {
	f.metrics.ObserveMessage(string(m.Role))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.publishLocked(Event{Type: EventMessage, Message: &m})
}

func (f *Feed) TypingChanged(typing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publishLocked(Event{Type: EventTyping, Typing: &typing})
}

// Frame returns the current pane display.
func (f *Feed) Frame() Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frame
}

// Subscribe returns a channel of future events and a cancel func. The
// channel is closed on cancel or when the feed closes.
func (f *Feed) Subscribe() (<-chan Event, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if f.closed {
		close(ch)
		return ch, func() {}
	}
	f.subs[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if _, ok := f.subs[ch]; ok {
				delete(f.subs, ch)
				close(ch)
			}
		})
	}
}

// Close ends all subscriptions.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for ch := range f.subs {
		close(ch)
		delete(f.subs, ch)
	}
}

func (f *Feed) publishFrameLocked() {
	frame := f.frame
	f.publishLocked(Event{Type: EventFrame, Frame: &frame})
}

func (f *Feed) publishLocked(e Event) {
	for ch := range f.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

var (
	_ browser.View = (*Feed)(nil)
	_ chat.Sink    = (*Feed)(nil)
)
