// Package browser keeps the navigation state of the embedded content frame:
// a linear back/forward history and a transient loading indicator.
package browser

import (
	"strings"
	"sync"
	"time"

	"github.com/lojasmm/sonora/internal/clock"
)

// DefaultLoadTimeout clears the loading indicator for pages that never
// report load completion (blocked framing, cross-origin).
const DefaultLoadTimeout = 5 * time.Second

// Op names a navigation operation.
type Op string

const (
	OpOpen    Op = "open"
	OpBack    Op = "back"
	OpForward Op = "forward"
	OpReload  Op = "reload"
	OpLoaded  Op = "loaded"
)

// View is the display surface: the content frame with its URL bar, and the
// loading overlay. Implementations must not call back into the Session.
type View interface {
	ShowPage(url string)
	SetLoading(loading bool)
}

type nopView struct{}

func (nopView) ShowPage(string) {}
func (nopView) SetLoading(bool) {}

// State is a point-in-time snapshot of a Session.
type State struct {
	History    []string `json:"history"`
	Index      int      `json:"index"`
	URL        string   `json:"url,omitempty"`
	Loading    bool     `json:"loading"`
	CanBack    bool     `json:"can_back"`
	CanForward bool     `json:"can_forward"`
}

type Session struct {
	mu      sync.Mutex
	view    View
	sched   clock.Scheduler
	timeout time.Duration

	history []string
	index   int
	loading bool
	loadSeq uint64
}

// NewSession creates an empty session. A nil view discards display updates;
// a non-positive timeout uses DefaultLoadTimeout.
func NewSession(view View, sched clock.Scheduler, timeout time.Duration) *Session {
	if view == nil {
		view = nopView{}
	}
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &Session{view: view, sched: sched, timeout: timeout, index: -1}
}

// Normalize trims url and prefixes https:// unless it already starts with
// "http" in any case. An empty result means there is nothing to open.
func Normalize(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	if len(url) < 4 || !strings.EqualFold(url[:4], "http") {
		url = "https://" + url
	}
	return url
}

// Open navigates to url, dropping any forward history, and raises the
// loading indicator until Loaded is called or the timeout passes. It
// returns false when url is empty.
func (s *Session) Open(url string) bool {
	url = Normalize(url)
	if url == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history[:s.index+1], url)
	s.index = len(s.history) - 1

	s.loadSeq++
	seq := s.loadSeq
	s.loading = true
	s.view.SetLoading(true)
	s.view.ShowPage(url)

	s.sched.AfterFunc(s.timeout, func() { s.expireLoading(seq) })
	return true
}

// Back moves one entry back. No-op at the start of history.
func (s *Session) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index <= 0 {
		return false
	}
	s.index--
	s.view.ShowPage(s.history[s.index])
	return true
}

// Forward moves one entry forward. No-op at the end of history.
func (s *Session) Forward() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index >= len(s.history)-1 {
		return false
	}
	s.index++
	s.view.ShowPage(s.history[s.index])
	return true
}

// Reload re-issues the current page. No-op when nothing is loaded.
func (s *Session) Reload() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index < 0 {
		return false
	}
	s.view.ShowPage(s.history[s.index])
	return true
}

// Loaded is the frame's load-complete signal. It clears the indicator if
// it is showing and reports whether it did.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLoadingLocked()
}

// expireLoading only clears the indicator raised by the Open that
// scheduled it; a newer Open keeps its own indicator.
func (s *Session) expireLoading(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		return
	}
	s.clearLoadingLocked()
}

func (s *Session) clearLoadingLocked() bool {
	if !s.loading {
		return false
	}
	s.loading = false
	s.view.SetLoading(false)
	return true
}

// Current returns the URL at the history cursor.
func (s *Session) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < 0 {
		return "", false
	}
	return s.history[s.index], true
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		History:    append([]string(nil), s.history...),
		Index:      s.index,
		Loading:    s.loading,
		CanBack:    s.index > 0,
		CanForward: s.index < len(s.history)-1,
	}
	if st.History == nil {
		st.History = []string{}
	}
	if s.index >= 0 {
		st.URL = s.history[s.index]
	}
	return st
}
