package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lojasmm/sonora/internal/browser"
	"github.com/lojasmm/sonora/internal/chat"
	"github.com/lojasmm/sonora/internal/clock"
	"github.com/lojasmm/sonora/internal/metrics"
	"github.com/lojasmm/sonora/internal/render"
	"github.com/lojasmm/sonora/internal/resolver"
)

var ErrNotFound = errors.New("session not found")

// Options are shared by every session a Manager creates.
type Options struct {
	Resolver  *resolver.Resolver
	Renderer  *render.Renderer
	Scheduler clock.Scheduler
	Logger    *zap.Logger
	Metrics   *metrics.Metrics

	LoadTimeout    time.Duration
	TypingDelay    time.Duration
	TypingJitter   time.Duration
	LinkReplyDelay time.Duration

	// MessagesPerMinute caps Send per session; 0 disables the limit.
	MessagesPerMinute int
}

// Session is one visitor's page state: a chat transcript and a browser pane
// sharing one display feed.
type Session struct {
	ID        string
	CreatedAt time.Time
	Chat      *chat.Conversation
	Browser   *browser.Session
	Feed      *Feed

	mu       sync.Mutex
	limiter  *rate.Limiter
	lastUsed time.Time
}

// Allow reports whether the session may send another chat message now.
func (s *Session) Allow() bool {
	if s.limiter == nil {
		return true
	}
	return s.limiter.Allow()
}

// Manager owns live sessions and serializes work per session, the way a
// page's single event loop would; different sessions run in parallel.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     Options
	now      func() time.Time
}

func NewManager(opts Options) *Manager {
	if opts.Scheduler == nil {
		opts.Scheduler = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
		now:      time.Now,
	}
}

// Create starts a new session.
func (m *Manager) Create() *Session {
	id := uuid.NewString()
	feed := NewFeed(m.opts.Metrics)
	b := browser.NewSession(feed, m.opts.Scheduler, m.opts.LoadTimeout)

	s := &Session{
		ID:      id,
		Feed:    feed,
		Browser: b,
		Chat: chat.NewConversation(chat.Config{
			Resolver:       m.opts.Resolver,
			Renderer:       m.opts.Renderer,
			Browser:        b,
			Scheduler:      m.opts.Scheduler,
			Sink:           feed,
			Logger:         m.opts.Logger.With(zap.String("session", id)),
			TypingDelay:    m.opts.TypingDelay,
			TypingJitter:   m.opts.TypingJitter,
			LinkReplyDelay: m.opts.LinkReplyDelay,
		}),
	}
	if n := m.opts.MessagesPerMinute; n > 0 {
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), n)
	}

	m.mu.Lock()
	s.CreatedAt = m.now()
	s.lastUsed = s.CreatedAt
	m.sessions[id] = s
	count := len(m.sessions)
	m.mu.Unlock()

	m.opts.Metrics.SetSessions(count)
	m.opts.Logger.Info("session: created", zap.String("session", id))
	return s
}

// Get returns a live session and marks it used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.lastUsed = m.now()
	return s, nil
}

// WithLock executes fn while holding the session's mutex.
// Concurrent requests for the same session are serialized.
func (m *Manager) WithLock(id string, fn func(s *Session) error) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// Cleanup removes sessions not used within maxAge and ends their event
// streams. It returns how many were removed.
func (m *Manager) Cleanup(maxAge time.Duration) int {
	m.mu.Lock()
	now := m.now()
	var stale []*Session
	for id, s := range m.sessions {
		if now.Sub(s.lastUsed) > maxAge {
			delete(m.sessions, id)
			stale = append(stale, s)
		}
	}
	count := len(m.sessions)
	m.mu.Unlock()

	for _, s := range stale {
		s.Feed.Close()
	}
	if len(stale) > 0 {
		m.opts.Metrics.SetSessions(count)
		m.opts.Logger.Info("session: cleaned up idle sessions", zap.Int("removed", len(stale)), zap.Int("active", count))
	}
	return len(stale)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
