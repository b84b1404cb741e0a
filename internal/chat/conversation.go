package chat

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lojasmm/sonora/internal/browser"
	"github.com/lojasmm/sonora/internal/clock"
	"github.com/lojasmm/sonora/internal/render"
	"github.com/lojasmm/sonora/internal/resolver"
)

const (
	DefaultTypingDelay    = 800 * time.Millisecond
	DefaultTypingJitter   = 800 * time.Millisecond
	DefaultLinkReplyDelay = 600 * time.Millisecond
)

// LinkOpenedReply answers a message that carried a URL.
const LinkOpenedReply = "I've opened that link in the browser panel for you! " +
	"If it's a product page, I can help compare it with alternatives - just ask."

// Message is one transcript entry. Entries are never modified once added.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	Role      render.Role `json:"role"`
	Text      string      `json:"text"`
	HTML      string      `json:"html"`
	CreatedAt time.Time   `json:"created_at"`
}

// Sink is the transcript display. It is called with the conversation lock
// held and must not call back into the Conversation.
type Sink interface {
	MessageAdded(m Message)
	TypingChanged(typing bool)
}

type nopSink struct{}

func (nopSink) MessageAdded(Message) {}
func (nopSink) TypingChanged(bool) {}

// Outcome describes what a Send did.
type Outcome struct {
	User      Message
	OpenedURL string         // set when the message carried a URL
	Match     resolver.Match // set otherwise
}

type Config struct {
	Resolver  *resolver.Resolver
	Renderer  *render.Renderer
	Browser   *browser.Session // optional; without it URLs are answered like any text
	Scheduler clock.Scheduler
	Sink      Sink
	Logger    *zap.Logger

	TypingDelay    time.Duration
	TypingJitter   time.Duration
	LinkReplyDelay time.Duration
	// Jitter returns a random duration in [0, limit). Defaults to math/rand.
	Jitter func(limit time.Duration) time.Duration
}

type Conversation struct {
	mu       sync.Mutex
	cfg      Config
	messages []Message
	pending  int
	now      func() time.Time
}

func NewConversation(cfg Config) *Conversation {
	if cfg.Scheduler == nil {
		cfg.Scheduler = clock.Real{}
	}
	if cfg.Sink == nil {
		cfg.Sink = nopSink{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Jitter == nil {
		cfg.Jitter = randomJitter
	}
	return &Conversation{cfg: cfg, now: time.Now}
}

func randomJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(limit)))
}

// Send posts user text and schedules the bot's reply. Blank text is
// ignored. A message containing a URL opens the first URL in the browser
// pane and gets a fixed acknowledgement; anything else is resolved against
// the response table after a simulated typing pause.
func (c *Conversation) Send(text string) (Outcome, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Outcome{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := Outcome{User: c.appendLocked(render.RoleUser, text)}

	if url, ok := render.FindURL(text); ok && c.cfg.Browser != nil {
		c.cfg.Browser.Open(url)
		out.OpenedURL = url
		c.cfg.Logger.Debug("chat: opened pasted link", zap.String("url", url))
		c.scheduleReplyLocked(c.cfg.LinkReplyDelay, LinkOpenedReply)
		return out, true
	}

	out.Match = c.cfg.Resolver.Match(text)
	c.cfg.Logger.Debug("chat: resolved",
		zap.String("stage", string(out.Match.Stage)),
		zap.String("key", out.Match.Key))
	c.scheduleReplyLocked(c.cfg.TypingDelay+c.cfg.Jitter(c.cfg.TypingJitter), out.Match.Response)
	return out, true
}

// SendQuick posts a quick-reply chip's text.
func (c *Conversation) SendQuick(text string) (Outcome, bool) {
	return c.Send(text)
}

// ApplyFilters turns the filter panel into a chat query and sends it.
func (c *Conversation) ApplyFilters(f Filters) (Outcome, bool) {
	return c.Send(f.Query())
}

func (c *Conversation) scheduleReplyLocked(delay time.Duration, reply string) {
	c.pending++
	if c.pending == 1 {
		c.cfg.Sink.TypingChanged(true)
	}
	c.cfg.Scheduler.AfterFunc(delay, func() { c.deliver(reply) })
}

func (c *Conversation) deliver(reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending--
	if c.pending == 0 {
		c.cfg.Sink.TypingChanged(false)
	}
	c.appendLocked(render.RoleBot, reply)
}

func (c *Conversation) appendLocked(role render.Role, text string) Message {
	m := Message{
		ID:        uuid.New(),
		Role:      role,
		Text:      text,
		HTML:      c.cfg.Renderer.Render(text, role),
		CreatedAt: c.now(),
	}
	c.messages = append(c.messages, m)
	c.cfg.Sink.MessageAdded(m)
	return m
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Snapshot returns a copy of the transcript and the typing state, read
// together so a reply landing in between cannot be half-observed.
func (c *Conversation) Snapshot() ([]Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out, c.pending > 0
}

// Typing reports whether a bot reply is still pending.
func (c *Conversation) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending > 0
}
