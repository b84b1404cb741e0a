package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lojasmm/sonora/internal/browser"
	"github.com/lojasmm/sonora/internal/chat"
	"github.com/lojasmm/sonora/internal/session"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type sessionResponse struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Messages  []chat.Message `json:"messages"`
	Typing    bool           `json:"typing"`
	Browser   browser.State  `json:"browser"`
	Frame     session.Frame  `json:"frame"`
}

type messagesResponse struct {
	Messages []chat.Message `json:"messages"`
	Typing   bool           `json:"typing"`
}

type sendRequest struct {
	Text  string `json:"text"`
	Quick bool   `json:"quick"`
}

type sendResponse struct {
	Message   chat.Message `json:"message"`
	OpenedURL string       `json:"opened_url,omitempty"`
}

type navigateRequest struct {
	URL string `json:"url"`
}

type browserResponse struct {
	Changed bool          `json:"changed"`
	State   browser.State `json:"state"`
}

var errBlankMessage = errors.New("blank message")

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, s.snapshot(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		writeJSON(w, http.StatusOK, s.snapshot(sess))
		return nil
	})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		msgs, typing := sess.Chat.Snapshot()
		writeJSON(w, http.StatusOK, messagesResponse{Messages: msgs, Typing: typing})
		return nil
	})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	s.withSession(w, r, func(sess *session.Session) error {
		send := sess.Chat.Send
		if req.Quick {
			send = sess.Chat.SendQuick
		}
		return s.send(w, sess, func() (chat.Outcome, bool) { return send(req.Text) })
	})
}

func (s *Server) handleApplyFilters(w http.ResponseWriter, r *http.Request) {
	var f chat.Filters
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	s.withSession(w, r, func(sess *session.Session) error {
		return s.send(w, sess, func() (chat.Outcome, bool) { return sess.Chat.ApplyFilters(f) })
	})
}

func (s *Server) send(w http.ResponseWriter, sess *session.Session, fn func() (chat.Outcome, bool)) error {
	if !sess.Allow() {
		s.metrics.ObserveRateLimited()
		writeError(w, http.StatusTooManyRequests, "rate_limited",
			"You're sending messages too quickly. Wait a moment and try again.")
		return nil
	}

	out, ok := fn()
	if !ok {
		return errBlankMessage
	}

	if out.OpenedURL != "" {
		s.metrics.ObserveNavigation(string(browser.OpOpen))
	} else {
		s.metrics.ObserveMatch(string(out.Match.Stage))
	}
	writeJSON(w, http.StatusAccepted, sendResponse{Message: out.User, OpenedURL: out.OpenedURL})
	return nil
}

func (s *Server) handleBrowserState(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session.Session) error {
		writeJSON(w, http.StatusOK, sess.Browser.State())
		return nil
	})
}

func (s *Server) handleBrowserOp(w http.ResponseWriter, r *http.Request) {
	op := browser.Op(chi.URLParam(r, "op"))

	var req navigateRequest
	if op == browser.OpOpen {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
			return
		}
	}

	s.withSession(w, r, func(sess *session.Session) error {
		var changed bool
		switch op {
		case browser.OpOpen:
			changed = sess.Browser.Open(req.URL)
		case browser.OpBack:
			changed = sess.Browser.Back()
		case browser.OpForward:
			changed = sess.Browser.Forward()
		case browser.OpReload:
			changed = sess.Browser.Reload()
		case browser.OpLoaded:
			changed = sess.Browser.Loaded()
		default:
			writeError(w, http.StatusNotFound, "unknown_operation", "Unknown browser operation: "+string(op))
			return nil
		}

		if changed {
			s.metrics.ObserveNavigation(string(op))
		}
		writeJSON(w, http.StatusOK, browserResponse{Changed: changed, State: sess.Browser.State()})
		return nil
	})
}

// withSession runs fn under the session lock and maps lookup and
// validation failures to HTTP errors.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	id := chi.URLParam(r, "id")
	err := s.sessions.WithLock(id, fn)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", "Session not found or expired")
	case errors.Is(err, errBlankMessage):
		writeError(w, http.StatusBadRequest, "validation_error", "Message text is required")
	default:
		s.logger.Error("server: session request failed", zap.String("session", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "Unexpected error")
	}
}

func (s *Server) snapshot(sess *session.Session) sessionResponse {
	msgs, typing := sess.Chat.Snapshot()
	return sessionResponse{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
		Messages:  msgs,
		Typing:    typing,
		Browser:   sess.Browser.State(),
		Frame:     sess.Feed.Frame(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
