package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojasmm/sonora/internal/clock"
)

type recordingView struct {
	pages   []string
	loading []bool
}

func (v *recordingView) ShowPage(url string)     { v.pages = append(v.pages, url) }
func (v *recordingView) SetLoading(loading bool) { v.loading = append(v.loading, loading) }

func newTestSession() (*Session, *recordingView, *clock.Fake) {
	view := &recordingView{}
	fake := clock.NewFake()
	return NewSession(view, fake, DefaultLoadTimeout), view, fake
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"example.com", "https://example.com"},
		{" example.com/x ", "https://example.com/x"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"httpbin.org", "httpbin.org"}, // already starts with "http"
		{"HTTPS://x.io", "HTTPS://x.io"},
		{"Http://x.io/a", "Http://x.io/a"},
		{"htt", "https://htt"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestInitialState(t *testing.T) {
	s, _, _ := newTestSession()
	st := s.State()

	assert.Equal(t, -1, st.Index)
	assert.Empty(t, st.History)
	assert.NotNil(t, st.History)
	assert.Empty(t, st.URL)
	assert.False(t, st.CanBack)
	assert.False(t, st.CanForward)

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestOpenBackForward(t *testing.T) {
	s, view, _ := newTestSession()

	require.True(t, s.Open("https://a.example"))
	require.True(t, s.Open("https://b.example"))

	require.True(t, s.Back())
	cur, _ := s.Current()
	assert.Equal(t, "https://a.example", cur)

	require.True(t, s.Forward())
	cur, _ = s.Current()
	assert.Equal(t, "https://b.example", cur)

	assert.Equal(t, []string{
		"https://a.example", "https://b.example", "https://a.example", "https://b.example",
	}, view.pages)
}

func TestOpenTruncatesForwardHistory(t *testing.T) {
	s, _, _ := newTestSession()
	s.Open("A")
	s.Open("B")
	s.Open("C")
	s.Back()
	s.Back()
	require.Equal(t, 0, s.State().Index)

	s.Open("D")
	st := s.State()
	assert.Equal(t, []string{"https://A", "https://D"}, st.History)
	assert.Equal(t, 1, st.Index)
	assert.False(t, st.CanForward)
	assert.True(t, st.CanBack)
}

func TestBoundariesAreNoOps(t *testing.T) {
	s, view, _ := newTestSession()

	assert.False(t, s.Back())
	assert.False(t, s.Forward())
	assert.False(t, s.Reload())
	assert.False(t, s.Open(""))
	assert.Empty(t, view.pages)

	s.Open("https://only.example")
	assert.False(t, s.Back())
	assert.False(t, s.Forward())
	assert.Equal(t, 0, s.State().Index)
	assert.Len(t, s.State().History, 1)
}

func TestBackForwardDoNotChangeHistory(t *testing.T) {
	s, _, _ := newTestSession()
	s.Open("https://a.example")
	s.Open("https://b.example")
	s.Open("https://c.example")
	before := s.State().History

	s.Back()
	s.Back()
	s.Forward()
	s.Reload()

	assert.Equal(t, before, s.State().History)
	assert.Equal(t, 1, s.State().Index)
}

func TestReloadReissuesCurrent(t *testing.T) {
	s, view, _ := newTestSession()
	s.Open("https://a.example")
	s.Loaded()

	require.True(t, s.Reload())
	assert.Equal(t, []string{"https://a.example", "https://a.example"}, view.pages)
	assert.False(t, s.State().Loading, "reload shows no indicator")
}

func TestLoadedClearsIndicator(t *testing.T) {
	s, view, fake := newTestSession()
	s.Open("https://a.example")
	assert.True(t, s.State().Loading)

	assert.True(t, s.Loaded())
	assert.False(t, s.State().Loading)
	assert.False(t, s.Loaded(), "second signal is a no-op")

	// the fallback timer loses the race harmlessly
	fake.Advance(DefaultLoadTimeout)
	assert.Equal(t, []bool{true, false}, view.loading)
}

func TestFallbackTimeoutClearsIndicator(t *testing.T) {
	s, view, fake := newTestSession()
	s.Open("https://blocked.example")

	fake.Advance(DefaultLoadTimeout - time.Millisecond)
	assert.True(t, s.State().Loading)

	fake.Advance(time.Millisecond)
	assert.False(t, s.State().Loading)
	assert.Equal(t, []bool{true, false}, view.loading)
	assert.Zero(t, fake.Pending())
}

func TestStaleFallbackKeepsNewerIndicator(t *testing.T) {
	s, _, fake := newTestSession()
	s.Open("https://a.example")
	fake.Advance(4 * time.Second)
	s.Open("https://b.example")

	fake.Advance(time.Second)
	assert.True(t, s.State().Loading, "first open's timer must not clear the second indicator")

	fake.Advance(4 * time.Second)
	assert.False(t, s.State().Loading)
}

func TestBackShowsNoIndicator(t *testing.T) {
	s, _, _ := newTestSession()
	s.Open("https://a.example")
	s.Open("https://b.example")
	s.Loaded()

	s.Back()
	assert.False(t, s.State().Loading)
}

func TestNilViewAndTimeoutDefaults(t *testing.T) {
	fake := clock.NewFake()
	s := NewSession(nil, fake, 0)
	require.True(t, s.Open("example.com"))

	fake.Advance(DefaultLoadTimeout)
	assert.False(t, s.State().Loading)
	assert.Equal(t, "https://example.com", s.State().URL)
}
