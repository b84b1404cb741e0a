package resolver

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojasmm/sonora/internal/catalog"
)

func newDefaultResolver(t *testing.T) (*Resolver, *catalog.Responses) {
	t.Helper()
	products, responses := catalog.Defaults()
	return New(products, responses), responses
}

func mustLookup(t *testing.T, r *catalog.Responses, key string) string {
	t.Helper()
	v, ok := r.Lookup(key)
	require.True(t, ok, "missing topic %q", key)
	return v
}

func TestResolveTopicKeys(t *testing.T) {
	res, responses := newDefaultResolver(t)

	tests := []struct {
		input string
		topic string
	}{
		{"Any good BASS heavy picks?", "bass"},
		{"best noise cancelling", "noise"},
		{"wireless gaming headset", "gaming"}, // gaming is defined before wireless
		{"Show me TWS options", "tws"},
		{"neckband please", "neckband"},
		{"earphones for the bus", "earphone"},
		{"Headphones for my dad", "headphone"},
		{"bass headphones", "bass"},
		{"I have a tight BUDGET", "budget"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := res.Match(tt.input)
			assert.Equal(t, StageTopic, m.Stage)
			assert.Equal(t, tt.topic, m.Key)
			assert.Equal(t, mustLookup(t, responses, tt.topic), m.Response)
		})
	}
}

func TestResolveCategories(t *testing.T) {
	res, responses := newDefaultResolver(t)

	tests := []struct {
		input string
		topic string
	}{
		{"something cheap", "budget"},
		{"anything for $50?", "budget"},
		{"I need something quiet for the gym", "noise"}, // noise regex precedes workout
		{"for my morning run", "workout"},
		{"long flight next week", "travel"},
		{"for recording vocals", "studio"},
		{"I play fps titles", "gaming"},
		{"my running shoes", "workout"},
		{"good balance", "noise"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := res.Match(tt.input)
			assert.Equal(t, StageCategory, m.Stage)
			assert.Equal(t, tt.topic, m.Key)
			assert.Equal(t, mustLookup(t, responses, tt.topic), res.Resolve(tt.input))
		})
	}
}

func TestResolveProductMention(t *testing.T) {
	res, _ := newDefaultResolver(t)

	m := res.Match("Tell me about the shure se846")
	assert.Equal(t, StageProduct, m.Stage)
	assert.Equal(t, "Shure SE846", m.Key)
	assert.Contains(t, m.Response, "**Shure SE846**")

	m = res.Match("what do you think of the Moondrop Aria")
	assert.Equal(t, StageProduct, m.Stage)
	assert.Contains(t, m.Response, "Moondrop Aria")
}

func TestResolveDefault(t *testing.T) {
	res, responses := newDefaultResolver(t)

	m := res.Match("hello there")
	assert.Equal(t, StageDefault, m.Stage)
	assert.Equal(t, catalog.DefaultKey, m.Key)
	assert.Equal(t, responses.Default(), m.Response)
	assert.Equal(t, responses.Default(), res.Resolve(""))
}

func TestCategorySkipsMissingTopic(t *testing.T) {
	responses, err := catalog.NewResponses([]catalog.Topic{{Key: "travel", Response: "fly"}}, "d")
	require.NoError(t, err)

	m := NewCategoryMatcher(responses, []Category{
		{Topic: "budget", Pattern: regexp.MustCompile(`cheap`)},
		{Topic: "travel", Pattern: regexp.MustCompile(`cheap|plane`)},
	})

	hit, ok := m.Match("cheap plane")
	require.True(t, ok)
	assert.Equal(t, "travel", hit.Key)
	assert.Equal(t, "fly", hit.Response)
}

type fixedMatcher struct {
	stage Stage
	hit   bool
}

func (f fixedMatcher) Stage() Stage { return f.stage }
func (f fixedMatcher) Match(string) (Match, bool) {
	return Match{Stage: f.stage, Response: string(f.stage)}, f.hit
}

func TestChainOrder(t *testing.T) {
	res := NewWithMatchers("fallback",
		fixedMatcher{stage: StageTopic, hit: false},
		fixedMatcher{stage: StageCategory, hit: true},
		fixedMatcher{stage: StageProduct, hit: true},
	)
	assert.Equal(t, "category", res.Resolve("anything"))

	empty := NewWithMatchers("fallback")
	assert.Equal(t, "fallback", empty.Resolve("anything"))
}
