package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lojasmm/sonora/internal/catalog"
)

// Stage identifies which matcher produced a response.
type Stage string

const (
	StageTopic    Stage = "topic"
	StageCategory Stage = "category"
	StageProduct  Stage = "product"
	StageDefault  Stage = "default"
)

// Match is the outcome of resolving one input.
type Match struct {
	Stage    Stage
	Key      string // topic key, category topic, or product name; "default" for the fallback
	Response string
}

// Matcher is one precedence stage. Match receives the lower-cased input and
// reports the first hit of its own ordered rules.
type Matcher interface {
	Stage() Stage
	Match(lower string) (Match, bool)
}

// --- topic keys ---

// TopicMatcher returns the first topic whose key is a literal substring of
// the input, in table order.
type TopicMatcher struct {
	topics []catalog.Topic
}

func NewTopicMatcher(r *catalog.Responses) *TopicMatcher {
	return &TopicMatcher{topics: r.Topics()}
}

func (m *TopicMatcher) Stage() Stage { return StageTopic }

func (m *TopicMatcher) Match(lower string) (Match, bool) {
	for _, t := range m.topics {
		if strings.Contains(lower, t.Key) {
			return Match{Stage: StageTopic, Key: t.Key, Response: t.Response}, true
		}
	}
	return Match{}, false
}

// --- category regexes ---

// Category maps a cluster of phrasings to a topic's response.
type Category struct {
	Topic   string
	Pattern *regexp.Regexp
}

// DefaultCategories is the fixed fallback order used when no topic key is
// present in the input.
func DefaultCategories() []Category {
	return []Category{
		{Topic: "budget", Pattern: regexp.MustCompile(`(?i)\$\d+|under|budget|cheap|affordable`)},
		{Topic: "noise", Pattern: regexp.MustCompile(`(?i)cancel|quiet|silent|anc`)},
		{Topic: "workout", Pattern: regexp.MustCompile(`(?i)run|gym|sport|exercise|sweat`)},
		{Topic: "travel", Pattern: regexp.MustCompile(`(?i)plane|flight|commut`)},
		{Topic: "studio", Pattern: regexp.MustCompile(`(?i)mix|master|monitor|record|produc`)},
		{Topic: "gaming", Pattern: regexp.MustCompile(`(?i)game|fps|spatial`)},
	}
}

type CategoryMatcher struct {
	categories []Category
	responses  *catalog.Responses
}

// NewCategoryMatcher binds categories to a response table. A category whose
// topic is missing from the table never matches.
func NewCategoryMatcher(r *catalog.Responses, categories []Category) *CategoryMatcher {
	return &CategoryMatcher{categories: categories, responses: r}
}

func (m *CategoryMatcher) Stage() Stage { return StageCategory }

func (m *CategoryMatcher) Match(lower string) (Match, bool) {
	for _, c := range m.categories {
		if !c.Pattern.MatchString(lower) {
			continue
		}
		resp, ok := m.responses.Lookup(c.Topic)
		if !ok {
			continue
		}
		return Match{Stage: StageCategory, Key: c.Topic, Response: resp}, true
	}
	return Match{}, false
}

// --- product mentions ---

// ProductMatcher answers with a pointer to the first catalog product whose
// name appears in the input, ignoring case.
type ProductMatcher struct {
	products []catalog.Product
}

func NewProductMatcher(c *catalog.Catalog) *ProductMatcher {
	return &ProductMatcher{products: c.Products()}
}

func (m *ProductMatcher) Stage() Stage { return StageProduct }

func (m *ProductMatcher) Match(lower string) (Match, bool) {
	for _, p := range m.products {
		if strings.Contains(lower, strings.ToLower(p.Name)) {
			return Match{Stage: StageProduct, Key: p.Name, Response: productPitch(p.Name)}, true
		}
	}
	return Match{}, false
}

func productPitch(name string) string {
	return fmt.Sprintf("Here's the **%s** - a great choice! Click the link to browse it in the panel. "+
		"I can compare it with others if you'd like.", name)
}

var (
	_ Matcher = (*TopicMatcher)(nil)
	_ Matcher = (*CategoryMatcher)(nil)
	_ Matcher = (*ProductMatcher)(nil)
)
