// Package resolver maps free-text chat input to canned responses.
//
// Resolution runs an ordered chain of matchers and the first hit wins:
//
//  1. topic keys, as literal substrings of the lower-cased input, in table order
//  2. category regexes (budget, noise, workout, travel, studio, gaming)
//  3. catalog product names, case-insensitive substring
//  4. the default response
//
// Matching is plain substring matching, not tokenized: "running" hits the
// workout category and "balance" hits the noise one.
package resolver

import (
	"strings"

	"github.com/lojasmm/sonora/internal/catalog"
)

type Resolver struct {
	matchers []Matcher
	fallback string
}

// New builds the standard topic -> category -> product chain.
func New(products *catalog.Catalog, responses *catalog.Responses) *Resolver {
	return NewWithMatchers(responses.Default(),
		NewTopicMatcher(responses),
		NewCategoryMatcher(responses, DefaultCategories()),
		NewProductMatcher(products),
	)
}

// NewWithMatchers builds a resolver from an explicit chain.
func NewWithMatchers(fallback string, matchers ...Matcher) *Resolver {
	return &Resolver{matchers: matchers, fallback: fallback}
}

// Resolve returns the response text for input. It never fails.
func (r *Resolver) Resolve(input string) string {
	return r.Match(input).Response
}

// Match is Resolve plus the stage and key that decided the answer.
func (r *Resolver) Match(input string) Match {
	lower := strings.ToLower(input)
	for _, m := range r.matchers {
		if hit, ok := m.Match(lower); ok {
			return hit
		}
	}
	return Match{Stage: StageDefault, Key: catalog.DefaultKey, Response: r.fallback}
}
