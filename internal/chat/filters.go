package chat

import (
	"fmt"
	"strings"
)

// MaxBudget is the top of the budget slider; at or above it there is no cap.
const MaxBudget = 500

// Filters mirrors the page's filter panel. Empty fields mean "any".
type Filters struct {
	Type         string `json:"type"`         // "all", "Headphone", "TWS", ...
	Connectivity string `json:"connectivity"` // "all", "wireless", "wired"
	Budget       int    `json:"budget"`       // dollars; <= 0 or >= MaxBudget means no cap
	UseCase      string `json:"use_case"`     // "general" means any
	Brand        string `json:"brand"`        // "all" means any
}

// Query renders the filters as a chat message, e.g.
// "I'm looking for wireless TWS headphones under $150 for gaming from Sony".
func (f Filters) Query() string {
	kind := anyOf(f.Type, "all")
	if kind == "" {
		kind = "any type"
	}
	connect := anyOf(f.Connectivity, "all")

	var b strings.Builder
	b.WriteString("I'm looking for ")
	if connect != "" {
		b.WriteString(connect + " ")
	}
	b.WriteString(kind + " headphones")

	if f.Budget > 0 && f.Budget < MaxBudget {
		fmt.Fprintf(&b, " under $%d", f.Budget)
	}
	if useCase := anyOf(f.UseCase, "general"); useCase != "" {
		b.WriteString(" for " + useCase)
	}
	if brand := anyOf(f.Brand, "all"); brand != "" {
		b.WriteString(" from " + brand)
	}
	return b.String()
}

// anyOf returns the trimmed value, or "" when it is blank or the wildcard.
func anyOf(v, wildcard string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, wildcard) {
		return ""
	}
	return v
}
