package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiltersQuery(t *testing.T) {
	tests := []struct {
		name string
		f    Filters
		want string
	}{
		{"zero value", Filters{}, "I'm looking for any type headphones"},
		{"all wildcards", Filters{Type: "all", Connectivity: "all", Budget: 500, UseCase: "general", Brand: "all"},
			"I'm looking for any type headphones"},
		{"type only", Filters{Type: "Neckband"}, "I'm looking for Neckband headphones"},
		{"connectivity only", Filters{Connectivity: "wired"}, "I'm looking for wired any type headphones"},
		{"budget", Filters{Budget: 99}, "I'm looking for any type headphones under $99"},
		{"budget above cap", Filters{Budget: 800}, "I'm looking for any type headphones"},
		{"everything", Filters{Type: "TWS", Connectivity: "wireless", Budget: 150, UseCase: "travel", Brand: "Sony"},
			"I'm looking for wireless TWS headphones under $150 for travel from Sony"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.Query())
		})
	}
}
