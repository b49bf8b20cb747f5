package channels

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chrisedwards/slack-cli/internal/slack"
)

func TestFilterMatch(t *testing.T) {
	raw := slack.RawChannel{
		"id":          "C123",
		"name":        "eng-backend",
		"is_archived": false,
	}
	archived := slack.RawChannel{
		"id":          "C456",
		"name":        "old-stuff",
		"is_archived": true,
	}

	tests := []struct {
		name   string
		filter Filter
		raw    slack.RawChannel
		want   bool
	}{
		{name: "id match", filter: Filter{Kind: FilterID, Value: "C123"}, raw: raw, want: true},
		{name: "id mismatch", filter: Filter{Kind: FilterID, Value: "C999"}, raw: raw, want: false},
		{name: "name exact", filter: Filter{Kind: FilterName, Value: "eng-backend"}, raw: raw, want: true},
		{name: "name is not prefix", filter: Filter{Kind: FilterName, Value: "eng"}, raw: raw, want: false},
		{name: "starts_with", filter: Filter{Kind: FilterStartsWith, Value: "eng-"}, raw: raw, want: true},
		{name: "starts_with miss", filter: Filter{Kind: FilterStartsWith, Value: "ops-"}, raw: raw, want: false},
		{name: "contains", filter: Filter{Kind: FilterContains, Value: "back"}, raw: raw, want: true},
		{name: "contains miss", filter: Filter{Kind: FilterContains, Value: "front"}, raw: raw, want: false},
		{name: "is_archived false on active", filter: Filter{Kind: FilterIsArchived, Value: false}, raw: raw, want: true},
		{name: "is_archived true on active", filter: Filter{Kind: FilterIsArchived, Value: true}, raw: raw, want: false},
		{name: "is_archived true on archived", filter: Filter{Kind: FilterIsArchived, Value: true}, raw: archived, want: true},
		{name: "is_archived with missing flag", filter: Filter{Kind: FilterIsArchived, Value: false}, raw: slack.RawChannel{"name": "x"}, want: false},
		{name: "only_archived on archived", filter: Filter{Kind: FilterOnlyArchived, Value: true}, raw: archived, want: true},
		{name: "only_archived on active", filter: Filter{Kind: FilterOnlyArchived, Value: true}, raw: raw, want: false},
		{name: "matches glob case-insensitive", filter: Filter{Kind: FilterMatches, Value: "ENG-*"}, raw: raw, want: true},
		{name: "matches glob miss", filter: Filter{Kind: FilterMatches, Value: "*-frontend"}, raw: raw, want: false},
		{name: "unknown kind", filter: Filter{Kind: FilterKind(99), Value: "x"}, raw: raw, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(tt.raw); got != tt.want {
				t.Errorf("%v.Match() = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestLookupFilter(t *testing.T) {
	for _, name := range []string{"id", "name", "only_archived", "is_archived", "starts_with", "contains", "matches"} {
		kind, ok := LookupFilter(name)
		if !ok {
			t.Errorf("LookupFilter(%q) not found", name)
			continue
		}
		if kind.String() != name {
			t.Errorf("LookupFilter(%q).String() = %q", name, kind.String())
		}
	}

	for _, name := range []string{"exclude_archived", "exclude_members", ""} {
		if _, ok := LookupFilter(name); ok {
			t.Errorf("LookupFilter(%q) should not be a filter", name)
		}
	}
}

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name            string
		opts            Options
		wantFilters     []Filter
		wantPassthrough Options
	}{
		{
			name:            "empty",
			opts:            nil,
			wantFilters:     nil,
			wantPassthrough: Options{},
		},
		{
			name:            "non-filters forwarded",
			opts:            Options{"exclude_members": true, "exclude_archived": true},
			wantFilters:     nil,
			wantPassthrough: Options{"exclude_members": true, "exclude_archived": true},
		},
		{
			name: "filters in registry order",
			opts: Options{"starts_with": "test-", "is_archived": false, "id": "C1"},
			wantFilters: []Filter{
				{Kind: FilterID, Value: "C1"},
				{Kind: FilterIsArchived, Value: false},
				{Kind: FilterStartsWith, Value: "test-"},
			},
			wantPassthrough: Options{},
		},
		{
			name:            "non-bool archived value forwarded",
			opts:            Options{"is_archived": "yes"},
			wantFilters:     nil,
			wantPassthrough: Options{"is_archived": "yes"},
		},
		{
			name:            "only_archived false activates nothing",
			opts:            Options{"only_archived": false},
			wantFilters:     nil,
			wantPassthrough: Options{},
		},
		{
			name:            "mixed",
			opts:            Options{"contains": "ops", "exclude_members": true},
			wantFilters:     []Filter{{Kind: FilterContains, Value: "ops"}},
			wantPassthrough: Options{"exclude_members": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters, passthrough := ParseFilters(tt.opts)
			if diff := cmp.Diff(tt.wantFilters, filters); diff != "" {
				t.Errorf("filters mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantPassthrough, passthrough); diff != "" {
				t.Errorf("passthrough mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchAll_ShortCircuits(t *testing.T) {
	raw := slack.RawChannel{"id": "C1", "name": "test-channel-1", "is_archived": false}

	if !MatchAll(nil, raw) {
		t.Error("MatchAll(nil) should accept every record")
	}

	filters := []Filter{
		{Kind: FilterStartsWith, Value: "test-"},
		{Kind: FilterIsArchived, Value: false},
	}
	if !MatchAll(filters, raw) {
		t.Error("MatchAll() should accept when every filter matches")
	}

	filters = append(filters, Filter{Kind: FilterName, Value: "other"})
	if MatchAll(filters, raw) {
		t.Error("MatchAll() should reject when one filter misses")
	}
}

func TestCompact(t *testing.T) {
	opts := Options{
		"id":               "",
		"name":             "general",
		"exclude_archived": false,
		"exclude_members":  true,
		"starts_with":      nil,
		"limit":            0,
		"is_archived":      true,
	}

	want := Options{
		"name":            "general",
		"exclude_members": true,
		"is_archived":     true,
	}
	if diff := cmp.Diff(want, Compact(opts)); diff != "" {
		t.Errorf("Compact() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchAny(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		value    string
		want     bool
	}{
		{name: "nil patterns returns false", patterns: nil, value: "anything", want: false},
		{name: "single pattern match", patterns: []string{"eng-*"}, value: "eng-backend", want: true},
		{name: "single pattern no match", patterns: []string{"eng-*"}, value: "marketing", want: false},
		{name: "multiple patterns last matches", patterns: []string{"eng-*", "ai-*", "marketing"}, value: "marketing", want: true},
		{name: "case-insensitive match", patterns: []string{"ENG-*"}, value: "eng-backend", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchAny(tt.patterns, tt.value); got != tt.want {
				t.Errorf("MatchAny(%v, %q) = %v, want %v", tt.patterns, tt.value, got, tt.want)
			}
		})
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		value   string
		want    bool
	}{
		{name: "exact match case-insensitive", pattern: "Engineering", value: "engineering", want: true},
		{name: "wildcard prefix", pattern: "*-deploys", value: "staging-deploys", want: true},
		{name: "single char wildcard", pattern: "team-?", value: "team-a", want: true},
		{name: "invalid pattern - returns false", pattern: "[", value: "[", want: false},
		{name: "character class no match", pattern: "team-[ab]", value: "team-c", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchPattern(tt.pattern, tt.value); got != tt.want {
				t.Errorf("MatchPattern(%q, %q) = %v, want %v", tt.pattern, tt.value, got, tt.want)
			}
		})
	}
}
