// Package channels provides client-side filtering of fetched Slack channels
// and the lazy channel source built on top of it.
package channels

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chrisedwards/slack-cli/internal/slack"
)

// FilterKind names a recognized filter. The declaration order is the order
// filters are evaluated in.
type FilterKind int

const (
	FilterID FilterKind = iota
	FilterName
	FilterOnlyArchived
	FilterIsArchived
	FilterStartsWith
	FilterContains
	FilterMatches
)

var filterNames = [...]string{
	FilterID:           "id",
	FilterName:         "name",
	FilterOnlyArchived: "only_archived",
	FilterIsArchived:   "is_archived",
	FilterStartsWith:   "starts_with",
	FilterContains:     "contains",
	FilterMatches:      "matches",
}

func (k FilterKind) String() string {
	if k < 0 || int(k) >= len(filterNames) {
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
	return filterNames[k]
}

// LookupFilter returns the kind registered under name.
func LookupFilter(name string) (FilterKind, bool) {
	for k, n := range filterNames {
		if n == name {
			return FilterKind(k), true
		}
	}
	return 0, false
}

// Filter is one activated predicate and the user-supplied value it compares against.
type Filter struct {
	Kind  FilterKind
	Value any
}

// Match reports whether the raw channel passes the filter.
func (f Filter) Match(raw slack.RawChannel) bool {
	switch f.Kind {
	case FilterID:
		return slack.StringField(raw, "id") == fmt.Sprint(f.Value)
	case FilterName:
		return slack.StringField(raw, "name") == fmt.Sprint(f.Value)
	case FilterOnlyArchived:
		return slack.BoolField(raw, "is_archived")
	case FilterIsArchived:
		want, _ := f.Value.(bool)
		archived, ok := raw["is_archived"].(bool)
		return ok && archived == want
	case FilterStartsWith:
		return strings.HasPrefix(slack.StringField(raw, "name"), fmt.Sprint(f.Value))
	case FilterContains:
		return strings.Contains(slack.StringField(raw, "name"), fmt.Sprint(f.Value))
	case FilterMatches:
		return MatchPattern(fmt.Sprint(f.Value), slack.StringField(raw, "name"))
	default:
		return false
	}
}

func (f Filter) String() string {
	return fmt.Sprintf("%s=%v", f.Kind, f.Value)
}

// Options are the parameters supplied for one listing: filter names mapped to
// their values, mixed with Web API query parameters.
type Options map[string]any

// ParseFilters splits opts into the activated filters, ordered by registry
// position, and the remaining parameters to forward to the API.
//
// The archived filters need a bool; any other value type is forwarded.
func ParseFilters(opts Options) ([]Filter, Options) {
	var filters []Filter
	passthrough := Options{}

	for name, value := range opts {
		kind, ok := LookupFilter(name)
		if ok && (kind == FilterIsArchived || kind == FilterOnlyArchived) {
			_, ok = value.(bool)
		}
		if !ok {
			passthrough[name] = value
			continue
		}
		if kind == FilterOnlyArchived && value == false {
			continue
		}
		filters = append(filters, Filter{Kind: kind, Value: value})
	}

	sort.Slice(filters, func(i, j int) bool { return filters[i].Kind < filters[j].Kind })
	return filters, passthrough
}

// MatchAll reports whether raw passes every filter, stopping at the first miss.
func MatchAll(filters []Filter, raw slack.RawChannel) bool {
	for _, f := range filters {
		if !f.Match(raw) {
			return false
		}
	}
	return true
}

// Compact drops unset options: nil, empty strings, false and zero numbers.
// Only values the user explicitly set survive.
func Compact(opts Options) Options {
	out := Options{}
	for k, v := range opts {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			if val == "" {
				continue
			}
		case bool:
			if !val {
				continue
			}
		case int:
			if val == 0 {
				continue
			}
		}
		out[k] = v
	}
	return out
}

// MatchAny checks if a value matches any pattern in a list.
// Returns true if any pattern matches, false for empty pattern list.
// Short-circuits on first match.
func MatchAny(patterns []string, value string) bool {
	for _, pattern := range patterns {
		if MatchPattern(pattern, value) {
			return true
		}
	}
	return false
}

// MatchPattern matches a value against a glob pattern.
// Supports glob patterns (* matches any sequence, ? matches single character).
// Matching is case-insensitive. Returns false for invalid patterns.
func MatchPattern(pattern, value string) bool {
	matched, err := filepath.Match(pattern, value)
	if err != nil {
		return false
	}
	if matched {
		return true
	}
	matched, _ = filepath.Match(strings.ToLower(pattern), strings.ToLower(value))
	return matched
}
