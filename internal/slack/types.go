package slack

import (
	"fmt"
	"math"
)

// RawChannel is one channel object exactly as decoded from a Web API payload.
type RawChannel = map[string]any

// Channel represents a Slack channel fetched from channels.list.
// Known attributes are typed; everything else is kept in Extra for display.
type Channel struct {
	ID         string         // Channel ID (C...)
	Name       string         // Human-readable name
	IsArchived bool           // Archived flag
	IsGeneral  bool           // The workspace's #general channel
	IsPrivate  bool           // Private flag
	NumMembers int            // Member count
	Extra      map[string]any // Remaining payload attributes
}

// knownKeys are the payload keys mapped onto Channel fields.
var knownKeys = map[string]struct{}{
	"id":          {},
	"name":        {},
	"is_archived": {},
	"is_general":  {},
	"is_private":  {},
	"num_members": {},
}

// NewChannel builds a Channel from a raw payload. Missing or mistyped known
// keys leave the zero value.
func NewChannel(raw RawChannel) Channel {
	ch := Channel{
		ID:         StringField(raw, "id"),
		Name:       StringField(raw, "name"),
		IsArchived: BoolField(raw, "is_archived"),
		IsGeneral:  BoolField(raw, "is_general"),
		IsPrivate:  BoolField(raw, "is_private"),
		NumMembers: intField(raw, "num_members"),
	}
	for k, v := range raw {
		if _, ok := knownKeys[k]; ok {
			continue
		}
		if ch.Extra == nil {
			ch.Extra = make(map[string]any)
		}
		ch.Extra[k] = v
	}
	return ch
}

func (c Channel) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.ID)
}

// StringField returns raw[key] if it is a string, or "".
func StringField(raw RawChannel, key string) string {
	s, _ := raw[key].(string)
	return s
}

// BoolField returns raw[key] if it is a bool, or false.
func BoolField(raw RawChannel, key string) bool {
	b, _ := raw[key].(bool)
	return b
}

// intField handles both decoded JSON numbers (float64) and ints set in tests.
func intField(raw RawChannel, key string) int {
	switch v := raw[key].(type) {
	case float64:
		// float64(math.MaxInt) rounds up to 2^63, which int cannot hold.
		if v >= float64(math.MaxInt) {
			return math.MaxInt
		}
		if v <= float64(math.MinInt) {
			return math.MinInt
		}
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

// ActionResult is the outcome of a per-channel Web API action.
type ActionResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// AuthInfo is the identity reported by auth.test.
type AuthInfo struct {
	OK     bool
	Error  string
	URL    string
	Team   string
	TeamID string
	User   string
	UserID string
}
