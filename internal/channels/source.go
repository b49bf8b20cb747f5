package channels

import (
	"context"
	"fmt"
	"iter"
	"strconv"

	"github.com/chrisedwards/slack-cli/internal/slack"
)

// Lister is the listing half of the remote channel service.
type Lister interface {
	ListChannels(ctx context.Context, params map[string]string) ([]slack.RawChannel, error)
}

// Source fetches channels from a Lister and filters them on consumption.
type Source struct {
	lister  Lister
	exclude []string
}

// NewSource creates a Source backed by lister.
func NewSource(lister Lister) *Source {
	return &Source{lister: lister}
}

// WithExclude returns a Source that also drops channels whose name matches
// any of the glob patterns.
func (s *Source) WithExclude(patterns []string) *Source {
	return &Source{lister: s.lister, exclude: patterns}
}

// Fetch issues one listing call, forwarding every option that is not a
// recognized filter, and returns the filtered channels as a single-use
// Sequence. A failed listing aborts with an error wrapping
// slack.ErrRequestFailed.
func (s *Source) Fetch(ctx context.Context, opts Options) (*Sequence, error) {
	filters, passthrough := ParseFilters(opts)

	raw, err := s.lister.ListChannels(ctx, queryParams(passthrough))
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}

	return &Sequence{raw: raw, filters: filters, exclude: s.exclude}, nil
}

// queryParams renders forwarded options the way the Web API expects them.
func queryParams(opts Options) map[string]string {
	params := make(map[string]string, len(opts))
	for k, v := range opts {
		switch val := v.(type) {
		case string:
			params[k] = val
		case bool:
			params[k] = strconv.FormatBool(val)
		case int:
			params[k] = strconv.Itoa(val)
		default:
			params[k] = fmt.Sprint(val)
		}
	}
	return params
}

// Sequence is the lazily filtered result of one Fetch. It can be consumed
// once; later iterations yield nothing.
type Sequence struct {
	raw      []slack.RawChannel
	filters  []Filter
	exclude  []string
	consumed bool
}

// Filters returns the filters applied during iteration.
func (s *Sequence) Filters() []Filter {
	return s.filters
}

// All yields each channel that passes every filter, filtering as the caller
// pulls values.
func (s *Sequence) All() iter.Seq[slack.Channel] {
	return func(yield func(slack.Channel) bool) {
		if s.consumed {
			return
		}
		s.consumed = true

		for _, raw := range s.raw {
			if !MatchAll(s.filters, raw) {
				continue
			}
			if len(s.exclude) > 0 && MatchAny(s.exclude, slack.StringField(raw, "name")) {
				continue
			}
			if !yield(slack.NewChannel(raw)) {
				return
			}
		}
	}
}

// Consumed reports whether the sequence has already been iterated.
func (s *Sequence) Consumed() bool {
	return s.consumed
}
