// Package action runs list, archive and delete passes over a channel
// sequence and collects the outcome of each run.
package action

import (
	"errors"
	"fmt"

	"github.com/chrisedwards/slack-cli/internal/slack"
)

// Mode selects what a run does with each channel.
type Mode int

const (
	ModeList Mode = iota
	ModeArchive
	ModeDelete
)

// ErrUsage is returned when both --delete and --archive are requested.
var ErrUsage = errors.New("you can't set both --delete and --archive")

// ModeFromFlags picks the run mode from the command flags.
func ModeFromFlags(deleteFlag, archiveFlag bool) (Mode, error) {
	switch {
	case deleteFlag && archiveFlag:
		return ModeList, ErrUsage
	case deleteFlag:
		return ModeDelete, nil
	case archiveFlag:
		return ModeArchive, nil
	default:
		return ModeList, nil
	}
}

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeArchive:
		return "archive"
	case ModeDelete:
		return "delete"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Method is the Web API method invoked per channel, empty for ModeList.
func (m Mode) Method() string {
	switch m {
	case ModeArchive:
		return slack.MethodChannelsArchive
	case ModeDelete:
		return slack.MethodChannelsDelete
	default:
		return ""
	}
}

// Title is the banner printed at the start of an action run.
func (m Mode) Title() string {
	switch m {
	case ModeArchive:
		return "Archiving Channels"
	case ModeDelete:
		return "Deleting Channels"
	default:
		return "Listing Channels"
	}
}

// Destructive reports whether the mode changes remote state.
func (m Mode) Destructive() bool {
	return m == ModeArchive || m == ModeDelete
}
