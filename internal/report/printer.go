// Package report renders channel tables and run summaries for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/chrisedwards/slack-cli/internal/slack"
)

// Column widths of the channel table.
const (
	idWidth      = 15
	nameWidth    = 30
	flagWidth    = 12
	membersWidth = 12
)

// Printer writes human-readable output. It holds no state besides its
// writer and styles.
type Printer struct {
	out    io.Writer
	ok     *color.Color
	failed *color.Color
	total  *color.Color
	arch   *color.Color
	priv   *color.Color
}

// NewPrinter creates a Printer writing to out. When colored is false every
// style renders plain text.
func NewPrinter(out io.Writer, colored bool) *Printer {
	p := &Printer{
		out:    out,
		ok:     color.New(color.FgGreen, color.Bold),
		failed: color.New(color.FgRed, color.Bold),
		total:  color.New(color.FgGreen, color.Bold),
		arch:   color.New(color.FgBlue, color.Bold),
		priv:   color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.ok, p.failed, p.total, p.arch, p.priv} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// YesNo renders a boolean as Yes or No.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// center pads s on both sides to width display columns, the extra column
// going to the right.
func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

func line(id, name, archived, general, private, members string) string {
	return "|" + center(id, idWidth) +
		"|" + center(name, nameWidth) +
		"|" + center(archived, flagWidth) +
		"|" + center(general, flagWidth) +
		"|" + center(private, flagWidth) +
		"|" + center(members, membersWidth)
}

// HeaderLine is the table's column header.
func HeaderLine() string {
	return line("Channel ID", "Channel Name", "Is Archived", "Is General", "Is Private", "Nº Members")
}

// RowLine is one table row for ch.
func RowLine(ch slack.Channel) string {
	return line(ch.ID, ch.Name,
		YesNo(ch.IsArchived), YesNo(ch.IsGeneral), YesNo(ch.IsPrivate),
		strconv.Itoa(ch.NumMembers))
}

// Header writes the table header.
func (p *Printer) Header() {
	fmt.Fprintln(p.out, HeaderLine())
}

// Row writes one table row.
func (p *Printer) Row(ch slack.Channel) {
	fmt.Fprintln(p.out, RowLine(ch))
}

// ListSummary writes the separator and the aggregate counts of a listing.
func (p *Printer) ListSummary(total, archived, private int) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, strings.Repeat("=", runewidth.StringWidth(HeaderLine())))
	fmt.Fprintf(p.out, "%d%s. %d%s. %d%s.\n",
		total, p.total.Sprint(" total channels"),
		archived, p.arch.Sprint(" Archived"),
		private, p.priv.Sprint(" Private"))
}

// Banner writes the title of an action run.
func (p *Printer) Banner(title string) {
	fmt.Fprintf(p.out, "==== %s ====\n", title)
}

// Progress writes the channel about to be processed.
func (p *Printer) Progress(ch slack.Channel) {
	fmt.Fprintf(p.out, "%s - %s\n",
		runewidth.FillRight(ch.ID, idWidth),
		runewidth.FillRight(ch.Name, nameWidth))
}

// Outcome writes the result marker for the last channel. detail, when set,
// is the Slack error code.
func (p *Printer) Outcome(ok bool, detail string) {
	marker := p.ok.Sprint("ok")
	if !ok {
		marker = p.failed.Sprint("failed")
	}
	if detail != "" {
		fmt.Fprintf(p.out, "\t %s... (%s)\n", marker, detail)
		return
	}
	fmt.Fprintf(p.out, "\t %s...\n", marker)
}

// RunSummary writes the success and failure counts of an action run.
func (p *Printer) RunSummary(succeeded, failed int) {
	fmt.Fprintf(p.out, "\n%s ok, %s failed.\n",
		p.ok.Sprint(strconv.Itoa(succeeded)),
		p.failed.Sprint(strconv.Itoa(failed)))
}

// AuthInfo writes the outcome of an auth.test call.
func (p *Printer) AuthInfo(info *slack.AuthInfo) {
	if !info.OK {
		fmt.Fprintf(p.out, "%s -- %s\n", p.failed.Sprint("FAILED"), info.Error)
		return
	}
	fmt.Fprintln(p.out, p.ok.Sprint("... OK ..."))
	p.field("Team", fmt.Sprintf("%s - (%s)", info.Team, info.TeamID))
	p.field("URL", info.URL)
	p.field("User", fmt.Sprintf("%s - (%s)", info.User, info.UserID))
}

func (p *Printer) field(label, value string) {
	fmt.Fprintf(p.out, "%s%s\n", p.arch.Sprintf("%-10s: ", label), value)
}
