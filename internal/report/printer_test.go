package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/chrisedwards/slack-cli/internal/slack"
)

func TestYesNo(t *testing.T) {
	if got := YesNo(true); got != "Yes" {
		t.Errorf("YesNo(true) = %q, want Yes", got)
	}
	if got := YesNo(false); got != "No" {
		t.Errorf("YesNo(false) = %q, want No", got)
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		want  string
	}{
		{name: "even padding", s: "ab", width: 6, want: "  ab  "},
		{name: "odd padding goes right", s: "ab", width: 5, want: " ab  "},
		{name: "exact width", s: "abc", width: 3, want: "abc"},
		{name: "overflow untouched", s: "abcdef", width: 3, want: "abcdef"},
		{name: "wide runes", s: "日本", width: 6, want: " 日本 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := center(tt.s, tt.width); got != tt.want {
				t.Errorf("center(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
			}
		})
	}
}

func TestRowLine_FixedWidth(t *testing.T) {
	ch := slack.Channel{ID: "C1", Name: "general", IsGeneral: true, NumMembers: 42}

	row := RowLine(ch)
	header := HeaderLine()

	if runewidth.StringWidth(row) != runewidth.StringWidth(header) {
		t.Errorf("row width %d != header width %d", runewidth.StringWidth(row), runewidth.StringWidth(header))
	}

	cells := strings.Split(row, "|")[1:]
	want := []string{"C1", "general", "No", "Yes", "No", "42"}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(cells), len(want))
	}
	for i, cell := range cells {
		if strings.TrimSpace(cell) != want[i] {
			t.Errorf("cell %d = %q, want %q", i, strings.TrimSpace(cell), want[i])
		}
	}
}

func TestPrinter_ListSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.ListSummary(4, 2, 1)

	out := buf.String()
	if !strings.Contains(out, strings.Repeat("=", runewidth.StringWidth(HeaderLine()))) {
		t.Error("summary should contain a separator as wide as the header")
	}
	if !strings.HasSuffix(out, "4 total channels. 2 Archived. 1 Private.\n") {
		t.Errorf("unexpected summary: %q", out)
	}
}

func TestPrinter_ActionOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Banner("Archiving Channels")
	p.Progress(slack.Channel{ID: "C1", Name: "old"})
	p.Outcome(true, "")
	p.Progress(slack.Channel{ID: "C2", Name: "general"})
	p.Outcome(false, "cant_archive_general")
	p.RunSummary(1, 1)

	want := "==== Archiving Channels ====\n" +
		"C1              - old                           \n" +
		"\t ok...\n" +
		"C2              - general                       \n" +
		"\t failed... (cant_archive_general)\n" +
		"\n1 ok, 1 failed.\n"
	if got := buf.String(); got != want {
		t.Errorf("output mismatch\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestPrinter_Colored(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.RunSummary(3, 0)

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("colored output should contain ANSI escapes: %q", buf.String())
	}
}

func TestPrinter_AuthInfo(t *testing.T) {
	tests := []struct {
		name string
		info slack.AuthInfo
		want string
	}{
		{
			name: "ok",
			info: slack.AuthInfo{OK: true, Team: "Acme", TeamID: "T1", URL: "https://acme.slack.com/", User: "jane", UserID: "U1"},
			want: "... OK ...\n" +
				"Team      : Acme - (T1)\n" +
				"URL       : https://acme.slack.com/\n" +
				"User      : jane - (U1)\n",
		},
		{
			name: "failed",
			info: slack.AuthInfo{OK: false, Error: "invalid_auth"},
			want: "FAILED -- invalid_auth\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf, false).AuthInfo(&tt.info)
			if got := buf.String(); got != tt.want {
				t.Errorf("AuthInfo() output = %q, want %q", got, tt.want)
			}
		})
	}
}
