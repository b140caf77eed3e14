// Package report renders check and sync results for the terminal.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bianoble/tokensync/internal/engine"
	"github.com/bianoble/tokensync/internal/tokens"
)

// TimeLayout matches the en-US medium date with a two-digit 12-hour clock.
const TimeLayout = "Jan 2, 2006, 03:04 PM"

// Unknown is printed in place of a timestamp that could not be read.
const Unknown = "Unknown"

// Renderer writes human-readable reports.
type Renderer struct {
	Out   io.Writer
	Color bool

	// Now anchors relative ages. Defaults to time.Now.
	Now func() time.Time

	// Location is used to display timestamps. Defaults to time.Local.
	Location *time.Location

	// Lang selects number formatting. Defaults to English.
	Lang language.Tag
}

var symbols = map[engine.Status]string{
	engine.StatusMissing:  "✗",
	engine.StatusWarning:  "⚠",
	engine.StatusOutdated: "↻",
	engine.StatusCurrent:  "✓",
}

var colors = map[engine.Status]color.Attribute{
	engine.StatusMissing:  color.FgRed,
	engine.StatusWarning:  color.FgYellow,
	engine.StatusOutdated: color.FgCyan,
	engine.StatusCurrent:  color.FgGreen,
}

// Check renders the per-file status report followed by the summary.
func (r *Renderer) Check(result *engine.CheckResult, updateCommand string) {
	fmt.Fprintln(r.Out, "Checking for design token updates...")
	fmt.Fprintln(r.Out)
	fmt.Fprintln(r.Out, "Status Report:")
	fmt.Fprintln(r.Out)

	for _, fr := range result.Files {
		r.file(fr)
	}

	if result.Clean() {
		r.paint(color.FgGreen, "All design tokens are up to date!\n")
		return
	}

	r.paint(color.FgYellow, "ACTION REQUIRED: Run the following command to update tokens:\n")
	fmt.Fprintf(r.Out, "   %s\n", updateCommand)
}

func (r *Renderer) file(fr engine.FileResult) {
	fmt.Fprintln(r.Out, fr.Name)
	r.paint(colors[fr.Status], "  %s %s\n", symbols[fr.Status], fr.Message())

	if fr.Status == engine.StatusOutdated {
		fmt.Fprintf(r.Out, "  Local:  %s\n", r.Time(fr.LocalTime))
		fmt.Fprintf(r.Out, "  Source: %s\n", r.Time(fr.SourceTime))
		if fr.Counts != nil {
			fmt.Fprintf(r.Out, "  Tokens: %s\n", r.Counts(fr.Counts))
		}
	}
	fmt.Fprintln(r.Out)
}

// Time formats a modification time with its relative age, or Unknown.
func (r *Renderer) Time(t time.Time) string {
	if t.IsZero() {
		return Unknown
	}
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return fmt.Sprintf("%s (%s)", t.In(loc).Format(TimeLayout), humanize.RelTime(t, now(), "ago", "from now"))
}

// Counts formats a token count comparison, e.g. "1,204 local, 1,210 source (+6)".
func (r *Renderer) Counts(c *tokens.Counts) string {
	p := r.printer()
	sign := ""
	if c.Diff > 0 {
		sign = "+"
	}
	return p.Sprintf("%d local, %d source (%s%d)", c.Local, c.Source, sign, c.Diff)
}

// Sync renders the actions of a sync run.
func (r *Renderer) Sync(result *engine.SyncResult, dryRun bool) {
	if dryRun {
		fmt.Fprintln(r.Out, "Dry run: no files written.")
	}

	for _, a := range result.Written {
		r.paint(color.FgGreen, "  %-9s %s\n", a.Action, a.Path)
	}
	for _, a := range result.Unchanged {
		fmt.Fprintf(r.Out, "  %-9s %s\n", a.Action, a.Path)
	}
	for _, a := range result.Skipped {
		r.paint(color.FgYellow, "  %-9s %s (%s)\n", a.Action, a.Path, a.Reason)
	}

	p := r.printer()
	fmt.Fprintln(r.Out, p.Sprintf("\n%d written, %d unchanged, %d skipped.",
		len(result.Written), len(result.Unchanged), len(result.Skipped)))
	if result.CacheWritten {
		fmt.Fprintln(r.Out, "Checksum cache updated.")
	}
}

func (r *Renderer) paint(attr color.Attribute, format string, args ...any) {
	c := color.New(attr)
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	_, _ = c.Fprintf(r.Out, format, args...)
}

func (r *Renderer) printer() *message.Printer {
	if r.Lang.IsRoot() {
		return message.NewPrinter(language.English)
	}
	return message.NewPrinter(r.Lang)
}
