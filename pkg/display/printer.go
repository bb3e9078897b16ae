package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/toolkit/pkg/config"
	"github.com/arthur-debert/toolkit/pkg/reconcile"
	"github.com/arthur-debert/toolkit/pkg/types"
)

const tagWidth = 10

// Printer writes events, warnings and summaries to one writer. It
// implements types.EventSink so it can be handed to the reconciler.
type Printer struct {
	w             io.Writer
	format        config.OutputFormat
	showUnchanged bool
	styles        styles
	enc           *json.Encoder
}

var _ types.EventSink = (*Printer)(nil)

// New creates a Printer for w.
func New(w io.Writer, opts Options) *Printer {
	format, color := opts.resolve(w)

	renderer := lipgloss.NewRenderer(w)
	if color {
		if renderer.ColorProfile() == termenv.Ascii {
			renderer.SetColorProfile(termenv.ANSI256)
		}
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		w:             w,
		format:        format,
		showUnchanged: opts.ShowUnchanged,
		styles:        newStyles(renderer),
		enc:           json.NewEncoder(w),
	}
}

// Format returns the resolved output format.
func (p *Printer) Format() config.OutputFormat {
	return p.format
}

// Emit prints one event. Unchanged events are only shown on request.
func (p *Printer) Emit(e types.Event) {
	if e.Action == types.ActionUnchanged && !p.showUnchanged {
		return
	}
	if p.format == config.FormatJSON {
		_ = p.enc.Encode(e)
		return
	}
	fmt.Fprintln(p.w, p.line(e))
}

func (p *Printer) line(e types.Event) string {
	tag, ok := tags[e.Action]
	if !ok {
		tag = strings.ToUpper(string(e.Action))
	}
	pad := ""
	if n := tagWidth - len(tag) - 2; n > 0 {
		pad = strings.Repeat(" ", n)
	}
	header := pad + "[" + p.styles.actions[e.Action].Render(tag) + "]"

	return header + " " + p.message(e)
}

func (p *Printer) message(e types.Event) string {
	if e.Action.IsPackageEvent() {
		return p.styles.pkg.Render(e.Package)
	}

	isDir := e.Action == types.ActionCreatedDir || e.Action == types.ActionRemovedDir ||
		e.Target == types.DirectoryAnchor().String()
	path := e.Path
	if isDir {
		path += "/"
	}

	switch e.Action {
	case types.ActionConflict, types.ActionFailed:
		msg := path
		if e.Target != "" && !isDir {
			msg += " -> " + e.Target
		}
		if e.Package != "" {
			msg += " (" + p.styles.pkg.Render(e.Package) + ")"
		}
		if e.Detail != "" {
			msg += " : " + e.Detail
		}
		return msg
	case types.ActionCreatedLink, types.ActionRelinked, types.ActionUnchanged, types.ActionRemovedLink:
		if e.Target != "" && !isDir {
			return path + p.styles.muted.Render(" -> "+e.Target)
		}
	}
	return path
}

// Warning prints a one-line diagnostic that is not tied to a path event.
func (p *Printer) Warning(msg string) {
	if p.format == config.FormatJSON {
		_ = p.enc.Encode(map[string]string{"warning": msg})
		return
	}
	fmt.Fprintln(p.w, p.styles.warning.Render("warning:")+" "+msg)
}

// Summary prints totals for a run.
func (p *Printer) Summary(res *reconcile.Result) {
	counts := map[string]int{
		"active":    len(res.Active),
		"links":     len(res.Links),
		"changes":   res.Mutations(),
		"conflicts": res.Count(types.ActionConflict),
		"failures":  res.Count(types.ActionFailed),
	}
	if p.format == config.FormatJSON {
		_ = p.enc.Encode(map[string]interface{}{"summary": counts})
		return
	}

	text := fmt.Sprintf("%d packages active, %d paths managed, %d changes",
		counts["active"], counts["links"], counts["changes"])
	if n := counts["conflicts"]; n > 0 {
		text += ", " + p.styles.actions[types.ActionConflict].Render(fmt.Sprintf("%d conflicts", n))
	}
	if n := counts["failures"]; n > 0 {
		text += ", " + p.styles.actions[types.ActionFailed].Render(fmt.Sprintf("%d failures", n))
	}
	fmt.Fprintln(p.w, text)
}

// LastBuild prints when the state was last recorded by a build.
func (p *Printer) LastBuild(t time.Time) {
	if p.format == config.FormatJSON {
		if !t.IsZero() {
			_ = p.enc.Encode(map[string]string{"last_build": t.UTC().Format(time.RFC3339)})
		}
		return
	}
	if t.IsZero() {
		fmt.Fprintln(p.w, p.styles.muted.Render("Never built"))
		return
	}
	fmt.Fprintln(p.w, p.styles.muted.Render("Last build "+humanize.Time(t)))
}

// Status prints an inspection, one path per line.
func (p *Printer) Status(insp *reconcile.Inspection) {
	if p.format == config.FormatJSON {
		for _, ps := range insp.Paths {
			_ = p.enc.Encode(ps)
		}
		return
	}

	shown := 0
	for _, ps := range insp.Paths {
		if ps.Status == reconcile.StatusOK && !p.showUnchanged {
			continue
		}
		shown++
		tag := string(ps.Status)
		pad := ""
		if len(tag) < tagWidth+2 {
			pad = strings.Repeat(" ", tagWidth+2-len(tag))
		}
		line := pad + p.styles.statuses[ps.Status].Render(tag) + " " + ps.Path
		if ps.Target != "" {
			line += p.styles.muted.Render(" -> " + ps.Target)
		}
		if ps.Package != "" {
			line += " (" + p.styles.pkg.Render(ps.Package) + ")"
		}
		if ps.Detail != "" {
			line += " : " + ps.Detail
		}
		fmt.Fprintln(p.w, line)
	}

	if insp.InSync() {
		fmt.Fprintln(p.w, p.styles.bold.Render("Everything is in sync")+
			fmt.Sprintf(" (%d paths)", len(insp.Paths)))
	} else if shown > 0 {
		fmt.Fprintf(p.w, "%d of %d paths need attention\n", len(insp.Paths)-insp.Count(reconcile.StatusOK), len(insp.Paths))
	}
}
