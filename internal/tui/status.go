package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

// StatusPrinter writes one line per file and a closing summary.
// Lines are colored only when styled is set.
type StatusPrinter struct {
	out    io.Writer
	styled bool
}

// NewStatusPrinter creates a StatusPrinter writing to out.
func NewStatusPrinter(out io.Writer, styled bool) *StatusPrinter {
	return &StatusPrinter{out: out, styled: styled}
}

func (p *StatusPrinter) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// Result prints the outcome for one file.
func (p *StatusPrinter) Result(r htmlsign.SignResult) {
	switch {
	case r.Failed():
		fmt.Fprintf(p.out, "%s %s: %v\n", p.render(ErrorStyle, SymbolCross), r.Source, r.Err)
	case r.Skipped:
		fmt.Fprintf(p.out, "%s %s %s\n", p.render(WarningStyle, SymbolSkip), r.Source,
			p.render(MutedStyle, "("+r.SkipReason+")"))
	default:
		fmt.Fprintf(p.out, "%s %s\n", p.render(SuccessStyle, SymbolCheck), r.Source)
	}
}

// DryRun prints a file that would be signed.
func (p *StatusPrinter) DryRun(path string) {
	fmt.Fprintf(p.out, "%s %s\n", p.render(MutedStyle, SymbolArrowRight), path)
}

// Summary prints the batch counters.
func (p *StatusPrinter) Summary(b htmlsign.BatchResult) {
	if b.DryRun {
		fmt.Fprintf(p.out, "%s %d file(s) would be signed\n", p.render(TitleStyle, "Dry run:"), len(b.Files))
		return
	}

	line := fmt.Sprintf("%d signed, %d skipped, %d failed", b.Signed, b.Skipped, b.Failed)
	style := SuccessStyle
	if b.Failed > 0 {
		style = ErrorStyle
	}
	fmt.Fprintf(p.out, "%s %s in %v\n", p.render(TitleStyle, "Done:"), p.render(style, line), b.Duration.Round(time.Millisecond))
}
