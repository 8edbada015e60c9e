package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tptpfmt/internal/diag"
)

type palette struct {
	err, warn, path, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	if s == diag.SevError {
		return p.err
	}
	return p.warn
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем, если исходник известен, строку контекста с подчёркиванием ^~~~.
// Ожидается, что diags уже отсортированы.
func Pretty(w io.Writer, diags []diag.Diagnostic, src *Sources, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, d := range diags {
		path := displayPath(d.File, opts.PathMode, opts.BaseDir)
		sev := strings.ToUpper(d.Severity.String())
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			pal.path.Sprint(path), d.Line+1, d.ColStart+1,
			pal.severity(d.Severity).Sprint(sev), d.Code.ID(), d.Message); err != nil {
			return err
		}
		if !opts.Context {
			continue
		}
		line, ok := src.Line(d.File, int(d.Line))
		if !ok {
			continue
		}
		if err := writeContext(w, pal, d, line, opts.Width); err != nil {
			return err
		}
	}
	return nil
}

func writeContext(w io.Writer, pal palette, d diag.Diagnostic, line string, width int) error {
	num := strconv.FormatUint(uint64(d.Line)+1, 10)
	blank := strings.Repeat(" ", len(num))

	shown := line
	if width > 0 && runewidth.StringWidth(shown) > width {
		shown = runewidth.Truncate(shown, width, "...")
	}

	start := clampCol(int(d.ColStart), line)
	end := clampCol(int(d.ColEnd), line)
	if end < start {
		end = start
	}

	// отступ повторяет табы исходной строки, чтобы ^ встал под нужный символ
	var pad strings.Builder
	for _, r := range line[:start] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	under := runewidth.StringWidth(line[start:end])
	if under < 1 {
		under = 1
	}
	marker := "^" + strings.Repeat("~", under-1)

	_, err := fmt.Fprintf(w, " %s %s %s\n %s %s %s%s\n",
		pal.gutter.Sprint(num), pal.gutter.Sprint("|"), shown,
		blank, pal.gutter.Sprint("|"), pad.String(), pal.caret.Sprint(marker))
	return err
}

func clampCol(col int, line string) int {
	if col < 0 {
		return 0
	}
	if col > len(line) {
		return len(line)
	}
	return col
}
