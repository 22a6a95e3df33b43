package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"sitch/internal/usecase/check"
)

const (
	ansiReset      = "\x1b[0m"
	ansiRed        = "\x1b[31m"
	ansiGreen      = "\x1b[32m"
	ansiYellow     = "\x1b[33m"
	ansiMagenta    = "\x1b[35m"
	ansiBrightBlue = "\x1b[94m"
)

// shouldColorize reports whether writer is a terminal, so colors stay
// out of piped output.
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// paint wraps s in the ANSI color when enabled.
func paint(enabled bool, color, s string) string {
	if !enabled {
		return s
	}
	return color + s + ansiReset
}

// renderReport prints a check run's outcome. Updates go to stdout;
// the no-updates fallback and the failure list go to stderr. Quiet mode
// prints one simplified line per updated item and discards failures.
func renderReport(stdout, stderr io.Writer, report *check.Report, quiet bool) {
	outTTY := shouldColorize(stdout)
	updated := report.Updated()

	if quiet {
		for _, res := range updated {
			earliest := res.Updates[0]
			fmt.Fprintf(stdout, "%s: \"%s\" %s\n",
				paint(outTTY, ansiGreen, res.Item),
				earliest.Title,
				paint(outTTY, ansiBrightBlue, earliest.Link))
		}
		return
	}

	if len(updated) > 0 {
		fmt.Fprintln(stdout, check.Preamble(report.Since))
	}
	var wrapLink func(string) string
	if outTTY {
		wrapLink = func(link string) string { return ansiBrightBlue + link + ansiReset }
	}
	for _, res := range updated {
		fmt.Fprintf(stdout, "%s - %s: %s %s\n",
			paint(outTTY, ansiGreen, res.Platform),
			paint(outTTY, ansiGreen, res.Item),
			check.Summary(res.Updates, wrapLink),
			paint(outTTY, ansiMagenta, check.ElapsedSuffix(res.Elapsed)))
	}

	if !report.AnyUpdates() {
		fmt.Fprintln(stderr, check.NoUpdatesMessage)
	}

	failures := report.Failures()
	if len(failures) == 0 {
		return
	}
	errTTY := shouldColorize(stderr)
	fmt.Fprintln(stderr, "\n"+check.ErrorsHeader)
	for _, res := range failures {
		fmt.Fprintf(stderr, "%s - %s: %v %s\n",
			paint(errTTY, ansiRed, res.Platform),
			paint(errTTY, ansiRed, res.Item),
			res.Err,
			paint(errTTY, ansiMagenta, check.ElapsedSuffix(res.Elapsed)))
	}
}
