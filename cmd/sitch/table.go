package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// renderSourceList prints a platform's followed sources. On a terminal
// it renders a rounded table; piped output gets plain "name: identity"
// lines.
func renderSourceList(stdout io.Writer, identityHeader string, rows [][2]string) {
	if !shouldColorize(stdout) {
		for _, row := range rows {
			fmt.Fprintf(stdout, "%s: %s\n", row[0], row[1])
		}
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Name", identityHeader})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	fmt.Fprintln(stdout, tw.Render())
}
