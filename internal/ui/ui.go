// Package ui holds terminal styling for the nodeedit command.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Styles
var (
	Brand  = color.New(color.FgHiCyan, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Banner prints the command banner to w.
func Banner(w io.Writer, subtitle string) {
	fmt.Fprintf(w, "%s %s\n\n", Brand.Sprint("nodeedit"), Subtle.Sprint(subtitle))
}

// Fields prints aligned key/value pairs. Pairs with an odd trailing key are
// printed with an empty value.
func Fields(w io.Writer, kv ...string) {
	width := 0
	for i := 0; i < len(kv); i += 2 {
		width = max(width, len(kv[i]))
	}
	for i := 0; i < len(kv); i += 2 {
		value := ""
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		fmt.Fprintf(w, "  %s%s  %s\n", kv[i]+":", strings.Repeat(" ", width-len(kv[i])), value)
	}
}

// StatusIcon returns a check or cross.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}
