// ABOUTME: Output helpers shared by CLI commands.
// ABOUTME: Covers ID shortening, padding, truncation and JSON printing.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

var (
	faint  = color.New(color.Faint)
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// timeNow is the CLI clock.
var timeNow = time.Now

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// kv prints an aligned "label  value" line.
func kv(w io.Writer, label string, format string, args ...any) {
	fmt.Fprintf(w, "  %s %s\n", faint.Sprint(padRight(label, 18)), fmt.Sprintf(format, args...))
}
