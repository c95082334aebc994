// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package help renders the CLI's usage text in a color-coded,
// tabwriter-aligned layout.
package help

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// System renders help text with optional ANSI coloring.
type System struct {
	colors map[string]*color.Color
}

// NewSystem creates a help system. Colors are globally disabled when
// noColor is set, matching fatih/color's package-level switch.
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}
	return &System{
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"item":    color.New(color.FgCyan),
			"example": color.New(color.FgMagenta),
			"warning": color.New(color.FgYellow),
			"negative": color.New(color.FgRed),
		},
	}
}

// ShowGeneralHelp prints the top-level usage summary.
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("redact-check - detect and repair improperly redacted PDFs")
	fmt.Println(strings.Repeat("=", 58))
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  redact-check analyze --file <path.pdf> [options]")
	fmt.Println("  redact-check clean   --file <path.pdf> [options]")
	fmt.Println()

	h.colors["header"].Println("COMMANDS:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  analyze\tProduce a risk audit for each page of a PDF")
	fmt.Fprintln(w, "  clean\tStrip overlay/annotation redaction artifacts and rewrite the PDF")
	w.Flush()
	fmt.Println()

	h.colors["header"].Println("COMMON OPTIONS:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --file\t<path>\tPath to the input PDF (required)")
	fmt.Fprintln(w, "  --output\t<path>\tPath to write output (default: stdout for analyze, <file>.cleaned.pdf for clean)")
	fmt.Fprintln(w, "  --format\t<json|yaml|text|sarif>\tAudit log output format for analyze (default: json)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --audit\t<path>\tPath to a prior audit JSON/YAML to pass to clean advisorily")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --debug\t\tEnable structured per-stage debug logging")
	fmt.Fprintln(w, "  --verbose\t\tInclude bounding-box samples in text output (analyze only)")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	w.Flush()

	fmt.Println()
	h.colors["header"].Println("EXAMPLES:")
	h.colors["example"].Println("  redact-check analyze --file claim.pdf")
	h.colors["example"].Println("  redact-check analyze --file claim.pdf --format yaml --output audit.yaml")
	h.colors["example"].Println("  redact-check clean --file claim.pdf --audit audit.json --output claim.clean.pdf")

	fmt.Println()
	h.colors["header"].Println("CONFIGURATION:")
	fmt.Println("  Default config: ~/.redact-check/config.yaml")
	fmt.Println("  Project config: redact-check.yaml or .redact-check.yaml (in current directory)")
	fmt.Println("  Environment: REDACTCHECK_CONFIG_DIR - Override config directory")
}

// ShowCommandHelp prints usage for one subcommand. For an unrecognized
// command it prints an error line and a pointer to --help, and returns
// false.
func (h *System) ShowCommandHelp(cmd string) bool {
	switch cmd {
	case "analyze":
		h.colors["title"].Println("redact-check analyze")
		fmt.Println()
		fmt.Println("Decodes a PDF, reconstructs overlay rectangles, counts redaction")
		fmt.Println("annotations and text glyphs, and emits a per-page risk audit.")
		fmt.Println()
		h.colors["header"].Println("OPTIONS:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  --file\t<path>\tPath to the input PDF (required)")
		fmt.Fprintln(w, "  --output\t<path>\tWrite the audit log here instead of stdout")
		fmt.Fprintln(w, "  --format\t<json|yaml|text|sarif>\tAudit log encoding (default: json)")
		fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
		fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
		fmt.Fprintln(w, "  --debug\t\tEnable structured per-stage debug logging")
		fmt.Fprintln(w, "  --verbose\t\tInclude bounding-box samples in text output")
		w.Flush()
		return true
	case "clean":
		h.colors["title"].Println("redact-check clean")
		fmt.Println()
		fmt.Println("Reopens a fresh parse of the PDF, strips redaction annotations and")
		fmt.Println("black-rectangle overlay idioms from content streams, and writes a")
		fmt.Println("repaired PDF with the formerly hidden content visible.")
		fmt.Println()
		h.colors["header"].Println("OPTIONS:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  --file\t<path>\tPath to the input PDF (required)")
		fmt.Fprintln(w, "  --output\t<path>\tPath to the cleaned PDF (default: <file>.cleaned.pdf)")
		fmt.Fprintln(w, "  --audit\t<path>\tPrior audit JSON/YAML, used advisorily for removed_redact_annots_estimate")
		fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
		fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
		fmt.Fprintln(w, "  --debug\t\tEnable structured per-stage debug logging")
		w.Flush()
		return true
	default:
		h.colors["negative"].Printf("Error: unknown command %q\n", cmd)
		fmt.Println("Use 'redact-check --help' to see usage.")
		return false
	}
}
