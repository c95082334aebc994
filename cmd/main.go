// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Command redact-check detects and repairs improperly redacted PDFs. It
// exposes two subcommands: analyze, which emits a per-page risk audit,
// and clean, which strips overlay and annotation redaction artifacts and
// rewrites the PDF.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/awslabs/redact-check/internal/analyzer"
	"github.com/awslabs/redact-check/internal/audit"
	"github.com/awslabs/redact-check/internal/cleaner"
	"github.com/awslabs/redact-check/internal/config"
	"github.com/awslabs/redact-check/internal/formatters"
	"github.com/awslabs/redact-check/internal/help"
	"github.com/awslabs/redact-check/internal/observability"
	"github.com/awslabs/redact-check/internal/pdferr"
	"github.com/awslabs/redact-check/internal/platform"
	"github.com/awslabs/redact-check/internal/security"
	"github.com/awslabs/redact-check/internal/version"

	// Blank-imported for their init() registration side effect, pulling
	// in every formatters sub-package without a direct call-site
	// reference.
	_ "github.com/awslabs/redact-check/internal/formatters/json"
	_ "github.com/awslabs/redact-check/internal/formatters/sarif"
	_ "github.com/awslabs/redact-check/internal/formatters/text"
	_ "github.com/awslabs/redact-check/internal/formatters/yaml"

	"github.com/fatih/color"
)

// isTerminal reports whether f is attached to an interactive terminal,
// used to auto-disable color when output is redirected or piped.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func main() {
	if len(os.Args) < 2 {
		help.NewSystem(false).ShowGeneralHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "analyze":
		runAnalyze(os.Args[2:])
	case "clean":
		runClean(os.Args[2:])
	case "--help", "-h", "help":
		help.NewSystem(false).ShowGeneralHelp()
	case "--version", "-v", "version":
		fmt.Println(version.Info())
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", os.Args[1])
		help.NewSystem(false).ShowGeneralHelp()
		os.Exit(1)
	}
}

func runAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	inputFile := fs.String("file", "", "Path to the input PDF (required)")
	outputFile := fs.String("output", "", "Path to write the audit log (default: stdout)")
	format := fs.String("format", "", "Audit log output format: json, yaml, text, or sarif (default: json, or config default)")
	configFile := fs.String("config", "", "Path to configuration file (YAML)")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	debug := fs.Bool("debug", false, "Enable structured per-stage debug logging")
	verbose := fs.Bool("verbose", false, "Include bounding-box samples in text output")
	showHelp := fs.Bool("help", false, "Show command help")
	fs.Parse(args)

	if *showHelp {
		help.NewSystem(*noColor).ShowCommandHelp("analyze")
		return
	}

	cfg := loadConfigOrExit(*configFile)
	useColor := !(*noColor || cfg.Defaults.NoColor) && isTerminal(os.Stdout)
	if useColor {
		color.NoColor = false
	} else {
		color.NoColor = true
	}

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		help.NewSystem(!useColor).ShowCommandHelp("analyze")
		os.Exit(1)
	}

	outputFormat := *format
	if outputFormat == "" {
		outputFormat = cfg.Defaults.Format
	}
	if _, ok := formatters.Get(outputFormat); !ok {
		fmt.Fprintf(os.Stderr, "Error: unsupported --format %q (want one of: %s)\n", outputFormat, strings.Join(formatters.List(), ", "))
		os.Exit(1)
	}

	var dbg *observability.DebugObserver
	if *debug || cfg.Defaults.Debug {
		dbg = observability.NewDebugObserver(os.Stderr)
	}

	if err := platform.CheckFileAccessibility(*inputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if dbg != nil {
		done := dbg.StartStep("analyzer", "read input file", *inputFile)
		defer func() { done(true, "") }()
	}

	raw, err := os.ReadFile(filepath.Clean(*inputFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", platform.WrapFileError(err, *inputFile, "reading input file"))
		os.Exit(1)
	}

	secure := security.NewSecureString(string(raw))
	defer secure.Clear()

	if dbg != nil {
		dbg.LogDetail("analyzer", fmt.Sprintf("loaded %d bytes", len(raw)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := analyzer.Analyze(ctx, []byte(secure.String()), filepath.Base(*inputFile))
	if err != nil {
		reportPdfError(err, useColor)
		os.Exit(1)
	}

	if dbg != nil {
		dbg.LogMetric("analyzer", "pages_flagged", result.Summary.PagesFlagged)
	}

	encoded, err := formatters.Export(outputFormat, result, formatters.Options{NoColor: !useColor, Verbose: *verbose})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to encode audit log: %v\n", err)
		os.Exit(1)
	}

	if *outputFile == "" {
		os.Stdout.Write(encoded)
		return
	}
	if err := os.WriteFile(*outputFile, encoded, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", platform.WrapFileError(err, *outputFile, "writing audit log"))
		os.Exit(1)
	}
	if useColor {
		color.New(color.FgGreen).Printf("Audit log written to %s\n", *outputFile)
	} else {
		fmt.Printf("Audit log written to %s\n", *outputFile)
	}
}

func runClean(args []string) {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	inputFile := fs.String("file", "", "Path to the input PDF (required)")
	outputFile := fs.String("output", "", "Path to the cleaned PDF (default: <file>.cleaned.pdf)")
	auditFile := fs.String("audit", "", "Path to a prior audit JSON/YAML, used advisorily")
	configFile := fs.String("config", "", "Path to configuration file (YAML)")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	debug := fs.Bool("debug", false, "Enable structured per-stage debug logging")
	showHelp := fs.Bool("help", false, "Show command help")
	fs.Parse(args)

	if *showHelp {
		help.NewSystem(*noColor).ShowCommandHelp("clean")
		return
	}

	cfg := loadConfigOrExit(*configFile)
	useColor := !(*noColor || cfg.Defaults.NoColor) && isTerminal(os.Stdout)
	color.NoColor = !useColor

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		help.NewSystem(!useColor).ShowCommandHelp("clean")
		os.Exit(1)
	}

	var dbg *observability.DebugObserver
	if *debug || cfg.Defaults.Debug {
		dbg = observability.NewDebugObserver(os.Stderr)
	}

	if err := platform.CheckFileAccessibility(*inputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(filepath.Clean(*inputFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", platform.WrapFileError(err, *inputFile, "reading input file"))
		os.Exit(1)
	}

	var prior *audit.AuditLog
	if *auditFile != "" {
		auditBytes, err := os.ReadFile(filepath.Clean(*auditFile))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", platform.WrapFileError(err, *auditFile, "reading prior audit"))
			os.Exit(1)
		}
		prior, err = parseAuditFile(*auditFile, auditBytes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to parse prior audit: %v\n", err)
			os.Exit(1)
		}
		if dbg != nil {
			dbg.LogDetail("cleaner", fmt.Sprintf("loaded prior audit from %s", *auditFile))
		}
	}

	secure := security.NewSecureString(string(raw))
	defer secure.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleaned, summary, err := cleaner.Clean(ctx, []byte(secure.String()), prior)
	if err != nil {
		reportPdfError(err, useColor)
		os.Exit(1)
	}

	out := *outputFile
	if out == "" {
		suffix := cfg.Clean.OutputSuffix
		ext := filepath.Ext(*inputFile)
		base := strings.TrimSuffix(*inputFile, ext)
		out = base + suffix + ext
	}

	if err := os.WriteFile(out, cleaned, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", platform.WrapFileError(err, out, "writing cleaned PDF"))
		os.Exit(1)
	}

	if useColor {
		color.New(color.FgGreen, color.Bold).Printf("Cleaned PDF written to %s\n", out)
	} else {
		fmt.Printf("Cleaned PDF written to %s\n", out)
	}
	fmt.Printf("  redact annotations removed (estimate): %d (%d page(s) affected)\n", summary.RemovedRedactAnnotsEstimate, summary.RemovedAnnotsPages)
	fmt.Printf("  overlay operators removed (estimate): %d\n", summary.RemovedOverlayOpsEstimate)
	fmt.Printf("  %s\n", summary.Note)
}

func loadConfigOrExit(configFile string) *config.Config {
	path := configFile
	if path == "" {
		path = config.FindConfigFile()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// parseAuditFile accepts a prior audit as either JSON (current or legacy
// schema, via ParseLegacyOrCurrent) or YAML, chosen by file extension.
func parseAuditFile(path string, data []byte) (*audit.AuditLog, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		var result audit.AuditLog
		if err := yaml.Unmarshal(data, &result); err != nil {
			return nil, err
		}
		return &result, nil
	}
	return audit.ParseLegacyOrCurrent(data)
}

func reportPdfError(err error, useColor bool) {
	msg := fmt.Sprintf("Error: %v", err)
	if useColor && isKnownPdfError(err) {
		color.New(color.FgRed).Fprintln(os.Stderr, msg)
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

func isKnownPdfError(err error) bool {
	for _, kind := range []pdferr.Kind{pdferr.EmptyInput, pdferr.MalformedPdf, pdferr.PdfParseFailed, pdferr.SerializeFailed} {
		if errors.Is(err, pdferr.New(kind, "", "")) {
			return true
		}
	}
	return false
}
