// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package text registers the "text" audit-log formatter: human-readable
// output with per-page risk coloring.
package text

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"

	"github.com/awslabs/redact-check/internal/audit"
	"github.com/awslabs/redact-check/internal/formatters"
)

func init() {
	formatters.Register(&Formatter{})
}

// Formatter renders a human-readable summary: one line per page, colored
// by risk verdict, followed by a document-level roll-up.
type Formatter struct{}

func (f *Formatter) Name() string          { return "text" }
func (f *Formatter) Description() string   { return "Human-readable text output with per-page risk coloring" }
func (f *Formatter) FileExtension() string { return ".txt" }

func (f *Formatter) Format(log *audit.AuditLog, options formatters.Options) ([]byte, error) {
	color.NoColor = options.NoColor

	flagged := color.New(color.FgRed, color.Bold)
	none := color.New(color.FgGreen)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s  %s bytes, %d page(s)  sha256=%s\n",
		log.Source.FileName, formatCount(log.Source.FileSizeBytes), log.Source.PageCount, log.Source.SHA256)
	fmt.Fprintf(&buf, "generated %s\n\n", log.GeneratedAt)

	for _, p := range log.Pages {
		c := none
		if p.Risk == "flagged" {
			c = flagged
		}
		c.Fprintf(&buf, "page %-4d %-8s confidence=%-3d", p.Page, p.Risk, p.Confidence)
		fmt.Fprintf(&buf, "  rects=%d redact_annots=%d overlaps_text=%t\n",
			p.Signals.DarkRects, p.Signals.RedactAnnots, p.Signals.OverlapsTextLikely)
		for _, finding := range p.Findings {
			fmt.Fprintf(&buf, "    - %s (count=%d)\n", finding.Type, finding.Count)
		}
		if options.Verbose {
			for _, s := range p.Findings {
				for _, b := range s.BBoxSamples {
					fmt.Fprintf(&buf, "      bbox x=%.1f y=%.1f w=%.1f h=%.1f\n", b.X, b.Y, b.W, b.H)
				}
			}
		}
	}

	fmt.Fprintf(&buf, "\n%d of %d page(s) flagged\n", log.Summary.PagesFlagged, len(log.Pages))
	return buf.Bytes(), nil
}

func formatCount(n int) string {
	return fmt.Sprintf("%d", n)
}
