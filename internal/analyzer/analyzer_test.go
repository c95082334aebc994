// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/awslabs/redact-check/internal/pdfaccess"
	"github.com/awslabs/redact-check/internal/pdferr"
)

func TestAnalyze_EmptyInput(t *testing.T) {
	_, err := Analyze(context.Background(), nil, "x.pdf")
	var pErr *pdferr.Error
	if !errors.As(err, &pErr) || pErr.Kind != pdferr.EmptyInput {
		t.Fatalf("err = %v, want EmptyInput", err)
	}
}

func TestAnalyze_MalformedPdf(t *testing.T) {
	_, err := Analyze(context.Background(), []byte("not a pdf"), "x.pdf")
	var pErr *pdferr.Error
	if !errors.As(err, &pErr) || pErr.Kind != pdferr.MalformedPdf {
		t.Fatalf("err = %v, want MalformedPdf", err)
	}
}

// TestAnalyzePage_BlackOverlayScenario covers a page with hidden SSN
// text under a black rectangle overlay.
func TestAnalyzePage_BlackOverlayScenario(t *testing.T) {
	page := &pdfaccess.Page{
		Number: 1,
		Width:  612,
		Height: 792,
		Operators: []pdfaccess.Operator{
			{Op: "rg", Args: []any{0.0, 0.0, 0.0}},
			{Op: "re", Args: []any{nil, []any{48.0, 696.0, 180.0, 20.0}}},
		},
		Texts: []pdfaccess.TextItem{
			{Text: "Name: Jane Doe SSN 123-45-6789", TX: 50, TY: 700, Width: 100, Height: 12},
		},
	}
	pa := analyzePage(page)
	if pa.Signals.DarkRects != 1 {
		t.Fatalf("dark_rects = %d, want 1", pa.Signals.DarkRects)
	}
	if pa.Signals.RedactAnnots != 0 {
		t.Fatalf("redact_annots = %d, want 0", pa.Signals.RedactAnnots)
	}
	if !pa.Signals.OverlapsTextLikely {
		t.Fatalf("overlaps_text_likely = false, want true")
	}
	// This rectangle's 9:1 aspect ratio also earns the elongation bonus
	// from the scoring table, on top of the overlap and moderate-area
	// terms: 40 (overlap) + 15 (moderate area) + 10 (elongation) = 65.
	// The text line carries 26 non-whitespace characters, so has_text
	// holds and the no-text penalty does not apply; the bare
	// "SSN 123-45-6789" run alone has 14 and would score 45.
	// See DESIGN.md for the reasoning behind including all three terms.
	if pa.Confidence != 65 {
		t.Fatalf("confidence = %d, want 65", pa.Confidence)
	}
	if pa.Risk != "flagged" {
		t.Fatalf("risk = %q, want flagged", pa.Risk)
	}
}

// TestAnalyzePage_RedactAnnotationScenario covers a page with a Redact
// annotation and no black rectangles.
func TestAnalyzePage_RedactAnnotationScenario(t *testing.T) {
	page := &pdfaccess.Page{
		Number: 1,
		Width:  612,
		Height: 792,
		Texts: []pdfaccess.TextItem{
			{Text: "CLASSIFIED TOP SECRET DOCUMENT", TX: 50, TY: 700, Width: 200, Height: 12},
		},
		Annots: []pdfaccess.Annotation{{Subtype: "Redact"}},
	}
	pa := analyzePage(page)
	if pa.Signals.RedactAnnots != 1 {
		t.Fatalf("redact_annots = %d, want 1", pa.Signals.RedactAnnots)
	}
	if pa.Signals.DarkRects != 0 {
		t.Fatalf("dark_rects = %d, want 0", pa.Signals.DarkRects)
	}
	if pa.Confidence != 50 {
		t.Fatalf("confidence = %d, want 50", pa.Confidence)
	}
	if pa.Risk != "flagged" {
		t.Fatalf("risk = %q, want flagged", pa.Risk)
	}
}

// TestAnalyzePage_TextOnlyPageNotFlagged checks that a has_text=true
// page with no rectangles and no redact annotations scores 0 and is
// never flagged.
func TestAnalyzePage_TextOnlyPageNotFlagged(t *testing.T) {
	page := &pdfaccess.Page{
		Number: 1,
		Width:  612,
		Height: 792,
		Texts: []pdfaccess.TextItem{
			{Text: "This is a perfectly normal page of readable text.", TX: 50, TY: 700, Width: 300, Height: 12},
		},
	}
	pa := analyzePage(page)
	if pa.Confidence != 0 || pa.Risk != "none" {
		t.Fatalf("confidence=%d risk=%q, want 0/none", pa.Confidence, pa.Risk)
	}
}

func TestAnalyzePage_GiantBackgroundNotFlagged(t *testing.T) {
	page := &pdfaccess.Page{
		Number: 1,
		Width:  600,
		Height: 800,
		Operators: []pdfaccess.Operator{
			{Op: "rg", Args: []any{0.0, 0.0, 0.0}},
			{Op: "re", Args: []any{nil, []any{0.0, 0.0, 600.0, 500.0}}},
		},
	}
	pa := analyzePage(page)
	if pa.Signals.DarkRects != 0 {
		t.Fatalf("dark_rects = %d, want 0 (giant background excluded)", pa.Signals.DarkRects)
	}
	if pa.Risk != "none" {
		t.Fatalf("risk = %q, want none", pa.Risk)
	}
}
