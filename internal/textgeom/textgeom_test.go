// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textgeom

import (
	"testing"

	"github.com/awslabs/redact-check/internal/pdfaccess"
)

func TestAnalyze_CountsNonWhitespaceChars(t *testing.T) {
	items := []pdfaccess.TextItem{
		{Text: "SSN 123-45-6789", TX: 50, TY: 700, Width: 100, Height: 12},
	}
	res := Analyze(items, 792)
	if res.TextChars != len("SSN123-45-6789") {
		t.Fatalf("text_chars = %d, want %d", res.TextChars, len("SSN123-45-6789"))
	}
}

func TestAnalyze_HasTextThreshold(t *testing.T) {
	short := Analyze([]pdfaccess.TextItem{{Text: "short"}}, 792)
	if short.HasText() {
		t.Fatalf("short text should not satisfy has_text threshold")
	}
	long := Analyze([]pdfaccess.TextItem{{Text: "abcdefghij klmnopqrst"}}, 792)
	if !long.HasText() {
		t.Fatalf("20 non-whitespace chars should satisfy has_text")
	}
}

func TestAnalyze_NoTextPage(t *testing.T) {
	res := Analyze(nil, 792)
	if res.HasText() || res.TextChars != 0 {
		t.Fatalf("empty page should report no text")
	}
}

func TestAnalyze_FallbackDimensions(t *testing.T) {
	items := []pdfaccess.TextItem{{Text: "abc", TX: 0, TY: 0}}
	res := Analyze(items, 100)
	if len(res.Boxes) != 1 {
		t.Fatalf("expected one box")
	}
	if res.Boxes[0].H != fallbackHeight*1.5 {
		t.Fatalf("fallback height not applied: %+v", res.Boxes[0])
	}
	if res.Boxes[0].W != fallbackWidthPerGlyph*3*1.5 {
		t.Fatalf("fallback width not applied: %+v", res.Boxes[0])
	}
}

func TestAnalyze_SkipsAllWhitespaceItems(t *testing.T) {
	items := []pdfaccess.TextItem{{Text: "   \t\n"}}
	res := Analyze(items, 792)
	if len(res.Boxes) != 0 {
		t.Fatalf("whitespace-only item should produce no box")
	}
}
