// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package reconstruct

import (
	"testing"

	"github.com/awslabs/redact-check/internal/pdfaccess"
)

func rgOp(r, g, b float64) pdfaccess.Operator {
	return pdfaccess.Operator{Op: "rg", Args: []any{r, g, b}}
}

func grayOp(g float64) pdfaccess.Operator {
	return pdfaccess.Operator{Op: "g", Args: []any{g}}
}

func reOp(x, y, w, h float64) pdfaccess.Operator {
	return pdfaccess.Operator{Op: "re", Args: []any{nil, []any{x, y, w, h}}}
}

// TestReconstruct_BlackOverlay covers a 612x792 page, fill black, rect
// 48,696,180,20 — the canonical black-bar overlay shape.
func TestReconstruct_BlackOverlay(t *testing.T) {
	ops := []pdfaccess.Operator{rgOp(0, 0, 0), reOp(48, 696, 180, 20)}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 1 {
		t.Fatalf("got %d rectangles, want 1", len(rects))
	}
	r := rects[0]
	if r.W != 270 || r.H != 30 {
		t.Fatalf("rect = %+v, want w=270 h=30 (180*1.5, 20*1.5)", r)
	}
}

func TestReconstruct_RejectsSmallSide(t *testing.T) {
	ops := []pdfaccess.Operator{rgOp(0, 0, 0), reOp(10, 10, 3, 50)}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 0 {
		t.Fatalf("got %d rectangles, want 0 (w<5)", len(rects))
	}
}

func TestReconstruct_RejectsNonDarkColor(t *testing.T) {
	ops := []pdfaccess.Operator{rgOp(0.5, 0.5, 0.5), reOp(10, 10, 100, 100)}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 0 {
		t.Fatalf("got %d rectangles, want 0 (not dark)", len(rects))
	}
}

func TestReconstruct_DarknessInclusiveThreshold(t *testing.T) {
	ops := []pdfaccess.Operator{rgOp(0.15, 0.15, 0.15), reOp(10, 10, 100, 100)}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 1 {
		t.Fatalf("got %d rectangles, want 1 (0.15 is dark, inclusive)", len(rects))
	}
}

func TestReconstruct_JustAboveDarknessThreshold(t *testing.T) {
	ops := []pdfaccess.Operator{rgOp(0.1501, 0.1501, 0.1501), reOp(10, 10, 100, 100)}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 0 {
		t.Fatalf("got %d rectangles, want 0 (0.1501 is not dark)", len(rects))
	}
}

func TestReconstruct_GrayFill(t *testing.T) {
	ops := []pdfaccess.Operator{grayOp(0), reOp(10, 10, 100, 100)}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 1 {
		t.Fatalf("got %d rectangles, want 1", len(rects))
	}
}

// TestReconstruct_GiantBackgroundExcluded is scenario 4: a 600x500 rect
// on a 600x800 page has area ratio 0.625 > 0.6 and must be excluded.
func TestReconstruct_GiantBackgroundExcluded(t *testing.T) {
	ops := []pdfaccess.Operator{rgOp(0, 0, 0), reOp(0, 0, 600, 500)}
	rects := Reconstruct(ops, 600, 800)
	if len(rects) != 0 {
		t.Fatalf("got %d rectangles, want 0 (area ratio 0.625 > 0.6)", len(rects))
	}
}

// TestReconstruct_SmallOverlayBelowThreshold is scenario 5: a 25x10
// rectangle (37.5x15 in device space) has area 562.5 < 2000, excluded.
func TestReconstruct_SmallOverlayBelowThreshold(t *testing.T) {
	ops := []pdfaccess.Operator{rgOp(0, 0, 0), reOp(10, 10, 25, 10)}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 0 {
		t.Fatalf("got %d rectangles, want 0 (area 562.5 < 2000)", len(rects))
	}
}

func TestReconstruct_MinAreaFloorBoundary(t *testing.T) {
	// area = 2000 exactly; on a small page the fraction floor (0.0005*page)
	// is below 2000, so the fixed floor of 2000 applies and the rect at
	// exactly 2000 must be emitted ("area >= max(...)").
	// Choose a 40x50 device-space rect: area = 2000.
	// w,h in user space before 1.5 scale: 40/1.5 and 50/1.5. The origin
	// (30,40) lies beyond both w and h, so the corner-pair rule does not
	// reread the operands as (x1,y1,x2,y2).
	w := 40.0 / ViewportScale
	h := 50.0 / ViewportScale
	ops := []pdfaccess.Operator{rgOp(0, 0, 0), reOp(30, 40, w, h)}
	rects := Reconstruct(ops, 100, 100)
	if len(rects) != 1 {
		t.Fatalf("got %d rectangles, want 1 (area exactly at floor 2000)", len(rects))
	}
	if rects[0].Area < 1999.9 || rects[0].Area > 2000.1 {
		t.Fatalf("area = %v, want ~2000", rects[0].Area)
	}
}

func TestReconstruct_Dedup(t *testing.T) {
	ops := []pdfaccess.Operator{
		rgOp(0, 0, 0), reOp(10, 10, 100, 100),
		rgOp(0, 0, 0), reOp(10, 10, 100, 100),
	}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 1 {
		t.Fatalf("got %d rectangles, want 1 (deduplicated)", len(rects))
	}
}

func TestReconstruct_PureTranslationApplied(t *testing.T) {
	ops := []pdfaccess.Operator{
		{Op: "cm", Args: []any{1.0, 0.0, 0.0, 1.0, 100.0, 100.0}},
		rgOp(0, 0, 0),
		reOp(0, 0, 100, 100),
	}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 1 {
		t.Fatalf("got %d rectangles, want 1", len(rects))
	}
	// x = (0+100)*1.5 = 150
	if rects[0].X != 150 {
		t.Fatalf("x = %v, want 150 (translation applied)", rects[0].X)
	}
}

func TestReconstruct_IdentityMatrixIgnored(t *testing.T) {
	ops := []pdfaccess.Operator{
		{Op: "cm", Args: []any{1.0, 0.0, 0.0, 1.0, 0.0, 0.0}},
		rgOp(0, 0, 0),
		reOp(10, 10, 100, 100),
	}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 1 {
		t.Fatalf("got %d rectangles, want 1", len(rects))
	}
}

func TestReconstruct_CornerPairFormat(t *testing.T) {
	// (10,20,200,300) should be reinterpreted as (10,20,190,280) since
	// n2(200) > n0(10) and n3(300) > n1(20) and both < 10000.
	ops := []pdfaccess.Operator{
		rgOp(0, 0, 0),
		{Op: "re", Args: []any{nil, []any{10.0, 20.0, 200.0, 300.0}}},
	}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 1 {
		t.Fatalf("got %d rectangles, want 1", len(rects))
	}
	wantW := 190.0 * ViewportScale
	wantH := 280.0 * ViewportScale
	if rects[0].W != wantW || rects[0].H != wantH {
		t.Fatalf("rect = %+v, want w=%v h=%v", rects[0], wantW, wantH)
	}
}

func TestReconstruct_HexColorFill(t *testing.T) {
	ops := []pdfaccess.Operator{
		{Op: "scn", Args: []any{"#000000"}},
		reOp(10, 10, 100, 100),
	}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 1 {
		t.Fatalf("got %d rectangles, want 1 (hex color darkness)", len(rects))
	}
}

func TestReconstruct_UnknownOperatorSkippedSilently(t *testing.T) {
	ops := []pdfaccess.Operator{
		{Op: "weird", Args: []any{"blob", 1.0, 2.0}},
		rgOp(0, 0, 0),
		reOp(10, 10, 100, 100),
	}
	rects := Reconstruct(ops, 612, 792)
	if len(rects) != 1 {
		t.Fatalf("got %d rectangles, want 1 (unknown op ignored)", len(rects))
	}
}

func TestReconstruct_InvariantsHoldAcrossSamples(t *testing.T) {
	ops := []pdfaccess.Operator{
		rgOp(0, 0, 0), reOp(48, 696, 180, 20),
		rgOp(0, 0, 0), reOp(200, 200, 50, 50),
	}
	rects := Reconstruct(ops, 612, 792)
	pageArea := 612.0 * ViewportScale * 792.0 * ViewportScale
	seen := map[[4]int]bool{}
	for _, r := range rects {
		if r.W < MinSide || r.H < MinSide {
			t.Fatalf("rect %+v violates min side invariant", r)
		}
		if r.Area < 2000 || r.Area > pageArea*MaxAreaFraction {
			t.Fatalf("rect %+v violates area invariant (pageArea=%v)", r, pageArea)
		}
		k := dedupKey(r)
		if seen[k] {
			t.Fatalf("rect %+v duplicated dedup key", r)
		}
		seen[k] = true
	}
}
