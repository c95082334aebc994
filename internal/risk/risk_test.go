// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package risk

import "testing"

func TestScore_BlackOverlay(t *testing.T) {
	confidence, verdict := Score(Signals{
		HasText:           true,
		DarkRects:         1,
		DarkRectAreaRatio: 0.0079,
		RedactAnnots:      0,
		OverlapsText:      true,
	})
	if confidence != 55 {
		t.Fatalf("confidence = %d, want 55", confidence)
	}
	if verdict != Flagged {
		t.Fatalf("verdict = %q, want flagged", verdict)
	}
}

func TestScore_RedactAnnotationOnly(t *testing.T) {
	confidence, verdict := Score(Signals{
		HasText:      true,
		RedactAnnots: 1,
	})
	if confidence != 50 {
		t.Fatalf("confidence = %d, want 50", confidence)
	}
	if verdict != Flagged {
		t.Fatalf("verdict = %q, want flagged", verdict)
	}
}

func TestScore_CleanTextPage(t *testing.T) {
	confidence, verdict := Score(Signals{HasText: true})
	if confidence != 0 {
		t.Fatalf("confidence = %d, want 0", confidence)
	}
	if verdict != None {
		t.Fatalf("verdict = %q, want none", verdict)
	}
}

func TestScore_NoTextPenalty(t *testing.T) {
	confidence, verdict := Score(Signals{HasText: false})
	if confidence != 0 {
		t.Fatalf("confidence = %d, want 0 (clamped)", confidence)
	}
	if verdict != None {
		t.Fatalf("verdict = %q, want none", verdict)
	}
}

func TestScore_GiantRectPenalty(t *testing.T) {
	confidence, verdict := Score(Signals{
		HasText:         true,
		OverlapsText:    true,
		RedactAnnots:    1,
		MaxAreaFraction: 0.625,
	})
	// 40 + 50 - 30 = 60
	if confidence != 60 {
		t.Fatalf("confidence = %d, want 60", confidence)
	}
	if verdict != Flagged {
		t.Fatalf("verdict = %q, want flagged", verdict)
	}
}

func TestScore_ElongationBonus(t *testing.T) {
	confidence, verdict := Score(Signals{
		HasText:        true,
		MaxAspectRatio: 3.0,
	})
	if confidence != 10 {
		t.Fatalf("confidence = %d, want 10", confidence)
	}
	if verdict != None {
		t.Fatalf("verdict = %q, want none (below threshold)", verdict)
	}
}

func TestScore_ClampsToRange(t *testing.T) {
	confidence, _ := Score(Signals{
		OverlapsText:    true,
		RedactAnnots:    1,
		MaxAspectRatio:  5,
		MaxAreaFraction: 0.9,
		HasText:         false,
	})
	if confidence < 0 || confidence > 100 {
		t.Fatalf("confidence = %d, out of [0,100]", confidence)
	}
}

func TestScore_FlagThresholdBoundary(t *testing.T) {
	_, verdict := Score(Signals{HasText: true, MaxAspectRatio: 3.0, DarkRectAreaRatio: 0.01})
	// 10 + 15 = 25 >= 20
	if verdict != Flagged {
		t.Fatalf("verdict = %q, want flagged at confidence 25", verdict)
	}
}
