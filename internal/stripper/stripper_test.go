// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package stripper

import (
	"strings"
	"testing"
)

func TestStrip_PatternA_RGBRectFill(t *testing.T) {
	body := []byte("BT\n(SSN 123-45-6789) Tj\nET\n0 0 0 rg\n48 696 180 20 re\nf\n")
	newBody, removed, _, changed := Strip(body, "")
	if !changed || removed != 1 {
		t.Fatalf("changed=%v removed=%d, want changed=true removed=1", changed, removed)
	}
	if strings.Contains(string(newBody), "0 0 0 rg") {
		t.Fatalf("rg line not removed: %q", newBody)
	}
	if !strings.Contains(string(newBody), "BT") || !strings.Contains(string(newBody), "ET") {
		t.Fatalf("text block was removed: %q", newBody)
	}
}

func TestStrip_PatternB_GrayRectFill(t *testing.T) {
	body := []byte("0 g\n10 10 50 50 re\nf*\n")
	_, removed, _, changed := Strip(body, "")
	if !changed || removed != 1 {
		t.Fatalf("changed=%v removed=%d, want changed=true removed=1", changed, removed)
	}
}

func TestStrip_PatternC_RGBPathRect(t *testing.T) {
	body := []byte("q\n0 0 0 rg\n100 100 m\n300 100 l\n300 120 l\n100 120 l\nh\nf\nQ\n")
	_, removed, _, changed := Strip(body, "")
	if !changed || removed != 1 {
		t.Fatalf("changed=%v removed=%d, want changed=true removed=1", changed, removed)
	}
}

func TestStrip_PatternD_GrayPathRect(t *testing.T) {
	body := []byte("q\n0 g\n100 100 m\n300 100 l\n300 120 l\n100 120 l\nh\nf\nQ\n")
	_, removed, _, changed := Strip(body, "")
	if !changed || removed != 1 {
		t.Fatalf("changed=%v removed=%d, want changed=true removed=1", changed, removed)
	}
}

func TestStrip_BTGuardPreventsPathPatternMatch(t *testing.T) {
	body := []byte("q\n0 0 0 rg\nBT\n(hidden) Tj\nET\n100 100 m\n300 100 l\nh\nf\nQ\n")
	_, removed, _, changed := Strip(body, "")
	if changed || removed != 0 {
		t.Fatalf("changed=%v removed=%d, want no match (BT guard)", changed, removed)
	}
}

func TestStrip_NoMatchIsNotAnError(t *testing.T) {
	body := []byte("BT\n(normal text) Tj\nET\n")
	newBody, removed, _, changed := Strip(body, "")
	if changed || removed != 0 {
		t.Fatalf("changed=%v removed=%d, want unchanged pass-through", changed, removed)
	}
	if string(newBody) != string(body) {
		t.Fatalf("body mutated on no-match")
	}
}

func TestStrip_NonASCIIStreamLeftUntouched(t *testing.T) {
	body := make([]byte, 100)
	for i := range body {
		body[i] = byte(200 + i%50)
	}
	newBody, removed, _, changed := Strip(body, "")
	if changed || removed != 0 {
		t.Fatalf("changed=%v removed=%d, want untouched (below ASCII gate)", changed, removed)
	}
	if len(newBody) != len(body) {
		t.Fatalf("body length changed on non-ASCII stream")
	}
}

func TestStrip_InterLineCharCapRejectsMatch(t *testing.T) {
	longLine := strings.Repeat("x", 250)
	body := []byte("0 0 0 rg\n" + longLine + "\n48 696 180 20 re\nf\n")
	_, removed, _, changed := Strip(body, "")
	if changed || removed != 0 {
		t.Fatalf("changed=%v removed=%d, want no match (inter-line cap exceeded)", changed, removed)
	}
}

func TestStrip_ZlibMagicCorruptPayloadLeftUntouched(t *testing.T) {
	// zlib magic header without a filter name triggers speculative
	// decompression; a non-zlib payload after the magic bytes should fail
	// to inflate and leave the stream untouched.
	body := []byte{0x78, 0x9c, 0x01, 0x02, 0x03}
	_, removed, dropFilter, changed := Strip(body, "")
	if changed || removed != 0 || dropFilter {
		t.Fatalf("expected untouched stream for corrupt zlib-looking payload")
	}
}
