// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package stripper pattern-matches bounded, line-oriented idioms for
// opaque black rectangle overlays in a decoded content-stream body and
// replaces each match with a neutral comment line, leaving everything
// else byte-for-byte intact. Text blocks (BT…ET) are never touched —
// every pattern enforces a hard BT-exclusion guard on every
// intervening line.
package stripper

import (
	"bytes"
	"compress/zlib"
	"io"
	"regexp"
	"strings"
)

// Fixed parameters, part of the contract.
const (
	AsciiDominanceThreshold = 0.70
	MaxInterLineChars       = 200
	MaxInterLinesAB         = 6
	MaxInterLinesCD         = 15
)

const neutralComment = "% redact-check: overlay removed"

var (
	numSigned   = `[+-]?\d+(?:\.\d+)?`
	numNonneg   = `\d+(?:\.\d+)?`
	reZeroRGB   = regexp.MustCompile(`^\s*0\s+0\s+0\s+rg\s*$`)
	reZeroGray  = regexp.MustCompile(`^\s*0\s+g\s*$`)
	reRectLine  = regexp.MustCompile(`^\s*` + numSigned + `\s+` + numSigned + `\s+` + numNonneg + `\s+` + numNonneg + `\s+re\s*$`)
	rePaintLine = regexp.MustCompile(`^\s*(?:f\*|f|B\*|B)\s*$`)
	reMoveLine  = regexp.MustCompile(`^\s*` + numSigned + `\s+` + numSigned + `\s+m\s*$`)
	reHLine     = regexp.MustCompile(`^\s*h\s*$`)
	reFLine     = regexp.MustCompile(`^\s*f\s*$`)
	reQOpenLine = regexp.MustCompile(`^\s*q\s*$`)
	reQCloseLine = regexp.MustCompile(`^\s*Q\s*$`)
)

// Strip rewrites body if it matches the eligibility and pattern rules.
// filterName is the stream's original /Filter value, "" if absent. It
// returns the (possibly unchanged) body, the count of overlay idioms
// removed, whether the caller should drop the stream's Filter entry on
// rewrite, and whether any change was made at all.
func Strip(body []byte, filterName string) (newBody []byte, removedEstimate int, dropFilter bool, changed bool) {
	working := body
	decompressed := filterName != ""

	if filterName == "" && looksLikeZlib(body) {
		if dec, err := inflate(body); err == nil {
			working = dec
			decompressed = true
		}
	}

	if !asciiDominant(working) {
		return body, 0, false, false
	}

	normalized := strings.ReplaceAll(strings.ReplaceAll(string(working), "\r\n", "\n"), "\r", "\n")
	lines := strings.Split(normalized, "\n")

	outLines, removed := applyPatterns(lines)
	if removed == 0 {
		return body, 0, false, false
	}

	return []byte(strings.Join(outLines, "\n")), removed, decompressed, true
}

// looksLikeZlib reports whether body opens with a recognized zlib magic
// (0x78 0x9C | 0x01 | 0xDA), used when the Filter dictionary entry is
// missing but the bytes are plausibly FlateDecode data anyway.
func looksLikeZlib(body []byte) bool {
	if len(body) < 2 || body[0] != 0x78 {
		return false
	}
	switch body[1] {
	case 0x9C, 0x01, 0xDA:
		return true
	}
	return false
}

func inflate(body []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func asciiDominant(body []byte) bool {
	if len(body) == 0 {
		return false
	}
	ok := 0
	for _, b := range body {
		if b == '\t' || b == '\n' || b == '\r' || (b >= 32 && b <= 126) {
			ok++
		}
	}
	return float64(ok)/float64(len(body)) >= AsciiDominanceThreshold
}

// applyPatterns scans lines once, left to right, applying patterns A, B,
// C, D in order at each unconsumed position and replacing the first
// match with a single neutral comment line.
func applyPatterns(lines []string) ([]string, int) {
	var out []string
	removed := 0
	i := 0
	for i < len(lines) {
		if span, ok := matchPatternA(lines, i); ok {
			out = append(out, neutralComment)
			removed++
			i += span
			continue
		}
		if span, ok := matchPatternB(lines, i); ok {
			out = append(out, neutralComment)
			removed++
			i += span
			continue
		}
		if span, ok := matchPatternC(lines, i); ok {
			out = append(out, neutralComment)
			removed++
			i += span
			continue
		}
		if span, ok := matchPatternD(lines, i); ok {
			out = append(out, neutralComment)
			removed++
			i += span
			continue
		}
		out = append(out, lines[i])
		i++
	}
	return out, removed
}

// matchPatternA matches: `0 0 0 rg`, up to 6 intermediate lines of at
// most 200 chars each, `x y w h re`, then a paint operator.
func matchPatternA(lines []string, i int) (int, bool) {
	return matchRectFill(lines, i, reZeroRGB)
}

// matchPatternB is Pattern A with a gray fill opener.
func matchPatternB(lines []string, i int) (int, bool) {
	return matchRectFill(lines, i, reZeroGray)
}

func matchRectFill(lines []string, i int, opener *regexp.Regexp) (int, bool) {
	if i >= len(lines) || !opener.MatchString(lines[i]) {
		return 0, false
	}
	for m := 0; m <= MaxInterLinesAB; m++ {
		reIdx := i + 1 + m
		paintIdx := reIdx + 1
		if paintIdx >= len(lines) {
			break
		}
		if !interLinesOK(lines, i+1, i+m) {
			break
		}
		if reRectLine.MatchString(lines[reIdx]) && rePaintLine.MatchString(lines[paintIdx]) {
			return paintIdx - i + 1, true
		}
	}
	return 0, false
}

// matchPatternC matches: `q`, ≤15 BT-free lines, `0 0 0 rg`, ≤15 BT-free
// lines, `x y m`, ≤15 BT-free lines, `h`, `f`, `Q`.
func matchPatternC(lines []string, i int) (int, bool) {
	return matchPathRect(lines, i, reZeroRGB)
}

// matchPatternD is Pattern C with a gray fill opener.
func matchPatternD(lines []string, i int) (int, bool) {
	return matchPathRect(lines, i, reZeroGray)
}

func matchPathRect(lines []string, i int, opener *regexp.Regexp) (int, bool) {
	if i >= len(lines) || !reQOpenLine.MatchString(lines[i]) {
		return 0, false
	}

	fillIdx, ok := findWithinBTFree(lines, i+1, MaxInterLinesCD, opener)
	if !ok {
		return 0, false
	}
	moveIdx, ok := findWithinBTFree(lines, fillIdx+1, MaxInterLinesCD, reMoveLine)
	if !ok {
		return 0, false
	}
	hIdx, ok := findWithinBTFree(lines, moveIdx+1, MaxInterLinesCD, reHLine)
	if !ok {
		return 0, false
	}
	fIdx := hIdx + 1
	qIdx := fIdx + 1
	if qIdx >= len(lines) {
		return 0, false
	}
	if !reFLine.MatchString(lines[fIdx]) || !reQCloseLine.MatchString(lines[qIdx]) {
		return 0, false
	}
	return qIdx - i + 1, true
}

// findWithinBTFree looks for the first line matching target within at
// most maxGap lines starting at start, requiring every skipped line to
// be short and not contain "BT" (the hard text-block guard).
func findWithinBTFree(lines []string, start, maxGap int, target *regexp.Regexp) (int, bool) {
	for g := 0; g <= maxGap; g++ {
		idx := start + g
		if idx >= len(lines) {
			return 0, false
		}
		if target.MatchString(lines[idx]) {
			return idx, true
		}
		if len(lines[idx]) > MaxInterLineChars || strings.Contains(lines[idx], "BT") {
			return 0, false
		}
	}
	return 0, false
}

// interLinesOK validates the ≤200-char cap for Pattern A/B's
// intermediate lines and rejects any intermediate line containing "BT",
// so a text block can never be silently absorbed between the fill
// opener and the rectangle.
func interLinesOK(lines []string, from, to int) bool {
	for k := from; k <= to; k++ {
		if k >= len(lines) || len(lines[k]) > MaxInterLineChars || strings.Contains(lines[k], "BT") {
			return false
		}
	}
	return true
}
