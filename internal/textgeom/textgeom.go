// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package textgeom projects each page's text items into device-space
// boxes and reports the total non-whitespace glyph count used by the
// has_text signal.
package textgeom

import (
	"strings"
	"unicode"

	"github.com/awslabs/redact-check/internal/pdfaccess"
	"github.com/awslabs/redact-check/internal/reconstruct"
)

// MinCharsForText is the text_chars threshold for has_text.
const MinCharsForText = 20

// fallbackHeight is used when a text item reports no font size.
const fallbackHeight = 10.0

// fallbackWidthPerGlyph is used when a text item reports no width.
const fallbackWidthPerGlyph = 5.0

// Box is one text item's device-space bounding box.
type Box struct {
	X, Y, W, H float64
}

// Result is the Text Geometry capability's output for one page.
type Result struct {
	Boxes     []Box
	TextChars int
}

// HasText reports whether the page carries enough non-whitespace text to
// be considered a text page.
func (r Result) HasText() bool {
	return r.TextChars >= MinCharsForText
}

// Analyze projects a page's text items to device space and counts
// non-whitespace characters. pageHeightUser is the page's MediaBox
// height in PDF user-space units, needed for the y-flip into device
// space shared with the Rectangle Reconstructor.
func Analyze(items []pdfaccess.TextItem, pageHeightUser float64) Result {
	var res Result
	for _, t := range items {
		stripped := stripWhitespace(t.Text)
		res.TextChars += len(stripped)
		if stripped == "" {
			continue
		}

		glyphs := len([]rune(stripped))
		w := t.Width
		if w <= 0 {
			w = fallbackWidthPerGlyph * float64(glyphs)
		}
		h := t.Height
		if h <= 0 {
			h = fallbackHeight
		}

		vx := t.TX * reconstruct.ViewportScale
		vy := (pageHeightUser - t.TY) * reconstruct.ViewportScale
		dw := w * reconstruct.ViewportScale
		dh := h * reconstruct.ViewportScale

		res.Boxes = append(res.Boxes, Box{X: vx, Y: vy - dh, W: dw, H: dh})
	}
	return res
}

// stripWhitespace removes every character unicode.IsSpace reports as
// space, not just leading/trailing runs.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
