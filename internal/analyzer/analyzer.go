// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package analyzer turns raw PDF bytes and a file name into a complete
// per-page audit, driving the PDF access layer, rectangle reconstructor,
// text geometry, annotation inspector, risk scorer, and audit builder
// over every page of one document.
package analyzer

import (
	"bytes"
	"context"
	"time"

	"github.com/awslabs/redact-check/internal/annotinspect"
	"github.com/awslabs/redact-check/internal/audit"
	"github.com/awslabs/redact-check/internal/pdfaccess"
	"github.com/awslabs/redact-check/internal/pdferr"
	"github.com/awslabs/redact-check/internal/reconstruct"
	"github.com/awslabs/redact-check/internal/textgeom"
	"github.com/awslabs/redact-check/internal/version"
)

var pdfMagic = []byte("%PDF-")

// ToolName identifies this program in the audit's tool.name field.
const ToolName = "redact-check"

// Now is overridable in tests; production callers leave it as time.Now.
var Now = time.Now

// Analyze decodes data as a PDF and returns the complete per-page audit.
// fileName is recorded in the audit's source block only; it is never
// used to resolve a path. ctx is checked cooperatively between pages; a
// cancelled context aborts the analysis with pdferr.Cancelled and no
// partial AuditLog.
func Analyze(ctx context.Context, data []byte, fileName string) (*audit.AuditLog, error) {
	if len(data) == 0 {
		return nil, pdferr.New(pdferr.EmptyInput, "analyze", "")
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, pdferr.New(pdferr.MalformedPdf, "analyze", "missing %PDF- prefix")
	}

	doc, err := pdfaccess.Open(data)
	if err != nil {
		return nil, pdferr.Wrap(pdferr.PdfParseFailed, "analyze", err)
	}

	pageCount := doc.PageCount()
	pages := make([]audit.PageAudit, 0, pageCount)

	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, pdferr.Wrap(pdferr.Cancelled, "analyze", err)
		}

		page, err := doc.Page(i)
		if err != nil {
			return nil, pdferr.Wrap(pdferr.PdfParseFailed, "analyze", err)
		}

		pages = append(pages, analyzePage(page))
	}

	result := audit.Build(ToolName, version.Short(), version.Build, fileName, len(data), data, Now(), pages)
	return &result, nil
}

func analyzePage(page *pdfaccess.Page) audit.PageAudit {
	deviceW := page.Width * reconstruct.ViewportScale
	deviceH := page.Height * reconstruct.ViewportScale
	pageArea := deviceW * deviceH

	rects := reconstruct.Reconstruct(page.Operators, page.Width, page.Height)
	textResult := textgeom.Analyze(page.Texts, page.Height)
	redactAnnots := annotinspect.CountRedactAnnots(page.Annots)

	var areaSum, maxAspect, maxAreaFraction float64
	samples := make([]audit.BBox, 0, 3)
	for _, r := range rects {
		areaSum += r.Area
		if pageArea > 0 && r.Area/pageArea > maxAreaFraction {
			maxAreaFraction = r.Area / pageArea
		}
		if aspect := aspectRatio(r.W, r.H); aspect > maxAspect {
			maxAspect = aspect
		}
		if len(samples) < 3 {
			samples = append(samples, audit.BBox{X: r.X, Y: r.Y, W: r.W, H: r.H})
		}
	}

	areaRatio := 0.0
	if pageArea > 0 {
		areaRatio = areaSum / pageArea
	}

	overlaps := overlapsAnyText(rects, textResult.Boxes)

	in := audit.PageInput{
		Page: page.Number,
		Signals: audit.Signals{
			HasText:            textResult.HasText(),
			TextChars:          textResult.TextChars,
			DarkRects:          len(rects),
			DarkRectAreaRatio:  areaRatio,
			RedactAnnots:       redactAnnots,
			OverlapsTextLikely: overlaps,
		},
		MaxAspectRatio:  maxAspect,
		MaxAreaFraction: maxAreaFraction,
		SampleRects:     samples,
	}
	return audit.BuildPage(in)
}

func aspectRatio(w, h float64) float64 {
	if w <= 0 || h <= 0 {
		return 0
	}
	if w >= h {
		return w / h
	}
	return h / w
}

func overlapsAnyText(rects []reconstruct.Rectangle, boxes []textgeom.Box) bool {
	for _, r := range rects {
		for _, b := range boxes {
			if aabbOverlap(r.X, r.Y, r.W, r.H, b.X, b.Y, b.W, b.H) {
				return true
			}
		}
	}
	return false
}

// aabbOverlap reports whether two axis-aligned boxes intersect with
// strictly positive width and height of overlap.
func aabbOverlap(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	left := max(ax, bx)
	right := min(ax+aw, bx+bw)
	top := max(ay, by)
	bottom := min(ay+ah, by+bh)
	return right-left > 0 && bottom-top > 0
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
