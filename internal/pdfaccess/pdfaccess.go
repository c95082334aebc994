// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pdfaccess parses bytes into a document, enumerates pages,
// exposes operator lists, text items, and annotations, and
// mutates/reserializes a page's content streams and annotation
// dictionary. The rest of the core (reconstruct, textgeom, annotinspect,
// stripper, sanitize) depends only on the interfaces in this file, never
// on the concrete codec, so a different PDF library could be swapped in
// behind the same contract.
package pdfaccess

// Page is the per-page view the core operates on. Width/Height are the
// page's MediaBox dimensions in PDF user-space units (not yet scaled by
// the viewport).
type Page struct {
	Number    int
	Width     float64
	Height    float64
	Operators []Operator
	Texts     []TextItem
	Annots    []Annotation
	Streams   []Stream
}

// Operator is one content-stream instruction together with its operands,
// represented as a version-agnostic shape: each Arg is one of float64,
// string, or []any (nested numeric/mixed arrays), or nil as the Args[0]
// placeholder of the rectangle-shaped "re" and "path" operators, so the rectangle
// reconstructor can pattern-match on argument shape rather than a
// codec's private opcode numbering.
type Operator struct {
	Op   string
	Args []any
}

// TextItem is one glyph run as reported by the text extraction pass.
// Width/Height are best-effort; zero means "unknown" and callers fall
// back to a fixed per-glyph estimate.
type TextItem struct {
	Text   string
	TX, TY float64
	Width  float64
	Height float64
}

// Annotation carries only what the Annotation Inspector needs.
type Annotation struct {
	Subtype string
}

// Stream is one content stream belonging to a page, already decompressed
// when Filter was recognized and successfully decoded.
type Stream struct {
	Index  int
	Body   []byte
	Filter string // original filter name, "" if none/unknown
}

// Document is the parsed, navigable form of a PDF. PageCount and Page are
// used by both Analyzer and Cleaner; DeletePageAnnots, ReplaceStream and
// Serialize are used only by the Cleaner, which always opens a fresh Document rather than reusing
// anything the Analyzer parsed.
type Document interface {
	PageCount() int
	Page(i int) (*Page, error)

	// DeletePageAnnots removes the page's Annots array entirely. A no-op
	// (returns false) if the page carried no Annots.
	DeletePageAnnots(i int) (removed bool, err error)

	// ReplaceStream overwrites the body of the page's content stream at
	// the given index. If dropFilter is true, the stream's Filter entry
	// is removed on rewrite (used whenever the body was handed to the
	// stripper decompressed, whether via its declared Filter or
	// speculatively).
	ReplaceStream(pageIdx, streamIdx int, newBody []byte, dropFilter bool) error

	// Serialize re-encodes the document, enabling object streams.
	Serialize() ([]byte, error)
}
