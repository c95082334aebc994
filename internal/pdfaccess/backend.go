// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdfaccess

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// pdfcpuDoc is the concrete Document backed by pdfcpu for structure,
// annotations, and content-stream mutation, and ledongthuc/pdf for text
// item extraction.
type pdfcpuDoc struct {
	ctx      *model.Context
	pages    []types.Dict // ordered leaf page dictionaries, 1 per page
	textDoc  *pdf.Reader
	textFile *pdf.File
}

// Open parses raw PDF bytes into a Document. It never mutates the input
// slice; the text-extraction reader keeps reading from it for as long as
// the Document is used.
func Open(data []byte) (Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read context: %w", err)
	}

	pages, err := collectPageDicts(ctx)
	if err != nil {
		return nil, fmt.Errorf("walk page tree: %w", err)
	}

	textFile, textReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// Text extraction is best-effort: a document pdfcpu accepts but
		// ledongthuc/pdf rejects still yields rectangle/annotation
		// signals, just with has_text permanently false.
		textFile, textReader = nil, nil
	}

	return &pdfcpuDoc{ctx: ctx, pages: pages, textDoc: textReader, textFile: textFile}, nil
}

func (d *pdfcpuDoc) PageCount() int {
	return len(d.pages)
}

func (d *pdfcpuDoc) Page(i int) (*Page, error) {
	if i < 1 || i > len(d.pages) {
		return nil, fmt.Errorf("page %d out of range (1..%d)", i, len(d.pages))
	}
	pd := d.pages[i-1]

	w, h := mediaBoxSize(d.ctx.XRefTable, pd)

	streams, err := d.contentStreams(pd)
	if err != nil {
		return nil, fmt.Errorf("content streams for page %d: %w", i, err)
	}

	var ops []Operator
	for _, s := range streams {
		ops = append(ops, ParseOperators(s.Body)...)
	}

	annots := d.annotations(pd)
	texts := d.textItems(i)

	return &Page{
		Number:    i,
		Width:     w,
		Height:    h,
		Operators: ops,
		Texts:     texts,
		Annots:    annots,
		Streams:   streams,
	}, nil
}

func (d *pdfcpuDoc) DeletePageAnnots(i int) (bool, error) {
	if i < 1 || i > len(d.pages) {
		return false, fmt.Errorf("page %d out of range (1..%d)", i, len(d.pages))
	}
	pd := d.pages[i-1]
	if _, ok := pd["Annots"]; !ok {
		return false, nil
	}
	delete(pd, "Annots")
	return true, nil
}

func (d *pdfcpuDoc) ReplaceStream(pageIdx, streamIdx int, newBody []byte, dropFilter bool) error {
	if pageIdx < 1 || pageIdx > len(d.pages) {
		return fmt.Errorf("page %d out of range (1..%d)", pageIdx, len(d.pages))
	}
	pd := d.pages[pageIdx-1]
	refs, err := contentRefs(d.ctx.XRefTable, pd)
	if err != nil {
		return err
	}
	if streamIdx < 0 || streamIdx >= len(refs) {
		return fmt.Errorf("stream %d out of range (0..%d)", streamIdx, len(refs)-1)
	}

	sd, err := d.ctx.XRefTable.DereferenceStreamDict(refs[streamIdx])
	if err != nil {
		return fmt.Errorf("dereference stream %d: %w", streamIdx, err)
	}

	sd.Content = newBody
	if dropFilter {
		delete(sd.Dict, "Filter")
		delete(sd.Dict, "DecodeParms")
	}
	if err := sd.Encode(); err != nil {
		return fmt.Errorf("re-encode stream %d: %w", streamIdx, err)
	}
	sd.Dict["Length"] = types.Integer(len(sd.Raw))

	setObject(d.ctx.XRefTable, refs[streamIdx], *sd)
	return nil
}

func (d *pdfcpuDoc) Serialize() ([]byte, error) {
	d.ctx.Write.WriteObjectStream = true
	d.ctx.Write.WriteXRefStream = true

	var buf bytes.Buffer
	if err := api.WriteContext(d.ctx, &buf); err != nil {
		return nil, fmt.Errorf("pdfcpu write context: %w", err)
	}
	return buf.Bytes(), nil
}

// --- page tree & dict helpers ---

func collectPageDicts(ctx *model.Context) ([]types.Dict, error) {
	xref := ctx.XRefTable
	root, err := xref.Catalog()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	pagesRoot, err := xref.DereferenceDict(root["Pages"])
	if err != nil {
		return nil, fmt.Errorf("page tree root: %w", err)
	}

	var out []types.Dict
	var walk func(types.Dict) error
	walk = func(node types.Dict) error {
		typeName, _ := dictName(node, "Type")
		if typeName == "Page" {
			out = append(out, node)
			return nil
		}
		kidsArr, err := xref.DereferenceArray(node["Kids"])
		if err != nil {
			return err
		}
		for _, kidObj := range kidsArr {
			kid, err := xref.DereferenceDict(kidObj)
			if err != nil {
				return err
			}
			if err := walk(kid); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(pagesRoot); err != nil {
		return nil, err
	}
	return out, nil
}

func mediaBoxSize(xref *model.XRefTable, pd types.Dict) (float64, float64) {
	box, err := xref.DereferenceArray(pd["MediaBox"])
	if err != nil || len(box) != 4 {
		return 612, 792 // US Letter default, matches common PDF producer fallback
	}
	nums := make([]float64, 4)
	for i, v := range box {
		nums[i] = numberValue(v)
	}
	return nums[2] - nums[0], nums[3] - nums[1]
}

func contentRefs(xref *model.XRefTable, pd types.Dict) ([]types.IndirectRef, error) {
	contents, ok := pd["Contents"]
	if !ok {
		return nil, nil
	}
	if ref, ok := contents.(types.IndirectRef); ok {
		return []types.IndirectRef{ref}, nil
	}
	arr, err := xref.DereferenceArray(contents)
	if err != nil {
		return nil, err
	}
	refs := make([]types.IndirectRef, 0, len(arr))
	for _, o := range arr {
		if ref, ok := o.(types.IndirectRef); ok {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (d *pdfcpuDoc) contentStreams(pd types.Dict) ([]Stream, error) {
	refs, err := contentRefs(d.ctx.XRefTable, pd)
	if err != nil {
		return nil, err
	}
	streams := make([]Stream, 0, len(refs))
	for i, ref := range refs {
		sd, err := d.ctx.XRefTable.DereferenceStreamDict(ref)
		if err != nil {
			continue
		}
		if err := sd.Decode(); err != nil {
			// Left as raw bytes; the stripper's ASCII gate will reject
			// anything that isn't plausibly text anyway.
			streams = append(streams, Stream{Index: i, Body: sd.Raw, Filter: filterName(sd.Dict)})
			continue
		}
		streams = append(streams, Stream{Index: i, Body: sd.Content, Filter: filterName(sd.Dict)})
	}
	return streams, nil
}

func filterName(d types.Dict) string {
	name, _ := dictName(d, "Filter")
	return name
}

func (d *pdfcpuDoc) annotations(pd types.Dict) []Annotation {
	annotsObj, ok := pd["Annots"]
	if !ok {
		return nil
	}
	arr, err := d.ctx.XRefTable.DereferenceArray(annotsObj)
	if err != nil {
		return nil
	}
	out := make([]Annotation, 0, len(arr))
	for _, a := range arr {
		ad, err := d.ctx.XRefTable.DereferenceDict(a)
		if err != nil {
			continue
		}
		subtype, _ := dictName(ad, "Subtype")
		out = append(out, Annotation{Subtype: subtype})
	}
	return out
}

func (d *pdfcpuDoc) textItems(pageNum int) []TextItem {
	if d.textDoc == nil {
		return nil
	}
	p := d.textDoc.Page(pageNum)
	if p.V.IsNull() {
		return nil
	}
	texts := p.Content().Text
	out := make([]TextItem, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		out = append(out, TextItem{
			Text:   t.S,
			TX:     t.X,
			TY:     t.Y,
			Width:  t.W,
			Height: t.FontSize,
		})
	}
	return out
}

// dictName reads a Name or string-typed dictionary entry, dereferencing
// through an indirect reference if necessary.
func dictName(d types.Dict, key string) (string, bool) {
	v, ok := d[key]
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case types.Name:
		return string(t), true
	case types.StringLiteral:
		return string(t), true
	}
	return "", false
}

func numberValue(o types.Object) float64 {
	switch v := o.(type) {
	case types.Integer:
		return float64(v)
	case types.Float:
		return float64(v)
	}
	return 0
}

func setObject(xref *model.XRefTable, ref types.IndirectRef, obj types.Object) {
	if entry, ok := xref.Table[ref.ObjectNumber.Value()]; ok {
		entry.Object = obj
	}
}
