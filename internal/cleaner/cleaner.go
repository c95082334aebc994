// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cleaner turns raw PDF bytes and an optional prior audit into
// cleaned PDF bytes plus an ActionsSummary. It always opens its own
// fresh Document — it never reuses state from an Analyzer run — and
// treats a caller-supplied prior audit as advisory input only, used for
// the removed_redact_annots_estimate roll-up and never to change what
// gets stripped.
package cleaner

import (
	"bytes"
	"context"

	"github.com/awslabs/redact-check/internal/audit"
	"github.com/awslabs/redact-check/internal/pdfaccess"
	"github.com/awslabs/redact-check/internal/pdferr"
	"github.com/awslabs/redact-check/internal/sanitize"
	"github.com/awslabs/redact-check/internal/stripper"
)

var pdfMagic = []byte("%PDF-")

const advisoryNote = "Overlay removal is heuristic; verify output pages listed in the audit."

// ActionsSummary reports what the Cleaner actually did. Its fields
// match the documented actions-summary JSON shape field for field.
type ActionsSummary struct {
	RemovedRedactAnnotsEstimate int    `json:"removed_redact_annots_estimate" yaml:"removed_redact_annots_estimate"`
	RemovedAnnotsPages          int    `json:"removed_annots_pages" yaml:"removed_annots_pages"`
	RemovedOverlayOpsEstimate   int    `json:"removed_overlay_ops_estimate" yaml:"removed_overlay_ops_estimate"`
	Note                        string `json:"note" yaml:"note"`
}

// Clean reopens data as a fresh PDF, strips redaction annotations and
// black-rectangle overlay content-stream idioms on every page, and
// returns the rewritten document bytes alongside a summary of what
// changed. priorAudit is optional and only informs
// RemovedRedactAnnotsEstimate; it never gates which pages get cleaned.
// ctx is checked cooperatively between pages; on cancellation Clean
// returns pdferr.Cancelled and no document at all, never a partially
// rewritten one.
func Clean(ctx context.Context, data []byte, priorAudit *audit.AuditLog) ([]byte, ActionsSummary, error) {
	summary := ActionsSummary{Note: advisoryNote}

	if len(data) == 0 {
		return nil, summary, pdferr.New(pdferr.EmptyInput, "clean", "")
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, summary, pdferr.New(pdferr.MalformedPdf, "clean", "missing %PDF- prefix")
	}

	doc, err := pdfaccess.Open(data)
	if err != nil {
		return nil, summary, pdferr.Wrap(pdferr.PdfParseFailed, "clean", err)
	}

	if priorAudit != nil {
		for _, p := range priorAudit.Pages {
			summary.RemovedRedactAnnotsEstimate += p.Signals.RedactAnnots
		}
	}

	for i := 1; i <= doc.PageCount(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, summary, pdferr.Wrap(pdferr.Cancelled, "clean", err)
		}

		removedAnnots, err := sanitize.Page(doc, i)
		if err != nil {
			return nil, summary, pdferr.Wrap(pdferr.SerializeFailed, "clean", err)
		}
		if removedAnnots {
			summary.RemovedAnnotsPages++
			if priorAudit == nil {
				summary.RemovedRedactAnnotsEstimate++
			}
		}

		page, err := doc.Page(i)
		if err != nil {
			return nil, summary, pdferr.Wrap(pdferr.PdfParseFailed, "clean", err)
		}

		for _, stream := range page.Streams {
			newBody, removedEstimate, dropFilter, changed := stripper.Strip(stream.Body, stream.Filter)
			if !changed {
				continue
			}
			if err := doc.ReplaceStream(i, stream.Index, newBody, dropFilter); err != nil {
				return nil, summary, pdferr.Wrap(pdferr.SerializeFailed, "clean", err)
			}
			summary.RemovedOverlayOpsEstimate += removedEstimate
		}
	}

	out, err := doc.Serialize()
	if err != nil {
		return nil, summary, pdferr.Wrap(pdferr.SerializeFailed, "clean", err)
	}
	return out, summary, nil
}
