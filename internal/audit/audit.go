// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package audit assembles per-page risk findings into the stable
// AuditLog schema shared by the Analyzer and Cleaner.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/awslabs/redact-check/internal/risk"
)

// Schema and SchemaVersion are fixed, part of the contract — never
// derived from build metadata.
const (
	Schema        = "com.example.redact-check"
	SchemaVersion = "1.0.0"
)

// Tool identifies the program that produced the audit.
type Tool struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Build   string `json:"build" yaml:"build"`
}

// Source describes the analyzed input.
type Source struct {
	FileName      string `json:"file_name" yaml:"file_name"`
	FileSizeBytes int    `json:"file_size_bytes" yaml:"file_size_bytes"`
	SHA256        string `json:"sha256" yaml:"sha256"`
	PageCount     int    `json:"page_count" yaml:"page_count"`
}

// Signals is the per-page signal set.
type Signals struct {
	HasText           bool    `json:"has_text" yaml:"has_text"`
	TextChars         int     `json:"text_chars" yaml:"text_chars"`
	DarkRects         int     `json:"dark_rects" yaml:"dark_rects"`
	DarkRectAreaRatio float64 `json:"dark_rect_area_ratio" yaml:"dark_rect_area_ratio"`
	RedactAnnots      int     `json:"redact_annots" yaml:"redact_annots"`
	OverlapsTextLikely bool   `json:"overlaps_text_likely" yaml:"overlaps_text_likely"`
}

// BBox is a device-space rectangle sample.
type BBox struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Finding is a tagged union of detected redaction artifacts. Exactly
// one of the variant-specific fields is meaningful per Type.
type Finding struct {
	Type        string `json:"type" yaml:"type"`
	Count       int    `json:"count" yaml:"count"`
	BBoxSamples []BBox `json:"bbox_samples,omitempty" yaml:"bbox_samples,omitempty"`
}

const (
	FindingSuspectedOverlayRect = "suspected_overlay_rect"
	FindingRedactAnnotation     = "redact_annotation"
)

// PageAudit is the per-page audit record.
type PageAudit struct {
	Page       int       `json:"page" yaml:"page"`
	Risk       string    `json:"risk" yaml:"risk"`
	Confidence int       `json:"confidence" yaml:"confidence"`
	Signals    Signals   `json:"signals" yaml:"signals"`
	Findings   []Finding `json:"findings" yaml:"findings"`
}

// Summary holds document-level roll-ups.
type Summary struct {
	PagesFlagged int `json:"pages_flagged" yaml:"pages_flagged"`
}

// AuditLog is the full, stable document produced by Analyze.
type AuditLog struct {
	Schema        string    `json:"schema" yaml:"schema"`
	SchemaVersion string    `json:"schema_version" yaml:"schema_version"`
	Tool          Tool      `json:"tool" yaml:"tool"`
	Source        Source    `json:"source" yaml:"source"`
	GeneratedAt   string    `json:"generated_at" yaml:"generated_at"`
	Summary       Summary   `json:"summary" yaml:"summary"`
	Pages         []PageAudit `json:"pages" yaml:"pages"`
}

// SHA256Hex returns the lowercase hex SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// PageInput is everything the Builder needs for one page; callers
// assemble it from the Reconstructor, Text Geometry, and Annotation
// Inspector outputs.
type PageInput struct {
	Page              int
	Signals           Signals
	MaxAspectRatio    float64
	MaxAreaFraction   float64
	SampleRects       []BBox // up to 3, caller pre-truncates
}

// BuildPage assembles findings and score for one page.
func BuildPage(in PageInput) PageAudit {
	confidence, verdict := risk.Score(risk.Signals{
		HasText:           in.Signals.HasText,
		DarkRects:         in.Signals.DarkRects,
		DarkRectAreaRatio: in.Signals.DarkRectAreaRatio,
		RedactAnnots:      in.Signals.RedactAnnots,
		OverlapsText:      in.Signals.OverlapsTextLikely,
		MaxAspectRatio:    in.MaxAspectRatio,
		MaxAreaFraction:   in.MaxAreaFraction,
	})

	var findings []Finding
	if in.Signals.DarkRects > 0 {
		samples := in.SampleRects
		if len(samples) > 3 {
			samples = samples[:3]
		}
		findings = append(findings, Finding{
			Type:        FindingSuspectedOverlayRect,
			Count:       in.Signals.DarkRects,
			BBoxSamples: samples,
		})
	}
	if in.Signals.RedactAnnots > 0 {
		findings = append(findings, Finding{
			Type:  FindingRedactAnnotation,
			Count: in.Signals.RedactAnnots,
		})
	}

	sig := in.Signals
	sig.DarkRectAreaRatio = roundTo4(sig.DarkRectAreaRatio)

	return PageAudit{
		Page:       in.Page,
		Risk:       string(verdict),
		Confidence: confidence,
		Signals:    sig,
		Findings:   findings,
	}
}

// Build assembles the full AuditLog for a document.
func Build(toolName, toolVersion, toolBuild, fileName string, fileSize int, data []byte, generatedAt time.Time, pages []PageAudit) AuditLog {
	flagged := 0
	for _, p := range pages {
		if p.Risk == string(risk.Flagged) {
			flagged++
		}
	}

	return AuditLog{
		Schema:        Schema,
		SchemaVersion: SchemaVersion,
		Tool:          Tool{Name: toolName, Version: toolVersion, Build: toolBuild},
		Source: Source{
			FileName:      fileName,
			FileSizeBytes: fileSize,
			SHA256:        SHA256Hex(data),
			PageCount:     len(pages),
		},
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Summary:     Summary{PagesFlagged: flagged},
		Pages:       pages,
	}
}

func roundTo4(f float64) float64 {
	const p = 10000.0
	if f < 0 {
		return float64(int(f*p-0.5)) / p
	}
	return float64(int(f*p+0.5)) / p
}
