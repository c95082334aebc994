// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPage_FindingsPresentWhenSignalsNonzero(t *testing.T) {
	pa := BuildPage(PageInput{
		Page: 1,
		Signals: Signals{
			HasText:            true,
			DarkRects:          2,
			RedactAnnots:       1,
			OverlapsTextLikely: true,
		},
		SampleRects: []BBox{{X: 1, Y: 2, W: 3, H: 4}, {X: 5, Y: 6, W: 7, H: 8}},
	})
	require.Len(t, pa.Findings, 2)
	var sawOverlay, sawAnnot bool
	for _, f := range pa.Findings {
		if f.Type == FindingSuspectedOverlayRect {
			sawOverlay = true
			assert.Equal(t, 2, f.Count, "overlay finding count")
		}
		if f.Type == FindingRedactAnnotation {
			sawAnnot = true
			assert.Equal(t, 1, f.Count, "annot finding count")
		}
	}
	assert.True(t, sawOverlay, "expected suspected-overlay finding")
	assert.True(t, sawAnnot, "expected redact-annotation finding")
}

func TestBuildPage_NoFindingsWhenSignalsZero(t *testing.T) {
	pa := BuildPage(PageInput{Page: 1, Signals: Signals{HasText: true}})
	assert.Empty(t, pa.Findings)
}

func TestBuildPage_SamplesTruncatedToThree(t *testing.T) {
	pa := BuildPage(PageInput{
		Page:        1,
		Signals:     Signals{DarkRects: 5},
		SampleRects: []BBox{{X: 1}, {X: 2}, {X: 3}, {X: 4}, {X: 5}},
	})
	require.Len(t, pa.Findings, 1)
	assert.Len(t, pa.Findings[0].BBoxSamples, 3)
}

func TestBuildPage_AreaRatioRoundedTo4Decimals(t *testing.T) {
	pa := BuildPage(PageInput{
		Page:    1,
		Signals: Signals{DarkRectAreaRatio: 0.123456789},
	})
	assert.Equal(t, 0.1235, pa.Signals.DarkRectAreaRatio)
}

func TestSHA256Hex_MatchesStandardDigest(t *testing.T) {
	data := []byte("%PDF-1.7\nhello")
	want := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(want[:]), SHA256Hex(data))
}

func TestBuild_SchemaFieldsFixed(t *testing.T) {
	log := Build("redact-check", "1.0.0", "test", "file.pdf", 100, []byte("%PDF-"), time.Unix(0, 0), nil)
	assert.Equal(t, Schema, log.Schema)
	assert.Equal(t, SchemaVersion, log.SchemaVersion)
}

func TestBuild_PagesFlaggedCountsOnlyFlaggedVerdicts(t *testing.T) {
	pages := []PageAudit{
		{Risk: "flagged"},
		{Risk: "none"},
		{Risk: "flagged"},
	}
	log := Build("t", "v", "b", "f.pdf", 1, []byte("%PDF-"), time.Unix(0, 0), pages)
	assert.Equal(t, 2, log.Summary.PagesFlagged)
}

func TestParseLegacyOrCurrent_DropsLegacyFields(t *testing.T) {
	raw := []byte(`{
		"schema": "com.example.redact-check",
		"schema_version": "1.0.0",
		"tool": {"name": "redact-check", "version": "1.0.0", "build": "web"},
		"source": {"file_name": "a.pdf", "file_size_bytes": 10, "sha256": "abc", "page_count": 1},
		"generated_at": "2024-01-01T00:00:00Z",
		"summary": {"pages_flagged": 1, "pages_high": 1, "pages_medium": 0, "pages_low": 0},
		"pages": []
	}`)
	got, err := ParseLegacyOrCurrent(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Summary.PagesFlagged)
}
