// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package audit

import "encoding/json"

// legacySummary is the document-level summary shape some older audit
// producers emitted before the risk type collapsed to binary. It is
// accepted on read and never written.
type legacySummary struct {
	PagesFlagged int `json:"pages_flagged"`
	PagesHigh    int `json:"pages_high,omitempty"`
	PagesMedium  int `json:"pages_medium,omitempty"`
	PagesLow     int `json:"pages_low,omitempty"`
}

type legacyDoc struct {
	Schema        string      `json:"schema"`
	SchemaVersion string      `json:"schema_version"`
	Tool          Tool        `json:"tool"`
	Source        Source      `json:"source"`
	GeneratedAt   string      `json:"generated_at"`
	Summary       legacySummary `json:"summary"`
	Pages         []PageAudit `json:"pages"`
}

// ParseLegacyOrCurrent decodes JSON that is either the current binary
// AuditLog schema or a legacy document still carrying
// pages_high/pages_medium/pages_low alongside pages_flagged. Legacy
// fields are dropped; the returned AuditLog always matches the current
// schema.
func ParseLegacyOrCurrent(data []byte) (*AuditLog, error) {
	var legacy legacyDoc
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, err
	}

	return &AuditLog{
		Schema:        legacy.Schema,
		SchemaVersion: legacy.SchemaVersion,
		Tool:          legacy.Tool,
		Source:        legacy.Source,
		GeneratedAt:   legacy.GeneratedAt,
		Summary:       Summary{PagesFlagged: legacy.Summary.PagesFlagged},
		Pages:         legacy.Pages,
	}, nil
}
