// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package sarif registers the "sarif" audit-log formatter, giving the
// per-page audit a CI-ingestible SARIF 2.1.0 document. Each finding on a
// flagged page becomes one SARIF result, ruled by the finding's type.
package sarif

import (
	"encoding/json"
	"fmt"

	"github.com/awslabs/redact-check/internal/audit"
	"github.com/awslabs/redact-check/internal/formatters"
)

func init() {
	formatters.Register(&Formatter{})
}

const schemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const (
	ruleOverlayRect    = "suspected-overlay-redaction"
	ruleRedactAnnot    = "redact-annotation-present"
)

// Formatter renders the audit log as a SARIF 2.1.0 report.
type Formatter struct{}

func (f *Formatter) Name() string          { return "sarif" }
func (f *Formatter) Description() string   { return "SARIF 2.1.0 format for CI ingestion (GitHub Security, IDEs)" }
func (f *Formatter) FileExtension() string { return ".sarif" }

func (f *Formatter) Format(log *audit.AuditLog, _ formatters.Options) ([]byte, error) {
	report := report{
		Schema:  schemaURI,
		Version: "2.1.0",
		Runs: []run{{
			Tool:    tool{Driver: driver{Name: log.Tool.Name, Version: log.Tool.Version, Rules: rules()}},
			Results: results(log),
		}},
	}
	return json.MarshalIndent(report, "", "  ")
}

func results(log *audit.AuditLog) []result {
	out := []result{}
	for _, p := range log.Pages {
		if p.Risk != "flagged" {
			continue
		}
		for _, finding := range p.Findings {
			ruleID := ruleRedactAnnot
			if finding.Type == audit.FindingSuspectedOverlayRect {
				ruleID = ruleOverlayRect
			}
			out = append(out, result{
				RuleID: ruleID,
				Level:  "warning",
				Message: message{
					Text: fmt.Sprintf("page %d: %s (count=%d, confidence=%d)", p.Page, finding.Type, finding.Count, p.Confidence),
				},
				Locations: []location{{
					PhysicalLocation: physicalLocation{
						ArtifactLocation: artifactLocation{URI: log.Source.FileName},
						Region:           region{StartLine: p.Page},
					},
				}},
			})
		}
	}
	return out
}

func rules() []rule {
	return []rule{
		{ID: ruleOverlayRect, ShortDescription: message{Text: "Suspected black-rectangle overlay redaction"}},
		{ID: ruleRedactAnnot, ShortDescription: message{Text: "Redact-subtype annotation present"}},
	}
}

// --- SARIF 2.1.0 subset ---

type report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []run  `json:"runs"`
}

type run struct {
	Tool    tool     `json:"tool"`
	Results []result `json:"results"`
}

type tool struct {
	Driver driver `json:"driver"`
}

type driver struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Rules   []rule `json:"rules,omitempty"`
}

type rule struct {
	ID               string  `json:"id"`
	ShortDescription message `json:"shortDescription"`
}

type message struct {
	Text string `json:"text"`
}

type result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   message    `json:"message"`
	Locations []location `json:"locations"`
}

type location struct {
	PhysicalLocation physicalLocation `json:"physicalLocation"`
}

type physicalLocation struct {
	ArtifactLocation artifactLocation `json:"artifactLocation"`
	Region           region           `json:"region"`
}

type artifactLocation struct {
	URI string `json:"uri"`
}

type region struct {
	StartLine int `json:"startLine"`
}
