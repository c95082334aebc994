// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package json registers the "json" audit-log formatter.
package json

import (
	"encoding/json"

	"github.com/awslabs/redact-check/internal/audit"
	"github.com/awslabs/redact-check/internal/formatters"
)

func init() {
	formatters.Register(&Formatter{})
}

// Formatter renders the audit log as indented JSON, the schema's native
// wire format.
type Formatter struct{}

func (f *Formatter) Format(log *audit.AuditLog, _ formatters.Options) ([]byte, error) {
	return json.MarshalIndent(log, "", "  ")
}

func (f *Formatter) Name() string          { return "json" }
func (f *Formatter) Description() string   { return "Audit log as indented JSON (the schema's native format)" }
func (f *Formatter) FileExtension() string { return ".json" }
