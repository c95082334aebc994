// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package yaml registers the "yaml" audit-log formatter.
package yaml

import (
	"gopkg.in/yaml.v3"

	"github.com/awslabs/redact-check/internal/audit"
	"github.com/awslabs/redact-check/internal/formatters"
)

func init() {
	formatters.Register(&Formatter{})
}

// Formatter renders the audit log as YAML.
type Formatter struct{}

func (f *Formatter) Format(log *audit.AuditLog, _ formatters.Options) ([]byte, error) {
	return yaml.Marshal(log)
}

func (f *Formatter) Name() string          { return "yaml" }
func (f *Formatter) Description() string   { return "Audit log as YAML" }
func (f *Formatter) FileExtension() string { return ".yaml" }
