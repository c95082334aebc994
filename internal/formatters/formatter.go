// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package formatters is the audit-log output registry: a Formatter
// interface keyed by name, a global Registry, and sub-packages that
// self-register via init().
package formatters

import (
	"fmt"
	"strings"

	"github.com/awslabs/redact-check/internal/audit"
)

// Options controls cosmetic formatting choices shared by every
// formatter; individual formatters ignore fields they have no use for.
type Options struct {
	NoColor bool
	Verbose bool
}

// Formatter renders an AuditLog into bytes for one output format.
type Formatter interface {
	Format(log *audit.AuditLog, options Options) ([]byte, error)
	Name() string
	Description() string
	FileExtension() string
}

// Registry holds all registered formatters.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

// Register adds a formatter to the registry, keyed by its Name().
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Name()] = f
}

// Get retrieves a formatter by name.
func (r *Registry) Get(name string) (Formatter, bool) {
	f, ok := r.formatters[name]
	return f, ok
}

// List returns all registered formatter names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry is the global formatter registry populated by each
// sub-package's init().
var DefaultRegistry = NewRegistry()

// Register is a convenience function registering against DefaultRegistry.
func Register(f Formatter) {
	DefaultRegistry.Register(f)
}

// Get looks up a formatter in DefaultRegistry.
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List lists every formatter name in DefaultRegistry.
func List() []string {
	return DefaultRegistry.List()
}

// Export renders log using the named formatter from DefaultRegistry.
func Export(format string, log *audit.AuditLog, options Options) ([]byte, error) {
	f, ok := Get(format)
	if !ok {
		return nil, fmt.Errorf("unsupported format %q. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return f.Format(log, options)
}
