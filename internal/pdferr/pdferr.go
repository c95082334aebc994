// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pdferr defines the error kinds shared by the analyzer and the
// cleaner, following the typed-wrapper-error idiom used across the pack
// (compare WrapperError in the PDF access wrappers this project's access
// layer is grounded on).
package pdferr

import "fmt"

// Kind identifies the class of failure a core operation reports.
type Kind string

const (
	// EmptyInput means the caller supplied zero-length bytes.
	EmptyInput Kind = "empty_input"
	// MalformedPdf means the input is missing the "%PDF-" magic prefix.
	MalformedPdf Kind = "malformed_pdf"
	// PdfParseFailed means the underlying PDF codec refused the file.
	PdfParseFailed Kind = "pdf_parse_failed"
	// SerializeFailed means the reserializer refused to emit bytes.
	SerializeFailed Kind = "serialize_failed"
	// Cancelled means the operation was stopped cooperatively at a page boundary.
	Cancelled Kind = "cancelled"
	// FileAccessFailed means a filesystem operation on the input or
	// output PDF path failed for a reason other than permissions or
	// path length.
	FileAccessFailed Kind = "file_access_failed"
	// PermissionDenied means the OS refused the filesystem operation
	// due to file permissions.
	PermissionDenied Kind = "permission_denied"
	// PathTooLong means the filesystem operation failed because the
	// path exceeded a platform length limit.
	PathTooLong Kind = "path_too_long"
)

// Error is the concrete error type returned by Analyze and Clean.
type Error struct {
	Kind   Kind
	Op     string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Kind, allowing
// callers to use errors.Is(err, pdferr.New(pdferr.MalformedPdf, "", "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New constructs an *Error of the given kind.
func New(kind Kind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// Wrap constructs an *Error of the given kind, retaining the cause for errors.Unwrap.
func Wrap(kind Kind, op string, err error) *Error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &Error{Kind: kind, Op: op, Detail: detail, Err: err}
}
