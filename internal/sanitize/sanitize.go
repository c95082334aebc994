// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package sanitize deletes a page's entire Annots array. It is
// deliberately as small as the annotation inspector it mirrors — it
// trusts the audit for subtype classification rather than re-deriving
// it.
package sanitize

import "github.com/awslabs/redact-check/internal/pdfaccess"

// Page removes the page's Annots entry entirely, reporting whether
// anything was removed.
func Page(doc pdfaccess.Document, pageNum int) (removed bool, err error) {
	return doc.DeletePageAnnots(pageNum)
}
