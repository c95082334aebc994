// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package annotinspect counts a page's Redact-subtype annotations.
package annotinspect

import (
	"strings"

	"github.com/awslabs/redact-check/internal/pdfaccess"
)

// CountRedactAnnots returns the number of annotations on the page whose
// Subtype equals "Redact", case-insensitively.
func CountRedactAnnots(annots []pdfaccess.Annotation) int {
	n := 0
	for _, a := range annots {
		if strings.EqualFold(a.Subtype, "Redact") {
			n++
		}
	}
	return n
}
