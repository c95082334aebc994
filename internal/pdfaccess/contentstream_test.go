// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdfaccess

import "testing"

func TestParseOperators_RectFill(t *testing.T) {
	body := []byte("0 0 0 rg\n48 696 180 20 re\nf\n")
	ops := ParseOperators(body)

	var reOp *Operator
	for i := range ops {
		if ops[i].Op == "re" {
			reOp = &ops[i]
		}
	}
	if reOp == nil {
		t.Fatalf("no re operator found in %+v", ops)
	}
	if len(reOp.Args) != 2 {
		t.Fatalf("re args = %+v, want [nil, coords]", reOp.Args)
	}
	coords, ok := reOp.Args[1].([]any)
	if !ok || len(coords) != 4 {
		t.Fatalf("re coords = %+v, want 4-number array", reOp.Args[1])
	}
	if coords[0].(float64) != 48 || coords[3].(float64) != 20 {
		t.Fatalf("re coords = %+v, want 48,696,180,20", coords)
	}
}

func TestParseOperators_FillColorScalars(t *testing.T) {
	body := []byte("0.1 0.2 0.3 rg\n")
	ops := ParseOperators(body)
	if len(ops) != 1 || ops[0].Op != "rg" {
		t.Fatalf("ops = %+v, want single rg", ops)
	}
	if len(ops[0].Args) != 3 {
		t.Fatalf("rg args = %+v, want 3 numbers", ops[0].Args)
	}
}

func TestParseOperators_PathBasedRectAsBoundingBox(t *testing.T) {
	body := []byte("q\n0 g\n100 100 m\n300 100 l\n300 120 l\n100 120 l\nh\nf\nQ\n")
	ops := ParseOperators(body)

	var pathOp *Operator
	for i := range ops {
		if ops[i].Op == "path" {
			pathOp = &ops[i]
		}
	}
	if pathOp == nil {
		t.Fatalf("expected synthetic path operator from closed subpath, got %+v", ops)
	}
	coords := pathOp.Args[1].([]any)
	if coords[0].(float64) != 100 || coords[1].(float64) != 100 || coords[2].(float64) != 300 || coords[3].(float64) != 120 {
		t.Fatalf("path bbox = %+v, want 100,100,300,120", coords)
	}
}

func TestParseOperators_IgnoresStringsAndComments(t *testing.T) {
	body := []byte("BT\n(Hello (World)) Tj\nET\n% a comment\n0 0 0 rg\n")
	ops := ParseOperators(body)
	var sawRG bool
	for _, op := range ops {
		if op.Op == "rg" {
			sawRG = true
		}
	}
	if !sawRG {
		t.Fatalf("expected rg operator to survive parsing past string/comment tokens: %+v", ops)
	}
}

func TestParseOperators_EmptyBody(t *testing.T) {
	if ops := ParseOperators(nil); len(ops) != 0 {
		t.Fatalf("ops = %+v, want empty", ops)
	}
}
