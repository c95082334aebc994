// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdfaccess

import (
	"strconv"
)

// ParseOperators tokenizes a decoded content-stream body into a
// version-agnostic operator list. Scalar-argument operators (rg, g, cm)
// carry their operands as a flat []any of float64. Rectangle-shaped
// operators (re, and multi-point closed paths built from m/l/h) carry
// their coordinates as a nested numeric array at Args[1] — this access
// layer always reports coordinates at that conventional slot regardless
// of which drawing idiom produced them, so the rectangle reconstructor
// never has to special-case "re" vs. a hand-built path.
func ParseOperators(body []byte) []Operator {
	toks := tokenize(body)
	var ops []Operator
	var stack []any

	var path pathAccumulator

	flush := func(op string) Operator {
		args := stack
		stack = nil
		return Operator{Op: op, Args: args}
	}

	i := 0
	for i < len(toks) {
		t := toks[i]
		switch t.kind {
		case tokNumber, tokString, tokArray, tokName:
			stack = append(stack, t.value)
			i++
			continue
		case tokKeyword:
			op := t.value.(string)
			switch op {
			case "m":
				path.moveTo(stack)
			case "l":
				path.lineTo(stack)
			case "h":
				if o, ok := path.close(); ok {
					ops = append(ops, o)
				}
			case "re":
				path.reset()
				if len(stack) >= 4 {
					nums, ok := allFloats(stack[len(stack)-4:])
					if ok {
						stack = nil
						ops = append(ops, Operator{
							Op:   "re",
							Args: []any{nil, []any{nums[0], nums[1], nums[2], nums[3]}},
						})
						i++
						continue
					}
				}
			case "f", "F", "f*", "S", "s", "B", "B*", "b", "b*", "n":
				// Path-painting operators terminate the current subpath
				// accumulation without producing further synthetic ops.
				path.reset()
			case "Q":
				path.reset()
			}
			ops = append(ops, flush(op))
			i++
			continue
		default:
			i++
		}
	}
	return ops
}

// pathAccumulator tracks the points of the current subpath so closed,
// axis-aligned rectangular paths (q / 0 g / x0 y0 m / x1 y1 l ... / h / f
// / Q) can be reported to the reconstructor as a single bounding-box
// coordinate group, the same shape a real "re" produces.
type pathAccumulator struct {
	points [][2]float64
}

func (p *pathAccumulator) moveTo(stack []any) {
	if pt, ok := lastPoint(stack); ok {
		p.points = p.points[:0]
		p.points = append(p.points, pt)
	}
}

func (p *pathAccumulator) lineTo(stack []any) {
	if pt, ok := lastPoint(stack); ok {
		p.points = append(p.points, pt)
	}
}

func (p *pathAccumulator) reset() {
	p.points = p.points[:0]
}

// close emits a synthetic "path" operator carrying the bounding box of
// the accumulated points, if there are enough points to describe a
// rectangle. The box is reported as a corner pair (minX,minY,maxX,maxY),
// which the reconstructor's coordinate-format detection converts to
// (x,y,w,h).
func (p *pathAccumulator) close() (Operator, bool) {
	if len(p.points) < 3 {
		return Operator{}, false
	}
	minX, minY := p.points[0][0], p.points[0][1]
	maxX, maxY := minX, minY
	for _, pt := range p.points[1:] {
		if pt[0] < minX {
			minX = pt[0]
		}
		if pt[0] > maxX {
			maxX = pt[0]
		}
		if pt[1] < minY {
			minY = pt[1]
		}
		if pt[1] > maxY {
			maxY = pt[1]
		}
	}
	return Operator{
		Op:   "path",
		Args: []any{nil, []any{minX, minY, maxX, maxY}},
	}, true
}

func lastPoint(stack []any) ([2]float64, bool) {
	if len(stack) < 2 {
		return [2]float64{}, false
	}
	nums, ok := allFloats(stack[len(stack)-2:])
	if !ok {
		return [2]float64{}, false
	}
	return [2]float64{nums[0], nums[1]}, true
}

func allFloats(vs []any) ([]float64, bool) {
	out := make([]float64, len(vs))
	for i, v := range vs {
		f, ok := v.(float64)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// --- tokenizer ---

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokArray
	tokKeyword
)

type token struct {
	kind  tokenKind
	value any
}

func tokenize(body []byte) []token {
	var toks []token
	i := 0
	n := len(body)
	for i < n {
		c := body[i]
		switch {
		case isSpace(c):
			i++
		case c == '%':
			for i < n && body[i] != '\n' && body[i] != '\r' {
				i++
			}
		case c == '[':
			val, next := parseArray(body, i)
			toks = append(toks, token{kind: tokArray, value: val})
			i = next
		case c == '(':
			_, next := parseLiteralString(body, i)
			i = next
		case c == '<':
			if i+1 < n && body[i+1] == '<' {
				i = skipDict(body, i)
			} else {
				_, next := parseHexString(body, i)
				i = next
			}
		case c == '/':
			val, next := parseName(body, i)
			toks = append(toks, token{kind: tokName, value: val})
			i = next
		case c == '-' || c == '+' || c == '.' || isDigit(c):
			val, next, ok := parseNumber(body, i)
			if ok {
				toks = append(toks, token{kind: tokNumber, value: val})
				i = next
			} else {
				i++
			}
		case isDelim(c):
			i++
		default:
			val, next := parseKeyword(body, i)
			if val != "" {
				toks = append(toks, token{kind: tokKeyword, value: val})
			}
			i = next
		}
	}
	return toks
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func parseNumber(body []byte, i int) (float64, int, bool) {
	start := i
	n := len(body)
	if i < n && (body[i] == '-' || body[i] == '+') {
		i++
	}
	sawDigit := false
	for i < n && (isDigit(body[i]) || body[i] == '.') {
		if isDigit(body[i]) {
			sawDigit = true
		}
		i++
	}
	if !sawDigit {
		return 0, start + 1, false
	}
	f, err := strconv.ParseFloat(string(body[start:i]), 64)
	if err != nil {
		return 0, i, false
	}
	return f, i, true
}

func parseName(body []byte, i int) (string, int) {
	start := i
	i++ // consume '/'
	for i < len(body) && !isSpace(body[i]) && !isDelim(body[i]) {
		i++
	}
	return string(body[start:i]), i
}

func parseKeyword(body []byte, i int) (string, int) {
	start := i
	for i < len(body) && !isSpace(body[i]) && !isDelim(body[i]) {
		i++
	}
	if i == start {
		return "", start + 1
	}
	return string(body[start:i]), i
}

func parseLiteralString(body []byte, i int) (string, int) {
	i++ // consume '('
	depth := 1
	start := i
	for i < len(body) && depth > 0 {
		switch body[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return string(body[start:i]), i + 1
			}
		}
		i++
	}
	return string(body[start:]), i
}

func parseHexString(body []byte, i int) (string, int) {
	i++ // consume '<'
	start := i
	for i < len(body) && body[i] != '>' {
		i++
	}
	s := string(body[start:i])
	if i < len(body) {
		i++
	}
	return s, i
}

func skipDict(body []byte, i int) int {
	depth := 0
	n := len(body)
	for i < n {
		if i+1 < n && body[i] == '<' && body[i+1] == '<' {
			depth++
			i += 2
			continue
		}
		if i+1 < n && body[i] == '>' && body[i+1] == '>' {
			depth--
			i += 2
			if depth == 0 {
				return i
			}
			continue
		}
		i++
	}
	return i
}

func parseArray(body []byte, i int) ([]any, int) {
	i++ // consume '['
	var out []any
	n := len(body)
	for i < n && body[i] != ']' {
		c := body[i]
		switch {
		case isSpace(c):
			i++
		case c == '[':
			sub, next := parseArray(body, i)
			out = append(out, sub)
			i = next
		case c == '(':
			s, next := parseLiteralString(body, i)
			out = append(out, s)
			i = next
		case c == '<':
			if i+1 < n && body[i+1] == '<' {
				i = skipDict(body, i)
			} else {
				s, next := parseHexString(body, i)
				out = append(out, s)
				i = next
			}
		case c == '/':
			s, next := parseName(body, i)
			out = append(out, s)
			i = next
		case c == '-' || c == '+' || c == '.' || isDigit(c):
			f, next, ok := parseNumber(body, i)
			if ok {
				out = append(out, f)
				i = next
			} else {
				i++
			}
		default:
			i++
		}
	}
	if i < n {
		i++ // consume ']'
	}
	return out, i
}
