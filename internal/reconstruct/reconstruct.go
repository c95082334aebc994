// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reconstruct interprets a page's operator list into
// device-space filled rectangles with color, by pattern-matching on
// argument shape rather than any codec's private opcode numbering.
package reconstruct

import (
	"regexp"
	"strconv"

	"github.com/awslabs/redact-check/internal/pdfaccess"
)

// Fixed parameters, part of the schema contract — never
// runtime-configurable.
const (
	ViewportScale   = 1.5
	DarknessMax     = 0.15
	MinSide         = 5.0
	MinAreaFloor    = 2000.0
	MinAreaFraction = 0.0005
	MaxAreaFraction = 0.6
	cornerPairBound = 10000.0
)

// Rectangle is a reconstructed filled rectangle in device space.
type Rectangle struct {
	X, Y, W, H float64
	Area       float64
}

type fillState struct {
	rgb     *[3]float64
	gray    *float64
	tx, ty  float64
	hasRGB  bool
	hasGray bool
}

func (s *fillState) isDark() bool {
	if s.hasRGB {
		return s.rgb[0] <= DarknessMax && s.rgb[1] <= DarknessMax && s.rgb[2] <= DarknessMax
	}
	if s.hasGray {
		return *s.gray <= DarknessMax
	}
	return false
}

var hexColorRE = regexp.MustCompile(`^#([0-9A-Fa-f]{2})([0-9A-Fa-f]{2})([0-9A-Fa-f]{2})$`)

// Reconstruct walks a page's operator list and returns the deduplicated,
// filtered, sufficiently dark and appropriately sized rectangles.
func Reconstruct(ops []pdfaccess.Operator, pageWidthUser, pageHeightUser float64) []Rectangle {
	state := fillState{}
	deviceW := pageWidthUser * ViewportScale
	deviceH := pageHeightUser * ViewportScale
	pageArea := deviceW * deviceH
	minArea := MinAreaFloor
	if frac := pageArea * MinAreaFraction; frac > minArea {
		minArea = frac
	}

	seen := make(map[[4]int]bool)
	var out []Rectangle

	for _, op := range ops {
		a := op.Args

		// 1. Transform detection.
		if nums, ok := flatNumbers(a); ok && len(nums) == 6 {
			if isIdentity(nums) {
				// ignore
			} else if isPureTranslation(nums) {
				state.tx, state.ty = nums[4], nums[5]
			}
		}

		// 2. Fill color detection.
		if nums, ok := flatNumbers(a); ok {
			switch len(nums) {
			case 3:
				rgb := [3]float64{nums[0], nums[1], nums[2]}
				state.rgb = &rgb
				state.hasRGB = true
				state.hasGray = false
			case 1:
				g := nums[0]
				state.gray = &g
				state.hasGray = true
				state.hasRGB = false
			}
		} else if len(a) == 1 {
			if s, ok := a[0].(string); ok {
				if m := hexColorRE.FindStringSubmatch(s); m != nil {
					rgb := [3]float64{hexChannel(m[1]), hexChannel(m[2]), hexChannel(m[3])}
					state.rgb = &rgb
					state.hasRGB = true
					state.hasGray = false
				}
			}
		}

		// 3. Path coordinates candidate: A[1] else A[2].
		candidate := coordsCandidate(a)
		if candidate == nil {
			continue
		}

		for g := 0; g+4 <= len(candidate); g += 4 {
			n0, n1, n2, n3 := candidate[g], candidate[g+1], candidate[g+2], candidate[g+3]

			var x, y, w, h float64
			if n2 > n0 && n3 > n1 && n2 < cornerPairBound && n3 < cornerPairBound {
				x, y, w, h = n0, n1, n2-n0, n3-n1
			} else {
				x, y, w, h = n0, n1, n2, n3
			}

			// 4. Transform and filter.
			x += state.tx
			y += state.ty
			w = absf(w)
			h = absf(h)
			if w < MinSide || h < MinSide {
				continue
			}
			if !state.isDark() {
				continue
			}

			rect := project(x, y, w, h, pageHeightUser)
			if rect.Area > pageArea*MaxAreaFraction {
				continue
			}
			if rect.Area < minArea {
				continue
			}

			key := dedupKey(rect)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, rect)
		}
	}

	return out
}

func project(x, y, w, h, pageHeightUser float64) Rectangle {
	deviceX := x * ViewportScale
	deviceY := (pageHeightUser - (y + h)) * ViewportScale
	deviceW := w * ViewportScale
	deviceH := h * ViewportScale
	return Rectangle{X: deviceX, Y: deviceY, W: deviceW, H: deviceH, Area: deviceW * deviceH}
}

func dedupKey(r Rectangle) [4]int {
	return [4]int{round(r.X), round(r.Y), round(r.W), round(r.H)}
}

func round(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func isIdentity(n []float64) bool {
	return n[0] == 1 && n[1] == 0 && n[2] == 0 && n[3] == 1 && n[4] == 0 && n[5] == 0
}

func isPureTranslation(n []float64) bool {
	return n[0] == 1 && n[1] == 0 && n[2] == 0 && n[3] == 1
}

// flatNumbers reports whether every element of a is a float64, returning
// the values. Used for the transform/fill-color checks, which operate on
// A itself (the whole operand list).
func flatNumbers(a []any) ([]float64, bool) {
	if len(a) == 0 {
		return nil, false
	}
	out := make([]float64, len(a))
	for i, v := range a {
		f, ok := v.(float64)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// coordsCandidate returns A[1] if it is a numeric array of length >= 4,
// else A[2] under the same condition, else nil.
func coordsCandidate(a []any) []float64 {
	if len(a) > 1 {
		if arr, ok := a[1].([]any); ok {
			if nums, ok := flatNumbers(arr); ok && len(nums) >= 4 {
				return nums
			}
		}
	}
	if len(a) > 2 {
		if arr, ok := a[2].([]any); ok {
			if nums, ok := flatNumbers(arr); ok && len(nums) >= 4 {
				return nums
			}
		}
	}
	return nil
}

func hexChannel(hex string) float64 {
	v, err := strconv.ParseUint(hex, 16, 8)
	if err != nil {
		return 0
	}
	return float64(v) / 255.0
}
