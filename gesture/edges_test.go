/*
 *    Copyright (c) 2024 Unrud <unrud@outlook.com>
 *
 *    This file is part of Touchpad-Gestures.
 *
 *    Touchpad-Gestures is free software: you can redistribute it and/or modify
 *    it under the terms of the GNU General Public License as published by
 *    the Free Software Foundation, either version 3 of the License, or
 *    (at your option) any later version.
 *
 *    Touchpad-Gestures is distributed in the hope that it will be useful,
 *    but WITHOUT ANY WARRANTY; without even the implied warranty of
 *    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 *    GNU General Public License for more details.
 *
 *    You should have received a copy of the GNU General Public License
 *    along with Touchpad-Gestures.  If not, see <http://www.gnu.org/licenses/>.
 */

package gesture

import (
	"math"
	"testing"
)

func TestDetectEdges(t *testing.T) {
	for _, test := range []struct {
		p    Point
		want Edge
	}{
		{Point{500, 350}, EdgeNone},
		{Point{10, 350}, EdgeLeft},
		{Point{995, 350}, EdgeRight},
		{Point{500, 5}, EdgeTop},
		{Point{500, 690}, EdgeBottom},
		{Point{10, 10}, EdgeLeft | EdgeTop},
		{Point{995, 695}, EdgeRight | EdgeBottom},
		{Point{70, 350}, EdgeNone},
		{Point{69, 350}, EdgeLeft},
		{Point{930, 630}, EdgeNone},
		{Point{-50, 350}, EdgeLeft},
		{Point{math.NaN(), 350}, EdgeLeft},
	} {
		if got := DetectEdges(testGeometry, test.p); got != test.want {
			t.Errorf("DetectEdges(%v) = %v, want %v", test.p, got, test.want)
		}
	}
}

func TestEdgeString(t *testing.T) {
	if s := (EdgeLeft | EdgeTop).String(); s != "left|top" {
		t.Errorf("got %q", s)
	}
	if s := EdgeNone.String(); s != "none" {
		t.Errorf("got %q", s)
	}
}

func TestEdgeDirection(t *testing.T) {
	for _, edges := range []Edge{EdgeLeft, EdgeRight, EdgeTop, EdgeBottom,
		EdgeLeft | EdgeTop, EdgeLeft | EdgeBottom, EdgeRight | EdgeTop, EdgeRight | EdgeBottom} {
		d := EdgeDirection(edges)
		if !almostEqual(d.Length(), 1) {
			t.Errorf("%v: length %v", edges, d.Length())
		}
		if edges&EdgeLeft != 0 && d.X >= 0 || edges&EdgeRight != 0 && d.X <= 0 ||
			edges&EdgeTop != 0 && d.Y >= 0 || edges&EdgeBottom != 0 && d.Y <= 0 {
			t.Errorf("%v: wrong direction %v", edges, d)
		}
	}
	d := EdgeDirection(EdgeLeft | EdgeTop)
	if !almostEqual(d.X, d.Y) {
		t.Errorf("corner is not diagonal: %v", d)
	}
	if d := EdgeDirection(EdgeNone); d != (Vector{}) {
		t.Errorf("no edge: %v", d)
	}
}

func TestEdgeSpeedMultiplier(t *testing.T) {
	for _, test := range []struct {
		distance, want float64
	}{
		{7, 0.5},
		{5, 0.5},
		{4.99, 1},
		{3, 1},
		{2.99, 2},
		{0, 2},
	} {
		if got := EdgeSpeedMultiplier(test.distance); got != test.want {
			t.Errorf("EdgeSpeedMultiplier(%v) = %v, want %v", test.distance, got, test.want)
		}
	}
}

func TestEdgeSpeedMultipliers(t *testing.T) {
	x, y := EdgeSpeedMultipliers(testGeometry, Point{20, 350}, EdgeLeft)
	if x != 2 || y != 0 {
		t.Errorf("left: %v %v", x, y)
	}
	x, y = EdgeSpeedMultipliers(testGeometry, Point{960, 660}, EdgeRight|EdgeBottom)
	if x != 1 || y != 1 {
		t.Errorf("bottom right: %v %v", x, y)
	}
}

func TestNewGeometryFallbackResolution(t *testing.T) {
	g := NewGeometry(0, 2000, 0, 1400, 0, 0)
	if g.ResolutionX != 20 || g.ResolutionY != 20 {
		t.Errorf("resolution %v %v", g.ResolutionX, g.ResolutionY)
	}
	g = NewGeometry(100, 0, 0, 0, 0, 0)
	if g.MinX != 0 || g.MaxX != 100 || g.ResolutionY != 1 {
		t.Errorf("geometry %+v", g)
	}
}

func TestNormalized(t *testing.T) {
	v := testGeometry.Normalized(Vector{254, -127})
	if !almostEqual(v.X, 1000) || !almostEqual(v.Y, -500) {
		t.Errorf("got %v", v)
	}
}

func TestVectorNormalize(t *testing.T) {
	if v := (Vector{3, 4}).Normalize(); !almostEqual(v.X, 0.6) || !almostEqual(v.Y, 0.8) {
		t.Errorf("got %v", v)
	}
	if v := (Vector{math.NaN(), 1}).Normalize(); v != (Vector{}) {
		t.Errorf("NaN: %v", v)
	}
}
