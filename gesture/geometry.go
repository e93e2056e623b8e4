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

import "math"

const (
	mmPerInch = 25.4
	// normalizedDPI is the resolution of the normalized coordinate space
	// all output and four-finger deltas are expressed in.
	normalizedDPI = 1000.0

	// Assumed physical size for devices that do not report a resolution.
	fallbackWidthMM  = 100.0
	fallbackHeightMM = 70.0
)

type Point struct {
	X, Y float64
}

type Vector struct {
	X, Y float64
}

func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector pointing along v, or the zero vector if
// v has no usable length.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vector{}
	}
	return Vector{v.X / l, v.Y / l}
}

func (v Vector) Scale(x, y float64) Vector {
	return Vector{v.X * x, v.Y * y}
}

// Geometry is the absolute coordinate range of a touchpad in device units
// and its resolution in units per millimeter.
type Geometry struct {
	MinX, MaxX  float64
	MinY, MaxY  float64
	ResolutionX float64
	ResolutionY float64
}

// NewGeometry fills in a resolution for axes whose resolution is unknown,
// assuming a touchpad of average size.
func NewGeometry(minX, maxX, minY, maxY, resolutionX, resolutionY float64) Geometry {
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	if resolutionX <= 0 {
		resolutionX = math.Max((maxX-minX)/fallbackWidthMM, 1)
	}
	if resolutionY <= 0 {
		resolutionY = math.Max((maxY-minY)/fallbackHeightMM, 1)
	}
	return Geometry{minX, maxX, minY, maxY, resolutionX, resolutionY}
}

func (g Geometry) MMToUnitsX(mm float64) float64 {
	return mm * g.ResolutionX
}

func (g Geometry) MMToUnitsY(mm float64) float64 {
	return mm * g.ResolutionY
}

func (g Geometry) UnitsToMMX(units float64) float64 {
	if g.ResolutionX <= 0 {
		return 0
	}
	return units / g.ResolutionX
}

func (g Geometry) UnitsToMMY(units float64) float64 {
	if g.ResolutionY <= 0 {
		return 0
	}
	return units / g.ResolutionY
}

// Clamp moves p onto the touchpad surface. NaN coordinates end up at the
// minimum of their axis.
func (g Geometry) Clamp(p Point) Point {
	return Point{clamp(p.X, g.MinX, g.MaxX), clamp(p.Y, g.MinY, g.MaxY)}
}

// Normalized converts a delta in device units into normalized units.
func (g Geometry) Normalized(v Vector) Vector {
	return Vector{
		mmToNormalized(g.UnitsToMMX(v.X)),
		mmToNormalized(g.UnitsToMMY(v.Y)),
	}
}

func mmToNormalized(mm float64) float64 {
	return mm * normalizedDPI / mmPerInch
}

func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
