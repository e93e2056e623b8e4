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

import "strings"

type Edge uint8

const EdgeNone Edge = 0

const (
	EdgeLeft Edge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

const (
	edgeThresholdMM = 7.0

	// Distance from the border, in mm, below which the speed zones start.
	edgeSpeedFarMM  = 5.0
	edgeSpeedNearMM = 3.0

	edgeSpeedLow    = 0.5
	edgeSpeedMedium = 1.0
	edgeSpeedHigh   = 2.0
)

func (e Edge) String() string {
	if e == EdgeNone {
		return "none"
	}
	var names []string
	for _, n := range [...]struct {
		edge Edge
		name string
	}{{EdgeLeft, "left"}, {EdgeRight, "right"}, {EdgeTop, "top"}, {EdgeBottom, "bottom"}} {
		if e&n.edge != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// DetectEdges returns the edge zones p lies in. A zone is the strip of
// edgeThresholdMM along a border; at most one edge per axis is reported.
func DetectEdges(g Geometry, p Point) Edge {
	p = g.Clamp(p)
	tx := g.MMToUnitsX(edgeThresholdMM)
	ty := g.MMToUnitsY(edgeThresholdMM)
	edges := EdgeNone
	if p.X < g.MinX+tx {
		edges |= EdgeLeft
	} else if p.X > g.MaxX-tx {
		edges |= EdgeRight
	}
	if p.Y < g.MinY+ty {
		edges |= EdgeTop
	} else if p.Y > g.MaxY-ty {
		edges |= EdgeBottom
	}
	return edges
}

// EdgeDirection is the unit vector pointing out of the touchpad through
// the given edges, or the zero vector if there are none.
func EdgeDirection(edges Edge) Vector {
	var v Vector
	if edges&EdgeLeft != 0 {
		v.X--
	}
	if edges&EdgeRight != 0 {
		v.X++
	}
	if edges&EdgeTop != 0 {
		v.Y--
	}
	if edges&EdgeBottom != 0 {
		v.Y++
	}
	return v.Normalize()
}

// EdgeSpeedMultiplier maps the distance to a border in mm to a speed
// factor: the closer to the border, the faster.
func EdgeSpeedMultiplier(distanceMM float64) float64 {
	switch {
	case distanceMM >= edgeSpeedFarMM:
		return edgeSpeedLow
	case distanceMM >= edgeSpeedNearMM:
		return edgeSpeedMedium
	default:
		return edgeSpeedHigh
	}
}

// EdgeSpeedMultipliers returns the speed factor per axis for a touch at p.
// An axis without an active edge gets 0.
func EdgeSpeedMultipliers(g Geometry, p Point, edges Edge) (x, y float64) {
	p = g.Clamp(p)
	switch {
	case edges&EdgeLeft != 0:
		x = EdgeSpeedMultiplier(g.UnitsToMMX(p.X - g.MinX))
	case edges&EdgeRight != 0:
		x = EdgeSpeedMultiplier(g.UnitsToMMX(g.MaxX - p.X))
	}
	switch {
	case edges&EdgeTop != 0:
		y = EdgeSpeedMultiplier(g.UnitsToMMY(p.Y - g.MinY))
	case edges&EdgeBottom != 0:
		y = EdgeSpeedMultiplier(g.UnitsToMMY(g.MaxY - p.Y))
	}
	return x, y
}
