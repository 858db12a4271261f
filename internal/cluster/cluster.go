// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package cluster reduces a point cloud of differing pixels to a small
// set of annotated circular markers: grid-bucket the points, union-find
// the buckets that sit within one cell of each other, then emit one
// marker per surviving group.
package cluster

import "sort"

// Marker is a circular region summarizing a spatial cluster of
// differing pixels, in image coordinates.
type Marker struct {
	X, Y   float64
	Radius float64
	Count  int
}

// Preset bundles the grid size, minimum cluster count, and minimum
// marker radius used by one of the two diff pipelines (§4.G).
type Preset struct {
	GridSize  int
	MinCount  int
	MinRadius float64
}

var (
	SharpPreset   = Preset{GridSize: 200, MinCount: 1, MinRadius: 300}
	HeatmapPreset = Preset{GridSize: 250, MinCount: 20, MinRadius: 80}
)

type cell struct {
	gx, gy                 int
	count                  int
	minX, maxX, minY, maxY int
}

// Point is a differing pixel in image coordinates, mirroring diff.Point.
type Point struct{ X, Y int }

// Reduce turns a point cloud into ranked markers using the given preset.
func Reduce(points []Point, p Preset) []Marker {
	cells := bucket(points, p.GridSize)
	if len(cells) == 0 {
		return nil
	}

	keys := make([]cellKey, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}

	uf := newUnionFind(len(keys))
	index := make(map[cellKey]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}

	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if chebyshevAdjacent(keys[i], keys[j]) {
				uf.union(i, j)
			}
		}
	}

	groups := make(map[int]*cell)
	for i, k := range keys {
		root := uf.find(i)
		c := cells[k]
		g, ok := groups[root]
		if !ok {
			cp := *c
			groups[root] = &cp
			continue
		}
		g.count += c.count
		if c.minX < g.minX {
			g.minX = c.minX
		}
		if c.maxX > g.maxX {
			g.maxX = c.maxX
		}
		if c.minY < g.minY {
			g.minY = c.minY
		}
		if c.maxY > g.maxY {
			g.maxY = c.maxY
		}
	}

	var markers []Marker
	for _, g := range groups {
		if g.count < p.MinCount {
			continue
		}
		markers = append(markers, makeMarker(g, p.MinRadius))
	}

	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].Count > markers[j].Count
	})
	return markers
}

type cellKey struct{ gx, gy int }

func bucket(points []Point, gridSize int) map[cellKey]*cell {
	cells := make(map[cellKey]*cell)
	for _, pt := range points {
		k := cellKey{gx: floorDiv(pt.X, gridSize), gy: floorDiv(pt.Y, gridSize)}
		c, ok := cells[k]
		if !ok {
			c = &cell{gx: k.gx, gy: k.gy, minX: pt.X, maxX: pt.X, minY: pt.Y, maxY: pt.Y}
			cells[k] = c
		}
		c.count++
		if pt.X < c.minX {
			c.minX = pt.X
		}
		if pt.X > c.maxX {
			c.maxX = pt.X
		}
		if pt.Y < c.minY {
			c.minY = pt.Y
		}
		if pt.Y > c.maxY {
			c.maxY = pt.Y
		}
	}
	return cells
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func chebyshevAdjacent(a, b cellKey) bool {
	dx := a.gx - b.gx
	if dx < 0 {
		dx = -dx
	}
	dy := a.gy - b.gy
	if dy < 0 {
		dy = -dy
	}
	return dx <= 1 && dy <= 1
}

func makeMarker(g *cell, minRadius float64) Marker {
	cx := float64(g.minX+g.maxX) / 2
	cy := float64(g.minY+g.maxY) / 2

	halfW := float64(g.maxX-g.minX) / 2
	halfH := float64(g.maxY-g.minY) / 2

	pad := 60.0
	if minRadius > 200 {
		pad = 100.0
	}

	radius := minRadius
	if halfW+pad > radius {
		radius = halfW + pad
	}
	if halfH+pad > radius {
		radius = halfH + pad
	}

	return Marker{X: cx, Y: cy, Radius: radius, Count: g.count}
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf.parent[ra] = rb
	}
}
