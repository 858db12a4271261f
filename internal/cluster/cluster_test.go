package cluster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReduceEmpty(t *testing.T) {
	markers := Reduce(nil, SharpPreset)
	require.Empty(t, markers)
}

func TestReduceSinglePixel(t *testing.T) {
	markers := Reduce([]Point{{X: 1, Y: 0}}, SharpPreset)
	require.Len(t, markers, 1)
	require.Equal(t, 1, markers[0].Count)
	require.GreaterOrEqual(t, markers[0].Radius, SharpPreset.MinRadius)
}

func TestReduceTwoSeparatedClusters(t *testing.T) {
	var pts []Point
	for y := 45; y < 55; y++ {
		for x := 45; x < 55; x++ {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	for y := 345; y < 355; y++ {
		for x := 345; x < 355; x++ {
			pts = append(pts, Point{X: x, Y: y})
		}
	}

	markers := Reduce(pts, SharpPreset)
	require.Len(t, markers, 2)

	total := 0
	for _, m := range markers {
		total += m.Count
	}
	require.Equal(t, 200, total)
}

func TestReduceFiltersBelowMinCount(t *testing.T) {
	pts := []Point{{X: 10, Y: 10}, {X: 11, Y: 10}}
	markers := Reduce(pts, Preset{GridSize: 200, MinCount: 10, MinRadius: 80})
	require.Empty(t, markers)
}

func TestReduceMarkerContainment(t *testing.T) {
	var pts []Point
	for i := 0; i < 30; i++ {
		pts = append(pts, Point{X: 100 + i, Y: 100})
	}
	markers := Reduce(pts, SharpPreset)
	require.Len(t, markers, 1)

	m := markers[0]
	found := false
	for _, p := range pts {
		dx := float64(p.X) - m.X
		dy := float64(p.Y) - m.Y
		if dx*dx+dy*dy <= m.Radius*m.Radius {
			found = true
			break
		}
	}
	require.True(t, found)

	totalCount := 0
	for _, mk := range markers {
		totalCount += mk.Count
	}
	require.LessOrEqual(t, totalCount, len(pts))
}

func TestReduceSortedByCountDescending(t *testing.T) {
	var pts []Point
	// small cluster far away
	pts = append(pts, Point{X: 5, Y: 5})
	// larger cluster far away
	for i := 0; i < 5; i++ {
		pts = append(pts, Point{X: 1000 + i, Y: 1000})
	}

	markers := Reduce(pts, Preset{GridSize: 50, MinCount: 1, MinRadius: 10})
	require.Len(t, markers, 2)
	require.GreaterOrEqual(t, markers[0].Count, markers[1].Count)
}
