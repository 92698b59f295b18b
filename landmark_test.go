package facemark

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// contourPoints fills a single region with n distinct points.
func contourPoints(n int) map[RegionName][]Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{X: float64(i) / 1000, Y: float64(i) / 2000}
	}
	return map[RegionName][]Point{FaceContour: pts}
}

func TestNormalize_FixedWidth(t *testing.T) {
	for _, total := range []int{0, 10, 68, 200} {
		out := Normalize(contourPoints(total))
		assert.Len(t, out, NumLandmarks, "input with %d points", total)
	}

	assert.Len(t, Normalize(nil), NumLandmarks)
}

func TestNormalize_FixedWidthRandomRegions(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		regions := make(map[RegionName][]Point)
		for _, name := range RegionOrder {
			// Roughly half the regions stay absent.
			if rnd.Intn(2) == 0 {
				continue
			}
			pts := make([]Point, rnd.Intn(11))
			for j := range pts {
				pts[j] = Point{X: rnd.Float64(), Y: rnd.Float64()}
			}
			regions[name] = pts
		}
		assert.Len(t, Normalize(regions), NumLandmarks)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	regions := map[RegionName][]Point{
		Nose:      {{X: 0.5, Y: 0.5}, {X: 0.51, Y: 0.52}},
		LeftEye:   {{X: 0.3, Y: 0.4}},
		RightEye:  {{X: 0.7, Y: 0.4}},
		OuterLips: {{X: 0.5, Y: 0.8}},
	}

	first := Normalize(regions)
	second := Normalize(regions)
	assert.Equal(t, first, second)
}

func TestNormalize_Padding(t *testing.T) {
	regions := map[RegionName][]Point{
		LeftPupil:  {{X: 0.3, Y: 0.4}},
		RightPupil: {{X: 0.7, Y: 0.4}},
	}
	out := Normalize(regions)

	assert.Equal(t, Point{X: 0.3, Y: 0.4}, out[0])
	assert.Equal(t, Point{X: 0.7, Y: 0.4}, out[1])
	for i := 2; i < NumLandmarks; i++ {
		assert.Equal(t, Point{}, out[i], "padding at index %d", i)
	}
}

func TestNormalize_Truncation(t *testing.T) {
	// 80 points in total, the first 68 of the concatenation survive.
	regions := map[RegionName][]Point{}
	var concat []Point
	for r, name := range RegionOrder {
		pts := make([]Point, 0, 10)
		for j := 0; j < 10; j++ {
			pts = append(pts, Point{X: float64(r) + float64(j)/100, Y: float64(j)})
		}
		// Only the first 8 regions carry points.
		if r < 8 {
			regions[name] = pts
			concat = append(concat, pts...)
		}
	}

	out := Normalize(regions)
	assert.Equal(t, concat[:NumLandmarks], out)
}

func TestNormalize_RegionOrder(t *testing.T) {
	// Each region holds one point encoding its position in RegionOrder,
	// the output must follow that order regardless of map iteration.
	regions := make(map[RegionName][]Point)
	for i, name := range RegionOrder {
		regions[name] = []Point{{X: float64(i), Y: float64(i)}}
	}

	out := Normalize(regions)
	for i := range RegionOrder {
		assert.Equal(t, float64(i), out[i].X, "region at index %d", i)
	}
}
