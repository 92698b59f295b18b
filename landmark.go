package facemark

// NumLandmarks is the fixed number of points every normalized face carries,
// matching the 68-point annotation scheme used by most face-shape datasets.
const NumLandmarks = 68

// Point is a single landmark position, normalized to the [0, 1]
// coordinate space of the source image.
type Point struct {
	X float64
	Y float64
}

// RegionName identifies one group of facial landmarks reported by a detector.
type RegionName string

// The landmark regions a detector may report.
const (
	FaceContour  RegionName = "faceContour"
	LeftEyebrow  RegionName = "leftEyebrow"
	RightEyebrow RegionName = "rightEyebrow"
	Nose         RegionName = "nose"
	NoseCrest    RegionName = "noseCrest"
	LeftEye      RegionName = "leftEye"
	RightEye     RegionName = "rightEye"
	OuterLips    RegionName = "outerLips"
	InnerLips    RegionName = "innerLips"
	LeftPupil    RegionName = "leftPupil"
	RightPupil   RegionName = "rightPupil"
	MedianLine   RegionName = "medianLine"
)

// RegionOrder fixes the concatenation order of the landmark regions.
// The row layout of the generated CSV files depends on this order,
// so it must never be reshuffled.
var RegionOrder = []RegionName{
	FaceContour,
	LeftEyebrow,
	RightEyebrow,
	Nose,
	NoseCrest,
	LeftEye,
	RightEye,
	OuterLips,
	InnerLips,
	LeftPupil,
	RightPupil,
	MedianLine,
}

// Normalize assembles the per-region detections into a fixed-length
// coordinate list of exactly NumLandmarks points. The regions are
// concatenated following RegionOrder; a region missing from the map
// contributes no points. When the detector returned fewer points than
// NumLandmarks the output is padded with zero points, when it returned
// more, the tail is dropped. The function is total: any region map,
// including a nil one, produces a valid result.
func Normalize(regions map[RegionName][]Point) []Point {
	points := make([]Point, 0, NumLandmarks)
	for _, name := range RegionOrder {
		points = append(points, regions[name]...)
	}

	if len(points) > NumLandmarks {
		return points[:NumLandmarks]
	}
	for len(points) < NumLandmarks {
		// The zero point doubles as the "no detection" sentinel.
		points = append(points, Point{})
	}
	return points
}
