package facemark

import "image"

// Face holds the landmark regions of a single face detection.
// The region map may omit any region the detector could not resolve.
type Face struct {
	Regions map[RegionName][]Point
	// Q is the detection quality score reported by the detector.
	Q float32
}

// Detector locates faces on an image and reports their landmark regions.
// Implementations must order the returned faces so that the first entry
// is the preferred detection, since the extraction pipeline only ever
// consumes one face per image.
type Detector interface {
	Detect(img *image.NRGBA) ([]Face, error)
}
