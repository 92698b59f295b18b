package facemark

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	pigo "github.com/esimov/pigo/core"

	"facemark/utils"
)

// The pupil localization cascades used to resolve the eye and mouth
// landmark groups. The names match the cascade files shipped in the
// pigo lps directory.
var (
	eyeCascades   = []string{"lp46", "lp44", "lp42", "lp38", "lp312"}
	mouthCascades = []string{"lp93", "lp84", "lp82", "lp81"}
)

// PigoDetector implements the Detector interface on top of the pigo
// pixel intensity comparison classifier. Besides the face cascade it
// runs the pupil localization and landmark point cascades, so a single
// detection yields the pupil, eye and mouth regions. The remaining
// regions of the 68-point scheme are left absent and get padded by the
// normalizer.
type PigoDetector struct {
	// MinSize is the minimum face size the cascade considers.
	MinSize int
	// ShiftFactor determines the detection window shift percentage.
	ShiftFactor float64
	// ScaleFactor determines the detection window upscale percentage.
	ScaleFactor float64
	// Angle is the rotated faces angle in radians.
	Angle float64
	// IoUThreshold is the intersection over union cluster threshold.
	IoUThreshold float64
	// QThreshold discards detections below this quality score.
	QThreshold float32
	// Perturbs is the number of perturbations the landmark cascades run.
	Perturbs int

	classifier *pigo.Pigo
	plc        *pigo.PuplocCascade
	flpcs      map[string][]*pigo.FlpCascade
}

// NewPigoDetector unpacks the binary cascade files from cascadeDir,
// which is expected to contain the facefinder and puploc cascades plus
// an lps subdirectory with the landmark point cascades.
func NewPigoDetector(cascadeDir string) (*PigoDetector, error) {
	faceCascade, err := os.ReadFile(filepath.Join(cascadeDir, "facefinder"))
	if err != nil {
		return nil, fmt.Errorf("unable to read the face cascade file: %w", err)
	}
	classifier, err := pigo.NewPigo().Unpack(faceCascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the face cascade file: %w", err)
	}

	puplocCascade, err := os.ReadFile(filepath.Join(cascadeDir, "puploc"))
	if err != nil {
		return nil, fmt.Errorf("unable to read the puploc cascade file: %w", err)
	}
	plc, err := pigo.NewPuplocCascade().UnpackCascade(puplocCascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the puploc cascade file: %w", err)
	}

	flpcs, err := plc.ReadCascadeDir(filepath.Join(cascadeDir, "lps"))
	if err != nil {
		return nil, fmt.Errorf("error unpacking the landmark cascade files: %w", err)
	}

	return &PigoDetector{
		MinSize:      100,
		ShiftFactor:  0.1,
		ScaleFactor:  1.1,
		IoUThreshold: 0.2,
		QThreshold:   5.0,
		Perturbs:     63,

		classifier: classifier,
		plc:        plc,
		flpcs:      flpcs,
	}, nil
}

// Detect runs the face classifier over the image and resolves the
// landmark regions of each clustered detection. The returned faces are
// ordered by detection quality, best first.
func (d *PigoDetector) Detect(img *image.NRGBA) ([]Face, error) {
	rows, cols := img.Bounds().Dy(), img.Bounds().Dx()

	imgParams := pigo.ImageParams{
		Pixels: rgbToGrayscale(img),
		Rows:   rows,
		Cols:   cols,
		Dim:    cols,
	}
	cParams := pigo.CascadeParams{
		MinSize:     d.MinSize,
		MaxSize:     utils.Max(cols, rows),
		ShiftFactor: d.ShiftFactor,
		ScaleFactor: d.ScaleFactor,
		ImageParams: imgParams,
	}

	// Run the classifier over the obtained leaf nodes and calculate
	// the intersection over union of the overlapping clusters.
	dets := d.classifier.RunCascade(cParams, d.Angle)
	dets = d.classifier.ClusterDetections(dets, d.IoUThreshold)

	faces := make([]Face, 0, len(dets))
	for _, det := range dets {
		if det.Q < d.QThreshold {
			continue
		}
		faces = append(faces, Face{
			Regions: d.landmarks(det, imgParams),
			Q:       det.Q,
		})
	}
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].Q > faces[j].Q
	})
	return faces, nil
}

// landmarks localizes the pupils inside the detected face zone and runs
// the landmark point cascades relative to them.
func (d *PigoDetector) landmarks(det pigo.Detection, imgParams pigo.ImageParams) map[RegionName][]Point {
	regions := make(map[RegionName][]Point)

	leftEye := d.plc.RunDetector(pigo.Puploc{
		Row:      det.Row - int(0.075*float32(det.Scale)),
		Col:      det.Col - int(0.175*float32(det.Scale)),
		Scale:    float32(det.Scale) * 0.25,
		Perturbs: d.Perturbs,
	}, imgParams, d.Angle, false)

	rightEye := d.plc.RunDetector(pigo.Puploc{
		Row:      det.Row - int(0.075*float32(det.Scale)),
		Col:      det.Col + int(0.185*float32(det.Scale)),
		Scale:    float32(det.Scale) * 0.25,
		Perturbs: d.Perturbs,
	}, imgParams, d.Angle, false)

	if leftEye.Row > 0 && leftEye.Col > 0 {
		regions[LeftPupil] = []Point{normPoint(leftEye.Row, leftEye.Col, imgParams)}
	}
	if rightEye.Row > 0 && rightEye.Col > 0 {
		regions[RightPupil] = []Point{normPoint(rightEye.Row, rightEye.Col, imgParams)}
	}

	// The landmark point cascades are anchored on the pupil positions,
	// without both of them the remaining regions stay unresolved.
	if len(regions) < 2 {
		return regions
	}

	for _, name := range eyeCascades {
		for _, flpc := range d.flpcs[name] {
			if flp := flpc.GetLandmarkPoint(leftEye, rightEye, imgParams, d.Perturbs, false); flp.Row > 0 && flp.Col > 0 {
				regions[LeftEye] = append(regions[LeftEye], normPoint(flp.Row, flp.Col, imgParams))
			}
			if flp := flpc.GetLandmarkPoint(leftEye, rightEye, imgParams, d.Perturbs, true); flp.Row > 0 && flp.Col > 0 {
				regions[RightEye] = append(regions[RightEye], normPoint(flp.Row, flp.Col, imgParams))
			}
		}
	}

	for _, name := range mouthCascades {
		for _, flpc := range d.flpcs[name] {
			if flp := flpc.GetLandmarkPoint(leftEye, rightEye, imgParams, d.Perturbs, false); flp.Row > 0 && flp.Col > 0 {
				regions[OuterLips] = append(regions[OuterLips], normPoint(flp.Row, flp.Col, imgParams))
			}
		}
	}
	// The flipped lp84 cascade resolves the mouth corner on the
	// opposite side.
	for _, flpc := range d.flpcs["lp84"] {
		if flp := flpc.GetLandmarkPoint(leftEye, rightEye, imgParams, d.Perturbs, true); flp.Row > 0 && flp.Col > 0 {
			regions[OuterLips] = append(regions[OuterLips], normPoint(flp.Row, flp.Col, imgParams))
		}
	}

	return regions
}

// normPoint converts a cascade result from pixel coordinates to the
// [0, 1] normalized coordinate space of the image.
func normPoint(row, col int, imgParams pigo.ImageParams) Point {
	return Point{
		X: float64(col) / float64(imgParams.Cols),
		Y: float64(row) / float64(imgParams.Rows),
	}
}
