package facemark

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Row is one record of the output table: the image file name, its class
// label and the normalized landmark coordinates. Coords always holds
// exactly NumLandmarks points.
type Row struct {
	ImageName string
	Label     string
	Coords    []Point
}

// buildRow runs the detector against a single image and assembles the
// resulting table row. It returns (nil, nil) when the image has to be
// skipped: no face was found or the chosen face exposes no landmark
// data. Detection is never retried; a skipped image simply does not
// appear in the output table.
func (e *Extractor) buildRow(entry Entry) (*Row, error) {
	img, err := loadImage(entry.Path)
	if err != nil {
		return nil, err
	}

	faces, err := e.Detector.Detect(img)
	if err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		logrus.Debugf("no face found: %s", entry.Path)
		return nil, nil
	}

	// Only the first, best scoring face is used; images containing
	// multiple faces silently contribute a single one.
	face := faces[0]
	if len(face.Regions) == 0 {
		logrus.Debugf("face without landmarks: %s", entry.Path)
		return nil, nil
	}

	return &Row{
		ImageName: filepath.Base(entry.Path),
		Label:     entry.Label,
		Coords:    Normalize(face.Regions),
	}, nil
}
