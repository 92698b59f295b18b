package facemark

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// csvHeader is the fixed 138 column header of every split table:
// image_name, label, then an x/y column pair per landmark.
var csvHeader = buildHeader()

func buildHeader() []string {
	header := make([]string, 0, 2+NumLandmarks*2)
	header = append(header, "image_name", "label")
	for i := 0; i < NumLandmarks; i++ {
		header = append(header,
			fmt.Sprintf("landmark_%d_x", i),
			fmt.Sprintf("landmark_%d_y", i),
		)
	}
	return header
}

// formatCoord renders a normalized coordinate with exactly six decimal
// places. The fixed width is part of the output format contract, the
// downstream parsers rely on it.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// record flattens a row into its CSV field values.
func (r *Row) record() []string {
	rec := make([]string, 0, len(csvHeader))
	rec = append(rec, r.ImageName, r.Label)
	for _, pt := range r.Coords {
		rec = append(rec, formatCoord(pt.X), formatCoord(pt.Y))
	}
	return rec
}

// WriteSplit serializes the accumulated rows of one split into
// <outDir>/<split>_landmarks.csv, creating the output directory when
// missing. The table is first written to a temporary file in the same
// directory and then renamed over the final name, so a partially
// written table is never observable under the final file name.
func WriteSplit(outDir, split string, rows []*Row) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("unable to create the output directory: %w", err)
	}

	final := filepath.Join(outDir, split+"_landmarks.csv")
	tmp, err := os.CreateTemp(outDir, split+"_landmarks_*.csv.tmp")
	if err != nil {
		return fmt.Errorf("unable to create the temporary table file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to write the table header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row.record()); err != nil {
			tmp.Close()
			return fmt.Errorf("unable to write the table row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to flush the table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to close the temporary table file: %w", err)
	}

	if err := os.Rename(tmp.Name(), final); err != nil {
		return fmt.Errorf("unable to move the table into place: %w", err)
	}
	return nil
}
