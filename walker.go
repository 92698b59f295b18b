package facemark

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// validExtensions lists the supported image file types.
var validExtensions = []string{".jpg", ".jpeg", ".png"}

// Entry pairs one image file with the class label it belongs to.
type Entry struct {
	Label string
	Path  string
}

// walkSplit enumerates the images of a single dataset split laid out as
// <splitDir>/<label>/<image>. Each immediate subdirectory name is a class
// label; within a label directory only files with a supported image
// extension are returned. os.ReadDir yields the entries sorted by file
// name, which keeps the enumeration order, and with it the row order of
// the output table, reproducible across runs.
//
// A label directory which cannot be listed is logged and skipped, the
// rest of the split is still processed.
func walkSplit(splitDir string) ([]Entry, error) {
	labels, err := os.ReadDir(splitDir)
	if err != nil {
		return nil, fmt.Errorf("unable to read the split directory: %w", err)
	}

	var entries []Entry
	for _, label := range labels {
		if !label.IsDir() {
			continue
		}
		labelDir := filepath.Join(splitDir, label.Name())

		files, err := os.ReadDir(labelDir)
		if err != nil {
			logrus.WithError(err).Warnf("skipping unreadable label directory: %s", labelDir)
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			if !isValidExtension(filepath.Ext(f.Name()), validExtensions) {
				continue
			}
			entries = append(entries, Entry{
				Label: label.Name(),
				Path:  filepath.Join(labelDir, f.Name()),
			})
		}
	}
	return entries, nil
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	ext = strings.ToLower(ext)
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
