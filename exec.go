package facemark

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"facemark/utils"
)

// progressStep sets how many processed images pass between two progress
// updates. The counter is purely informational.
const progressStep = 100

// Extractor runs the landmark extraction pipeline over a labeled image
// dataset and materializes one CSV table per dataset split.
type Extractor struct {
	Detector  Detector
	OutputDir string
	Splits    []string
	Spinner   *utils.Spinner

	// processed counts the images attempted within the current split.
	processed int
}

// NewExtractor instantiates the extraction pipeline for the given
// detector, output directory and dataset splits.
func NewExtractor(d Detector, outputDir string, splits []string) *Extractor {
	return &Extractor{
		Detector:  d,
		OutputDir: outputDir,
		Splits:    splits,
	}
}

// Run processes every configured split under datasetRoot sequentially.
// A split whose directory cannot be read, or whose final table cannot
// be written, is reported and abandoned without affecting the other
// splits. Run returns an error when at least one split table could not
// be written, so the CLI can exit with a non-zero status.
func (e *Extractor) Run(datasetRoot string) error {
	now := time.Now()

	fmt.Fprintf(os.Stderr, "%s %s\n",
		utils.DecorateText("⚡ FACEMARK", utils.StatusMessage),
		utils.DecorateText("⇢ extracting facial landmarks...", utils.DefaultMessage),
	)

	var failed int
	for _, split := range e.Splits {
		if err := e.runSplit(datasetRoot, split); err != nil {
			logrus.WithError(err).Errorf("unable to write the %s table", split)
			failed++
		}
	}

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	if failed > 0 {
		return fmt.Errorf("%d of %d split table(s) could not be written", failed, len(e.Splits))
	}
	return nil
}

// runSplit walks one split directory, builds a row per detectable face
// and writes the accumulated table in a single unit at the end.
// An unreadable split directory only skips the split; the returned
// error is reserved for the final table write, which is terminal for
// the split.
func (e *Extractor) runSplit(datasetRoot, split string) error {
	splitDir := filepath.Join(datasetRoot, split)

	entries, err := walkSplit(splitDir)
	if err != nil {
		logrus.WithError(err).Errorf("skipping split %s", split)
		return nil
	}
	e.printLabelCounts(split, entries)

	interactive := term.IsTerminal(int(os.Stderr.Fd()))
	if interactive {
		e.Spinner = utils.NewSpinner(e.progressMsg(split), time.Millisecond*80, true)
		e.Spinner.Start()
	}

	e.processed = 0
	rows := make([]*Row, 0, len(entries))
	for _, entry := range entries {
		row, err := e.buildRow(entry)
		e.processed++

		if err != nil {
			logrus.WithError(err).Warnf("skipping image: %s", entry.Path)
		} else if row != nil {
			rows = append(rows, row)
		}

		if e.processed%progressStep == 0 {
			if interactive {
				e.Spinner.SetMessage(e.progressMsg(split))
			} else {
				logrus.Infof("%s: processed %d images", split, e.processed)
			}
		}
	}

	if interactive {
		e.Spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("⚡ FACEMARK", utils.StatusMessage),
			utils.DecorateText(fmt.Sprintf("⇢ %s done: %d images processed, %d rows ✔", split, e.processed, len(rows)), utils.SuccessMessage),
		)
		e.Spinner.Stop()
	} else {
		logrus.Infof("%s done: %d images processed, %d rows", split, e.processed, len(rows))
	}

	return WriteSplit(e.OutputDir, split, rows)
}

// printLabelCounts reports how many images each class label contributes
// to the split, in enumeration order.
func (e *Extractor) printLabelCounts(split string, entries []Entry) {
	counts := make(map[string]int)
	var order []string
	for _, entry := range entries {
		if _, ok := counts[entry.Label]; !ok {
			order = append(order, entry.Label)
		}
		counts[entry.Label]++
	}

	fmt.Fprintf(os.Stderr, "\n%s (%d images)\n",
		utils.DecorateText(split, utils.StatusMessage), len(entries))
	for _, label := range order {
		fmt.Fprintf(os.Stderr, "  %s: %d images\n", label, counts[label])
	}
}

func (e *Extractor) progressMsg(split string) string {
	return fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ FACEMARK", utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("⇢ %s: %d images processed...", split, e.processed), utils.DefaultMessage),
	)
}
