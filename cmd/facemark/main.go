package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"facemark"
)

const helpBanner = `
┌─┐┌─┐┌─┐┌─┐┌┬┐┌─┐┬─┐┬┌─
│├ ├─┤│  ├┤ │││├─┤├┬┘├┴┐
└  ┴ ┴└─┘└─┘┴ ┴┴ ┴┴└─┴ ┴

Facial landmark dataset extractor.
`

var (
	datasetPath string
	outputPath  string
	cascadePath string
	splits      []string

	minSize  int
	angle    float64
	iou      float64
	perturbs int
)

var rootCmd = &cobra.Command{
	Use:   "facemark",
	Short: "Extract 68-point facial landmark tables from a labeled image dataset",
	Long: helpBanner + `
The dataset is expected as <dataset-path>/<split>/<label>/<image> with jpg,
jpeg or png image files. One <split>_landmarks.csv table is written per
split under <output-path>.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if datasetPath == "" {
			return fmt.Errorf("please provide the dataset directory via --dataset-path or DATASET_PATH")
		}

		detector, err := facemark.NewPigoDetector(cascadePath)
		if err != nil {
			return fmt.Errorf("unable to initialize the face detector: %w", err)
		}
		detector.MinSize = minSize
		detector.Angle = angle
		detector.IoUThreshold = iou
		detector.Perturbs = perturbs

		e := facemark.NewExtractor(detector, outputPath, splits)
		return e.Run(datasetPath)
	},
}

func init() {
	// A .env file is optional, the environment keeps precedence for
	// container setups.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset-path", os.Getenv("DATASET_PATH"), "dataset root directory")
	rootCmd.PersistentFlags().StringVar(&outputPath, "output-path", envOr("OUTPUT_PATH", "output"), "output directory for the CSV tables")
	rootCmd.PersistentFlags().StringVar(&cascadePath, "cascade-path", envOr("CASCADE_PATH", "cascade"), "directory holding the pigo cascade files")
	rootCmd.PersistentFlags().StringSliceVar(&splits, "splits", []string{"training_set", "testing_set"}, "dataset splits to process")

	rootCmd.PersistentFlags().IntVar(&minSize, "min-size", 100, "minimum face size in pixels")
	rootCmd.PersistentFlags().Float64Var(&angle, "angle", 0.0, "plane rotated faces angle")
	rootCmd.PersistentFlags().Float64Var(&iou, "iou", 0.2, "intersection over union cluster threshold")
	rootCmd.PersistentFlags().IntVar(&perturbs, "perturbs", 63, "landmark cascade perturbations")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("extraction failed")
		os.Exit(1)
	}
}
