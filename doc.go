/*
Package facemark converts a labeled face image dataset into a fixed-width
tabular feature representation. For every image of a dataset split it locates
one face, extracts a standardized set of 68 facial landmark coordinates and
appends a row to the split's CSV table, ready to feed a downstream
face-shape classifier.

The package provides a command line interface:

	$ facemark --dataset-path ./dataset --output-path ./out --cascade-path ./cascade

In case you wish to integrate the API in a self constructed environment here
is a simple example:

	package main

	import (
		"log"

		"facemark"
	)

	func main() {
		detector, err := facemark.NewPigoDetector("./cascade")
		if err != nil {
			log.Fatal(err)
		}

		e := facemark.NewExtractor(detector, "./out", []string{"training_set", "testing_set"})
		if err := e.Run("./dataset"); err != nil {
			log.Fatal(err)
		}
	}
*/
package facemark
