// Command mask zeroes a fixed percentage of pixels in every image of an MNIST CSV table.
//
// Usage:
//
//	mask --mask_percentage 0.3
//	mask --mask_percentage 0.3 --seed 42 --preview masked.png
//	mask --mask_percentage 0.5 --input data/x.csv --output data/x_masked.csv --header absent
//
// For each row, floor(mask_percentage × P) distinct pixels are chosen at
// random and set to 0. The result is written to mnist_test/xmasked_test.csv
// unless --output is given.
package main

import (
	"os"

	"github.com/FilippoGiorgi4/TirocinioFp200/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewMaskCommand()))
}
