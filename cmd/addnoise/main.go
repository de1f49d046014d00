// Command addnoise adds clipped Gaussian noise to an MNIST CSV table.
package main

import (
	"os"

	"github.com/FilippoGiorgi4/TirocinioFp200/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewAddNoiseCommand()))
}
