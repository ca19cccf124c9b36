// Command rwplot draws the comparison figures for a random-walk run directory.
package main

import (
	"os"

	"github.com/crossXproduct/random-walk-1/src/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
