// Command segprep cleans demographic extracts for segmentation: it loads an
// extract, runs the staged cleaning pipeline and exports the result to one or
// more sinks.
package main

import (
	"fmt"
	"os"
)

func main() {
	root, a := newRootCmd()
	err := root.Execute()
	a.shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
