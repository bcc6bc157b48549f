// viewdeps extracts static render-dependency graphs and cache digests from
// Rails-style ERB view trees.
package main

import (
	"os"

	"github.com/Matt-Yorkley/viewdeps/cmd/viewdeps/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
