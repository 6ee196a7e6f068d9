// Command gdata runs feed searches from the command line or over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/feedkit/gdata.go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gdata:", err)
		os.Exit(1)
	}
}
