// Command factgraph is a thin test harness for running a built-in fact
// registry against a JSON input fixture, scoped to demonstrating and
// exercising the evaluation engine rather than authoring facts.
package main

import (
	"fmt"
	"os"

	"factgraph/cmd/factgraph/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
