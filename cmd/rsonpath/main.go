// Command rsonpath runs a JSONPath query against a JSON document using a
// streaming byte classifier and a compiled query automaton, reporting
// either the matched byte spans or a match count.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
