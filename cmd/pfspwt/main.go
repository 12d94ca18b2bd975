// Command pfspwt is the CLI entrypoint for the PFSP-WT ant-colony solver:
// it reads a Taillard-style instance file, runs the configured ACO policy,
// and reports the best permutation found.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
