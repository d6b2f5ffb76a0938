package main

import (
	"fmt"
	"os"

	"investease-api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sipcalc:", err)
		os.Exit(1)
	}
}
