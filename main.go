// main is the entry point for the devpulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/devpulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
