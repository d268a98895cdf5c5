package main

import (
	"fmt"
	"os"

	"github.com/akarstad/netpulse/internal/netpulse"
)

func main() {
	rootCmd := netpulse.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print error once, then exit
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
