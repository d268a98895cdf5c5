package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akarstad/netpulse/internal/constants"
	"github.com/akarstad/netpulse/internal/netpulsed"
)

func main() {
	configFlag := flag.String("config", "", "Path to the daemon config file")
	debugFlag := flag.Bool("debug", false, "Log at debug level")
	flag.Parse()

	debugEnv := os.Getenv(constants.EnvVarDebug) == "true"
	debug := *debugFlag || debugEnv

	if err := netpulsed.Run(*configFlag, debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
