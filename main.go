package main

import (
	"fmt"
	"os"

	"github.com/Hristiyan-Anchev/issueboard/cmd/cli"
)

const (
	errorOutputTemplateConstant = "ERROR: %v\n"
	failureExitCodeConstant     = 1
)

// main executes the issueboard command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stdout, errorOutputTemplateConstant, executionError)
		os.Exit(failureExitCodeConstant)
	}
}
