package main

import (
	"os"

	"github.com/projectdiscovery/gologger"

	"github.com/coregx/sregex/cmd/sregex/internal/runner"
)

func main() {
	opts := runner.ParseFlags()

	r, err := runner.New(opts)
	if err != nil {
		gologger.Fatal().Msgf("invalid pattern: %s", err)
	}

	if err := r.Run(os.Stdin, os.Stdout); err != nil {
		gologger.Fatal().Msgf("could not process input: %s", err)
	}
}
