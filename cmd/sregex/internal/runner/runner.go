// Package runner wires the sregex engine to the command line: flag parsing,
// logging levels, and the line-oriented match loop.
package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/coregx/sregex"
)

// Options holds the parsed command-line options.
type Options struct {
	Pattern string // pattern to compile
	Test    bool   // match any substring instead of the whole line
	Silent  bool
	Verbose bool
}

// ParseFlags parses the command line into Options. The pattern may be given
// with -p or, when it is the only command-line argument, as a bare positional
// argument.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Compile a regular expression to a DFA and match lines from stdin against it.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Pattern, "pattern", "p", "", "regular expression to compile"),
	)

	flagSet.CreateGroup("matching", "Matching",
		flagSet.BoolVarP(&opts.Test, "test", "t", false, "accept a line if any substring matches (default: whole line)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Pattern == "" {
		opts.Pattern = positionalPattern()
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	return opts
}

// positionalPattern supports the bare `sregex '<pattern>'` invocation.
func positionalPattern() string {
	args := os.Args[1:]
	if len(args) == 1 && !strings.HasPrefix(args[0], "-") {
		return args[0]
	}
	return ""
}

// Runner evaluates input lines against one compiled pattern.
type Runner struct {
	options *Options
	regex   *sregex.Regex
}

// New compiles the pattern and returns a ready Runner.
func New(options *Options) (*Runner, error) {
	if options.Pattern == "" {
		return nil, fmt.Errorf("no pattern given")
	}
	regex, err := sregex.Compile(options.Pattern)
	if err != nil {
		return nil, err
	}
	gologger.Verbose().Msgf("compiled pattern %q", options.Pattern)

	return &Runner{options: options, regex: regex}, nil
}

// Run reads lines from input until EOF and writes one result line per input
// line: "Result: ACCEPTED" or "Result: NOT ACCEPTED".
func (r *Runner) Run(input io.Reader, output io.Writer) error {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := scanner.Text()

		var matched bool
		if r.options.Test {
			matched = r.regex.TestString(line)
		} else {
			matched = r.regex.AcceptsString(line)
		}

		verdict := "NOT ACCEPTED"
		if matched {
			verdict = "ACCEPTED"
		}
		if _, err := fmt.Fprintf(output, "Result: %s\n", verdict); err != nil {
			return err
		}
	}
	return scanner.Err()
}
