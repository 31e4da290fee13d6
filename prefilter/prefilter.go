// Package prefilter provides a literal-based fast reject for substring
// matching.
//
// From the pattern AST it derives a required literal set: a finite set of
// byte strings such that every string in the pattern's language contains at
// least one of them. The literals are compiled into an Aho-Corasick automaton;
// an input containing none of them cannot contain a match, so the substring
// scan can be skipped entirely.
//
// Extraction is conservative. It refuses patterns that can match the empty
// string (nothing is required there) and patterns whose literal set would
// exceed the configured limits, in which case callers simply run the full
// scan. A prefilter never changes observable match behaviour.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/sregex/syntax"
)

// Config bounds literal extraction.
type Config struct {
	// MaxLiterals limits the size of the required literal set. Alternations
	// multiply literal counts; past this limit the prefilter is skipped.
	MaxLiterals int

	// MaxLiteralLen limits the length of any single extracted literal.
	MaxLiteralLen int

	// MaxClassSize limits the character classes expanded into literals.
	// Small bracketed classes like [abc] expand; [a-z] does not.
	MaxClassSize int
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Prefilter answers "can this input possibly contain a match" using the
// required literal set. It is immutable and safe for concurrent use.
type Prefilter struct {
	auto *ahocorasick.Automaton
}

// FromAST extracts a required literal set from the AST and builds a
// prefilter over it. The second return value reports whether a prefilter
// could be built; callers must fall back to the full scan when it is false.
func FromAST(root *syntax.Node, config Config) (*Prefilter, bool) {
	e := &extractor{config: config}
	lits, ok := e.required(root)
	if !ok || len(lits) == 0 {
		return nil, false
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &Prefilter{auto: auto}, true
}

// Possible reports whether the input contains at least one required literal.
// False means no substring of the input can match the pattern.
func (p *Prefilter) Possible(input []byte) bool {
	return p.auto.IsMatch(input)
}
