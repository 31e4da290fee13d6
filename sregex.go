// Package sregex is a small regular-expression engine that decides membership
// with a deterministic finite automaton.
//
// A pattern is compiled through three classic stages:
//
//  1. recursive-descent parse to an AST (package syntax)
//  2. Thompson construction to an ε-NFA (package nfa)
//  3. subset construction to a DFA (package dfa)
//
// The compiled Regex answers two questions: Accepts (is the whole input in
// the pattern's language) and Test (is any substring). Both run on the DFA;
// Accepts is O(n) in the input length.
//
// The pattern language supports alternation, concatenation, the postfix
// quantifiers * + ?, grouping, dot, escapes, the named classes \d \D \w \W
// \s \S, and bracketed classes with ranges and negation, over printable
// ASCII plus \t \n \v \f \r. There are no capture groups, anchors, bounded
// repetitions or lookaround.
//
// Basic usage:
//
//	re, err := sregex.Compile(`[a-z]+( [a-z]+)*\.?`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.AcceptsString("hello world") // true
//	re.TestString("say hello world loudly") // true
package sregex

import (
	"github.com/coregx/sregex/dfa"
	"github.com/coregx/sregex/nfa"
	"github.com/coregx/sregex/prefilter"
	"github.com/coregx/sregex/syntax"
)

// Regex is a compiled regular expression. It owns the pattern's DFA and an
// optional literal prefilter. A Regex is immutable after compilation and
// safe for concurrent use from multiple goroutines.
type Regex struct {
	pattern string
	dfa     *dfa.DFA
	filter  *prefilter.Prefilter
}

// Compile compiles a pattern into a Regex.
//
// Compilation runs parse → NFA → DFA in order; the AST and NFA are dropped
// once the DFA exists. Errors are *syntax.ParseError (classifiable with
// errors.Is against the syntax sentinels) or, for pathological patterns,
// *dfa.BuildError. A failed compile never returns a partial Regex.
func Compile(pattern string) (*Regex, error) {
	ast, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}

	n, err := nfa.Compile(ast)
	if err != nil {
		return nil, err
	}

	d, err := dfa.FromNFA(n)
	if err != nil {
		return nil, err
	}

	// Best effort: most patterns without a required literal simply skip the
	// prefilter.
	filter, _ := prefilter.FromAST(ast, prefilter.DefaultConfig())

	return &Regex{
		pattern: pattern,
		dfa:     d,
		filter:  filter,
	}, nil
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time:
//
//	var wordRegex = sregex.MustCompile(`\w+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("sregex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// Accepts reports whether the entire input is in the pattern's language.
func (r *Regex) Accepts(input []byte) bool {
	return r.dfa.Accepts(input)
}

// AcceptsString is Accepts for a string input.
func (r *Regex) AcceptsString(input string) bool {
	return r.dfa.AcceptsString(input)
}

// Test reports whether any contiguous substring of the input is in the
// pattern's language. The empty substring counts: a pattern that accepts ""
// tests true against every input.
func (r *Regex) Test(input []byte) bool {
	if r.filter != nil && !r.filter.Possible(input) {
		return false
	}

	// Forward scan from every start anchor, tracking the DFA state. The scan
	// for one anchor stops at the first byte with no transition.
	for start := 0; start <= len(input); start++ {
		state := r.dfa.Start()
		if state.Accepting() {
			return true
		}
		for i := start; i < len(input); i++ {
			next, ok := state.Transition(input[i])
			if !ok {
				break
			}
			state = next
			if state.Accepting() {
				return true
			}
		}
	}
	return false
}

// TestString is Test for a string input.
func (r *Regex) TestString(input string) bool {
	return r.Test([]byte(input))
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}
