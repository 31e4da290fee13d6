package dfa

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/coregx/sregex/nfa"
	"github.com/coregx/sregex/syntax"
)

func determinize(t *testing.T, pattern string) *DFA {
	t.Helper()
	ast, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", pattern, err)
	}
	n, err := nfa.Compile(ast)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", pattern, err)
	}
	d, err := FromNFA(n)
	if err != nil {
		t.Fatalf("FromNFA(%q) failed: %v", pattern, err)
	}
	return d
}

// TestFromNFA_Accepts tests exact matching on a few small automata.
func TestFromNFA_Accepts(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{
			pattern: "a",
			accept:  []string{"a"},
			reject:  []string{"", "b", "aa"},
		},
		{
			pattern: "a*b*c*",
			accept:  []string{"", "a", "b", "c", "ab", "ac", "bc", "abc", "abcc", "aaaccc", "aaabbccc"},
			reject:  []string{"d", "ad", "bd", "cd", "abd", "cba", "ba"},
		},
		{
			pattern: "hello( world| there| you)*",
			accept: []string{
				"hello world", "hello there", "hello you", "hello",
				"hello world there world you you",
			},
			reject: []string{"hello world  there", "hello ", "he hello world you"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			d := determinize(t, tt.pattern)
			for _, s := range tt.accept {
				if !d.Accepts([]byte(s)) {
					t.Errorf("Accepts(%q) = false, want true", s)
				}
				if !d.AcceptsString(s) {
					t.Errorf("AcceptsString(%q) = false, want true", s)
				}
			}
			for _, s := range tt.reject {
				if d.Accepts([]byte(s)) {
					t.Errorf("Accepts(%q) = true, want false", s)
				}
			}
		})
	}
}

// TestFromNFA_CanonicalIDs tests that state identifiers are the sorted,
// '/'-joined member IDs of their closures.
func TestFromNFA_CanonicalIDs(t *testing.T) {
	d := determinize(t, "ab")

	seen := make(map[string]bool)
	var visit func(s *State)
	visit = func(s *State) {
		if seen[s.ID()] {
			return
		}
		seen[s.ID()] = true

		parts := strings.Split(s.ID(), "/")
		prev := -1
		for _, part := range parts {
			id, err := strconv.Atoi(part)
			if err != nil {
				t.Fatalf("state id %q has non-numeric part %q", s.ID(), part)
			}
			if id <= prev {
				t.Errorf("state id %q is not strictly ascending", s.ID())
			}
			prev = id
		}

		for b := 0; b < 256; b++ {
			if next, ok := s.Transition(byte(b)); ok {
				visit(next)
			}
		}
	}
	visit(d.Start())

	if len(seen) != d.NumStates() {
		t.Errorf("reached %d states, DFA has %d", len(seen), d.NumStates())
	}
}

// TestFromNFA_Deterministic tests that construction of the same pattern twice
// yields identical state sets and transitions.
func TestFromNFA_Deterministic(t *testing.T) {
	first := determinize(t, "(a|b)*ab(b|cc)kkws*")
	second := determinize(t, "(a|b)*ab(b|cc)kkws*")

	if first.NumStates() != second.NumStates() {
		t.Fatalf("state counts differ: %d vs %d", first.NumStates(), second.NumStates())
	}
	if first.String() != second.String() {
		t.Error("determinization is not reproducible")
	}
}

// TestFromNFA_AlphabetClosure tests that no state has a transition on a byte
// outside the NFA's language.
func TestFromNFA_AlphabetClosure(t *testing.T) {
	ast, err := syntax.Parse("(ab)+c")
	if err != nil {
		t.Fatal(err)
	}
	n, err := nfa.Compile(ast)
	if err != nil {
		t.Fatal(err)
	}
	d, err := FromNFA(n)
	if err != nil {
		t.Fatal(err)
	}

	inLanguage := make(map[byte]bool)
	for _, b := range n.Language() {
		inLanguage[b] = true
	}

	visited := make(map[string]bool)
	var visit func(s *State)
	visit = func(s *State) {
		if visited[s.ID()] {
			return
		}
		visited[s.ID()] = true
		for b := 0; b < 256; b++ {
			next, ok := s.Transition(byte(b))
			if !ok {
				continue
			}
			if !inLanguage[byte(b)] {
				t.Errorf("state %s has transition on %q outside the alphabet", s.ID(), byte(b))
			}
			visit(next)
		}
	}
	visit(d.Start())
}

// TestFromNFA_MaxStates tests the state-bound guard.
func TestFromNFA_MaxStates(t *testing.T) {
	ast, err := syntax.Parse("ab")
	if err != nil {
		t.Fatal(err)
	}
	n, err := nfa.Compile(ast)
	if err != nil {
		t.Fatal(err)
	}

	_, err = FromNFAWithConfig(n, Config{MaxStates: 1})
	if err == nil {
		t.Fatal("construction succeeded despite MaxStates=1")
	}
	if !errors.Is(err, ErrTooManyStates) {
		t.Errorf("err = %v, want ErrTooManyStates", err)
	}
	var berr *BuildError
	if !errors.As(err, &berr) {
		t.Errorf("error is not a *BuildError: %v", err)
	}
}

// TestDFA_RejectOutsideAlphabet tests that an input byte with no transition
// rejects mid-scan rather than erroring.
func TestDFA_RejectOutsideAlphabet(t *testing.T) {
	d := determinize(t, "ab")
	for _, s := range []string{"zb", "az", "a\x00b", "ab\xff"} {
		if d.Accepts([]byte(s)) {
			t.Errorf("Accepts(%q) = true, want false", s)
		}
	}
}
