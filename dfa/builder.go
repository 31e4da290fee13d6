package dfa

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/coregx/sregex/internal/sparse"
	"github.com/coregx/sregex/nfa"
)

// ErrTooManyStates indicates determinization exceeded Config.MaxStates.
var ErrTooManyStates = errors.New("too many DFA states")

// Config bounds determinization.
type Config struct {
	// MaxStates limits the number of DFA states built before construction is
	// abandoned with ErrTooManyStates. The theoretical bound is 2^n in the
	// NFA size; real patterns stay far below the default.
	MaxStates int
}

// DefaultConfig returns the default determinization configuration.
func DefaultConfig() Config {
	return Config{MaxStates: 1_000_000}
}

// BuildError wraps a determinization failure.
type BuildError struct {
	NumStates int
	Err       error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("DFA construction failed after %d states: %v", e.NumStates, e.Err)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// FromNFA determinizes an ε-NFA with the default configuration.
func FromNFA(n *nfa.NFA) (*DFA, error) {
	return FromNFAWithConfig(n, DefaultConfig())
}

// FromNFAWithConfig runs the subset construction:
//
//  1. The start state is the ε-closure of the NFA's start node.
//  2. For each unprocessed state and each byte labelling a non-ε edge out of
//     its closure, the successor is the ε-closure of the move set.
//  3. Successor closures are deduplicated by canonical ID; unseen ones join
//     the worklist.
//
// The loop terminates because the set of distinct closures is finite.
func FromNFAWithConfig(n *nfa.NFA, config Config) (*DFA, error) {
	if config.MaxStates <= 0 {
		config.MaxStates = DefaultConfig().MaxStates
	}

	b := &builder{
		nfa:     n,
		config:  config,
		states:  make(map[string]*State),
		scratch: sparse.New(uint32(n.NumStates())),
	}
	return b.build()
}

// builder holds the worklist state for one determinization.
type builder struct {
	nfa     *nfa.NFA
	config  Config
	states  map[string]*State
	scratch *sparse.Set

	// worklist entries pair a created state with its closure members, so the
	// member sets are computed exactly once per state.
	worklist []workItem
}

type workItem struct {
	state   *State
	members []nfa.StateID
}

func (b *builder) build() (*DFA, error) {
	start, err := b.getOrCreate(b.closure([]nfa.StateID{b.nfa.Start()}))
	if err != nil {
		return nil, err
	}

	for len(b.worklist) > 0 {
		item := b.worklist[len(b.worklist)-1]
		b.worklist = b.worklist[:len(b.worklist)-1]

		for _, c := range b.transitionBytes(item.members) {
			target, err := b.getOrCreate(b.closure(b.move(item.members, c)))
			if err != nil {
				return nil, err
			}
			item.state.transitions[c] = target
		}
	}

	return &DFA{start: start, states: b.states}, nil
}

// getOrCreate returns the state for a closure, creating it (and scheduling it
// for processing) on first sight. Closure members must be sorted; the
// canonical key makes duplicate detection exact.
func (b *builder) getOrCreate(members []nfa.StateID) (*State, error) {
	id := canonicalID(members)
	if s, ok := b.states[id]; ok {
		return s, nil
	}
	if len(b.states) >= b.config.MaxStates {
		return nil, &BuildError{NumStates: len(b.states), Err: ErrTooManyStates}
	}

	s := &State{
		id:          id,
		accepting:   b.anyAccepting(members),
		transitions: make(map[byte]*State),
	}
	b.states[id] = s
	b.worklist = append(b.worklist, workItem{state: s, members: members})
	return s, nil
}

// closure computes the ε-closure of a node set: the least superset closed
// under ε edges. Returns the members in ascending ID order.
func (b *builder) closure(seed []nfa.StateID) []nfa.StateID {
	set := b.scratch
	set.Clear()

	stack := make([]nfa.StateID, 0, len(seed))
	for _, id := range seed {
		if !set.Contains(uint32(id)) {
			set.Insert(uint32(id))
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range b.nfa.Node(id).Edges() {
			if e.Epsilon && !set.Contains(uint32(e.To)) {
				set.Insert(uint32(e.To))
				stack = append(stack, e.To)
			}
		}
	}

	members := make([]nfa.StateID, set.Len())
	for i, v := range set.Values() {
		members[i] = nfa.StateID(v)
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return members
}

// move returns the nodes reachable from the set by consuming exactly c.
func (b *builder) move(members []nfa.StateID, c byte) []nfa.StateID {
	var targets []nfa.StateID
	for _, id := range members {
		for _, e := range b.nfa.Node(id).Edges() {
			if !e.Epsilon && e.Byte == c {
				targets = append(targets, e.To)
			}
		}
	}
	return targets
}

// transitionBytes returns the distinct non-ε edge labels out of the closure,
// in ascending order so construction is deterministic.
func (b *builder) transitionBytes(members []nfa.StateID) []byte {
	var seen [256]bool
	for _, id := range members {
		for _, e := range b.nfa.Node(id).Edges() {
			if !e.Epsilon {
				seen[e.Byte] = true
			}
		}
	}

	var labels []byte
	for c := 0; c < len(seen); c++ {
		if seen[c] {
			labels = append(labels, byte(c))
		}
	}
	return labels
}

func (b *builder) anyAccepting(members []nfa.StateID) bool {
	for _, id := range members {
		if b.nfa.Node(id).Accepting() {
			return true
		}
	}
	return false
}

// canonicalID names a closure by its sorted member IDs joined with '/', e.g.
// "3/7/12".
func canonicalID(members []nfa.StateID) string {
	var sb strings.Builder
	for i, id := range members {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return sb.String()
}
