package nfa

import "fmt"

// BuildError represents an error during NFA construction via the Builder API.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Builder constructs an NFA incrementally in a single arena. It is the
// low-level API used by the Compiler: nodes are allocated with monotonically
// increasing IDs and wired together with ε or byte edges.
type Builder struct {
	states []Node
}

// NewBuilder creates a new NFA builder with default capacity.
func NewBuilder() *Builder {
	return &Builder{states: make([]Node, 0, 16)}
}

// AddNode allocates a new non-accepting node with no edges and returns its ID.
func (b *Builder) AddNode() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, Node{id: id})
	return id
}

// AddEpsilon adds an ε edge from one node to another.
func (b *Builder) AddEpsilon(from, to StateID) {
	n := &b.states[from]
	n.edges = append(n.edges, Edge{To: to, Epsilon: true})
}

// AddByte adds an edge consuming the given byte.
func (b *Builder) AddByte(from, to StateID, value byte) {
	n := &b.states[from]
	n.edges = append(n.edges, Edge{To: to, Byte: value})
}

// SetAccepting toggles a node's accepting flag. Composition clears the flag
// on sub-fragment ends and sets it on the composite's end.
func (b *Builder) SetAccepting(id StateID, accepting bool) {
	b.states[id].accepting = accepting
}

// NumStates returns the current number of allocated nodes.
func (b *Builder) NumStates() int {
	return len(b.states)
}

// Build finalizes the NFA with the given start and end nodes. It validates
// that the automaton is well-formed and caches the input alphabet.
func (b *Builder) Build(start, end StateID) (*NFA, error) {
	if err := b.validate(start, end); err != nil {
		return nil, err
	}

	n := &NFA{
		states: b.states,
		start:  start,
		end:    end,
	}
	n.language = computeLanguage(n.states)
	return n, nil
}

// validate checks that start/end are in bounds, that every edge targets an
// allocated node, and that the end node is the only accepting node.
func (b *Builder) validate(start, end StateID) error {
	if int(start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: start}
	}
	if int(end) >= len(b.states) {
		return &BuildError{Message: "end state out of bounds", StateID: end}
	}
	if !b.states[end].accepting {
		return &BuildError{Message: "end state is not accepting", StateID: end}
	}
	for i := range b.states {
		n := &b.states[i]
		if n.accepting && n.id != end {
			return &BuildError{Message: "accepting state other than end", StateID: n.id}
		}
		for _, e := range n.edges {
			if int(e.To) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("edge targets invalid state %d", e.To),
					StateID: n.id,
				}
			}
		}
	}
	return nil
}

// computeLanguage collects the distinct non-ε edge bytes in ascending order.
// The seen buffer is scoped to the call so construction stays reentrant.
func computeLanguage(states []Node) []byte {
	var seen [256]bool
	for i := range states {
		for _, e := range states[i].edges {
			if !e.Epsilon {
				seen[e.Byte] = true
			}
		}
	}

	var language []byte
	for b := 0; b < len(seen); b++ {
		if seen[b] {
			language = append(language, byte(b))
		}
	}
	return language
}
