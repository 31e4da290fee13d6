package nfa

import (
	"fmt"

	"github.com/coregx/sregex/syntax"
)

// fragment is a sub-NFA produced for one AST node: exactly one start and one
// end node inside the shared arena. Its end node is accepting until the
// fragment is absorbed into a larger composition.
type fragment struct {
	start StateID
	end   StateID
}

// Compiler translates a pattern AST into a Thompson ε-NFA. It walks the tree
// post-order, producing one fragment per node and composing fragments with
// ε edges; all nodes live in one arena owned by the eventual NFA.
type Compiler struct {
	builder *Builder
}

// NewCompiler creates a new NFA compiler.
func NewCompiler() *Compiler {
	return &Compiler{builder: NewBuilder()}
}

// Compile compiles an AST into an NFA using a fresh compiler.
func Compile(root *syntax.Node) (*NFA, error) {
	return NewCompiler().Compile(root)
}

// Compile compiles the AST rooted at root. The ID counter restarts for every
// call, so IDs are scoped to one compilation.
func (c *Compiler) Compile(root *syntax.Node) (*NFA, error) {
	c.builder = NewBuilder()
	frag, err := c.compile(root)
	if err != nil {
		return nil, err
	}
	return c.builder.Build(frag.start, frag.end)
}

func (c *Compiler) compile(node *syntax.Node) (fragment, error) {
	switch node.Kind {
	case syntax.KindLiteral:
		return c.compileByteSet([]byte{node.Lit}), nil

	case syntax.KindDot:
		return c.compileByteSet(syntax.DotSet()), nil

	case syntax.KindClass:
		return c.compileByteSet(syntax.ClassSet(node.Class)), nil

	case syntax.KindBracketed:
		return c.compileByteSet(syntax.BracketedSet(node)), nil

	case syntax.KindConcat:
		left, err := c.compile(node.Left)
		if err != nil {
			return fragment{}, err
		}
		right, err := c.compile(node.Right)
		if err != nil {
			return fragment{}, err
		}
		return c.compileConcat(left, right), nil

	case syntax.KindOption:
		left, err := c.compile(node.Left)
		if err != nil {
			return fragment{}, err
		}
		right, err := c.compile(node.Right)
		if err != nil {
			return fragment{}, err
		}
		return c.compileOption(left, right), nil

	case syntax.KindRepetition:
		child, err := c.compile(node.Left)
		if err != nil {
			return fragment{}, err
		}
		return c.compileRepetition(node.Rep, child), nil

	default:
		return fragment{}, &BuildError{
			Message: fmt.Sprintf("unknown AST node kind %s", node.Kind),
			StateID: InvalidState,
		}
	}
}

// compileByteSet builds the fragment for a literal, dot, named class or
// bracketed class: a new start with one edge per byte in the set, all
// pointing at a new accepting end.
func (c *Compiler) compileByteSet(set []byte) fragment {
	start := c.builder.AddNode()
	end := c.builder.AddNode()
	for _, b := range set {
		c.builder.AddByte(start, end, b)
	}
	c.builder.SetAccepting(end, true)
	return fragment{start: start, end: end}
}

// compileConcat joins left to right with an ε edge. The composite runs from
// left's start to right's end.
func (c *Compiler) compileConcat(left, right fragment) fragment {
	c.builder.SetAccepting(left.end, false)
	c.builder.AddEpsilon(left.end, right.start)
	return fragment{start: left.start, end: right.end}
}

// compileOption forks from a new start into both branches and joins both
// branch ends into a new accepting end.
func (c *Compiler) compileOption(left, right fragment) fragment {
	c.builder.SetAccepting(left.end, false)
	c.builder.SetAccepting(right.end, false)

	start := c.builder.AddNode()
	end := c.builder.AddNode()
	c.builder.AddEpsilon(start, left.start)
	c.builder.AddEpsilon(start, right.start)
	c.builder.AddEpsilon(left.end, end)
	c.builder.AddEpsilon(right.end, end)
	c.builder.SetAccepting(end, true)
	return fragment{start: start, end: end}
}

// compileRepetition wraps child with the quantifier's ε wiring:
//
//	*  start may skip or enter; child's end loops back or exits
//	+  start must enter; child's end loops back or exits
//	?  start may skip or enter; child's end exits
func (c *Compiler) compileRepetition(kind syntax.RepetitionKind, child fragment) fragment {
	c.builder.SetAccepting(child.end, false)

	start := c.builder.AddNode()
	end := c.builder.AddNode()
	c.builder.AddEpsilon(start, child.start)

	switch kind {
	case syntax.RepZeroOrMore:
		c.builder.AddEpsilon(start, end)
		c.builder.AddEpsilon(child.end, child.start)
	case syntax.RepOneOrMore:
		c.builder.AddEpsilon(child.end, child.start)
	case syntax.RepZeroOrOne:
		c.builder.AddEpsilon(start, end)
	}
	c.builder.AddEpsilon(child.end, end)

	c.builder.SetAccepting(end, true)
	return fragment{start: start, end: end}
}
