package syntax

import "fmt"

// NodeKind identifies the type of an AST node and determines which of the
// Node fields are meaningful.
type NodeKind uint8

const (
	// KindOption represents an alternation `a|b`.
	KindOption NodeKind = iota

	// KindConcat represents a concatenation `ab`.
	KindConcat

	// KindRepetition represents a quantified sub-expression `a*`, `a+` or `a?`.
	KindRepetition

	// KindDot represents `.` (printable ASCII plus \t; see DotSet).
	KindDot

	// KindLiteral represents a single literal byte.
	KindLiteral

	// KindClass represents a named character class such as `\d` or `\W`.
	KindClass

	// KindBracketed represents a bracketed class `[...]`.
	KindBracketed
)

// String returns a human-readable representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindOption:
		return "Option"
	case KindConcat:
		return "Concat"
	case KindRepetition:
		return "Repetition"
	case KindDot:
		return "Dot"
	case KindLiteral:
		return "Literal"
	case KindClass:
		return "Class"
	case KindBracketed:
		return "Bracketed"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// RepetitionKind distinguishes the three postfix quantifiers.
type RepetitionKind uint8

const (
	// RepZeroOrOne is `?`.
	RepZeroOrOne RepetitionKind = iota

	// RepZeroOrMore is `*`.
	RepZeroOrMore

	// RepOneOrMore is `+`.
	RepOneOrMore
)

// String returns the quantifier symbol for the RepetitionKind.
func (k RepetitionKind) String() string {
	switch k {
	case RepZeroOrOne:
		return "?"
	case RepZeroOrMore:
		return "*"
	case RepOneOrMore:
		return "+"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// ClassKind identifies a named character class.
type ClassKind uint8

const (
	// ClassDigit is `\d`.
	ClassDigit ClassKind = iota

	// ClassNonDigit is `\D`.
	ClassNonDigit

	// ClassWord is `\w`.
	ClassWord

	// ClassNonWord is `\W`.
	ClassNonWord

	// ClassWhitespace is `\s`.
	ClassWhitespace

	// ClassNonWhitespace is `\S`.
	ClassNonWhitespace
)

// String returns the escape form of the ClassKind.
func (k ClassKind) String() string {
	switch k {
	case ClassDigit:
		return `\d`
	case ClassNonDigit:
		return `\D`
	case ClassWord:
		return `\w`
	case ClassNonWord:
		return `\W`
	case ClassWhitespace:
		return `\s`
	case ClassNonWhitespace:
		return `\S`
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// ItemKind identifies the type of a bracketed-class item.
type ItemKind uint8

const (
	// ItemLiteral is a single byte inside brackets.
	ItemLiteral ItemKind = iota

	// ItemRange is a `lo-hi` range inside brackets.
	ItemRange

	// ItemClass is a named class escape inside brackets, e.g. `[\d-]`.
	ItemClass
)

// ClassItem is one element of a bracketed class. For ItemLiteral only Lo is
// set; for ItemRange, Lo <= Hi always holds (inverted ranges are dropped at
// parse time); for ItemClass only Class is set.
type ClassItem struct {
	Kind  ItemKind
	Lo    byte
	Hi    byte
	Class ClassKind
}

// Node is a node of the pattern AST. The node's Kind determines which fields
// are valid:
//
//   - Option, Concat: Left, Right
//   - Repetition: Rep, Left (the quantified child)
//   - Literal: Lit
//   - Class: Class
//   - Bracketed: Negated, Items
//   - Dot: no fields
//
// Nodes are immutable once the parser returns; the NFA compiler consumes the
// tree without modifying it.
type Node struct {
	Kind NodeKind

	Left  *Node
	Right *Node

	Rep     RepetitionKind
	Lit     byte
	Class   ClassKind
	Negated bool
	Items   []ClassItem
}

// String renders the node in a compact debugging form.
func (n *Node) String() string {
	switch n.Kind {
	case KindOption:
		return fmt.Sprintf("(%s|%s)", n.Left, n.Right)
	case KindConcat:
		return fmt.Sprintf("%s%s", n.Left, n.Right)
	case KindRepetition:
		return fmt.Sprintf("%s%s", n.Left, n.Rep)
	case KindDot:
		return "."
	case KindLiteral:
		return fmt.Sprintf("%q", string(n.Lit))
	case KindClass:
		return n.Class.String()
	case KindBracketed:
		if n.Negated {
			return fmt.Sprintf("[^%d items]", len(n.Items))
		}
		return fmt.Sprintf("[%d items]", len(n.Items))
	default:
		return n.Kind.String()
	}
}
