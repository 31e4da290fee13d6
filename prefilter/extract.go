package prefilter

import "github.com/coregx/sregex/syntax"

// extractor walks the AST computing literal sets under the configured limits.
type extractor struct {
	config Config
}

// required returns a set of literals of which every match of node must
// contain at least one. When the node's language is itself a small finite
// set, that set is used directly; otherwise the requirement is delegated to
// sub-expressions that participate in every match.
func (e *extractor) required(node *syntax.Node) ([][]byte, bool) {
	if lits, ok := e.exact(node); ok {
		return lits, true
	}

	switch node.Kind {
	case syntax.KindConcat:
		return e.requiredConcat(node)

	case syntax.KindOption:
		// A match goes through one branch or the other, so both
		// requirements must hold jointly.
		left, lok := e.required(node.Left)
		if !lok {
			return nil, false
		}
		right, rok := e.required(node.Right)
		if !rok {
			return nil, false
		}
		if len(left)+len(right) > e.config.MaxLiterals {
			return nil, false
		}
		return append(left, right...), true

	case syntax.KindRepetition:
		// One-or-more repeats its child at least once. The other
		// quantifiers can match empty and require nothing.
		if node.Rep == syntax.RepOneOrMore {
			return e.required(node.Left)
		}
		return nil, false
	}

	return nil, false
}

// requiredConcat extracts from a concatenation. The spine is flattened and
// maximal runs of exact children are combined into long literals; every run
// and every non-exact child's own requirement is a candidate, and the most
// selective candidate wins. Every child appears in every match, so any
// single candidate is a sound requirement.
func (e *extractor) requiredConcat(node *syntax.Node) ([][]byte, bool) {
	var children []*syntax.Node
	var flatten func(n *syntax.Node)
	flatten = func(n *syntax.Node) {
		if n.Kind == syntax.KindConcat {
			flatten(n.Left)
			flatten(n.Right)
			return
		}
		children = append(children, n)
	}
	flatten(node)

	var best [][]byte
	haveBest := false
	consider := func(candidate [][]byte, ok bool) {
		if ok && (!haveBest || moreSelective(candidate, best)) {
			best = candidate
			haveBest = true
		}
	}

	var run [][]byte
	haveRun := false
	for _, child := range children {
		if ex, ok := e.exact(child); ok {
			if !haveRun {
				run, haveRun = ex, true
				continue
			}
			if combined, ok := e.cross(run, ex); ok {
				run = combined
				continue
			}
			// The run outgrew the limits; keep it as a candidate and
			// start over from this child.
			consider(run, true)
			run = ex
			continue
		}

		if haveRun {
			consider(run, true)
			haveRun = false
		}
		consider(e.required(child))
	}
	if haveRun {
		consider(run, true)
	}

	return best, haveBest
}

// exact returns the node's complete language as a literal set, when it is
// finite and within limits. Every returned literal is non-empty.
func (e *extractor) exact(node *syntax.Node) ([][]byte, bool) {
	switch node.Kind {
	case syntax.KindLiteral:
		return [][]byte{{node.Lit}}, true

	case syntax.KindClass:
		return e.byteSet(syntax.ClassSet(node.Class))

	case syntax.KindBracketed:
		return e.byteSet(syntax.BracketedSet(node))

	case syntax.KindConcat:
		left, ok := e.exact(node.Left)
		if !ok {
			return nil, false
		}
		right, ok := e.exact(node.Right)
		if !ok {
			return nil, false
		}
		return e.cross(left, right)

	case syntax.KindOption:
		left, ok := e.exact(node.Left)
		if !ok {
			return nil, false
		}
		right, ok := e.exact(node.Right)
		if !ok {
			return nil, false
		}
		if len(left)+len(right) > e.config.MaxLiterals {
			return nil, false
		}
		return append(left, right...), true
	}

	// Dot and the quantifiers have languages too large or unbounded.
	return nil, false
}

func (e *extractor) byteSet(set []byte) ([][]byte, bool) {
	if len(set) == 0 || len(set) > e.config.MaxClassSize {
		return nil, false
	}
	lits := make([][]byte, len(set))
	for i, b := range set {
		lits[i] = []byte{b}
	}
	return lits, true
}

// cross concatenates every left literal with every right literal.
func (e *extractor) cross(left, right [][]byte) ([][]byte, bool) {
	if len(left)*len(right) > e.config.MaxLiterals {
		return nil, false
	}
	product := make([][]byte, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			if len(l)+len(r) > e.config.MaxLiteralLen {
				return nil, false
			}
			combined := make([]byte, 0, len(l)+len(r))
			combined = append(combined, l...)
			combined = append(combined, r...)
			product = append(product, combined)
		}
	}
	return product, true
}

// moreSelective reports whether candidate a filters better than b: its
// shortest literal is longer, or equally long with fewer literals.
func moreSelective(a, b [][]byte) bool {
	if minLen(a) != minLen(b) {
		return minLen(a) > minLen(b)
	}
	return len(a) < len(b)
}

func minLen(lits [][]byte) int {
	shortest := int(^uint(0) >> 1)
	for _, l := range lits {
		if len(l) < shortest {
			shortest = len(l)
		}
	}
	return shortest
}
