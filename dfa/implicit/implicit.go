// Package implicit implements the implicit DFA realization: it answers
// every matcher.Matcher capability by running the Levenshtein stepping
// kernel (package levenshtein) on demand, storing nothing per state. Its
// only persistent memory is the target code-point vector itself.
package implicit

import (
	"github.com/coregx/fuzzydfa/internal/sparse"
	"github.com/coregx/fuzzydfa/levenshtein"
)

// DFA is the implicit realization. State is sparse.State, Edge is a raw
// UTF-32 character. It implements matcher.Matcher[sparse.State, uint32].
type DFA struct {
	stepper levenshtein.Stepper
	cased   bool
}

// New builds an implicit DFA over target with the given maximum edit
// distance and casing mode. Construction is O(1): it only stores the
// target slice and scalar fields.
func New(target []uint32, maxEdits uint8, cased bool) *DFA {
	return &DFA{stepper: levenshtein.New(target, maxEdits), cased: cased}
}

// Start returns the initial sparse state.
func (d *DFA) Start() sparse.State {
	return d.stepper.Start()
}

// IsMatch reports whether s has consumed the entire target within budget.
func (d *DFA) IsMatch(s sparse.State) bool {
	return d.stepper.IsMatch(s)
}

// CanMatch reports whether s is not the doomed (empty) state.
func (d *DFA) CanMatch(s sparse.State) bool {
	return d.stepper.CanMatch(s)
}

// MatchEditDistance returns the edit distance of a matching state, or
// maxEdits+1 otherwise.
func (d *DFA) MatchEditDistance(s sparse.State) uint8 {
	return d.stepper.MatchEditDistance(s)
}

// MatchInput steps s on a concrete input character.
func (d *DFA) MatchInput(s sparse.State, c uint32) sparse.State {
	return d.stepper.Step(s, c)
}

// MatchWildcard steps s as though the input matched no target character.
func (d *DFA) MatchWildcard(s sparse.State) sparse.State {
	return d.stepper.WildcardStep(s)
}

// HasHigherOutEdge reports whether s has an out-edge, explicit or
// wildcard, for some character strictly greater than c. The wildcard edge
// (when reachable) accepts every character not already explicit, which in
// practice is always some character above c, so it short-circuits the
// explicit scan.
func (d *DFA) HasHigherOutEdge(s sparse.State, c uint32) bool {
	if d.stepper.CanWildcardStep(s) {
		return true
	}
	tr := d.stepper.Transitions(s)
	for _, ch := range tr.Chars() {
		if ch > c {
			return true
		}
	}
	return false
}

// HasExactExplicitOutEdge reports whether s has an explicit out-edge for
// exactly c.
func (d *DFA) HasExactExplicitOutEdge(s sparse.State, c uint32) bool {
	tr := d.stepper.Transitions(s)
	return tr.Has(c)
}

// LowestHigherExplicitOutEdge returns the smallest explicit out-edge
// character of s strictly greater than c.
// Precondition: one exists.
func (d *DFA) LowestHigherExplicitOutEdge(s sparse.State, c uint32) uint32 {
	tr := d.stepper.Transitions(s)
	for _, ch := range tr.Chars() {
		if ch > c {
			return ch
		}
	}
	panic("implicit: no higher explicit out-edge (precondition violated)")
}

// SmallestExplicitOutEdge returns the lowest-character explicit out-edge
// of s.
// Precondition: s has at least one explicit out-edge.
func (d *DFA) SmallestExplicitOutEdge(s sparse.State) uint32 {
	tr := d.stepper.Transitions(s)
	chars := tr.Chars()
	if len(chars) == 0 {
		panic("implicit: no explicit out-edge (precondition violated)")
	}
	return chars[0]
}

// EdgeToChar returns the character an edge represents. For the implicit
// realization the edge is the character.
func (d *DFA) EdgeToChar(e uint32) uint32 {
	return e
}

// EdgeToState steps s on the edge's character.
func (d *DFA) EdgeToState(s sparse.State, e uint32) sparse.State {
	return d.stepper.Step(s, e)
}

// ValidState reports whether s's entries are strictly increasing by index,
// the structural invariant every sparse.State produced by Stepper
// maintains.
func (d *DFA) ValidState(s sparse.State) bool {
	for i := 1; i < s.Size(); i++ {
		if s.Index(i) <= s.Index(i-1) {
			return false
		}
	}
	return true
}

// ValidEdge reports whether e is a well-formed edge. Every uint32 value is
// a structurally valid character edge for this realization.
func (d *DFA) ValidEdge(uint32) bool {
	return true
}

// IsCased reports whether this DFA was built in cased mode.
func (d *DFA) IsCased() bool {
	return d.cased
}

// ImpliesExactMatchSuffix is always false: the implicit realization has no
// shortcut for determining the remaining matching suffix without walking
// it state by state.
func (d *DFA) ImpliesExactMatchSuffix(sparse.State) bool {
	return false
}

// EmitExactMatchSuffix is never called, since ImpliesExactMatchSuffix
// always returns false.
func (d *DFA) EmitExactMatchSuffix(sparse.State, []byte) []byte {
	panic("implicit: EmitExactMatchSuffix unreachable (ImpliesExactMatchSuffix always false)")
}

// MemoryUsage returns the number of bytes held by this realization beyond
// the DFA value itself: one uint32 per target code point.
func (d *DFA) MemoryUsage() int {
	return 4 * len(d.stepper.Target())
}

// MaxEdits returns the configured maximum edit distance.
func (d *DFA) MaxEdits() uint8 {
	return d.stepper.MaxEdits()
}

// Target returns the target code points this DFA was built over.
func (d *DFA) Target() []uint32 {
	return d.stepper.Target()
}
