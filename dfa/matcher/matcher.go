// Package matcher defines the DFA matcher capability: the small set of
// pure functions that all three DFA realizations (implicit, explicit,
// table) must expose so that package matchalgo can drive any of them with
// one shared match/successor algorithm.
//
// The capability is expressed as a generic interface. matchalgo.Match is
// instantiated with each realization's concrete State/Edge types, but it
// receives the matcher itself as a value of this interface type, so every
// capability call goes through dynamic dispatch and is not inlined into
// the per-character match loop.
package matcher

// Matcher is implemented by each DFA realization. State and Edge are
// realization-specific opaque types: sparse.State and uint32 for the
// implicit realization, a node index and a (character, node index) edge
// value for the explicit realization, and (index, stateID) pairs with
// uint32 edges for the table realization.
type Matcher[State, Edge any] interface {
	// Start returns the initial state.
	Start() State

	// IsMatch reports whether s is a terminal accepting state.
	IsMatch(s State) bool

	// CanMatch reports whether some continuation from s may still match.
	CanMatch(s State) bool

	// MatchEditDistance returns the edit distance if IsMatch(s), else
	// one past the maximum configured edit distance.
	MatchEditDistance(s State) uint8

	// MatchInput transitions on a concrete input character.
	MatchInput(s State, c uint32) State

	// MatchWildcard transitions on the sentinel non-matching character.
	MatchWildcard(s State) State

	// HasHigherOutEdge reports whether s has an out-edge (explicit or
	// wildcard) accepting some character strictly greater than c.
	HasHigherOutEdge(s State, c uint32) bool

	// HasExactExplicitOutEdge reports whether s has an explicit
	// (non-wildcard) out-edge for exactly c.
	HasExactExplicitOutEdge(s State, c uint32) bool

	// LowestHigherExplicitOutEdge returns the explicit edge for the
	// smallest character strictly greater than c.
	// Precondition: such an edge exists.
	LowestHigherExplicitOutEdge(s State, c uint32) Edge

	// SmallestExplicitOutEdge returns the lowest-character explicit
	// out-edge of s. Precondition: s has at least one explicit out-edge.
	SmallestExplicitOutEdge(s State) Edge

	// EdgeToChar returns the character an edge is labeled with.
	EdgeToChar(e Edge) uint32

	// EdgeToState returns the state an edge leads to from s.
	EdgeToState(s State, e Edge) State

	// ValidState reports whether s is a well-formed state value.
	ValidState(s State) bool

	// ValidEdge reports whether e is a well-formed edge value.
	ValidEdge(e Edge) bool

	// IsCased reports whether this matcher was built in cased mode.
	IsCased() bool

	// ImpliesExactMatchSuffix reports whether s uniquely determines the
	// remaining matching suffix, allowing EmitExactMatchSuffix to emit it
	// directly instead of walking state by state. All three realizations
	// currently return false unconditionally; the hook is reserved for a
	// future optimization.
	ImpliesExactMatchSuffix(s State) bool

	// EmitExactMatchSuffix appends the remaining matching suffix implied
	// by s to buf and returns the extended slice. Only called when
	// ImpliesExactMatchSuffix(s) is true.
	EmitExactMatchSuffix(s State, buf []byte) []byte
}
