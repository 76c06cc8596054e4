// Package sparse provides the fixed-capacity sparse row representation used
// by the Levenshtein stepping kernel.
//
// A State is a compact representation of one row of the conceptual
// Levenshtein cost matrix: rather than storing n+1 columns, it retains only
// the handful of entries whose cost is within the maximum number of edits
// k, since every other column is implicitly "too far" to matter. For k in
// {1, 2} this is at most 2k+1 entries, so a State lives entirely in a fixed
// array with no heap allocation.
package sparse

// MaxDiag is the largest possible entry count across the supported values
// of k (1 and 2): diag(k) = 2k+1, so diag(2) = 5.
const MaxDiag = 5

// Diag returns the width of the diagonal band of the cost matrix that can
// possibly be within k edits: 2k+1.
func Diag(k uint8) uint8 {
	return k*2 + 1
}

// State is an ordered, fixed-capacity list of (index, cost) pairs
// representing one row of the Levenshtein matrix, retaining only entries
// within the maximum edit distance.
//
// Entries are strictly increasing by index. State is a plain value type
// (comparable, no pointers) so it can be used directly as a map key, e.g.
// when deduplicating states during explicit-DFA construction.
type State struct {
	indices [MaxDiag]uint32
	costs   [MaxDiag]uint8
	size    uint8
}

// Empty reports whether the state has no entries. An empty state is
// "doomed": every possible continuation already exceeds the max edit
// distance.
func (s State) Empty() bool {
	return s.size == 0
}

// Size returns the number of entries in the state.
func (s State) Size() int {
	return int(s.size)
}

// Index returns the column of the i-th entry.
func (s State) Index(i int) uint32 {
	return s.indices[i]
}

// Cost returns the cost of the i-th entry.
func (s State) Cost(i int) uint8 {
	return s.costs[i]
}

// LastIndex returns the column of the final entry.
// Precondition: !s.Empty().
func (s State) LastIndex() uint32 {
	return s.indices[s.size-1]
}

// LastCost returns the cost of the final entry.
// Precondition: !s.Empty().
func (s State) LastCost() uint8 {
	return s.costs[s.size-1]
}

// Append adds a new entry to the state. The caller must preserve increasing
// index order; Append does not itself check this.
// Panics if the state is already at capacity.
func (s *State) Append(index uint32, cost uint8) {
	if int(s.size) >= len(s.indices) {
		panic("sparse: state append exceeds fixed capacity")
	}
	s.indices[s.size] = index
	s.costs[s.size] = cost
	s.size++
}

// Transitions is a fixed-capacity, deduplicated set of candidate
// out-characters collected from a State: the distinct target characters
// reachable from entries in the state.
type Transitions struct {
	chars [MaxDiag]uint32
	size  uint8
}

// Has reports whether u32ch is already present.
func (t *Transitions) Has(u32ch uint32) bool {
	for i := uint8(0); i < t.size; i++ {
		if t.chars[i] == u32ch {
			return true
		}
	}
	return false
}

// Add inserts u32ch if not already present.
func (t *Transitions) Add(u32ch uint32) {
	if t.Has(u32ch) {
		return
	}
	if int(t.size) >= len(t.chars) {
		panic("sparse: transitions add exceeds fixed capacity")
	}
	t.chars[t.size] = u32ch
	t.size++
}

// Chars returns the collected characters. The returned slice aliases t's
// backing array and is only valid until the next Add.
func (t *Transitions) Chars() []uint32 {
	return t.chars[:t.size]
}

// Sort orders the collected characters ascending. Must be called before the
// transitions are consumed by the explicit-DFA builder, which relies on
// ascending order for its first-higher-edge scan.
func (t *Transitions) Sort() {
	s := t.chars[:t.size]
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
