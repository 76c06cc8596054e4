// Package levenshtein implements the sparse-state Levenshtein stepping
// kernel: the pure row-to-row transition function that all three DFA
// realizations build on.
//
// Given a target string (as UTF-32 code points) and a fixed maximum edit
// distance k, Stepper.Step advances a sparse.State representing one row of
// the conceptual Levenshtein cost matrix to the next row, given a single
// input character. Because only entries with cost <= k are ever retained,
// this runs in O(k) per step regardless of target length.
package levenshtein

import "github.com/coregx/fuzzydfa/internal/sparse"

// Wildcard is the sentinel character used to step a state as though the
// input character did not match any character in the target string. It
// models both insertion and non-matching substitution in one step.
const Wildcard uint32 = 0xFFFFFFFF

// Stepper holds the target string and the maximum edit distance it was
// built for. It is immutable and safe for concurrent use.
type Stepper struct {
	target   []uint32
	maxEdits uint8
}

// New returns a Stepper for the given target code points and max edit
// distance. Callers are expected to have already validated maxEdits in
// {1, 2}.
func New(target []uint32, maxEdits uint8) Stepper {
	return Stepper{target: target, maxEdits: maxEdits}
}

// MaxEdits returns the configured maximum edit distance.
func (s Stepper) MaxEdits() uint8 {
	return s.maxEdits
}

// Target returns the code points of the target string.
func (s Stepper) Target() []uint32 {
	return s.target
}

// Start returns the initial state: the first row of the Levenshtein
// matrix, representing zero source characters consumed.
func (s Stepper) Start() sparse.State {
	var out sparse.State
	j := uint32(s.maxEdits)
	if n := uint32(len(s.target)); n < j {
		j = n
	}
	for i := uint32(0); i <= j; i++ {
		out.Append(i, uint8(i))
	}
	return out
}

// Step computes the next row given the input state and a single input
// character c. A non-matching (empty) state always steps to another empty
// state: once doomed, always doomed.
//
// The algorithm walks the input row left to right, computing for each
// column i+1 the minimum of three costs: substitution (diagonal), deletion
// (directly above, i.e. the next entry in the input row), and insertion
// (immediately to the left, i.e. the last entry already appended to the
// output row). Entries whose minimum cost would exceed maxEdits are
// dropped, since the output state only needs to retain what's within
// budget.
func (s Stepper) Step(in sparse.State, c uint32) sparse.State {
	if in.Empty() {
		return in
	}
	var out sparse.State
	k := s.maxEdits
	n := uint32(len(s.target))

	if in.Index(0) == 0 && in.Cost(0) < k {
		out.Append(0, in.Cost(0)+1)
	}

	for i := 0; i < in.Size(); i++ {
		idx := in.Index(i)
		if idx == n {
			break
		}
		sub := uint8(1)
		if s.target[idx] == c {
			sub = 0
		}
		dist := in.Cost(i) + sub
		if !out.Empty() && out.LastIndex() == idx {
			if ins := out.LastCost() + 1; ins < dist {
				dist = ins
			}
		}
		if i < in.Size()-1 && in.Index(i+1) == idx+1 {
			if del := in.Cost(i+1) + 1; del < dist {
				dist = del
			}
		}
		if dist <= k {
			out.Append(idx+1, dist)
		}
	}
	return out
}

// WildcardStep is Step using the sentinel character that matches nothing in
// the target.
func (s Stepper) WildcardStep(in sparse.State) sparse.State {
	return s.Step(in, Wildcard)
}

// CanWildcardStep reports whether WildcardStep(in) would yield a non-empty
// state, without materializing it. Insertion is skipped in this shortcut:
// since we bail out on the first entry within budget, any insertion built
// from entries already accepted in this row can never itself be the
// deciding factor (it only ever increases cost relative to what already
// passed).
func (s Stepper) CanWildcardStep(in sparse.State) bool {
	if in.Empty() {
		return false
	}
	k := s.maxEdits
	n := uint32(len(s.target))
	if in.Index(0) == 0 && in.Cost(0) < k {
		return true
	}
	for i := 0; i < in.Size(); i++ {
		idx := in.Index(i)
		if idx == n {
			break
		}
		dist := in.Cost(i) + 1
		if i < in.Size()-1 && in.Index(i+1) == idx+1 {
			if del := in.Cost(i+1) + 1; del < dist {
				dist = del
			}
		}
		if dist <= k {
			return true
		}
	}
	return false
}

// IsMatch reports whether state represents having consumed the entire
// target within the max edit distance.
func (s Stepper) IsMatch(st sparse.State) bool {
	return !st.Empty() && st.LastIndex() == uint32(len(s.target))
}

// MatchEditDistance returns the edit distance of a matching state, or
// maxEdits+1 if the state is not a match.
func (s Stepper) MatchEditDistance(st sparse.State) uint8 {
	if !s.IsMatch(st) {
		return s.maxEdits + 1
	}
	return st.LastCost()
}

// CanMatch reports whether state may still lead to a match given suitable
// remaining input. Note: IsMatch implies CanMatch, but not vice versa.
func (s Stepper) CanMatch(st sparse.State) bool {
	return !st.Empty()
}

// Transitions returns the distinct target characters reachable from
// entries in state, sorted ascending.
func (s Stepper) Transitions(st sparse.State) sparse.Transitions {
	var t sparse.Transitions
	n := uint32(len(s.target))
	for i := 0; i < st.Size(); i++ {
		idx := st.Index(i)
		if idx < n {
			t.Add(s.target[idx])
		}
	}
	t.Sort()
	return t
}
