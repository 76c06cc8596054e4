// Package tablegen builds the parametric Levenshtein transition tables
// the table DFA realization consults at match time, following Schulz and
// Mihov's "Fast string correction with Levenshtein automata" (2002).
//
// The key idea: instead of building a DFA over a specific target string,
// build one generic automaton per max edit distance k whose states are
// abstract "local neighborhoods" of the conceptual Levenshtein NFA,
// parameterized by a (2k+1)-bit characteristic vector rather than a
// concrete character. A per-target lookup table (built separately, in
// package table) then maps each actual input character, at each position
// in the actual target, to the right characteristic vector. Together they
// simulate a Levenshtein DFA that is never actually materialized for the
// specific target.
//
// BuildTfa does this enumeration once per k; its result is cached at
// package-level var-initialization time by package table, matching the
// "compute once at process init, never mutate" rule for this codebase's
// static tables.
package tablegen

import (
	"sort"
	"strconv"
	"strings"

	"github.com/coregx/fuzzydfa/internal/u32conv"
)

// Position pairs a column (relative to some local window origin) with an
// edit count: one node of the conceptual bounded-edit-distance NFA.
type Position struct {
	Index uint32
	Edits uint32
}

// StartPosition is the NFA's single start position.
func StartPosition() Position {
	return Position{Index: 0, Edits: 0}
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

// Subsumes reports whether p makes q redundant: p has strictly fewer edits
// and lies within q.Edits-p.Edits columns of q, so any continuation that
// would accept from q already gets accepted (at least as cheaply) from p.
func (p Position) Subsumes(q Position) bool {
	if p.Edits >= q.Edits {
		return false
	}
	return absDiff(p.Index, q.Index) <= q.Edits-p.Edits
}

// Materialize projects p onto a concrete target index, returning the edit
// count incurred by aligning p's column with targetIndex.
func (p Position) Materialize(targetIndex uint32) Position {
	return Position{Index: targetIndex, Edits: p.Edits + absDiff(p.Index, targetIndex)}
}

// AddElementaryTransitions appends to dst every Position reachable from p
// by consuming one input character whose match pattern against the local
// window is given by bits (bits[i] true means window position i, counted
// from the window origin like p.Index, matches the input character). maxEdits bounds which transitions are
// worth generating at all; out-of-budget positions are filtered later by
// CreateState.
func (p Position) AddElementaryTransitions(maxEdits uint32, bits []bool, dst []Position) []Position {
	if !bits[p.Index] {
		dst = append(dst, Position{Index: p.Index, Edits: p.Edits + 1})
		dst = append(dst, Position{Index: p.Index + 1, Edits: p.Edits + 1})
	}
	for e := uint32(0); p.Edits+e <= maxEdits; e++ {
		if bits[p.Index+e] {
			dst = append(dst, Position{Index: p.Index + e + 1, Edits: p.Edits + e})
		}
	}
	return dst
}

// State is a set of Positions, none of which subsumes another: one state
// of the abstract parametric DFA.
type State struct {
	List []Position
}

// FailedState is the absorbing empty state: state ID 0 in every StateRepo.
func FailedState() State {
	return State{}
}

// StartState is the initial state: state ID 1 in every StateRepo.
func StartState() State {
	return State{List: []Position{StartPosition()}}
}

// MinimalBoundary returns the smallest column among s's positions, or 0
// for the empty state.
func (s State) MinimalBoundary() uint32 {
	if len(s.List) == 0 {
		return 0
	}
	min := s.List[0].Index
	for _, p := range s.List[1:] {
		if p.Index < min {
			min = p.Index
		}
	}
	return min
}

// Normalize shifts every position's column so the minimal boundary
// becomes 0, and returns the shift amount (the "step" the real target
// window must advance by to stay aligned with this state).
func (s *State) Normalize() uint32 {
	min := s.MinimalBoundary()
	if min > 0 {
		for i := range s.List {
			s.List[i].Index -= min
		}
	}
	return min
}

// Key returns a canonical string encoding of s, suitable as a map key
// (plain Go slices aren't comparable, so States can't be used as map keys
// directly — unlike internal/sparse.State, whose fixed-array
// representation is comparable).
func (s State) Key() string {
	var b strings.Builder
	for _, p := range s.List {
		b.WriteString(strconv.FormatUint(uint64(p.Index), 10))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(p.Edits), 10))
		b.WriteByte(';')
	}
	return b.String()
}

// CreateState sorts list (lowest edits first, then lowest index) and
// keeps only the positions within maxEdits that aren't subsumed by an
// earlier (cheaper) one already kept.
func CreateState(maxEdits uint32, list []Position) State {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Edits != list[j].Edits {
			return list[i].Edits < list[j].Edits
		}
		return list[i].Index < list[j].Index
	})
	var result State
	for _, pos := range list {
		if pos.Edits > maxEdits {
			continue
		}
		redundant := false
		for _, kept := range result.List {
			if kept == pos || kept.Subsumes(pos) {
				redundant = true
				break
			}
		}
		if !redundant {
			result.List = append(result.List, pos)
		}
	}
	return result
}

// Next computes the state reached by consuming one input character whose
// characteristic vector against the local window is bits.
func (s State) Next(maxEdits uint32, bits []bool) State {
	var tmp []Position
	for _, pos := range s.List {
		tmp = pos.AddElementaryTransitions(maxEdits, bits, tmp)
	}
	return CreateState(maxEdits, tmp)
}

// MakeEditVector returns, for each of the windowSize possible end-of-target
// offsets, the minimum edit count for s to be accepting there (maxEdits+1
// if s cannot accept at that offset).
func (s State) MakeEditVector(maxEdits uint32, windowSize int) []uint8 {
	result := make([]uint8, windowSize)
	for i := range result {
		result[i] = u32conv.IntToUint8(int(maxEdits) + 1)
	}
	for _, pos := range s.List {
		for i := 0; i < windowSize; i++ {
			edits := u32conv.IntToUint8(int(pos.Materialize(uint32(i)).Edits))
			if edits < result[i] {
				result[i] = edits
			}
		}
	}
	return result
}

// StateRepo interns States, assigning each a stable integer ID. It is
// always seeded so that FailedState gets ID 0 and StartState gets ID 1.
type StateRepo struct {
	seen   map[string]uint32
	states []State
}

// NewStateRepo returns a StateRepo seeded with the failed and start
// states.
func NewStateRepo() *StateRepo {
	r := &StateRepo{seen: make(map[string]uint32)}
	failedIdx := r.Intern(FailedState())
	startIdx := r.Intern(StartState())
	if failedIdx != 0 || startIdx != 1 {
		panic("tablegen: state repo seeding invariant violated")
	}
	return r
}

// Intern returns s's ID, assigning a new one if s hasn't been seen.
// Precondition: s.MinimalBoundary() == 0 (only normalized states may be
// interned).
func (r *StateRepo) Intern(s State) uint32 {
	if s.MinimalBoundary() != 0 {
		panic("tablegen: only normalized states may be interned")
	}
	k := s.Key()
	if id, ok := r.seen[k]; ok {
		return id
	}
	id := u32conv.IntToUint32(len(r.states))
	r.seen[k] = id
	r.states = append(r.states, s)
	return id
}

// Size returns the number of interned states so far. Callers enumerating
// a repo with a growing for-loop bound (`for i := 0; i < repo.Size(); i++`)
// rely on this reflecting newly interned states discovered mid-loop.
func (r *StateRepo) Size() int {
	return len(r.states)
}

// State returns the state assigned to id.
func (r *StateRepo) State(id uint32) State {
	return r.states[id]
}

// WindowSize returns 2*maxEdits + 1: the width of the local window a
// characteristic vector describes.
func WindowSize(maxEdits uint8) int {
	return 2*int(maxEdits) + 1
}

// NumTransitions returns 2^WindowSize(maxEdits): the number of distinct
// characteristic vectors.
func NumTransitions(maxEdits uint8) int {
	return 1 << WindowSize(maxEdits)
}

// ExpandBits decodes value into a per-window-position match vector: the
// same bit layout makeLookup (package table) packs a real character's
// matches into.
func ExpandBits(windowSize int, value uint32) []bool {
	result := make([]bool, windowSize)
	lookFor := uint32(1) << uint(windowSize)
	for i := 0; i < windowSize; i++ {
		lookFor >>= 1
		result[i] = value&lookFor != 0
	}
	return result
}

// Transition is one parametric-table cell: how far the real target window
// must advance (Step), and which abstract state to continue in (State).
type Transition struct {
	Step  uint8
	State uint8
}

// Tfa is the complete parametric table for one max edit distance: a
// transition table indexed by [state][characteristic vector], and an
// edit-distance table indexed by [state][offset from end of target].
type Tfa struct {
	MaxEdits   uint8
	WindowSize int
	NumStates  int
	Table      [][]Transition
	Edits      [][]uint8
}

// BuildTfa enumerates every reachable abstract state for maxEdits and
// computes its full transition and edit-distance rows. This is the
// offline build step; its result is immutable and meant to be computed
// exactly once.
func BuildTfa(maxEdits uint8) *Tfa {
	windowSize := WindowSize(maxEdits)
	numTransitions := NumTransitions(maxEdits)
	maxEditsU32 := uint32(maxEdits)

	repo := NewStateRepo()
	var table [][]Transition
	var edits [][]uint8

	for idx := 0; idx < repo.Size(); idx++ {
		state := repo.State(u32conv.IntToUint32(idx))

		row := make([]Transition, numTransitions)
		for i := 0; i < numTransitions; i++ {
			next := state.Next(maxEditsU32, ExpandBits(windowSize, u32conv.IntToUint32(i)))
			step := next.Normalize()
			nextIdx := repo.Intern(next)
			row[i] = Transition{
				Step:  u32conv.IntToUint8(int(step)),
				State: u32conv.IntToUint8(int(nextIdx)),
			}
		}
		table = append(table, row)
		edits = append(edits, state.MakeEditVector(maxEditsU32, windowSize))
	}

	return &Tfa{
		MaxEdits:   maxEdits,
		WindowSize: windowSize,
		NumStates:  repo.Size(),
		Table:      table,
		Edits:      edits,
	}
}
