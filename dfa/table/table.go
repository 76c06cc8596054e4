// Package table implements the table DFA realization: match transitions
// are simulated against a precomputed, target-independent parametric
// table (package tablegen) combined with a small per-target lookup of
// which characteristic vector each position's possible input characters
// map to. No per-target DFA graph is ever built.
package table

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/coregx/fuzzydfa/dfa/table/tablegen"
)

var (
	tfa1 = tablegen.BuildTfa(1)
	tfa2 = tablegen.BuildTfa(2)
)

func tfaFor(maxEdits uint8) (*tablegen.Tfa, error) {
	switch maxEdits {
	case 1:
		return tfa1, nil
	case 2:
		return tfa2, nil
	default:
		return nil, fmt.Errorf("table: unsupported max edit distance %d", maxEdits)
	}
}

// charVector pairs an input character with the characteristic vector it
// produces against the local window at one position.
type charVector struct {
	char uint32
	bits uint32
}

// lookupRow holds, for one position in the target, every distinct
// character appearing in the local (2k+1)-window starting there, sorted
// descending by character. It intentionally omits padding entries: a
// position with fewer distinct window characters than the window width
// simply has a shorter slice, scanned end-to-end rather than relying on a
// zero-value sentinel.
type lookupRow struct {
	entries []charVector
}

func makeLookup(windowSize int, target []uint32) []lookupRow {
	n := len(target)
	rows := make([]lookupRow, n+1)
	for i := 0; i < n; i++ {
		var entries []charVector
		haveAlready := func(c uint32) bool {
			for _, e := range entries {
				if e.char == c {
					return true
				}
			}
			return false
		}
		for j := 0; j < windowSize; j++ {
			if i+j >= n {
				continue
			}
			c := target[i+j]
			if haveAlready(c) {
				continue
			}
			var bits uint32
			for k := 0; k < windowSize; k++ {
				bits <<= 1
				if i+k < n && target[i+k] == c {
					bits |= 1
				}
			}
			entries = append(entries, charVector{char: c, bits: bits})
		}
		sort.Slice(entries, func(a, b int) bool { return entries[a].char > entries[b].char })
		rows[i] = lookupRow{entries: entries}
	}
	return rows
}

// S is the table realization's state: a position in the target paired
// with an abstract table state ID.
type S struct {
	Index uint32
	State uint32
}

func (s S) next(tfa *tablegen.Tfa, bits uint32) S {
	tr := tfa.Table[s.State][bits]
	return S{Index: s.Index + uint32(tr.Step), State: uint32(tr.State)}
}

func (s S) isValidEdge(tfa *tablegen.Tfa, bits uint32) bool {
	return tfa.Table[s.State][bits].State != 0
}

// DFA is the table realization. State is S, Edge is a raw UTF-32
// character. It implements matcher.Matcher[S, uint32].
type DFA struct {
	tfa      *tablegen.Tfa
	lookup   []lookupRow
	end      uint32
	maxEdits uint8
	cased    bool
}

// Build constructs a table DFA over target. maxEdits must be 1 or 2: those
// are the only two parametric tables built by this package's init-time
// BuildTfa calls.
func Build(target []uint32, maxEdits uint8, cased bool) (*DFA, error) {
	tfa, err := tfaFor(maxEdits)
	if err != nil {
		return nil, err
	}
	return &DFA{
		tfa:      tfa,
		lookup:   makeLookup(tfa.WindowSize, target),
		end:      uint32(len(target)),
		maxEdits: maxEdits,
		cased:    cased,
	}, nil
}

// Start returns the initial (index 0, abstract start state 1) state.
func (d *DFA) Start() S {
	return S{Index: 0, State: 1}
}

// MatchEditDistance returns the edit distance if s is accepting, else
// maxEdits+1. The subtraction wraps in unsigned arithmetic when
// s.Index > d.end, which correctly falls outside the window and reports
// non-accepting — no separate bounds check needed.
func (d *DFA) MatchEditDistance(s S) uint8 {
	leap := d.end - s.Index
	if int(leap) < d.tfa.WindowSize {
		return d.tfa.Edits[s.State][leap]
	}
	return d.maxEdits + 1
}

// IsMatch reports whether s is accepting.
func (d *DFA) IsMatch(s S) bool {
	return d.MatchEditDistance(s) <= d.maxEdits
}

// CanMatch reports whether s is not the doomed abstract state (state 0).
func (d *DFA) CanMatch(s S) bool {
	return s.State != 0
}

// MatchWildcard steps s as though the input matched nothing in the local
// window: characteristic vector zero.
func (d *DFA) MatchWildcard(s S) S {
	return s.next(d.tfa, 0)
}

// row returns the lookup entries for s's local window. Matching can run s
// past the end of the target (e.g. trailing insertions in the source), at
// which point there are no further target characters to window over; every
// index at or beyond the target's length shares the same empty final row,
// so index is clamped rather than indexed directly.
func (d *DFA) row(index uint32) []charVector {
	last := uint32(len(d.lookup) - 1)
	if index > last {
		index = last
	}
	return d.lookup[index].entries
}

// MatchInput steps s on a concrete input character, falling back to the
// wildcard transition if c doesn't appear in s's local window.
func (d *DFA) MatchInput(s S, c uint32) S {
	for _, e := range d.row(s.Index) {
		if e.char == c {
			return s.next(d.tfa, e.bits)
		}
	}
	return d.MatchWildcard(s)
}

// HasHigherOutEdge reports whether s has a reachable out-edge, explicit
// or wildcard, for some character strictly greater than c.
func (d *DFA) HasHigherOutEdge(s S, c uint32) bool {
	if s.isValidEdge(d.tfa, 0) {
		return true
	}
	for _, e := range d.row(s.Index) {
		if e.char <= c {
			break // entries are sorted descending; nothing further can exceed c
		}
		if s.isValidEdge(d.tfa, e.bits) {
			return true
		}
	}
	return false
}

// HasExactExplicitOutEdge reports whether s has a reachable explicit
// out-edge for exactly c.
func (d *DFA) HasExactExplicitOutEdge(s S, c uint32) bool {
	for _, e := range d.row(s.Index) {
		if e.char == c {
			return s.isValidEdge(d.tfa, e.bits)
		}
		if e.char < c {
			break
		}
	}
	return false
}

// LowestHigherExplicitOutEdge returns the smallest character strictly
// greater than c with a reachable explicit out-edge.
// Precondition: one exists.
func (d *DFA) LowestHigherExplicitOutEdge(s S, c uint32) uint32 {
	entries := d.row(s.Index)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.char > c && s.isValidEdge(d.tfa, e.bits) {
			return e.char
		}
	}
	panic("table: no higher explicit out-edge (precondition violated)")
}

// SmallestExplicitOutEdge returns the smallest character with a reachable
// explicit out-edge from s.
// Precondition: s has at least one explicit out-edge.
func (d *DFA) SmallestExplicitOutEdge(s S) uint32 {
	entries := d.row(s.Index)
	for i := len(entries) - 1; i >= 0; i-- {
		if s.isValidEdge(d.tfa, entries[i].bits) {
			return entries[i].char
		}
	}
	panic("table: no explicit out-edge (precondition violated)")
}

// EdgeToChar returns the character an edge represents. For the table
// realization the edge is the character.
func (d *DFA) EdgeToChar(e uint32) uint32 {
	return e
}

// EdgeToState steps s on the edge's character, re-resolving it against
// s's local window.
func (d *DFA) EdgeToState(s S, e uint32) S {
	return d.MatchInput(s, e)
}

// ValidState reports whether s is not the doomed abstract state.
func (d *DFA) ValidState(s S) bool {
	return s.State != 0
}

// ValidEdge reports whether e is a well-formed edge. Character 0 is
// reserved (callers guarantee no embedded NUL in source or target), so
// it is never a valid edge value.
func (d *DFA) ValidEdge(e uint32) bool {
	return e != 0
}

// IsCased reports whether this DFA was built in cased mode.
func (d *DFA) IsCased() bool {
	return d.cased
}

// ImpliesExactMatchSuffix is always false: the table realization has no
// shortcut for determining the remaining matching suffix.
func (d *DFA) ImpliesExactMatchSuffix(S) bool {
	return false
}

// EmitExactMatchSuffix is never called, since ImpliesExactMatchSuffix
// always returns false.
func (d *DFA) EmitExactMatchSuffix(S, []byte) []byte {
	panic("table: EmitExactMatchSuffix unreachable (ImpliesExactMatchSuffix always false)")
}

// MemoryUsage returns the per-target lookup table's byte footprint. The
// shared parametric Table/Edits arrays are process-wide static data, not
// counted against any one DFA instance.
func (d *DFA) MemoryUsage() int {
	total := len(d.lookup) * int(unsafe.Sizeof(lookupRow{}))
	for _, row := range d.lookup {
		total += len(row.entries) * int(unsafe.Sizeof(charVector{}))
	}
	return total
}
