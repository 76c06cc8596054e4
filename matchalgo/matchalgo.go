// Package matchalgo implements the shared match/successor algorithm: the
// single generic loop that every DFA realization (implicit, explicit,
// table) runs verbatim by way of the matcher.Matcher[State, Edge]
// capability.
//
// On mismatch, the algorithm backtracks to the last state it passed
// through that had an out-edge accepting some character higher than the
// one actually taken, and emits the lexicographically smallest string
// beyond that point the DFA would accept. This successor lets a caller
// scanning a sorted dictionary skip straight past an entire run of
// non-matching keys.
package matchalgo

import (
	"github.com/coregx/fuzzydfa/dfa/matcher"
	"github.com/coregx/fuzzydfa/utf8dfa"
)

// Outcome is the raw result of Match, before the façade wraps it into its
// public MatchResult. Edits is only meaningful when Matched is true.
type Outcome struct {
	Matched bool
	Edits   uint8
}

// Match runs source (UTF-8 bytes) through m and returns whether it's
// within m's configured edit distance of the target. If successor is
// non-nil and the result is a mismatch, the lexicographically smallest
// matching successor string is appended to *successor; on a match,
// *successor is left unmodified beyond whatever prefix it already held.
//
// Any prior content of *successor is preserved: only bytes appended
// during this call may be truncated back out on a mismatch whose branch
// point lies before the call began.
func Match[S, E any](m matcher.Matcher[S, E], source []byte, successor *[]byte) Outcome {
	state := m.Start()

	var lastBranchState S
	haveBranch := false
	var branchChar uint32

	var buf []byte
	branchPrefixLen := 0
	if successor != nil {
		buf = *successor
		branchPrefixLen = len(buf)
	}

	cased := m.IsCased()
	dec := utf8dfa.NewDecoder(source)
	for dec.HasMore() {
		c0 := dec.NextCodePoint()
		c := c0
		if !cased {
			c = utf8dfa.LowercaseCodepoint(c0)
		}

		posBefore := len(buf)
		if successor != nil {
			buf = utf8dfa.AppendCodePoint(buf, c)
		}

		if m.HasHigherOutEdge(state, c) {
			lastBranchState = state
			haveBranch = true
			branchPrefixLen = posBefore
			branchChar = c
		}

		next := m.MatchInput(state, c)
		if m.CanMatch(next) {
			state = next
			continue
		}

		if successor != nil {
			buf = buf[:branchPrefixLen]
			if !haveBranch || !m.ValidState(lastBranchState) {
				panic("matchalgo: mismatch produced no valid branch state")
			}
			buf = emitGreaterSuffix(m, lastBranchState, branchChar, buf)
			*successor = buf
		}
		return Outcome{Matched: false}
	}

	if m.IsMatch(state) {
		return Outcome{Matched: true, Edits: m.MatchEditDistance(state)}
	}

	if successor != nil {
		*successor = emitSmallestMatchingSuffix(m, state, buf)
	}
	return Outcome{Matched: false}
}

// emitGreaterSuffix appends one character strictly greater than
// branchChar, then the smallest matching suffix from the resulting state.
func emitGreaterSuffix[S, E any](m matcher.Matcher[S, E], branchState S, branchChar uint32, buf []byte) []byte {
	w := m.MatchWildcard(branchState)
	if m.CanMatch(w) && !m.HasExactExplicitOutEdge(branchState, branchChar+1) {
		// branchChar+1 may equal utf8dfa.MaxCodepoint when branchChar was
		// U+10FFFF; AppendCodePoint tolerates that sentinel value.
		buf = utf8dfa.AppendCodePoint(buf, branchChar+1)
		return emitSmallestMatchingSuffix(m, w, buf)
	}
	e := m.LowestHigherExplicitOutEdge(branchState, branchChar)
	buf = utf8dfa.AppendCodePoint(buf, m.EdgeToChar(e))
	return emitSmallestMatchingSuffix(m, m.EdgeToState(branchState, e), buf)
}

// smallestNonNULByte is the smallest UTF-8 byte value that is never NUL.
// Callers guarantee the source contains no embedded NUL, so using 0x01 as
// filler during suffix emission is always strictly greater than "nothing
// more was here" without ever colliding with a real input byte's role.
const smallestNonNULByte = 0x01

// emitSmallestMatchingSuffix appends the minimum lexicographic completion
// of s to buf: the byte-smallest continuation the DFA accepts.
func emitSmallestMatchingSuffix[S, E any](m matcher.Matcher[S, E], s S, buf []byte) []byte {
	for !m.IsMatch(s) {
		if m.ImpliesExactMatchSuffix(s) {
			return m.EmitExactMatchSuffix(s, buf)
		}
		w := m.MatchWildcard(s)
		if m.CanMatch(w) {
			buf = append(buf, smallestNonNULByte)
			s = w
			continue
		}
		e := m.SmallestExplicitOutEdge(s)
		buf = utf8dfa.AppendCodePoint(buf, m.EdgeToChar(e))
		s = m.EdgeToState(s, e)
	}
	return buf
}
