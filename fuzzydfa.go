// Package fuzzydfa builds Levenshtein Deterministic Finite Automata for
// bounded edit-distance string matching, with successor-string generation
// for sublinear dictionary seeking.
//
// The Levenshtein distance (or edit distance) between two strings is the
// minimum number of single-character insertions, deletions, and
// substitutions needed to transform one into the other. Given a fixed
// target string T and a fixed maximum edit distance k, this package builds
// a DFA that decides, for any source string S, whether d(S, T) <= k in
// O(|S|) time.
//
// ====== Dictionary skipping via successor string generation ======
//
// Scanning for edit-distance matches frequently happens against a sorted
// dictionary. When a source string does not match, the engine can produce
// the successor string: the next matching string that is lexicographically
// greater than the source. No string strictly between the source and the
// successor matches within k edits, so a dictionary scanner can skip
// directly past an entire non-matching range, turning a linear scan into a
// sublinear one.
//
// ====== Unicode support ======
//
// Matching and successor generation are Unicode-aware. Input strings are
// UTF-8; the DFA itself operates on UTF-32 code points internally. The
// generated successor is encoded as UTF-8 bytes, though the code points it
// encodes are not always valid Unicode (see Engine.Match).
//
// Basic usage:
//
//	engine, err := fuzzydfa.Build("food", fuzzydfa.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := engine.Match([]byte("fod"), nil)
//	fmt.Println(result.Matches(), result.Edits())
package fuzzydfa

import (
	"io"
	"strconv"

	"github.com/coregx/fuzzydfa/dfa/explicit"
	"github.com/coregx/fuzzydfa/dfa/implicit"
	"github.com/coregx/fuzzydfa/dfa/matcher"
	"github.com/coregx/fuzzydfa/dfa/table"
	"github.com/coregx/fuzzydfa/internal/sparse"
	"github.com/coregx/fuzzydfa/matchalgo"
	"github.com/coregx/fuzzydfa/utf8dfa"
)

// Casing selects whether matching is sensitive to letter case.
type Casing uint8

const (
	// Cased matches source and target code points exactly as given.
	Cased Casing = iota
	// Uncased lowercases both target and source at code-point granularity
	// before comparison. Successors are therefore lowercase-normalized, not
	// original-cased — this keeps byte-wise dictionary ordering aligned
	// with the normalized comparison.
	Uncased
)

// String returns a human-readable casing name.
func (c Casing) String() string {
	switch c {
	case Cased:
		return "Cased"
	case Uncased:
		return "Uncased"
	default:
		return "UnknownCasing"
	}
}

// Realization selects which DFA implementation Build constructs.
type Realization uint8

const (
	// Auto picks Explicit for targets short enough that its memory and
	// build-time cost stays competitive, and Implicit otherwise: the
	// crossover is (k==1 && len(target)<=256) || (k==2 && len(target)<=64).
	// This is the default.
	Auto Realization = iota
	// Implicit steps the sparse Levenshtein state on demand: O(1) memory
	// beyond the UTF-32 target, no build-time graph exploration.
	Implicit
	// Explicit pre-builds the full reachable state graph by breadth-first
	// exploration: faster matching, more memory, linear build time.
	Explicit
	// Table simulates matching against a parametric per-k transition table
	// computed once at process start, combined with a small per-target
	// lookup. Like Implicit, it does not support DumpGraphviz.
	Table
)

// String returns a human-readable realization name.
func (r Realization) String() string {
	switch r {
	case Auto:
		return "Auto"
	case Implicit:
		return "Implicit"
	case Explicit:
		return "Explicit"
	case Table:
		return "Table"
	default:
		return "UnknownRealization"
	}
}

// explicitCrossover reports whether target is short enough, at maxEdits,
// for the Auto realization to prefer Explicit over Implicit.
func explicitCrossover(targetLen int, maxEdits uint8) bool {
	switch maxEdits {
	case 1:
		return targetLen <= 256
	case 2:
		return targetLen <= 64
	default:
		return false
	}
}

// BuildOptions configures Build. The zero value is not valid; use
// DefaultOptions to obtain a usable starting point.
type BuildOptions struct {
	// MaxEdits is the maximum Levenshtein distance a source may have from
	// the target and still match. Must be 1 or 2.
	MaxEdits uint8
	// Casing selects case-sensitive or case-insensitive matching.
	Casing Casing
	// Realization selects the DFA implementation, or Auto to let Build
	// choose based on target length and MaxEdits.
	Realization Realization
}

// DefaultOptions returns BuildOptions{MaxEdits: 1, Casing: Cased,
// Realization: Auto}.
func DefaultOptions() BuildOptions {
	return BuildOptions{MaxEdits: 1, Casing: Cased, Realization: Auto}
}

// Validate reports whether opts can be passed to Build.
func (opts BuildOptions) Validate() error {
	if opts.MaxEdits != 1 && opts.MaxEdits != 2 {
		return &BuildError{Kind: InvalidMaxEdits, Message: "max edit distance must be 1 or 2"}
	}
	return nil
}

// ErrorKind classifies the errors Build and Engine.DumpGraphviz can return.
type ErrorKind uint8

const (
	// InvalidMaxEdits means BuildOptions.MaxEdits was outside {1, 2}. Build
	// also reports an unknown BuildOptions.Realization value with this kind.
	InvalidMaxEdits ErrorKind = iota
	// UnsupportedOperation means DumpGraphviz was called on a realization
	// with no underlying graph to dump.
	UnsupportedOperation
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case InvalidMaxEdits:
		return "InvalidMaxEdits"
	case UnsupportedOperation:
		return "UnsupportedOperation"
	default:
		return "UnknownErrorKind"
	}
}

// ErrUnsupportedOperation is returned by Engine.DumpGraphviz when the
// engine's realization has no concrete graph structure to dump.
var ErrUnsupportedOperation = &BuildError{
	Kind:    UnsupportedOperation,
	Message: "dump_graphviz is only supported for the explicit realization",
}

// BuildError reports a build-time or capability failure: an invalid
// BuildOptions, or a realization asked to do something it doesn't support.
type BuildError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements error.
func (e *BuildError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is, matching by Kind.
func (e *BuildError) Is(target error) bool {
	t, ok := target.(*BuildError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// MatchResult reports the outcome of matching a source string against an
// Engine's target: whether it matched, and at what edit distance.
type MatchResult struct {
	maxEdits uint8
	edits    uint8
}

// Matches reports whether the source was within the engine's max edit
// distance.
func (r MatchResult) Matches() bool {
	return r.edits <= r.maxEdits
}

// Edits returns the actual edit distance. Only meaningful when Matches()
// is true; on mismatch it is MaxEdits()+1.
func (r MatchResult) Edits() uint8 {
	return r.edits
}

// MaxEdits returns the max edit distance the engine was built with.
func (r MatchResult) MaxEdits() uint8 {
	return r.maxEdits
}

// String renders "match(N edits)" or "mismatch".
func (r MatchResult) String() string {
	if r.Matches() {
		return "match(" + strconv.Itoa(int(r.edits)) + " edits)"
	}
	return "mismatch"
}

// realized is implemented by each concrete DFA realization's matcher
// adapter, letting Engine dispatch Match/MemoryUsage/DumpGraphviz without
// a type switch on the realization itself.
type realized interface {
	match(source []byte, successor *[]byte) matchalgo.Outcome
	memoryUsage() int
	dumpGraphviz(w io.Writer) error
}

type implicitRealized struct{ dfa *implicit.DFA }

func (r implicitRealized) match(source []byte, successor *[]byte) matchalgo.Outcome {
	return matchalgo.Match[sparse.State, uint32](r.dfa, source, successor)
}
func (r implicitRealized) memoryUsage() int { return r.dfa.MemoryUsage() }
func (r implicitRealized) dumpGraphviz(io.Writer) error {
	return ErrUnsupportedOperation
}

type explicitRealized struct{ dfa *explicit.DFA }

func (r explicitRealized) match(source []byte, successor *[]byte) matchalgo.Outcome {
	return matchalgo.Match[explicit.NodeID, explicit.Edge](r.dfa, source, successor)
}
func (r explicitRealized) memoryUsage() int { return r.dfa.MemoryUsage() }
func (r explicitRealized) dumpGraphviz(w io.Writer) error {
	return explicit.DumpGraphviz(r.dfa, w)
}

type tableRealized struct{ dfa *table.DFA }

func (r tableRealized) match(source []byte, successor *[]byte) matchalgo.Outcome {
	return matchalgo.Match[table.S, uint32](r.dfa, source, successor)
}
func (r tableRealized) memoryUsage() int { return r.dfa.MemoryUsage() }
func (r tableRealized) dumpGraphviz(io.Writer) error {
	return ErrUnsupportedOperation
}

// Engine is an immutable, built Levenshtein DFA: build once, match many
// times. It is safe for concurrent use by multiple goroutines, provided
// each caller supplies its own successor buffer.
type Engine struct {
	impl        realized
	maxEdits    uint8
	realization Realization
}

// Build constructs an Engine matching all strings within opts.MaxEdits
// edits of target, using the realization opts.Realization selects
// (resolving Auto to Implicit or Explicit based on target length).
//
// target must be valid UTF-8 containing no U+0000.
func Build(target string, opts BuildOptions) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cased := opts.Casing == Cased
	lowercase := opts.Casing == Uncased
	u32 := utf8dfa.DecodeString(target, lowercase)

	realization := opts.Realization
	if realization == Auto {
		if explicitCrossover(len(u32), opts.MaxEdits) {
			realization = Explicit
		} else {
			realization = Implicit
		}
	}

	var impl realized
	switch realization {
	case Implicit:
		impl = implicitRealized{dfa: implicit.New(u32, opts.MaxEdits, cased)}
	case Explicit:
		impl = explicitRealized{dfa: explicit.Build(u32, opts.MaxEdits, cased)}
	case Table:
		tbl, err := table.Build(u32, opts.MaxEdits, cased)
		if err != nil {
			return nil, &BuildError{Kind: InvalidMaxEdits, Message: "failed to build table realization", Cause: err}
		}
		impl = tableRealized{dfa: tbl}
	default:
		return nil, &BuildError{Kind: InvalidMaxEdits, Message: "unknown realization"}
	}

	return &Engine{impl: impl, maxEdits: opts.MaxEdits, realization: realization}, nil
}

// Match attempts to match source against the engine's target.
//
// source must not contain any null UTF-8 bytes.
//
// Match case: if source is within the engine's max edit distance, returns
// a MatchResult with Matches() == true and Edits() == the actual edit
// distance. successor, if non-nil, is left unmodified.
//
// Mismatch case: if source is beyond the max edit distance, returns a
// MatchResult with Matches() == false. If successor is non-nil, bytes are
// appended to it forming the next (byte-wise) possible matching string S'
// such that no matching string exists strictly between source and S'.
// Those bytes are within what UTF-8 can legally encode bit-for-bit, but
// the code points they encode may not themselves be valid: in particular,
// surrogate-pair code points and U+10FFFF+1 may appear. Consumers
// comparing the successor with memcmp-equivalent ordering (as a
// byte-wise dictionary seek would) are unaffected.
//
// Match does not allocate if successor is nil, or if successor already has
// sufficient capacity for the bytes written during the call (each source
// code point is appended while scanning, whether or not the source then
// matches) — reusing the same successor buffer across many calls amortizes
// allocations to near zero.
func (e *Engine) Match(source []byte, successor *[]byte) MatchResult {
	outcome := e.impl.match(source, successor)
	if outcome.Matched {
		return MatchResult{maxEdits: e.maxEdits, edits: outcome.Edits}
	}
	return MatchResult{maxEdits: e.maxEdits, edits: e.maxEdits + 1}
}

// MemoryUsage returns how much memory, in bytes, the engine's underlying
// DFA representation uses. Excludes caller-supplied successor buffers.
func (e *Engine) MemoryUsage() int {
	return e.impl.memoryUsage()
}

// Realization reports which DFA implementation this engine was built
// with, after resolving Auto.
func (e *Engine) Realization() Realization {
	return e.realization
}

// DumpGraphviz writes a textual Graphviz digraph describing the DFA to w.
// Only the explicit realization has a concrete graph to dump; calling
// this on any other realization returns ErrUnsupportedOperation.
//
// Only matching state transitions are present in the dumped graph: the
// doomed absorbing state has no node, and transitions into it are omitted.
// The node count still grows with target length.
func (e *Engine) DumpGraphviz(w io.Writer) error {
	return e.impl.dumpGraphviz(w)
}

var _ matcher.Matcher[sparse.State, uint32] = (*implicit.DFA)(nil)
var _ matcher.Matcher[explicit.NodeID, explicit.Edge] = (*explicit.DFA)(nil)
var _ matcher.Matcher[table.S, uint32] = (*table.DFA)(nil)
