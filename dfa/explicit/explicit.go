// Package explicit implements the explicit DFA realization: a node arena
// built once by breadth-first exploration of the implicit realization's
// sparse states, then consulted by direct array indexing at match time.
//
// Nodes are stored in an arena (a slice) and refer to each other by index
// rather than by pointer, so the whole DFA is a single contiguous
// allocation. Breadth-first construction means most out-edges point
// forward to higher indices, which is cache-friendly during a scan.
package explicit

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/coregx/fuzzydfa/internal/sparse"
	"github.com/coregx/fuzzydfa/internal/u32conv"
	"github.com/coregx/fuzzydfa/levenshtein"
	"github.com/coregx/fuzzydfa/utf8dfa"
)

// NodeID indexes into a DFA's node arena.
type NodeID = uint32

// Doomed is the sentinel NodeID meaning "the absorbing non-matching
// state": it is never an index into the node arena. It stands in for a
// null pointer the way the original graph used a shared-pointer-free
// arena with an out-of-band marker.
const Doomed NodeID = ^NodeID(0)

// Edge is an explicit out-edge: a target character and the node it leads
// to.
type Edge struct {
	Char uint32
	To   NodeID
}

// Node is one state of the explicit DFA: its sorted explicit out-edges,
// an optional wildcard out-edge, and its edit distance (> maxEdits if
// non-accepting).
type Node struct {
	Edges    []Edge
	Wildcard NodeID // Doomed if wildcard-stepping this state is doomed
	Edits    uint8
}

func (n *Node) lookupExact(c uint32) (NodeID, bool) {
	for _, e := range n.Edges {
		if e.Char == c {
			return e.To, true
		}
	}
	return 0, false
}

// DFA is the explicit realization. State is NodeID, Edge is explicit.Edge.
// It implements matcher.Matcher[NodeID, Edge].
type DFA struct {
	nodes    []Node
	maxEdits uint8
	cased    bool
}

// Build explores the implicit realization's sparse states breadth-first,
// assigning node 0 to the start state, and materializes every reachable
// state as a Node with sorted explicit out-edges plus an optional
// wildcard out-edge. This is the only place sparse.State values are
// deduplicated by equality; Go's native struct comparability makes the
// lookup map a plain map[sparse.State]NodeID, with no custom hash
// function needed.
func Build(target []uint32, maxEdits uint8, cased bool) *DFA {
	stepper := levenshtein.New(target, maxEdits)
	start := stepper.Start()

	ids := map[sparse.State]NodeID{start: 0}
	nodes := make([]Node, 1, 1+len(target)*4)
	queue := []sparse.State{start}

	internNode := func(s sparse.State) NodeID {
		if id, ok := ids[s]; ok {
			return id
		}
		id := u32conv.IntToUint32(len(nodes))
		ids[s] = id
		nodes = append(nodes, Node{})
		queue = append(queue, s)
		return id
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curID := ids[cur]

		tr := stepper.Transitions(cur)
		chars := tr.Chars()
		edges := make([]Edge, 0, len(chars))
		for _, c := range chars {
			next := stepper.Step(cur, c)
			edges = append(edges, Edge{Char: c, To: internNode(next)})
		}

		wild := Doomed
		if w := stepper.WildcardStep(cur); !w.Empty() {
			wild = internNode(w)
		}

		nodes[curID] = Node{
			Edges:    edges,
			Wildcard: wild,
			Edits:    stepper.MatchEditDistance(cur),
		}
	}

	return &DFA{nodes: nodes, maxEdits: maxEdits, cased: cased}
}

// Start returns node 0, always the start state in BFS order.
func (d *DFA) Start() NodeID {
	return 0
}

// IsMatch reports whether s is an accepting node.
func (d *DFA) IsMatch(s NodeID) bool {
	return s != Doomed && d.nodes[s].Edits <= d.maxEdits
}

// CanMatch reports whether s is not the doomed absorbing state.
func (d *DFA) CanMatch(s NodeID) bool {
	return s != Doomed
}

// MatchEditDistance returns the node's edit distance if accepting, else
// maxEdits+1.
func (d *DFA) MatchEditDistance(s NodeID) uint8 {
	if !d.IsMatch(s) {
		return d.maxEdits + 1
	}
	return d.nodes[s].Edits
}

// MatchInput follows the explicit out-edge for c if one exists, else the
// wildcard out-edge (which may itself be Doomed).
func (d *DFA) MatchInput(s NodeID, c uint32) NodeID {
	if s == Doomed {
		return Doomed
	}
	n := &d.nodes[s]
	if to, ok := n.lookupExact(c); ok {
		return to
	}
	return n.Wildcard
}

// MatchWildcard follows the wildcard out-edge.
func (d *DFA) MatchWildcard(s NodeID) NodeID {
	if s == Doomed {
		return Doomed
	}
	return d.nodes[s].Wildcard
}

// HasHigherOutEdge reports whether s has an out-edge for some character
// strictly greater than c. A present wildcard edge accepts every
// character not already listed explicitly, which in practice is always
// some character above c, so its presence short-circuits the explicit
// scan.
func (d *DFA) HasHigherOutEdge(s NodeID, c uint32) bool {
	if s == Doomed {
		return false
	}
	n := &d.nodes[s]
	if n.Wildcard != Doomed {
		return true
	}
	for _, e := range n.Edges {
		if e.Char > c {
			return true
		}
	}
	return false
}

// HasExactExplicitOutEdge reports whether s has an explicit out-edge for
// exactly c.
func (d *DFA) HasExactExplicitOutEdge(s NodeID, c uint32) bool {
	if s == Doomed {
		return false
	}
	_, ok := d.nodes[s].lookupExact(c)
	return ok
}

// LowestHigherExplicitOutEdge returns the explicit edge for the smallest
// character strictly greater than c.
// Precondition: one exists.
func (d *DFA) LowestHigherExplicitOutEdge(s NodeID, c uint32) Edge {
	for _, e := range d.nodes[s].Edges {
		if e.Char > c {
			return e
		}
	}
	panic("explicit: no higher explicit out-edge (precondition violated)")
}

// SmallestExplicitOutEdge returns the lowest-character explicit out-edge
// of s.
// Precondition: s has at least one explicit out-edge.
func (d *DFA) SmallestExplicitOutEdge(s NodeID) Edge {
	edges := d.nodes[s].Edges
	if len(edges) == 0 {
		panic("explicit: no explicit out-edge (precondition violated)")
	}
	return edges[0]
}

// EdgeToChar returns the character an edge is labeled with.
func (d *DFA) EdgeToChar(e Edge) uint32 {
	return e.Char
}

// EdgeToState returns the node an edge leads to.
func (d *DFA) EdgeToState(_ NodeID, e Edge) NodeID {
	return e.To
}

// ValidState reports whether s is Doomed or a valid arena index.
func (d *DFA) ValidState(s NodeID) bool {
	return s == Doomed || int(s) < len(d.nodes)
}

// ValidEdge reports whether e targets a well-formed state.
func (d *DFA) ValidEdge(e Edge) bool {
	return d.ValidState(e.To)
}

// IsCased reports whether this DFA was built in cased mode.
func (d *DFA) IsCased() bool {
	return d.cased
}

// ImpliesExactMatchSuffix is always false: the explicit realization has
// no shortcut for determining the remaining matching suffix.
func (d *DFA) ImpliesExactMatchSuffix(NodeID) bool {
	return false
}

// EmitExactMatchSuffix is never called, since ImpliesExactMatchSuffix
// always returns false.
func (d *DFA) EmitExactMatchSuffix(NodeID, []byte) []byte {
	panic("explicit: EmitExactMatchSuffix unreachable (ImpliesExactMatchSuffix always false)")
}

// MemoryUsage returns the arena's byte footprint: node count times node
// struct size, plus the backing arrays of each node's edge slice.
func (d *DFA) MemoryUsage() int {
	total := len(d.nodes) * int(unsafe.Sizeof(Node{}))
	for _, n := range d.nodes {
		total += len(n.Edges) * int(unsafe.Sizeof(Edge{}))
	}
	return total
}

// NodeCount returns the number of nodes in the arena, including the start
// node.
func (d *DFA) NodeCount() int {
	return len(d.nodes)
}

// DumpGraphviz writes a Graphviz "digraph" description of the DFA to w:
// one labeled edge per explicit transition, "*" for the wildcard edge, and
// node labels that include the edit distance for accepting nodes.
func DumpGraphviz(d *DFA, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph dfa {"); err != nil {
		return err
	}
	for id := range d.nodes {
		n := &d.nodes[id]
		label := fmt.Sprintf("%d", id)
		if n.Edits <= d.maxEdits {
			label = fmt.Sprintf("%d(%d)", id, n.Edits)
		}
		if _, err := fmt.Fprintf(w, "  %d [label=%q];\n", id, label); err != nil {
			return err
		}
		for _, e := range n.Edges {
			if _, err := fmt.Fprintf(w, "  %d -> %d [label=%q];\n", id, e.To, charLabel(e.Char)); err != nil {
				return err
			}
		}
		if n.Wildcard != Doomed {
			if _, err := fmt.Fprintf(w, "  %d -> %d [label=\"*\"];\n", id, n.Wildcard); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func charLabel(c uint32) string {
	return string(utf8dfa.AppendCodePoint(nil, c))
}
