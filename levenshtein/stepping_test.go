package levenshtein

import (
	"testing"

	"github.com/coregx/fuzzydfa/internal/sparse"
)

func utf32(s string) []uint32 {
	out := make([]uint32, 0, len(s))
	for _, r := range s {
		out = append(out, uint32(r))
	}
	return out
}

func TestStepper_Start(t *testing.T) {
	st := New(utf32("food"), 1)
	start := st.Start()
	if start.Size() != 2 {
		t.Fatalf("start size = %d, want 2", start.Size())
	}
	if start.Index(0) != 0 || start.Cost(0) != 0 {
		t.Errorf("entry 0 = (%d,%d), want (0,0)", start.Index(0), start.Cost(0))
	}
	if start.Index(1) != 1 || start.Cost(1) != 1 {
		t.Errorf("entry 1 = (%d,%d), want (1,1)", start.Index(1), start.Cost(1))
	}
}

func TestStepper_Start_ShortTarget(t *testing.T) {
	st := New(utf32("f"), 2)
	start := st.Start()
	if start.Size() != 2 {
		t.Fatalf("start size = %d, want 2 (clamped to target length)", start.Size())
	}
	if start.LastIndex() != 1 {
		t.Errorf("last index = %d, want 1", start.LastIndex())
	}
}

func TestStepper_Step_ExactMatch(t *testing.T) {
	st := New(utf32("food"), 1)
	s := st.Start()
	for _, c := range utf32("food") {
		s = st.Step(s, c)
	}
	if !st.IsMatch(s) {
		t.Fatal("expected exact match")
	}
	if got := st.MatchEditDistance(s); got != 0 {
		t.Errorf("edit distance = %d, want 0", got)
	}
}

func TestStepper_Step_OneSubstitution(t *testing.T) {
	st := New(utf32("food"), 1)
	s := st.Start()
	for _, c := range utf32("food") {
		s = st.Step(s, c)
	}
	// "good" differs from "food" by one substitution.
	s = st.Start()
	for _, c := range utf32("good") {
		s = st.Step(s, c)
	}
	if !st.IsMatch(s) {
		t.Fatal("expected match within 1 edit")
	}
	if got := st.MatchEditDistance(s); got != 1 {
		t.Errorf("edit distance = %d, want 1", got)
	}
}

func TestStepper_Step_OneInsertion(t *testing.T) {
	st := New(utf32("food"), 1)
	s := st.Start()
	for _, c := range utf32("foood") {
		s = st.Step(s, c)
	}
	if !st.IsMatch(s) {
		t.Fatal("expected match within 1 edit for insertion")
	}
	if got := st.MatchEditDistance(s); got != 1 {
		t.Errorf("edit distance = %d, want 1", got)
	}
}

func TestStepper_Step_OneDeletion(t *testing.T) {
	st := New(utf32("food"), 1)
	s := st.Start()
	for _, c := range utf32("fod") {
		s = st.Step(s, c)
	}
	if !st.IsMatch(s) {
		t.Fatal("expected match within 1 edit for deletion")
	}
	if got := st.MatchEditDistance(s); got != 1 {
		t.Errorf("edit distance = %d, want 1", got)
	}
}

func TestStepper_Step_TooManyEdits(t *testing.T) {
	st := New(utf32("food"), 1)
	s := st.Start()
	for _, c := range utf32("xyzw") {
		s = st.Step(s, c)
	}
	if st.IsMatch(s) {
		t.Fatal("expected mismatch, input diverges by more than 1 edit")
	}
}

func TestStepper_Step_EmptyStateStaysEmpty(t *testing.T) {
	st := New(utf32("food"), 1)
	var empty sparse.State
	if !empty.Empty() {
		t.Fatal("precondition: empty state")
	}
	next := st.Step(empty, 'x')
	if !next.Empty() {
		t.Error("stepping an empty state should remain empty")
	}
}

func TestStepper_WildcardStep_MatchesCanWildcardStep(t *testing.T) {
	st := New(utf32("food"), 2)
	s := st.Start()
	got := st.CanWildcardStep(s)
	want := !st.WildcardStep(s).Empty()
	if got != want {
		t.Errorf("CanWildcardStep = %v, want %v", got, want)
	}
}

func TestStepper_CanMatch(t *testing.T) {
	st := New(utf32("food"), 1)
	s := st.Start()
	if !st.CanMatch(s) {
		t.Error("start state should be able to match")
	}
	var empty sparse.State
	if st.CanMatch(empty) {
		t.Error("empty state should never be able to match")
	}
}

func TestStepper_Transitions_SortedAscending(t *testing.T) {
	st := New(utf32("food"), 2)
	tr := st.Transitions(st.Start())
	chars := tr.Chars()
	for i := 1; i < len(chars); i++ {
		if chars[i-1] >= chars[i] {
			t.Errorf("transitions not ascending: %v", chars)
		}
	}
	if !tr.Has('f') {
		t.Error("expected 'f' among transitions from start state")
	}
}

func TestStepper_IsMatch_RequiresFullConsumption(t *testing.T) {
	st := New(utf32("food"), 2)
	s := st.Start()
	if st.IsMatch(s) {
		t.Error("start state (no input consumed) should not be a match for non-empty target")
	}
}
