package sparse

import "testing"

func TestState_Basic(t *testing.T) {
	var s State
	if !s.Empty() {
		t.Error("new state should be empty")
	}
	if s.Size() != 0 {
		t.Errorf("size should be 0, got %d", s.Size())
	}

	s.Append(0, 0)
	s.Append(1, 1)
	s.Append(2, 1)

	if s.Empty() {
		t.Error("state with entries should not be empty")
	}
	if s.Size() != 3 {
		t.Errorf("size should be 3, got %d", s.Size())
	}
	if s.Index(0) != 0 || s.Cost(0) != 0 {
		t.Errorf("entry 0 = (%d,%d), want (0,0)", s.Index(0), s.Cost(0))
	}
	if s.LastIndex() != 2 || s.LastCost() != 1 {
		t.Errorf("last entry = (%d,%d), want (2,1)", s.LastIndex(), s.LastCost())
	}
}

func TestState_AppendPanicsOnOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on capacity overflow")
		}
	}()
	var s State
	for i := 0; i < MaxDiag+1; i++ {
		s.Append(uint32(i), 0)
	}
}

func TestState_ComparableAsMapKey(t *testing.T) {
	var a, b State
	a.Append(0, 0)
	a.Append(1, 1)
	b.Append(0, 0)
	b.Append(1, 1)

	m := map[State]int{a: 42}
	if v, ok := m[b]; !ok || v != 42 {
		t.Errorf("equal states should collide as map keys, got ok=%v v=%v", ok, v)
	}

	var c State
	c.Append(0, 0)
	c.Append(1, 2)
	if _, ok := m[c]; ok {
		t.Error("state with different cost should not collide")
	}
}

func TestTransitions_AddDedupsAndSorts(t *testing.T) {
	var tr Transitions
	tr.Add('d')
	tr.Add('o')
	tr.Add('d') // duplicate
	tr.Add('a')

	if got := len(tr.Chars()); got != 3 {
		t.Fatalf("expected 3 distinct chars, got %d", got)
	}
	tr.Sort()
	chars := tr.Chars()
	for i := 1; i < len(chars); i++ {
		if chars[i-1] >= chars[i] {
			t.Errorf("chars not strictly ascending: %v", chars)
		}
	}
	if !tr.Has('o') {
		t.Error("expected Has('o') to be true")
	}
	if tr.Has('z') {
		t.Error("expected Has('z') to be false")
	}
}
