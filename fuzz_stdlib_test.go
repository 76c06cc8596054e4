// Fuzz tests comparing Engine.Match against a reference O(|S|*|T|) dynamic
// programming Levenshtein distance implementation.
//
// Run with:
//
//	go test -fuzz=FuzzMatchAgainstReferenceDP -fuzztime=30s
package fuzzydfa

import (
	"testing"

	"github.com/coregx/fuzzydfa/utf8dfa"
)

// referenceLevenshtein computes the exact edit distance between two code
// point slices using the textbook two-row dynamic programming algorithm,
// independent of anything in this package's DFA machinery.
func referenceLevenshtein(a, b []uint32) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

var fuzzSeedTargets = []string{"food", "abc", "a", "héllo", "hello world", ""}
var fuzzSeedSources = []string{"food", "foo", "foxx", "fo", "gp", "", "abc", "FOOD", "héllo", "hella"}

func FuzzMatchAgainstReferenceDP(f *testing.F) {
	for _, target := range fuzzSeedTargets {
		for _, source := range fuzzSeedSources {
			for _, maxEdits := range []uint8{1, 2} {
				f.Add(target, source, maxEdits)
			}
		}
	}

	f.Fuzz(func(t *testing.T, target, source string, maxEdits uint8) {
		if maxEdits != 1 && maxEdits != 2 {
			return
		}
		if !validUTF8NoNUL(target) || !validUTF8NoNUL(source) {
			return
		}

		for _, casing := range []Casing{Cased, Uncased} {
			e, err := Build(target, BuildOptions{MaxEdits: maxEdits, Casing: casing, Realization: Implicit})
			if err != nil {
				t.Fatalf("Build(%q): %v", target, err)
			}

			lowercase := casing == Uncased
			tU32 := utf8dfa.DecodeString(target, lowercase)
			sU32 := utf8dfa.DecodeString(source, lowercase)
			want := referenceLevenshtein(sU32, tU32)

			result := e.Match([]byte(source), nil)
			gotMatches := result.Matches()
			wantMatches := want <= int(maxEdits)
			if gotMatches != wantMatches {
				t.Fatalf("target=%q source=%q maxEdits=%d casing=%v: Matches()=%v, want %v (reference distance %d)",
					target, source, maxEdits, casing, gotMatches, wantMatches, want)
			}
			if gotMatches && int(result.Edits()) != want {
				t.Fatalf("target=%q source=%q maxEdits=%d casing=%v: Edits()=%d, want %d",
					target, source, maxEdits, casing, result.Edits(), want)
			}
		}
	})
}

func validUTF8NoNUL(s string) bool {
	for _, r := range s {
		if r == 0 {
			return false
		}
	}
	return true
}
