package service

import (
	"strings"
	"testing"
)

func TestIDFilter_SeededIDsAreRetained(t *testing.T) {
	filter := NewIDFilter(64)
	filter.Seed([]string{"aaa1111", "bbb2222"})
	filter.Add("ccc3333")

	for _, id := range []string{"aaa1111", "bbb2222", "ccc3333"} {
		if !filter.MayContain(id) {
			t.Fatalf("expected filter to contain %q", id)
		}
	}
}

func TestNewShortID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := newShortID()
		if err != nil {
			t.Fatalf("newShortID returned error: %v", err)
		}
		if len(id) != shortIDLength {
			t.Fatalf("expected %d chars, got %q", shortIDLength, id)
		}
		for _, r := range id {
			if !strings.ContainsRune(shortIDAlphabet, r) {
				t.Fatalf("unexpected character %q in id %q", r, id)
			}
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected ids to vary")
	}
}
