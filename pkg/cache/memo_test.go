package cache

import (
	"fmt"
	"testing"
)

func TestMemoPutGet(t *testing.T) {
	m := NewMemo()

	if _, ok := m.Get("missing"); ok {
		t.Error("Get on empty memo should miss")
	}

	rounds := [][]string{{"m1", "m2"}, {"m3"}}
	m.Put("key", rounds)

	v, ok := m.Get("key")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	// The memo must return the identical artifact, not a copy, so
	// repeated layout passes can compare results by identity.
	if got := v.([][]string); &got[0] != &rounds[0] {
		t.Error("memo should return the stored artifact itself")
	}
}

func TestMemoEvictsOldestFirst(t *testing.T) {
	m := NewMemoWithCapacity(3)
	for i := 0; i < 4; i++ {
		m.Put(fmt.Sprintf("k%d", i), i)
	}

	if m.Size() != 3 {
		t.Fatalf("Size = %d, want 3", m.Size())
	}
	if _, ok := m.Get("k0"); ok {
		t.Error("oldest entry should have been evicted")
	}
	for i := 1; i < 4; i++ {
		if _, ok := m.Get(fmt.Sprintf("k%d", i)); !ok {
			t.Errorf("k%d should survive eviction", i)
		}
	}
}

func TestMemoOverwriteKeepsPosition(t *testing.T) {
	m := NewMemoWithCapacity(2)
	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("a", 3) // overwrite, not a new insertion
	m.Put("c", 4) // evicts "a" (still oldest)

	if _, ok := m.Get("a"); ok {
		t.Error("overwritten key should keep its insertion position and be evicted first")
	}
	if v, ok := m.Get("b"); !ok || v.(int) != 2 {
		t.Error("b should survive")
	}
}

func TestMemoClearAndSize(t *testing.T) {
	m := NewMemo()
	m.Put("a", 1)
	m.Put("b", 2)
	if m.Size() != 2 {
		t.Fatalf("Size = %d, want 2", m.Size())
	}

	m.Clear()
	if m.Size() != 0 {
		t.Errorf("Size after Clear = %d, want 0", m.Size())
	}
	if _, ok := m.Get("a"); ok {
		t.Error("Clear should drop all entries")
	}
}

func TestMemoNilReceiver(t *testing.T) {
	var m *Memo

	// A nil memo disables memoization without panicking.
	m.Put("a", 1)
	if _, ok := m.Get("a"); ok {
		t.Error("nil memo should always miss")
	}
	m.Clear()
	if m.Size() != 0 {
		t.Error("nil memo size should be 0")
	}
}

func TestMemoDefaultCapacity(t *testing.T) {
	m := NewMemo()
	for i := 0; i < DefaultMemoCapacity+10; i++ {
		m.Put(fmt.Sprintf("k%d", i), i)
	}
	if m.Size() != DefaultMemoCapacity {
		t.Errorf("Size = %d, want %d", m.Size(), DefaultMemoCapacity)
	}
}