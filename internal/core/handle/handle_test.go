package handle

import "testing"

func TestPool_CreateNeverZero(t *testing.T) {
	p := NewPool()
	for i := 0; i < 10; i++ {
		if id := p.Create(); id.IsZero() {
			t.Fatalf("create %d returned the zero ID", i)
		}
	}
	if p.Len() != 10 {
		t.Errorf("Len = %d, want 10", p.Len())
	}
}

func TestPool_ReleaseInvalidatesAndReuses(t *testing.T) {
	p := NewPool()
	a := p.Create()
	b := p.Create()
	p.Release(a)

	if p.Alive(a) {
		t.Error("released ID still alive")
	}
	if !p.Alive(b) {
		t.Error("unrelated ID died")
	}

	c := p.Create()
	if c.Index() != a.Index() {
		t.Errorf("slot not reused: got index %d, want %d", c.Index(), a.Index())
	}
	if c == a {
		t.Error("reused slot returned the stale ID")
	}
	if p.Alive(a) {
		t.Error("stale ID resolved after slot reuse")
	}
}

func TestPool_ReleaseTwiceIsNoop(t *testing.T) {
	p := NewPool()
	a := p.Create()
	p.Release(a)
	p.Release(a)
	if p.Len() != 0 {
		t.Errorf("Len = %d, want 0", p.Len())
	}
	x, y := p.Create(), p.Create()
	if x.Index() == y.Index() {
		t.Error("double release put the slot on the free list twice")
	}
}

func TestPool_UnknownID(t *testing.T) {
	p := NewPool()
	if p.Alive(NewID(42, 1)) {
		t.Error("never-created ID reported alive")
	}
	p.Release(NewID(42, 1))
	if p.Len() != 0 {
		t.Errorf("Len = %d, want 0", p.Len())
	}
}
