package grid

import (
	"errors"
	"testing"
)

func constant(v int) func() (int, error) {
	return func() (int, error) { return v, nil }
}

func counter() func() (int, error) {
	n := 0
	return func() (int, error) {
		n++
		return n, nil
	}
}

func TestGet_InAndOutOfBounds(t *testing.T) {
	g, err := New(10, 2, constant(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c, ok := g.Get(Location{X: 9, Y: 1}); !ok || *c != 1 {
		t.Fatalf("expected cell (9,1)=1, got %v ok=%v", c, ok)
	}
	for _, loc := range []Location{{X: 1, Y: 9}, {X: 10, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: -1}} {
		if _, ok := g.Get(loc); ok {
			t.Fatalf("expected %v to be out of bounds", loc)
		}
	}
}

func TestNew_GeneratorCalledOncePerCellInOrder(t *testing.T) {
	calls := 0
	g, err := New(3, 4, func() (int, error) {
		calls++
		return calls, nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if calls != 12 || g.Count() != 12 {
		t.Fatalf("expected 12 generator calls and cells, got calls=%d count=%d", calls, g.Count())
	}
	c, _ := g.Get(Location{X: 2, Y: 1})
	if *c != 6 {
		t.Fatalf("expected row-major index 5 to hold 6, got %d", *c)
	}
	w, h := g.Size()
	if w != 3 || h != 4 {
		t.Fatalf("expected size 3x4, got %dx%d", w, h)
	}
}

func TestNew_PropagatesGeneratorError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	g, err := New(4, 4, func() (int, error) {
		calls++
		if calls == 5 {
			return 0, boom
		}
		return calls, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected generator error, got %v", err)
	}
	if g != nil {
		t.Fatal("expected no grid on generator failure")
	}
	if calls != 5 {
		t.Fatalf("expected construction to stop at the failing call, got %d calls", calls)
	}
}

func TestNew_RejectsInvalidSize(t *testing.T) {
	for _, tc := range [][2]int{{0, 4}, {4, 0}, {-1, 3}} {
		if _, err := New(tc[0], tc[1], constant(0)); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("size %v: expected ErrInvalidSize, got %v", tc, err)
		}
	}
}

func TestPairMut_SameLocationDenied(t *testing.T) {
	g, _ := New(4, 4, counter())
	for i := 0; i < g.Count(); i++ {
		loc := g.LocationOf(i)
		if a, b, ok := g.PairMut(loc, loc); ok || a != nil || b != nil {
			t.Fatalf("expected PairMut(%v,%v) to be denied", loc, loc)
		}
	}
}

func TestPairMut_OutOfBoundsDenied(t *testing.T) {
	g, _ := New(4, 4, counter())
	if _, _, ok := g.PairMut(Location{X: 0, Y: 0}, Location{X: 4, Y: 0}); ok {
		t.Fatal("expected out-of-bounds defender to be denied")
	}
	if _, _, ok := g.PairMut(Location{X: 0, Y: 9}, Location{X: 1, Y: 0}); ok {
		t.Fatal("expected out-of-bounds attacker to be denied")
	}
}

func TestPairMut_IndependentPointersBothOrders(t *testing.T) {
	g, _ := New(4, 4, counter())
	a := Location{X: 1, Y: 0} // index 1, value 2
	b := Location{X: 2, Y: 3} // index 14, value 15

	for _, order := range [][2]Location{{a, b}, {b, a}} {
		p, q, ok := g.PairMut(order[0], order[1])
		if !ok {
			t.Fatalf("expected PairMut(%v,%v) to succeed", order[0], order[1])
		}
		if p == q {
			t.Fatal("expected distinct pointers")
		}
		pv, _ := g.Get(order[0])
		qv, _ := g.Get(order[1])
		if p != pv || q != qv {
			t.Fatal("expected pointers to address the requested cells in argument order")
		}
	}

	p, q, _ := g.PairMut(a, b)
	*p = 100
	if v, _ := g.Get(b); *v != 15 {
		t.Fatalf("mutating first pointer changed second cell: %d", *v)
	}
	*q = 200
	if v, _ := g.Get(a); *v != 100 {
		t.Fatalf("mutating second pointer changed first cell: %d", *v)
	}
	if v, _ := g.Get(b); *v != 200 {
		t.Fatalf("expected second cell to hold 200, got %d", *v)
	}
}

func TestPairMut_AdjacentIndices(t *testing.T) {
	g, _ := New(2, 1, counter())
	p, q, ok := g.PairMut(Location{X: 1, Y: 0}, Location{X: 0, Y: 0})
	if !ok || *p != 2 || *q != 1 {
		t.Fatalf("expected (2,1), got ok=%v", ok)
	}
}

func TestLocationOf_RoundTripsIndex(t *testing.T) {
	g, _ := New(7, 3, constant(0))
	for i := 0; i < g.Count(); i++ {
		j, ok := g.Index(g.LocationOf(i))
		if !ok || j != i {
			t.Fatalf("index %d decoded to %v, re-encoded to %d", i, g.LocationOf(i), j)
		}
	}
}
