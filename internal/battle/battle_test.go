package battle

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Garsondee/grid-battle/internal/grid"
)

// probe is a minimal fighter: its effectiveness is the defender's score and a
// fight only counts hits on the defender.
type probe struct {
	kind  int
	score int
	hits  int
}

func (p probe) ShouldFight(d probe) bool  { return p.kind != d.kind }
func (p probe) Effectiveness(d probe) int { return d.score }
func (p probe) Fight(d *probe, _ *rand.Rand) bool {
	d.hits++
	return false
}

func fromSlice(cells []probe) func(*rand.Rand) (probe, error) {
	i := 0
	return func(*rand.Rand) (probe, error) {
		c := cells[i]
		i++
		return c, nil
	}
}

func newProbeBattle(t *testing.T, w, h int, cells []probe, alg SelectionAlgorithm, filter bool) *Battle[probe] {
	t.Helper()
	b, err := New(Options{Width: w, Height: h, Selection: alg, FilterCandidates: filter},
		rand.New(rand.NewSource(7)), fromSlice(cells)) // #nosec G404 -- test
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func totalHits(b *Battle[probe]) int {
	n := 0
	b.Each(func(_ grid.Location, p probe) { n += p.hits })
	return n
}

func TestNeighbours_TorusWrapOrder(t *testing.T) {
	got := Neighbours(grid.Location{X: 0, Y: 0}, 4, 4)
	want := [4]grid.Location{{X: 0, Y: 3}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 3, Y: 0}}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = Neighbours(grid.Location{X: 3, Y: 3}, 4, 4)
	want = [4]grid.Location{{X: 3, Y: 2}, {X: 0, Y: 3}, {X: 3, Y: 0}, {X: 2, Y: 3}}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNeighbours_SmallGridsCoincide(t *testing.T) {
	got := Neighbours(grid.Location{X: 0, Y: 0}, 1, 1)
	for _, n := range got {
		if n != (grid.Location{}) {
			t.Fatalf("expected every neighbour of a 1x1 grid to be the cell itself, got %v", got)
		}
	}

	got = Neighbours(grid.Location{X: 0, Y: 0}, 2, 2)
	if got[0] != got[2] || got[1] != got[3] {
		t.Fatalf("expected up==down and right==left on a 2x2 grid, got %v", got)
	}
}

func TestNeighbours_AlwaysInBounds(t *testing.T) {
	for _, size := range [][2]int{{1, 5}, {5, 1}, {3, 7}, {16, 9}} {
		w, h := size[0], size[1]
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				for _, n := range Neighbours(grid.Location{X: x, Y: y}, w, h) {
					if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h {
						t.Fatalf("%dx%d: neighbour %v of (%d,%d) out of range", w, h, n, x, y)
					}
				}
			}
		}
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func TestSweep_CoprimeOffsetVisitsEveryIndexOnce(t *testing.T) {
	for _, n := range []int{1, 16, 100, 512 * 512} {
		for _, offset := range Offsets {
			if gcd(offset, n) != 1 {
				continue
			}
			seen := make([]int, n)
			sweep(n/3, offset, n, func(i int) { seen[i]++ })
			for i, c := range seen {
				if c != 1 {
					t.Fatalf("n=%d offset=%d: index %d visited %d times", n, offset, i, c)
				}
			}
		}
	}
}

func TestSweep_NonCoprimeOffsetCoversOnlyItsCycle(t *testing.T) {
	cases := []struct{ n, offset int }{
		{n: 48817 * 2, offset: 48817},
		{n: 12, offset: 58099 * 4},
		{n: 30, offset: 10},
	}
	for _, tc := range cases {
		visited := map[int]int{}
		sweep(1, tc.offset, tc.n, func(i int) { visited[i]++ })
		want := tc.n / gcd(tc.offset, tc.n)
		if len(visited) != want {
			t.Fatalf("n=%d offset=%d: expected %d indices, got %d", tc.n, tc.offset, want, len(visited))
		}
		for i, c := range visited {
			if c != 1 {
				t.Fatalf("n=%d offset=%d: index %d visited %d times", tc.n, tc.offset, i, c)
			}
		}
	}
}

func TestWeakestNeighbour_TiesResolveToLastCandidate(t *testing.T) {
	// 3x3, attacker in the centre; up/right/down/left all score 5.
	cells := make([]probe, 9)
	for i := range cells {
		cells[i] = probe{kind: 1, score: 5}
	}
	b := newProbeBattle(t, 3, 3, cells, WeakestNeighbour, false)
	got, ok := b.SelectDefender(grid.Location{X: 1, Y: 1})
	if !ok || got != (grid.Location{X: 0, Y: 1}) {
		t.Fatalf("expected left neighbour (0,1), got %v ok=%v", got, ok)
	}
}

func TestWeakestNeighbour_PicksHighestScore(t *testing.T) {
	cells := make([]probe, 9)
	cells[1] = probe{score: 9} // up of centre
	cells[5] = probe{score: 3} // right of centre
	cells[7] = probe{score: 9} // down of centre
	b := newProbeBattle(t, 3, 3, cells, WeakestNeighbour, false)
	got, ok := b.SelectDefender(grid.Location{X: 1, Y: 1})
	if !ok || got != (grid.Location{X: 1, Y: 2}) {
		t.Fatalf("expected down neighbour (1,2), got %v ok=%v", got, ok)
	}
}

func TestWeakestNeighbourFiltered_SkipsSameKindAndCanSelectNothing(t *testing.T) {
	cells := make([]probe, 9)
	for i := range cells {
		cells[i] = probe{kind: 1, score: 10}
	}
	cells[3] = probe{kind: 2, score: 1} // left of centre
	b := newProbeBattle(t, 3, 3, cells, WeakestNeighbour, true)

	got, ok := b.SelectDefender(grid.Location{X: 1, Y: 1})
	if !ok || got != (grid.Location{X: 0, Y: 1}) {
		t.Fatalf("expected the only other-kind neighbour (0,1), got %v ok=%v", got, ok)
	}

	// (2,2) neighbours: (2,1),(0,2),(2,0),(1,2) are all kind 1.
	if got, ok := b.SelectDefender(grid.Location{X: 2, Y: 2}); ok {
		t.Fatalf("expected no defender, got %v", got)
	}
}

func TestRandomNeighbour_AlwaysReturnsANeighbour(t *testing.T) {
	cells := make([]probe, 25)
	b := newProbeBattle(t, 5, 5, cells, RandomNeighbour, false)
	origin := grid.Location{X: 2, Y: 2}
	n := Neighbours(origin, 5, 5)
	seen := map[grid.Location]bool{}
	for i := 0; i < 400; i++ {
		got, ok := b.SelectDefender(origin)
		if !ok {
			t.Fatal("unfiltered random selection must always pick a neighbour")
		}
		if got != n[0] && got != n[1] && got != n[2] && got != n[3] {
			t.Fatalf("picked non-neighbour %v", got)
		}
		seen[got] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected all 4 neighbours to be picked over 400 draws, got %d", len(seen))
	}
}

func TestRandomNeighbourFiltered_OnlyQualifyingCandidates(t *testing.T) {
	cells := make([]probe, 9)
	for i := range cells {
		cells[i] = probe{kind: 1}
	}
	cells[1] = probe{kind: 2} // up of centre
	cells[5] = probe{kind: 3} // right of centre
	b := newProbeBattle(t, 3, 3, cells, RandomNeighbour, true)

	seen := map[grid.Location]int{}
	for i := 0; i < 200; i++ {
		got, ok := b.SelectDefender(grid.Location{X: 1, Y: 1})
		if !ok {
			t.Fatal("expected a qualifying defender")
		}
		seen[got]++
	}
	if len(seen) != 2 || seen[grid.Location{X: 1, Y: 0}] == 0 || seen[grid.Location{X: 2, Y: 1}] == 0 {
		t.Fatalf("expected picks spread over (1,0) and (2,1) only, got %v", seen)
	}

	if got, ok := b.SelectDefender(grid.Location{X: 0, Y: 2}); ok {
		t.Fatalf("expected no defender among same-kind neighbours, got %v", got)
	}
}

func TestAction_CoprimeGridEveryCellAttacksOnce(t *testing.T) {
	// 16 cells: every offset is odd, so each tick visits all of them.
	cells := make([]probe, 16)
	b := newProbeBattle(t, 4, 4, cells, WeakestNeighbour, false)
	for tick := 1; tick <= 5; tick++ {
		if deaths := b.Action(); deaths != 0 {
			t.Fatalf("probe fighters never die, got %d deaths", deaths)
		}
		if got := totalHits(b); got != 16*tick {
			t.Fatalf("tick %d: expected %d hits, got %d", tick, 16*tick, got)
		}
	}
	if b.Tick() != 5 {
		t.Fatalf("expected tick counter 5, got %d", b.Tick())
	}
}

func TestAction_NonCoprimeGridCanCoverPartially(t *testing.T) {
	// n equals the first offset: drawing it visits only the start cell, any
	// other (prime, distinct) offset visits everything.
	n := Offsets[0]
	cells := make([]probe, n)
	b := newProbeBattle(t, n, 1, cells, WeakestNeighbour, false)
	prev := 0
	for tick := 0; tick < 24; tick++ {
		b.Action()
		hits := totalHits(b)
		delta := hits - prev
		prev = hits
		if delta != n && delta != 1 {
			t.Fatalf("tick %d: expected %d or 1 attacks, got %d", tick, n, delta)
		}
	}
}

func TestFight_SameOrOutOfRangeLocationIsNoop(t *testing.T) {
	cells := make([]probe, 4)
	b := newProbeBattle(t, 2, 2, cells, WeakestNeighbour, false)
	if b.Fight(grid.Location{X: 1, Y: 1}, grid.Location{X: 1, Y: 1}) {
		t.Fatal("self fight must be a no-op")
	}
	if b.Fight(grid.Location{X: 0, Y: 0}, grid.Location{X: 5, Y: 5}) {
		t.Fatal("out-of-range fight must be a no-op")
	}
	if got := totalHits(b); got != 0 {
		t.Fatalf("expected no hits, got %d", got)
	}
}

func TestAction_OneByOneGridNeverFights(t *testing.T) {
	b := newProbeBattle(t, 1, 1, []probe{{}}, RandomNeighbour, false)
	b.Action()
	if got := totalHits(b); got != 0 {
		t.Fatalf("a single cell can only select itself, got %d hits", got)
	}
}

func TestNew_ValidatesInputs(t *testing.T) {
	gen := func(*rand.Rand) (probe, error) { return probe{}, nil }
	if _, err := New(Options{Width: 4, Height: 4}, nil, gen); !errors.Is(err, ErrNilRand) {
		t.Fatalf("expected ErrNilRand, got %v", err)
	}
	rng := rand.New(rand.NewSource(1)) // #nosec G404 -- test
	if _, err := New(Options{Width: 0, Height: 4}, rng, gen); !errors.Is(err, grid.ErrInvalidSize) {
		t.Fatalf("expected grid.ErrInvalidSize, got %v", err)
	}
	exhausted := errors.New("roster exhausted")
	if _, err := New(Options{Width: 2, Height: 2}, rng, func(*rand.Rand) (probe, error) {
		return probe{}, exhausted
	}); !errors.Is(err, exhausted) {
		t.Fatalf("expected generator error to propagate, got %v", err)
	}
}

func TestFighterAt_OutOfRange(t *testing.T) {
	b := newProbeBattle(t, 2, 2, make([]probe, 4), WeakestNeighbour, false)
	if _, ok := b.FighterAt(grid.Location{X: 2, Y: 0}); ok {
		t.Fatal("expected out-of-range lookup to miss")
	}
	if _, ok := b.FighterAt(grid.Location{X: 1, Y: 1}); !ok {
		t.Fatal("expected in-range lookup to hit")
	}
}

func TestParseSelectionAlgorithm(t *testing.T) {
	for in, want := range map[string]SelectionAlgorithm{"weakest": WeakestNeighbour, "Random": RandomNeighbour, " random ": RandomNeighbour} {
		got, err := ParseSelectionAlgorithm(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %v, got %v err=%v", in, want, got, err)
		}
	}
	if _, err := ParseSelectionAlgorithm("strongest"); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}
