package report

import (
	"fmt"
	"sort"
	"strings"
)

// defaultWindowTicks is the sliding window for recent-behaviour reports.
const defaultWindowTicks = 100

// Snapshot is the population of every label at one tick.
type Snapshot struct {
	Tick   int
	Counts map[string]int
	Deaths int // deaths since the previous snapshot
}

// KindSummary tracks one label over a whole run.
type KindSummary struct {
	Label       string `json:"label" yaml:"label"`
	First       int    `json:"first" yaml:"first"`
	Last        int    `json:"last" yaml:"last"`
	Peak        int    `json:"peak" yaml:"peak"`
	PeakTick    int    `json:"peak_tick" yaml:"peak_tick"`
	ExtinctTick int    `json:"extinct_tick" yaml:"extinct_tick"` // -1 while alive
}

// Summary describes a run from its first snapshot to its latest one.
type Summary struct {
	FromTick      int           `json:"from_tick" yaml:"from_tick"`
	ToTick        int           `json:"to_tick" yaml:"to_tick"`
	Samples       int           `json:"samples" yaml:"samples"`
	Cells         int           `json:"cells" yaml:"cells"`
	TotalDeaths   int           `json:"total_deaths" yaml:"total_deaths"`
	Survivors     int           `json:"survivors" yaml:"survivors"`
	Dominant      string        `json:"dominant" yaml:"dominant"`
	DominantShare float64       `json:"dominant_share" yaml:"dominant_share"`
	Kinds         []KindSummary `json:"kinds" yaml:"kinds"`
}

// WindowReport averages the snapshots of the most recent window.
type WindowReport struct {
	FromTick      int
	ToTick        int
	SampleCount   int
	DeathsPerTick float64
	AvgPopulation map[string]float64
}

// Reporter collects census snapshots. Whole-run aggregates are updated as
// snapshots arrive; only the last two windows of raw history are kept.
type Reporter struct {
	history     []Snapshot
	windowTicks int
	cells       int

	kinds       map[string]*KindSummary
	totalDeaths int
	first, last int
	samples     int
}

// NewReporter creates a reporter with the given window size in ticks.
func NewReporter(windowTicks int) *Reporter {
	if windowTicks <= 0 {
		windowTicks = defaultWindowTicks
	}
	return &Reporter{
		windowTicks: windowTicks,
		kinds:       make(map[string]*KindSummary),
	}
}

// Collect records a snapshot. Labels missing from counts are treated as zero.
func (r *Reporter) Collect(tick int, counts map[string]int, deaths int) {
	snap := Snapshot{Tick: tick, Counts: make(map[string]int, len(counts)), Deaths: deaths}
	total := 0
	for label, n := range counts {
		snap.Counts[label] = n
		total += n
	}

	if r.samples == 0 {
		r.first = tick
		r.cells = total
	}
	r.last = tick
	r.samples++
	r.totalDeaths += deaths

	for label, n := range counts {
		k, ok := r.kinds[label]
		if !ok {
			// First seen after the start means it had zero before.
			k = &KindSummary{Label: label, ExtinctTick: -1, PeakTick: tick}
			if r.samples == 1 {
				k.First = n
			}
			r.kinds[label] = k
		}
		if n > k.Peak {
			k.Peak, k.PeakTick = n, tick
		}
	}
	for label, k := range r.kinds {
		n := counts[label]
		k.Last = n
		if n == 0 && k.ExtinctTick < 0 {
			k.ExtinctTick = tick
		} else if n > 0 {
			k.ExtinctTick = -1
		}
	}

	r.history = append(r.history, snap)
	if len(r.history) > 2*r.windowTicks {
		r.history = r.history[len(r.history)-2*r.windowTicks:]
	}
}

// Latest returns the most recent snapshot, or nil before any Collect.
func (r *Reporter) Latest() *Snapshot {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// Summary aggregates the whole run. Kinds are sorted by final population,
// then peak, then label.
func (r *Reporter) Summary() Summary {
	s := Summary{
		FromTick:    r.first,
		ToTick:      r.last,
		Samples:     r.samples,
		Cells:       r.cells,
		TotalDeaths: r.totalDeaths,
	}
	for _, k := range r.kinds {
		s.Kinds = append(s.Kinds, *k)
		if k.Last > 0 {
			s.Survivors++
		}
	}
	sort.Slice(s.Kinds, func(i, j int) bool {
		a, b := s.Kinds[i], s.Kinds[j]
		if a.Last != b.Last {
			return a.Last > b.Last
		}
		if a.Peak != b.Peak {
			return a.Peak > b.Peak
		}
		return a.Label < b.Label
	})
	if len(s.Kinds) > 0 && s.Kinds[0].Last > 0 {
		s.Dominant = s.Kinds[0].Label
		if r.cells > 0 {
			s.DominantShare = float64(s.Kinds[0].Last) / float64(r.cells)
		}
	}
	return s
}

// WindowSummary averages the snapshots within the last window.
func (r *Reporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	latest := r.history[len(r.history)-1].Tick
	cutoff := latest - r.windowTicks

	wr := &WindowReport{ToTick: latest, FromTick: latest, AvgPopulation: make(map[string]float64)}
	deaths := 0
	for i := len(r.history) - 1; i >= 0; i-- {
		snap := r.history[i]
		if snap.Tick <= cutoff {
			break
		}
		wr.FromTick = snap.Tick
		wr.SampleCount++
		deaths += snap.Deaths
		for label, n := range snap.Counts {
			wr.AvgPopulation[label] += float64(n)
		}
	}
	for label := range wr.AvgPopulation {
		wr.AvgPopulation[label] /= float64(wr.SampleCount)
	}
	if span := min(r.windowTicks, latest-r.first); span > 0 {
		wr.DeathsPerTick = float64(deaths) / float64(span)
	}
	return wr
}

// Format renders the summary as aligned text.
func (s Summary) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ticks=%d..%d samples=%d cells=%d deaths=%d survivors=%d\n",
		s.FromTick, s.ToTick, s.Samples, s.Cells, s.TotalDeaths, s.Survivors)
	if s.Dominant != "" {
		fmt.Fprintf(&sb, "dominant=%s share=%.1f%%\n", s.Dominant, 100*s.DominantShare)
	}
	for _, k := range s.Kinds {
		extinct := "-"
		if k.ExtinctTick >= 0 {
			extinct = fmt.Sprintf("%d", k.ExtinctTick)
		}
		fmt.Fprintf(&sb, "  %-16s first=%-7d last=%-7d peak=%-7d@%-6d extinct=%s\n",
			k.Label, k.First, k.Last, k.Peak, k.PeakTick, extinct)
	}
	return sb.String()
}

// Format renders the window report on one line per label.
func (wr *WindowReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "window ticks=%d..%d samples=%d deaths/tick=%.2f\n",
		wr.FromTick, wr.ToTick, wr.SampleCount, wr.DeathsPerTick)
	labels := make([]string, 0, len(wr.AvgPopulation))
	for label := range wr.AvgPopulation {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(&sb, "  %-16s avg=%.1f\n", label, wr.AvgPopulation[label])
	}
	return sb.String()
}
