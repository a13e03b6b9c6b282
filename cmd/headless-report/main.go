package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/grid-battle/internal/app"
	"github.com/Garsondee/grid-battle/internal/config"
	"github.com/Garsondee/grid-battle/internal/fighters"
	"github.com/Garsondee/grid-battle/internal/logs"
	"github.com/Garsondee/grid-battle/internal/report"
	"github.com/Garsondee/grid-battle/internal/roster"
)

// errSeedUnsupported rejects the single-run seed; batches are seeded from
// -seed-base and -seed-step.
var errSeedUnsupported = errors.New("-seed (or a configured seed) is not used by headless-report; use -seed-base and -seed-step")

type runStats struct {
	RunIndex int            `json:"run" yaml:"run"`
	Seed     int64          `json:"seed" yaml:"seed"`
	Kind     string         `json:"kind" yaml:"kind"`
	Ticks    int            `json:"ticks" yaml:"ticks"`
	Outcome  string         `json:"outcome" yaml:"outcome"`
	Reason   string         `json:"reason" yaml:"reason"`
	Summary  report.Summary `json:"summary" yaml:"summary"`

	FirstExtinctTick int `json:"first_extinct_tick" yaml:"first_extinct_tick"`
	TakeoverTick     int `json:"takeover_tick" yaml:"takeover_tick"`

	window *report.WindowReport
}

type aggregateStats struct {
	Runs            int            `json:"runs" yaml:"runs"`
	Outcomes        map[string]int `json:"outcomes" yaml:"outcomes"`
	DominantWins    map[string]int `json:"dominant_wins" yaml:"dominant_wins"`
	AvgDeaths       float64        `json:"avg_deaths" yaml:"avg_deaths"`
	AvgSurvivors    float64        `json:"avg_survivors" yaml:"avg_survivors"`
	AvgTakeoverTick string         `json:"avg_takeover_tick" yaml:"avg_takeover_tick"`
}

type reportDoc struct {
	Runs      []runStats     `json:"runs" yaml:"runs"`
	Aggregate aggregateStats `json:"aggregate" yaml:"aggregate"`
}

type runParams struct {
	kind   fighters.Kind
	cfg    config.Config
	roster []fighters.RealPokemon
	ticks  int
	window int
	every  int
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("headless-report", flag.ContinueOnError)
	var (
		runs     int
		ticks    int
		seedBase int64
		seedStep int64
		window   int
		every    int
		parallel int
		format   string
		out      string
	)
	fs.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	fs.IntVar(&ticks, "ticks", 1000, "ticks per run")
	fs.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1 (replaces the shared -seed, which is rejected here)")
	fs.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	fs.IntVar(&window, "window", 100, "reporter window in ticks")
	fs.IntVar(&every, "every", 1, "take a census every N ticks")
	fs.IntVar(&parallel, "parallel", runtime.NumCPU(), "runs executed concurrently")
	fs.StringVar(&format, "format", "text", "output format (text, yaml, json)")
	fs.StringVar(&out, "out", "", "write the report to this file instead of stdout")
	cfg, err := app.Load("headless-report", fs, config.RegisterFlags(fs), args)
	if err != nil {
		return err
	}
	defer logs.Sync()

	if cfg.Seed != 0 {
		return errSeedUnsupported
	}
	if runs <= 0 {
		return fmt.Errorf("-runs must be > 0")
	}
	if ticks <= 0 {
		return fmt.Errorf("-ticks must be > 0")
	}
	switch format {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("unsupported format %q (supported: text, yaml, json)", format)
	}

	kind, err := cfg.Kind()
	if err != nil {
		return err
	}
	params := runParams{kind: kind, cfg: cfg, ticks: ticks, window: window, every: every}
	if kind == fighters.KindRealPokemon {
		params.roster, err = roster.Load(context.Background(), cfg.Roster.Source)
		if err != nil {
			return err
		}
	}

	logs.Info("headless report start",
		zap.Stringer("kind", kind),
		zap.Int("runs", runs),
		zap.Int("ticks", ticks),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height))

	all := make([]runStats, runs)
	g := new(errgroup.Group)
	g.SetLimit(max(1, parallel))
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		g.Go(func() error {
			rs, err := runOne(i+1, seed, params)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			all[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	doc := reportDoc{Runs: all, Aggregate: aggregate(all)}
	if out == "" {
		return writeReport(stdout, format, doc)
	}
	return writeReportFile(out, format, doc)
}

// writeReportFile writes doc to path. A failed Close is returned when the
// write itself succeeded.
func writeReportFile(path, format string, doc reportDoc) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
	}()
	return writeReport(f, format, doc)
}

func runOne(runIndex int, seed int64, p runParams) (runStats, error) {
	r, err := report.NewRun(
		report.WithKind(p.kind),
		report.WithSize(p.cfg.Width, p.cfg.Height),
		report.WithSeed(seed),
		report.WithSelection(p.cfg.Selection()),
		report.WithFightOwn(p.cfg.FightOwn),
		report.WithRoster(p.roster),
		report.WithWindow(p.window, p.every),
	)
	if err != nil {
		return runStats{}, err
	}
	r.RunTicks(p.ticks)

	summary := r.Summary()
	rs := runStats{
		RunIndex:         runIndex,
		Seed:             seed,
		Kind:             p.kind.String(),
		Ticks:            p.ticks,
		Summary:          summary,
		FirstExtinctTick: firstTick(r.SimLog, "extinct"),
		TakeoverTick:     firstTick(r.SimLog, "takeover"),
		window:           r.Reporter.WindowSummary(),
	}
	rs.Outcome, rs.Reason = classifyOutcome(summary)
	logs.Debug("run finished",
		zap.Int("run", runIndex),
		zap.Int64("seed", seed),
		zap.String("outcome", rs.Outcome))
	return rs, nil
}

func firstTick(sl *report.SimLog, key string) int {
	if e, ok := sl.FirstOf("census", key, ""); ok {
		return e.Tick
	}
	return -1
}

// classifyOutcome labels a run: takeover when one kind holds every cell,
// dominant when one kind holds more than half, contested otherwise.
func classifyOutcome(s report.Summary) (string, string) {
	switch {
	case s.Survivors == 1:
		return "takeover", fmt.Sprintf("%s holds all %d cells", s.Dominant, s.Cells)
	case s.DominantShare > 0.5:
		return "dominant", fmt.Sprintf("%s holds %.1f%% with %d survivors", s.Dominant, 100*s.DominantShare, s.Survivors)
	case s.TotalDeaths == 0:
		return "stalemate", "no deaths"
	default:
		return "contested", fmt.Sprintf("%d survivors, leader %s at %.1f%%", s.Survivors, s.Dominant, 100*s.DominantShare)
	}
}

func aggregate(all []runStats) aggregateStats {
	agg := aggregateStats{
		Runs:         len(all),
		Outcomes:     map[string]int{},
		DominantWins: map[string]int{},
	}
	totalDeaths, totalSurvivors := 0, 0
	var takeovers []int
	for _, rs := range all {
		agg.Outcomes[rs.Outcome]++
		if rs.Summary.Dominant != "" {
			agg.DominantWins[rs.Summary.Dominant]++
		}
		totalDeaths += rs.Summary.TotalDeaths
		totalSurvivors += rs.Summary.Survivors
		if rs.TakeoverTick >= 0 {
			takeovers = append(takeovers, rs.TakeoverTick)
		}
	}
	agg.AvgDeaths = avg(totalDeaths, len(all))
	agg.AvgSurvivors = avg(totalSurvivors, len(all))
	agg.AvgTakeoverTick = avgTickString(takeovers)
	return agg
}

func writeReport(w io.Writer, format string, doc reportDoc) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		fmt.Fprintf(w, "=== Headless Battle Report ===\n\n")
		for _, rs := range doc.Runs {
			printRun(w, rs)
		}
		printAggregate(w, doc.Aggregate)
		return nil
	}
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d kind=%s ticks=%d) ---\n", rs.RunIndex, rs.Seed, rs.Kind, rs.Ticks)
	fmt.Fprintf(w, "outcome=%s (%s)\n", rs.Outcome, rs.Reason)
	fmt.Fprintf(w, "phase_markers: first_extinct=%d takeover=%d\n", rs.FirstExtinctTick, rs.TakeoverTick)
	fmt.Fprint(w, rs.Summary.Format())
	if rs.window != nil {
		fmt.Fprint(w, rs.window.Format())
	}
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, agg aggregateStats) {
	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d avg_deaths=%.1f avg_survivors=%.1f avg_takeover_tick=%s\n",
		agg.Runs, agg.AvgDeaths, agg.AvgSurvivors, agg.AvgTakeoverTick)
	fmt.Fprintf(w, "outcomes: %s\n", joinCounts(agg.Outcomes))
	fmt.Fprintf(w, "dominant_wins: %s\n", joinCounts(agg.DominantWins))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, ",")
}
