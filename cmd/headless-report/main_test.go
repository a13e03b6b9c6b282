package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/grid-battle/internal/report"
)

func TestClassifyOutcome(t *testing.T) {
	cases := []struct {
		name    string
		summary report.Summary
		want    string
	}{
		{"takeover", report.Summary{Survivors: 1, Dominant: "Fire", DominantShare: 1, Cells: 16, TotalDeaths: 40}, "takeover"},
		{"dominant", report.Summary{Survivors: 3, Dominant: "Water", DominantShare: 0.7, TotalDeaths: 12}, "dominant"},
		{"stalemate", report.Summary{Survivors: 4, Dominant: "Rock", DominantShare: 0.3}, "stalemate"},
		{"contested", report.Summary{Survivors: 4, Dominant: "Rock", DominantShare: 0.3, TotalDeaths: 9}, "contested"},
	}
	for _, tc := range cases {
		got, reason := classifyOutcome(tc.summary)
		if got != tc.want {
			t.Errorf("%s: expected %s, got %s (%s)", tc.name, tc.want, got, reason)
		}
	}
}

func TestAggregate(t *testing.T) {
	all := []runStats{
		{Outcome: "takeover", TakeoverTick: 10, Summary: report.Summary{Dominant: "Fire", TotalDeaths: 100, Survivors: 1}},
		{Outcome: "takeover", TakeoverTick: 20, Summary: report.Summary{Dominant: "Fire", TotalDeaths: 50, Survivors: 1}},
		{Outcome: "contested", TakeoverTick: -1, Summary: report.Summary{Dominant: "Water", TotalDeaths: 30, Survivors: 4}},
	}
	agg := aggregate(all)
	if agg.Runs != 3 || agg.Outcomes["takeover"] != 2 || agg.DominantWins["Fire"] != 2 {
		t.Fatalf("unexpected counts %+v", agg)
	}
	if agg.AvgDeaths != 60 || agg.AvgSurvivors != 2 {
		t.Fatalf("unexpected averages %+v", agg)
	}
	if agg.AvgTakeoverTick != "15.0" {
		t.Fatalf("expected average takeover 15.0, got %s", agg.AvgTakeoverTick)
	}
	if got := joinCounts(agg.Outcomes); got != "contested=1,takeover=2" {
		t.Fatalf("unexpected join %q", got)
	}
}

func TestRun_TextReport(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"-runs", "2", "-ticks", "5", "-t", "rps", "-w", "32", "-h", "32"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"--- Run 1 (seed=42", "--- Run 2 (seed=43", "=== Aggregate ===", "runs=2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRun_YAMLToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	err := run([]string{"-runs", "3", "-ticks", "4", "-seed-base", "7", "-seed-step", "10",
		"-t", "pokemon", "-w", "32", "-h", "32", "-format", "yaml", "-out", path}, os.Stdout)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc reportDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("report is not YAML: %v", err)
	}
	if len(doc.Runs) != 3 || doc.Runs[2].Seed != 27 || doc.Aggregate.Runs != 3 {
		t.Fatalf("unexpected document %+v", doc)
	}
	for _, rs := range doc.Runs {
		if rs.Summary.Cells != 1024 || rs.Summary.ToTick != 4 {
			t.Fatalf("run %d summary %+v", rs.RunIndex, rs.Summary)
		}
	}
}

func TestRun_JSONDeterministic(t *testing.T) {
	args := []string{"-runs", "2", "-ticks", "3", "-t", "street-fighter", "-w", "32", "-h", "32", "-format", "json"}
	var a, b bytes.Buffer
	if err := run(args, &a); err != nil {
		t.Fatal(err)
	}
	if err := run(append(args, "-parallel", "1"), &b); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Fatal("seeded runs should not depend on scheduling")
	}
	var doc reportDoc
	if err := json.Unmarshal(a.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
}

func TestRun_BadFlags(t *testing.T) {
	var buf bytes.Buffer
	for _, args := range [][]string{
		{"-runs", "0"},
		{"-ticks", "-1"},
		{"-format", "xml"},
		{"-w", "8"},
		{"-t", "chess"},
	} {
		if err := run(args, &buf); err == nil {
			t.Errorf("%v should fail", args)
		}
	}
}

func TestRun_RejectsSingleSeed(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"-runs", "1", "-ticks", "1", "-w", "32", "-h", "32", "-seed", "5"}, &buf)
	if !errors.Is(err, errSeedUnsupported) {
		t.Fatalf("expected errSeedUnsupported, got %v", err)
	}
	t.Setenv("BATTLE_SEED", "11")
	if err := run([]string{"-runs", "1", "-ticks", "1", "-w", "32", "-h", "32"}, &buf); !errors.Is(err, errSeedUnsupported) {
		t.Fatalf("a seed from the environment should be rejected too, got %v", err)
	}
}

func TestWriteReportFile(t *testing.T) {
	doc := reportDoc{Runs: []runStats{{RunIndex: 1, Seed: 3, Outcome: "stalemate"}}, Aggregate: aggregate(nil)}
	path := filepath.Join(t.TempDir(), "report.json")
	if err := writeReportFile(path, "json", doc); err != nil {
		t.Fatal(err)
	}
	var got reportDoc
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &got); err != nil || len(got.Runs) != 1 || got.Runs[0].Seed != 3 {
		t.Fatalf("unexpected file contents (%v): %s", err, data)
	}

	if err := writeReportFile(t.TempDir(), "json", doc); err == nil {
		t.Fatal("writing over a directory should fail")
	}
}
