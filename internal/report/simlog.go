package report

import (
	"fmt"
	"slices"
	"strings"
)

// Event is one thing that happened during a headless run.
type Event struct {
	Tick     int
	Label    string // fighter label, or "--" for grid-wide events
	Category string // tick, census
	Key      string
	Detail   string
	Num      float64
}

//	[T=042] --           tick     deaths     17
func (e Event) String() string {
	return fmt.Sprintf("[T=%03d] %-12s %-8s %-10s %s", e.Tick, e.Label, e.Category, e.Key, e.Detail)
}

func (e Event) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// SimLog is the unbounded event record of a run. Per-tick events are only
// kept in verbose mode.
type SimLog struct {
	events  []Event
	verbose bool
}

func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

func (sl *SimLog) Add(tick int, label, category, key, detail string, num float64) {
	sl.events = append(sl.events, Event{tick, label, category, key, detail, num})
}

// AddVerbose is Add, but a no-op unless verbose.
func (sl *SimLog) AddVerbose(tick int, label, category, key, detail string, num float64) {
	if sl.verbose {
		sl.Add(tick, label, category, key, detail, num)
	}
}

func (sl *SimLog) Events() []Event { return sl.events }

func (sl *SimLog) where(keep func(Event) bool) []Event {
	var out []Event
	for _, e := range sl.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Filter selects by category and key; an empty argument matches anything.
func (sl *SimLog) Filter(category, key string) []Event {
	return sl.where(func(e Event) bool { return e.matches(category, key) })
}

// Between selects events with from <= Tick <= to.
func (sl *SimLog) Between(from, to int) []Event {
	return sl.where(func(e Event) bool { return e.Tick >= from && e.Tick <= to })
}

func (sl *SimLog) Count(category, key string) int {
	return len(sl.Filter(category, key))
}

// FirstOf finds the earliest event for category/key, optionally for one label.
func (sl *SimLog) FirstOf(category, key, label string) (Event, bool) {
	i := slices.IndexFunc(sl.events, func(e Event) bool {
		return e.Category == category && e.Key == key && (label == "" || e.Label == label)
	})
	if i < 0 {
		return Event{}, false
	}
	return sl.events[i], true
}

func (sl *SimLog) LastOf(category, key string) (Event, bool) {
	for i := len(sl.events) - 1; i >= 0; i-- {
		if sl.events[i].matches(category, key) {
			return sl.events[i], true
		}
	}
	return Event{}, false
}

// Contains reports whether some category/key event mentions detail.
func (sl *SimLog) Contains(category, key, detail string) bool {
	return slices.ContainsFunc(sl.events, func(e Event) bool {
		return e.matches(category, key) && strings.Contains(e.Detail, detail)
	})
}

func (sl *SimLog) Format() string { return format(sl.events) }

func format(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		fmt.Fprintln(&sb, e)
	}
	return sb.String()
}
