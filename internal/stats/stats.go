// Package stats aggregates attempt history into the numbers shown on the
// parent dashboard.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/abhisek/wordwise/internal/quiz"
)

// WeakThreshold is the accuracy below which a category is a weak area.
const WeakThreshold = 0.7

// CategoryStat counts attempts within one category.
type CategoryStat struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
}

// Accuracy returns correct/attempted, or 0 when nothing was attempted.
func (c CategoryStat) Accuracy() float64 {
	if c.Attempted == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Attempted)
}

// DisplayAccuracy returns the accuracy as a rounded percentage.
func (c CategoryStat) DisplayAccuracy() int {
	return int(math.Round(c.Accuracy() * 100))
}

// Weak reports whether the category is below WeakThreshold.
func (c CategoryStat) Weak() bool {
	return c.Attempted > 0 && c.Accuracy() < WeakThreshold
}

// Snapshot is the aggregate view of a history.
type Snapshot struct {
	TotalAttempted   int                     `json:"total_attempted"`
	CorrectCount     int                     `json:"correct_count"`
	CategoryAccuracy map[string]CategoryStat `json:"category_accuracy"`
}

// Compute aggregates history in a single pass. It does not retain or
// modify history.
func Compute(history []quiz.Record) Snapshot {
	snap := Snapshot{CategoryAccuracy: make(map[string]CategoryStat)}
	for _, r := range history {
		cs := snap.CategoryAccuracy[r.Category]
		cs.Attempted++
		snap.TotalAttempted++
		if r.IsCorrect {
			cs.Correct++
			snap.CorrectCount++
		}
		snap.CategoryAccuracy[r.Category] = cs
	}
	return snap
}

// Categories returns the category names in sorted order.
func (s Snapshot) Categories() []string {
	names := make([]string, 0, len(s.CategoryAccuracy))
	for name := range s.CategoryAccuracy {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WeakAreas returns the sorted categories whose accuracy is below 70%.
func (s Snapshot) WeakAreas() []string {
	var weak []string
	for _, name := range s.Categories() {
		if s.CategoryAccuracy[name].Weak() {
			weak = append(weak, name)
		}
	}
	return weak
}

// OverallAccuracy returns the rounded overall percentage, 0 for no history.
func (s Snapshot) OverallAccuracy() int {
	return CategoryStat{Attempted: s.TotalAttempted, Correct: s.CorrectCount}.DisplayAccuracy()
}

// Empty reports whether the history had no records.
func (s Snapshot) Empty() bool {
	return s.TotalAttempted == 0
}

// TodayCount counts records on now's calendar day in now's location.
func TodayCount(history []quiz.Record, now time.Time) int {
	y, m, d := now.Date()
	loc := now.Location()
	n := 0
	for _, r := range history {
		ry, rm, rd := r.Timestamp.In(loc).Date()
		if ry == y && rm == m && rd == d {
			n++
		}
	}
	return n
}

// Report bundles everything the dashboard renders.
type Report struct {
	Snapshot  Snapshot `json:"snapshot"`
	Overall   int      `json:"overall_accuracy"`
	Today     int      `json:"today"`
	WeakAreas []string `json:"weak_areas"`
}

// BuildReport computes a Report for history as of now.
func BuildReport(history []quiz.Record, now time.Time) Report {
	snap := Compute(history)
	weak := snap.WeakAreas()
	if weak == nil {
		weak = []string{}
	}
	return Report{
		Snapshot:  snap,
		Overall:   snap.OverallAccuracy(),
		Today:     TodayCount(history, now),
		WeakAreas: weak,
	}
}
