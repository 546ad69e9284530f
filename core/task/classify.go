package task

import (
	"math"
	"sort"
	"time"
)

// UpcomingWindowDays is how far ahead the "upcoming" bucket looks.
const UpcomingWindowDays = 7

// Buckets groups tasks by deadline proximity for the dashboard views.
// The four lists are disjoint: Completed is keyed on status alone, the
// other three only ever hold non-completed tasks. An open task due more
// than UpcomingWindowDays ahead lands in no bucket at all.
type Buckets struct {
	Overdue   []Task `json:"overdue"`
	DueToday  []Task `json:"due_today"`
	Upcoming  []Task `json:"upcoming"`
	Completed []Task `json:"completed"`
}

// Classify partitions tasks relative to now. All deadline comparisons are
// calendar-date comparisons in now's location; time of day is ignored.
// Completed tasks come back most recently touched first and are not capped
// here, callers cap the list where a view calls for it.
func Classify(tasks []Task, now time.Time) Buckets {
	today := startOfDay(now)
	horizon := today.AddDate(0, 0, UpcomingWindowDays)

	var b Buckets
	for _, t := range tasks {
		if t.Status == StatusCompleted {
			b.Completed = append(b.Completed, t)
			continue
		}
		deadline := startOfDay(t.Deadline.In(now.Location()))
		switch {
		case deadline.Before(today):
			b.Overdue = append(b.Overdue, t)
		case deadline.Equal(today):
			b.DueToday = append(b.DueToday, t)
		case !deadline.After(horizon):
			b.Upcoming = append(b.Upcoming, t)
		}
	}

	sort.SliceStable(b.Completed, func(i, j int) bool {
		return b.Completed[i].completedStamp().After(b.Completed[j].completedStamp())
	})
	return b
}

// CapCompleted returns the buckets with the completed list shortened to at
// most n entries.
func (b Buckets) CapCompleted(n int) Buckets {
	if n >= 0 && len(b.Completed) > n {
		b.Completed = b.Completed[:n]
	}
	return b
}

// Stats summarizes a task set for the company overview.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	DueToday  int `json:"due_today"`
	Progress  int `json:"progress"` // percentage of tasks completed
}

func ComputeStats(tasks []Task, now time.Time) Stats {
	b := Classify(tasks, now)
	s := Stats{
		Total:     len(tasks),
		Completed: len(b.Completed),
		Overdue:   len(b.Overdue),
		DueToday:  len(b.DueToday),
	}
	if s.Total > 0 {
		s.Progress = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

func (t Task) completedStamp() time.Time {
	if !t.UpdatedAt.IsZero() {
		return t.UpdatedAt
	}
	return t.CreatedAt
}

// IsOverdue reports whether the task's deadline date has passed and the
// task is not completed.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}
	return startOfDay(t.Deadline.In(now.Location())).Before(startOfDay(now))
}

// IsDueToday reports whether the task's deadline falls on now's date and
// the task is not completed.
func (t Task) IsDueToday(now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}
	return startOfDay(t.Deadline.In(now.Location())).Equal(startOfDay(now))
}

// StatusColor classifies the task for display badges:
// green when completed, red when overdue, yellow when due today, gray otherwise.
func (t Task) StatusColor(now time.Time) string {
	switch {
	case t.Status == StatusCompleted:
		return "green"
	case t.IsOverdue(now):
		return "red"
	case t.IsDueToday(now):
		return "yellow"
	}
	return "gray"
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
