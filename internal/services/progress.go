package services

import (
	"math"
	"time"

	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type TimelineStatus string

const (
	StatusSubmitted TimelineStatus = "submitted"
	StatusOverdue   TimelineStatus = "overdue"
	StatusUrgent    TimelineStatus = "urgent"
	StatusUpcoming  TimelineStatus = "upcoming"
)

// urgentDays is the inclusive horizon for the urgent status.
const urgentDays = 3

// TimelineConfig selects how days_left is counted. Calendar mode compares
// wall-clock dates in Location; otherwise whole 24h periods are counted.
type TimelineConfig struct {
	Calendar bool
	Location *time.Location
}

// ComputeProgress returns the completed share of lessons and assignments as
// a percentage with one decimal.
func ComputeProgress(c repositories.ProgressCounts) float64 {
	total := c.Total()
	if total <= 0 {
		return 0
	}
	pct := math.Round(float64(c.Completed())*1000/float64(total)) / 10
	return math.Max(0, math.Min(100, pct))
}

// DaysLeft counts the days from now until due.
func (c TimelineConfig) DaysLeft(due, now time.Time) int {
	if c.Calendar {
		loc := c.Location
		if loc == nil {
			loc = time.UTC
		}
		return calendarDays(now.In(loc), due.In(loc))
	}

	diff := due.Sub(now)
	if diff < 0 && diff > -24*time.Hour {
		return 0
	}
	return int(math.Floor(diff.Hours() / 24))
}

func calendarDays(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// ClassifyTimeline derives the status of one dated assignment. Overdue
// compares absolute instants regardless of the day mode.
func ClassifyTimeline(submitted bool, due, now time.Time, daysLeft int) TimelineStatus {
	switch {
	case submitted:
		return StatusSubmitted
	case due.Before(now):
		return StatusOverdue
	case daysLeft >= 0 && daysLeft <= urgentDays:
		return StatusUrgent
	default:
		return StatusUpcoming
	}
}
