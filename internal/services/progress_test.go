package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SAP-F-2025/course-service/internal/repositories"
)

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name   string
		counts repositories.ProgressCounts
		want   float64
	}{
		{"empty course", repositories.ProgressCounts{}, 0},
		{"nothing done", repositories.ProgressCounts{TotalLessons: 3, TotalAssignments: 1}, 0},
		{"one third", repositories.ProgressCounts{TotalLessons: 2, TotalAssignments: 1, CompletedLessons: 1}, 33.3},
		{"two thirds", repositories.ProgressCounts{TotalLessons: 2, TotalAssignments: 1, CompletedLessons: 1, SubmittedAssignments: 1}, 66.7},
		{"all done", repositories.ProgressCounts{TotalLessons: 2, CompletedLessons: 2}, 100},
		{"clamped", repositories.ProgressCounts{TotalLessons: 1, CompletedLessons: 3}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeProgress(tt.counts))
		})
	}
}

func TestDaysLeft_Instant(t *testing.T) {
	cfg := TimelineConfig{}
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, cfg.DaysLeft(now.Add(48*time.Hour), now))
	assert.Equal(t, 1, cfg.DaysLeft(now.Add(47*time.Hour), now))
	assert.Equal(t, 0, cfg.DaysLeft(now.Add(5*time.Hour), now))
	assert.Equal(t, 0, cfg.DaysLeft(now.Add(-5*time.Hour), now))
	assert.Equal(t, -1, cfg.DaysLeft(now.Add(-24*time.Hour), now))
	assert.Equal(t, -2, cfg.DaysLeft(now.Add(-30*time.Hour), now))
}

func TestDaysLeft_Calendar(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("timezone database unavailable")
	}
	cfg := TimelineConfig{Calendar: true, Location: tokyo}

	// 23:00 UTC on the 10th is already the 11th in Tokyo.
	now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	due := time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, cfg.DaysLeft(due, now))
	assert.Equal(t, 1, TimelineConfig{Calendar: true}.DaysLeft(due, now))
}

func TestClassifyTimeline(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		submitted bool
		due       time.Time
		want      TimelineStatus
	}{
		{"submitted wins over overdue", true, now.Add(-72 * time.Hour), StatusSubmitted},
		{"overdue", false, now.Add(-24 * time.Hour), StatusOverdue},
		{"due later today", false, now.Add(2 * time.Hour), StatusUrgent},
		{"due in two days", false, now.Add(48 * time.Hour), StatusUrgent},
		{"due in three days", false, now.Add(72 * time.Hour), StatusUrgent},
		{"due in four days", false, now.Add(96 * time.Hour), StatusUpcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := TimelineConfig{}.DaysLeft(tt.due, now)
			assert.Equal(t, tt.want, ClassifyTimeline(tt.submitted, tt.due, now, days))
		})
	}
}
