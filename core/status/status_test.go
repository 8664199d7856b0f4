package status

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompletionOf(t *testing.T) {
	tests := []struct {
		progress int
		want     Completion
	}{
		{progress: -5, want: NotStarted},
		{progress: 0, want: NotStarted},
		{progress: 1, want: InProgress},
		{progress: 49, want: InProgress},
		{progress: 50, want: Halfway},
		{progress: 79, want: Halfway},
		{progress: 80, want: Completed},
		{progress: 99, want: Completed},
		{progress: 100, want: Completed},
		{progress: 150, want: Completed},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.progress), func(t *testing.T) {
			assert.Equal(t, tt.want, CompletionOf(tt.progress))
		})
	}
}

func TestBadgeOf(t *testing.T) {
	for p := MinProgress; p <= MaxProgress; p++ {
		want := BadgeActive
		if p == MaxProgress {
			want = BadgeCompleted
		}
		assert.Equal(t, want, BadgeOf(p), "progress %d", p)
	}

	// 80 to 99 are Completed buckets but not completed badges
	assert.Equal(t, Completed, CompletionOf(80))
	assert.Equal(t, BadgeActive, BadgeOf(80))
}

func TestClampProgress(t *testing.T) {
	assert.Equal(t, 0, ClampProgress(-1))
	assert.Equal(t, 0, ClampProgress(0))
	assert.Equal(t, 42, ClampProgress(42))
	assert.Equal(t, 100, ClampProgress(100))
	assert.Equal(t, 100, ClampProgress(101))
}

func TestEligibleForReview(t *testing.T) {
	enrolledAt := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	weeks := func(n int) *int { return &n }

	tests := []struct {
		name     string
		numWeeks *int
		now      time.Time
		want     bool
	}{
		{name: "self paced: nil weeks", numWeeks: nil, now: enrolledAt, want: true},
		{name: "self paced: zero weeks", numWeeks: weeks(0), now: enrolledAt, want: true},
		{name: "just enrolled", numWeeks: weeks(4), now: enrolledAt, want: false},
		{name: "one second early", numWeeks: weeks(4), now: enrolledAt.Add(28*24*time.Hour - time.Second), want: false},
		{name: "exactly at the end", numWeeks: weeks(4), now: enrolledAt.Add(28 * 24 * time.Hour), want: true},
		{name: "long after", numWeeks: weeks(4), now: enrolledAt.AddDate(1, 0, 0), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EligibleForReview(enrolledAt, tt.numWeeks, tt.now))
		})
	}
}

func TestEligibleForReview_monotonic(t *testing.T) {
	enrolledAt := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	numWeeks := 2

	var eligible bool
	for h := 0; h <= 24*7*3; h++ {
		now := enrolledAt.Add(time.Duration(h) * time.Hour)
		got := EligibleForReview(enrolledAt, &numWeeks, now)
		if eligible && !got {
			t.Fatalf("eligibility reverted at %s", now)
		}
		eligible = got
	}
	assert.True(t, eligible)
}

func TestSessionOf(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name       string
		start, end time.Time
		now        time.Time
		want       Session
	}{
		{name: "before start", start: start, end: end, now: start.Add(-time.Nanosecond), want: Upcoming},
		{name: "at start", start: start, end: end, now: start, want: Live},
		{name: "during", start: start, end: end, now: start.Add(30 * time.Minute), want: Live},
		{name: "at end", start: start, end: end, now: end, want: Live},
		{name: "after end", start: start, end: end, now: end.Add(time.Nanosecond), want: Ended},
		{name: "malformed: before both", start: end, end: start, now: start.Add(-time.Minute), want: Upcoming},
		{name: "malformed: in between", start: end, end: start, now: start.Add(30 * time.Minute), want: Upcoming},
		{name: "malformed: after both", start: end, end: start, now: end.Add(time.Minute), want: Ended},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SessionOf(tt.start, tt.end, tt.now))
		})
	}
}

func TestSessionOf_partition(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	for m := -60; m <= 180; m++ {
		now := start.Add(time.Duration(m) * time.Minute)
		got := SessionOf(start, end, now)

		var want Session
		switch {
		case now.Before(start):
			want = Upcoming
		case now.After(end):
			want = Ended
		default:
			want = Live
		}
		assert.Equal(t, want, got, "at %s", now)
	}
}

func TestAdminSessionOf(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	now := start.Add(time.Minute)

	assert.Equal(t, Unknown, AdminSessionOf(time.Time{}, end, now))
	assert.Equal(t, Unknown, AdminSessionOf(start, time.Time{}, now))
	assert.Equal(t, Unknown, AdminSessionOf(time.Time{}, time.Time{}, now))
	assert.Equal(t, Live, AdminSessionOf(start, end, now))
	assert.Equal(t, Ended, AdminSessionOf(start, end, end.Add(time.Second)))
}
