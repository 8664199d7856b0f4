// Package status derives enrollment and live session states from stored values and an instant.
// Nothing here is ever persisted: every state is a view computed on read.
package status

import "time"

const (
	MinProgress = 0
	MaxProgress = 100

	halfwayThreshold   = 50
	completedThreshold = 80
)

// Completion is the four-bucket "how far along" classification used by dashboard distributions.
type Completion string

const (
	NotStarted Completion = "not_started"
	InProgress Completion = "in_progress"
	Halfway    Completion = "halfway"
	Completed  Completion = "completed"
)

// Completions lists every Completion bucket in ascending order.
var Completions = []Completion{NotStarted, InProgress, Halfway, Completed}

// Badge is the two-value "is it fully done" classification used by list and badge displays.
// It is not a coarsening of Completion: progress 80 is Completed there but still BadgeActive here.
type Badge string

const (
	BadgeActive    Badge = "active"
	BadgeCompleted Badge = "completed"
)

// Session is the temporal state of a live session.
type Session string

const (
	Upcoming Session = "upcoming"
	Live     Session = "live"
	Ended    Session = "ended"
	Unknown  Session = "unknown" // admin views only: a window bound is missing
)

// ClampProgress bounds p to [MinProgress, MaxProgress].
func ClampProgress(p int) int {
	if p < MinProgress {
		return MinProgress
	}
	if p > MaxProgress {
		return MaxProgress
	}
	return p
}

// CompletionOf classifies progress into one of the four Completion buckets.
func CompletionOf(progress int) Completion {
	progress = ClampProgress(progress)
	switch {
	case progress == MinProgress:
		return NotStarted
	case progress < halfwayThreshold:
		return InProgress
	case progress < completedThreshold:
		return Halfway
	default:
		return Completed
	}
}

// BadgeOf is BadgeCompleted iff progress is exactly MaxProgress.
func BadgeOf(progress int) Badge {
	if progress == MaxProgress {
		return BadgeCompleted
	}
	return BadgeActive
}

// EligibleForReview reports whether a student enrolled at enrolledAt may review the course.
// Self-paced courses (numWeeks nil or 0) are always eligible; otherwise the whole course
// duration must have elapsed. Progress plays no part in it.
func EligibleForReview(enrolledAt time.Time, numWeeks *int, now time.Time) bool {
	if numWeeks == nil || *numWeeks == 0 {
		return true
	}
	eligibleAt := enrolledAt.Add(time.Duration(*numWeeks) * 7 * 24 * time.Hour)
	return !now.Before(eligibleAt)
}

// SessionOf derives the temporal state of the window [start, end] at now.
// Both bounds are inclusive. A window with start after end is not corrected:
// it reports Upcoming before start and Ended afterwards, never Live.
func SessionOf(start, end, now time.Time) Session {
	if now.Before(start) {
		return Upcoming
	}
	if !now.After(end) {
		return Live
	}
	return Ended
}

// AdminSessionOf is SessionOf for rows that may lack a bound: it reports Unknown instead.
func AdminSessionOf(start, end, now time.Time) Session {
	if start.IsZero() || end.IsZero() {
		return Unknown
	}
	return SessionOf(start, end, now)
}
