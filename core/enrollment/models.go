package enrollment

import (
	"time"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/status"
)

type Enrollment struct {
	ID         int       `json:"id"`
	CourseID   int       `json:"course_id"`
	StudentID  int       `json:"student_id"`
	EnrolledAt time.Time `json:"enrolled_at"` // UTC
	Progress   int       `json:"progress"`
	DeletedAt  time.Time `json:"-"` // zero while enrolled
}

func (e Enrollment) IsActive() bool { return e.DeletedAt.IsZero() }

// VisibleTo reports whether a may read or update the enrollment.
func (e Enrollment) VisibleTo(a core.Actor) bool {
	return a.IsAdmin() || a.ID == e.StudentID
}

// View is an Enrollment along with the states derived from it at a given instant.
type View struct {
	Enrollment
	Completion     status.Completion `json:"completion"`
	Badge          status.Badge      `json:"badge"`
	ReviewEligible bool              `json:"review_eligible"`
}

func NewView(e Enrollment, numWeeks *int, now time.Time) View {
	return View{
		Enrollment:     e,
		Completion:     status.CompletionOf(e.Progress),
		Badge:          status.BadgeOf(e.Progress),
		ReviewEligible: status.EligibleForReview(e.EnrolledAt, numWeeks, now),
	}
}

// Distribution counts a course's active enrollments per completion bucket.
type Distribution struct {
	CourseID int                       `json:"course_id"`
	Total    int                       `json:"total"`
	Buckets  map[status.Completion]int `json:"buckets"`
}

func NewDistribution(courseID int, enrollments []Enrollment) Distribution {
	d := Distribution{
		CourseID: courseID,
		Total:    len(enrollments),
		Buckets:  make(map[status.Completion]int, len(status.Completions)),
	}
	for _, c := range status.Completions {
		d.Buckets[c] = 0
	}
	for _, e := range enrollments {
		d.Buckets[status.CompletionOf(e.Progress)]++
	}
	return d
}

// UpdateProgress is the payload of a progress mutation. Out of range values are clamped, not rejected.
type UpdateProgress struct {
	Progress *int `json:"progress" validate:"required"`
}
