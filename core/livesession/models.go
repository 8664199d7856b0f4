package livesession

import (
	"time"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/status"
)

// LiveSession is a scheduled class with a join link. Its window may lack a bound on old rows
// and start_time after end_time is not rejected by storage.
type LiveSession struct {
	ID        int       `json:"id"`
	CourseID  int       `json:"course_id"`
	TeacherID int       `json:"teacher_id"`
	Title     string    `json:"session_title"`
	Link      string    `json:"session_link"`
	StartTime time.Time `json:"start_time"` // UTC, zero if absent
	EndTime   time.Time `json:"end_time"`   // UTC, zero if absent
	DeletedAt time.Time `json:"-"`
}

func (s LiveSession) IsActive() bool { return s.DeletedAt.IsZero() }

func (s LiveSession) StatusAt(now time.Time) status.Session {
	return status.SessionOf(s.StartTime, s.EndTime, now)
}

// ManagedBy reports whether a may edit, cancel or start the session.
func (s LiveSession) ManagedBy(a core.Actor) bool {
	return a.IsAdmin() || (a.IsTeacher() && a.ID == s.TeacherID)
}

// View is a LiveSession along with its temporal state at a given instant.
type View struct {
	LiveSession
	Status status.Session `json:"status"`
}

func NewView(s LiveSession, now time.Time) View {
	return View{LiveSession: s, Status: s.StatusAt(now)}
}

// NewAdminView is NewView for admin listings, where a missing bound yields status.Unknown.
func NewAdminView(s LiveSession, now time.Time) View {
	return View{LiveSession: s, Status: status.AdminSessionOf(s.StartTime, s.EndTime, now)}
}

// ActiveSession pairs a currently live session with its course.
type ActiveSession struct {
	Session LiveSession   `json:"session"`
	Course  course.Course `json:"course"`
}

// NewSession contains information needed to schedule a LiveSession.
type NewSession struct {
	CourseID  int       `json:"course_id" validate:"required,gt=0"`
	Title     string    `json:"session_title" validate:"required,max=255"`
	Link      string    `json:"session_link" validate:"required,url"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

func (ns *NewSession) Clean() {
	ns.Title = core.CleanString(ns.Title)
	ns.Link = core.CleanString(ns.Link)
	ns.StartTime = ns.StartTime.UTC()
	ns.EndTime = ns.EndTime.UTC()
}

// UpdateSession defines what information may be provided to modify a LiveSession.
type UpdateSession struct {
	Title     *string    `json:"session_title" validate:"omitempty,min=1,max=255"`
	Link      *string    `json:"session_link" validate:"omitempty,url"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

// Apply returns s with the provided fields of us.
func (us UpdateSession) Apply(s LiveSession) LiveSession {
	if us.Title != nil {
		s.Title = core.CleanString(*us.Title)
	}
	if us.Link != nil {
		s.Link = core.CleanString(*us.Link)
	}
	if us.StartTime != nil {
		s.StartTime = us.StartTime.UTC()
	}
	if us.EndTime != nil {
		s.EndTime = us.EndTime.UTC()
	}
	return s
}

// GoLive is the optional payload of a go-live trigger.
type GoLive struct {
	Title string `json:"title" validate:"omitempty,max=255"`
	Link  string `json:"link" validate:"omitempty,url"`
}
