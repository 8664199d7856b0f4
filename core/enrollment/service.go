package enrollment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/status"
)

var (
	ErrNotFound        = errors.New("enrollment not found")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")
)

type (
	Repository interface {
		// FindEnrollment returns the row of a (course, student) pair, soft-deleted or not.
		FindEnrollment(ctx context.Context, courseID, studentID int) (Enrollment, error)
		// CreateEnrollment returns ErrAlreadyEnrolled if a row exists for the pair.
		CreateEnrollment(ctx context.Context, e Enrollment) (Enrollment, error)
		// ReactivateEnrollment clears deleted_at, resets progress to 0 and sets enrolled_at.
		ReactivateEnrollment(ctx context.Context, id int, at time.Time) (Enrollment, error)
		GetEnrollment(ctx context.Context, id int) (Enrollment, error)
		SetProgress(ctx context.Context, id, progress int) (Enrollment, error)
		SoftDeleteEnrollment(ctx context.Context, id int, at time.Time) error
		ListByStudent(ctx context.Context, studentID int) ([]Enrollment, error)
		ListByCourse(ctx context.Context, courseID int) ([]Enrollment, error)
		// PurgeEnrollments hard deletes rows and returns how many were removed.
		PurgeEnrollments(ctx context.Context, ids ...int) (int, error)
	}

	Service struct {
		repo    Repository
		courses course.Repository
		clock   core.Clock
	}
)

func NewService(repo Repository, courses course.Repository, clock core.Clock) *Service {
	return &Service{repo: repo, courses: courses, clock: clock}
}

// Enroll enrolls the acting student in a course, reactivating a previous enrollment if any.
func (svc *Service) Enroll(ctx context.Context, actor core.Actor, courseID int) (Enrollment, error) {
	if !actor.IsStudent() {
		return Enrollment{}, core.ErrForbidden
	}
	if _, err := svc.courses.GetCourse(ctx, courseID); err != nil {
		return Enrollment{}, err
	}

	now := svc.clock.Now()
	existing, err := svc.repo.FindEnrollment(ctx, courseID, actor.ID)
	switch {
	case err == nil && existing.IsActive():
		return Enrollment{}, ErrAlreadyEnrolled
	case err == nil:
		return svc.repo.ReactivateEnrollment(ctx, existing.ID, now)
	case errors.Cause(err) != ErrNotFound:
		return Enrollment{}, err
	}

	return svc.repo.CreateEnrollment(ctx, Enrollment{
		CourseID:   courseID,
		StudentID:  actor.ID,
		EnrolledAt: now,
	})
}

// Unenroll soft deletes the acting student's enrollment in a course.
func (svc *Service) Unenroll(ctx context.Context, actor core.Actor, courseID int) error {
	e, err := svc.repo.FindEnrollment(ctx, courseID, actor.ID)
	if err != nil {
		return err
	}
	if !e.IsActive() {
		return ErrNotFound
	}
	return svc.repo.SoftDeleteEnrollment(ctx, e.ID, svc.clock.Now())
}

func (svc *Service) Get(ctx context.Context, id int) (Enrollment, error) {
	return svc.repo.GetEnrollment(ctx, id)
}

// SetProgress stores value, clamped to [0, 100]. Derived states are never stored.
func (svc *Service) SetProgress(ctx context.Context, id, value int) (Enrollment, error) {
	return svc.repo.SetProgress(ctx, id, status.ClampProgress(value))
}

// Status derives the states of an enrollment at the current instant.
func (svc *Service) Status(ctx context.Context, id int) (View, error) {
	e, err := svc.repo.GetEnrollment(ctx, id)
	if err != nil {
		return View{}, err
	}
	c, err := svc.courses.GetCourse(ctx, e.CourseID)
	if err != nil {
		return View{}, err
	}
	return NewView(e, c.NumWeeks, svc.clock.Now()), nil
}

func (svc *Service) ListByStudent(ctx context.Context, studentID int) ([]View, error) {
	enrollments, err := svc.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return svc.views(ctx, enrollments)
}

func (svc *Service) ListByCourse(ctx context.Context, courseID int) ([]View, error) {
	c, err := svc.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	enrollments, err := svc.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	now := svc.clock.Now()
	views := make([]View, 0, len(enrollments))
	for _, e := range enrollments {
		views = append(views, NewView(e, c.NumWeeks, now))
	}
	return views, nil
}

// CompletionDistribution counts the active enrollments of a course per completion bucket.
func (svc *Service) CompletionDistribution(ctx context.Context, courseID int) (Distribution, error) {
	if _, err := svc.courses.GetCourse(ctx, courseID); err != nil {
		return Distribution{}, err
	}
	enrollments, err := svc.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return Distribution{}, err
	}
	return NewDistribution(courseID, enrollments), nil
}

// Purge hard deletes enrollments, soft-deleted or not.
func (svc *Service) Purge(ctx context.Context, ids ...int) (int, error) {
	ids = core.UniqueInts(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	return svc.repo.PurgeEnrollments(ctx, ids...)
}

func (svc *Service) views(ctx context.Context, enrollments []Enrollment) ([]View, error) {
	if len(enrollments) == 0 {
		return []View{}, nil
	}
	courseIDs := make([]int, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}
	courses, err := svc.courses.GetCoursesByID(ctx, core.UniqueInts(courseIDs)...)
	if err != nil {
		return nil, err
	}
	weeks := make(map[int]*int, len(courses))
	for _, c := range courses {
		weeks[c.ID] = c.NumWeeks
	}

	now := svc.clock.Now()
	views := make([]View, 0, len(enrollments))
	for _, e := range enrollments {
		views = append(views, NewView(e, weeks[e.CourseID], now))
	}
	return views, nil
}
