package livesession

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
)

var ErrNotFound = errors.New("live session not found")

type (
	// Repository never returns soft-deleted sessions.
	Repository interface {
		CreateSession(ctx context.Context, s LiveSession) (LiveSession, error)
		GetSession(ctx context.Context, id int) (LiveSession, error)
		// UpdateSession writes title, link and window of s.
		UpdateSession(ctx context.Context, s LiveSession) (LiveSession, error)
		SoftDeleteSession(ctx context.Context, id int, at time.Time) error
		ListByCourse(ctx context.Context, courseIDs ...int) ([]LiveSession, error)
		ListAll(ctx context.Context) ([]LiveSession, error)
	}

	Service struct {
		repo     Repository
		courses  course.Repository
		validate *validator.Validate
		clock    core.Clock
	}
)

func NewService(repo Repository, courses course.Repository, validate *validator.Validate, clock core.Clock) *Service {
	return &Service{repo: repo, courses: courses, validate: validate, clock: clock}
}

// Schedule creates a session taught by the acting teacher.
func (svc *Service) Schedule(ctx context.Context, actor core.Actor, ns NewSession) (LiveSession, error) {
	if !(actor.IsTeacher() || actor.IsAdmin()) {
		return LiveSession{}, core.ErrForbidden
	}
	ns.Clean()
	if err := svc.validate.Struct(ns); err != nil {
		return LiveSession{}, err
	}
	if _, err := svc.courses.GetCourse(ctx, ns.CourseID); err != nil {
		return LiveSession{}, err
	}
	return svc.repo.CreateSession(ctx, LiveSession{
		CourseID:  ns.CourseID,
		TeacherID: actor.ID,
		Title:     ns.Title,
		Link:      ns.Link,
		StartTime: ns.StartTime,
		EndTime:   ns.EndTime,
	})
}

// Update edits the title, link or window of a session.
func (svc *Service) Update(ctx context.Context, actor core.Actor, id int, us UpdateSession) (LiveSession, error) {
	s, err := svc.GetManaged(ctx, actor, id)
	if err != nil {
		return LiveSession{}, err
	}
	if err = svc.validate.Struct(us); err != nil {
		return LiveSession{}, err
	}
	s = us.Apply(s)
	if (us.StartTime != nil || us.EndTime != nil) && !s.EndTime.After(s.StartTime) {
		return LiveSession{}, core.NewFieldValidationError("end_time", "end_time must be after start_time")
	}
	return svc.repo.UpdateSession(ctx, s)
}

// Cancel soft deletes a session.
func (svc *Service) Cancel(ctx context.Context, actor core.Actor, id int) error {
	if _, err := svc.GetManaged(ctx, actor, id); err != nil {
		return err
	}
	return svc.repo.SoftDeleteSession(ctx, id, svc.clock.Now())
}

// GetManaged returns a session the actor may manage, core.ErrForbidden otherwise.
func (svc *Service) GetManaged(ctx context.Context, actor core.Actor, id int) (LiveSession, error) {
	s, err := svc.repo.GetSession(ctx, id)
	if err != nil {
		return LiveSession{}, err
	}
	if !s.ManagedBy(actor) {
		return LiveSession{}, core.ErrForbidden
	}
	return s, nil
}

func (svc *Service) Get(ctx context.Context, id int) (View, error) {
	s, err := svc.repo.GetSession(ctx, id)
	if err != nil {
		return View{}, err
	}
	return NewView(s, svc.clock.Now()), nil
}

func (svc *Service) ListByCourse(ctx context.Context, courseID int) ([]View, error) {
	if _, err := svc.courses.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	sessions, err := svc.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	now := svc.clock.Now()
	views := make([]View, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, NewView(s, now))
	}
	return views, nil
}

// ListAll lists every session with its admin status.
func (svc *Service) ListAll(ctx context.Context) ([]View, error) {
	sessions, err := svc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := svc.clock.Now()
	views := make([]View, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, NewAdminView(s, now))
	}
	return views, nil
}
