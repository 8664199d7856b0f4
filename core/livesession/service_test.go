package livesession_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/status"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/tests"
)

func setupService(t *testing.T) (*livesession.Service, *storage.Repositories, *core.FixedClock) {
	repos := storage.OpenInMem()
	clock := testutil.NewClock()
	return livesession.NewService(repos.LiveSessions, repos.Courses, testutil.NewValidator(), clock), repos, clock
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestService_Schedule(t *testing.T) {
	svc, repos, _ := setupService(t)
	ctx := context.Background()
	crs := testutil.CreateCourse(t, repos.Courses, "Go", nil)
	teacher := core.Actor{ID: 5, Role: core.RoleTeacher}
	valid := livesession.NewSession{
		CourseID:  crs.ID,
		Title:     "  Week 1 ",
		Link:      "https://meet.test/w1",
		StartTime: testutil.Now,
		EndTime:   testutil.Now.Add(time.Hour),
	}

	t.Run("students may not schedule", func(t *testing.T) {
		_, err := svc.Schedule(ctx, core.Actor{ID: 9, Role: core.RoleStudent}, valid)
		assert.Equal(t, core.ErrForbidden, err)
	})

	invalid := []struct {
		name   string
		mutate func(ns *livesession.NewSession)
		field  string
	}{
		{name: "missing title", mutate: func(ns *livesession.NewSession) { ns.Title = " " }, field: "session_title"},
		{name: "bad link", mutate: func(ns *livesession.NewSession) { ns.Link = "not a link" }, field: "session_link"},
		{name: "end before start", mutate: func(ns *livesession.NewSession) { ns.EndTime = ns.StartTime.Add(-time.Minute) }, field: "end_time"},
		{name: "missing start", mutate: func(ns *livesession.NewSession) { ns.StartTime = time.Time{} }, field: "start_time"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			ns := valid
			tt.mutate(&ns)
			_, err := svc.Schedule(ctx, teacher, ns)
			require.Error(t, err)
			verrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "got %T", err)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}

	t.Run("unknown course", func(t *testing.T) {
		ns := valid
		ns.CourseID = 404
		_, err := svc.Schedule(ctx, teacher, ns)
		assert.Equal(t, course.ErrNotFound, err)
	})

	t.Run("scheduled", func(t *testing.T) {
		s, err := svc.Schedule(ctx, teacher, valid)
		require.NoError(t, err)
		assert.Equal(t, teacher.ID, s.TeacherID)
		assert.Equal(t, "Week 1", s.Title)
		assert.Equal(t, crs.ID, s.CourseID)
	})
}

func TestService_Update(t *testing.T) {
	svc, repos, _ := setupService(t)
	ctx := context.Background()
	crs := testutil.CreateCourse(t, repos.Courses, "Go", nil)
	owner := core.Actor{ID: 5, Role: core.RoleTeacher}
	s := testutil.CreateSession(t, repos.LiveSessions, crs.ID, owner.ID, "Week 1", "https://meet.test/w1",
		testutil.Now, testutil.Now.Add(time.Hour))

	t.Run("other teacher", func(t *testing.T) {
		_, err := svc.Update(ctx, core.Actor{ID: 6, Role: core.RoleTeacher}, s.ID, livesession.UpdateSession{Title: strPtr("x")})
		assert.Equal(t, core.ErrForbidden, err)
	})

	t.Run("window must stay ordered", func(t *testing.T) {
		_, err := svc.Update(ctx, owner, s.ID, livesession.UpdateSession{EndTime: timePtr(testutil.Now.Add(-time.Hour))})
		assert.True(t, core.IsValidationError(err))
	})

	t.Run("owner moves the window", func(t *testing.T) {
		start := testutil.Now.Add(24 * time.Hour)
		got, err := svc.Update(ctx, owner, s.ID, livesession.UpdateSession{
			Link:      strPtr("https://meet.test/new"),
			StartTime: timePtr(start),
			EndTime:   timePtr(start.Add(time.Hour)),
		})
		require.NoError(t, err)
		assert.Equal(t, "Week 1", got.Title)
		assert.Equal(t, "https://meet.test/new", got.Link)
		assert.Equal(t, start, got.StartTime)
	})

	t.Run("admin renames", func(t *testing.T) {
		got, err := svc.Update(ctx, core.Actor{ID: 1, Role: core.RoleAdminOwner}, s.ID, livesession.UpdateSession{Title: strPtr("Week 1 (moved)")})
		require.NoError(t, err)
		assert.Equal(t, "Week 1 (moved)", got.Title)
	})
}

func TestService_Cancel(t *testing.T) {
	svc, repos, _ := setupService(t)
	ctx := context.Background()
	crs := testutil.CreateCourse(t, repos.Courses, "Go", nil)
	owner := core.Actor{ID: 5, Role: core.RoleTeacher}
	s := testutil.CreateSession(t, repos.LiveSessions, crs.ID, owner.ID, "Week 1", "https://meet.test/w1",
		testutil.Now, testutil.Now.Add(time.Hour))

	assert.Equal(t, core.ErrForbidden, svc.Cancel(ctx, core.Actor{ID: 9, Role: core.RoleStudent}, s.ID))
	require.NoError(t, svc.Cancel(ctx, owner, s.ID))
	assert.Equal(t, livesession.ErrNotFound, svc.Cancel(ctx, owner, s.ID))

	_, err := svc.Get(ctx, s.ID)
	assert.Equal(t, livesession.ErrNotFound, err)
	views, err := svc.ListByCourse(ctx, crs.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestService_views(t *testing.T) {
	svc, repos, clock := setupService(t)
	ctx := context.Background()
	crs := testutil.CreateCourse(t, repos.Courses, "Go", nil)
	now := clock.Now()

	upcoming := testutil.CreateSession(t, repos.LiveSessions, crs.ID, 5, "Next", "https://meet.test/1", now.Add(time.Hour), now.Add(2*time.Hour))
	live := testutil.CreateSession(t, repos.LiveSessions, crs.ID, 5, "Now", "https://meet.test/2", now.Add(-time.Hour), now.Add(time.Hour))
	ended := testutil.CreateSession(t, repos.LiveSessions, crs.ID, 5, "Past", "https://meet.test/3", now.Add(-2*time.Hour), now.Add(-time.Hour))
	partial := testutil.CreateSession(t, repos.LiveSessions, crs.ID, 5, "Partial", "https://meet.test/4", now.Add(-time.Hour), time.Time{})

	v, err := svc.Get(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, status.Live, v.Status)

	views, err := svc.ListByCourse(ctx, crs.ID)
	require.NoError(t, err)
	got := make(map[int]status.Session, len(views))
	for _, v := range views {
		got[v.ID] = v.Status
	}
	assert.Equal(t, map[int]status.Session{
		upcoming.ID: status.Upcoming,
		live.ID:     status.Live,
		ended.ID:    status.Ended,
		partial.ID:  status.Ended,
	}, got)

	adminViews, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, adminViews, 4)
	assert.Equal(t, status.Unknown, adminViews[3].Status)
	assert.Equal(t, status.Upcoming, adminViews[0].Status)

	_, err = svc.ListByCourse(ctx, 404)
	assert.Equal(t, course.ErrNotFound, err)
}
