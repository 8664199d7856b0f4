package livesession_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/services/email"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/tests"
)

// spyNotifications counts batch writes and optionally fails them.
type spyNotifications struct {
	notification.Repository
	batches int
	fail    error
}

func (s *spyNotifications) InsertBatch(ctx context.Context, batch []notification.Notification) ([]notification.Notification, error) {
	s.batches++
	if s.fail != nil {
		return nil, s.fail
	}
	return s.Repository.InsertBatch(ctx, batch)
}

type coordFixture struct {
	repos   *storage.Repositories
	spy     *spyNotifications
	mailSvc *emailsvc.ConsoleService
	clock   *core.FixedClock
	coord   *livesession.Coordinator
}

func setupCoordinator(t *testing.T) coordFixture {
	repos := storage.OpenInMem()
	f := coordFixture{
		repos:   repos,
		spy:     &spyNotifications{Repository: repos.Notifications},
		mailSvc: emailsvc.NewConsoleServiceMock(testutil.NewConfig(), testutil.NewLogger()),
		clock:   testutil.NewClock(),
	}
	f.coord = livesession.NewCoordinator(livesession.CoordinatorOpts{
		Sessions:      repos.LiveSessions,
		Courses:       repos.Courses,
		Enrollments:   repos.Enrollments,
		Notifications: f.spy,
		Users:         repos.Users,
		MailSvc:       f.mailSvc,
		Logger:        testutil.NewLogger(),
		Clock:         f.clock,
	})
	return f
}

func TestCoordinator_GoLive(t *testing.T) {
	f := setupCoordinator(t)
	ctx := context.Background()
	teacher := testutil.CreateUser(t, f.repos.Users, "Teacher", "teacher@academy.test", core.RoleTeacher)
	crs := testutil.CreateCourse(t, f.repos.Courses, "Go", nil)
	s := testutil.CreateSession(t, f.repos.LiveSessions, crs.ID, teacher.ID, "Week 1", "https://meet.test/w1",
		testutil.Now, testutil.Now.Add(time.Hour))

	var students []int
	for _, name := range []string{"Ada", "Bob", "Cyd"} {
		usr := testutil.CreateUser(t, f.repos.Users, name, name+"@academy.test", core.RoleStudent)
		testutil.Enroll(t, f.repos.Enrollments, crs.ID, usr.ID, 0, testutil.Now)
		students = append(students, usr.ID)
	}
	// no email: notified but not mirrored
	quiet := testutil.CreateUser(t, f.repos.Users, "Quiet", "", core.RoleStudent)
	testutil.Enroll(t, f.repos.Enrollments, crs.ID, quiet.ID, 0, testutil.Now)
	students = append(students, quiet.ID)
	// unenrolled: not notified
	gone := testutil.CreateUser(t, f.repos.Users, "Gone", "gone@academy.test", core.RoleStudent)
	e := testutil.Enroll(t, f.repos.Enrollments, crs.ID, gone.ID, 0, testutil.Now)
	require.NoError(t, f.repos.Enrollments.SoftDeleteEnrollment(ctx, e.ID, testutil.Now))

	created, err := f.coord.GoLive(ctx, s.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, f.spy.batches)
	require.Len(t, created, len(students))

	recipients := make([]int, 0, len(created))
	for _, n := range created {
		recipients = append(recipients, n.RecipientID)
		assert.Equal(t, "Week 1", n.Title)
		assert.Contains(t, n.Message, "https://meet.test/w1")
		assert.False(t, n.IsRead)
		assert.Equal(t, testutil.Now, n.CreatedAt)
	}
	assert.ElementsMatch(t, students, recipients)

	for _, id := range students {
		list, err := f.repos.Notifications.ListByRecipient(ctx, id)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
	list, err := f.repos.Notifications.ListByRecipient(ctx, gone.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	sent := f.mailSvc.SentMessages()
	require.Len(t, sent, 3)
	for _, msg := range sent {
		assert.Equal(t, "Week 1", msg.Subject)
		assert.Contains(t, msg.TextContent, "https://meet.test/w1")
		assert.Contains(t, msg.HTMLContent, `href="https://meet.test/w1"`)
	}
}

func TestCoordinator_GoLive_titleAndLink(t *testing.T) {
	tests := []struct {
		name         string
		sessionTitle string
		title, link  string
		wantTitle    string
		wantLink     string
	}{
		{name: "given title and link", sessionTitle: "Week 1", title: "Started!", link: "https://meet.test/other", wantTitle: "Started!", wantLink: "https://meet.test/other"},
		{name: "session title", sessionTitle: "Week 1", wantTitle: "Week 1", wantLink: "https://meet.test/w1"},
		{name: "fallback title", sessionTitle: "", title: "  ", wantTitle: livesession.DefaultLiveTitle, wantLink: "https://meet.test/w1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupCoordinator(t)
			crs := testutil.CreateCourse(t, f.repos.Courses, "Go", nil)
			s := testutil.CreateSession(t, f.repos.LiveSessions, crs.ID, 1, tt.sessionTitle, "https://meet.test/w1",
				testutil.Now, testutil.Now.Add(time.Hour))
			testutil.Enroll(t, f.repos.Enrollments, crs.ID, 42, 0, testutil.Now)

			created, err := f.coord.GoLive(context.Background(), s.ID, tt.title, tt.link)
			require.NoError(t, err)
			require.Len(t, created, 1)
			assert.Equal(t, tt.wantTitle, created[0].Title)
			assert.Equal(t, livesession.LiveMessage(tt.wantTitle, tt.wantLink), created[0].Message)
			assert.Contains(t, created[0].Message, tt.wantLink)
		})
	}
}

func TestCoordinator_GoLive_noStudents(t *testing.T) {
	f := setupCoordinator(t)
	ctx := context.Background()
	crs := testutil.CreateCourse(t, f.repos.Courses, "Go", nil)
	s := testutil.CreateSession(t, f.repos.LiveSessions, crs.ID, 1, "Week 1", "https://meet.test/w1",
		testutil.Now, testutil.Now.Add(time.Hour))
	e := testutil.Enroll(t, f.repos.Enrollments, crs.ID, 42, 0, testutil.Now)
	require.NoError(t, f.repos.Enrollments.SoftDeleteEnrollment(ctx, e.ID, testutil.Now))

	created, err := f.coord.GoLive(ctx, s.ID, "", "")
	require.NoError(t, err)
	assert.NotNil(t, created)
	assert.Empty(t, created)
	assert.Equal(t, 0, f.spy.batches, "no store write")
	assert.Empty(t, f.mailSvc.SentMessages())
}

func TestCoordinator_GoLive_errors(t *testing.T) {
	f := setupCoordinator(t)
	ctx := context.Background()
	crs := testutil.CreateCourse(t, f.repos.Courses, "Go", nil)
	s := testutil.CreateSession(t, f.repos.LiveSessions, crs.ID, 1, "Week 1", "https://meet.test/w1",
		testutil.Now, testutil.Now.Add(time.Hour))
	testutil.Enroll(t, f.repos.Enrollments, crs.ID, 42, 0, testutil.Now)

	t.Run("unknown session", func(t *testing.T) {
		_, err := f.coord.GoLive(ctx, 404, "", "")
		assert.Equal(t, livesession.ErrNotFound, err)
	})

	t.Run("cancelled session", func(t *testing.T) {
		cancelled := testutil.CreateSession(t, f.repos.LiveSessions, crs.ID, 1, "Old", "https://meet.test/old",
			testutil.Now, testutil.Now.Add(time.Hour))
		require.NoError(t, f.repos.LiveSessions.SoftDeleteSession(ctx, cancelled.ID, testutil.Now))
		_, err := f.coord.GoLive(ctx, cancelled.ID, "", "")
		assert.Equal(t, livesession.ErrNotFound, err)
	})

	t.Run("batch failure", func(t *testing.T) {
		f.spy.fail = notification.ErrBatchFailed
		defer func() { f.spy.fail = nil }()

		created, err := f.coord.GoLive(ctx, s.ID, "", "")
		assert.Nil(t, created)
		assert.Equal(t, notification.ErrBatchFailed, errors.Cause(err))

		list, err := f.repos.Notifications.ListByRecipient(ctx, 42)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestCoordinator_GoLive_repeated(t *testing.T) {
	f := setupCoordinator(t)
	ctx := context.Background()
	crs := testutil.CreateCourse(t, f.repos.Courses, "Go", nil)
	s := testutil.CreateSession(t, f.repos.LiveSessions, crs.ID, 1, "Week 1", "https://meet.test/w1",
		testutil.Now, testutil.Now.Add(time.Hour))
	testutil.Enroll(t, f.repos.Enrollments, crs.ID, 42, 0, testutil.Now)

	for i := 0; i < 2; i++ {
		_, err := f.coord.GoLive(ctx, s.ID, "", "")
		require.NoError(t, err)
	}
	list, err := f.repos.Notifications.ListByRecipient(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, list, 2, "every trigger notifies again")
}

func TestCoordinator_ActiveForStudent(t *testing.T) {
	f := setupCoordinator(t)
	ctx := context.Background()
	a := testutil.CreateCourse(t, f.repos.Courses, "A", nil)
	b := testutil.CreateCourse(t, f.repos.Courses, "B", nil)
	c := testutil.CreateCourse(t, f.repos.Courses, "C", nil)
	now := testutil.Now

	live := testutil.CreateSession(t, f.repos.LiveSessions, a.ID, 1, "A live", "https://meet.test/a", now.Add(-10*time.Minute), now.Add(50*time.Minute))
	testutil.CreateSession(t, f.repos.LiveSessions, a.ID, 1, "A later", "https://meet.test/a2", now.Add(time.Hour), now.Add(2*time.Hour))
	testutil.CreateSession(t, f.repos.LiveSessions, a.ID, 1, "A past", "https://meet.test/a3", now.Add(-2*time.Hour), now.Add(-time.Hour))
	cancelled := testutil.CreateSession(t, f.repos.LiveSessions, a.ID, 1, "A cancelled", "https://meet.test/a4", now.Add(-time.Minute), now.Add(time.Hour))
	require.NoError(t, f.repos.LiveSessions.SoftDeleteSession(ctx, cancelled.ID, now))
	testutil.CreateSession(t, f.repos.LiveSessions, b.ID, 1, "B live", "https://meet.test/b", now.Add(-10*time.Minute), now.Add(50*time.Minute))
	testutil.CreateSession(t, f.repos.LiveSessions, c.ID, 1, "C live", "https://meet.test/c", now.Add(-10*time.Minute), now.Add(50*time.Minute))

	testutil.Enroll(t, f.repos.Enrollments, a.ID, 42, 0, now)
	dropped := testutil.Enroll(t, f.repos.Enrollments, c.ID, 42, 0, now)
	require.NoError(t, f.repos.Enrollments.SoftDeleteEnrollment(ctx, dropped.ID, now))

	active, err := f.coord.ActiveForStudent(ctx, 42)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, live.ID, active[0].Session.ID)
	assert.Equal(t, a, active[0].Course)

	t.Run("not enrolled anywhere", func(t *testing.T) {
		active, err := f.coord.ActiveForStudent(ctx, 99)
		require.NoError(t, err)
		assert.NotNil(t, active)
		assert.Empty(t, active)
	})

	t.Run("after the session ended", func(t *testing.T) {
		f.clock.Advance(time.Hour)
		defer func() { f.clock.T = now }()

		active, err := f.coord.ActiveForStudent(ctx, 42)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "A later", active[0].Session.Title)
	})
}
