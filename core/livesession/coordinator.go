package livesession

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/status"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
)

// DefaultLiveTitle is the notification title used when neither the trigger nor the session has one.
const DefaultLiveTitle = "Live session started"

const liveMailTemplate = "session_live"

// Coordinator ties live sessions to the enrollments and notifications of their course.
type Coordinator struct {
	sessions      Repository
	courses       course.Repository
	enrollments   enrollment.Repository
	notifications notification.Repository
	users         user.Repository
	mailSvc       core.EmailService // nil disables e-mail mirroring
	logger        core.Logger
	clock         core.Clock
}

type CoordinatorOpts struct {
	Sessions      Repository
	Courses       course.Repository
	Enrollments   enrollment.Repository
	Notifications notification.Repository
	Users         user.Repository
	MailSvc       core.EmailService
	Logger        core.Logger
	Clock         core.Clock
}

func NewCoordinator(opts CoordinatorOpts) *Coordinator {
	return &Coordinator{
		sessions:      opts.Sessions,
		courses:       opts.Courses,
		enrollments:   opts.Enrollments,
		notifications: opts.Notifications,
		users:         opts.Users,
		mailSvc:       opts.MailSvc,
		logger:        opts.Logger,
		clock:         opts.Clock,
	}
}

type liveMailData struct {
	Name    string
	Title   string
	Message string
	Link    string
}

// LiveMessage is the body of the notification sent when a session goes live.
func LiveMessage(title, link string) string {
	return fmt.Sprintf("%s is live now. Join here: %s", title, link)
}

// GoLive notifies every student currently enrolled in the session's course, once per student,
// in a single batch. An empty title or link falls back to the session's own.
// A course without students yields an empty list and no write.
func (c *Coordinator) GoLive(ctx context.Context, sessionID int, title, link string) ([]notification.Notification, error) {
	s, err := c.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	enrollments, err := c.enrollments.ListByCourse(ctx, s.CourseID)
	if err != nil {
		return nil, errors.Wrap(err, "listing course enrollments")
	}

	studentIDs := make([]int, 0, len(enrollments))
	for _, e := range enrollments {
		studentIDs = append(studentIDs, e.StudentID)
	}
	studentIDs = core.UniqueInts(studentIDs)
	if len(studentIDs) == 0 {
		return []notification.Notification{}, nil
	}

	title = core.CleanString(title)
	if title == "" {
		title = s.Title
	}
	if title == "" {
		title = DefaultLiveTitle
	}
	link = core.CleanString(link)
	if link == "" {
		link = s.Link
	}

	batch := notification.Batch(studentIDs, title, LiveMessage(title, link), c.clock.Now())
	created, err := c.notifications.InsertBatch(ctx, batch)
	if err != nil {
		return nil, errors.Wrap(err, "inserting notifications")
	}

	c.mirror(ctx, created, link)
	return created, nil
}

// mirror e-mails the notifications to recipients with an address. Failures are only logged.
func (c *Coordinator) mirror(ctx context.Context, created []notification.Notification, link string) {
	if c.mailSvc == nil || c.users == nil || len(created) == 0 {
		return
	}
	ids := make([]int, 0, len(created))
	for _, n := range created {
		ids = append(ids, n.RecipientID)
	}
	users, err := c.users.GetUsersByID(ctx, ids...)
	if err != nil {
		c.logger.Error("loading notification recipients", err)
		return
	}
	byID := make(map[int]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	messages := make([]*core.EmailMessage, 0, len(created))
	for _, n := range created {
		addr, ok := byID[n.RecipientID].MailAddress()
		if !ok {
			continue
		}
		messages = append(messages, &core.EmailMessage{
			To:           []mail.Address{addr},
			Subject:      n.Title,
			TemplateName: liveMailTemplate,
			TemplateData: liveMailData{Name: addr.Name, Title: n.Title, Message: n.Message, Link: link},
		})
	}
	if len(messages) > 0 {
		c.mailSvc.SendMessages(messages...)
	}
}

// ActiveForStudent lists the sessions currently live in the courses the student is enrolled in.
func (c *Coordinator) ActiveForStudent(ctx context.Context, studentID int) ([]ActiveSession, error) {
	enrollments, err := c.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "listing student enrollments")
	}
	courseIDs := make([]int, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}
	courseIDs = core.UniqueInts(courseIDs)
	if len(courseIDs) == 0 {
		return []ActiveSession{}, nil
	}

	sessions, err := c.sessions.ListByCourse(ctx, courseIDs...)
	if err != nil {
		return nil, errors.Wrap(err, "listing course sessions")
	}
	now := c.clock.Now()
	live := make([]LiveSession, 0, len(sessions))
	for _, s := range sessions {
		if s.StatusAt(now) == status.Live {
			live = append(live, s)
		}
	}
	if len(live) == 0 {
		return []ActiveSession{}, nil
	}

	courses, err := c.courses.GetCoursesByID(ctx, courseIDs...)
	if err != nil {
		return nil, errors.Wrap(err, "loading courses")
	}
	byID := make(map[int]course.Course, len(courses))
	for _, crs := range courses {
		byID[crs.ID] = crs
	}

	active := make([]ActiveSession, 0, len(live))
	for _, s := range live {
		active = append(active, ActiveSession{Session: s, Course: byID[s.CourseID]})
	}
	return active, nil
}
