package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/services/logger"
)

// Now is the instant of every FixedClock built by NewClock.
var Now = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

func NewConfig() *core.Config {
	return &core.Config{
		Env:             "TEST",
		Build:           "test",
		AppName:         "Online Academy",
		Debug:           true,
		TestMode:        true,
		SecretKey:       "test-secret-key",
		FrontendBaseURL: "http://academy.test",
		FromEmail:       "Online Academy <noreply@academy.test>",
		LogBackend:      "zap",
		MailBackend:     "console",
		Server: core.ServerConfig{
			Address:                   ":0",
			ReadTimeout:               5 * time.Second,
			WriteTimeout:              5 * time.Second,
			RequestTimeout:            5 * time.Second,
			ShutdownTimeout:           5 * time.Second,
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: time.Minute,
		},
		Database: core.DatabaseConfig{Engine: core.EngineInMem},
	}
}

func NewLogger() core.Logger {
	return logsvc.NewZapLogger(zap.NewNop())
}

func NewValidator() *validator.Validate {
	return core.NewValidator(core.NewTranslator())
}

func NewClock() *core.FixedClock {
	return &core.FixedClock{T: Now}
}

func IntPtr(i int) *int { return &i }

func CreateUser(t *testing.T, repo user.Repository, name, email, role string) user.User {
	usr, err := repo.CreateUser(context.Background(), user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: Now,
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCourse(t *testing.T, repo course.Repository, title string, numWeeks *int) course.Course {
	c, err := repo.CreateCourse(context.Background(), course.Course{
		Title:     title,
		NumWeeks:  numWeeks,
		CreatedAt: Now,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

func Enroll(t *testing.T, repo enrollment.Repository, courseID, studentID, progress int, enrolledAt time.Time) enrollment.Enrollment {
	ctx := context.Background()
	e, err := repo.CreateEnrollment(ctx, enrollment.Enrollment{
		CourseID:   courseID,
		StudentID:  studentID,
		EnrolledAt: enrolledAt,
	})
	if err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
	if progress != 0 {
		if e, err = repo.SetProgress(ctx, e.ID, progress); err != nil {
			t.Fatalf("Enroll() failed: %v", err)
		}
	}
	return e
}

func CreateSession(
	t *testing.T,
	repo livesession.Repository,
	courseID, teacherID int,
	title, link string,
	start, end time.Time,
) livesession.LiveSession {
	s, err := repo.CreateSession(context.Background(), livesession.LiveSession{
		CourseID:  courseID,
		TeacherID: teacherID,
		Title:     title,
		Link:      link,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	return s
}
