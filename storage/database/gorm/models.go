package gormrepos

import (
	"time"

	"gorm.io/gorm"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
)

// Table and column names match storage/database/migrations, gorm-postgres may run on either schema.

type Course struct {
	ID        int    `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	NumWeeks  *int
	CreatedAt time.Time `gorm:"not null"`
}

func (m Course) course() course.Course {
	return course.Course{ID: m.ID, Title: m.Title, NumWeeks: m.NumWeeks, CreatedAt: m.CreatedAt.UTC()}
}

type User struct {
	ID        int    `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null;default:''"`
	Role      string `gorm:"not null"`
	CreatedAt time.Time
}

func (m User) user() user.User {
	return user.User{ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role, CreatedAt: m.CreatedAt.UTC()}
}

type Enrollment struct {
	ID         int            `gorm:"primaryKey"`
	CourseID   int            `gorm:"not null;uniqueIndex:enrollments_course_student_key"`
	StudentID  int            `gorm:"not null;uniqueIndex:enrollments_course_student_key;index"`
	EnrolledAt time.Time      `gorm:"not null"`
	Progress   int            `gorm:"not null;default:0"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func toEnrollment(e enrollment.Enrollment) Enrollment {
	m := Enrollment{
		ID:         e.ID,
		CourseID:   e.CourseID,
		StudentID:  e.StudentID,
		EnrolledAt: e.EnrolledAt.UTC(),
		Progress:   e.Progress,
	}
	if !e.DeletedAt.IsZero() {
		m.DeletedAt = gorm.DeletedAt{Time: e.DeletedAt.UTC(), Valid: true}
	}
	return m
}

func (m Enrollment) enrollment() enrollment.Enrollment {
	e := enrollment.Enrollment{
		ID:         m.ID,
		CourseID:   m.CourseID,
		StudentID:  m.StudentID,
		EnrolledAt: m.EnrolledAt.UTC(),
		Progress:   m.Progress,
	}
	if m.DeletedAt.Valid {
		e.DeletedAt = m.DeletedAt.Time.UTC()
	}
	return e
}

type LiveSession struct {
	ID        int    `gorm:"primaryKey"`
	CourseID  int    `gorm:"not null;index"`
	TeacherID int    `gorm:"not null"`
	Title     string `gorm:"column:session_title;not null;default:''"`
	Link      string `gorm:"column:session_link;not null;default:''"`
	StartTime *time.Time
	EndTime   *time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

func timeOf(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}

func toLiveSession(s livesession.LiveSession) LiveSession {
	return LiveSession{
		ID:        s.ID,
		CourseID:  s.CourseID,
		TeacherID: s.TeacherID,
		Title:     s.Title,
		Link:      s.Link,
		StartTime: timePtr(s.StartTime),
		EndTime:   timePtr(s.EndTime),
	}
}

func (m LiveSession) session() livesession.LiveSession {
	s := livesession.LiveSession{
		ID:        m.ID,
		CourseID:  m.CourseID,
		TeacherID: m.TeacherID,
		Title:     m.Title,
		Link:      m.Link,
		StartTime: timeOf(m.StartTime),
		EndTime:   timeOf(m.EndTime),
	}
	if m.DeletedAt.Valid {
		s.DeletedAt = m.DeletedAt.Time.UTC()
	}
	return s
}

type Notification struct {
	ID          int    `gorm:"primaryKey"`
	RecipientID int    `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Message     string `gorm:"not null"`
	IsRead      bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

func (m Notification) notification() notification.Notification {
	return notification.Notification{
		ID:          m.ID,
		RecipientID: m.RecipientID,
		Title:       m.Title,
		Message:     m.Message,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

// AutoMigrate creates or updates the tables of every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Course{}, &Enrollment{}, &LiveSession{}, &Notification{})
}
