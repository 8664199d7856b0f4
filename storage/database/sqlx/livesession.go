package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
)

var liveSessionColumns = []string{
	"id", "course_id", "teacher_id", "session_title", "session_link", "start_time", "end_time", "deleted_at",
}

type liveSessionRow struct {
	ID        int       `db:"id"`
	CourseID  int       `db:"course_id"`
	TeacherID int       `db:"teacher_id"`
	Title     string    `db:"session_title"`
	Link      string    `db:"session_link"`
	StartTime null.Time `db:"start_time"`
	EndTime   null.Time `db:"end_time"`
	DeletedAt null.Time `db:"deleted_at"`
}

func (r liveSessionRow) session() livesession.LiveSession {
	return livesession.LiveSession{
		ID:        r.ID,
		CourseID:  r.CourseID,
		TeacherID: r.TeacherID,
		Title:     r.Title,
		Link:      r.Link,
		StartTime: timeOf(r.StartTime),
		EndTime:   timeOf(r.EndTime),
		DeletedAt: timeOf(r.DeletedAt),
	}
}

type liveSessionRepository struct {
	db *sqlx.DB
}

var _ livesession.Repository = (*liveSessionRepository)(nil) // interface compliance check

func NewLiveSessionRepository(db *sqlx.DB) *liveSessionRepository {
	return &liveSessionRepository{db: db}
}

func (repo liveSessionRepository) get(ctx context.Context, b sq.Sqlizer, msg string) (livesession.LiveSession, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return livesession.LiveSession{}, errors.Wrap(err, "building query")
	}
	var row liveSessionRow
	if err = repo.db.GetContext(ctx, &row, q, args...); err != nil {
		return livesession.LiveSession{}, trapNoRowsErr(err, livesession.ErrNotFound, msg)
	}
	return row.session(), nil
}

func (repo liveSessionRepository) list(ctx context.Context, where sq.Eq) ([]livesession.LiveSession, error) {
	where["deleted_at"] = nil
	q, args, err := psql.Select(liveSessionColumns...).From("live_sessions").Where(where).OrderBy("id").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	var rows []liveSessionRow
	if err = repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting live sessions")
	}
	sessions := make([]livesession.LiveSession, 0, len(rows))
	for _, r := range rows {
		sessions = append(sessions, r.session())
	}
	return sessions, nil
}

func (repo liveSessionRepository) CreateSession(ctx context.Context, s livesession.LiveSession) (livesession.LiveSession, error) {
	return repo.get(ctx,
		psql.Insert("live_sessions").
			Columns("course_id", "teacher_id", "session_title", "session_link", "start_time", "end_time").
			Values(s.CourseID, s.TeacherID, s.Title, s.Link, nullTime(s.StartTime), nullTime(s.EndTime)).
			Suffix("RETURNING "+sqlColumns(liveSessionColumns)),
		"inserting live session",
	)
}

func (repo liveSessionRepository) GetSession(ctx context.Context, id int) (livesession.LiveSession, error) {
	return repo.get(ctx,
		psql.Select(liveSessionColumns...).From("live_sessions").Where(sq.Eq{"id": id, "deleted_at": nil}),
		"selecting live session",
	)
}

func (repo liveSessionRepository) UpdateSession(ctx context.Context, s livesession.LiveSession) (livesession.LiveSession, error) {
	return repo.get(ctx,
		psql.Update("live_sessions").
			SetMap(map[string]interface{}{
				"session_title": s.Title,
				"session_link":  s.Link,
				"start_time":    nullTime(s.StartTime),
				"end_time":      nullTime(s.EndTime),
			}).
			Where(sq.Eq{"id": s.ID, "deleted_at": nil}).
			Suffix("RETURNING "+sqlColumns(liveSessionColumns)),
		"updating live session",
	)
}

func (repo liveSessionRepository) SoftDeleteSession(ctx context.Context, id int, at time.Time) error {
	q, args, err := psql.Update("live_sessions").
		Set("deleted_at", at.UTC()).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	return execOne(ctx, repo.db, livesession.ErrNotFound, "soft deleting live session", q, args...)
}

func (repo liveSessionRepository) ListByCourse(ctx context.Context, courseIDs ...int) ([]livesession.LiveSession, error) {
	return repo.list(ctx, sq.Eq{"course_id": courseIDs})
}

func (repo liveSessionRepository) ListAll(ctx context.Context) ([]livesession.LiveSession, error) {
	return repo.list(ctx, sq.Eq{})
}
