package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
)

var courseColumns = []string{"id", "title", "num_weeks", "created_at"}

type courseRow struct {
	ID        int       `db:"id"`
	Title     string    `db:"title"`
	NumWeeks  null.Int  `db:"num_weeks"`
	CreatedAt time.Time `db:"created_at"`
}

func (r courseRow) course() course.Course {
	return course.Course{
		ID:        r.ID,
		Title:     r.Title,
		NumWeeks:  r.NumWeeks.Ptr(),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	q, args, err := psql.Insert("courses").
		Columns("title", "num_weeks", "created_at").
		Values(c.Title, null.IntFromPtr(c.NumWeeks), c.CreatedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return course.Course{}, errors.Wrap(err, "building query")
	}
	if err = repo.db.GetContext(ctx, &c.ID, q, args...); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return c, nil
}

func (repo courseRepository) GetCourse(ctx context.Context, id int) (course.Course, error) {
	q, args, err := psql.Select(courseColumns...).From("courses").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return course.Course{}, errors.Wrap(err, "building query")
	}
	var row courseRow
	if err = repo.db.GetContext(ctx, &row, q, args...); err != nil {
		return course.Course{}, trapNoRowsErr(err, course.ErrNotFound, "selecting course")
	}
	return row.course(), nil
}

func (repo courseRepository) GetCoursesByID(ctx context.Context, ids ...int) ([]course.Course, error) {
	q, args, err := psql.Select(courseColumns...).From("courses").Where(sq.Eq{"id": ids}).OrderBy("id").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	var rows []courseRow
	if err = repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.course())
	}
	return courses, nil
}
