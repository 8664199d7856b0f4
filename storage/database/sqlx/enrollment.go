package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
)

var enrollmentColumns = []string{"id", "course_id", "student_id", "enrolled_at", "progress", "deleted_at"}

type enrollmentRow struct {
	ID         int       `db:"id"`
	CourseID   int       `db:"course_id"`
	StudentID  int       `db:"student_id"`
	EnrolledAt time.Time `db:"enrolled_at"`
	Progress   int       `db:"progress"`
	DeletedAt  null.Time `db:"deleted_at"`
}

func (r enrollmentRow) enrollment() enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:         r.ID,
		CourseID:   r.CourseID,
		StudentID:  r.StudentID,
		EnrolledAt: r.EnrolledAt.UTC(),
		Progress:   r.Progress,
		DeletedAt:  timeOf(r.DeletedAt),
	}
}

type enrollmentRepository struct {
	db *sqlx.DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *sqlx.DB) *enrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (repo enrollmentRepository) get(ctx context.Context, b sq.Sqlizer, msg string) (enrollment.Enrollment, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "building query")
	}
	var row enrollmentRow
	if err = repo.db.GetContext(ctx, &row, q, args...); err != nil {
		return enrollment.Enrollment{}, trapNoRowsErr(err, enrollment.ErrNotFound, msg)
	}
	return row.enrollment(), nil
}

func (repo enrollmentRepository) list(ctx context.Context, where sq.Eq) ([]enrollment.Enrollment, error) {
	where["deleted_at"] = nil
	q, args, err := psql.Select(enrollmentColumns...).From("enrollments").Where(where).OrderBy("id").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	var rows []enrollmentRow
	if err = repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting enrollments")
	}
	enrollments := make([]enrollment.Enrollment, 0, len(rows))
	for _, r := range rows {
		enrollments = append(enrollments, r.enrollment())
	}
	return enrollments, nil
}

func (repo enrollmentRepository) FindEnrollment(ctx context.Context, courseID, studentID int) (enrollment.Enrollment, error) {
	return repo.get(ctx,
		psql.Select(enrollmentColumns...).From("enrollments").Where(sq.Eq{"course_id": courseID, "student_id": studentID}),
		"selecting enrollment",
	)
}

func (repo enrollmentRepository) CreateEnrollment(ctx context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	created, err := repo.get(ctx,
		psql.Insert("enrollments").
			Columns("course_id", "student_id", "enrolled_at", "progress").
			Values(e.CourseID, e.StudentID, e.EnrolledAt.UTC(), e.Progress).
			Suffix("RETURNING "+sqlColumns(enrollmentColumns)),
		"inserting enrollment",
	)
	if isUniqueViolation(err) {
		return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
	}
	return created, err
}

func (repo enrollmentRepository) ReactivateEnrollment(ctx context.Context, id int, at time.Time) (enrollment.Enrollment, error) {
	return repo.get(ctx,
		psql.Update("enrollments").
			SetMap(map[string]interface{}{"progress": 0, "enrolled_at": at.UTC(), "deleted_at": nil}).
			Where(sq.Eq{"id": id}).
			Suffix("RETURNING "+sqlColumns(enrollmentColumns)),
		"reactivating enrollment",
	)
}

func (repo enrollmentRepository) GetEnrollment(ctx context.Context, id int) (enrollment.Enrollment, error) {
	return repo.get(ctx,
		psql.Select(enrollmentColumns...).From("enrollments").Where(sq.Eq{"id": id, "deleted_at": nil}),
		"selecting enrollment",
	)
}

func (repo enrollmentRepository) SetProgress(ctx context.Context, id, progress int) (enrollment.Enrollment, error) {
	return repo.get(ctx,
		psql.Update("enrollments").
			Set("progress", progress).
			Where(sq.Eq{"id": id, "deleted_at": nil}).
			Suffix("RETURNING "+sqlColumns(enrollmentColumns)),
		"updating progress",
	)
}

func (repo enrollmentRepository) SoftDeleteEnrollment(ctx context.Context, id int, at time.Time) error {
	q, args, err := psql.Update("enrollments").
		Set("deleted_at", at.UTC()).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	return execOne(ctx, repo.db, enrollment.ErrNotFound, "soft deleting enrollment", q, args...)
}

func (repo enrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]enrollment.Enrollment, error) {
	return repo.list(ctx, sq.Eq{"student_id": studentID})
}

func (repo enrollmentRepository) ListByCourse(ctx context.Context, courseID int) ([]enrollment.Enrollment, error) {
	return repo.list(ctx, sq.Eq{"course_id": courseID})
}

func (repo enrollmentRepository) PurgeEnrollments(ctx context.Context, ids ...int) (int, error) {
	q, args, err := psql.Delete("enrollments").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building query")
	}
	res, err := repo.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting enrollments")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "deleting enrollments")
	}
	return int(n), nil
}
