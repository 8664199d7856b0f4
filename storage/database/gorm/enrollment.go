package gormrepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
)

type enrollmentRepository struct {
	db *gorm.DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *gorm.DB) *enrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (repo enrollmentRepository) first(tx *gorm.DB, msg string, conds ...interface{}) (enrollment.Enrollment, error) {
	var m Enrollment
	if err := tx.First(&m, conds...).Error; err != nil {
		return enrollment.Enrollment{}, trapNotFound(err, enrollment.ErrNotFound, msg)
	}
	return m.enrollment(), nil
}

func (repo enrollmentRepository) list(ctx context.Context, query string, arg interface{}) ([]enrollment.Enrollment, error) {
	var models []Enrollment
	if err := repo.db.WithContext(ctx).Where(query, arg).Order("id").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "selecting enrollments")
	}
	enrollments := make([]enrollment.Enrollment, 0, len(models))
	for _, m := range models {
		enrollments = append(enrollments, m.enrollment())
	}
	return enrollments, nil
}

func (repo enrollmentRepository) FindEnrollment(ctx context.Context, courseID, studentID int) (enrollment.Enrollment, error) {
	return repo.first(
		repo.db.WithContext(ctx).Unscoped().Where("course_id = ? AND student_id = ?", courseID, studentID),
		"selecting enrollment",
	)
}

func (repo enrollmentRepository) CreateEnrollment(ctx context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	m := toEnrollment(e)
	m.ID = 0
	if err := repo.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
		}
		return enrollment.Enrollment{}, errors.Wrap(err, "inserting enrollment")
	}
	return m.enrollment(), nil
}

func (repo enrollmentRepository) ReactivateEnrollment(ctx context.Context, id int, at time.Time) (enrollment.Enrollment, error) {
	db := repo.db.WithContext(ctx).Unscoped()
	tx := db.Model(&Enrollment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"progress":    0,
		"enrolled_at": at.UTC(),
		"deleted_at":  nil,
	})
	if err := checkAffected(tx, enrollment.ErrNotFound, "reactivating enrollment"); err != nil {
		return enrollment.Enrollment{}, err
	}
	return repo.first(repo.db.WithContext(ctx), "selecting enrollment", id)
}

func (repo enrollmentRepository) GetEnrollment(ctx context.Context, id int) (enrollment.Enrollment, error) {
	return repo.first(repo.db.WithContext(ctx), "selecting enrollment", id)
}

func (repo enrollmentRepository) SetProgress(ctx context.Context, id, progress int) (enrollment.Enrollment, error) {
	tx := repo.db.WithContext(ctx).Model(&Enrollment{}).Where("id = ?", id).Update("progress", progress)
	if err := checkAffected(tx, enrollment.ErrNotFound, "updating progress"); err != nil {
		return enrollment.Enrollment{}, err
	}
	return repo.first(repo.db.WithContext(ctx), "selecting enrollment", id)
}

func (repo enrollmentRepository) SoftDeleteEnrollment(ctx context.Context, id int, at time.Time) error {
	// the soft delete scope restricts the update to active rows
	tx := repo.db.WithContext(ctx).Model(&Enrollment{}).Where("id = ?", id).Update("deleted_at", at.UTC())
	return checkAffected(tx, enrollment.ErrNotFound, "soft deleting enrollment")
}

func (repo enrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]enrollment.Enrollment, error) {
	return repo.list(ctx, "student_id = ?", studentID)
}

func (repo enrollmentRepository) ListByCourse(ctx context.Context, courseID int) ([]enrollment.Enrollment, error) {
	return repo.list(ctx, "course_id = ?", courseID)
}

func (repo enrollmentRepository) PurgeEnrollments(ctx context.Context, ids ...int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tx := repo.db.WithContext(ctx).Unscoped().Delete(&Enrollment{}, ids)
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "deleting enrollments")
	}
	return int(tx.RowsAffected), nil
}
