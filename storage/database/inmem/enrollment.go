package inmemdb

import (
	"context"
	"time"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
)

type enrollmentRepository struct {
	db *table[enrollment.Enrollment]
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) *enrollmentRepository {
	return &enrollmentRepository{db: db.enrollment}
}

// find must be called with a lock held.
func (repo *enrollmentRepository) find(courseID, studentID int) *enrollment.Enrollment {
	for _, e := range repo.db.rows {
		if e.CourseID == courseID && e.StudentID == studentID {
			return e
		}
	}
	return nil
}

// active must be called with a lock held.
func (repo *enrollmentRepository) active(id int) (*enrollment.Enrollment, error) {
	e, ok := repo.db.rows[id]
	if !ok || !e.IsActive() {
		return nil, enrollment.ErrNotFound
	}
	return e, nil
}

func (repo *enrollmentRepository) FindEnrollment(_ context.Context, courseID, studentID int) (enrollment.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if e := repo.find(courseID, studentID); e != nil {
		return *e, nil
	}
	return enrollment.Enrollment{}, enrollment.ErrNotFound
}

func (repo *enrollmentRepository) CreateEnrollment(_ context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if repo.find(e.CourseID, e.StudentID) != nil {
		return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
	}
	e.ID = repo.db.nextPK()
	repo.db.rows[e.ID] = &e
	return e, nil
}

func (repo *enrollmentRepository) ReactivateEnrollment(_ context.Context, id int, at time.Time) (enrollment.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	e, ok := repo.db.rows[id]
	if !ok {
		return enrollment.Enrollment{}, enrollment.ErrNotFound
	}
	e.Progress = 0
	e.EnrolledAt = at
	e.DeletedAt = time.Time{}
	return *e, nil
}

func (repo *enrollmentRepository) GetEnrollment(_ context.Context, id int) (enrollment.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	e, err := repo.active(id)
	if err != nil {
		return enrollment.Enrollment{}, err
	}
	return *e, nil
}

func (repo *enrollmentRepository) SetProgress(_ context.Context, id, progress int) (enrollment.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	e, err := repo.active(id)
	if err != nil {
		return enrollment.Enrollment{}, err
	}
	e.Progress = progress
	return *e, nil
}

func (repo *enrollmentRepository) SoftDeleteEnrollment(_ context.Context, id int, at time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	e, err := repo.active(id)
	if err != nil {
		return err
	}
	e.DeletedAt = at
	return nil
}

func (repo *enrollmentRepository) ListByStudent(_ context.Context, studentID int) ([]enrollment.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	return repo.db.filter(func(e *enrollment.Enrollment) bool {
		return e.IsActive() && e.StudentID == studentID
	}), nil
}

func (repo *enrollmentRepository) ListByCourse(_ context.Context, courseID int) ([]enrollment.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	return repo.db.filter(func(e *enrollment.Enrollment) bool {
		return e.IsActive() && e.CourseID == courseID
	}), nil
}

func (repo *enrollmentRepository) PurgeEnrollments(_ context.Context, ids ...int) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var n int
	for _, id := range ids {
		if _, ok := repo.db.rows[id]; ok {
			delete(repo.db.rows, id)
			n++
		}
	}
	return n, nil
}
