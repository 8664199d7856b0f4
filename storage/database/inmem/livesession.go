package inmemdb

import (
	"context"
	"time"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
)

type liveSessionRepository struct {
	db *table[livesession.LiveSession]
}

var _ livesession.Repository = (*liveSessionRepository)(nil) // interface compliance check

func NewLiveSessionRepository(db *DB) *liveSessionRepository {
	return &liveSessionRepository{db: db.liveSession}
}

// active must be called with a lock held.
func (repo *liveSessionRepository) active(id int) (*livesession.LiveSession, error) {
	s, ok := repo.db.rows[id]
	if !ok || !s.IsActive() {
		return nil, livesession.ErrNotFound
	}
	return s, nil
}

func (repo *liveSessionRepository) CreateSession(_ context.Context, s livesession.LiveSession) (livesession.LiveSession, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s.ID = repo.db.nextPK()
	repo.db.rows[s.ID] = &s
	return s, nil
}

func (repo *liveSessionRepository) GetSession(_ context.Context, id int) (livesession.LiveSession, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	s, err := repo.active(id)
	if err != nil {
		return livesession.LiveSession{}, err
	}
	return *s, nil
}

func (repo *liveSessionRepository) UpdateSession(_ context.Context, s livesession.LiveSession) (livesession.LiveSession, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, err := repo.active(s.ID)
	if err != nil {
		return livesession.LiveSession{}, err
	}
	orig.Title = s.Title
	orig.Link = s.Link
	orig.StartTime = s.StartTime
	orig.EndTime = s.EndTime
	return *orig, nil
}

func (repo *liveSessionRepository) SoftDeleteSession(_ context.Context, id int, at time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s, err := repo.active(id)
	if err != nil {
		return err
	}
	s.DeletedAt = at
	return nil
}

func (repo *liveSessionRepository) ListByCourse(_ context.Context, courseIDs ...int) ([]livesession.LiveSession, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	set := idSet(courseIDs)
	return repo.db.filter(func(s *livesession.LiveSession) bool {
		_, ok := set[s.CourseID]
		return ok && s.IsActive()
	}), nil
}

func (repo *liveSessionRepository) ListAll(_ context.Context) ([]livesession.LiveSession, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	return repo.db.filter(func(s *livesession.LiveSession) bool { return s.IsActive() }), nil
}
