package gormrepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
)

type liveSessionRepository struct {
	db *gorm.DB
}

var _ livesession.Repository = (*liveSessionRepository)(nil) // interface compliance check

func NewLiveSessionRepository(db *gorm.DB) *liveSessionRepository {
	return &liveSessionRepository{db: db}
}

func (repo liveSessionRepository) list(tx *gorm.DB) ([]livesession.LiveSession, error) {
	var models []LiveSession
	if err := tx.Order("id").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "selecting live sessions")
	}
	sessions := make([]livesession.LiveSession, 0, len(models))
	for _, m := range models {
		sessions = append(sessions, m.session())
	}
	return sessions, nil
}

func (repo liveSessionRepository) CreateSession(ctx context.Context, s livesession.LiveSession) (livesession.LiveSession, error) {
	m := toLiveSession(s)
	m.ID = 0
	if err := repo.db.WithContext(ctx).Create(&m).Error; err != nil {
		return livesession.LiveSession{}, errors.Wrap(err, "inserting live session")
	}
	return m.session(), nil
}

func (repo liveSessionRepository) GetSession(ctx context.Context, id int) (livesession.LiveSession, error) {
	var m LiveSession
	if err := repo.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return livesession.LiveSession{}, trapNotFound(err, livesession.ErrNotFound, "selecting live session")
	}
	return m.session(), nil
}

func (repo liveSessionRepository) UpdateSession(ctx context.Context, s livesession.LiveSession) (livesession.LiveSession, error) {
	m := toLiveSession(s)
	tx := repo.db.WithContext(ctx).Model(&LiveSession{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"session_title": m.Title,
		"session_link":  m.Link,
		"start_time":    m.StartTime,
		"end_time":      m.EndTime,
	})
	if err := checkAffected(tx, livesession.ErrNotFound, "updating live session"); err != nil {
		return livesession.LiveSession{}, err
	}
	return repo.GetSession(ctx, s.ID)
}

func (repo liveSessionRepository) SoftDeleteSession(ctx context.Context, id int, at time.Time) error {
	tx := repo.db.WithContext(ctx).Model(&LiveSession{}).Where("id = ?", id).Update("deleted_at", at.UTC())
	return checkAffected(tx, livesession.ErrNotFound, "soft deleting live session")
}

func (repo liveSessionRepository) ListByCourse(ctx context.Context, courseIDs ...int) ([]livesession.LiveSession, error) {
	if len(courseIDs) == 0 {
		return []livesession.LiveSession{}, nil
	}
	return repo.list(repo.db.WithContext(ctx).Where("course_id IN ?", courseIDs))
}

func (repo liveSessionRepository) ListAll(ctx context.Context) ([]livesession.LiveSession, error) {
	return repo.list(repo.db.WithContext(ctx))
}
