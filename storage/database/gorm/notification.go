package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
)

type notificationRepository struct {
	db *gorm.DB
}

var _ notification.Repository = (*notificationRepository)(nil) // interface compliance check

func NewNotificationRepository(db *gorm.DB) *notificationRepository {
	return &notificationRepository{db: db}
}

func (repo notificationRepository) InsertBatch(ctx context.Context, batch []notification.Notification) ([]notification.Notification, error) {
	if len(batch) == 0 {
		return []notification.Notification{}, nil
	}
	models := make([]Notification, 0, len(batch))
	for _, n := range batch {
		models = append(models, Notification{
			RecipientID: n.RecipientID,
			Title:       n.Title,
			Message:     n.Message,
			IsRead:      n.IsRead,
			CreatedAt:   n.CreatedAt.UTC(),
		})
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Create(&models)
		if res.Error != nil {
			return res.Error
		}
		if int(res.RowsAffected) != len(models) {
			return notification.ErrBatchFailed
		}
		return nil
	})
	if err != nil {
		if err == notification.ErrBatchFailed {
			return nil, err
		}
		return nil, errors.Wrap(err, "inserting notifications")
	}

	created := make([]notification.Notification, 0, len(models))
	for _, m := range models {
		created = append(created, m.notification())
	}
	return created, nil
}

func (repo notificationRepository) GetNotification(ctx context.Context, id int) (notification.Notification, error) {
	var m Notification
	if err := repo.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return notification.Notification{}, trapNotFound(err, notification.ErrNotFound, "selecting notification")
	}
	return m.notification(), nil
}

func (repo notificationRepository) ListByRecipient(ctx context.Context, recipientID int) ([]notification.Notification, error) {
	var models []Notification
	err := repo.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "selecting notifications")
	}
	list := make([]notification.Notification, 0, len(models))
	for _, m := range models {
		list = append(list, m.notification())
	}
	return list, nil
}

func (repo notificationRepository) SetRead(ctx context.Context, id int, read bool) (notification.Notification, error) {
	tx := repo.db.WithContext(ctx).Model(&Notification{}).Where("id = ?", id).Update("is_read", read)
	if err := checkAffected(tx, notification.ErrNotFound, "updating notification"); err != nil {
		return notification.Notification{}, err
	}
	return repo.GetNotification(ctx, id)
}

func (repo notificationRepository) DeleteNotification(ctx context.Context, id int) error {
	tx := repo.db.WithContext(ctx).Delete(&Notification{}, id)
	return checkAffected(tx, notification.ErrNotFound, "deleting notification")
}
