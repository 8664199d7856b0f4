package inmemdb

import (
	"context"
	"sort"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
)

type notificationRepository struct {
	db *table[notification.Notification]
}

var _ notification.Repository = (*notificationRepository)(nil) // interface compliance check

func NewNotificationRepository(db *DB) *notificationRepository {
	return &notificationRepository{db: db.notification}
}

func (repo *notificationRepository) InsertBatch(_ context.Context, batch []notification.Notification) ([]notification.Notification, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	created := make([]notification.Notification, 0, len(batch))
	for _, n := range batch {
		n := n
		n.ID = repo.db.nextPK()
		repo.db.rows[n.ID] = &n
		created = append(created, n)
	}
	return created, nil
}

func (repo *notificationRepository) GetNotification(_ context.Context, id int) (notification.Notification, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if n, ok := repo.db.rows[id]; ok {
		return *n, nil
	}
	return notification.Notification{}, notification.ErrNotFound
}

func (repo *notificationRepository) ListByRecipient(_ context.Context, recipientID int) ([]notification.Notification, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	list := repo.db.filter(func(n *notification.Notification) bool { return n.RecipientID == recipientID })
	sort.SliceStable(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (repo *notificationRepository) SetRead(_ context.Context, id int, read bool) (notification.Notification, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	n, ok := repo.db.rows[id]
	if !ok {
		return notification.Notification{}, notification.ErrNotFound
	}
	n.IsRead = read
	return *n, nil
}

func (repo *notificationRepository) DeleteNotification(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.rows[id]; !ok {
		return notification.ErrNotFound
	}
	delete(repo.db.rows, id)
	return nil
}
