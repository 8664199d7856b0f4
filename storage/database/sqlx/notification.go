package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
)

var notificationColumns = []string{"id", "recipient_id", "title", "message", "is_read", "created_at"}

type notificationRow struct {
	ID          int       `db:"id"`
	RecipientID int       `db:"recipient_id"`
	Title       string    `db:"title"`
	Message     string    `db:"message"`
	IsRead      bool      `db:"is_read"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r notificationRow) notification() notification.Notification {
	return notification.Notification{
		ID:          r.ID,
		RecipientID: r.RecipientID,
		Title:       r.Title,
		Message:     r.Message,
		IsRead:      r.IsRead,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

type notificationRepository struct {
	db *sqlx.DB
}

var _ notification.Repository = (*notificationRepository)(nil) // interface compliance check

func NewNotificationRepository(db *sqlx.DB) *notificationRepository {
	return &notificationRepository{db: db}
}

func (repo notificationRepository) InsertBatch(ctx context.Context, batch []notification.Notification) ([]notification.Notification, error) {
	if len(batch) == 0 {
		return []notification.Notification{}, nil
	}
	b := psql.Insert("notifications").Columns("recipient_id", "title", "message", "is_read", "created_at")
	for _, n := range batch {
		b = b.Values(n.RecipientID, n.Title, n.Message, n.IsRead, n.CreatedAt.UTC())
	}
	q, args, err := b.Suffix("RETURNING " + sqlColumns(notificationColumns)).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	var rows []notificationRow
	if err = tx.SelectContext(ctx, &rows, q, args...); err != nil {
		_ = tx.Rollback()
		return nil, errors.Wrap(err, "inserting notifications")
	}
	if len(rows) != len(batch) {
		_ = tx.Rollback()
		return nil, notification.ErrBatchFailed
	}
	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing notifications")
	}

	created := make([]notification.Notification, 0, len(rows))
	for _, r := range rows {
		created = append(created, r.notification())
	}
	return created, nil
}

func (repo notificationRepository) get(ctx context.Context, b sq.Sqlizer, msg string) (notification.Notification, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return notification.Notification{}, errors.Wrap(err, "building query")
	}
	var row notificationRow
	if err = repo.db.GetContext(ctx, &row, q, args...); err != nil {
		return notification.Notification{}, trapNoRowsErr(err, notification.ErrNotFound, msg)
	}
	return row.notification(), nil
}

func (repo notificationRepository) GetNotification(ctx context.Context, id int) (notification.Notification, error) {
	return repo.get(ctx,
		psql.Select(notificationColumns...).From("notifications").Where(sq.Eq{"id": id}),
		"selecting notification",
	)
}

func (repo notificationRepository) ListByRecipient(ctx context.Context, recipientID int) ([]notification.Notification, error) {
	q, args, err := psql.Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	var rows []notificationRow
	if err = repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting notifications")
	}
	list := make([]notification.Notification, 0, len(rows))
	for _, r := range rows {
		list = append(list, r.notification())
	}
	return list, nil
}

func (repo notificationRepository) SetRead(ctx context.Context, id int, read bool) (notification.Notification, error) {
	return repo.get(ctx,
		psql.Update("notifications").
			Set("is_read", read).
			Where(sq.Eq{"id": id}).
			Suffix("RETURNING "+sqlColumns(notificationColumns)),
		"updating notification",
	)
}

func (repo notificationRepository) DeleteNotification(ctx context.Context, id int) error {
	q, args, err := psql.Delete("notifications").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	return execOne(ctx, repo.db, notification.ErrNotFound, "deleting notification", q, args...)
}
