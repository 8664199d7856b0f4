package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
)

type notificationDoc struct {
	ID          int       `bson:"_id"`
	RecipientID int       `bson:"recipient_id"`
	Title       string    `bson:"title"`
	Message     string    `bson:"message"`
	IsRead      bool      `bson:"is_read"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d notificationDoc) notification() notification.Notification {
	return notification.Notification{
		ID:          d.ID,
		RecipientID: d.RecipientID,
		Title:       d.Title,
		Message:     d.Message,
		IsRead:      d.IsRead,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

type notificationRepository struct {
	db *mongo.Database
	c  *mongo.Collection
}

var _ notification.Repository = (*notificationRepository)(nil) // interface compliance check

func NewNotificationRepository(db *mongo.Database) *notificationRepository {
	return &notificationRepository{db: db, c: db.Collection(notificationsCollection)}
}

// InsertBatch inserts the whole batch with consecutive ids. Standalone servers have no
// transactions, so on failure the documents written so far are deleted again.
func (repo notificationRepository) InsertBatch(ctx context.Context, batch []notification.Notification) ([]notification.Notification, error) {
	if len(batch) == 0 {
		return []notification.Notification{}, nil
	}
	first, err := reserveIDs(ctx, repo.db, notificationsCollection, len(batch))
	if err != nil {
		return nil, err
	}

	docs := make([]interface{}, 0, len(batch))
	ids := make([]int, 0, len(batch))
	created := make([]notification.Notification, 0, len(batch))
	for i, n := range batch {
		doc := notificationDoc{
			ID:          first + i,
			RecipientID: n.RecipientID,
			Title:       n.Title,
			Message:     n.Message,
			IsRead:      n.IsRead,
			CreatedAt:   n.CreatedAt.UTC(),
		}
		docs = append(docs, doc)
		ids = append(ids, doc.ID)
		created = append(created, doc.notification())
	}

	res, err := repo.c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil || len(res.InsertedIDs) != len(docs) {
		// the caller's context may be the reason of the failure
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, delErr := repo.c.DeleteMany(cleanupCtx, bson.M{"_id": bson.M{"$in": ids}}); delErr != nil {
			return nil, errors.Wrap(delErr, "rolling back notifications")
		}
		return nil, notification.ErrBatchFailed
	}
	return created, nil
}

func (repo notificationRepository) GetNotification(ctx context.Context, id int) (notification.Notification, error) {
	var doc notificationDoc
	if err := repo.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return notification.Notification{}, trapNoDocsErr(err, notification.ErrNotFound, "finding notification")
	}
	return doc.notification(), nil
}

func (repo notificationRepository) ListByRecipient(ctx context.Context, recipientID int) ([]notification.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := repo.c.Find(ctx, bson.M{"recipient_id": recipientID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "finding notifications")
	}
	var docs []notificationDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding notifications")
	}
	list := make([]notification.Notification, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.notification())
	}
	return list, nil
}

func (repo notificationRepository) SetRead(ctx context.Context, id int, read bool) (notification.Notification, error) {
	var doc notificationDoc
	err := repo.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_read": read}}, returnAfter).Decode(&doc)
	if err != nil {
		return notification.Notification{}, trapNoDocsErr(err, notification.ErrNotFound, "updating notification")
	}
	return doc.notification(), nil
}

func (repo notificationRepository) DeleteNotification(ctx context.Context, id int) error {
	res, err := repo.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting notification")
	}
	if res.DeletedCount == 0 {
		return notification.ErrNotFound
	}
	return nil
}
