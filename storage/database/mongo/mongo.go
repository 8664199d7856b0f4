package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	countersCollection      = "counters"
	coursesCollection       = "courses"
	usersCollection         = "users"
	enrollmentsCollection   = "enrollments"
	liveSessionsCollection  = "live_sessions"
	notificationsCollection = "notifications"
)

// activeFilter matches documents without a deleted_at, or with a null one.
var activeFilter = bson.E{Key: "deleted_at", Value: nil}

// EnsureIndexes creates the indexes the repositories rely on, the unique enrollment pair included.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		enrollmentsCollection: {
			{
				Keys:    bson.D{{Key: "course_id", Value: 1}, {Key: "student_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("idx_enrollments_course_student"),
			},
			{
				Keys:    bson.D{{Key: "student_id", Value: 1}},
				Options: options.Index().SetName("idx_enrollments_student"),
			},
		},
		liveSessionsCollection: {
			{
				Keys:    bson.D{{Key: "course_id", Value: 1}},
				Options: options.Index().SetName("idx_live_sessions_course"),
			},
		},
		notificationsCollection: {
			{
				Keys:    bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_notifications_recipient"),
			},
		},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "creating %s indexes", coll)
		}
	}
	return nil
}

// reserveIDs allocates n consecutive numeric ids for collection and returns the first one.
func reserveIDs(ctx context.Context, db *mongo.Database, collection string, n int) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	err := db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"seq": n}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, errors.Wrapf(err, "allocating %s ids", collection)
	}
	return counter.Seq - n + 1, nil
}

func nextID(ctx context.Context, db *mongo.Database, collection string) (int, error) {
	return reserveIDs(ctx, db, collection, 1)
}

// trapNoDocsErr maps mongo "no documents" err to notFound
func trapNoDocsErr(err error, notFound error, msg string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	return errors.Wrap(err, msg)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

func timeOf(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
