package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
)

type liveSessionDoc struct {
	ID        int        `bson:"_id"`
	CourseID  int        `bson:"course_id"`
	TeacherID int        `bson:"teacher_id"`
	Title     string     `bson:"session_title"`
	Link      string     `bson:"session_link"`
	StartTime *time.Time `bson:"start_time"`
	EndTime   *time.Time `bson:"end_time"`
	DeletedAt *time.Time `bson:"deleted_at"`
}

func (d liveSessionDoc) session() livesession.LiveSession {
	return livesession.LiveSession{
		ID:        d.ID,
		CourseID:  d.CourseID,
		TeacherID: d.TeacherID,
		Title:     d.Title,
		Link:      d.Link,
		StartTime: timeOf(d.StartTime),
		EndTime:   timeOf(d.EndTime),
		DeletedAt: timeOf(d.DeletedAt),
	}
}

type liveSessionRepository struct {
	db *mongo.Database
	c  *mongo.Collection
}

var _ livesession.Repository = (*liveSessionRepository)(nil) // interface compliance check

func NewLiveSessionRepository(db *mongo.Database) *liveSessionRepository {
	return &liveSessionRepository{db: db, c: db.Collection(liveSessionsCollection)}
}

func (repo liveSessionRepository) list(ctx context.Context, filter bson.D) ([]livesession.LiveSession, error) {
	filter = append(filter, activeFilter)
	cur, err := repo.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "finding live sessions")
	}
	var docs []liveSessionDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding live sessions")
	}
	sessions := make([]livesession.LiveSession, 0, len(docs))
	for _, d := range docs {
		sessions = append(sessions, d.session())
	}
	return sessions, nil
}

func (repo liveSessionRepository) CreateSession(ctx context.Context, s livesession.LiveSession) (livesession.LiveSession, error) {
	id, err := nextID(ctx, repo.db, liveSessionsCollection)
	if err != nil {
		return livesession.LiveSession{}, err
	}
	doc := liveSessionDoc{
		ID:        id,
		CourseID:  s.CourseID,
		TeacherID: s.TeacherID,
		Title:     s.Title,
		Link:      s.Link,
		StartTime: timePtr(s.StartTime),
		EndTime:   timePtr(s.EndTime),
	}
	if _, err = repo.c.InsertOne(ctx, doc); err != nil {
		return livesession.LiveSession{}, errors.Wrap(err, "inserting live session")
	}
	return doc.session(), nil
}

func (repo liveSessionRepository) GetSession(ctx context.Context, id int) (livesession.LiveSession, error) {
	var doc liveSessionDoc
	if err := repo.c.FindOne(ctx, bson.D{{Key: "_id", Value: id}, activeFilter}).Decode(&doc); err != nil {
		return livesession.LiveSession{}, trapNoDocsErr(err, livesession.ErrNotFound, "finding live session")
	}
	return doc.session(), nil
}

func (repo liveSessionRepository) UpdateSession(ctx context.Context, s livesession.LiveSession) (livesession.LiveSession, error) {
	var doc liveSessionDoc
	err := repo.c.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: s.ID}, activeFilter},
		bson.M{"$set": bson.M{
			"session_title": s.Title,
			"session_link":  s.Link,
			"start_time":    timePtr(s.StartTime),
			"end_time":      timePtr(s.EndTime),
		}},
		returnAfter,
	).Decode(&doc)
	if err != nil {
		return livesession.LiveSession{}, trapNoDocsErr(err, livesession.ErrNotFound, "updating live session")
	}
	return doc.session(), nil
}

func (repo liveSessionRepository) SoftDeleteSession(ctx context.Context, id int, at time.Time) error {
	res, err := repo.c.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}, activeFilter}, bson.M{"$set": bson.M{"deleted_at": at.UTC()}})
	if err != nil {
		return errors.Wrap(err, "soft deleting live session")
	}
	if res.MatchedCount == 0 {
		return livesession.ErrNotFound
	}
	return nil
}

func (repo liveSessionRepository) ListByCourse(ctx context.Context, courseIDs ...int) ([]livesession.LiveSession, error) {
	if len(courseIDs) == 0 {
		return []livesession.LiveSession{}, nil
	}
	return repo.list(ctx, bson.D{{Key: "course_id", Value: bson.M{"$in": courseIDs}}})
}

func (repo liveSessionRepository) ListAll(ctx context.Context) ([]livesession.LiveSession, error) {
	return repo.list(ctx, bson.D{})
}
