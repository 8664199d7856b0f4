package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
)

type enrollmentDoc struct {
	ID         int        `bson:"_id"`
	CourseID   int        `bson:"course_id"`
	StudentID  int        `bson:"student_id"`
	EnrolledAt time.Time  `bson:"enrolled_at"`
	Progress   int        `bson:"progress"`
	DeletedAt  *time.Time `bson:"deleted_at"`
}

func (d enrollmentDoc) enrollment() enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:         d.ID,
		CourseID:   d.CourseID,
		StudentID:  d.StudentID,
		EnrolledAt: d.EnrolledAt.UTC(),
		Progress:   d.Progress,
		DeletedAt:  timeOf(d.DeletedAt),
	}
}

type enrollmentRepository struct {
	db *mongo.Database
	c  *mongo.Collection
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *mongo.Database) *enrollmentRepository {
	return &enrollmentRepository{db: db, c: db.Collection(enrollmentsCollection)}
}

var returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)

func (repo enrollmentRepository) findOne(ctx context.Context, filter bson.D, msg string) (enrollment.Enrollment, error) {
	var doc enrollmentDoc
	if err := repo.c.FindOne(ctx, filter).Decode(&doc); err != nil {
		return enrollment.Enrollment{}, trapNoDocsErr(err, enrollment.ErrNotFound, msg)
	}
	return doc.enrollment(), nil
}

func (repo enrollmentRepository) update(ctx context.Context, filter bson.D, set bson.M, msg string) (enrollment.Enrollment, error) {
	var doc enrollmentDoc
	err := repo.c.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, returnAfter).Decode(&doc)
	if err != nil {
		return enrollment.Enrollment{}, trapNoDocsErr(err, enrollment.ErrNotFound, msg)
	}
	return doc.enrollment(), nil
}

func (repo enrollmentRepository) list(ctx context.Context, filter bson.D) ([]enrollment.Enrollment, error) {
	filter = append(filter, activeFilter)
	cur, err := repo.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "finding enrollments")
	}
	var docs []enrollmentDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding enrollments")
	}
	enrollments := make([]enrollment.Enrollment, 0, len(docs))
	for _, d := range docs {
		enrollments = append(enrollments, d.enrollment())
	}
	return enrollments, nil
}

func (repo enrollmentRepository) FindEnrollment(ctx context.Context, courseID, studentID int) (enrollment.Enrollment, error) {
	return repo.findOne(ctx, bson.D{{Key: "course_id", Value: courseID}, {Key: "student_id", Value: studentID}}, "finding enrollment")
}

func (repo enrollmentRepository) CreateEnrollment(ctx context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	id, err := nextID(ctx, repo.db, enrollmentsCollection)
	if err != nil {
		return enrollment.Enrollment{}, err
	}
	doc := enrollmentDoc{
		ID:         id,
		CourseID:   e.CourseID,
		StudentID:  e.StudentID,
		EnrolledAt: e.EnrolledAt.UTC(),
		Progress:   e.Progress,
	}
	if _, err = repo.c.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
		}
		return enrollment.Enrollment{}, errors.Wrap(err, "inserting enrollment")
	}
	return doc.enrollment(), nil
}

func (repo enrollmentRepository) ReactivateEnrollment(ctx context.Context, id int, at time.Time) (enrollment.Enrollment, error) {
	return repo.update(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.M{"progress": 0, "enrolled_at": at.UTC(), "deleted_at": nil},
		"reactivating enrollment",
	)
}

func (repo enrollmentRepository) GetEnrollment(ctx context.Context, id int) (enrollment.Enrollment, error) {
	return repo.findOne(ctx, bson.D{{Key: "_id", Value: id}, activeFilter}, "finding enrollment")
}

func (repo enrollmentRepository) SetProgress(ctx context.Context, id, progress int) (enrollment.Enrollment, error) {
	return repo.update(ctx, bson.D{{Key: "_id", Value: id}, activeFilter}, bson.M{"progress": progress}, "updating progress")
}

func (repo enrollmentRepository) SoftDeleteEnrollment(ctx context.Context, id int, at time.Time) error {
	res, err := repo.c.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}, activeFilter}, bson.M{"$set": bson.M{"deleted_at": at.UTC()}})
	if err != nil {
		return errors.Wrap(err, "soft deleting enrollment")
	}
	if res.MatchedCount == 0 {
		return enrollment.ErrNotFound
	}
	return nil
}

func (repo enrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]enrollment.Enrollment, error) {
	return repo.list(ctx, bson.D{{Key: "student_id", Value: studentID}})
}

func (repo enrollmentRepository) ListByCourse(ctx context.Context, courseID int) ([]enrollment.Enrollment, error) {
	return repo.list(ctx, bson.D{{Key: "course_id", Value: courseID}})
}

func (repo enrollmentRepository) PurgeEnrollments(ctx context.Context, ids ...int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := repo.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, errors.Wrap(err, "deleting enrollments")
	}
	return int(res.DeletedCount), nil
}
