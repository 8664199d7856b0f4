package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
)

type courseDoc struct {
	ID        int       `bson:"_id"`
	Title     string    `bson:"title"`
	NumWeeks  *int      `bson:"num_weeks"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d courseDoc) course() course.Course {
	return course.Course{ID: d.ID, Title: d.Title, NumWeeks: d.NumWeeks, CreatedAt: d.CreatedAt.UTC()}
}

type courseRepository struct {
	db *mongo.Database
	c  *mongo.Collection
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *mongo.Database) *courseRepository {
	return &courseRepository{db: db, c: db.Collection(coursesCollection)}
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	id, err := nextID(ctx, repo.db, coursesCollection)
	if err != nil {
		return course.Course{}, err
	}
	doc := courseDoc{ID: id, Title: c.Title, NumWeeks: c.NumWeeks, CreatedAt: c.CreatedAt.UTC()}
	if _, err = repo.c.InsertOne(ctx, doc); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return doc.course(), nil
}

func (repo courseRepository) GetCourse(ctx context.Context, id int) (course.Course, error) {
	var doc courseDoc
	if err := repo.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return course.Course{}, trapNoDocsErr(err, course.ErrNotFound, "finding course")
	}
	return doc.course(), nil
}

func (repo courseRepository) GetCoursesByID(ctx context.Context, ids ...int) ([]course.Course, error) {
	if len(ids) == 0 {
		return []course.Course{}, nil
	}
	cur, err := repo.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "finding courses")
	}
	var docs []courseDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding courses")
	}
	courses := make([]course.Course, 0, len(docs))
	for _, d := range docs {
		courses = append(courses, d.course())
	}
	return courses, nil
}

type userDoc struct {
	ID        int       `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d userDoc) user() user.User {
	return user.User{ID: d.ID, Name: d.Name, Email: d.Email, Role: d.Role, CreatedAt: d.CreatedAt.UTC()}
}

type userRepository struct {
	db *mongo.Database
	c  *mongo.Collection
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *mongo.Database) *userRepository {
	return &userRepository{db: db, c: db.Collection(usersCollection)}
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	id, err := nextID(ctx, repo.db, usersCollection)
	if err != nil {
		return user.User{}, err
	}
	doc := userDoc{ID: id, Name: usr.Name, Email: usr.Email, Role: usr.Role, CreatedAt: usr.CreatedAt.UTC()}
	if _, err = repo.c.InsertOne(ctx, doc); err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return doc.user(), nil
}

func (repo userRepository) GetUser(ctx context.Context, id int) (user.User, error) {
	var doc userDoc
	if err := repo.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return user.User{}, trapNoDocsErr(err, user.ErrNotFound, "finding user")
	}
	return doc.user(), nil
}

func (repo userRepository) GetUsersByID(ctx context.Context, ids ...int) ([]user.User, error) {
	if len(ids) == 0 {
		return []user.User{}, nil
	}
	cur, err := repo.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "finding users")
	}
	var docs []userDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding users")
	}
	users := make([]user.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.user())
	}
	return users, nil
}
