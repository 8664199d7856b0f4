package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
)

type courseRepository struct {
	db *gorm.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *gorm.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	m := Course{Title: c.Title, NumWeeks: c.NumWeeks, CreatedAt: c.CreatedAt.UTC()}
	if err := repo.db.WithContext(ctx).Create(&m).Error; err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return m.course(), nil
}

func (repo courseRepository) GetCourse(ctx context.Context, id int) (course.Course, error) {
	var m Course
	if err := repo.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return course.Course{}, trapNotFound(err, course.ErrNotFound, "selecting course")
	}
	return m.course(), nil
}

func (repo courseRepository) GetCoursesByID(ctx context.Context, ids ...int) ([]course.Course, error) {
	if len(ids) == 0 {
		return []course.Course{}, nil
	}
	var models []Course
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "selecting courses")
	}
	courses := make([]course.Course, 0, len(models))
	for _, m := range models {
		courses = append(courses, m.course())
	}
	return courses, nil
}

type userRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	m := User{Name: usr.Name, Email: usr.Email, Role: usr.Role, CreatedAt: usr.CreatedAt.UTC()}
	if err := repo.db.WithContext(ctx).Create(&m).Error; err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return m.user(), nil
}

func (repo userRepository) GetUser(ctx context.Context, id int) (user.User, error) {
	var m User
	if err := repo.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return user.User{}, trapNotFound(err, user.ErrNotFound, "selecting user")
	}
	return m.user(), nil
}

func (repo userRepository) GetUsersByID(ctx context.Context, ids ...int) ([]user.User, error) {
	if len(ids) == 0 {
		return []user.User{}, nil
	}
	var models []User
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "selecting users")
	}
	users := make([]user.User, 0, len(models))
	for _, m := range models {
		users = append(users, m.user())
	}
	return users, nil
}
