package course

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(ctx context.Context, c Course) (Course, error)
		GetCourse(ctx context.Context, id int) (Course, error)
		GetCoursesByID(ctx context.Context, ids ...int) ([]Course, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
		clock    core.Clock
	}
)

func NewService(repo Repository, validate *validator.Validate, clock core.Clock) *Service {
	return &Service{repo: repo, validate: validate, clock: clock}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	nc.Clean()
	if err := svc.validate.Struct(nc); err != nil {
		return Course{}, err
	}
	return svc.repo.CreateCourse(ctx, Course{
		Title:     nc.Title,
		NumWeeks:  nc.NumWeeks,
		CreatedAt: svc.clock.Now(),
	})
}

func (svc *Service) Get(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourse(ctx, id)
}
