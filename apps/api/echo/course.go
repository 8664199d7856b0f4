package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
)

type courseApi struct {
	svc        *course.Service
	sessionSvc *livesession.Service
}

func registerCourseAPI(g *echo.Group, deps ServerDeps) {
	api := courseApi{svc: deps.CourseSvc, sessionSvc: deps.SessionSvc}

	cg := g.Group("/courses")
	cg.POST("", api.create, roleMiddleware(isTeacherOrAdmin))
	cg.GET("/:id", api.retrieve)
	cg.GET("/:id/sessions", api.sessions)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := bind(ctx, &data); err != nil {
		return err
	}
	crs, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	crs, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding course by ID")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) sessions(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	views, err := api.sessionSvc.ListByCourse(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "listing course sessions")
	}
	return ctx.JSON(http.StatusOK, views)
}
