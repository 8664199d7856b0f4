package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
)

type enrollmentApi struct {
	svc      *enrollment.Service
	validate *validator.Validate
}

func registerEnrollmentAPI(g *echo.Group, deps ServerDeps) {
	api := enrollmentApi{svc: deps.EnrollmentSvc, validate: deps.Validate}

	teacherOrAdmin := roleMiddleware(isTeacherOrAdmin)

	// a "/courses/:id" group would register a catch-all over GET /courses/:id
	g.POST("/courses/:id/enrollment", api.enroll, roleMiddleware(isStudent))
	g.DELETE("/courses/:id/enrollment", api.unenroll, roleMiddleware(isStudent))
	g.GET("/courses/:id/enrollments", api.queryCourse, teacherOrAdmin)
	g.GET("/courses/:id/progress", api.distribution, teacherOrAdmin)

	eg := g.Group("/enrollments")
	eg.GET("", api.queryStudent, roleMiddleware(isStudent))

	// detail endpoints
	dg := eg.Group("/:id", ownerOrAdminMiddleware(api.svc))
	dg.GET("/status", api.status)
	dg.PUT("/progress", api.setProgress)
}

func (api *enrollmentApi) enroll(ctx echo.Context) error {
	courseID, err := idParam(ctx)
	if err != nil {
		return err
	}
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	e, err := api.svc.Enroll(ctx.Request().Context(), actor, courseID)
	if err != nil {
		return errors.Wrap(err, "enrolling")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *enrollmentApi) unenroll(ctx echo.Context) error {
	courseID, err := idParam(ctx)
	if err != nil {
		return err
	}
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Unenroll(ctx.Request().Context(), actor, courseID); err != nil {
		return errors.Wrap(err, "unenrolling")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *enrollmentApi) queryStudent(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	views, err := api.svc.ListByStudent(ctx.Request().Context(), actor.ID)
	if err != nil {
		return errors.Wrap(err, "listing student enrollments")
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *enrollmentApi) queryCourse(ctx echo.Context) error {
	courseID, err := idParam(ctx)
	if err != nil {
		return err
	}
	views, err := api.svc.ListByCourse(ctx.Request().Context(), courseID)
	if err != nil {
		return errors.Wrap(err, "listing course enrollments")
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *enrollmentApi) distribution(ctx echo.Context) error {
	courseID, err := idParam(ctx)
	if err != nil {
		return err
	}
	dist, err := api.svc.CompletionDistribution(ctx.Request().Context(), courseID)
	if err != nil {
		return errors.Wrap(err, "computing completion distribution")
	}
	return ctx.JSON(http.StatusOK, dist)
}

func (api *enrollmentApi) status(ctx echo.Context) error {
	e := ctx.Get("object").(enrollment.Enrollment)
	view, err := api.svc.Status(ctx.Request().Context(), e.ID)
	if err != nil {
		return errors.Wrap(err, "deriving enrollment status")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *enrollmentApi) setProgress(ctx echo.Context) error {
	e := ctx.Get("object").(enrollment.Enrollment)

	var data enrollment.UpdateProgress
	if err := bind(ctx, &data); err != nil {
		return err
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	if _, err := api.svc.SetProgress(reqCtx, e.ID, *data.Progress); err != nil {
		return errors.Wrap(err, "setting progress")
	}
	view, err := api.svc.Status(reqCtx, e.ID)
	if err != nil {
		return errors.Wrap(err, "deriving enrollment status")
	}
	return ctx.JSON(http.StatusOK, view)
}

// ownerOrAdminMiddleware puts the enrollment in the context as "object" when the actor may see it.
// Enrollments of other students are not found.
func ownerOrAdminMiddleware(svc *enrollment.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, err := contextActor(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context actor")
			}
			id, err := idParam(ctx)
			if err != nil {
				return err
			}
			e, err := svc.Get(ctx.Request().Context(), id)
			if err != nil {
				return errors.Wrap(err, "finding enrollment by ID")
			}
			if !e.VisibleTo(actor) {
				return errHttpNotFound
			}
			ctx.Set("object", e)
			return next(ctx)
		}
	}
}
