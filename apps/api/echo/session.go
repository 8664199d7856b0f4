package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
)

type sessionApi struct {
	svc         *livesession.Service
	coordinator *livesession.Coordinator
	validate    *validator.Validate
}

func registerSessionAPI(g *echo.Group, deps ServerDeps) {
	api := sessionApi{svc: deps.SessionSvc, coordinator: deps.Coordinator, validate: deps.Validate}

	sg := g.Group("/sessions")
	sg.POST("", api.create, roleMiddleware(isTeacherOrAdmin))
	sg.GET("", api.queryAll, roleMiddleware(isAdmin))
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.cancel)
	sg.POST("/:id/go-live", api.goLive)

	g.GET("/me/active-sessions", api.active, roleMiddleware(isStudent))
}

func (api *sessionApi) create(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	var data livesession.NewSession
	if err = bind(ctx, &data); err != nil {
		return err
	}
	s, err := api.svc.Schedule(ctx.Request().Context(), actor, data)
	if err != nil {
		return errors.Wrap(err, "scheduling session")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *sessionApi) queryAll(ctx echo.Context) error {
	views, err := api.svc.ListAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing sessions")
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *sessionApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding session by ID")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *sessionApi) update(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	var data livesession.UpdateSession
	if err = bind(ctx, &data); err != nil {
		return err
	}
	s, err := api.svc.Update(ctx.Request().Context(), actor, id, data)
	if err != nil {
		return errors.Wrap(err, "updating session")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *sessionApi) cancel(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Cancel(ctx.Request().Context(), actor, id); err != nil {
		return errors.Wrap(err, "cancelling session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *sessionApi) goLive(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	if _, err = api.svc.GetManaged(reqCtx, actor, id); err != nil {
		return errors.Wrap(err, "finding managed session")
	}

	var data livesession.GoLive
	if err = bind(ctx, &data); err != nil {
		return err
	}
	if err = api.validate.Struct(data); err != nil {
		return err
	}

	created, err := api.coordinator.GoLive(reqCtx, id, data.Title, data.Link)
	if err != nil {
		return errors.Wrap(err, "going live")
	}
	return ctx.JSON(http.StatusOK, GoLiveResponse{Notified: len(created), Notifications: created})
}

func (api *sessionApi) active(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	active, err := api.coordinator.ActiveForStudent(ctx.Request().Context(), actor.ID)
	if err != nil {
		return errors.Wrap(err, "listing active sessions")
	}
	return ctx.JSON(http.StatusOK, active)
}

type GoLiveResponse struct {
	Notified      int                         `json:"notified"`
	Notifications []notification.Notification `json:"notifications"`
}
