package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
)

type notificationApi struct {
	svc      *notification.Service
	validate *validator.Validate
}

func registerNotificationAPI(g *echo.Group, deps ServerDeps) {
	api := notificationApi{svc: deps.NotificationSvc, validate: deps.Validate}

	ng := g.Group("/notifications")
	ng.GET("", api.query)
	ng.POST("", api.create, roleMiddleware(isTeacherOrAdmin))
	ng.PUT("/:id/read", api.setRead)
	ng.DELETE("/:id", api.destroy)
}

func (api *notificationApi) query(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	list, err := api.svc.ListForRecipient(ctx.Request().Context(), actor.ID)
	if err != nil {
		return errors.Wrap(err, "listing notifications")
	}
	return ctx.JSON(http.StatusOK, list)
}

func (api *notificationApi) create(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	var data notification.NewNotification
	if err = bind(ctx, &data); err != nil {
		return err
	}
	created, err := api.svc.Send(ctx.Request().Context(), actor, data)
	if err != nil {
		return errors.Wrap(err, "sending notifications")
	}
	return ctx.JSON(http.StatusCreated, created)
}

func (api *notificationApi) setRead(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	var data notification.UpdateRead
	if err = bind(ctx, &data); err != nil {
		return err
	}
	if err = api.validate.Struct(data); err != nil {
		return err
	}
	n, err := api.svc.SetRead(ctx.Request().Context(), actor, id, *data.IsRead)
	if err != nil {
		return errors.Wrap(err, "marking notification")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *notificationApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), actor, id); err != nil {
		return errors.Wrap(err, "deleting notification")
	}
	return ctx.NoContent(http.StatusNoContent)
}
