package echoapi

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
)

// roleMiddleware only lets through actors for which allowed returns true.
func roleMiddleware(allowed func(a core.Actor) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, err := contextActor(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context actor")
			}
			if allowed(actor) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

func isAdmin(a core.Actor) bool          { return a.IsAdmin() }
func isStudent(a core.Actor) bool        { return a.IsStudent() }
func isTeacherOrAdmin(a core.Actor) bool { return a.IsTeacher() || a.IsAdmin() }

// timeoutMiddleware bounds the request context by d.
func timeoutMiddleware(d time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), d)
			defer cancel()
			ctx.SetRequest(ctx.Request().WithContext(reqCtx))
			return next(ctx)
		}
	}
}
