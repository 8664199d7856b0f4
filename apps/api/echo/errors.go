package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
)

var (
	errUnauthorized   = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errRefreshExpired = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHttpForbidden  = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound   = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// domainErrors maps the sentinel errors of the core packages to HTTP errors.
var domainErrors = map[error]*echo.HTTPError{
	core.ErrForbidden:             errHttpForbidden,
	course.ErrNotFound:            echo.NewHTTPError(http.StatusNotFound, course.ErrNotFound.Error()),
	user.ErrNotFound:              echo.NewHTTPError(http.StatusNotFound, user.ErrNotFound.Error()),
	enrollment.ErrNotFound:        echo.NewHTTPError(http.StatusNotFound, enrollment.ErrNotFound.Error()),
	enrollment.ErrAlreadyEnrolled: echo.NewHTTPError(http.StatusConflict, enrollment.ErrAlreadyEnrolled.Error()),
	livesession.ErrNotFound:       echo.NewHTTPError(http.StatusNotFound, livesession.ErrNotFound.Error()),
	notification.ErrNotFound:      echo.NewHTTPError(http.StatusNotFound, notification.ErrNotFound.Error()),
}

// domainHTTPError compares cause to each sentinel. Causes may be unhashable (validator.ValidationErrors).
func domainHTTPError(cause error) (*echo.HTTPError, bool) {
	for sentinel, herr := range domainErrors {
		if cause == sentinel {
			return herr, true
		}
	}
	return nil, false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := errors.Cause(err)
		if herr, ok := domainHTTPError(cause); ok {
			cause = herr
		}

		switch origErr := cause.(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			args := []interface{}{errors.Wrap(err, msg), map[string]interface{}{
				"request_id": ctx.Response().Header().Get(echo.HeaderXRequestID),
				"path":       ctx.Path(),
			}}
			if actor, aErr := contextActor(ctx); aErr == nil {
				args = append(args, actor)
			}
			logger.Error(msg, args...)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
