package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/curation"
	"github.com/trezcool/academia/core/progress"
	"github.com/trezcool/academia/core/quiz"
	"github.com/trezcool/academia/core/session"
	"github.com/trezcool/academia/core/user"
	"github.com/trezcool/academia/services/lmsapi"
)

var (
	errUnauthorized   = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHttpForbidden  = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound   = echo.NewHTTPError(http.StatusNotFound, "not found")
	errSessionExpired = echo.NewHTTPError(http.StatusGone, "session expired")
	errNotEnrolled    = echo.NewHTTPError(http.StatusForbidden, "not enrolled in this course")
	errQuizzesLocked  = echo.NewHTTPError(http.StatusForbidden, "complete every module to unlock the quizzes")
	errSyncFailed     = echo.NewHTTPError(http.StatusServiceUnavailable, "progress could not be saved, please try again")
	errBadGateway     = echo.NewHTTPError(http.StatusBadGateway, "remote service error")
)

// domainErrors maps the sentinel errors of the core packages to HTTP errors.
var domainErrors = map[error]*echo.HTTPError{
	course.ErrNotFound:         echo.NewHTTPError(http.StatusNotFound, course.ErrNotFound.Error()),
	course.ErrQuizNotFound:     echo.NewHTTPError(http.StatusNotFound, course.ErrQuizNotFound.Error()),
	course.ErrQuestionNotFound: echo.NewHTTPError(http.StatusNotFound, course.ErrQuestionNotFound.Error()),

	user.ErrNotFound:           echo.NewHTTPError(http.StatusNotFound, user.ErrNotFound.Error()),
	user.ErrInvalidCredentials: echo.NewHTTPError(http.StatusBadRequest, user.ErrInvalidCredentials.Error()),
	user.ErrEmailExists:        echo.NewHTTPError(http.StatusConflict, user.ErrEmailExists.Error()),
	user.ErrAlreadyEnrolled:    echo.NewHTTPError(http.StatusConflict, user.ErrAlreadyEnrolled.Error()),
	user.ErrNotEnrolled:        echo.NewHTTPError(http.StatusConflict, user.ErrNotEnrolled.Error()),

	session.ErrSyncInFlight: echo.NewHTTPError(http.StatusConflict, session.ErrSyncInFlight.Error()),
	session.ErrExpired:      errSessionExpired,
	session.ErrClosed:       echo.NewHTTPError(http.StatusGone, session.ErrClosed.Error()),

	quiz.ErrAlreadySubmitted: echo.NewHTTPError(http.StatusConflict, quiz.ErrAlreadySubmitted.Error()),
	quiz.ErrUnknownQuestion:  echo.NewHTTPError(http.StatusBadRequest, quiz.ErrUnknownQuestion.Error()),
	quiz.ErrInvalidOption:    echo.NewHTTPError(http.StatusBadRequest, quiz.ErrInvalidOption.Error()),

	curation.ErrNoAssessment: echo.NewHTTPError(http.StatusBadGateway, curation.ErrNoAssessment.Error()),
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		// checked before Cause, which unwraps it
		if progress.IsTransientSyncError(err) {
			err = errSyncFailed
		}

		origErr := errors.Cause(err)
		if herr := domainHTTPError(origErr); herr != nil {
			origErr = herr
		}

		switch origErr := origErr.(type) {
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
		case *lmsapi.Error:
			code = errBadGateway.Code
			message = errBadGateway.Message
			logger.Warn(origErr.Error(), contextPerson(ctx))
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			logger.Error(msg, errors.Wrap(err, msg), contextPerson(ctx))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code >= http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
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

// domainHTTPError looks err up without hashing it: validator.ValidationErrors is not hashable.
func domainHTTPError(err error) *echo.HTTPError {
	for sentinel, herr := range domainErrors {
		if err == sentinel {
			return herr
		}
	}
	return nil
}

func contextPerson(ctx echo.Context) core.Person {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return core.Person{}
	}
	return claims.Person()
}
