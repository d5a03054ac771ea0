package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/grades"
	"github.com/trezcool/darasa/core/roster"
)

var errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

// notFound reports whether err is one of the ledgers' not-found sentinels.
func notFound(err error) bool {
	switch errors.Cause(err) {
	case roster.ErrStudentNotFound, roster.ErrSubjectNotFound,
		calendar.ErrPeriodNotFound, grades.ErrTypeNotFound, grades.ErrEntryNotFound:
		return true
	default:
		return false
	}
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
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
		default:
			if notFound(err) {
				code = http.StatusNotFound
				message = http.StatusText(http.StatusNotFound)
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			logger.Error(msg, errors.Wrap(err, msg))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if !ctx.Response().Committed {
			var rErr error
			if ctx.Request().Method == http.MethodHead {
				rErr = ctx.NoContent(code)
			} else {
				rErr = ctx.JSON(code, map[string]interface{}{"error": message})
			}
			if rErr != nil {
				logger.Error("responding with error", rErr)
			}
		}
	}
}
