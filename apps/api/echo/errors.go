package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/attendance"
	"github.com/trezcool/classtrack/core/grade"
	"github.com/trezcool/classtrack/core/student"
)

var (
	errZeroMaxScore    = echo.NewHTTPError(http.StatusUnprocessableEntity, core.ErrZeroMaxScore.Error())
	errInvalidID       = echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	errInvalidDate     = echo.NewHTTPError(http.StatusBadRequest, "invalid or missing date")
	errMissingStudent  = echo.NewHTTPError(http.StatusBadRequest, "student_id is required")
	errEmptyImportFile = echo.NewHTTPError(http.StatusBadRequest, "uploaded file is empty or malformed")
)

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
		case *core.PersistenceError:
			// the store is the source of truth for failures; relay its message
			code = http.StatusBadGateway
			message = origErr.Error()
		default:
			switch errors.Cause(err) {
			case student.ErrNotFound, attendance.ErrNotFound, grade.ErrNotFound:
				code = http.StatusNotFound
				message = errors.Cause(err).Error()
			case student.ErrCodeExists:
				code = http.StatusConflict
				message = student.ErrCodeExists.Error()
			case core.ErrZeroMaxScore:
				code = errZeroMaxScore.Code
				message = errZeroMaxScore.Message
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg))

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
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
