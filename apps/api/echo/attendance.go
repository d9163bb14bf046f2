package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/attendance"
	exportsvc "github.com/trezcool/classtrack/services/export"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, svc *attendance.Service, validate *validator.Validate) {
	api := attendanceApi{svc: svc, validate: validate}

	ag := g.Group("/attendance")
	ag.GET("", api.query)
	ag.GET("/daily-view", api.dailyView)
	ag.GET("/export", api.export)
	ag.POST("/mark", api.mark)
	ag.POST("/bulk-mark", api.bulkMark)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *attendanceApi) query(ctx echo.Context) error {
	c := ctx.Request().Context()

	var (
		records []attendance.Record
		err     error
	)
	switch {
	case ctx.QueryParam("date") != "":
		day, perr := core.ParseDay(ctx.QueryParam("date"))
		if perr != nil {
			return errInvalidDate
		}
		records, err = api.svc.QueryByDate(c, day)
	case ctx.QueryParam("student_id") != "":
		id, perr := core.AsID(ctx.QueryParam("student_id"))
		if perr != nil {
			return errInvalidID
		}
		records, err = api.svc.QueryByStudent(c, id)
	default:
		records, err = api.svc.QueryAll(c)
	}
	if err != nil {
		return errors.Wrap(err, "querying attendance records")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) dailyView(ctx echo.Context) error {
	day, err := core.ParseDay(ctx.QueryParam("date"))
	if err != nil {
		return errInvalidDate
	}
	view, err := api.svc.DailyView(ctx.Request().Context(), day)
	if err != nil {
		return errors.Wrap(err, "assembling daily view")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data MarkRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if data.StudentID == nil {
		return errMissingStudent
	}
	day, err := core.ParseDay(data.Date)
	if err != nil {
		return errInvalidDate
	}

	rec, err := api.svc.Mark(ctx.Request().Context(), data.StudentID, day, data.Status, data.Notes)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceApi) bulkMark(ctx echo.Context) error {
	var data BulkMarkRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkMarkRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	day, err := core.ParseDay(data.Date)
	if err != nil {
		return errInvalidDate
	}

	marked, failures := api.svc.BulkMark(ctx.Request().Context(), data.StudentIDs, day, data.Status)
	if failures == nil {
		failures = []attendance.BulkFailure{}
	}
	return ctx.JSON(http.StatusOK, BulkMarkResponse{Marked: marked, Failures: failures})
}

func (api *attendanceApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting attendance record")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *attendanceApi) export(ctx echo.Context) error {
	day, err := core.ParseDay(ctx.QueryParam("date"))
	if err != nil {
		return errInvalidDate
	}
	view, err := api.svc.DailyView(ctx.Request().Context(), day)
	if err != nil {
		return errors.Wrap(err, "assembling daily view")
	}
	buf, err := exportsvc.AttendanceSheet(view, day)
	if err != nil {
		return errors.Wrap(err, "rendering attendance sheet")
	}
	return sendWorkbook(ctx, exportsvc.Filename("attendance", day), buf.Bytes())
}

func sendWorkbook(ctx echo.Context, filename string, data []byte) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

type (
	MarkRequest struct {
		// StudentID may be a number, a numeric string or an embedded
		// record reference.
		StudentID interface{} `json:"student_id" validate:"required"`
		Date      string      `json:"date" validate:"required"`
		Status    string      `json:"status" validate:"required,attstatus"`
		Notes     string      `json:"notes"`
	}

	BulkMarkRequest struct {
		StudentIDs []interface{} `json:"student_ids" validate:"required,min=1"`
		Date       string        `json:"date" validate:"required"`
		Status     string        `json:"status" validate:"required,attstatus"`
	}

	BulkMarkResponse struct {
		Marked   []attendance.Record      `json:"marked"`
		Failures []attendance.BulkFailure `json:"failures"`
	}
)

func (r *MarkRequest) Validate(validate *validator.Validate) error {
	r.Status = core.CleanString(r.Status, true /* lower */)
	r.Notes = core.CleanString(r.Notes)
	return validate.Struct(r)
}

func (r *BulkMarkRequest) Validate(validate *validator.Validate) error {
	r.Status = core.CleanString(r.Status, true /* lower */)
	return validate.Struct(r)
}
