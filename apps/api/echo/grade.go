package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/grade"
	"github.com/trezcool/classtrack/core/student"
	exportsvc "github.com/trezcool/classtrack/services/export"
)

type gradeApi struct {
	svc      *grade.Service
	students *student.Service
	validate *validator.Validate
}

func registerGradeAPI(g *echo.Group, svc *grade.Service, students *student.Service, validate *validator.Validate) {
	api := gradeApi{svc: svc, students: students, validate: validate}

	gg := g.Group("/grades")
	gg.GET("", api.query)
	gg.POST("", api.create)
	gg.GET("/summary", api.summary)
	gg.GET("/export", api.export)
	gg.GET("/:id", api.retrieve)
	gg.PUT("/:id", api.update)
	gg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *gradeApi) query(ctx echo.Context) error {
	c := ctx.Request().Context()

	var (
		grades []grade.Grade
		err    error
	)
	switch {
	case ctx.QueryParam("student_id") != "":
		id, perr := core.AsID(ctx.QueryParam("student_id"))
		if perr != nil {
			return errInvalidID
		}
		grades, err = api.svc.QueryByStudent(c, id)
	case ctx.QueryParam("subject") != "":
		grades, err = api.svc.QueryBySubject(c, ctx.QueryParam("subject"))
	default:
		grades, err = api.svc.QueryAll(c)
	}
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) create(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *gradeApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	g, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data grade.UpdateGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// summary returns the GPA view of one student's grades, optionally
// restricted to a term.
func (api *gradeApi) summary(ctx echo.Context) error {
	rawID := ctx.QueryParam("student_id")
	if rawID == "" {
		return errMissingStudent
	}
	sum, err := api.svc.SummarizeStudent(ctx.Request().Context(), rawID, ctx.QueryParam("term"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *gradeApi) export(ctx echo.Context) error {
	rawID := ctx.QueryParam("student_id")
	if rawID == "" {
		return errMissingStudent
	}
	id, err := core.AsID(rawID)
	if err != nil {
		return errInvalidID
	}
	c := ctx.Request().Context()

	stu, err := api.students.GetByID(c, id)
	if err != nil {
		return err
	}
	term := ctx.QueryParam("term")
	grades, err := api.svc.QueryByStudent(c, id)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	sum, err := api.svc.SummarizeStudent(c, id, term)
	if err != nil {
		return err
	}

	buf, err := exportsvc.GradeReport(stu, grades, sum)
	if err != nil {
		return errors.Wrap(err, "rendering grade report")
	}
	filename := "grades-" + stu.StudentCode + ".xlsx"
	return sendWorkbook(ctx, filename, buf.Bytes())
}
