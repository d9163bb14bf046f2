package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core/student"
	exportsvc "github.com/trezcool/classtrack/services/export"
)

type studentApi struct {
	svc      *student.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, svc *student.Service, validate *validator.Validate) {
	api := studentApi{svc: svc, validate: validate}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.DELETE("", api.destroyMultiple)
	sg.POST("/import", api.importRoster)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []student.Student{})
	}
	filter.Clean()

	students, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	stu, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, stu)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	stu, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stu)
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	orig, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(orig, api.validate); err != nil {
		return err
	}

	stu, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, stu)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	ids := make([]int, 0, len(query.IDs))
	for _, raw := range query.IDs {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return errInvalidID
		}
		ids = append(ids, id)
	}
	if err := api.svc.Delete(ctx.Request().Context(), ids...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// importRoster enrolls students out of an uploaded xlsx workbook.
// Rows that fail validation are reported and skipped; valid rows are
// created regardless (partial-import semantics).
func (api *studentApi) importRoster(ctx echo.Context) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return errEmptyImportFile
	}
	src, err := file.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer src.Close()

	rows, err := exportsvc.ImportRoster(src)
	if err != nil {
		return errEmptyImportFile
	}

	res := ImportResponse{Skipped: make([]string, 0)}
	for _, ns := range rows {
		ns := ns
		if err := ns.Validate(api.validate); err != nil {
			res.Skipped = append(res.Skipped, ns.StudentCode)
			continue
		}
		if _, err := api.svc.Create(ctx.Request().Context(), ns); err != nil {
			res.Skipped = append(res.Skipped, ns.StudentCode)
			continue
		}
		res.Imported++
	}
	return ctx.JSON(http.StatusOK, res)
}

func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

type (
	DestroyMultipleRequest struct {
		IDs []string `query:"id"`
	}

	ImportResponse struct {
		Imported int      `json:"imported"`
		Skipped  []string `json:"skipped"`
	}
)
