package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/roster"
)

type rosterApi struct {
	svc      *roster.Service
	validate *validator.Validate
}

func registerRosterAPI(g *echo.Group, svc *roster.Service, validate *validator.Validate) {
	api := rosterApi{svc: svc, validate: validate}

	sg := g.Group("/students")
	sg.POST("", api.createStudent)
	sg.POST("/bulk", api.importStudents)
	sg.GET("", api.queryStudents)
	sg.GET("/next-code", api.nextStudentCode)
	sg.GET("/:id", api.retrieveStudent)
	sg.PUT("/:id", api.updateStudent)
	sg.DELETE("/:id", api.destroyStudent)

	subg := g.Group("/subjects")
	subg.POST("", api.createSubject)
	subg.GET("", api.querySubjects)
	subg.GET("/:id", api.retrieveSubject)
	subg.PUT("/:id", api.updateSubject)
	subg.DELETE("/:id", api.destroySubject)
}

// Student handlers

func (api *rosterApi) createStudent(ctx echo.Context) error {
	var data roster.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.svc.CreateStudent(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *rosterApi) importStudents(ctx echo.Context) error {
	var data []roster.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to []NewStudent")
	}
	for i := range data {
		if err := data[i].Validate(api.validate); err != nil {
			return err
		}
	}

	// items are written independently; the result reports partial success
	res := api.svc.ImportStudents(data)
	return ctx.JSON(http.StatusOK, res)
}

func (api *rosterApi) queryStudents(ctx echo.Context) error {
	students, err := api.svc.QueryAllStudents()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *rosterApi) nextStudentCode(ctx echo.Context) error {
	code, err := api.svc.NextStudentCode()
	if err != nil {
		return errors.Wrap(err, "allocating student code")
	}
	return ctx.JSON(http.StatusOK, map[string]string{"code": code})
}

func (api *rosterApi) retrieveStudent(ctx echo.Context) error {
	st, err := api.svc.GetStudentByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == roster.ErrStudentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *rosterApi) updateStudent(ctx echo.Context) error {
	var data roster.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.svc.UpdateStudent(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == roster.ErrStudentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *rosterApi) destroyStudent(ctx echo.Context) error {
	if err := api.svc.DeleteStudent(ctx.Param("id")); err != nil {
		if errors.Cause(err) == roster.ErrStudentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Subject handlers

func (api *rosterApi) createSubject(ctx echo.Context) error {
	var data roster.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.CreateSubject(data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *rosterApi) querySubjects(ctx echo.Context) error {
	subjects, err := api.svc.QueryAllSubjects()
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *rosterApi) retrieveSubject(ctx echo.Context) error {
	sub, err := api.svc.GetSubjectByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == roster.ErrSubjectNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting subject")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *rosterApi) updateSubject(ctx echo.Context) error {
	var data roster.UpdateSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.UpdateSubject(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == roster.ErrSubjectNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *rosterApi) destroySubject(ctx echo.Context) error {
	if err := api.svc.DeleteSubject(ctx.Param("id")); err != nil {
		if errors.Cause(err) == roster.ErrSubjectNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting subject")
	}
	return ctx.NoContent(http.StatusNoContent)
}
