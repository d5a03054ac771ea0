package echoapi

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/report"
)

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, svc *report.Service) {
	api := reportApi{svc: svc}

	rg := g.Group("/reports")
	rg.GET("/attendance/:period", api.attendance)
	rg.GET("/grades/:subject/:period", api.grades)
}

func (api *reportApi) attendance(ctx echo.Context) error {
	ordinal, err := parsePeriodParam(ctx.Param("period"))
	if err != nil {
		return err
	}

	matrix, err := api.svc.AttendanceMatrix(ordinal)
	if err != nil {
		if notFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "building attendance matrix")
	}
	return respondMatrix(ctx, matrix)
}

func (api *reportApi) grades(ctx echo.Context) error {
	ordinal, err := parsePeriodParam(ctx.Param("period"))
	if err != nil {
		return err
	}

	matrix, err := api.svc.GradeMatrix(ctx.Param("subject"), ordinal)
	if err != nil {
		if notFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "building grade matrix")
	}
	return respondMatrix(ctx, matrix)
}

// respondMatrix renders the matrix as JSON, or as a CSV attachment when
// ?format=csv is requested.
func respondMatrix(ctx echo.Context, m report.Matrix) error {
	if ctx.QueryParam("format") != "csv" {
		return ctx.JSON(http.StatusOK, m)
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, m); err != nil {
		return errors.Wrap(err, "serializing matrix")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="report.csv"`)
	return ctx.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
