package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/calendar"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

// dayInput records one student's state for one calendar day.
type dayInput struct {
	StudentID string `json:"student_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	State     string `json:"state" validate:"required,oneof=present absent"`
}

func registerAttendanceAPI(g *echo.Group, svc *attendance.Service, validate *validator.Validate) {
	api := attendanceApi{svc: svc, validate: validate}

	ag := g.Group("/attendance")
	ag.POST("/day", api.recordDay)
	ag.GET("/day/:date", api.day)
	ag.GET("/faults/:period", api.faultsByPeriod)
}

func (api *attendanceApi) recordDay(ctx echo.Context) error {
	var data dayInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to dayInput")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	date, err := calendar.ParseDate(data.Date)
	if err != nil {
		return err
	}

	records, err := api.svc.RecordDay(data.StudentID, date, attendance.State(data.State))
	if err != nil {
		if notFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "recording day")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) day(ctx echo.Context) error {
	date, err := calendar.ParseDate(ctx.Param("date"))
	if err != nil {
		return err
	}

	records, err := api.svc.Day(date)
	if err != nil {
		return errors.Wrap(err, "querying day records")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) faultsByPeriod(ctx echo.Context) error {
	ordinal, err := parsePeriodParam(ctx.Param("period"))
	if err != nil {
		return err
	}

	faults, err := api.svc.FaultsByPeriod(ordinal)
	if err != nil {
		return errors.Wrap(err, "tallying faults")
	}
	return ctx.JSON(http.StatusOK, faults)
}

// parsePeriodParam parses an academic period ordinal from a path param.
func parsePeriodParam(raw string) (int, error) {
	ordinal, err := strconv.Atoi(raw)
	if err != nil || ordinal < 1 || ordinal > calendar.PeriodCount {
		return 0, core.NewValidationError(
			errors.New("invalid period"),
			core.FieldError{Field: "period", Error: "must be a number between 1 and 4"},
		)
	}
	return ordinal, nil
}
