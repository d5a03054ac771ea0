package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/calendar"
)

type calendarApi struct {
	svc      *calendar.Service
	validate *validator.Validate
}

// periodInput carries period bounds as YYYY-MM-DD strings.
type periodInput struct {
	Ordinal int    `json:"ordinal" validate:"min=1,max=4"`
	Start   string `json:"start" validate:"required"`
	End     string `json:"end" validate:"required"`
}

func registerCalendarAPI(g *echo.Group, svc *calendar.Service, validate *validator.Validate) {
	api := calendarApi{svc: svc, validate: validate}

	pg := g.Group("/periods")
	pg.GET("", api.queryPeriods)
	pg.PUT("", api.replacePeriods)
	pg.GET("/classify/:date", api.classifyDate)
}

func (api *calendarApi) queryPeriods(ctx echo.Context) error {
	periods, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying periods")
	}
	return ctx.JSON(http.StatusOK, periods)
}

func (api *calendarApi) replacePeriods(ctx echo.Context) error {
	var data []periodInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to []periodInput")
	}

	periods := make([]calendar.Period, 0, len(data))
	for _, in := range data {
		if err := api.validate.Struct(in); err != nil {
			return err
		}
		start, err := calendar.ParseDate(in.Start)
		if err != nil {
			return err
		}
		end, err := calendar.ParseDate(in.End)
		if err != nil {
			return err
		}
		periods = append(periods, calendar.Period{Ordinal: in.Ordinal, Start: start, End: end})
	}

	periods, err := api.svc.Replace(periods)
	if err != nil {
		return errors.Wrap(err, "replacing periods")
	}
	return ctx.JSON(http.StatusOK, periods)
}

func (api *calendarApi) classifyDate(ctx echo.Context) error {
	date, err := calendar.ParseDate(ctx.Param("date"))
	if err != nil {
		return err
	}

	ordinal, err := api.svc.ClassifyDate(date)
	if err != nil {
		return errors.Wrap(err, "classifying date")
	}
	return ctx.JSON(http.StatusOK, map[string]int{"period": ordinal})
}
