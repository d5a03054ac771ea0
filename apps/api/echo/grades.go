package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/grades"
	"github.com/trezcool/darasa/core/roster"
)

type gradeApi struct {
	svc       *grades.Service
	rosterSvc *roster.Service
	validate  *validator.Validate
}

type (
	// gradeInput carries a raw grade value; an empty value clears the entry.
	gradeInput struct {
		Value string `json:"value"`
	}

	// gradeSheetRow is one student's line on the grade sheet.
	gradeSheetRow struct {
		Student        roster.Student        `json:"student"`
		Values         map[string]float64    `json:"values"` // keyed by assessment type ID
		Average        float64               `json:"average"`
		Classification grades.Classification `json:"classification"`
	}

	gradeSheet struct {
		SubjectID string                  `json:"subject_id"`
		Period    int                     `json:"period"`
		Types     []grades.AssessmentType `json:"types"`
		Rows      []gradeSheetRow         `json:"rows"`
	}
)

func registerGradeAPI(g *echo.Group, svc *grades.Service, rosterSvc *roster.Service, validate *validator.Validate) {
	api := gradeApi{svc: svc, rosterSvc: rosterSvc, validate: validate}

	gg := g.Group("/grades")
	gg.POST("/types", api.createType)
	gg.GET("/:subject/:period/types", api.queryTypes)
	gg.DELETE("/:subject/:period/types/:id", api.destroyType)
	gg.PUT("/:subject/:period/:type/students/:student", api.setGrade)
	gg.GET("/:subject/:period/sheet", api.sheet)
}

func (api *gradeApi) createType(ctx echo.Context) error {
	var data grades.NewAssessmentType
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssessmentType")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if _, err := api.rosterSvc.GetSubjectByID(data.SubjectID); err != nil {
		if notFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting subject")
	}

	at, err := api.svc.AddAssessmentType(data)
	if err != nil {
		return errors.Wrap(err, "adding assessment type")
	}
	return ctx.JSON(http.StatusCreated, at)
}

func (api *gradeApi) queryTypes(ctx echo.Context) error {
	period, err := parsePeriodParam(ctx.Param("period"))
	if err != nil {
		return err
	}

	types, err := api.svc.QueryAssessmentTypes(ctx.Param("subject"), period)
	if err != nil {
		return errors.Wrap(err, "querying assessment types")
	}
	return ctx.JSON(http.StatusOK, types)
}

func (api *gradeApi) destroyType(ctx echo.Context) error {
	period, err := parsePeriodParam(ctx.Param("period"))
	if err != nil {
		return err
	}

	if err := api.svc.RemoveAssessmentType(ctx.Param("subject"), period, ctx.Param("id")); err != nil {
		if notFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "removing assessment type")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradeApi) setGrade(ctx echo.Context) error {
	var data gradeInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to gradeInput")
	}

	period, err := parsePeriodParam(ctx.Param("period"))
	if err != nil {
		return err
	}

	entry, err := api.svc.SetGrade(ctx.Param("subject"), ctx.Param("student"), period, ctx.Param("type"), data.Value)
	if err != nil {
		if notFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "setting grade")
	}
	if entry == nil { // cleared
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, entry)
}

func (api *gradeApi) sheet(ctx echo.Context) error {
	period, err := parsePeriodParam(ctx.Param("period"))
	if err != nil {
		return err
	}
	subjectID := ctx.Param("subject")

	if _, err := api.rosterSvc.GetSubjectByID(subjectID); err != nil {
		if notFound(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting subject")
	}

	types, err := api.svc.QueryAssessmentTypes(subjectID, period)
	if err != nil {
		return errors.Wrap(err, "querying assessment types")
	}
	students, err := api.rosterSvc.QueryAllStudents()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	entries, err := api.svc.QueryEntriesBySubject(subjectID, period)
	if err != nil {
		return errors.Wrap(err, "querying grade entries")
	}

	byStudent := make(map[string]map[string]float64, len(students))
	for _, e := range entries {
		if byStudent[e.StudentID] == nil {
			byStudent[e.StudentID] = make(map[string]float64)
		}
		byStudent[e.StudentID][e.TypeID] = e.Value
	}

	sheet := gradeSheet{
		SubjectID: subjectID,
		Period:    period,
		Types:     types,
		Rows:      make([]gradeSheetRow, 0, len(students)),
	}
	for _, st := range students {
		avg, err := api.svc.PeriodAverage(subjectID, st.ID, period)
		if err != nil {
			return errors.Wrap(err, "computing period average")
		}
		values := byStudent[st.ID]
		if values == nil {
			values = make(map[string]float64)
		}
		sheet.Rows = append(sheet.Rows, gradeSheetRow{
			Student:        st,
			Values:         values,
			Average:        avg,
			Classification: grades.Classify(avg),
		})
	}
	return ctx.JSON(http.StatusOK, sheet)
}
