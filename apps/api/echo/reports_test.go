package echoapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/grades"
	"github.com/trezcool/darasa/core/report"
)

func Test_reportApi_attendance(t *testing.T) {
	app := newTestApp(t)
	app.seedPeriods(t)
	ana, _ := seedRoster(t, app)

	rec := app.request(t, http.MethodPost, "/v1/attendance/day", dayInput{
		StudentID: ana.ID, Date: "2025-02-03", State: "absent",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodGet, "/v1/reports/attendance/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var m report.Matrix
	decode(t, rec, &m)
	require.Equal(t, []string{"Code", "Student", "2025-02-03", "Faults"}, m.Headers)
	require.Len(t, m.Rows, 1)
	require.Equal(t, "F", m.Rows[0][2])
	require.Equal(t, "1", m.Rows[0][3])

	// csv download
	rec = app.request(t, http.MethodGet, "/v1/reports/attendance/1?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	require.Contains(t, rec.Body.String(), "Code,Student,2025-02-03,Faults")

	// unknown period ordinal
	rec = app.request(t, http.MethodGet, "/v1/reports/attendance/9", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_reportApi_grades(t *testing.T) {
	app := newTestApp(t)
	app.seedPeriods(t)
	ana, math := seedRoster(t, app)

	rec := app.request(t, http.MethodPost, "/v1/grades/types", grades.NewAssessmentType{
		SubjectID: math.ID, Period: 1, Title: "Quiz 1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var quiz grades.AssessmentType
	decode(t, rec, &quiz)

	rec = app.request(t, http.MethodPut,
		fmt.Sprintf("/v1/grades/%s/1/%s/students/%s", math.ID, quiz.ID, ana.ID),
		gradeInput{Value: "4"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodGet, fmt.Sprintf("/v1/reports/grades/%s/1", math.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var m report.Matrix
	decode(t, rec, &m)
	require.Equal(t, []string{"Code", "Student", "Quiz 1", "Average"}, m.Headers)
	require.Equal(t, "4", m.Rows[0][2])
	require.Equal(t, "4.00", m.Rows[0][3])

	// a period with no types produces the overall layout
	rec = app.request(t, http.MethodGet, fmt.Sprintf("/v1/reports/grades/%s/3", math.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &m)
	require.Equal(t, []string{"Code", "Student", "P1", "P2", "P3", "P4", "Overall"}, m.Headers)

	// unknown subject
	rec = app.request(t, http.MethodGet, "/v1/reports/grades/nope/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
