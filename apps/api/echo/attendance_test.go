package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/roster"
)

func seedRoster(t *testing.T, app testApp) (roster.Student, roster.Subject) {
	t.Helper()

	ana, err := app.rosterSvc.CreateStudent(roster.NewStudent{Name: "Ana Torres"})
	require.NoError(t, err)
	math, err := app.rosterSvc.CreateSubject(roster.NewSubject{
		Name:     "Matemáticas",
		Code:     "MAT01",
		Schedule: "Lunes y Miércoles",
	})
	require.NoError(t, err)
	return ana, math
}

func Test_attendanceApi_recordDay(t *testing.T) {
	app := newTestApp(t)
	app.seedPeriods(t)
	ana, math := seedRoster(t, app)

	// 2025-02-03 is a Monday: math meets
	rec := app.request(t, http.MethodPost, "/v1/attendance/day", dayInput{
		StudentID: ana.ID, Date: "2025-02-03", State: "absent",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var records []attendance.Record
	decode(t, rec, &records)
	require.Len(t, records, 1)
	require.Equal(t, math.ID, records[0].SubjectID)
	require.Equal(t, attendance.StateAbsent, records[0].State)

	// day view
	rec = app.request(t, http.MethodGet, "/v1/attendance/day/2025-02-03", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &records)
	require.Len(t, records, 1)

	// tuesday: nothing scheduled, nothing written
	rec = app.request(t, http.MethodPost, "/v1/attendance/day", dayInput{
		StudentID: ana.ID, Date: "2025-02-04", State: "absent",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &records)
	require.Empty(t, records)

	// invalid state
	rec = app.request(t, http.MethodPost, "/v1/attendance/day", dayInput{
		StudentID: ana.ID, Date: "2025-02-03", State: "late",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// malformed date
	rec = app.request(t, http.MethodPost, "/v1/attendance/day", dayInput{
		StudentID: ana.ID, Date: "lol", State: "absent",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown student
	rec = app.request(t, http.MethodPost, "/v1/attendance/day", dayInput{
		StudentID: "nope", Date: "2025-02-03", State: "absent",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_attendanceApi_faultsByPeriod(t *testing.T) {
	app := newTestApp(t)
	app.seedPeriods(t)
	ana, math := seedRoster(t, app)

	for _, in := range []dayInput{
		{StudentID: ana.ID, Date: "2025-02-03", State: "absent"},  // Monday
		{StudentID: ana.ID, Date: "2025-02-05", State: "absent"},  // Wednesday
		{StudentID: ana.ID, Date: "2025-02-10", State: "present"}, // Monday
	} {
		rec := app.request(t, http.MethodPost, "/v1/attendance/day", in)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := app.request(t, http.MethodGet, "/v1/attendance/faults/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var faults map[string]attendance.FaultSummary
	decode(t, rec, &faults)
	require.Equal(t, 2, faults[ana.ID].TotalFaultDays)
	require.Equal(t, 2, faults[ana.ID].FaultsBySubject[math.ID])

	// out-of-range ordinal
	rec = app.request(t, http.MethodGet, "/v1/attendance/faults/9", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// valid ordinal with no stored periods
	empty := newTestApp(t)
	rec = empty.request(t, http.MethodGet, "/v1/attendance/faults/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
