package report

import (
	"strings"
	"testing"
	"time"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/grades"
	"github.com/trezcool/darasa/core/roster"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
)

type fixture struct {
	svc       *Service
	rosterSvc *roster.Service
	calSvc    *calendar.Service
	attSvc    *attendance.Service
	gradeSvc  *grades.Service
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) fixture {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed, %v", err)
	}
	rosterRepo := dummydb.NewRosterRepository(db)
	attRepo := dummydb.NewAttendanceRepository(db)
	gradeRepo := dummydb.NewGradeRepository(db)

	calSvc := calendar.NewService(dummydb.NewCalendarRepository(db))
	rosterSvc := roster.NewService(rosterRepo, attRepo, gradeRepo)
	attSvc := attendance.NewService(attRepo, rosterRepo, calSvc)
	gradeSvc := grades.NewService(gradeRepo)

	if _, err = calSvc.Replace([]calendar.Period{
		{Ordinal: 1, Start: date(2025, 1, 20), End: date(2025, 3, 28)},
		{Ordinal: 2, Start: date(2025, 3, 31), End: date(2025, 6, 13)},
		{Ordinal: 3, Start: date(2025, 7, 7), End: date(2025, 9, 12)},
		{Ordinal: 4, Start: date(2025, 9, 15), End: date(2025, 11, 28)},
	}); err != nil {
		t.Fatalf("Replace() failed, %v", err)
	}

	return fixture{
		svc:       NewService(rosterSvc, calSvc, attSvc, gradeSvc),
		rosterSvc: rosterSvc,
		calSvc:    calSvc,
		attSvc:    attSvc,
		gradeSvc:  gradeSvc,
	}
}

func (f fixture) enroll(t *testing.T, name string) roster.Student {
	t.Helper()

	st, err := f.rosterSvc.CreateStudent(roster.NewStudent{Name: name})
	if err != nil {
		t.Fatalf("CreateStudent(%s) failed, %v", name, err)
	}
	return st
}

func (f fixture) addSubject(t *testing.T, name, code, schedule string) roster.Subject {
	t.Helper()

	sub, err := f.rosterSvc.CreateSubject(roster.NewSubject{Name: name, Code: code, Schedule: schedule})
	if err != nil {
		t.Fatalf("CreateSubject(%s) failed, %v", name, err)
	}
	return sub
}

func TestAttendanceMatrix(t *testing.T) {
	f := setup(t)

	ana := f.enroll(t, "Ana Torres")
	bruno := f.enroll(t, "Bruno Pinto")
	f.addSubject(t, "Matemáticas", "MAT01", "Lunes y Miércoles")

	// two marked Mondays in period 1, one in period 2
	marks := []struct {
		studentID string
		date      time.Time
		state     attendance.State
	}{
		{ana.ID, date(2025, 2, 3), attendance.StateAbsent},
		{ana.ID, date(2025, 2, 10), attendance.StatePresent},
		{bruno.ID, date(2025, 2, 3), attendance.StatePresent},
		{ana.ID, date(2025, 4, 7), attendance.StateAbsent}, // period 2
	}
	for _, m := range marks {
		if _, err := f.attSvc.RecordDay(m.studentID, m.date, m.state); err != nil {
			t.Fatalf("RecordDay() failed, %v", err)
		}
	}

	m, err := f.svc.AttendanceMatrix(1)
	if err != nil {
		t.Fatalf("AttendanceMatrix() failed, %v", err)
	}

	wantHeaders := []string{"Code", "Student", "2025-02-03", "2025-02-10", "Faults"}
	if len(m.Headers) != len(wantHeaders) {
		t.Fatalf("Headers = %v, want %v", m.Headers, wantHeaders)
	}
	for i, h := range wantHeaders {
		if m.Headers[i] != h {
			t.Errorf("Headers[%d] = %q, want %q", i, m.Headers[i], h)
		}
	}

	if len(m.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(m.Rows))
	}
	// students are ordered by code
	anaRow, brunoRow := m.Rows[0], m.Rows[1]
	if anaRow[1] != "Ana Torres" {
		t.Fatalf("first row is %q, want Ana Torres", anaRow[1])
	}
	if anaRow[2] != "F" || anaRow[3] != "X" || anaRow[4] != "1" {
		t.Errorf("ana row = %v, want [.. F X 1]", anaRow)
	}
	if brunoRow[2] != "X" || brunoRow[3] != "" || brunoRow[4] != "0" {
		t.Errorf("bruno row = %v, want [.. X <blank> 0]", brunoRow)
	}

	// unknown period
	if _, err = f.svc.AttendanceMatrix(9); err != calendar.ErrPeriodNotFound {
		t.Errorf("AttendanceMatrix() error = %v, want %v", err, calendar.ErrPeriodNotFound)
	}
}

func TestGradeMatrix(t *testing.T) {
	f := setup(t)

	ana := f.enroll(t, "Ana Torres")
	bruno := f.enroll(t, "Bruno Pinto")
	math := f.addSubject(t, "Matemáticas", "MAT01", "Lunes y Miércoles")

	quiz, err := f.gradeSvc.AddAssessmentType(grades.NewAssessmentType{SubjectID: math.ID, Period: 1, Title: "Quiz 1"})
	if err != nil {
		t.Fatalf("AddAssessmentType() failed, %v", err)
	}
	exam, err := f.gradeSvc.AddAssessmentType(grades.NewAssessmentType{SubjectID: math.ID, Period: 1, Title: "Examen"})
	if err != nil {
		t.Fatalf("AddAssessmentType() failed, %v", err)
	}

	if _, err = f.gradeSvc.SetGrade(math.ID, ana.ID, 1, quiz.ID, "4"); err != nil {
		t.Fatalf("SetGrade() failed, %v", err)
	}
	if _, err = f.gradeSvc.SetGrade(math.ID, ana.ID, 1, exam.ID, "5"); err != nil {
		t.Fatalf("SetGrade() failed, %v", err)
	}
	if _, err = f.gradeSvc.SetGrade(math.ID, bruno.ID, 1, quiz.ID, "2,5"); err != nil {
		t.Fatalf("SetGrade() failed, %v", err)
	}

	m, err := f.svc.GradeMatrix(math.ID, 1)
	if err != nil {
		t.Fatalf("GradeMatrix() failed, %v", err)
	}

	wantHeaders := []string{"Code", "Student", "Quiz 1", "Examen", "Average"}
	if len(m.Headers) != len(wantHeaders) {
		t.Fatalf("Headers = %v, want %v", m.Headers, wantHeaders)
	}
	for i, h := range wantHeaders {
		if m.Headers[i] != h {
			t.Errorf("Headers[%d] = %q, want %q", i, m.Headers[i], h)
		}
	}

	anaRow, brunoRow := m.Rows[0], m.Rows[1]
	if anaRow[2] != "4" || anaRow[3] != "5" || anaRow[4] != "4.50" {
		t.Errorf("ana row = %v, want [.. 4 5 4.50]", anaRow)
	}
	if brunoRow[2] != "2.5" || brunoRow[3] != "" || brunoRow[4] != "2.50" {
		t.Errorf("bruno row = %v, want [.. 2.5 <blank> 2.50]", brunoRow)
	}

	// unknown subject
	if _, err = f.svc.GradeMatrix("nope", 1); err != roster.ErrSubjectNotFound {
		t.Errorf("GradeMatrix() error = %v, want %v", err, roster.ErrSubjectNotFound)
	}
}

func TestGradeMatrixOverallFallback(t *testing.T) {
	f := setup(t)

	ana := f.enroll(t, "Ana Torres")
	math := f.addSubject(t, "Matemáticas", "MAT01", "Lunes")

	quiz, err := f.gradeSvc.AddAssessmentType(grades.NewAssessmentType{SubjectID: math.ID, Period: 1, Title: "Quiz 1"})
	if err != nil {
		t.Fatalf("AddAssessmentType() failed, %v", err)
	}
	if _, err = f.gradeSvc.SetGrade(math.ID, ana.ID, 1, quiz.ID, "4"); err != nil {
		t.Fatalf("SetGrade() failed, %v", err)
	}

	// period 3 has no types: the overall layout is produced
	m, err := f.svc.GradeMatrix(math.ID, 3)
	if err != nil {
		t.Fatalf("GradeMatrix() failed, %v", err)
	}

	wantHeaders := []string{"Code", "Student", "P1", "P2", "P3", "P4", "Overall"}
	if len(m.Headers) != len(wantHeaders) {
		t.Fatalf("Headers = %v, want %v", m.Headers, wantHeaders)
	}
	for i, h := range wantHeaders {
		if m.Headers[i] != h {
			t.Errorf("Headers[%d] = %q, want %q", i, m.Headers[i], h)
		}
	}

	row := m.Rows[0]
	if row[2] != "4.00" || row[3] != "0.00" || row[6] != "1.00" {
		t.Errorf("row = %v, want [.. 4.00 0.00 .. 1.00]", row)
	}
}

func TestWriteCSV(t *testing.T) {
	m := Matrix{
		Title:   "Attendance - Period 1",
		Headers: []string{"Code", "Student", "Faults"},
		Rows: [][]string{
			{"A001", "Ana, Torres", "1"},
			{"A002", "Bruno Pinto", "0"},
		},
	}

	var buf strings.Builder
	if err := WriteCSV(&buf, m); err != nil {
		t.Fatalf("WriteCSV() failed, %v", err)
	}

	want := "Code,Student,Faults\nA001,\"Ana, Torres\",1\nA002,Bruno Pinto,0\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV() = %q, want %q", got, want)
	}
}
