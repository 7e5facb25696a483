package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regcat/regcat/pkg/report"
)

// fixtureStore builds a store with one Fall 2025 semester: two C S courses
// (one with two sections) and one M course.
func fixtureStore(t *testing.T) *Store {
	t.Helper()

	rows := []report.Row{
		row("2025", "9", "C S", "Computer Science", "439H", "0", "50885", "PRINCIPLES OF COMPUTER SYS-C S"),
		row("2025", "9", "C S", "Computer Science", "439H", "0", "50890", "PRINCIPLES OF COMPUTER SYS-C S"),
		row("2025", "9", "C S", "Computer Science", "311", "0", "50100", "DISCRETE MATH FOR COMPUTER SCI"),
		row("2025", "9", "M", "Mathematics", "408D", "0", "53000", "SEQ, SERIES, AND MULTIVAR CALC"),
	}
	sem, err := Build(&report.Report{Date: reportDate, Rows: rows})
	require.NoError(t, err)
	return NewStore(sem)
}

func TestResolveChain(t *testing.T) {
	store := fixtureStore(t)

	rows, err := store.Section("20259", "C S", "439H", "50885")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "50885", rows[0].Unique)
	assert.Equal(t, "C S 439H", rows[0].FullCourseNumber)
}

func TestResolveSemesterNotFound(t *testing.T) {
	store := fixtureStore(t)

	_, err := store.Semester("99999")
	var nf *NotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, LevelSemester, nf.Level)
	assert.Equal(t, "99999", nf.Segment)
	assert.Contains(t, err.Error(), "'99999'")
}

func TestResolveFieldOfStudyNotFound(t *testing.T) {
	store := fixtureStore(t)

	_, err := store.Courses("20259", "PHY")
	var nf *NotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, LevelFieldOfStudy, nf.Level)
	assert.Equal(t, "PHY", nf.Segment)
}

func TestResolveCourseNotFound(t *testing.T) {
	store := fixtureStore(t)

	_, err := store.Course("20259", "C S", "999Z")
	var nf *NotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, LevelCourse, nf.Level)
	assert.Equal(t, "999Z", nf.Segment)
	assert.Contains(t, err.Error(), "course '999Z' not found")
}

func TestResolveSectionNotFound(t *testing.T) {
	store := fixtureStore(t)

	_, err := store.Section("20259", "C S", "439H", "11111")
	var nf *NotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, LevelSection, nf.Level)
	assert.Equal(t, "11111", nf.Segment)
}

func TestResolveFailsAtFirstLevel(t *testing.T) {
	store := fixtureStore(t)

	// Everything below the semester is also wrong; the semester failure
	// must win.
	_, err := store.Section("99999", "PHY", "999Z", "11111")
	var nf *NotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, LevelSemester, nf.Level)
}

func TestResolveIntermediateProjections(t *testing.T) {
	store := fixtureStore(t)

	fields, err := store.FieldsOfStudy("20259")
	require.NoError(t, err)
	assert.Equal(t, []FieldOfStudy{
		{DeptAbbr: "C S", DeptName: "Computer Science"},
		{DeptAbbr: "M", DeptName: "Mathematics"},
	}, fields)

	// Department level: every row of the department, no other department's.
	courses, err := store.Courses("20259", "C S")
	require.NoError(t, err)
	require.Len(t, courses, 3)
	for _, c := range courses {
		assert.Equal(t, "C S", c.DeptAbbr)
	}

	// Course level: both sections of 439H.
	rows, err := store.Course("20259", "C S", "439H")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "50885", rows[0].Unique)
	assert.Equal(t, "50890", rows[1].Unique)
}

func TestResolveDoesNotMutate(t *testing.T) {
	store := fixtureStore(t)
	before := store.SemesterIDs()

	store.Section("20259", "C S", "439H", "50885")
	store.Course("20259", "C S", "999Z")
	store.Semester("99999")

	assert.Equal(t, before, store.SemesterIDs())
	sem, err := store.Semester("20259")
	require.NoError(t, err)
	assert.Len(t, sem.Courses, 4)
}
