package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regcat/regcat/pkg/catalog"
	"github.com/regcat/regcat/pkg/report"
	"github.com/regcat/regcat/pkg/storage"
)

func testStore(t *testing.T) *catalog.Store {
	t.Helper()

	rows := []report.Row{
		{Year: "2025", Semester: "9", DeptAbbr: "C S", DeptName: "Computer Science", CourseNbr: "439H", Topic: "0", Unique: "50885", ConstSectNbr: "100352", Title: "PRINCIPLES OF COMPUTER SYS-C S", Instructor: "DOE, J", MaxEnrollment: 30, SeatsTaken: 25},
		{Year: "2025", Semester: "9", DeptAbbr: "C S", DeptName: "Computer Science", CourseNbr: "378", Topic: "13", Unique: "50805", Title: "SYMBOLIC PROGRAMMING"},
		{Year: "2025", Semester: "9", DeptAbbr: "M", DeptName: "Mathematics", CourseNbr: "408D", Topic: "0", Unique: "53000", Title: "SEQ, SERIES, AND MULTIVAR CALC"},
	}
	sem, err := catalog.Build(&report.Report{Date: time.Date(2025, 4, 2, 0, 19, 30, 0, time.UTC), Rows: rows})
	require.NoError(t, err)
	return catalog.NewStore(sem)
}

func get(t *testing.T, ts *httptest.Server, path string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestRootEndpoint(t *testing.T) {
	ts := httptest.NewServer(New(testStore(t)).Handler())
	defer ts.Close()

	status, body := get(t, ts, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "/semesters")
}

func TestListSemesters(t *testing.T) {
	ts := httptest.NewServer(New(testStore(t)).Handler())
	defer ts.Close()

	status, body := get(t, ts, "/semesters")
	require.Equal(t, http.StatusOK, status)

	var ids []string
	require.NoError(t, json.Unmarshal(body, &ids))
	assert.Equal(t, []string{"20259"}, ids)
}

func TestGetSemesterOmitsCourses(t *testing.T) {
	ts := httptest.NewServer(New(testStore(t)).Handler())
	defer ts.Close()

	status, body := get(t, ts, "/semesters/20259")
	require.Equal(t, http.StatusOK, status)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload, "fieldsOfStudy")
	assert.Contains(t, payload, "reportDate")
	assert.NotContains(t, payload, "courses")
}

func TestFieldOfStudyCourses(t *testing.T) {
	ts := httptest.NewServer(New(testStore(t)).Handler())
	defer ts.Close()

	status, body := get(t, ts, "/semesters/20259/C%20S")
	require.Equal(t, http.StatusOK, status)

	var courses []catalog.Course
	require.NoError(t, json.Unmarshal(body, &courses))
	require.Len(t, courses, 2)
	for _, c := range courses {
		assert.Equal(t, "C S", c.DeptAbbr)
	}
}

func TestCourseAndSection(t *testing.T) {
	ts := httptest.NewServer(New(testStore(t)).Handler())
	defer ts.Close()

	status, body := get(t, ts, "/semesters/20259/C%20S/439H")
	require.Equal(t, http.StatusOK, status)
	var rows []catalog.Course
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "50885", rows[0].Unique)

	status, body = get(t, ts, "/semesters/20259/C%20S/439H/50885")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "100352", rows[0].ConstSectNbr)
}

func TestTopicsRoutes(t *testing.T) {
	ts := httptest.NewServer(New(testStore(t)).Handler())
	defer ts.Close()

	status, body := get(t, ts, "/semesters/20259/C%20S/378/topics")
	require.Equal(t, http.StatusOK, status)
	var topics []*catalog.TopicNode
	require.NoError(t, json.Unmarshal(body, &topics))
	require.Len(t, topics, 1)
	assert.Equal(t, "13", topics[0].TopicNumber)

	status, body = get(t, ts, "/semesters/20259/C%20S/378/topics/13")
	require.Equal(t, http.StatusOK, status)
	var topic catalog.TopicNode
	require.NoError(t, json.Unmarshal(body, &topic))
	assert.Equal(t, "SYMBOLIC PROGRAMMING", topic.Title)

	status, body = get(t, ts, "/semesters/20259/C%20S/378/topics/13/50805")
	require.Equal(t, http.StatusOK, status)
	var section catalog.Section
	require.NoError(t, json.Unmarshal(body, &section))
	assert.Equal(t, "50805", section.UniqueNumber)
}

func TestNotFoundResponses(t *testing.T) {
	ts := httptest.NewServer(New(testStore(t)).Handler())
	defer ts.Close()

	tests := []struct {
		path    string
		segment string
	}{
		{"/semesters/99999", "99999"},
		{"/semesters/20259/PHY", "PHY"},
		{"/semesters/20259/C%20S/999Z", "999Z"},
		{"/semesters/20259/C%20S/439H/11111", "11111"},
		{"/semesters/20259/C%20S/378/topics/99", "99"},
		{"/semesters/20259/C%20S/378/topics/13/11111", "11111"},
	}
	for _, tt := range tests {
		status, body := get(t, ts, tt.path)
		assert.Equal(t, http.StatusNotFound, status, tt.path)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(body, &payload), tt.path)
		assert.Contains(t, payload["error"], "'"+tt.segment+"'", tt.path)
	}
}

func TestDocsPage(t *testing.T) {
	ts := httptest.NewServer(New(testStore(t)).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/docs")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, doc.Find("title").Text(), "regcat")
	assert.Equal(t, 1, doc.Find("body#content").Length())

	scripts := doc.Find("script")
	require.GreaterOrEqual(t, scripts.Length(), 2)
	assert.Contains(t, scripts.Text(), "marked.parse")
}

func TestSwapPublishesNewSnapshot(t *testing.T) {
	srv := New(testStore(t))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	sem, err := catalog.Build(&report.Report{Date: time.Now(), Rows: []report.Row{
		{Year: "2026", Semester: "2", DeptAbbr: "M", DeptName: "Mathematics", CourseNbr: "340L", Unique: "54000", Title: "MATRICES"},
	}})
	require.NoError(t, err)
	srv.Swap(srv.Store().Merge(sem))

	status, body := get(t, ts, "/semesters")
	require.Equal(t, http.StatusOK, status)
	var ids []string
	require.NoError(t, json.Unmarshal(body, &ids))
	assert.Equal(t, []string{"20259", "20262"}, ids)
}

func TestWatchCatalogReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, storage.Save(path, testStore(t)))

	initial, err := storage.Load(path)
	require.NoError(t, err)
	srv := New(initial)

	stop, err := srv.WatchCatalog(path)
	require.NoError(t, err)
	defer stop()

	sem, err := catalog.Build(&report.Report{Date: time.Now(), Rows: []report.Row{
		{Year: "2026", Semester: "2", DeptAbbr: "M", DeptName: "Mathematics", CourseNbr: "340L", Unique: "54000", Title: "MATRICES"},
	}})
	require.NoError(t, err)
	require.NoError(t, storage.Save(path, initial.Merge(sem)))

	require.Eventually(t, func() bool {
		return srv.Store().Len() == 2
	}, 5*time.Second, 50*time.Millisecond, "watcher should pick up the new catalog")

	// A broken rewrite must not dethrone the good snapshot.
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o644))
	time.Sleep(3 * reloadDebounce)
	assert.Equal(t, 2, srv.Store().Len())
}
