package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/regcat/regcat/pkg/report"
)

// ErrNoData is returned by Build when no data rows survived extraction.
var ErrNoData = errors.New("no course data found in report")

// summer-session prefixes on summer course numbers
const sessionCodes = "FSNW"

// Build folds the extracted rows of one report into a Semester. The
// report-level year and semester code are taken from the first row; the
// registrar emits one semester per report, so all rows share them.
func Build(rep *report.Report) (*Semester, error) {
	if len(rep.Rows) == 0 {
		return nil, ErrNoData
	}

	year := rep.Rows[0].Year
	code := rep.Rows[0].Semester

	sem := &Semester{
		ReportDate:   rep.Date,
		Year:         year,
		SemesterCode: code,
		SemesterID:   year + code,
	}

	seen := make(map[string]bool)
	for _, row := range rep.Rows {
		if row.DeptAbbr != "" && !seen[row.DeptAbbr] {
			seen[row.DeptAbbr] = true
			// First dept name seen for an abbreviation wins; the report
			// occasionally disagrees with itself on later rows.
			sem.FieldsOfStudy = append(sem.FieldsOfStudy, FieldOfStudy{
				DeptAbbr: row.DeptAbbr,
				DeptName: row.DeptName,
			})
		}

		sem.Courses = append(sem.Courses, normalize(row, rep.Date, year, code))
	}

	return sem, nil
}

// normalize converts one raw row into a Course, deriving the synthetic
// fields (semester id/name, summer session, full course number/name,
// cross-listing list).
func normalize(row report.Row, reportDate time.Time, year, code string) Course {
	summerSession := ""
	if code == "6" && row.CourseNbr != "" && strings.ContainsRune(sessionCodes, rune(row.CourseNbr[0])) {
		summerSession = row.CourseNbr[:1]
	}

	return Course{
		ReportDate:   reportDate,
		Year:         row.Year,
		Semester:     row.Semester,
		SemesterID:   year + code,
		SemesterName: semesterName(year, code),

		DeptAbbr: row.DeptAbbr,
		DeptName: row.DeptName,

		CourseNbr:        row.CourseNbr,
		FullCourseNumber: row.DeptAbbr + " " + row.CourseNbr,
		FullCourseName:   row.DeptAbbr + " " + row.CourseNbr + " - " + row.Title,
		SummerSession:    summerSession,

		Topic:        row.Topic,
		Unique:       row.Unique,
		ConstSectNbr: row.ConstSectNbr,
		Title:        row.Title,
		CrsDesc:      row.CrsDesc,
		Instructor:   row.Instructor,
		Days:         row.Days,
		From:         row.From,
		To:           row.To,
		Building:     row.Building,
		Room:         row.Room,

		MaxEnrollment: row.MaxEnrollment,
		SeatsTaken:    row.SeatsTaken,

		TotalXListings: row.TotalXListings,
		XListPointer:   row.XListPointer,
		XListings:      splitXListings(row.XListings),
	}
}

// semesterName maps the registrar's semester code to a display name.
// Unknown codes yield an empty name rather than an error.
func semesterName(year, code string) string {
	switch code {
	case "2":
		return "Spring " + year
	case "6":
		return "Summer " + year
	case "9":
		return "Fall " + year
	}
	return ""
}

// splitXListings parses the comma-separated cross-listing column into the
// list of unique numbers. Blank input yields an empty (non-nil) list so the
// field serializes as [] rather than null.
func splitXListings(raw string) []string {
	out := []string{}
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
