// Package catalog holds the normalized course-catalog model: a flat list of
// course offerings per semester, an ordered multi-semester store with
// merge-by-replace, a nested tree projection, and path-based lookup over
// both shapes.
package catalog

import "time"

// Course is one normalized course offering (one data row of the report).
// The JSON keys mirror the registrar's column names so catalog files stay
// compatible with the report vocabulary; camelCase keys are derived fields.
type Course struct {
	ReportDate   time.Time `json:"reportDate"`
	Year         string    `json:"Year"`
	Semester     string    `json:"Semester"`
	SemesterID   string    `json:"semesterId"`
	SemesterName string    `json:"semesterName"`

	DeptAbbr string `json:"Dept-Abbr"`
	DeptName string `json:"Dept-Name"`

	// CourseNbr is the raw course number as printed in the report,
	// including any summer-session prefix.
	CourseNbr string `json:"Course Nbr"`

	// FullCourseNumber is "Dept-Abbr Course-Nbr", e.g. "C S 439H".
	FullCourseNumber string `json:"fullCourseNumber"`

	// FullCourseName is "Dept-Abbr Course-Nbr - Title".
	FullCourseName string `json:"fullCourseName"`

	// SummerSession is F, S, N or W when a summer course number carries a
	// session prefix, empty otherwise.
	SummerSession string `json:"summerSession"`

	Topic        string `json:"Topic"`
	Unique       string `json:"Unique"`
	ConstSectNbr string `json:"Const Sect Nbr"`
	Title        string `json:"Title"`
	CrsDesc      string `json:"Crs Desc"`
	Instructor   string `json:"Instructor"`
	Days         string `json:"Days"`
	From         string `json:"From"`
	To           string `json:"To"`
	Building     string `json:"Building"`
	Room         string `json:"Room"`

	MaxEnrollment int `json:"Max Enrollment"`
	SeatsTaken    int `json:"Seats Taken"`

	// Cross-listing fields are unreliable in the source report (claims are
	// not always symmetric between paired courses) and are passed through
	// unvalidated. TotalXListings is null when the report leaves it blank.
	TotalXListings *int     `json:"Total X-listings"`
	XListPointer   string   `json:"X-List Pointer"`
	XListings      []string `json:"X-Listings"`
}

// CleanCourseNbr is the course number with any summer-session prefix
// stripped, i.e. the number courses are grouped under.
func (c *Course) CleanCourseNbr() string {
	if c.SummerSession != "" && c.CourseNbr != "" {
		return c.CourseNbr[1:]
	}
	return c.CourseNbr
}

// FieldOfStudy is an academic department offering courses in a semester.
type FieldOfStudy struct {
	DeptAbbr string `json:"Dept-Abbr"`
	DeptName string `json:"Dept-Name"`
}

// Semester is the catalog for one semester: the report it came from, the
// fields of study seen in it, and the flat list of course offerings. The
// flat list is the single source of truth; the nested tree shape is built
// on demand with Tree.
type Semester struct {
	ReportDate    time.Time      `json:"reportDate"`
	Year          string         `json:"Year"`
	SemesterCode  string         `json:"Semester"`
	SemesterID    string         `json:"semesterId"`
	FieldsOfStudy []FieldOfStudy `json:"fieldsOfStudy"`
	Courses       []Course       `json:"courses"`
}

// Summary is a Semester without its course list, as returned by the
// semester-level lookup.
type Summary struct {
	ReportDate    time.Time      `json:"reportDate"`
	Year          string         `json:"Year"`
	SemesterCode  string         `json:"Semester"`
	SemesterID    string         `json:"semesterId"`
	FieldsOfStudy []FieldOfStudy `json:"fieldsOfStudy"`
}

// Summary returns the semester's metadata without the course list.
func (s *Semester) Summary() Summary {
	return Summary{
		ReportDate:    s.ReportDate,
		Year:          s.Year,
		SemesterCode:  s.SemesterCode,
		SemesterID:    s.SemesterID,
		FieldsOfStudy: s.FieldsOfStudy,
	}
}
