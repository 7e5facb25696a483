package catalog

import "fmt"

// Level identifies the path level at which a lookup failed.
type Level int

const (
	LevelSemester Level = iota
	LevelFieldOfStudy
	LevelCourse
	LevelTopic
	LevelSection
)

func (l Level) String() string {
	switch l {
	case LevelSemester:
		return "semester"
	case LevelFieldOfStudy:
		return "field of study"
	case LevelCourse:
		return "course"
	case LevelTopic:
		return "topic"
	case LevelSection:
		return "section"
	}
	return "unknown"
}

// NotFound reports that resolution failed at one path level. It names the
// offending segment and, where applicable, the segment it was looked up
// under. Lookups stop at the first failing level.
type NotFound struct {
	Level   Level
	Segment string
	Within  string
}

func (e *NotFound) Error() string {
	if e.Within == "" {
		return fmt.Sprintf("%s '%s' not found", e.Level, e.Segment)
	}
	return fmt.Sprintf("%s '%s' not found in '%s'", e.Level, e.Segment, e.Within)
}

// Semester resolves a semester id against the store.
func (s *Store) Semester(id string) (*Semester, error) {
	for _, sem := range s.semesters {
		if sem.SemesterID == id {
			return sem, nil
		}
	}
	return nil, &NotFound{Level: LevelSemester, Segment: id}
}

// FieldsOfStudy lists the fields of study of a semester.
func (s *Store) FieldsOfStudy(semID string) ([]FieldOfStudy, error) {
	sem, err := s.Semester(semID)
	if err != nil {
		return nil, err
	}
	return sem.FieldsOfStudy, nil
}

// Courses returns all course rows of one field of study in a semester.
func (s *Store) Courses(semID, deptAbbr string) ([]Course, error) {
	sem, err := s.Semester(semID)
	if err != nil {
		return nil, err
	}
	if _, err := sem.fieldOfStudy(deptAbbr); err != nil {
		return nil, err
	}

	rows := []Course{}
	for _, c := range sem.Courses {
		if c.DeptAbbr == deptAbbr {
			rows = append(rows, c)
		}
	}
	return rows, nil
}

// Course returns the rows of one course number within a field of study.
// The number is matched as printed in the report (summer-session prefix
// included).
func (s *Store) Course(semID, deptAbbr, courseNbr string) ([]Course, error) {
	rows, err := s.Courses(semID, deptAbbr)
	if err != nil {
		return nil, err
	}

	matched := []Course{}
	for _, c := range rows {
		if c.CourseNbr == courseNbr {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return nil, &NotFound{Level: LevelCourse, Segment: courseNbr, Within: deptAbbr}
	}
	return matched, nil
}

// Section returns the rows of one unique section number within a course.
func (s *Store) Section(semID, deptAbbr, courseNbr, unique string) ([]Course, error) {
	rows, err := s.Course(semID, deptAbbr, courseNbr)
	if err != nil {
		return nil, err
	}

	matched := []Course{}
	for _, c := range rows {
		if c.Unique == unique {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return nil, &NotFound{Level: LevelSection, Segment: unique, Within: courseNbr}
	}
	return matched, nil
}

// fieldOfStudy resolves a dept abbreviation within the semester.
func (sem *Semester) fieldOfStudy(deptAbbr string) (FieldOfStudy, error) {
	for _, fos := range sem.FieldsOfStudy {
		if fos.DeptAbbr == deptAbbr {
			return fos, nil
		}
	}
	return FieldOfStudy{}, &NotFound{Level: LevelFieldOfStudy, Segment: deptAbbr, Within: sem.SemesterID}
}
