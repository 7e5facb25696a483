// Package report extracts raw rows from the registrar's tab-delimited
// "active classes" report. It is deliberately lenient: malformed metadata
// and malformed rows are logged and skipped, never fatal.
package report

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/regcat/regcat/internal/utils"
)

// Row is one tab-delimited data line with its 21 fixed columns mapped to
// named fields. Trailing optional columns that are missing come through as
// empty strings.
type Row struct {
	Year         string
	Semester     string
	DeptAbbr     string
	DeptName     string
	CourseNbr    string
	Topic        string
	Unique       string
	ConstSectNbr string
	Title        string
	CrsDesc      string
	Instructor   string
	Days         string
	From         string
	To           string
	Building     string
	Room         string

	MaxEnrollment int
	SeatsTaken    int

	// TotalXListings is nil when the column is blank or missing. The
	// registrar leaves it empty for courses with no cross-listings, which
	// is not the same thing as zero.
	TotalXListings *int
	XListPointer   string
	XListings      string

	// Line is the 1-based line number in the source report.
	Line int
}

// Report is the result of scanning one report file.
type Report struct {
	// Date is the generation timestamp from the report banner, or the time
	// extraction started when the banner is absent or unparseable.
	Date time.Time

	Rows []Row
}

// Rows with fewer fields than this are dropped as noise. The report has 21
// columns, but trailing optional ones (room, enrollment, cross-listings) are
// sometimes cut off, so anything from column 15 up is tolerated.
const minFields = 15

var bannerRe = regexp.MustCompile(`^Report of all active classes for \d+ as of (.+) at (.+)$`)

// Parse scans the report text and returns its generation date and raw data
// rows. It never fails: a report with no recognizable banner, no header, or
// no valid rows simply yields a Report with a fallback date and fewer (or
// zero) rows.
func Parse(content string) *Report {
	lines := strings.Split(content, "\n")

	rep := &Report{Date: time.Now()}
	dataStart := scanMetadata(lines, rep)

	for i := dataStart; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < minFields {
			utils.Log.Debugf("skipping short row at line %d (%d fields): %s", i+1, len(fields), line)
			continue
		}

		rep.Rows = append(rep.Rows, extractRow(fields, i+1, line))
	}

	return rep
}

// scanMetadata finds the report banner and the column-header line. It
// returns the index of the first data line. When no header line is found it
// returns 0, which makes the whole file parse as data; that matches the
// registrar tooling this replaces, and short-row filtering discards the
// resulting garbage lines anyway.
func scanMetadata(lines []string, rep *Report) int {
	dateFound := false

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if !dateFound && strings.HasPrefix(line, "Report of all active classes for") {
			m := bannerRe.FindStringSubmatch(line)
			if m == nil {
				utils.Log.Warnf("failed to parse report date from line %d: %s", i+1, line)
				continue
			}
			ts, err := parseBannerTimestamp(strings.TrimSpace(m[1]), strings.TrimSpace(m[2]))
			if err != nil {
				utils.Log.Warnf("failed to parse report date from line %d: %v", i+1, err)
				continue
			}
			rep.Date = ts
			dateFound = true
			continue
		}

		if strings.HasPrefix(line, "Year") {
			return i + 1
		}
	}

	return 0
}

// parseBannerTimestamp combines the banner's date ("04/02/2025") and time
// ("00:19:30.1") parts. Seconds are parsed as a float to keep the report's
// sub-second precision.
func parseBannerTimestamp(date, clock string) (time.Time, error) {
	dateParts := strings.Split(date, "/")
	clockParts := strings.Split(clock, ":")
	if len(dateParts) != 3 || len(clockParts) != 3 {
		return time.Time{}, &timestampError{date, clock}
	}

	month, err1 := strconv.Atoi(dateParts[0])
	day, err2 := strconv.Atoi(dateParts[1])
	year, err3 := strconv.Atoi(dateParts[2])
	hour, err4 := strconv.Atoi(clockParts[0])
	minute, err5 := strconv.Atoi(clockParts[1])
	seconds, err6 := strconv.ParseFloat(clockParts[2], 64)
	for _, err := range []error{err1, err2, err3, err4, err5, err6} {
		if err != nil {
			return time.Time{}, &timestampError{date, clock}
		}
	}

	sec := int(seconds)
	nsec := int((seconds - float64(sec)) * float64(time.Second))

	return time.Date(year, time.Month(month), day, hour, minute, sec, nsec, time.Local), nil
}

type timestampError struct {
	date  string
	clock string
}

func (e *timestampError) Error() string {
	return "malformed report timestamp: " + e.date + " at " + e.clock
}

// extractRow maps the fixed column positions to a Row. Every field is
// trimmed; missing trailing columns become empty strings; numeric columns
// fall back to zero when unparseable.
func extractRow(fields []string, lineNo int, line string) Row {
	at := func(i int) string {
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	row := Row{
		Year:         at(0),
		Semester:     at(1),
		DeptAbbr:     at(2),
		DeptName:     at(3),
		CourseNbr:    at(4),
		Topic:        at(5),
		Unique:       at(6),
		ConstSectNbr: at(7),
		Title:        at(8),
		CrsDesc:      at(9),
		Instructor:   at(10),
		Days:         at(11),
		From:         at(12),
		To:           at(13),
		Building:     at(14),
		Room:         at(15),
		XListPointer: at(19),
		XListings:    at(20),
		Line:         lineNo,
	}

	row.MaxEnrollment = intOrZero(at(16), lineNo, line)
	row.SeatsTaken = intOrZero(at(17), lineNo, line)

	if raw := at(18); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.Log.Debugf("unparseable cross-listing total at line %d: %s", lineNo, line)
		} else {
			row.TotalXListings = &n
		}
	}

	return row
}

func intOrZero(raw string, lineNo int, line string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		utils.Log.Debugf("unparseable numeric field at line %d: %s", lineNo, line)
		return 0
	}
	return n
}
