package catalog

// The nested shape groups the flat course list into field of study →
// course → topic → section. It is rebuilt from the flat list on demand so
// there is only one stored representation.

// FieldOfStudyNode is one department subtree.
type FieldOfStudyNode struct {
	DeptAbbr string        `json:"deptAbbr"`
	DeptName string        `json:"deptName"`
	Courses  []*CourseNode `json:"courses"`
}

// CourseNode groups the topics offered under one course number. The number
// is the cleaned one: summer sessions of the same course share a node.
type CourseNode struct {
	CourseNumber string       `json:"courseNumber"`
	Topics       []*TopicNode `json:"topics"`
}

// TopicNode is one named variant of a course number. Topics are keyed by
// number, title and description together: the registrar reuses topic
// numbers across genuinely different offerings.
type TopicNode struct {
	TopicNumber       string    `json:"topicNumber"`
	Title             string    `json:"title"`
	CourseDescription string    `json:"courseDescription"`
	Sections          []Section `json:"sections"`
}

// Section is one scheduled offering of a topic. Sections are append-only:
// repeated unique numbers (as happens with cross-listed pairs) stay as
// distinct entries.
type Section struct {
	UniqueNumber   string   `json:"uniqueNumber"`
	ConstSectNbr   string   `json:"constSectNbr"`
	Instructor     string   `json:"instructor"`
	Days           string   `json:"days"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	Building       string   `json:"building"`
	Room           string   `json:"room"`
	MaxEnrollment  int      `json:"maxEnrollment"`
	SeatsTaken     int      `json:"seatsTaken"`
	TotalXListings *int     `json:"totalXListings"`
	XListPointer   string   `json:"xListPointer"`
	XListings      []string `json:"xListings"`
}

// Tree groups the semester's flat course list into the nested shape.
func (sem *Semester) Tree() Tree {
	var nodes []*FieldOfStudyNode
	byDept := make(map[string]*FieldOfStudyNode)

	for i := range sem.Courses {
		c := &sem.Courses[i]

		fos := byDept[c.DeptAbbr]
		if fos == nil {
			fos = &FieldOfStudyNode{DeptAbbr: c.DeptAbbr, DeptName: c.DeptName}
			byDept[c.DeptAbbr] = fos
			nodes = append(nodes, fos)
		}

		var course *CourseNode
		for _, cn := range fos.Courses {
			if cn.CourseNumber == c.CleanCourseNbr() {
				course = cn
				break
			}
		}
		if course == nil {
			course = &CourseNode{CourseNumber: c.CleanCourseNbr()}
			fos.Courses = append(fos.Courses, course)
		}

		var topic *TopicNode
		for _, tn := range course.Topics {
			if tn.TopicNumber == c.Topic && tn.Title == c.Title && tn.CourseDescription == c.CrsDesc {
				topic = tn
				break
			}
		}
		if topic == nil {
			topic = &TopicNode{
				TopicNumber:       c.Topic,
				Title:             c.Title,
				CourseDescription: c.CrsDesc,
			}
			course.Topics = append(course.Topics, topic)
		}

		topic.Sections = append(topic.Sections, Section{
			UniqueNumber:   c.Unique,
			ConstSectNbr:   c.ConstSectNbr,
			Instructor:     c.Instructor,
			Days:           c.Days,
			From:           c.From,
			To:             c.To,
			Building:       c.Building,
			Room:           c.Room,
			MaxEnrollment:  c.MaxEnrollment,
			SeatsTaken:     c.SeatsTaken,
			TotalXListings: c.TotalXListings,
			XListPointer:   c.XListPointer,
			XListings:      c.XListings,
		})
	}

	return Tree(nodes)
}

// Tree is the nested view of one semester. Lookups on it fail with the
// same NotFound taxonomy as the flat resolver.
type Tree []*FieldOfStudyNode

// FieldOfStudy resolves a dept abbreviation within the tree.
func (t Tree) FieldOfStudy(deptAbbr string) (*FieldOfStudyNode, error) {
	for _, fos := range t {
		if fos.DeptAbbr == deptAbbr {
			return fos, nil
		}
	}
	return nil, &NotFound{Level: LevelFieldOfStudy, Segment: deptAbbr}
}

// Course resolves a cleaned course number within the field of study.
func (n *FieldOfStudyNode) Course(courseNumber string) (*CourseNode, error) {
	for _, cn := range n.Courses {
		if cn.CourseNumber == courseNumber {
			return cn, nil
		}
	}
	return nil, &NotFound{Level: LevelCourse, Segment: courseNumber, Within: n.DeptAbbr}
}

// Topic resolves a topic number within the course. When several topics
// share the number the first one wins; callers that need a specific
// variant must disambiguate by title.
func (n *CourseNode) Topic(topicNumber string) (*TopicNode, error) {
	for _, tn := range n.Topics {
		if tn.TopicNumber == topicNumber {
			return tn, nil
		}
	}
	return nil, &NotFound{Level: LevelTopic, Segment: topicNumber, Within: n.CourseNumber}
}

// Section resolves a unique number within the topic.
func (n *TopicNode) Section(unique string) (*Section, error) {
	for i := range n.Sections {
		if n.Sections[i].UniqueNumber == unique {
			return &n.Sections[i], nil
		}
	}
	return nil, &NotFound{Level: LevelSection, Segment: unique, Within: n.TopicNumber}
}
