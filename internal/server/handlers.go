package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/regcat/regcat/internal/utils"
	"github.com/regcat/regcat/pkg/catalog"
)

const welcome = `Welcome to the regcat course listings API!

Available endpoints:
	- /docs:      for documentation (in html)
	- /semesters: for semesters data
`

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(welcome))
}

func (s *Server) handleSemesters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Store().SemesterIDs())
}

func (s *Server) handleSemester(w http.ResponseWriter, r *http.Request) {
	semID, ok := pathValue(w, r, "semester")
	if !ok {
		return
	}

	sem, err := s.Store().Semester(semID)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, sem.Summary())
}

func (s *Server) handleFieldOfStudy(w http.ResponseWriter, r *http.Request) {
	semID, ok := pathValue(w, r, "semester")
	if !ok {
		return
	}
	fos, ok := pathValue(w, r, "fieldOfStudy")
	if !ok {
		return
	}

	courses, err := s.Store().Courses(semID, fos)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, courses)
}

func (s *Server) handleCourse(w http.ResponseWriter, r *http.Request) {
	semID, ok := pathValue(w, r, "semester")
	if !ok {
		return
	}
	fos, ok := pathValue(w, r, "fieldOfStudy")
	if !ok {
		return
	}
	course, ok := pathValue(w, r, "course")
	if !ok {
		return
	}

	rows, err := s.Store().Course(semID, fos, course)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, rows)
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	semID, ok := pathValue(w, r, "semester")
	if !ok {
		return
	}
	fos, ok := pathValue(w, r, "fieldOfStudy")
	if !ok {
		return
	}
	course, ok := pathValue(w, r, "course")
	if !ok {
		return
	}
	section, ok := pathValue(w, r, "section")
	if !ok {
		return
	}

	rows, err := s.Store().Section(semID, fos, course, section)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, rows)
}

// resolveTree walks the nested view down to the course node.
func (s *Server) resolveTree(w http.ResponseWriter, r *http.Request) (*catalog.CourseNode, bool) {
	semID, ok := pathValue(w, r, "semester")
	if !ok {
		return nil, false
	}
	fos, ok := pathValue(w, r, "fieldOfStudy")
	if !ok {
		return nil, false
	}
	course, ok := pathValue(w, r, "course")
	if !ok {
		return nil, false
	}

	sem, err := s.Store().Semester(semID)
	if err != nil {
		writeLookupError(w, err)
		return nil, false
	}
	fosNode, err := sem.Tree().FieldOfStudy(fos)
	if err != nil {
		writeLookupError(w, err)
		return nil, false
	}
	courseNode, err := fosNode.Course(course)
	if err != nil {
		writeLookupError(w, err)
		return nil, false
	}
	return courseNode, true
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	courseNode, ok := s.resolveTree(w, r)
	if !ok {
		return
	}
	writeJSON(w, courseNode.Topics)
}

func (s *Server) handleTopic(w http.ResponseWriter, r *http.Request) {
	courseNode, ok := s.resolveTree(w, r)
	if !ok {
		return
	}
	topic, ok := pathValue(w, r, "topic")
	if !ok {
		return
	}

	topicNode, err := courseNode.Topic(topic)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, topicNode)
}

func (s *Server) handleTopicSection(w http.ResponseWriter, r *http.Request) {
	courseNode, ok := s.resolveTree(w, r)
	if !ok {
		return
	}
	topic, ok := pathValue(w, r, "topic")
	if !ok {
		return
	}
	section, ok := pathValue(w, r, "section")
	if !ok {
		return
	}

	topicNode, err := courseNode.Topic(topic)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	sec, err := topicNode.Section(section)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, sec)
}

// pathValue reads one path parameter, rejecting blank values.
func pathValue(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if strings.TrimSpace(v) == "" {
		writeError(w, http.StatusBadRequest, "Missing "+name+" parameter")
		return "", false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		utils.Log.Errorf("encoding response: %v", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// writeLookupError turns a resolver failure into a response. NotFound maps
// to 404 with the failing segment named in the message.
func writeLookupError(w http.ResponseWriter, err error) {
	var nf *catalog.NotFound
	if errors.As(err, &nf) {
		writeError(w, http.StatusNotFound, nf.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
	utils.Log.Errorf("lookup failed: %v", err)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
