package catalog

// Store is an ordered, semester-id-unique collection of semester catalogs.
// A Store value is treated as an immutable snapshot once built: Merge
// returns a new Store instead of mutating, so a server can swap snapshots
// atomically while queries keep reading the old one.
type Store struct {
	semesters []*Semester
}

// NewStore builds a store over the given semesters, in order. Later
// duplicates of a semester id replace earlier ones, keeping the original
// position.
func NewStore(semesters ...*Semester) *Store {
	s := &Store{}
	for _, sem := range semesters {
		s = s.Merge(sem)
	}
	return s
}

// Merge returns a new snapshot with sem replacing the existing entry of the
// same semester id (position preserved), or appended when absent. Merging
// the same catalog twice is the same as merging it once.
func (s *Store) Merge(sem *Semester) *Store {
	if sem == nil {
		return s
	}
	out := make([]*Semester, len(s.semesters), len(s.semesters)+1)
	copy(out, s.semesters)

	replaced := false
	for i, existing := range out {
		if existing.SemesterID == sem.SemesterID {
			out[i] = sem
			replaced = true
			break
		}
	}
	if !replaced {
		out = append(out, sem)
	}

	return &Store{semesters: out}
}

// Len reports the number of semesters in the store.
func (s *Store) Len() int {
	return len(s.semesters)
}

// Semesters returns the stored catalogs in order. Callers must not modify
// the returned slice or its elements.
func (s *Store) Semesters() []*Semester {
	return s.semesters
}

// SemesterIDs lists the stored semester ids in order.
func (s *Store) SemesterIDs() []string {
	ids := make([]string, len(s.semesters))
	for i, sem := range s.semesters {
		ids[i] = sem.SemesterID
	}
	return ids
}
