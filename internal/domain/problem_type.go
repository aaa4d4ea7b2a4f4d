package domain

// ProblemType is a category a student can file a ticket under.
type ProblemType struct {
	ID   int64
	Name string
}

// ProblemTypeSet is a loaded snapshot of problem types used for
// referential checks.
type ProblemTypeSet struct {
	items []ProblemType
	byID  map[int64]ProblemType
}

// NewProblemTypeSet indexes the given problem types.
func NewProblemTypeSet(items []ProblemType) *ProblemTypeSet {
	set := &ProblemTypeSet{
		items: append([]ProblemType(nil), items...),
		byID:  make(map[int64]ProblemType, len(items)),
	}
	for _, pt := range items {
		set.byID[pt.ID] = pt
	}
	return set
}

// Contains reports whether id references a known problem type.
func (s *ProblemTypeSet) Contains(id int64) bool {
	if s == nil {
		return false
	}
	_, ok := s.byID[id]
	return ok
}

// All returns the problem types in load order.
func (s *ProblemTypeSet) All() []ProblemType {
	if s == nil {
		return nil
	}
	return append([]ProblemType(nil), s.items...)
}
