package courses

import "github.com/kulugbekwork/lema/internal/store"

// coursesLoadedMsg is sent when the course list has been read.
type coursesLoadedMsg struct {
	Courses []store.Course
	Err     error
}

// courseDeletedMsg is sent when a course delete finishes.
type courseDeletedMsg struct {
	Err error
}

// treeLoadedMsg is sent when a course's modules, lessons and progress
// have been read.
type treeLoadedMsg struct {
	Modules  []store.Module
	Lessons  map[string][]store.Lesson // keyed by module ID
	Progress map[string]store.Progress // keyed by lesson ID
	Err      error
}
