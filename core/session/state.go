package session

import (
	"sort"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/progress"
)

// Snapshot is a copy of a State's position.
type Snapshot struct {
	Current   int   `json:"current_module"`
	Completed []int `json:"completed_modules"` // sorted
}

// State tracks one student's traversal of one course's modules.
// It is not safe for concurrent use; Session serializes access.
type State struct {
	course    course.Course
	current   int
	completed map[int]struct{}
}

// NewState initializes a State from persisted progress.
// Out of range indices are dropped and current is clamped to the reachable frontier.
func NewState(crs course.Course, persisted progress.Progress) *State {
	crs.Normalize()
	st := &State{course: crs, completed: make(map[int]struct{})}

	n := len(crs.Modules)
	for _, i := range persisted.CompletedModules {
		if i >= 0 && i < n {
			st.completed[i] = struct{}{}
		}
	}

	cur := persisted.CurrentModule
	if cur < 0 {
		cur = 0
	}
	if frontier := st.frontier(); cur > frontier {
		cur = frontier
	}
	st.current = cur
	return st
}

// frontier is the first module not yet completed, or the last module when all are.
func (st *State) frontier() int {
	for i := 0; i < len(st.course.Modules); i++ {
		if _, ok := st.completed[i]; !ok {
			return i
		}
	}
	return st.course.LastModuleIndex()
}

func (st *State) Course() course.Course { return st.course }
func (st *State) Current() int          { return st.current }

func (st *State) IsCompleted(i int) bool {
	_, ok := st.completed[i]
	return ok
}

// Locked reports whether module i cannot be selected.
func (st *State) Locked(i int) bool {
	return i < 0 || i > st.current
}

// SelectModule moves to module i. It is a no-op returning false when i is ahead of the current module.
func (st *State) SelectModule(i int) bool {
	if i < 0 || i > st.current || i >= len(st.course.Modules) {
		return false
	}
	st.current = i
	return true
}

// Next moves to the module after the current one once the current one is completed.
func (st *State) Next() bool {
	if !st.IsCompleted(st.current) || st.current >= st.course.LastModuleIndex() {
		return false
	}
	st.current++
	return true
}

// CompleteCurrentModule marks the current module completed and advances to the next one,
// staying on the last module. A course without modules is left untouched.
func (st *State) CompleteCurrentModule() Snapshot {
	if len(st.course.Modules) == 0 {
		return st.Snapshot()
	}
	st.completed[st.current] = struct{}{}
	st.current++
	if last := st.course.LastModuleIndex(); st.current > last {
		st.current = last
	}
	return st.Snapshot()
}

// Restore resets the position to snap.
func (st *State) Restore(snap Snapshot) {
	st.completed = make(map[int]struct{}, len(snap.Completed))
	for _, i := range snap.Completed {
		st.completed[i] = struct{}{}
	}
	st.current = snap.Current
}

func (st *State) Snapshot() Snapshot {
	completed := make([]int, 0, len(st.completed))
	for i := range st.completed {
		completed = append(completed, i)
	}
	sort.Ints(completed)
	return Snapshot{Current: st.current, Completed: completed}
}

func (st *State) IsCourseComplete() bool {
	n := len(st.course.Modules)
	return n > 0 && len(st.completed) == n
}

// QuizzesActionable reports whether the course's quizzes may be taken.
func (st *State) QuizzesActionable() bool { return st.IsCourseComplete() }

func (st *State) Percent() int {
	return progress.Percent(len(st.completed), len(st.course.Modules))
}
