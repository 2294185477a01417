package session

import (
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/expiry"
)

type ModuleView struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Locked    bool   `json:"locked"`
}

type QuizView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Questions  int    `json:"questions"`
	Actionable bool   `json:"actionable"`
}

// View is what a student sees of a course session.
type View struct {
	ID                string        `json:"id"`
	CourseID          string        `json:"course_id"`
	CourseName        string        `json:"course_name"`
	Description       string        `json:"description"`
	Image             string        `json:"image"`
	Modules           []ModuleView  `json:"modules"`
	CurrentModule     int           `json:"current_module"`
	Module            course.Module `json:"module"`
	CompletedModules  []int         `json:"completed_modules"`
	Percent           int           `json:"percent"`
	Complete          bool          `json:"complete"`
	QuizzesActionable bool          `json:"quizzes_actionable"`
	Quizzes           []QuizView    `json:"quizzes"`
	Timer             expiry.View   `json:"timer"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	crs := st.Course()
	snap := st.Snapshot()
	v := View{
		ID:                s.id,
		CourseID:          s.courseID,
		CourseName:        crs.Name,
		Description:       crs.Description,
		Image:             crs.Image,
		Modules:           make([]ModuleView, 0, len(crs.Modules)),
		CurrentModule:     snap.Current,
		CompletedModules:  snap.Completed,
		Percent:           st.Percent(),
		Complete:          st.IsCourseComplete(),
		QuizzesActionable: st.QuizzesActionable(),
		Quizzes:           make([]QuizView, 0, len(crs.Quizzes)),
		Timer:             s.monitor.View(),
	}
	for i, m := range crs.Modules {
		v.Modules = append(v.Modules, ModuleView{
			Index:     i,
			Name:      m.Name,
			Completed: st.IsCompleted(i),
			Locked:    st.Locked(i),
		})
	}
	if snap.Current < len(crs.Modules) {
		v.Module = crs.Modules[snap.Current]
	}
	for _, qz := range crs.Quizzes {
		v.Quizzes = append(v.Quizzes, QuizView{
			ID:         qz.ID,
			Name:       qz.Name,
			Questions:  len(qz.Questions),
			Actionable: v.QuizzesActionable,
		})
	}
	return v
}
