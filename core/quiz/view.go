package quiz

import "github.com/trezcool/academia/core/expiry"

type QuestionView struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Selected string   `json:"selected,omitempty"`
	// set once the quiz is submitted
	CorrectAns string `json:"correct_ans,omitempty"`
	Correct    *bool  `json:"correct,omitempty"`
}

type ResultView struct {
	Result
	Correct       int    `json:"correct"`
	Total         int    `json:"total"`
	Band          Band   `json:"band"`
	AutoSubmitted bool   `json:"auto_submitted"`
	Saving        bool   `json:"saving"` // result save in flight
	Saved         bool   `json:"saved"`
	Notice        string `json:"notice,omitempty"`
}

// View is what a student sees of a quiz session. Correct answers are withheld until submission.
type View struct {
	ID        string         `json:"id"`
	QuizID    string         `json:"quiz_id"`
	CourseID  string         `json:"course_id"`
	Name      string         `json:"name"`
	Questions []QuestionView `json:"questions"`
	Answered  int            `json:"answered"`
	Submitted bool           `json:"submitted"`
	Result    *ResultView    `json:"result,omitempty"`
	Timer     expiry.View    `json:"timer"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:        s.id,
		QuizID:    s.quiz.ID,
		CourseID:  s.courseID,
		Name:      s.quiz.Name,
		Questions: make([]QuestionView, 0, len(s.quiz.Questions)),
		Answered:  len(s.answers),
		Submitted: s.submitted,
		Timer:     s.monitor.View(),
	}

	var correct int
	for _, q := range s.quiz.Questions {
		qv := QuestionView{ID: q.ID, Text: q.Text, Options: q.Options, Selected: s.answers[q.ID]}
		if s.submitted {
			ok := qv.Selected == q.CorrectAns
			if ok {
				correct++
			}
			qv.CorrectAns = q.CorrectAns
			qv.Correct = &ok
		}
		v.Questions = append(v.Questions, qv)
	}

	if s.submitted {
		rv := &ResultView{
			Result:        s.result,
			Correct:       correct,
			Total:         len(s.quiz.Questions),
			Band:          BandOf(s.result.Score),
			AutoSubmitted: s.auto,
			Saving:        s.saving,
			Saved:         !s.saving && s.saveErr == nil,
		}
		if s.saveErr != nil {
			rv.Notice = ErrResultNotSaved.Error()
		}
		v.Result = rv
	}
	return v
}
