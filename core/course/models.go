package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/academia/core"
)

// Module is one sequential unit of course content.
type Module struct {
	Name    string `json:"name"`
	Content string `json:"content"` // rich text (HTML)
}

type Question struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	CorrectAns string   `json:"correct_ans"`
}

type Quiz struct {
	ID        string     `json:"id"`
	CourseID  string     `json:"course_id,omitempty"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Normalize replaces missing sequences with empty ones.
func (q *Quiz) Normalize() {
	if q.Questions == nil {
		q.Questions = []Question{}
	}
	for i := range q.Questions {
		if q.Questions[i].Options == nil {
			q.Questions[i].Options = []string{}
		}
	}
}

type Course struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Modules     []Module `json:"modules"` // order defines the unlock sequence
	Quizzes     []Quiz   `json:"quizzes"`
}

// Normalize replaces missing sequences with empty ones so that a course
// without modules or quizzes degrades to an empty view.
func (c *Course) Normalize() {
	if c.Modules == nil {
		c.Modules = []Module{}
	}
	if c.Quizzes == nil {
		c.Quizzes = []Quiz{}
	}
	for i := range c.Quizzes {
		c.Quizzes[i].Normalize()
	}
}

func (c Course) ModuleCount() int { return len(c.Modules) }

// LastModuleIndex returns the index of the last module, or 0 for a course without modules.
func (c Course) LastModuleIndex() int {
	if len(c.Modules) == 0 {
		return 0
	}
	return len(c.Modules) - 1
}

// NewModule contains information needed to add a Module to a new Course.
type NewModule struct {
	Name    string `json:"name" yaml:"name" validate:"required,notblank"`
	Content string `json:"content" yaml:"content"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name        string      `json:"name" yaml:"name" validate:"required,notblank"`
	Description string      `json:"description" yaml:"description" validate:"required,notblank"`
	Image       string      `json:"image" yaml:"image" validate:"required,url"`
	Modules     []NewModule `json:"modules" yaml:"modules" validate:"required,min=1,dive"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanString(nc.Description)
	nc.Image = core.CleanString(nc.Image)
	for i := range nc.Modules {
		nc.Modules[i].Name = core.CleanString(nc.Modules[i].Name)
	}
	return validate.Struct(nc)
}

// NewQuiz contains information needed to add a Quiz to a Course.
type NewQuiz struct {
	CourseID string `json:"course_id" validate:"required"`
	Name     string `json:"name" validate:"required,notblank"`
}

func (nq *NewQuiz) Validate(validate *validator.Validate) error {
	nq.CourseID = core.CleanString(nq.CourseID)
	nq.Name = core.CleanString(nq.Name)
	return validate.Struct(nq)
}

// NewQuestion contains information needed to add a Question to a Quiz.
// CorrectAns must be exactly one of Options.
type NewQuestion struct {
	QuizID     string   `json:"quiz_id" validate:"required"`
	Text       string   `json:"text" validate:"required,notblank"`
	Options    []string `json:"options" validate:"required,min=2,unique,dive,notblank"`
	CorrectAns string   `json:"correct_ans" validate:"required"`
}

func (nq *NewQuestion) Validate(validate *validator.Validate) error {
	nq.QuizID = core.CleanString(nq.QuizID)
	nq.Text = core.CleanString(nq.Text)
	for i := range nq.Options {
		nq.Options[i] = core.CleanString(nq.Options[i])
	}
	nq.CorrectAns = core.CleanString(nq.CorrectAns)
	return validate.Struct(nq)
}
