package curation

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
)

// Difficulties
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Request describes the course to generate.
type Request struct {
	Subject    string `json:"subject" validate:"required,notblank"`
	FocusArea  string `json:"focus_area"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Units      int    `json:"units" validate:"required,min=1,max=5"`
}

// Validate cleans r, defaulting FocusArea to Subject.
func (r *Request) Validate(validate *validator.Validate) error {
	r.Subject = core.CleanString(r.Subject)
	r.FocusArea = core.CleanString(r.FocusArea)
	r.Difficulty = core.CleanLower(r.Difficulty)
	if r.FocusArea == "" {
		r.FocusArea = r.Subject
	}
	return validate.Struct(r)
}

type TopicContent struct {
	Topic     string   `json:"topic"`
	Content   string   `json:"content"`
	Examples  []string `json:"examples"`
	Exercises []string `json:"exercises"`
}

type AssessmentItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type Unit struct {
	Title             string           `json:"title"`
	EstimatedDuration string           `json:"estimated_duration"`
	VideoURL          string           `json:"video_url"`
	Resources         []string         `json:"resources"`
	Topics            []string         `json:"topics"`
	Assignment        string           `json:"assignment"`
	TopicContents     []TopicContent   `json:"topic_contents"`
	Assessment        []AssessmentItem `json:"assessment"`
}

// GeneratedCourse is an AI curated course.
type GeneratedCourse struct {
	Title string `json:"title" validate:"required,notblank"`
	Units []Unit `json:"units" validate:"required,min=1"`
}

// Normalize replaces missing sequences with empty ones.
func (gc *GeneratedCourse) Normalize() {
	if gc.Units == nil {
		gc.Units = []Unit{}
	}
	for i := range gc.Units {
		u := &gc.Units[i]
		if u.Resources == nil {
			u.Resources = []string{}
		}
		if u.Topics == nil {
			u.Topics = []string{}
		}
		if u.TopicContents == nil {
			u.TopicContents = []TopicContent{}
		}
		for j := range u.TopicContents {
			if u.TopicContents[j].Examples == nil {
				u.TopicContents[j].Examples = []string{}
			}
			if u.TopicContents[j].Exercises == nil {
				u.TopicContents[j].Exercises = []string{}
			}
		}
		if u.Assessment == nil {
			u.Assessment = []AssessmentItem{}
		}
	}
}

// SavedCourse is a generated course kept by a student.
type SavedCourse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	GeneratedCourse
	CreatedAt time.Time `json:"created_at"`
}

// AssessmentQuiz turns assessment items into a quiz that can be taken like any other.
// Items without options are skipped.
func AssessmentQuiz(id, name string, items []AssessmentItem) course.Quiz {
	qz := course.Quiz{ID: id, Name: name, Questions: make([]course.Question, 0, len(items))}
	for _, item := range items {
		if len(item.Options) == 0 {
			continue
		}
		qz.Questions = append(qz.Questions, course.Question{
			ID:         strconv.Itoa(len(qz.Questions) + 1),
			Text:       item.Question,
			Options:    item.Options,
			CorrectAns: item.CorrectAnswer,
		})
	}
	return qz
}
