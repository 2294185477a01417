package lmsapi

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/curation"
	"github.com/trezcool/academia/core/quiz"
	"github.com/trezcool/academia/core/user"
)

// The remote API populates references inconsistently: a course, quiz or question
// may arrive as a document or as its bare ID. Numbers may arrive as strings.

func isJSONString(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '"'
}

func isJSONNull(b []byte) bool {
	return string(bytes.TrimSpace(b)) == "null"
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if isJSONNull(b) {
		*f = 0
		return nil
	}
	if isJSONString(b) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

func (f flexFloat) int() int { return int(math.Round(float64(f))) }

type flexTime time.Time

func (t *flexTime) UnmarshalJSON(b []byte) error {
	if !isJSONString(b) {
		*t = flexTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		*t = flexTime{}
		return nil
	}
	*t = flexTime(parsed.UTC())
	return nil
}

// flexText is a string, or an object rendered from its most descriptive fields.
type flexText string

func (t *flexText) UnmarshalJSON(b []byte) error {
	if isJSONNull(b) {
		*t = ""
		return nil
	}
	if isJSONString(b) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = flexText(s)
		return nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(b, &obj); err != nil {
		*t = flexText(bytes.TrimSpace(b))
		return nil
	}
	var parts []string
	for _, key := range []string{"title", "name", "url", "link"} {
		if v, ok := obj[key].(string); ok && v != "" {
			parts = append(parts, v)
		}
	}
	*t = flexText(strings.Join(parts, " - "))
	return nil
}

func texts(in []flexText) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t != "" {
			out = append(out, string(t))
		}
	}
	return out
}

// Courses

type moduleDTO struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type questionDTO struct {
	ID         string   `json:"_id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Option     []string `json:"option"` // addQuestion spelling
	CorrectAns string   `json:"correctAns"`
}

func (q *questionDTO) UnmarshalJSON(b []byte) error {
	if isJSONString(b) {
		return json.Unmarshal(b, &q.ID)
	}
	type alias questionDTO
	return json.Unmarshal(b, (*alias)(q))
}

func (q questionDTO) toQuestion() course.Question {
	opts := q.Options
	if len(opts) == 0 {
		opts = q.Option
	}
	if opts == nil {
		opts = []string{}
	}
	return course.Question{ID: q.ID, Text: q.Question, Options: opts, CorrectAns: q.CorrectAns}
}

type quizDTO struct {
	ID        string        `json:"_id"`
	QuizName  string        `json:"quizName"`
	Course    string        `json:"course,omitempty"`
	Questions []questionDTO `json:"questions"`
}

func (q *quizDTO) UnmarshalJSON(b []byte) error {
	if isJSONString(b) {
		return json.Unmarshal(b, &q.ID)
	}
	type alias struct {
		ID        string          `json:"_id"`
		QuizName  string          `json:"quizName"`
		Course    json.RawMessage `json:"course"`
		Questions []questionDTO   `json:"questions"`
	}
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	q.ID, q.QuizName, q.Questions = a.ID, a.QuizName, a.Questions
	if len(a.Course) > 0 && !isJSONNull(a.Course) {
		var ref courseDTO
		if err := json.Unmarshal(a.Course, &ref); err == nil {
			q.Course = ref.ID
		}
	}
	return nil
}

func (q quizDTO) toQuiz() course.Quiz {
	qz := course.Quiz{ID: q.ID, CourseID: q.Course, Name: q.QuizName, Questions: make([]course.Question, 0, len(q.Questions))}
	for _, question := range q.Questions {
		qz.Questions = append(qz.Questions, question.toQuestion())
	}
	return qz
}

type courseDTO struct {
	ID          string      `json:"_id"`
	CourseName  string      `json:"courseName"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Modules     []moduleDTO `json:"modules"`
	Quizes      []quizDTO   `json:"quizes"`
}

func (c *courseDTO) UnmarshalJSON(b []byte) error {
	if isJSONString(b) {
		return json.Unmarshal(b, &c.ID)
	}
	type alias courseDTO
	return json.Unmarshal(b, (*alias)(c))
}

func (c courseDTO) toCourse() course.Course {
	crs := course.Course{
		ID:          c.ID,
		Name:        c.CourseName,
		Description: c.Description,
		Image:       c.Image,
		Modules:     make([]course.Module, 0, len(c.Modules)),
		Quizzes:     make([]course.Quiz, 0, len(c.Quizes)),
	}
	for _, m := range c.Modules {
		crs.Modules = append(crs.Modules, course.Module{Name: m.Name, Content: m.Content})
	}
	for _, q := range c.Quizes {
		qz := q.toQuiz()
		if qz.CourseID == "" {
			qz.CourseID = c.ID
		}
		crs.Quizzes = append(crs.Quizzes, qz)
	}
	return crs
}

func fromNewCourse(nc course.NewCourse) courseDTO {
	dto := courseDTO{
		CourseName:  nc.Name,
		Description: nc.Description,
		Image:       nc.Image,
		Modules:     make([]moduleDTO, 0, len(nc.Modules)),
	}
	for _, m := range nc.Modules {
		dto.Modules = append(dto.Modules, moduleDTO{Name: m.Name, Content: m.Content})
	}
	return dto
}

// Users

type enrollmentDTO struct {
	Course     courseDTO `json:"course"`
	Completed  flexFloat `json:"completed"`
	TimeSpent  flexFloat `json:"timeSpent"`
	EnrolledAt flexTime  `json:"enrolledAt"`
}

type userDTO struct {
	ID              string          `json:"_id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Role            string          `json:"role"`
	EnrolledCourses []enrollmentDTO `json:"enrolledCourses"`
}

func (u userDTO) toUser() user.User {
	usr := user.User{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            strings.ToLower(u.Role),
		EnrolledCourses: make([]user.Enrollment, 0, len(u.EnrolledCourses)),
	}
	for _, e := range u.EnrolledCourses {
		if e.Course.ID == "" {
			continue
		}
		usr.EnrolledCourses = append(usr.EnrolledCourses, user.Enrollment{
			Course:     e.Course.toCourse(),
			Completed:  float64(e.Completed),
			TimeSpent:  e.TimeSpent.int(),
			EnrolledAt: time.Time(e.EnrolledAt),
		})
	}
	usr.Normalize()
	return usr
}

// Results

type resultDTO struct {
	ID        string    `json:"_id,omitempty"`
	Title     string    `json:"title"`
	Score     flexFloat `json:"score"`
	TimeTaken flexFloat `json:"timeTaken"`
	UserID    string    `json:"userId"`
}

func (r resultDTO) toResult() quiz.Result {
	return quiz.Result{ID: r.ID, Title: r.Title, Score: r.Score.int(), TimeTaken: r.TimeTaken.int(), UserID: r.UserID}
}

// Curation

type curationRequestDTO struct {
	Subject    string `json:"subject"`
	FocusArea  string `json:"focus_area"`
	Difficulty string `json:"difficulty"`
	Units      int    `json:"units"`
}

type topicContentDTO struct {
	Topic     string     `json:"topic"`
	Content   string     `json:"content"`
	Examples  []flexText `json:"examples"`
	Exercises []flexText `json:"exercises"`
}

type assessmentItemDTO struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Answer        string   `json:"answer"`
}

type unitDTO struct {
	UnitTitle         string     `json:"unitTitle"`
	EstimatedDuration string     `json:"estimatedDuration"`
	YoutubeVideoURL   string     `json:"youtube_video_url"`
	Resources         []flexText `json:"resources"`
	Topics            []flexText `json:"topics"`
	Assignment        flexText   `json:"assignment"`
	DetailedContent   struct {
		TopicContents []topicContentDTO `json:"topicContents"`
	} `json:"detailedContent"`
	Assessment struct {
		UnitAssessment []assessmentItemDTO `json:"unitAssessment"`
	} `json:"assessment"`
}

type generatedCourseDTO struct {
	ID          string    `json:"_id,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	CourseTitle string    `json:"courseTitle"`
	Units       []unitDTO `json:"units"`
	CreatedAt   *flexTime `json:"createdAt,omitempty"`
}

func (g generatedCourseDTO) toGenerated() curation.GeneratedCourse {
	gc := curation.GeneratedCourse{Title: g.CourseTitle, Units: make([]curation.Unit, 0, len(g.Units))}
	for _, u := range g.Units {
		unit := curation.Unit{
			Title:             u.UnitTitle,
			EstimatedDuration: u.EstimatedDuration,
			VideoURL:          u.YoutubeVideoURL,
			Resources:         texts(u.Resources),
			Topics:            texts(u.Topics),
			Assignment:        string(u.Assignment),
			TopicContents:     make([]curation.TopicContent, 0, len(u.DetailedContent.TopicContents)),
			Assessment:        make([]curation.AssessmentItem, 0, len(u.Assessment.UnitAssessment)),
		}
		for _, tc := range u.DetailedContent.TopicContents {
			unit.TopicContents = append(unit.TopicContents, curation.TopicContent{
				Topic:     tc.Topic,
				Content:   tc.Content,
				Examples:  texts(tc.Examples),
				Exercises: texts(tc.Exercises),
			})
		}
		for _, a := range u.Assessment.UnitAssessment {
			correct := a.CorrectAnswer
			if correct == "" {
				correct = a.Answer
			}
			unit.Assessment = append(unit.Assessment, curation.AssessmentItem{Question: a.Question, Options: a.Options, CorrectAnswer: correct})
		}
		gc.Units = append(gc.Units, unit)
	}
	gc.Normalize()
	return gc
}

func fromGenerated(userID string, gc curation.GeneratedCourse) generatedCourseDTO {
	dto := generatedCourseDTO{UserID: userID, CourseTitle: gc.Title, Units: make([]unitDTO, 0, len(gc.Units))}
	for _, u := range gc.Units {
		unit := unitDTO{
			UnitTitle:         u.Title,
			EstimatedDuration: u.EstimatedDuration,
			YoutubeVideoURL:   u.VideoURL,
			Assignment:        flexText(u.Assignment),
		}
		for _, r := range u.Resources {
			unit.Resources = append(unit.Resources, flexText(r))
		}
		for _, t := range u.Topics {
			unit.Topics = append(unit.Topics, flexText(t))
		}
		for _, tc := range u.TopicContents {
			dtc := topicContentDTO{Topic: tc.Topic, Content: tc.Content}
			for _, e := range tc.Examples {
				dtc.Examples = append(dtc.Examples, flexText(e))
			}
			for _, e := range tc.Exercises {
				dtc.Exercises = append(dtc.Exercises, flexText(e))
			}
			unit.DetailedContent.TopicContents = append(unit.DetailedContent.TopicContents, dtc)
		}
		for _, a := range u.Assessment {
			unit.Assessment.UnitAssessment = append(unit.Assessment.UnitAssessment,
				assessmentItemDTO{Question: a.Question, Options: a.Options, CorrectAnswer: a.CorrectAnswer})
		}
		dto.Units = append(dto.Units, unit)
	}
	return dto
}
