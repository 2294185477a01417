package lmsapi

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/course"
)

// CourseRepository implements course.Repository against the remote API.
type CourseRepository struct {
	c *Client
}

func NewCourseRepository(c *Client) *CourseRepository {
	return &CourseRepository{c: c}
}

var _ course.Repository = (*CourseRepository)(nil)

func (repo *CourseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var resp struct {
		Courses []courseDTO `json:"courses"`
	}
	if err := repo.c.get(ctx, "/course/allCourses", &resp, nil); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(resp.Courses))
	for _, dto := range resp.Courses {
		courses = append(courses, dto.toCourse())
	}
	return courses, nil
}

func (repo *CourseRepository) GetCourse(ctx context.Context, id string) (course.Course, error) {
	var resp struct {
		Course *courseDTO `json:"course"`
	}
	body := map[string]string{"courseId": id}
	errs := statusErrors{404: course.ErrNotFound, 400: course.ErrNotFound}
	if err := repo.c.post(ctx, "/course/singleCourse", body, &resp, errs); err != nil {
		return course.Course{}, err
	}
	if resp.Course == nil {
		return course.Course{}, course.ErrNotFound
	}
	crs := resp.Course.toCourse()
	if crs.ID == "" {
		crs.ID = id
	}
	return crs, nil
}

func (repo *CourseRepository) CreateCourse(ctx context.Context, nc course.NewCourse) error {
	if err := repo.c.post(ctx, "/course/createCourse", fromNewCourse(nc), nil, nil); err != nil {
		return errors.Wrap(err, "creating course")
	}
	return nil
}

func (repo *CourseRepository) DeleteCourse(ctx context.Context, id string) error {
	body := map[string]string{"courseId": id}
	return repo.c.post(ctx, "/course/delete", body, nil, statusErrors{404: course.ErrNotFound})
}

func (repo *CourseRepository) GetQuiz(ctx context.Context, id string) (course.Quiz, error) {
	var resp struct {
		Quiz *quizDTO `json:"quiz"`
	}
	body := map[string]string{"quizId": id}
	errs := statusErrors{404: course.ErrQuizNotFound, 400: course.ErrQuizNotFound}
	if err := repo.c.post(ctx, "/course/singleQuiz", body, &resp, errs); err != nil {
		return course.Quiz{}, err
	}
	if resp.Quiz == nil {
		return course.Quiz{}, course.ErrQuizNotFound
	}
	qz := resp.Quiz.toQuiz()
	if qz.ID == "" {
		qz.ID = id
	}
	return qz, nil
}

func (repo *CourseRepository) CreateQuiz(ctx context.Context, nq course.NewQuiz) error {
	body := map[string]string{"courseId": nq.CourseID, "quizName": nq.Name}
	return repo.c.post(ctx, "/course/createQuiz", body, nil, statusErrors{404: course.ErrNotFound})
}

func (repo *CourseRepository) DeleteQuiz(ctx context.Context, id string) error {
	body := map[string]string{"quizId": id}
	return repo.c.post(ctx, "/course/deleteQuiz", body, nil, statusErrors{404: course.ErrQuizNotFound})
}

func (repo *CourseRepository) AddQuestion(ctx context.Context, nq course.NewQuestion) error {
	body := map[string]interface{}{
		"quizId":     nq.QuizID,
		"question":   nq.Text,
		"option":     nq.Options,
		"correctAns": nq.CorrectAns,
	}
	return repo.c.post(ctx, "/course/addQuestion", body, nil, statusErrors{404: course.ErrQuizNotFound})
}

func (repo *CourseRepository) DeleteQuestion(ctx context.Context, id string) error {
	body := map[string]string{"questionId": id}
	return repo.c.post(ctx, "/course/deleteQuestion", body, nil, statusErrors{404: course.ErrQuestionNotFound})
}
