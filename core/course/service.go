package course

import (
	"context"
	"errors"
)

var (
	// errors
	ErrNotFound         = errors.New("course not found")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
)

type (
	// Repository is the remote course catalogue.
	Repository interface {
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourse(ctx context.Context, id string) (Course, error)
		CreateCourse(ctx context.Context, nc NewCourse) error
		DeleteCourse(ctx context.Context, id string) error
		GetQuiz(ctx context.Context, id string) (Quiz, error)
		CreateQuiz(ctx context.Context, nq NewQuiz) error
		DeleteQuiz(ctx context.Context, id string) error
		AddQuestion(ctx context.Context, nq NewQuestion) error
		DeleteQuestion(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	courses, err := svc.repo.QueryAllCourses(ctx)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []Course{}
	}
	for i := range courses {
		courses[i].Normalize()
	}
	return courses, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Course, error) {
	crs, err := svc.repo.GetCourse(ctx, id)
	if err != nil {
		return Course{}, err
	}
	crs.Normalize()
	return crs, nil
}

func (svc *Service) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	qz, err := svc.repo.GetQuiz(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	qz.Normalize()
	return qz, nil
}

// FindQuiz returns the course's quiz with the given ID.
func (svc *Service) FindQuiz(crs Course, quizID string) (Quiz, bool) {
	for _, qz := range crs.Quizzes {
		if qz.ID == quizID {
			return qz, true
		}
	}
	return Quiz{}, false
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) error {
	return svc.repo.CreateCourse(ctx, nc)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteCourse(ctx, id)
}

func (svc *Service) CreateQuiz(ctx context.Context, nq NewQuiz) error {
	return svc.repo.CreateQuiz(ctx, nq)
}

func (svc *Service) DeleteQuiz(ctx context.Context, id string) error {
	return svc.repo.DeleteQuiz(ctx, id)
}

func (svc *Service) AddQuestion(ctx context.Context, nq NewQuestion) error {
	return svc.repo.AddQuestion(ctx, nq)
}

func (svc *Service) DeleteQuestion(ctx context.Context, id string) error {
	return svc.repo.DeleteQuestion(ctx, id)
}
