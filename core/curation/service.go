package curation

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/academia/core/course"
)

var (
	// errors
	ErrNoAssessment = errors.New("no assessment was generated")
)

type (
	// Generator is the remote course curation service.
	Generator interface {
		GenerateCourse(ctx context.Context, req Request) (GeneratedCourse, error)
		GenerateQuestions(ctx context.Context, req Request) (GeneratedCourse, error)
	}

	Repository interface {
		SaveGenerated(ctx context.Context, userID string, gc GeneratedCourse) error
		QueryGenerated(ctx context.Context, userID string) ([]SavedCourse, error)
	}

	Service struct {
		gen      Generator
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(gen Generator, repo Repository, validate *validator.Validate) *Service {
	return &Service{gen: gen, repo: repo, validate: validate}
}

func (svc *Service) Generate(ctx context.Context, req Request) (GeneratedCourse, error) {
	if err := req.Validate(svc.validate); err != nil {
		return GeneratedCourse{}, err
	}
	gc, err := svc.gen.GenerateCourse(ctx, req)
	if err != nil {
		return GeneratedCourse{}, err
	}
	gc.Normalize()
	return gc, nil
}

func (svc *Service) Save(ctx context.Context, userID string, gc GeneratedCourse) error {
	if err := svc.validate.Struct(gc); err != nil {
		return err
	}
	return svc.repo.SaveGenerated(ctx, userID, gc)
}

func (svc *Service) List(ctx context.Context, userID string) ([]SavedCourse, error) {
	saved, err := svc.repo.QueryGenerated(ctx, userID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		saved = []SavedCourse{}
	}
	for i := range saved {
		saved[i].Normalize()
	}
	return saved, nil
}

// Assessment generates an easy single unit assessment on subject, focused on focusArea
// (a unit title, or the subject itself for a course wide assessment).
func (svc *Service) Assessment(ctx context.Context, subject, focusArea string) (course.Quiz, error) {
	req := Request{Subject: subject, FocusArea: focusArea, Difficulty: DifficultyEasy, Units: 1}
	if err := req.Validate(svc.validate); err != nil {
		return course.Quiz{}, err
	}
	gc, err := svc.gen.GenerateQuestions(ctx, req)
	if err != nil {
		return course.Quiz{}, err
	}
	if len(gc.Units) == 0 {
		return course.Quiz{}, ErrNoAssessment
	}
	title := gc.Title
	if title == "" {
		title = req.Subject
	}
	qz := AssessmentQuiz("ai:"+req.FocusArea, title+": "+req.FocusArea, gc.Units[0].Assessment)
	if len(qz.Questions) == 0 {
		return course.Quiz{}, ErrNoAssessment
	}
	return qz, nil
}
