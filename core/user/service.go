package user

import (
	"context"
	"errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
)

type (
	// Repository is the remote user directory. It also owns authentication.
	Repository interface {
		Login(ctx context.Context, email, password string) (User, error)
		Register(ctx context.Context, nu NewUser) (User, error)
		GetUser(ctx context.Context, id string) (User, error)
		QueryAllStudents(ctx context.Context) ([]User, error)
		Enroll(ctx context.Context, userID, courseID string) error
		Unenroll(ctx context.Context, userID, courseID string) error
	}

	CourseLister interface {
		QueryAll(ctx context.Context) ([]course.Course, error)
	}

	Service struct {
		repo    Repository
		courses CourseLister
	}
)

func NewService(repo Repository, courses CourseLister) *Service {
	return &Service{repo: repo, courses: courses}
}

func (svc *Service) Login(ctx context.Context, creds Credentials) (User, error) {
	usr, err := svc.repo.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return User{}, err
	}
	usr.Normalize()
	return usr, nil
}

func (svc *Service) Register(ctx context.Context, nu NewUser) (User, error) {
	usr, err := svc.repo.Register(ctx, nu)
	if err != nil {
		if err == ErrEmailExists {
			return User{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return User{}, err
	}
	usr.Normalize()
	return usr, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	usr, err := svc.repo.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}
	usr.Normalize()
	return usr, nil
}

// Students lists the students matching filter.
func (svc *Service) Students(ctx context.Context, filter QueryFilter) ([]User, error) {
	filter.Clean()
	all, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	students := make([]User, 0, len(all))
	for _, usr := range all {
		usr.Normalize()
		if usr.IsStudent() && filter.Match(usr) {
			students = append(students, usr)
		}
	}
	return students, nil
}

// Catalog lists every course, flagging those userID is enrolled in.
func (svc *Service) Catalog(ctx context.Context, userID string) ([]CatalogEntry, error) {
	usr, err := svc.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	courses, err := svc.courses.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]CatalogEntry, 0, len(courses))
	for _, crs := range courses {
		_, enrolled := usr.Enrollment(crs.ID)
		entries = append(entries, CatalogEntry{Course: crs, Enrolled: enrolled})
	}
	return entries, nil
}

func (svc *Service) Enrollments(ctx context.Context, userID string) ([]Enrollment, error) {
	usr, err := svc.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return usr.EnrolledCourses, nil
}

// IsEnrolled reports whether userID is enrolled in courseID.
func (svc *Service) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	usr, err := svc.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	_, ok := usr.Enrollment(courseID)
	return ok, nil
}

func (svc *Service) Enroll(ctx context.Context, userID, courseID string) error {
	enrolled, err := svc.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if enrolled {
		return ErrAlreadyEnrolled
	}
	return svc.repo.Enroll(ctx, userID, courseID)
}

func (svc *Service) Unenroll(ctx context.Context, userID, courseID string) error {
	enrolled, err := svc.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return ErrNotEnrolled
	}
	return svc.repo.Unenroll(ctx, userID, courseID)
}
