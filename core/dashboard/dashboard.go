package dashboard

import (
	"context"
	"math"
	"time"

	"github.com/trezcool/academia/core/curation"
	"github.com/trezcool/academia/core/quiz"
	"github.com/trezcool/academia/core/user"
)

type (
	UserGetter interface {
		GetByID(ctx context.Context, id string) (user.User, error)
	}

	ResultLister interface {
		Results(ctx context.Context, userID string) ([]quiz.Result, error)
	}

	GeneratedLister interface {
		List(ctx context.Context, userID string) ([]curation.SavedCourse, error)
	}

	CourseCompletion struct {
		CourseID   string    `json:"course_id"`
		CourseName string    `json:"course_name"`
		Modules    int       `json:"modules"`
		Completed  int       `json:"completed"`  // percentage, floored
		TimeSpent  int       `json:"time_spent"` // minutes
		EnrolledAt time.Time `json:"enrolled_at"`
	}

	// Summary is a student's performance overview.
	Summary struct {
		UserID           string             `json:"user_id"`
		Name             string             `json:"name"`
		Email            string             `json:"email"`
		EnrolledCourses  int                `json:"enrolled_courses"`
		CompletedCourses int                `json:"completed_courses"`
		TotalTimeSpent   int                `json:"total_time_spent"` // minutes
		Attempts         int                `json:"attempts"`
		AverageScore     float64            `json:"average_score"`
		BestScore        int                `json:"best_score"`
		TotalQuizTime    int                `json:"total_quiz_time"` // seconds
		GeneratedCourses int                `json:"generated_courses"`
		Courses          []CourseCompletion `json:"courses"`
		Results          []quiz.Result      `json:"results"`
	}

	Service struct {
		users     UserGetter
		results   ResultLister
		generated GeneratedLister
	}
)

func NewService(users UserGetter, results ResultLister, generated GeneratedLister) *Service {
	return &Service{users: users, results: results, generated: generated}
}

// Summary builds the dashboard of userID.
func (svc *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	usr, err := svc.users.GetByID(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	results, err := svc.results.Results(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	sum := Summarize(usr, results)

	if svc.generated != nil {
		generated, err := svc.generated.List(ctx, userID)
		if err != nil {
			return Summary{}, err
		}
		sum.GeneratedCourses = len(generated)
	}
	return sum, nil
}

// Summarize aggregates a user's enrollments and quiz results.
func Summarize(usr user.User, results []quiz.Result) Summary {
	usr.Normalize()
	if results == nil {
		results = []quiz.Result{}
	}

	sum := Summary{
		UserID:          usr.ID,
		Name:            usr.Name,
		Email:           usr.Email,
		EnrolledCourses: len(usr.EnrolledCourses),
		Attempts:        len(results),
		Courses:         make([]CourseCompletion, 0, len(usr.EnrolledCourses)),
		Results:         results,
	}

	for _, e := range usr.EnrolledCourses {
		completed := int(math.Floor(e.Completed))
		if completed >= 100 {
			sum.CompletedCourses++
		}
		sum.TotalTimeSpent += e.TimeSpent
		sum.Courses = append(sum.Courses, CourseCompletion{
			CourseID:   e.Course.ID,
			CourseName: e.Course.Name,
			Modules:    len(e.Course.Modules),
			Completed:  completed,
			TimeSpent:  e.TimeSpent,
			EnrolledAt: e.EnrolledAt,
		})
	}

	var total int
	for _, r := range results {
		total += r.Score
		sum.TotalQuizTime += r.TimeTaken
		if r.Score > sum.BestScore {
			sum.BestScore = r.Score
		}
	}
	if len(results) > 0 {
		sum.AverageScore = math.Round(float64(total)/float64(len(results))*10) / 10
	}
	return sum
}
