package lmsapi

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/curation"
	"github.com/trezcool/academia/core/progress"
	"github.com/trezcool/academia/core/quiz"
	"github.com/trezcool/academia/core/user"
	"github.com/trezcool/academia/tests"
)

func setup(t *testing.T) (*testutil.LMS, *Client) {
	lms := testutil.NewLMS(t)
	return lms, New(testutil.NewConfig(lms).LMS, testutil.NullLogger{})
}

func TestFlexDecoding(t *testing.T) {
	tests := []struct {
		name string
		data string
		want courseDTO
	}{
		{name: "bare id", data: `"c1"`, want: courseDTO{ID: "c1"}},
		{
			name: "quizes as ids",
			data: `{"_id":"c1","courseName":"Go","quizes":["q1","q2"]}`,
			want: courseDTO{ID: "c1", CourseName: "Go", Quizes: []quizDTO{{ID: "q1"}, {ID: "q2"}}},
		},
		{
			name: "populated quiz",
			data: `{"_id":"c1","quizes":[{"_id":"q1","quizName":"Basics","course":"c1","questions":["x"]}]}`,
			want: courseDTO{ID: "c1", Quizes: []quizDTO{{ID: "q1", QuizName: "Basics", Course: "c1", Questions: []questionDTO{{ID: "x"}}}}},
		},
		{
			name: "quiz with populated course",
			data: `{"_id":"c1","quizes":[{"_id":"q1","course":{"_id":"c1","courseName":"Go"}}]}`,
			want: courseDTO{ID: "c1", Quizes: []quizDTO{{ID: "q1", Course: "c1"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got courseDTO
			require.NoError(t, json.Unmarshal([]byte(tt.data), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlexFloat(t *testing.T) {
	tests := []struct {
		data string
		want float64
	}{
		{`66.67`, 66.67},
		{`"66.67"`, 66.67},
		{`"50%"`, 50},
		{`""`, 0},
		{`null`, 0},
	}
	for _, tt := range tests {
		var f flexFloat
		require.NoError(t, json.Unmarshal([]byte(tt.data), &f), tt.data)
		assert.Equal(t, tt.want, float64(f), tt.data)
	}

	var f flexFloat
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &f))
}

func TestQuestionOptionSpelling(t *testing.T) {
	var q questionDTO
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"x","question":"?","option":["a","b"],"correctAns":"a"}`), &q))
	assert.Equal(t, course.Question{ID: "x", Text: "?", Options: []string{"a", "b"}, CorrectAns: "a"}, q.toQuestion())
}

func TestCourseRepository(t *testing.T) {
	lms, c := setup(t)
	repo := NewCourseRepository(c)
	ctx := context.Background()

	crsID := lms.AddCourse("Go 101", "Intro", "Types")
	quizID := lms.AddQuiz(crsID, "Basics", testutil.FakeQuestion{Question: "2+2?", Options: []string{"3", "4"}, CorrectAns: "4"})

	courses, err := repo.QueryAllCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go 101", courses[0].Name)
	assert.Equal(t, quizID, courses[0].Quizzes[0].ID)

	crs, err := repo.GetCourse(ctx, crsID)
	require.NoError(t, err)
	assert.Len(t, crs.Modules, 2)
	assert.Equal(t, "Types", crs.Modules[1].Name)
	require.Len(t, crs.Quizzes, 1)
	assert.Equal(t, "Basics", crs.Quizzes[0].Name)
	assert.Equal(t, crsID, crs.Quizzes[0].CourseID)

	_, err = repo.GetCourse(ctx, "nope")
	assert.Equal(t, course.ErrNotFound, err)

	qz, err := repo.GetQuiz(ctx, quizID)
	require.NoError(t, err)
	require.Len(t, qz.Questions, 1)
	assert.Equal(t, "4", qz.Questions[0].CorrectAns)
	assert.Equal(t, []string{"3", "4"}, qz.Questions[0].Options)

	_, err = repo.GetQuiz(ctx, "nope")
	assert.Equal(t, course.ErrQuizNotFound, err)

	require.NoError(t, repo.AddQuestion(ctx, course.NewQuestion{QuizID: quizID, Text: "3+3?", Options: []string{"6", "7"}, CorrectAns: "6"}))
	qz, err = repo.GetQuiz(ctx, quizID)
	require.NoError(t, err)
	require.Len(t, qz.Questions, 2)
	assert.Equal(t, []string{"6", "7"}, qz.Questions[1].Options)

	require.NoError(t, repo.DeleteQuestion(ctx, qz.Questions[0].ID))
	assert.Equal(t, course.ErrQuestionNotFound, repo.DeleteQuestion(ctx, qz.Questions[0].ID))

	require.NoError(t, repo.CreateQuiz(ctx, course.NewQuiz{CourseID: crsID, Name: "Advanced"}))
	assert.Equal(t, course.ErrNotFound, repo.CreateQuiz(ctx, course.NewQuiz{CourseID: "nope", Name: "Advanced"}))
	require.NoError(t, repo.DeleteQuiz(ctx, quizID))
	assert.Equal(t, course.ErrQuizNotFound, repo.DeleteQuiz(ctx, quizID))

	require.NoError(t, repo.CreateCourse(ctx, course.NewCourse{
		Name: "Rust", Description: "Borrowing", Image: "https://img.test/rust.png",
		Modules: []course.NewModule{{Name: "Ownership", Content: "<p>mine</p>"}},
	}))
	courses, err = repo.QueryAllCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Ownership", courses[1].Modules[0].Name)

	require.NoError(t, repo.DeleteCourse(ctx, crsID))
	assert.False(t, lms.HasCourse(crsID))
	assert.Equal(t, course.ErrNotFound, repo.DeleteCourse(ctx, crsID))
}

func TestProgressStore(t *testing.T) {
	lms, c := setup(t)
	store := NewProgressStore(c)
	ctx := context.Background()

	_, err := store.GetProgress(ctx, "u1", "c1")
	assert.Equal(t, progress.ErrNotFound, errors.Cause(err))

	require.NoError(t, store.UpdateProgress(ctx, "u1", "c1", progress.Progress{CompletedModules: []int{1, 0}, CurrentModule: 2}))
	p, ok := lms.Progress("u1", "c1")
	require.True(t, ok)
	assert.Equal(t, testutil.FakeProgress{CompletedModules: []int{0, 1}, CurrentModule: 2}, p)

	got, err := store.GetProgress(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, progress.Progress{CompletedModules: []int{0, 1}, CurrentModule: 2}, got)

	lms.FailProgress(true)
	err = store.UpdateProgress(ctx, "u1", "c1", progress.Progress{CompletedModules: []int{0}})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Equal(t, "database unavailable", apiErr.Message)
}

func TestResultStore(t *testing.T) {
	_, c := setup(t)
	store := NewResultStore(c)
	ctx := context.Background()

	results, err := store.QueryResults(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)

	require.NoError(t, store.SaveResult(ctx, quiz.Result{Title: "Basics", Score: 75, TimeTaken: 42, UserID: "u1"}))
	require.NoError(t, store.SaveResult(ctx, quiz.Result{Title: "Other", Score: 10, UserID: "u2"}))

	results, err = store.QueryResults(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Basics", results[0].Title)
	assert.Equal(t, 75, results[0].Score)
	assert.Equal(t, 42, results[0].TimeTaken)
	assert.NotEmpty(t, results[0].ID)
}

func TestUserRepository(t *testing.T) {
	lms, c := setup(t)
	repo := NewUserRepository(c)
	ctx := context.Background()

	crsID := lms.AddCourse("Go 101", "Intro", "Types", "Funcs")
	studentID := testutil.CreateStudent(t, lms, "Ada", "ada@test.test")
	testutil.CreateAdmin(t, lms, "Root", "root@test.test")

	usr, err := repo.Login(ctx, "ada@test.test", testutil.StudentPassword)
	require.NoError(t, err)
	assert.Equal(t, studentID, usr.ID)
	assert.Equal(t, user.RoleStudent, usr.Role)

	_, err = repo.Login(ctx, "ada@test.test", "wrong")
	assert.Equal(t, user.ErrInvalidCredentials, err)

	admin, err := repo.Login(ctx, "root@test.test", testutil.AdminPassword)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	created, err := repo.Register(ctx, user.NewUser{Name: "Bob", Email: "bob@test.test", Password: "x"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	_, err = repo.Register(ctx, user.NewUser{Name: "Bob", Email: "bob@test.test", Password: "x"})
	assert.Equal(t, user.ErrEmailExists, err)

	require.NoError(t, repo.Enroll(ctx, studentID, crsID))
	lms.SetProgress(studentID, crsID, testutil.FakeProgress{CompletedModules: []int{0, 1}, CurrentModule: 2})

	usr, err = repo.GetUser(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, usr.EnrolledCourses, 1)
	assert.Equal(t, crsID, usr.EnrolledCourses[0].Course.ID)
	assert.Equal(t, "Go 101", usr.EnrolledCourses[0].Course.Name)
	assert.InDelta(t, 66.67, usr.EnrolledCourses[0].Completed, 0.001)
	assert.False(t, usr.EnrolledCourses[0].EnrolledAt.IsZero())

	_, err = repo.GetUser(ctx, "nope")
	assert.Equal(t, user.ErrNotFound, err)

	students, err := repo.QueryAllStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 2)

	require.NoError(t, repo.Unenroll(ctx, studentID, crsID))
	usr, err = repo.GetUser(ctx, studentID)
	require.NoError(t, err)
	assert.Empty(t, usr.EnrolledCourses)
}

func TestCuration(t *testing.T) {
	_, c := setup(t)
	cur := NewCuration(c)
	ctx := context.Background()

	gc, err := cur.GenerateCourse(ctx, curation.Request{Subject: "Go", FocusArea: "Channels", Difficulty: "easy", Units: 2})
	require.NoError(t, err)
	assert.Equal(t, "Go", gc.Title)
	require.Len(t, gc.Units, 2)
	unit := gc.Units[0]
	assert.Equal(t, "Channels 1", unit.Title)
	assert.Equal(t, []string{"https://docs.test/1", "Book 1 - https://book.test/1"}, unit.Resources)
	require.Len(t, unit.Assessment, 2)
	assert.Equal(t, "A language", unit.Assessment[0].CorrectAnswer)
	assert.Equal(t, "No", unit.Assessment[1].CorrectAnswer)
	assert.Equal(t, []string{"example 1"}, unit.TopicContents[0].Examples)

	require.NoError(t, cur.SaveGenerated(ctx, "u1", gc))
	saved, err := cur.QueryGenerated(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "u1", saved[0].UserID)
	assert.Equal(t, "Go", saved[0].Title)
	assert.Len(t, saved[0].Units, 2)
	assert.False(t, saved[0].CreatedAt.IsZero())

	saved, err = cur.QueryGenerated(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, saved)
}
