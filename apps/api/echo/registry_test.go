package echoapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/expiry"
	"github.com/trezcool/academia/core/progress"
	"github.com/trezcool/academia/core/quiz"
	"github.com/trezcool/academia/core/session"
)

type stubCourses struct{}

func (stubCourses) Get(_ context.Context, id string) (course.Course, error) {
	return course.Course{ID: id, Name: "Go", Modules: []course.Module{{Name: "Intro"}}}, nil
}

type stubSync struct{}

func (stubSync) Fetch(context.Context, string, string) (progress.Progress, error) {
	return progress.Progress{CompletedModules: []int{}}, nil
}

func (stubSync) Push(context.Context, string, string, []int, int) error { return nil }

// manualTicker returns a TickerFunc driven by the returned channel.
func manualTicker() (expiry.TickerFunc, chan time.Time) {
	c := make(chan time.Time)
	return func(time.Duration) (<-chan time.Time, func()) { return c, func() {} }, c
}

func TestRegistry_courseSessions(t *testing.T) {
	reg := newRegistry(time.Minute, nil)
	ticker, tick := manualTicker()
	ctrl := session.NewController(stubCourses{}, stubSync{}, nil, expiry.Interval, expiry.WithTicker(ticker))

	s, err := ctrl.Open(context.Background(), "u1", "c1", reg.expireCourse)
	require.NoError(t, err)
	reg.putCourse(s)

	got, err := reg.course(s.ID(), "u1")
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = reg.course(s.ID(), "u2")
	assert.Equal(t, errHttpNotFound, err)
	_, err = reg.course("nope", "u1")
	assert.Equal(t, errHttpNotFound, err)

	tick <- time.Now()
	assert.Eventually(t, func() bool {
		_, err := reg.course(s.ID(), "u1")
		return err == errSessionExpired
	}, time.Second, 5*time.Millisecond)
	courses, _, expired := reg.len()
	assert.Equal(t, 0, courses)
	assert.Equal(t, 1, expired)

	// tombstones outlive the TTL only
	reg.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	reg.sweep()
	_, _, expired = reg.len()
	assert.Equal(t, 0, expired)
	_, err = reg.course(s.ID(), "u1")
	assert.Equal(t, errHttpNotFound, err)
}

func TestRegistry_sweep(t *testing.T) {
	reg := newRegistry(time.Minute, nil)
	ctrl := quiz.NewController(nil, nil, time.Hour)
	qz := course.Quiz{ID: "q1", Name: "Final"}

	active := ctrl.Open("u1", "", qz, nil)
	abandoned := ctrl.Open("u1", "", qz, nil)
	defer active.Close()
	reg.putQuiz(active)
	reg.putQuiz(abandoned)
	abandoned.Close()

	reg.sweep()
	_, quizzes, _ := reg.len()
	assert.Equal(t, 2, quizzes, "recently finished sessions are kept")

	reg.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	reg.sweep()
	_, quizzes, _ = reg.len()
	assert.Equal(t, 1, quizzes)

	_, err := reg.quiz(abandoned.ID(), "u1")
	assert.Equal(t, errHttpNotFound, err)
	_, err = reg.quiz(active.ID(), "u1")
	assert.NoError(t, err)
}

func TestRegistry_schedule(t *testing.T) {
	reg := newRegistry(time.Minute, nil)
	assert.Error(t, reg.schedule("not a schedule"))
	require.NoError(t, reg.schedule("@every 1h"))
	reg.start()
	reg.stop()
}
