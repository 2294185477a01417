package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/expiry"
	"github.com/trezcool/academia/core/progress"
)

type courseGetterMock struct {
	crs course.Course
	err error
}

func (m courseGetterMock) Get(context.Context, string) (course.Course, error) { return m.crs, m.err }

type syncMock struct {
	mu        sync.Mutex
	persisted progress.Progress
	pushErr   error
	pushes    int
	block     chan struct{} // when set, Push waits on it
	entered   chan struct{}
}

func (m *syncMock) Fetch(context.Context, string, string) (progress.Progress, error) {
	return m.persisted, nil
}

func (m *syncMock) Push(_ context.Context, userID, courseID string, completed []int, current int) error {
	if m.entered != nil {
		m.entered <- struct{}{}
	}
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushes++
	if m.pushErr != nil {
		return &progress.TransientSyncError{UserID: userID, CourseID: courseID, Err: m.pushErr}
	}
	m.persisted = progress.Progress{CompletedModules: completed, CurrentModule: current}
	return nil
}

// stoppedTicker never fires, so tests drive expiry explicitly.
func stoppedTicker(time.Duration) (<-chan time.Time, func()) {
	return make(chan time.Time), func() {}
}

func openSession(t *testing.T, modules int, sm *syncMock, onExpire func(*Session)) (*Controller, *Session) {
	t.Helper()
	ctrl := NewController(courseGetterMock{crs: newCourse(modules)}, sm, nil, 15*time.Minute, expiry.WithTicker(stoppedTicker))
	s, err := ctrl.Open(context.Background(), "u1", "c1", onExpire)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return ctrl, s
}

func TestController_Open(t *testing.T) {
	t.Run("resumes persisted progress", func(t *testing.T) {
		sm := &syncMock{persisted: progress.Progress{CompletedModules: []int{0}, CurrentModule: 1}}
		_, s := openSession(t, 3, sm, nil)

		v := s.View()
		assert.NotEmpty(t, v.ID)
		assert.Equal(t, 1, v.CurrentModule)
		assert.Equal(t, []int{0}, v.CompletedModules)
		assert.Equal(t, 33, v.Percent)
		assert.Equal(t, "Module 2", v.Module.Name)
		assert.Equal(t, "15:00", v.Timer.Display)
		assert.Equal(t, expiry.Normal, v.Timer.Urgency)
		if assert.Len(t, v.Modules, 3) {
			assert.True(t, v.Modules[0].Completed)
			assert.False(t, v.Modules[1].Locked)
			assert.True(t, v.Modules[2].Locked)
		}
		if assert.Len(t, v.Quizzes, 1) {
			assert.False(t, v.Quizzes[0].Actionable)
		}
	})

	t.Run("course not found", func(t *testing.T) {
		ctrl := NewController(courseGetterMock{err: course.ErrNotFound}, &syncMock{}, nil, time.Minute)
		_, err := ctrl.Open(context.Background(), "u1", "nope", nil)
		assert.Equal(t, course.ErrNotFound, err)
	})
}

func TestSession_CompleteScenario(t *testing.T) {
	sm := &syncMock{}
	ctrl, s := openSession(t, 3, sm, nil)

	var completions int
	ctrl.OnCourseComplete(func(_ context.Context, userID string, crs course.Course) {
		completions++
		assert.Equal(t, "u1", userID)
		assert.Equal(t, "c1", crs.ID)
	})
	ctx := context.Background()

	snap, err := s.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Current: 1, Completed: []int{0}}, snap)

	ok, err := s.SelectModule(2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Complete(ctx)
	require.NoError(t, err)
	snap, err = s.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Current: 2, Completed: []int{0, 1, 2}}, snap)
	assert.True(t, s.IsCourseComplete())
	assert.True(t, s.View().QuizzesActionable)

	// completing again neither pushes nor re-triggers the hook
	_, err = s.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, completions)
	assert.Equal(t, 3, sm.pushes)
	assert.Equal(t, []int{0, 1, 2}, sm.persisted.CompletedModules)

	complete, _, err := ctrl.CourseComplete(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.True(t, complete)
}

func TestSession_CompleteRevisitedModuleKeepsProgress(t *testing.T) {
	sm := &syncMock{persisted: progress.Progress{CompletedModules: []int{0, 1}, CurrentModule: 2}}
	_, s := openSession(t, 3, sm, nil)
	ctx := context.Background()

	ok, err := s.SelectModule(0)
	require.NoError(t, err)
	require.True(t, ok)

	snap, err := s.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Current: 1, Completed: []int{0, 1}}, snap)
	assert.Equal(t, 0, sm.pushes)
	assert.Equal(t, progress.Progress{CompletedModules: []int{0, 1}, CurrentModule: 2}, sm.persisted)

	// back on the frontier, completing pushes again
	_, err = s.Complete(ctx)
	require.NoError(t, err)
	snap, err = s.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Current: 2, Completed: []int{0, 1, 2}}, snap)
	assert.Equal(t, 1, sm.pushes)
	assert.Equal(t, []int{0, 1, 2}, sm.persisted.CompletedModules)
}

func TestSession_CompleteRollsBackOnPushFailure(t *testing.T) {
	sm := &syncMock{persisted: progress.Progress{CompletedModules: []int{0}, CurrentModule: 1}}
	_, s := openSession(t, 3, sm, nil)
	before := s.Snapshot()

	sm.pushErr = errors.New("503")
	snap, err := s.Complete(context.Background())

	assert.True(t, progress.IsTransientSyncError(err))
	assert.Equal(t, before, snap)
	assert.Equal(t, before, s.Snapshot())

	// user-initiated retry succeeds
	sm.pushErr = nil
	snap, err = s.Complete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, snap.Completed)
}

func TestSession_CompleteIsDebounced(t *testing.T) {
	sm := &syncMock{block: make(chan struct{}), entered: make(chan struct{})}
	_, s := openSession(t, 3, sm, nil)

	done := make(chan error)
	go func() {
		_, err := s.Complete(context.Background())
		done <- err
	}()
	<-sm.entered

	_, err := s.Complete(context.Background())
	assert.Equal(t, ErrSyncInFlight, err)
	_, err = s.SelectModule(0)
	assert.Equal(t, ErrSyncInFlight, err)

	close(sm.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, sm.pushes)
	assert.Equal(t, Snapshot{Current: 1, Completed: []int{0}}, s.Snapshot())
}

func TestSession_Expiry(t *testing.T) {
	mt := make(chan time.Time)
	ticker := func(time.Duration) (<-chan time.Time, func()) { return mt, func() {} }

	evicted := make(chan *Session, 2)
	ctrl := NewController(courseGetterMock{crs: newCourse(2)}, &syncMock{}, nil, 2*time.Second, expiry.WithTicker(ticker))
	s, err := ctrl.Open(context.Background(), "u1", "c1", func(s *Session) { evicted <- s })
	require.NoError(t, err)

	mt <- time.Now()
	mt <- time.Now()

	select {
	case got := <-evicted:
		assert.Equal(t, s.ID(), got.ID())
	case <-time.After(time.Second):
		t.Fatal("session did not expire")
	}
	assert.True(t, s.Expired())
	assert.True(t, s.Finished())

	_, err = s.Complete(context.Background())
	assert.Equal(t, ErrExpired, err)
	assert.Len(t, evicted, 0)
}

func TestSession_Close(t *testing.T) {
	var expired bool
	_, s := openSession(t, 2, &syncMock{}, func(*Session) { expired = true })
	s.Close()
	s.Close()

	_, err := s.Next()
	assert.Equal(t, ErrClosed, err)
	assert.True(t, s.Finished())
	assert.False(t, expired)
	assert.Equal(t, expiry.Stopped, s.View().Timer.State)
}
