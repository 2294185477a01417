package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/expiry"
	"github.com/trezcool/academia/core/progress"
)

var (
	// errors
	ErrSyncInFlight = errors.New("progress is already being saved")
	ErrExpired      = errors.New("session expired")
	ErrClosed       = errors.New("session closed")
)

var nowFunc = time.Now // mockable

type (
	CourseGetter interface {
		Get(ctx context.Context, id string) (course.Course, error)
	}

	ProgressSynchronizer interface {
		Fetch(ctx context.Context, userID, courseID string) (progress.Progress, error)
		Push(ctx context.Context, userID, courseID string, completed []int, current int) error
	}

	// CompletionHook runs once when a session completes its course.
	CompletionHook func(ctx context.Context, userID string, crs course.Course)

	// Controller opens course sessions.
	Controller struct {
		courses    CourseGetter
		sync       ProgressSynchronizer
		log        core.Logger
		duration   time.Duration
		opts       []expiry.Option
		onComplete CompletionHook
	}

	// Session binds a State, its Progress Synchronizer and its Expiry Monitor for one view.
	Session struct {
		id       string
		userID   string
		courseID string

		mu           sync.Mutex
		state        *State
		syncing      bool
		closed       bool
		expired      bool
		lastActivity time.Time

		ctrl    *Controller
		monitor *expiry.Monitor
	}
)

func NewController(courses CourseGetter, sync ProgressSynchronizer, logger core.Logger, d time.Duration, opts ...expiry.Option) *Controller {
	return &Controller{
		courses:  courses,
		sync:     sync,
		log:      logger,
		duration: d,
		opts:     opts,
	}
}

// OnCourseComplete registers hook to run when a session completes its course.
func (c *Controller) OnCourseComplete(hook CompletionHook) {
	c.onComplete = hook
}

// Open loads the course and the student's progress, then starts a timed session.
// onExpire is called once, from the monitor goroutine, when the session expires.
func (c *Controller) Open(ctx context.Context, userID, courseID string, onExpire func(s *Session)) (*Session, error) {
	crs, err := c.courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	p, err := c.sync.Fetch(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:           uuid.New().String(),
		userID:       userID,
		courseID:     courseID,
		state:        NewState(crs, p),
		ctrl:         c,
		lastActivity: nowFunc(),
	}
	s.monitor = expiry.New(c.duration, func() {
		s.mu.Lock()
		s.expired = true
		s.mu.Unlock()
		if c.log != nil {
			c.log.Info("course session expired", map[string]interface{}{"session": s.id, "userID": userID, "courseID": courseID})
		}
		if onExpire != nil {
			onExpire(s)
		}
	}, c.opts...)
	s.monitor.Start()
	return s, nil
}

// CourseComplete reports whether userID has completed every module of courseID.
func (c *Controller) CourseComplete(ctx context.Context, userID, courseID string) (bool, course.Course, error) {
	crs, err := c.courses.Get(ctx, courseID)
	if err != nil {
		return false, course.Course{}, err
	}
	p, err := c.sync.Fetch(ctx, userID, courseID)
	if err != nil {
		return false, course.Course{}, err
	}
	return NewState(crs, p).IsCourseComplete(), crs, nil
}

func (s *Session) ID() string       { return s.id }
func (s *Session) UserID() string   { return s.userID }
func (s *Session) CourseID() string { return s.courseID }

// usable must be called with s.mu held.
func (s *Session) usable() error {
	switch {
	case s.expired:
		return ErrExpired
	case s.closed:
		return ErrClosed
	case s.syncing:
		return ErrSyncInFlight
	}
	s.lastActivity = nowFunc()
	return nil
}

// SelectModule moves to module i; ok is false when i is locked.
func (s *Session) SelectModule(i int) (ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usable(); err != nil {
		return false, err
	}
	return s.state.SelectModule(i), nil
}

// Next moves past the current module once it is completed.
func (s *Session) Next() (ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usable(); err != nil {
		return false, err
	}
	return s.state.Next(), nil
}

// Complete marks the current module completed and pushes the new progress.
// The update is applied optimistically and rolled back if the push fails.
// While a push is in flight further calls fail with ErrSyncInFlight.
// Completing a module that is already completed only moves on; nothing is pushed.
func (s *Session) Complete(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	if err := s.usable(); err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}
	if s.state.IsCompleted(s.state.Current()) {
		next := s.state.CompleteCurrentModule()
		s.mu.Unlock()
		return next, nil
	}
	wasComplete := s.state.IsCourseComplete()
	prev := s.state.Snapshot()
	next := s.state.CompleteCurrentModule()
	s.syncing = true
	s.mu.Unlock()

	err := s.ctrl.sync.Push(ctx, s.userID, s.courseID, next.Completed, next.Current)

	s.mu.Lock()
	s.syncing = false
	if err != nil {
		s.state.Restore(prev)
		s.mu.Unlock()
		return prev, err
	}
	justCompleted := !wasComplete && s.state.IsCourseComplete()
	crs := s.state.Course()
	s.mu.Unlock()

	if justCompleted && s.ctrl.onComplete != nil {
		s.ctrl.onComplete(ctx, s.userID, crs)
	}
	return next, nil
}

// Close stops the session's monitor. Closing twice is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.monitor.Stop()
}

func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expired
}

// Done is closed when the session expires.
func (s *Session) Done() <-chan struct{} { return s.monitor.Done() }

// Finished reports whether the session can no longer be used.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expired || s.closed
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

func (s *Session) IsCourseComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsCourseComplete()
}
