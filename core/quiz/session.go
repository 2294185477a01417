package quiz

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/expiry"
)

var (
	// errors
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	ErrUnknownQuestion  = errors.New("question not found in quiz")
	ErrInvalidOption    = errors.New("option is not one of the question's options")
	ErrResultNotSaved   = errors.New("quiz result could not be saved")
)

var nowFunc = time.Now // mockable

type (
	// Controller opens quiz sessions.
	Controller struct {
		store    Store
		log      core.Logger
		duration time.Duration
		opts     []expiry.Option
	}

	// Session is one timed attempt at a quiz. It is submitted at most once.
	Session struct {
		id       string
		userID   string
		courseID string
		quiz     course.Quiz

		mu           sync.Mutex
		answers      map[string]string
		submitted    bool
		saving       bool
		auto         bool
		result       Result
		saveErr      error
		lastActivity time.Time

		ctrl     *Controller
		monitor  *expiry.Monitor
		onSubmit func(s *Session)
	}
)

func NewController(store Store, logger core.Logger, d time.Duration, opts ...expiry.Option) *Controller {
	return &Controller{store: store, log: logger, duration: d, opts: opts}
}

// Open starts a timed attempt at qz. When the timer runs out the attempt is submitted
// automatically. onSubmit runs after each submission, on the monitor goroutine for automatic ones.
func (c *Controller) Open(userID, courseID string, qz course.Quiz, onSubmit func(s *Session)) *Session {
	qz.Normalize()
	s := &Session{
		id:           uuid.New().String(),
		userID:       userID,
		courseID:     courseID,
		quiz:         qz,
		answers:      make(map[string]string),
		ctrl:         c,
		onSubmit:     onSubmit,
		lastActivity: nowFunc(),
	}
	s.monitor = expiry.New(c.duration, func() {
		if _, err := s.submit(context.Background(), true); err != nil && err != ErrAlreadySubmitted && c.log != nil {
			c.log.Error("auto submitting quiz", err, map[string]interface{}{"session": s.id, "quizID": qz.ID})
		}
	}, c.opts...)
	s.monitor.Start()
	return s
}

// Results lists the attempts of userID.
func (c *Controller) Results(ctx context.Context, userID string) ([]Result, error) {
	results, err := c.store.QueryResults(ctx, userID)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []Result{}
	}
	return results, nil
}

func (s *Session) ID() string        { return s.id }
func (s *Session) UserID() string    { return s.userID }
func (s *Session) CourseID() string  { return s.courseID }
func (s *Session) Quiz() course.Quiz { return s.quiz }

// Done is closed when the timer runs out.
func (s *Session) Done() <-chan struct{} {
	return s.monitor.Done()
}

func (s *Session) question(id string) (course.Question, bool) {
	for _, q := range s.quiz.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return course.Question{}, false
}

// Select chooses option for questionID. Choosing the selected option again clears it.
func (s *Session) Select(questionID, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrAlreadySubmitted
	}
	q, ok := s.question(questionID)
	if !ok {
		return ErrUnknownQuestion
	}
	valid := false
	for _, opt := range q.Options {
		if opt == option {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidOption
	}

	s.lastActivity = nowFunc()
	if s.answers[questionID] == option {
		delete(s.answers, questionID)
	} else {
		s.answers[questionID] = option
	}
	return nil
}

// Submit scores the attempt and appends its result. The session is locked afterwards,
// even if the result could not be saved.
func (s *Session) Submit(ctx context.Context) (Result, error) {
	return s.submit(ctx, false)
}

func (s *Session) submit(ctx context.Context, auto bool) (Result, error) {
	s.mu.Lock()
	if s.submitted {
		s.mu.Unlock()
		return Result{}, ErrAlreadySubmitted
	}
	s.submitted = true
	s.auto = auto
	s.lastActivity = nowFunc()
	s.monitor.Stop()

	res := Result{
		Title:     s.quiz.Name,
		Score:     Score(s.quiz, s.answers),
		TimeTaken: int(s.monitor.Elapsed() / time.Second),
		UserID:    s.userID,
	}
	s.result = res
	s.saving = true
	s.mu.Unlock()

	err := s.ctrl.store.SaveResult(ctx, res)
	if err != nil {
		if s.ctrl.log != nil {
			s.ctrl.log.Error("saving quiz result", err, map[string]interface{}{"session": s.id, "quizID": s.quiz.ID})
		}
		err = pkgerrors.WithMessage(ErrResultNotSaved, err.Error())
	}
	s.mu.Lock()
	s.saving = false
	s.saveErr = err
	s.mu.Unlock()

	if s.onSubmit != nil {
		s.onSubmit(s)
	}
	return res, err
}

// Close abandons an attempt that has not been submitted.
func (s *Session) Close() { s.monitor.Stop() }

func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Finished reports whether the attempt is over, by submission or Close.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted || s.monitor.State() == expiry.Stopped
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}
