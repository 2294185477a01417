package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/expiry"
)

func newQuiz(n int) course.Quiz {
	letters := []string{"A", "B", "C", "D"}
	qz := course.Quiz{ID: "qz1", Name: "Go basics"}
	for i := 0; i < n; i++ {
		qz.Questions = append(qz.Questions, course.Question{
			ID:         string(rune('1' + i)),
			Text:       "question",
			Options:    []string{"A", "B", "C", "D", "X"},
			CorrectAns: letters[i%len(letters)],
		})
	}
	return qz
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		quiz    course.Quiz
		answers map[string]string
		want    int
	}{
		{
			name:    "one wrong out of four",
			quiz:    newQuiz(4),
			answers: map[string]string{"1": "A", "2": "B", "3": "X", "4": "D"},
			want:    75,
		},
		{name: "none answered out of three", quiz: newQuiz(3), answers: map[string]string{}, want: 0},
		{name: "nil answers", quiz: newQuiz(3), want: 0},
		{name: "no questions", quiz: course.Quiz{ID: "empty"}, answers: map[string]string{"1": "A"}, want: 0},
		{name: "all correct", quiz: newQuiz(3), answers: map[string]string{"1": "A", "2": "B", "3": "C"}, want: 100},
		{name: "rounding", quiz: newQuiz(3), answers: map[string]string{"1": "A", "2": "B"}, want: 67},
		{name: "exact match only", quiz: newQuiz(1), answers: map[string]string{"1": "a"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.quiz, tt.answers))
		})
	}
}

func TestBandOf(t *testing.T) {
	assert.Equal(t, BandGood, BandOf(70))
	assert.Equal(t, BandFair, BandOf(69))
	assert.Equal(t, BandFair, BandOf(50))
	assert.Equal(t, BandPoor, BandOf(49))
}

type storeMock struct {
	mu      sync.Mutex
	saved   []Result
	saveErr error
}

func (m *storeMock) SaveResult(_ context.Context, r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, r)
	return nil
}

func (m *storeMock) QueryResults(context.Context, string) ([]Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved, nil
}

func (m *storeMock) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

func manualTicker() (chan time.Time, expiry.Option) {
	c := make(chan time.Time)
	return c, expiry.WithTicker(func(time.Duration) (<-chan time.Time, func()) { return c, func() {} })
}

func TestSession_SelectToggles(t *testing.T) {
	_, opt := manualTicker()
	s := NewController(&storeMock{}, nil, 10*time.Minute, opt).Open("u1", "c1", newQuiz(2), nil)
	defer s.Close()

	require.NoError(t, s.Select("1", "B"))
	assert.Equal(t, "B", s.View().Questions[0].Selected)

	require.NoError(t, s.Select("1", "A"))
	assert.Equal(t, "A", s.View().Questions[0].Selected)

	require.NoError(t, s.Select("1", "A"))
	assert.Equal(t, "", s.View().Questions[0].Selected)
	assert.Equal(t, 0, s.View().Answered)

	assert.Equal(t, ErrUnknownQuestion, s.Select("9", "A"))
	assert.Equal(t, ErrInvalidOption, s.Select("1", "Z"))
}

func TestSession_SubmitOnce(t *testing.T) {
	ticks, opt := manualTicker()
	store := &storeMock{}
	var submits int
	s := NewController(store, nil, 10*time.Minute, opt).Open("u1", "c1", newQuiz(4), func(*Session) { submits++ })

	for q, a := range map[string]string{"1": "A", "2": "B", "3": "X", "4": "D"} {
		require.NoError(t, s.Select(q, a))
	}

	// nobody reads ticks once the monitor is stopped, so send before submitting
	ticks <- time.Now()
	require.Eventually(t, func() bool { return s.View().Timer.Remaining == 599 }, time.Second, 5*time.Millisecond)

	res, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Title: "Go basics", Score: 75, TimeTaken: 1, UserID: "u1"}, res)

	_, err = s.Submit(context.Background())
	assert.Equal(t, ErrAlreadySubmitted, err)
	assert.Equal(t, ErrAlreadySubmitted, s.Select("1", "B"))
	assert.Equal(t, 1, store.count())
	assert.Equal(t, 1, submits)
	assert.True(t, s.Finished())

	v := s.View()
	require.NotNil(t, v.Result)
	assert.Equal(t, 3, v.Result.Correct)
	assert.Equal(t, BandGood, v.Result.Band)
	assert.True(t, v.Result.Saved)
	assert.False(t, v.Result.AutoSubmitted)
	assert.Equal(t, "C", v.Questions[2].CorrectAns)
	assert.False(t, *v.Questions[2].Correct)
}

func TestSession_AnswersHiddenUntilSubmitted(t *testing.T) {
	_, opt := manualTicker()
	s := NewController(&storeMock{}, nil, time.Minute, opt).Open("u1", "c1", newQuiz(2), nil)
	defer s.Close()

	for _, q := range s.View().Questions {
		assert.Empty(t, q.CorrectAns)
		assert.Nil(t, q.Correct)
	}
	assert.Nil(t, s.View().Result)
}

func TestSession_AutoSubmitOnExpiry(t *testing.T) {
	ticks, opt := manualTicker()
	store := &storeMock{}
	submitted := make(chan *Session, 1)
	s := NewController(store, nil, 2*time.Second, opt).Open("u1", "c1", newQuiz(2), func(s *Session) { submitted <- s })
	require.NoError(t, s.Select("1", "A"))

	ticks <- time.Now()
	ticks <- time.Now()

	select {
	case <-submitted:
	case <-time.After(time.Second):
		t.Fatal("quiz was not auto submitted")
	}

	_, err := s.Submit(context.Background())
	assert.Equal(t, ErrAlreadySubmitted, err)
	assert.Equal(t, 1, store.count())

	v := s.View()
	require.NotNil(t, v.Result)
	assert.True(t, v.Result.AutoSubmitted)
	assert.Equal(t, 50, v.Result.Score)
	assert.Equal(t, 2, v.Result.TimeTaken)
}

func TestSession_SubmitSaveFailureStillLocks(t *testing.T) {
	_, opt := manualTicker()
	store := &storeMock{saveErr: errors.New("502")}
	s := NewController(store, nil, time.Minute, opt).Open("u1", "c1", newQuiz(1), nil)

	require.NoError(t, s.Select("1", "A"))
	res, err := s.Submit(context.Background())

	assert.Equal(t, ErrResultNotSaved, pkgerrors.Cause(err))
	assert.Equal(t, 100, res.Score)
	assert.True(t, s.Submitted())

	v := s.View()
	require.NotNil(t, v.Result)
	assert.False(t, v.Result.Saved)
	assert.Equal(t, ErrResultNotSaved.Error(), v.Result.Notice)
}

// blockingStore holds SaveResult until release is closed, then fails with err.
type blockingStore struct {
	storeMock
	entered chan struct{}
	release chan struct{}
	err     error
}

func (m *blockingStore) SaveResult(context.Context, Result) error {
	close(m.entered)
	<-m.release
	return m.err
}

func TestSession_NotSavedWhileSaving(t *testing.T) {
	_, opt := manualTicker()
	store := &blockingStore{entered: make(chan struct{}), release: make(chan struct{}), err: errors.New("502")}
	s := NewController(store, nil, time.Minute, opt).Open("u1", "c1", newQuiz(1), nil)
	require.NoError(t, s.Select("1", "A"))

	errs := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		errs <- err
	}()
	<-store.entered

	v := s.View()
	assert.True(t, v.Submitted)
	require.NotNil(t, v.Result)
	assert.True(t, v.Result.Saving)
	assert.False(t, v.Result.Saved)
	assert.Empty(t, v.Result.Notice)

	close(store.release)
	assert.Equal(t, ErrResultNotSaved, pkgerrors.Cause(<-errs))

	v = s.View()
	assert.False(t, v.Result.Saving)
	assert.False(t, v.Result.Saved)
	assert.Equal(t, ErrResultNotSaved.Error(), v.Result.Notice)
}

func TestController_Results(t *testing.T) {
	ctrl := NewController(&storeMock{}, nil, time.Minute)
	results, err := ctrl.Results(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Len(t, results, 0)
}
