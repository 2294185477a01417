package echoapi

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/quiz"
	"github.com/trezcool/academia/core/session"
)

// registry holds the open course and quiz sessions, keyed by session ID.
// Expired course sessions leave a tombstone so that later requests get 410 instead of 404.
type registry struct {
	mu      sync.Mutex
	courses map[string]*session.Session
	quizzes map[string]*quiz.Session
	expired map[string]time.Time

	ttl  time.Duration
	now  func() time.Time
	log  core.Logger
	cron *cron.Cron
}

func newRegistry(ttl time.Duration, logger core.Logger) *registry {
	return &registry{
		courses: make(map[string]*session.Session),
		quizzes: make(map[string]*quiz.Session),
		expired: make(map[string]time.Time),
		ttl:     ttl,
		now:     time.Now,
		log:     logger,
		cron:    cron.New(),
	}
}

// schedule runs sweep on spec (standard cron format or descriptors such as "@every 1m").
func (r *registry) schedule(spec string) error {
	_, err := r.cron.AddFunc(spec, r.sweep)
	return err
}

func (r *registry) start() { r.cron.Start() }

// stop stops the sweeper and closes every session.
func (r *registry) stop() {
	<-r.cron.Stop().Done()

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.courses {
		s.Close()
		delete(r.courses, id)
	}
	for id, s := range r.quizzes {
		s.Close()
		delete(r.quizzes, id)
	}
}

// Course sessions

func (r *registry) putCourse(s *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[s.ID()] = s
}

// expireCourse evicts s. It is the expiry callback of course sessions.
func (r *registry) expireCourse(s *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[s.ID()]; ok {
		delete(r.courses, s.ID())
		r.expired[s.ID()] = r.now()
	}
}

func (r *registry) course(id, userID string) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expired[id]; ok {
		return nil, errSessionExpired
	}
	s, ok := r.courses[id]
	if !ok || s.UserID() != userID {
		return nil, errHttpNotFound
	}
	if s.Expired() {
		delete(r.courses, id)
		r.expired[id] = r.now()
		return nil, errSessionExpired
	}
	return s, nil
}

func (r *registry) closeCourse(id, userID string) error {
	s, err := r.course(id, userID)
	if err != nil {
		return err
	}
	s.Close()
	r.mu.Lock()
	delete(r.courses, id)
	r.mu.Unlock()
	return nil
}

// Quiz sessions

func (r *registry) putQuiz(s *quiz.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizzes[s.ID()] = s
}

func (r *registry) quiz(id, userID string) (*quiz.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.quizzes[id]
	if !ok || s.UserID() != userID {
		return nil, errHttpNotFound
	}
	return s, nil
}

func (r *registry) closeQuiz(id, userID string) error {
	s, err := r.quiz(id, userID)
	if err != nil {
		return err
	}
	s.Close()
	r.mu.Lock()
	delete(r.quizzes, id)
	r.mu.Unlock()
	return nil
}

// sweep forgets finished sessions and tombstones older than the TTL.
func (r *registry) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var swept int
	for id, s := range r.courses {
		if s.Finished() && now.Sub(s.LastActivity()) > r.ttl {
			delete(r.courses, id)
			swept++
		}
	}
	for id, s := range r.quizzes {
		if s.Finished() && now.Sub(s.LastActivity()) > r.ttl {
			delete(r.quizzes, id)
			swept++
		}
	}
	for id, at := range r.expired {
		if now.Sub(at) > r.ttl {
			delete(r.expired, id)
		}
	}
	if swept > 0 && r.log != nil {
		r.log.Debug("swept sessions", map[string]interface{}{"count": swept})
	}
}

func (r *registry) len() (courses, quizzes, expired int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.courses), len(r.quizzes), len(r.expired)
}
