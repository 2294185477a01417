package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/curation"
	"github.com/trezcool/academia/core/dashboard"
	"github.com/trezcool/academia/core/quiz"
	"github.com/trezcool/academia/core/session"
	"github.com/trezcool/academia/core/user"
)

type (
	Deps struct {
		UserSvc      *user.Service
		CourseSvc    *course.Service
		Sessions     *session.Controller
		Quizzes      *quiz.Controller
		DashboardSvc *dashboard.Service
		CurationSvc  *curation.Service
	}

	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		Shutdown       chan os.Signal
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		deps *Deps
		app  *echo.Echo
		reg  *registry
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options, deps *Deps) (Server, error) {
	s := &server{
		opts: opts,
		deps: deps,
		app:  echo.New(),
		reg:  newRegistry(opts.Conf.Sessions.FinishedTTL, opts.Logger),
	}
	if err := s.reg.schedule(opts.Conf.Sessions.SweepSchedule); err != nil {
		return nil, errors.Wrap(err, "scheduling session sweep")
	}
	s.setup()
	return s, nil
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if conf.Debug {
		s.app.Logger.SetLevel(log.DEBUG)
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(jwtConfig(conf))

	registerUserAPI(v1, jwt, &userApi{conf: conf, svc: s.deps.UserSvc, validate: s.opts.Validate})
	registerCourseAPI(v1, jwt, &courseApi{
		conf:     conf,
		users:    s.deps.UserSvc,
		sessions: s.deps.Sessions,
		reg:      s.reg,
	})
	registerQuizAPI(v1, jwt, &quizApi{
		courses:  s.deps.CourseSvc,
		sessions: s.deps.Sessions,
		quizzes:  s.deps.Quizzes,
		curation: s.deps.CurationSvc,
		reg:      s.reg,
		validate: s.opts.Validate,
	})
	registerDashboardAPI(v1, jwt, &dashboardApi{svc: s.deps.DashboardSvc})
	registerCurationAPI(v1, jwt, &curationApi{svc: s.deps.CurationSvc})
	registerAdminAPI(v1, jwt, &adminApi{
		users:     s.deps.UserSvc,
		courses:   s.deps.CourseSvc,
		dashboard: s.deps.DashboardSvc,
		validate:  s.opts.Validate,
	})
}

func (s *server) Start() error {
	s.reg.start()
	return s.app.Start(s.opts.Conf.Server.Address)
}

// Stop shuts the HTTP server down, then closes every open session.
func (s *server) Stop(ctx context.Context) error {
	err := s.app.Shutdown(ctx)
	s.reg.stop()
	return err
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) signalShutdown() {
	if s.opts.Shutdown != nil {
		s.opts.Shutdown <- syscall.SIGTERM
	}
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.opts.Conf.AppName+" API!")
}
