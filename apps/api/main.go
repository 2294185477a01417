package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/academia/apps/api/echo"
	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/certificate"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/curation"
	"github.com/trezcool/academia/core/dashboard"
	"github.com/trezcool/academia/core/progress"
	"github.com/trezcool/academia/core/quiz"
	"github.com/trezcool/academia/core/session"
	"github.com/trezcool/academia/core/user"
	emailsvc "github.com/trezcool/academia/services/email"
	"github.com/trezcool/academia/services/lmsapi"
	logsvc "github.com/trezcool/academia/services/logger"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	defer logger.Close()

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	course.InitValidators(validate, translator)

	// remote LMS
	lms := lmsapi.New(conf.LMS, logger)

	// services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, stdLogger, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	courseSvc := course.NewService(lmsapi.NewCourseRepository(lms))
	usrSvc := user.NewService(lmsapi.NewUserRepository(lms), courseSvc)
	curator := lmsapi.NewCuration(lms)
	curationSvc := curation.NewService(curator, curator, validate)

	sessions := session.NewController(
		courseSvc,
		progress.NewSynchronizer(lmsapi.NewProgressStore(lms), logger),
		logger,
		conf.Sessions.CourseDuration,
	)
	if conf.Certificates {
		issuer := certificate.NewIssuer(usrSvc, mailSvc, conf.SecretKey, conf.AppName, logger)
		sessions.OnCourseComplete(issuer.OnCourseComplete)
	}
	quizzes := quiz.NewController(lmsapi.NewResultStore(lms), logger, conf.Sessions.QuizDuration)
	dashboardSvc := dashboard.NewService(usrSvc, quizzes, curationSvc)

	// =========================================================================
	// Start API Service

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server, err := echoapi.NewServer(
		&echoapi.Options{
			Conf:       conf,
			Logger:     logger,
			Validate:   validate,
			Translator: translator,
			Shutdown:   shutdown,
		},
		&echoapi.Deps{
			UserSvc:      usrSvc,
			CourseSvc:    courseSvc,
			Sessions:     sessions,
			Quizzes:      quizzes,
			DashboardSvc: dashboardSvc,
			CurationSvc:  curationSvc,
		},
	)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up server: %v", err), err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal(fmt.Sprintf("server error: %v", err), err)
		}

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}
