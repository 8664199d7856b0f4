package main

import (
	"fmt"
	"log"

	dig_container "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/apps/api/di/dig"
	echoapi "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/apps/api/echo"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
	emailsvc "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/services/email"
	logsvc "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/services/logger"
)

func startManual() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	// set up loggers
	logger, err := logsvc.New(conf, "API")
	if err != nil {
		log.Fatal(err)
	}
	dbLogger, err := logsvc.New(conf, "DB")
	if err != nil {
		log.Fatal(err)
	}

	// set up storage
	repos, err := dig_container.SetUpStorage(conf, dbLogger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	defer func() {
		if err = repos.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up services
	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	clock := core.SystemClock{}
	mailSvc := emailsvc.New(conf, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build),
		map[string]interface{}{"engine": repos.Engine})
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:            conf,
		Logger:          logger,
		Validate:        validate,
		Translator:      translator,
		CourseSvc:       course.NewService(repos.Courses, validate, clock),
		UserSvc:         user.NewService(repos.Users, validate, clock),
		EnrollmentSvc:   enrollment.NewService(repos.Enrollments, repos.Courses, clock),
		SessionSvc:      livesession.NewService(repos.LiveSessions, repos.Courses, validate, clock),
		NotificationSvc: notification.NewService(repos.Notifications, validate, clock),
		Coordinator: livesession.NewCoordinator(livesession.CoordinatorOpts{
			Sessions:      repos.LiveSessions,
			Courses:       repos.Courses,
			Enrollments:   repos.Enrollments,
			Notifications: repos.Notifications,
			Users:         repos.Users,
			MailSvc:       mailSvc,
			Logger:        logger,
			Clock:         clock,
		}),
	})

	serve(conf, logger, server)
	mailSvc.Wait()
}
