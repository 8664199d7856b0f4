package main

import (
	"context"
	"log"
	"os"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
	emailsvc "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/services/email"
	logsvc "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/services/logger"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage"
)

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logsvc.New(conf, "ADMIN")
	if err != nil {
		log.Fatal(err)
	}

	// set up storage; postgres schemas are left to `migrate`
	repos, err := storage.Open(context.Background(), conf, logger)
	if err != nil {
		logger.Fatal("setting up storage", err)
	}

	// start CLI
	cli := newCommandLine(conf, logger, repos, emailsvc.New(conf, logger), core.SystemClock{})
	err = cli.run(os.Args)
	if cErr := repos.Close(); cErr != nil {
		logger.Error("closing storage", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}

func newCommandLine(
	conf *core.Config,
	logger core.Logger,
	repos *storage.Repositories,
	mailSvc core.EmailService,
	clock core.Clock,
) *commandLine {
	validate := core.NewValidator(core.NewTranslator())
	return &commandLine{
		conf:          conf,
		out:           os.Stdout,
		repos:         repos,
		mailSvc:       mailSvc,
		usrSvc:        user.NewService(repos.Users, validate, clock),
		courseSvc:     course.NewService(repos.Courses, validate, clock),
		enrollmentSvc: enrollment.NewService(repos.Enrollments, repos.Courses, clock),
		coordinator: livesession.NewCoordinator(livesession.CoordinatorOpts{
			Sessions:      repos.LiveSessions,
			Courses:       repos.Courses,
			Enrollments:   repos.Enrollments,
			Notifications: repos.Notifications,
			Users:         repos.Users,
			MailSvc:       mailSvc,
			Logger:        logger,
			Clock:         clock,
		}),
	}
}
