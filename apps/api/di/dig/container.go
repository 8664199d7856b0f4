package dig_container

import (
	"context"
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/apps/api/echo"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
	emailsvc "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/services/email"
	logsvc "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/services/logger"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage/database"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLogger(conf *core.Config) (core.Logger, error) {
	return logsvc.New(conf, "API")
}

func newDBLogger(conf *core.Config) (core.Logger, error) {
	return logsvc.New(conf, "DB")
}

// SetUpStorage opens the configured engine. Postgres databases are created and migrated first.
func SetUpStorage(conf *core.Config, logger core.Logger) (*storage.Repositories, error) {
	postgres := conf.Database.Engine == core.EnginePostgres || conf.Database.Engine == core.EngineGormPostgres
	if postgres {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}
	}

	repos, err := storage.Open(context.Background(), conf, logger)
	if err != nil {
		return nil, err
	}

	if postgres {
		if err = database.Migrate(repos.SQL); err != nil {
			_ = repos.Close()
			return nil, err
		}
	}
	return repos, nil
}

func newStorage(conf *core.Config, loggerParam DBLoggerParam) (*storage.Repositories, error) {
	repos, err := SetUpStorage(conf, loggerParam.Logger)
	return repos, errors.Wrap(err, "setting up storage")
}

func newValidator(translator ut.Translator) *validator.Validate {
	return core.NewValidator(translator)
}

func newClock() core.Clock {
	return core.SystemClock{}
}

type services struct {
	dig.Out
	CourseSvc       *course.Service
	UserSvc         *user.Service
	EnrollmentSvc   *enrollment.Service
	SessionSvc      *livesession.Service
	NotificationSvc *notification.Service
	Coordinator     *livesession.Coordinator
}

func newServices(
	repos *storage.Repositories,
	validate *validator.Validate,
	clock core.Clock,
	mailSvc core.EmailService,
	logger core.Logger,
) services {
	return services{
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
	}
}

type serverParams struct {
	dig.In
	Conf            *core.Config
	Logger          core.Logger
	Validate        *validator.Validate
	Translator      ut.Translator
	CourseSvc       *course.Service
	UserSvc         *user.Service
	EnrollmentSvc   *enrollment.Service
	SessionSvc      *livesession.Service
	NotificationSvc *notification.Service
	Coordinator     *livesession.Coordinator
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:            p.Conf,
		Logger:          p.Logger,
		Validate:        p.Validate,
		Translator:      p.Translator,
		CourseSvc:       p.CourseSvc,
		UserSvc:         p.UserSvc,
		EnrollmentSvc:   p.EnrollmentSvc,
		SessionSvc:      p.SessionSvc,
		NotificationSvc: p.NotificationSvc,
		Coordinator:     p.Coordinator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStorage))
	must(c.Provide(emailsvc.New))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newClock))
	must(c.Provide(newServices))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
