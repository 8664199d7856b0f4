// Package storage opens the repositories of the configured database engine.
package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage/database"
	gormrepos "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage/database/gorm"
	inmemdb "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage/database/inmem"
	mongorepos "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage/database/mongo"
	sqlxrepos "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage/database/sqlx"
)

var ErrUnknownEngine = errors.New("unknown database engine")

// Repositories bundles the stores of one engine.
type Repositories struct {
	Engine        string
	Courses       course.Repository
	Users         user.Repository
	Enrollments   enrollment.Repository
	LiveSessions  livesession.Repository
	Notifications notification.Repository

	// SQL is the postgres handle migrated by goose, nil for other engines.
	SQL *sql.DB

	closers []func() error
}

// Close releases the underlying connections.
func (r *Repositories) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if cErr := r.closers[i](); cErr != nil && err == nil {
			err = cErr
		}
	}
	return err
}

// Open connects to conf.Database.Engine. Sqlite schemas are auto migrated and mongo indexes
// ensured on open, postgres schemas are managed with goose (`admin migrate up`).
func Open(ctx context.Context, conf *core.Config, logger core.Logger) (*Repositories, error) {
	switch conf.Database.Engine {
	case core.EngineInMem:
		return OpenInMem(), nil
	case core.EnginePostgres:
		return openSqlx(conf)
	case core.EngineGormPostgres:
		return openGorm(postgres.Open(database.DSN(conf.Database.Name, false, conf)), conf, false)
	case core.EngineSqlite:
		return openGorm(sqlite.Open(conf.Database.SqlitePath), conf, true)
	case core.EngineMongo:
		return openMongo(ctx, conf, logger)
	default:
		return nil, errors.Wrapf(ErrUnknownEngine, "%q", conf.Database.Engine)
	}
}

// OpenInMem returns empty repositories kept in memory.
func OpenInMem() *Repositories {
	db := inmemdb.Open()
	return &Repositories{
		Engine:        core.EngineInMem,
		Courses:       inmemdb.NewCourseRepository(db),
		Users:         inmemdb.NewUserRepository(db),
		Enrollments:   inmemdb.NewEnrollmentRepository(db),
		LiveSessions:  inmemdb.NewLiveSessionRepository(db),
		Notifications: inmemdb.NewNotificationRepository(db),
	}
}

func openSqlx(conf *core.Config) (*Repositories, error) {
	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Engine:        core.EnginePostgres,
		Courses:       sqlxrepos.NewCourseRepository(db),
		Users:         sqlxrepos.NewUserRepository(db),
		Enrollments:   sqlxrepos.NewEnrollmentRepository(db),
		LiveSessions:  sqlxrepos.NewLiveSessionRepository(db),
		Notifications: sqlxrepos.NewNotificationRepository(db),
		SQL:           db.DB,
		closers:       []func() error{db.Close},
	}, nil
}

// OpenGorm wraps an opened gorm handle.
func OpenGorm(db *gorm.DB, engine string) *Repositories {
	return &Repositories{
		Engine:        engine,
		Courses:       gormrepos.NewCourseRepository(db),
		Users:         gormrepos.NewUserRepository(db),
		Enrollments:   gormrepos.NewEnrollmentRepository(db),
		LiveSessions:  gormrepos.NewLiveSessionRepository(db),
		Notifications: gormrepos.NewNotificationRepository(db),
	}
}

func openGorm(dialector gorm.Dialector, conf *core.Config, autoMigrate bool) (*Repositories, error) {
	logLevel := gormlogger.Silent
	if conf.Debug {
		logLevel = gormlogger.Warn
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "getting database handle")
	}
	if err = database.Ping(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if autoMigrate {
		if err = gormrepos.AutoMigrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, errors.Wrap(err, "migrating database")
		}
	}

	engine := core.EngineSqlite
	if !autoMigrate {
		engine = core.EngineGormPostgres
	}
	repos := OpenGorm(db, engine)
	if !autoMigrate {
		repos.SQL = sqlDB
	}
	repos.closers = []func() error{sqlDB.Close}
	return repos, nil
}

func openMongo(ctx context.Context, conf *core.Config, logger core.Logger) (*Repositories, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(conf.Database.MongoURI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}
	disconnect := func() error {
		dCtx, dCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dCancel()
		return client.Disconnect(dCtx)
	}
	if err = client.Ping(connectCtx, nil); err != nil {
		_ = disconnect()
		return nil, errors.Wrap(err, "pinging mongodb")
	}

	db := client.Database(conf.Database.Name)
	if err = mongorepos.EnsureIndexes(connectCtx, db); err != nil {
		_ = disconnect()
		return nil, err
	}
	logger.Info("connected to mongodb", map[string]interface{}{"database": conf.Database.Name})

	return &Repositories{
		Engine:        core.EngineMongo,
		Courses:       mongorepos.NewCourseRepository(db),
		Users:         mongorepos.NewUserRepository(db),
		Enrollments:   mongorepos.NewEnrollmentRepository(db),
		LiveSessions:  mongorepos.NewLiveSessionRepository(db),
		Notifications: mongorepos.NewNotificationRepository(db),
		closers:       []func() error{disconnect},
	}, nil
}
