package logsvc

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
)

// ZapLogger renders the args of core.Logger as structured zap fields.
type ZapLogger struct {
	z *zap.Logger
}

var _ core.Logger = (*ZapLogger)(nil)

func NewZapLogger(z *zap.Logger) *ZapLogger {
	return &ZapLogger{z: z}
}

// NewZapLoggerFromConfig builds a development logger in debug mode and a production one otherwise.
func NewZapLoggerFromConfig(conf *core.Config) (*ZapLogger, error) {
	var (
		z   *zap.Logger
		err error
	)
	if conf.Debug {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return NewZapLogger(z.With(zap.String("app", conf.AppName), zap.String("env", conf.Env), zap.String("build", conf.Build))), nil
}

// Named returns a child logger tagged with name.
func (l ZapLogger) Named(name string) *ZapLogger {
	return &ZapLogger{z: l.z.Named(name)}
}

// Sync flushes buffered entries.
func (l ZapLogger) Sync() error {
	return l.z.Sync()
}

func fields(args []interface{}) []zap.Field {
	flds := make([]zap.Field, 0, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case error:
			flds = append(flds, zap.Error(v))
		case core.Actor:
			flds = append(flds, zap.Int("actor_id", v.ID), zap.String("actor_role", v.Role))
		case map[string]interface{}:
			for k, val := range v {
				flds = append(flds, zap.Any(k, val))
			}
		case fmt.Stringer:
			flds = append(flds, zap.Stringer("arg"+strconv.Itoa(i), v))
		default:
			flds = append(flds, zap.Any("arg"+strconv.Itoa(i), v))
		}
	}
	return flds
}

func (l ZapLogger) Debug(msg string, args ...interface{}) { l.z.Debug(msg, fields(args)...) }
func (l ZapLogger) Info(msg string, args ...interface{})  { l.z.Info(msg, fields(args)...) }
func (l ZapLogger) Warn(msg string, args ...interface{})  { l.z.Warn(msg, fields(args)...) }
func (l ZapLogger) Error(msg string, args ...interface{}) { l.z.Error(msg, fields(args)...) }
func (l ZapLogger) Fatal(msg string, args ...interface{}) { l.z.Fatal(msg, fields(args)...) }
