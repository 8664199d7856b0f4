package logsvc

import (
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
)

// Log backends
const (
	BackendZap     = "zap"
	BackendRollbar = "rollbar"
)

// New returns the logger of conf.LogBackend. name tags every entry, e.g. "API" or "DB".
func New(conf *core.Config, name string) (core.Logger, error) {
	switch conf.LogBackend {
	case BackendRollbar:
		l := NewRollbarLogger(log.New(os.Stdout, name+" : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
		l.Enable(!conf.Debug && conf.RollbarToken != "")
		return l, nil
	case BackendZap, "":
		l, err := NewZapLoggerFromConfig(conf)
		if err != nil {
			return nil, errors.Wrap(err, "building zap logger")
		}
		return l.Named(name), nil
	default:
		return nil, errors.Errorf("unknown log backend %q", conf.LogBackend)
	}
}
