package logsvc

import (
	"log"
	"strconv"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
)

// RollbarLogger reports to rollbar and mirrors every entry on a std logger.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// rollbarEntry is one log call, split into what rollbar reports.
type rollbarEntry struct {
	items  []interface{} // message, then errors and other values
	extras map[string]interface{}
	actor  *core.Actor
}

// newRollbarEntry accepts args of the form: error, map[string]interface{}, core.Actor.
// Maps are merged into one extras map. Only the first actor is kept, as the rollbar person
// and in the extras.
func newRollbarEntry(msg string, args []interface{}) rollbarEntry {
	e := rollbarEntry{items: []interface{}{msg}, extras: make(map[string]interface{})}
	for _, arg := range args {
		switch v := arg.(type) {
		case core.Actor:
			if e.actor == nil {
				actor := v
				e.actor = &actor
				e.extras["actor_id"] = v.ID
				e.extras["actor_role"] = v.Role
			}
		case map[string]interface{}:
			for key, val := range v {
				e.extras[key] = val
			}
		default:
			e.items = append(e.items, arg)
		}
	}
	if len(e.extras) > 0 {
		e.items = append(e.items, e.extras)
	}
	return e
}

// personUsername reads "teacher:#12" for a teacher with id 12.
func personUsername(a core.Actor) string {
	return a.Role + "#" + strconv.Itoa(a.ID)
}

func (l RollbarLogger) report(send func(...interface{}), msg string, args []interface{}) {
	e := newRollbarEntry(msg, args)
	if e.actor != nil {
		rollbar.SetPerson(strconv.Itoa(e.actor.ID), personUsername(*e.actor), "")
	} else {
		rollbar.ClearPerson()
	}
	send(e.items...)

	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) { l.report(rollbar.Debug, msg, args) }
func (l RollbarLogger) Info(msg string, args ...interface{})  { l.report(rollbar.Info, msg, args) }
func (l RollbarLogger) Warn(msg string, args ...interface{})  { l.report(rollbar.Warning, msg, args) }
func (l RollbarLogger) Error(msg string, args ...interface{}) { l.report(rollbar.Error, msg, args) }

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.report(rollbar.Critical, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
