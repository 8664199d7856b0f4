package emailsvc

import "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"

// Mail backends
const (
	BackendConsole  = "console"
	BackendSendgrid = "sendgrid"
)

// New returns the email service of conf.MailBackend. Anything but sendgrid prints to stdout.
func New(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.MailBackend == BackendSendgrid {
		return NewSendgridService(conf, logger)
	}
	return NewConsoleService(conf, logger)
}
